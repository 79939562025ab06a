package services

import itemdomain "github.com/ghuser/storecatalog/services/catalog/domain"

// Role tokens carried by an authenticated requester.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// AuthorizeDeletion allows deletion only for the exact ADMIN token.
// Absent, lower-case or any other role is refused.
func AuthorizeDeletion(requesterRole string) error {
	if requesterRole != RoleAdmin {
		return itemdomain.ErrUnauthorized
	}
	return nil
}
