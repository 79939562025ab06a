// Package services contains stateless domain services for the catalog bounded context.
// Domain services enforce business rules that operate purely on domain types
// and have zero external dependencies beyond the domain layer.
package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ghuser/storecatalog/services/catalog/domain/models"
)

// ValidateName checks what the ItemName constructor does not: the text must be
// storable in a Postgres text column. Any other non-empty text is a valid name,
// whitespace included.
func ValidateName(name models.ItemName) error {
	s := name.String()

	if s == "" {
		return fmt.Errorf("item name must not be empty")
	}

	if !utf8.ValidString(s) {
		return fmt.Errorf("item name must be valid UTF-8")
	}

	if strings.ContainsRune(s, 0) {
		return fmt.Errorf("item name must not contain NUL bytes")
	}

	return nil
}

// ValidateItemForCreation performs cross-field validation on an unsaved Item
// before it is handed to storage.
func ValidateItemForCreation(item *models.Item) error {
	if item == nil {
		return fmt.Errorf("item cannot be nil")
	}

	if err := ValidateName(item.Name); err != nil {
		return fmt.Errorf("invalid name: %w", err)
	}

	if item.Price.Decimal().IsNegative() {
		return fmt.Errorf("price must be greater than or equal to zero")
	}

	return nil
}
