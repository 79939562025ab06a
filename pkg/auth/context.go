package auth

import (
	"context"
	"errors"
)

// Role tokens carried by a Principal.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// contextKey is an unexported type to prevent key collisions in context.
type contextKey string

const principalKey contextKey = "principal"

// ErrUnauthenticated is returned when no Principal exists in the request context.
// Handlers should return 401 when this error occurs.
var ErrUnauthenticated = errors.New("principal not found in context")

// Principal is the authenticated caller of a request.
type Principal struct {
	Username string
	Role     string
}

// PrincipalFromCtx extracts the authenticated caller from the request context.
func PrincipalFromCtx(ctx context.Context) (Principal, error) {
	p, ok := ctx.Value(principalKey).(Principal)
	if !ok || p.Username == "" {
		return Principal{}, ErrUnauthenticated
	}
	return p, nil
}

// RoleFromCtx returns the caller's role. An unauthenticated caller or one
// without a role is treated as RoleUser.
func RoleFromCtx(ctx context.Context) string {
	p, err := PrincipalFromCtx(ctx)
	if err != nil || p.Role == "" {
		return RoleUser
	}
	return p.Role
}

// WithPrincipal returns a new context with p attached.
// Used by authentication middleware after validating credentials.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}
