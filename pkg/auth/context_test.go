package auth

import (
	"context"
	"errors"
	"testing"
)

func TestWithPrincipal_PrincipalFromCtx(t *testing.T) {
	want := Principal{Username: "admin", Role: RoleAdmin}
	ctx := WithPrincipal(context.Background(), want)

	got, err := PrincipalFromCtx(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestPrincipalFromCtx_EmptyContext(t *testing.T) {
	_, err := PrincipalFromCtx(context.Background())
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestPrincipalFromCtx_EmptyUsername(t *testing.T) {
	ctx := WithPrincipal(context.Background(), Principal{Role: RoleAdmin})
	if _, err := PrincipalFromCtx(ctx); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for empty username, got %v", err)
	}
}

func TestRoleFromCtx(t *testing.T) {
	tests := []struct {
		name string
		ctx  context.Context
		want string
	}{
		{"admin", WithPrincipal(context.Background(), Principal{Username: "a", Role: RoleAdmin}), RoleAdmin},
		{"user", WithPrincipal(context.Background(), Principal{Username: "u", Role: RoleUser}), RoleUser},
		{"missing role defaults to user", WithPrincipal(context.Background(), Principal{Username: "u"}), RoleUser},
		{"unauthenticated defaults to user", context.Background(), RoleUser},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RoleFromCtx(tt.ctx); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}
