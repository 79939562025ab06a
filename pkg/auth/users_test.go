package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDirectory(t *testing.T) *Directory {
	t.Helper()
	dir, err := NewDirectory(
		Credential{Username: "admin", Password: "admin-pass", Role: RoleAdmin},
		Credential{Username: "user", Password: "user-pass", Role: RoleUser},
	)
	require.NoError(t, err)
	return dir
}

func TestDirectory_Authenticate(t *testing.T) {
	dir := newTestDirectory(t)

	p, err := dir.Authenticate("admin", "admin-pass")
	require.NoError(t, err)
	assert.Equal(t, Principal{Username: "admin", Role: RoleAdmin}, p)

	p, err = dir.Authenticate("user", "user-pass")
	require.NoError(t, err)
	assert.Equal(t, RoleUser, p.Role)
}

func TestDirectory_AuthenticateRejects(t *testing.T) {
	dir := newTestDirectory(t)

	tests := []struct {
		name, username, password string
	}{
		{"wrong password", "admin", "nope"},
		{"unknown user", "ghost", "admin-pass"},
		{"unknown user empty password", "ghost", ""},
		{"swapped passwords", "user", "admin-pass"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := dir.Authenticate(tt.username, tt.password)
			assert.True(t, errors.Is(err, ErrInvalidCredentials), "got %v", err)
		})
	}
}

func TestNewDirectory_Validation(t *testing.T) {
	_, err := NewDirectory(Credential{Username: "", Password: "x"})
	assert.Error(t, err)

	_, err = NewDirectory(
		Credential{Username: "dup", Password: "a"},
		Credential{Username: "dup", Password: "b"},
	)
	assert.Error(t, err)
}

func TestDirectory_DefaultRoleAndLookup(t *testing.T) {
	dir, err := NewDirectory(Credential{Username: "norole", Password: "pw"})
	require.NoError(t, err)

	p, ok := dir.Lookup("norole")
	require.True(t, ok)
	assert.Equal(t, RoleUser, p.Role)

	_, ok = dir.Lookup("missing")
	assert.False(t, ok)
}

func TestDirectory_RemembersVerifiedCredentials(t *testing.T) {
	dir := newTestDirectory(t)
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	dir.now = func() time.Time { return now }

	p, err := dir.Authenticate("admin", "admin-pass")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, p.Role)
	assert.Len(t, dir.verified, 1)

	// Failures are never cached.
	_, err = dir.Authenticate("admin", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = dir.Authenticate("ghost", "admin-pass")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Len(t, dir.verified, 1)

	tag := dir.credentialTag("admin", "admin-pass")
	assert.True(t, dir.recentlyVerified(tag))

	now = now.Add(verifiedTTL)
	assert.False(t, dir.recentlyVerified(tag), "entry must expire after the TTL")
	assert.Empty(t, dir.verified)

	p, err = dir.Authenticate("admin", "admin-pass")
	require.NoError(t, err)
	assert.Equal(t, "admin", p.Username)
	assert.True(t, dir.recentlyVerified(tag))
}

func TestDirectory_CredentialTagSeparatesFields(t *testing.T) {
	dir := newTestDirectory(t)
	assert.NotEqual(t, dir.credentialTag("ad", "minpass"), dir.credentialTag("adm", "inpass"))
	assert.Equal(t, dir.credentialTag("user", "user-pass"), dir.credentialTag("user", "user-pass"))
}

func TestDirectory_VerifiedCacheIsBounded(t *testing.T) {
	dir := newTestDirectory(t)
	for i := 0; i < maxVerified+10; i++ {
		dir.remember(dir.credentialTag("user", string(rune('a'+i%26))+time.Duration(i).String()))
	}
	assert.LessOrEqual(t, len(dir.verified), maxVerified)
}
