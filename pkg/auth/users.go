package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	saltLen      = 16
)

// Successful checks are remembered briefly so HTTP Basic clients do not pay
// for an Argon2id derivation on every request.
const (
	verifiedTTL = 5 * time.Minute
	maxVerified = 1024
)

// ErrInvalidCredentials is returned for an unknown username or a wrong password.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Credential is a plaintext account definition read from configuration.
type Credential struct {
	Username string
	Password string
	Role     string
}

type account struct {
	role string
	salt []byte
	hash []byte
}

// Directory holds the configured accounts with their passwords hashed.
// Plaintext passwords are not retained after construction.
type Directory struct {
	accounts map[string]account
	// dummy is compared against when the username is unknown so lookups
	// take the same time either way.
	dummy account

	mu       sync.Mutex
	macKey   []byte
	verified map[[sha256.Size]byte]time.Time
	now      func() time.Time
}

// NewDirectory hashes every credential with Argon2id.
func NewDirectory(creds ...Credential) (*Directory, error) {
	d := &Directory{
		accounts: make(map[string]account, len(creds)),
		macKey:   make([]byte, sha256.Size),
		verified: make(map[[sha256.Size]byte]time.Time),
		now:      time.Now,
	}
	if _, err := rand.Read(d.macKey); err != nil {
		return nil, fmt.Errorf("auth: generate cache key: %w", err)
	}
	for _, c := range creds {
		if c.Username == "" {
			return nil, fmt.Errorf("auth: credential with empty username")
		}
		if _, dup := d.accounts[c.Username]; dup {
			return nil, fmt.Errorf("auth: duplicate username %q", c.Username)
		}
		acc, err := newAccount(c.Password, c.Role)
		if err != nil {
			return nil, err
		}
		d.accounts[c.Username] = acc
	}

	dummy, err := newAccount("", RoleUser)
	if err != nil {
		return nil, err
	}
	d.dummy = dummy
	return d, nil
}

func newAccount(password, role string) (account, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return account{}, fmt.Errorf("auth: generate salt: %w", err)
	}
	if role == "" {
		role = RoleUser
	}
	return account{
		role: role,
		salt: salt,
		hash: argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen),
	}, nil
}

// Authenticate verifies the password and returns the matching Principal.
// A pair verified within the last verifiedTTL is accepted without rehashing.
func (d *Directory) Authenticate(username, password string) (Principal, error) {
	acc, ok := d.accounts[username]
	tag := d.credentialTag(username, password)
	if ok && d.recentlyVerified(tag) {
		return Principal{Username: username, Role: acc.role}, nil
	}

	if !ok {
		acc = d.dummy
	}
	computed := argon2.IDKey([]byte(password), acc.salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	if subtle.ConstantTimeCompare(computed, acc.hash) != 1 || !ok {
		return Principal{}, ErrInvalidCredentials
	}
	d.remember(tag)
	return Principal{Username: username, Role: acc.role}, nil
}

// credentialTag keys the verified cache. It is keyed by a per-process secret so
// the map never holds anything usable as a password hash.
func (d *Directory) credentialTag(username, password string) [sha256.Size]byte {
	mac := hmac.New(sha256.New, d.macKey)
	mac.Write([]byte(username))
	mac.Write([]byte{0})
	mac.Write([]byte(password))
	var tag [sha256.Size]byte
	copy(tag[:], mac.Sum(nil))
	return tag
}

func (d *Directory) recentlyVerified(tag [sha256.Size]byte) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	expires, ok := d.verified[tag]
	if !ok {
		return false
	}
	if !d.now().Before(expires) {
		delete(d.verified, tag)
		return false
	}
	return true
}

func (d *Directory) remember(tag [sha256.Size]byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	now := d.now()
	if len(d.verified) >= maxVerified {
		for k, exp := range d.verified {
			if !now.Before(exp) {
				delete(d.verified, k)
			}
		}
		if len(d.verified) >= maxVerified {
			clear(d.verified)
		}
	}
	d.verified[tag] = now.Add(verifiedTTL)
}

// Lookup returns the Principal for a known username without checking a password.
// Used to rehydrate a session.
func (d *Directory) Lookup(username string) (Principal, bool) {
	acc, ok := d.accounts[username]
	if !ok {
		return Principal{}, false
	}
	return Principal{Username: username, Role: acc.role}, true
}
