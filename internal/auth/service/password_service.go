package service

import (
	"crypto/sha256"
	"crypto/subtle"
	"fmt"

	"github.com/allisson/go-pwdhash"

	authDomain "github.com/paylink/terminal/internal/auth/domain"
)

// digestVerifier compares SHA-256 digests so the comparison length never
// depends on the candidate.
type digestVerifier struct {
	digest [sha256.Size]byte
}

func (d *digestVerifier) Verify(password string) bool {
	candidate := sha256.Sum256([]byte(password))
	return subtle.ConstantTimeCompare(candidate[:], d.digest[:]) == 1
}

// argon2Verifier checks candidates against an Argon2id PHC string.
type argon2Verifier struct {
	hasher *pwdhash.PasswordHasher
	hash   string
}

func (a *argon2Verifier) Verify(password string) bool {
	ok, err := a.hasher.Verify([]byte(password), a.hash)
	if err != nil {
		return false
	}
	return ok
}

// NewPasswordVerifier returns an Argon2id verifier when passwordHash is set,
// otherwise a digest verifier for the plain password. It fails with
// ErrPasswordNotConfigured when both are empty.
func NewPasswordVerifier(password, passwordHash string) (PasswordVerifier, error) {
	if passwordHash != "" {
		hasher, err := newHasher()
		if err != nil {
			return nil, err
		}
		return &argon2Verifier{hasher: hasher, hash: passwordHash}, nil
	}

	if password == "" {
		return nil, authDomain.ErrPasswordNotConfigured
	}
	return &digestVerifier{digest: sha256.Sum256([]byte(password))}, nil
}

type passwordHasher struct {
	hasher *pwdhash.PasswordHasher
}

// Hash returns the Argon2id PHC string of password.
func (p *passwordHasher) Hash(password string) (string, error) {
	hash, err := p.hasher.Hash([]byte(password))
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return hash, nil
}

// NewPasswordHasher creates a PasswordHasher using the Interactive Argon2id policy.
func NewPasswordHasher() (PasswordHasher, error) {
	hasher, err := newHasher()
	if err != nil {
		return nil, err
	}
	return &passwordHasher{hasher: hasher}, nil
}

func newHasher() (*pwdhash.PasswordHasher, error) {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		return nil, fmt.Errorf("failed to create password hasher: %w", err)
	}
	return hasher, nil
}
