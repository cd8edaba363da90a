// Package service provides the session token and password primitives of
// operator authentication.
package service

import (
	"time"

	authDomain "github.com/paylink/terminal/internal/auth/domain"
)

// SessionService issues and validates signed session tokens.
type SessionService interface {
	// Issue returns a fresh token of the form "{issuedAtMs}.{nonceHex}.{sigHex}".
	Issue(now time.Time) (*authDomain.Session, error)

	// Validate returns ErrInvalidSession for malformed or forged tokens and
	// ErrSessionExpired for authentic tokens older than the session lifetime.
	Validate(token string, now time.Time) error
}

// PasswordVerifier checks a candidate against the configured terminal password.
type PasswordVerifier interface {
	// Verify reports whether password matches. Comparisons run in constant time
	// with respect to the content of the candidate.
	Verify(password string) bool
}

// PasswordHasher produces Argon2id hashes for TERMINAL_PASSWORD_HASH.
type PasswordHasher interface {
	Hash(password string) (string, error)
}
