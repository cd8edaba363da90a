package domain

import (
	"github.com/paylink/terminal/internal/errors"
)

// Session errors.
var (
	// ErrInvalidCredentials indicates a wrong terminal password.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrSessionExpired indicates a well-formed session token older than its lifetime.
	ErrSessionExpired = errors.Wrap(errors.ErrUnauthorized, "session expired")

	// ErrInvalidSession indicates a missing, malformed, or forged session token.
	ErrInvalidSession = errors.Wrap(errors.ErrUnauthorized, "invalid session")

	// ErrPasswordNotConfigured indicates that neither a password nor a password hash is configured.
	ErrPasswordNotConfigured = errors.Wrap(errors.ErrInvalidInput, "terminal password is not configured")
)
