// Package usecase implements operator login and session checks.
package usecase

import (
	"context"

	authDomain "github.com/paylink/terminal/internal/auth/domain"
)

// SessionUseCase authenticates the single terminal operator.
type SessionUseCase interface {
	// Login checks password and returns the session to store in the cookie.
	// Returns ErrInvalidCredentials on a wrong password.
	Login(ctx context.Context, password string) (*authDomain.Session, error)

	// Authenticate checks the session cookie value. Returns ErrInvalidSession
	// or ErrSessionExpired.
	Authenticate(ctx context.Context, cookie string) error
}
