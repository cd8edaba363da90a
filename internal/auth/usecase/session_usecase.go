package usecase

import (
	"context"
	"time"

	authDomain "github.com/paylink/terminal/internal/auth/domain"
	authService "github.com/paylink/terminal/internal/auth/service"
)

// sessionUseCase implements SessionUseCase for both session modes.
type sessionUseCase struct {
	mode           authDomain.SessionMode
	lifetime       time.Duration
	verifier       authService.PasswordVerifier
	sessionService authService.SessionService
	now            func() time.Time
}

// Login verifies the password. In token mode it issues a signed session
// token; in legacy mode the cookie value is the password itself.
func (s *sessionUseCase) Login(ctx context.Context, password string) (*authDomain.Session, error) {
	if password == "" || !s.verifier.Verify(password) {
		return nil, authDomain.ErrInvalidCredentials
	}

	now := s.now()
	if s.mode == authDomain.SessionModeLegacy {
		return &authDomain.Session{
			Token:     password,
			IssuedAt:  now,
			ExpiresAt: now.Add(s.lifetime),
		}, nil
	}

	return s.sessionService.Issue(now)
}

// Authenticate validates the cookie value for the configured mode. In legacy
// mode the lifetime is enforced only by the cookie Max-Age.
func (s *sessionUseCase) Authenticate(ctx context.Context, cookie string) error {
	if cookie == "" {
		return authDomain.ErrInvalidSession
	}

	if s.mode == authDomain.SessionModeLegacy {
		if !s.verifier.Verify(cookie) {
			return authDomain.ErrInvalidSession
		}
		return nil
	}

	return s.sessionService.Validate(cookie, s.now())
}

// NewSessionUseCase creates a SessionUseCase. An unknown mode falls back to
// token mode. A nil now defaults to time.Now.
func NewSessionUseCase(
	mode authDomain.SessionMode,
	lifetime time.Duration,
	verifier authService.PasswordVerifier,
	sessionService authService.SessionService,
	now func() time.Time,
) SessionUseCase {
	if !mode.Valid() {
		mode = authDomain.SessionModeToken
	}
	if lifetime <= 0 {
		lifetime = authDomain.DefaultSessionLifetime
	}
	if now == nil {
		now = time.Now
	}
	return &sessionUseCase{
		mode:           mode,
		lifetime:       lifetime,
		verifier:       verifier,
		sessionService: sessionService,
		now:            now,
	}
}
