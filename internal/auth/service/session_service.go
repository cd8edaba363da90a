package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	authDomain "github.com/paylink/terminal/internal/auth/domain"
	linksecDomain "github.com/paylink/terminal/internal/linksec/domain"
	linksecService "github.com/paylink/terminal/internal/linksec/service"
)

const sessionNonceSize = 16

type sessionService struct {
	signer    linksecService.Signer
	lifetime  time.Duration
	clockSkew time.Duration
}

// Issue mints a token signed under the SESSION purpose.
func (s *sessionService) Issue(now time.Time) (*authDomain.Session, error) {
	nonce := make([]byte, sessionNonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate session nonce: %w", err)
	}

	payload := strconv.FormatInt(now.UnixMilli(), 10) + "." + hex.EncodeToString(nonce)
	signature, err := s.signer.Sign(linksecDomain.PurposeSession, payload)
	if err != nil {
		return nil, err
	}

	return &authDomain.Session{
		Token:     payload + "." + signature,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.lifetime),
	}, nil
}

// Validate checks the signature first, then the age of the token.
func (s *sessionService) Validate(token string, now time.Time) error {
	parts := strings.Split(token, ".")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return authDomain.ErrInvalidSession
	}

	issuedAtMs, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return authDomain.ErrInvalidSession
	}

	if !s.signer.Verify(linksecDomain.PurposeSession, parts[0]+"."+parts[1], parts[2]) {
		return authDomain.ErrInvalidSession
	}

	issuedAt := time.UnixMilli(issuedAtMs)
	if issuedAt.Sub(now) > s.clockSkew {
		return authDomain.ErrInvalidSession
	}
	if now.Sub(issuedAt) > s.lifetime {
		return authDomain.ErrSessionExpired
	}
	return nil
}

// NewSessionService creates a SessionService. A non-positive lifetime takes
// DefaultSessionLifetime.
func NewSessionService(signer linksecService.Signer, lifetime, clockSkew time.Duration) SessionService {
	if lifetime <= 0 {
		lifetime = authDomain.DefaultSessionLifetime
	}
	return &sessionService{
		signer:    signer,
		lifetime:  lifetime,
		clockSkew: clockSkew,
	}
}
