package usecase

import (
	"context"
	"time"

	authDomain "github.com/paylink/terminal/internal/auth/domain"
	"github.com/paylink/terminal/internal/metrics"
)

// sessionUseCaseWithMetrics decorates SessionUseCase with metrics instrumentation.
type sessionUseCaseWithMetrics struct {
	next    SessionUseCase
	metrics metrics.BusinessMetrics
}

// NewSessionUseCaseWithMetrics wraps a SessionUseCase with metrics recording.
func NewSessionUseCaseWithMetrics(useCase SessionUseCase, m metrics.BusinessMetrics) SessionUseCase {
	return &sessionUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Login records metrics for login attempts.
func (s *sessionUseCaseWithMetrics) Login(ctx context.Context, password string) (*authDomain.Session, error) {
	start := time.Now()
	session, err := s.next.Login(ctx, password)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "auth", "session_login", status)
	s.metrics.RecordDuration(ctx, "auth", "session_login", time.Since(start), status)

	return session, err
}

// Authenticate records metrics for session checks.
func (s *sessionUseCaseWithMetrics) Authenticate(ctx context.Context, cookie string) error {
	start := time.Now()
	err := s.next.Authenticate(ctx, cookie)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "auth", "session_authenticate", status)
	s.metrics.RecordDuration(ctx, "auth", "session_authenticate", time.Since(start), status)

	return err
}
