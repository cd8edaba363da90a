package app

import (
	"fmt"
	"sync"

	authDomain "github.com/paylink/terminal/internal/auth/domain"
	authHTTP "github.com/paylink/terminal/internal/auth/http"
	authService "github.com/paylink/terminal/internal/auth/service"
	authUseCase "github.com/paylink/terminal/internal/auth/usecase"
	"github.com/paylink/terminal/internal/views"
)

type authComponents struct {
	passwordVerifier authService.PasswordVerifier
	sessionService   authService.SessionService
	sessionUseCase   authUseCase.SessionUseCase
	sessionHandler   *authHTTP.SessionHandler

	passwordVerifierInit sync.Once
	sessionServiceInit   sync.Once
	sessionUseCaseInit   sync.Once
	sessionHandlerInit   sync.Once
}

// PasswordVerifier returns the verifier for TERMINAL_PASSWORD_HASH, or for
// TERMINAL_PASSWORD when no hash is configured.
func (c *Container) PasswordVerifier() (authService.PasswordVerifier, error) {
	var err error
	c.passwordVerifierInit.Do(func() {
		c.passwordVerifier, err = authService.NewPasswordVerifier(
			c.config.TerminalPassword,
			c.config.TerminalPasswordHash,
		)
		if err != nil {
			c.setInitError("passwordVerifier", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("passwordVerifier"); storedErr != nil {
		return nil, storedErr
	}
	return c.passwordVerifier, nil
}

// SessionService returns the signed session token service.
func (c *Container) SessionService() (authService.SessionService, error) {
	var err error
	c.sessionServiceInit.Do(func() {
		c.sessionService, err = c.initSessionService()
		if err != nil {
			c.setInitError("sessionService", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("sessionService"); storedErr != nil {
		return nil, storedErr
	}
	return c.sessionService, nil
}

// SessionUseCase returns the operator login use case.
func (c *Container) SessionUseCase() (authUseCase.SessionUseCase, error) {
	var err error
	c.sessionUseCaseInit.Do(func() {
		c.sessionUseCase, err = c.initSessionUseCase()
		if err != nil {
			c.setInitError("sessionUseCase", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("sessionUseCase"); storedErr != nil {
		return nil, storedErr
	}
	return c.sessionUseCase, nil
}

// SessionHandler returns the login and logout HTTP handler.
func (c *Container) SessionHandler() (*authHTTP.SessionHandler, error) {
	var err error
	c.sessionHandlerInit.Do(func() {
		c.sessionHandler, err = c.initSessionHandler()
		if err != nil {
			c.setInitError("sessionHandler", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("sessionHandler"); storedErr != nil {
		return nil, storedErr
	}
	return c.sessionHandler, nil
}

func (c *Container) initSessionService() (authService.SessionService, error) {
	signer, err := c.Signer()
	if err != nil {
		return nil, fmt.Errorf("failed to get signer for session service: %w", err)
	}
	return authService.NewSessionService(signer, c.config.SessionLifetime, c.config.ClockSkew), nil
}

func (c *Container) initSessionUseCase() (authUseCase.SessionUseCase, error) {
	verifier, err := c.PasswordVerifier()
	if err != nil {
		return nil, fmt.Errorf("failed to get password verifier for session use case: %w", err)
	}

	sessionService, err := c.SessionService()
	if err != nil {
		return nil, fmt.Errorf("failed to get session service for session use case: %w", err)
	}

	useCase := authUseCase.NewSessionUseCase(
		authDomain.SessionMode(c.config.SessionMode),
		c.config.SessionLifetime,
		verifier,
		sessionService,
		nil,
	)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for session use case: %w", err)
		}
		return authUseCase.NewSessionUseCaseWithMetrics(useCase, businessMetrics), nil
	}

	return useCase, nil
}

func (c *Container) initSessionHandler() (*authHTTP.SessionHandler, error) {
	useCase, err := c.SessionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get session use case for session handler: %w", err)
	}
	return authHTTP.NewSessionHandler(useCase, c.branding(), c.Logger()), nil
}

func (c *Container) branding() views.Branding {
	return views.Branding{MerchantName: c.config.MerchantName}
}
