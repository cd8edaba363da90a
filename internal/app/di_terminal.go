package app

import (
	"fmt"
	"sync"
	"time"

	gatewayClient "github.com/paylink/terminal/internal/gateway/client"
	"github.com/paylink/terminal/internal/httputil"
	notifyService "github.com/paylink/terminal/internal/notify/service"
	terminalHTTP "github.com/paylink/terminal/internal/terminal/http"
	terminalUseCase "github.com/paylink/terminal/internal/terminal/usecase"
)

// notifierTimeout bounds a single notification delivery.
const notifierTimeout = 10 * time.Second

type terminalComponents struct {
	gatewayClient   *gatewayClient.Client
	notifier        notifyService.Notifier
	checkoutUseCase terminalUseCase.CheckoutUseCase
	checkoutHandler *terminalHTTP.CheckoutHandler

	gatewayClientInit   sync.Once
	notifierInit        sync.Once
	checkoutUseCaseInit sync.Once
	checkoutHandlerInit sync.Once
}

// GatewayClient returns the payment gateway API client.
func (c *Container) GatewayClient() *gatewayClient.Client {
	c.gatewayClientInit.Do(func() {
		c.gatewayClient = gatewayClient.New(gatewayClient.Config{
			BaseURL:   c.config.GatewayBaseURL,
			APIKey:    c.config.GatewayAPIKey,
			UserAgent: c.config.GatewayUserAgent,
			Timeout:   c.config.GatewayTimeout,
		}, nil, c.Logger())
	})
	return c.gatewayClient
}

// Notifier returns the Discord-compatible notifier when NOTIFIER_URL is set,
// otherwise a notifier that drops every event.
func (c *Container) Notifier() notifyService.Notifier {
	c.notifierInit.Do(func() {
		if c.config.NotifierURL == "" {
			c.notifier = notifyService.NewNoopNotifier()
			return
		}
		c.notifier = notifyService.NewDiscordNotifier(
			c.config.NotifierURL,
			"",
			httputil.NewHTTPClient(notifierTimeout),
			c.Logger(),
		)
	})
	return c.notifier
}

// CheckoutUseCase returns the checkout use case.
func (c *Container) CheckoutUseCase() (terminalUseCase.CheckoutUseCase, error) {
	var err error
	c.checkoutUseCaseInit.Do(func() {
		c.checkoutUseCase, err = c.initCheckoutUseCase()
		if err != nil {
			c.setInitError("checkoutUseCase", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("checkoutUseCase"); storedErr != nil {
		return nil, storedErr
	}
	return c.checkoutUseCase, nil
}

// CheckoutHandler returns the checkout HTTP handler.
func (c *Container) CheckoutHandler() (*terminalHTTP.CheckoutHandler, error) {
	var err error
	c.checkoutHandlerInit.Do(func() {
		c.checkoutHandler, err = c.initCheckoutHandler()
		if err != nil {
			c.setInitError("checkoutHandler", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("checkoutHandler"); storedErr != nil {
		return nil, storedErr
	}
	return c.checkoutHandler, nil
}

func (c *Container) initCheckoutUseCase() (terminalUseCase.CheckoutUseCase, error) {
	issuer, err := c.LinkIssuer()
	if err != nil {
		return nil, fmt.Errorf("failed to get link issuer for checkout use case: %w", err)
	}

	verifier, err := c.LinkVerifier()
	if err != nil {
		return nil, fmt.Errorf("failed to get link verifier for checkout use case: %w", err)
	}

	useCase := terminalUseCase.NewCheckoutUseCase(
		terminalUseCase.Config{
			Currency:     c.config.Currency,
			DefaultTitle: c.config.DefaultTitle,
		},
		issuer,
		verifier,
		c.GatewayClient(),
		c.Notifier(),
		c.Logger(),
		nil,
	)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for checkout use case: %w", err)
		}
		return terminalUseCase.NewCheckoutUseCaseWithMetrics(useCase, businessMetrics), nil
	}

	return useCase, nil
}

func (c *Container) initCheckoutHandler() (*terminalHTTP.CheckoutHandler, error) {
	useCase, err := c.CheckoutUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get checkout use case for checkout handler: %w", err)
	}

	return terminalHTTP.NewCheckoutHandler(useCase, terminalHTTP.PageConfig{
		Branding:            c.branding(),
		Currency:            c.config.Currency,
		DefaultTitle:        c.config.DefaultTitle,
		SupportEmail:        c.config.SupportEmail,
		SupportWhatsApp:     c.config.SupportWhatsApp,
		PaymentLinkLifetime: c.config.PayLinkLifetime,
		ReceiptLifetime:     c.config.ReceiptLifetime,
	}, c.Logger()), nil
}
