package usecase

import (
	"context"
	"net/url"
	"time"

	"github.com/paylink/terminal/internal/metrics"
	terminalDomain "github.com/paylink/terminal/internal/terminal/domain"
)

// checkoutUseCaseWithMetrics decorates CheckoutUseCase with metrics instrumentation.
type checkoutUseCaseWithMetrics struct {
	next    CheckoutUseCase
	metrics metrics.BusinessMetrics
}

// NewCheckoutUseCaseWithMetrics wraps a CheckoutUseCase with metrics recording.
func NewCheckoutUseCaseWithMetrics(useCase CheckoutUseCase, m metrics.BusinessMetrics) CheckoutUseCase {
	return &checkoutUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// GeneratePaymentLink records metrics for link generation.
func (c *checkoutUseCaseWithMetrics) GeneratePaymentLink(
	ctx context.Context,
	request terminalDomain.PaymentRequest,
) (*terminalDomain.ShareLink, error) {
	start := time.Now()
	link, err := c.next.GeneratePaymentLink(ctx, request)
	c.record(ctx, "payment_link_generate", start, err)
	return link, err
}

// StartPayment records metrics for gateway payment creation.
func (c *checkoutUseCaseWithMetrics) StartPayment(ctx context.Context, query url.Values) (string, error) {
	start := time.Now()
	redirectURL, err := c.next.StartPayment(ctx, query)
	c.record(ctx, "payment_start", start, err)
	return redirectURL, err
}

// ShowReceipt records metrics for receipt rendering.
func (c *checkoutUseCaseWithMetrics) ShowReceipt(
	ctx context.Context,
	paymentID string,
	query url.Values,
) (*terminalDomain.Receipt, error) {
	start := time.Now()
	receipt, err := c.next.ShowReceipt(ctx, paymentID, query)
	c.record(ctx, "receipt_show", start, err)
	return receipt, err
}

// HandleWebhook records metrics for gateway callbacks.
func (c *checkoutUseCaseWithMetrics) HandleWebhook(ctx context.Context, query url.Values, body []byte) error {
	start := time.Now()
	err := c.next.HandleWebhook(ctx, query, body)
	c.record(ctx, "webhook_handle", start, err)
	return err
}

func (c *checkoutUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := metrics.Outcome(err)
	c.metrics.RecordOperation(ctx, "terminal", operation, status)
	c.metrics.RecordDuration(ctx, "terminal", operation, time.Since(start), status)
}
