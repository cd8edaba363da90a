package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"time"

	gatewayDomain "github.com/paylink/terminal/internal/gateway/domain"
	linksecDomain "github.com/paylink/terminal/internal/linksec/domain"
	linksecUseCase "github.com/paylink/terminal/internal/linksec/usecase"
	notifyDomain "github.com/paylink/terminal/internal/notify/domain"
	notifyService "github.com/paylink/terminal/internal/notify/service"
	terminalDomain "github.com/paylink/terminal/internal/terminal/domain"
)

// Config holds the merchant settings applied to every checkout.
type Config struct {
	Currency     string
	DefaultTitle string
}

type checkoutUseCase struct {
	config   Config
	issuer   linksecUseCase.LinkIssuer
	verifier linksecUseCase.LinkVerifier
	gateway  Gateway
	notifier notifyService.Notifier
	logger   *slog.Logger
	now      func() time.Time
}

// GeneratePaymentLink seals the customer fields into a payment link.
func (c *checkoutUseCase) GeneratePaymentLink(
	ctx context.Context,
	request terminalDomain.PaymentRequest,
) (*terminalDomain.ShareLink, error) {
	link, err := c.issuer.IssuePaymentLink(ctx, request.Amount, linksecDomain.PIIRecord{
		Name:  request.Name,
		Email: request.Email,
		Title: request.Title,
	})
	if err != nil {
		return nil, err
	}

	return &terminalDomain.ShareLink{
		Amount:    link.Amount,
		Currency:  c.config.Currency,
		Title:     c.title(request.Title),
		PayURL:    link.URL,
		QRCodeURL: c.issuer.QRCodeURL(link.URL),
		IssuedAt:  link.IssuedAt,
	}, nil
}

// StartPayment mints the receipt and webhook links for a verified intent and
// creates the gateway payment. The generated order id doubles as the gateway
// order id.
func (c *checkoutUseCase) StartPayment(ctx context.Context, query url.Values) (string, error) {
	intent, err := c.verifier.VerifyPaymentLink(ctx, query)
	if err != nil {
		return "", err
	}

	links, err := c.issuer.IssueReceiptLink(ctx, "", intent.PII)
	if err != nil {
		return "", err
	}

	redirectURL, err := c.gateway.CreatePayment(ctx, &gatewayDomain.CreatePaymentRequest{
		Title:         c.title(intent.PII.Title),
		OrderID:       links.OrderID,
		TotalAmount:   intent.Amount,
		Currency:      c.config.Currency,
		CustomerName:  intent.PII.Name,
		CustomerEmail: intent.PII.Email,
		CallbackURL:   links.SuccessURL,
		WebhookURL:    links.WebhookURL,
	})
	if err != nil {
		return "", err
	}

	c.logger.Info("payment started", slog.String("order_id", links.OrderID))

	return redirectURL, nil
}

// ShowReceipt checks the payment id first, then the receipt link, then asks the
// gateway for the payment status.
func (c *checkoutUseCase) ShowReceipt(
	ctx context.Context,
	paymentID string,
	query url.Values,
) (*terminalDomain.Receipt, error) {
	if paymentID == "" {
		return nil, terminalDomain.ErrMissingPaymentID
	}

	claims, err := c.verifier.VerifyReceiptLink(ctx, query)
	if err != nil {
		return nil, err
	}

	payment, err := c.gateway.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	return &terminalDomain.Receipt{
		PaymentID:     paymentID,
		OrderID:       claims.OrderID,
		Amount:        payment.TotalAmount.String(),
		Currency:      c.config.Currency,
		Status:        payment.Status,
		CustomerName:  claims.PII.Name,
		CustomerEmail: claims.PII.Email,
	}, nil
}

// HandleWebhook authenticates the callback before looking at the body.
func (c *checkoutUseCase) HandleWebhook(ctx context.Context, query url.Values, body []byte) error {
	claims, err := c.verifier.VerifyWebhookLink(ctx, query)
	if err != nil {
		return err
	}

	var payment gatewayDomain.Payment
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &payment); err != nil {
			return terminalDomain.ErrInvalidWebhookPayload
		}
	}
	payment.Normalize()

	event := notifyDomain.TransactionEvent{
		Status:        payment.Status,
		Amount:        payment.TotalAmount.String(),
		Currency:      c.config.Currency,
		ClientName:    claims.PII.Name,
		ClientEmail:   claims.PII.Email,
		OrderID:       claims.PII.OrderID,
		TransactionID: payment.ID,
		OccurredAt:    c.now(),
	}

	if err := c.notifier.Notify(ctx, event); err != nil {
		c.logger.Warn("failed to deliver transaction notification",
			slog.String("order_id", claims.PII.OrderID),
			slog.Any("error", err))
	}

	return nil
}

func (c *checkoutUseCase) title(title string) string {
	if title != "" {
		return title
	}
	if c.config.DefaultTitle != "" {
		return c.config.DefaultTitle
	}
	return gatewayDomain.DefaultTitle
}

// NewCheckoutUseCase creates a CheckoutUseCase. A nil now defaults to time.Now.
func NewCheckoutUseCase(
	config Config,
	issuer linksecUseCase.LinkIssuer,
	verifier linksecUseCase.LinkVerifier,
	gateway Gateway,
	notifier notifyService.Notifier,
	logger *slog.Logger,
	now func() time.Time,
) CheckoutUseCase {
	if now == nil {
		now = time.Now
	}
	return &checkoutUseCase{
		config:   config,
		issuer:   issuer,
		verifier: verifier,
		gateway:  gateway,
		notifier: notifier,
		logger:   logger,
		now:      now,
	}
}
