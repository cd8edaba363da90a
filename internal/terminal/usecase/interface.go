// Package usecase orchestrates the checkout flow: it turns operator input into
// signed payment links, hands verified intents to the gateway, renders receipts
// from verified receipt links and relays gateway callbacks to the notifier.
package usecase

import (
	"context"
	"net/url"

	gatewayDomain "github.com/paylink/terminal/internal/gateway/domain"
	terminalDomain "github.com/paylink/terminal/internal/terminal/domain"
)

// Gateway is the subset of the payment gateway client used by checkout.
type Gateway interface {
	CreatePayment(ctx context.Context, request *gatewayDomain.CreatePaymentRequest) (string, error)
	GetPayment(ctx context.Context, paymentID string) (*gatewayDomain.Payment, error)
}

// CheckoutUseCase defines the checkout operations behind the HTTP surface.
type CheckoutUseCase interface {
	// GeneratePaymentLink issues a payment link and its QR code for the operator.
	GeneratePaymentLink(ctx context.Context, request terminalDomain.PaymentRequest) (*terminalDomain.ShareLink, error)

	// StartPayment verifies a /pay query, registers the payment with the
	// gateway and returns the gateway checkout URL.
	StartPayment(ctx context.Context, query url.Values) (string, error)

	// ShowReceipt verifies a /success query and fetches the payment status.
	ShowReceipt(ctx context.Context, paymentID string, query url.Values) (*terminalDomain.Receipt, error)

	// HandleWebhook authenticates a /webhook query and forwards the posted
	// payment status to the notifier. Notifier failures are not returned.
	HandleWebhook(ctx context.Context, query url.Values, body []byte) error
}
