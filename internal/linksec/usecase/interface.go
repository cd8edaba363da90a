// Package usecase issues and verifies the signed links of the checkout flow.
package usecase

import (
	"context"
	"net/url"

	linksecDomain "github.com/paylink/terminal/internal/linksec/domain"
)

// LinkIssuer mints signed links. It holds no per-link state.
type LinkIssuer interface {
	// IssuePaymentLink returns the absolute /pay URL for amount with the customer
	// name, email and title sealed into the link token.
	IssuePaymentLink(
		ctx context.Context,
		amount string,
		pii linksecDomain.PIIRecord,
	) (*linksecDomain.PaymentLink, error)

	// IssueReceiptLink returns the /success and /webhook URLs for an accepted
	// payment intent. An empty orderID is replaced by a random 8 character id.
	IssueReceiptLink(
		ctx context.Context,
		orderID string,
		pii linksecDomain.PIIRecord,
	) (*linksecDomain.ReceiptLinks, error)

	// QRCodeURL returns the image URL of a QR code encoding link.
	QRCodeURL(link string) string
}

// LinkVerifier checks received links: expiry, then signature, then token
// decryption, then (receipts only) the order id cross-check. The first failure
// is returned and nothing is trusted from a failed link.
type LinkVerifier interface {
	// VerifyPaymentLink verifies the query of a /pay request.
	VerifyPaymentLink(ctx context.Context, query url.Values) (*linksecDomain.PaymentIntent, error)

	// VerifyReceiptLink verifies the query of a /success request.
	VerifyReceiptLink(ctx context.Context, query url.Values) (*linksecDomain.ReceiptClaims, error)

	// VerifyWebhookLink authenticates the query of a /webhook request according to
	// the configured webhook auth mode.
	VerifyWebhookLink(ctx context.Context, query url.Values) (*linksecDomain.WebhookClaims, error)
}
