package usecase

import (
	"context"
	"net/url"
	"time"

	linksecDomain "github.com/paylink/terminal/internal/linksec/domain"
	"github.com/paylink/terminal/internal/metrics"
)

const metricsDomain = "linksec"

// linkIssuerWithMetrics decorates LinkIssuer with metrics instrumentation.
type linkIssuerWithMetrics struct {
	next    LinkIssuer
	metrics metrics.BusinessMetrics
}

// NewLinkIssuerWithMetrics wraps a LinkIssuer with metrics recording.
func NewLinkIssuerWithMetrics(issuer LinkIssuer, m metrics.BusinessMetrics) LinkIssuer {
	return &linkIssuerWithMetrics{next: issuer, metrics: m}
}

// IssuePaymentLink records metrics for payment link issuance.
func (l *linkIssuerWithMetrics) IssuePaymentLink(
	ctx context.Context,
	amount string,
	pii linksecDomain.PIIRecord,
) (*linksecDomain.PaymentLink, error) {
	start := time.Now()
	link, err := l.next.IssuePaymentLink(ctx, amount, pii)
	record(ctx, l.metrics, "payment_link_issue", start, err)
	return link, err
}

// IssueReceiptLink records metrics for receipt link issuance.
func (l *linkIssuerWithMetrics) IssueReceiptLink(
	ctx context.Context,
	orderID string,
	pii linksecDomain.PIIRecord,
) (*linksecDomain.ReceiptLinks, error) {
	start := time.Now()
	links, err := l.next.IssueReceiptLink(ctx, orderID, pii)
	record(ctx, l.metrics, "receipt_link_issue", start, err)
	return links, err
}

// QRCodeURL is not instrumented.
func (l *linkIssuerWithMetrics) QRCodeURL(link string) string {
	return l.next.QRCodeURL(link)
}

// linkVerifierWithMetrics decorates LinkVerifier with metrics instrumentation.
type linkVerifierWithMetrics struct {
	next    LinkVerifier
	metrics metrics.BusinessMetrics
}

// NewLinkVerifierWithMetrics wraps a LinkVerifier with metrics recording.
func NewLinkVerifierWithMetrics(verifier LinkVerifier, m metrics.BusinessMetrics) LinkVerifier {
	return &linkVerifierWithMetrics{next: verifier, metrics: m}
}

// VerifyPaymentLink records metrics for payment link verification.
func (l *linkVerifierWithMetrics) VerifyPaymentLink(
	ctx context.Context,
	query url.Values,
) (*linksecDomain.PaymentIntent, error) {
	start := time.Now()
	intent, err := l.next.VerifyPaymentLink(ctx, query)
	record(ctx, l.metrics, "payment_link_verify", start, err)
	return intent, err
}

// VerifyReceiptLink records metrics for receipt link verification.
func (l *linkVerifierWithMetrics) VerifyReceiptLink(
	ctx context.Context,
	query url.Values,
) (*linksecDomain.ReceiptClaims, error) {
	start := time.Now()
	claims, err := l.next.VerifyReceiptLink(ctx, query)
	record(ctx, l.metrics, "receipt_link_verify", start, err)
	return claims, err
}

// VerifyWebhookLink records metrics for webhook link verification.
func (l *linkVerifierWithMetrics) VerifyWebhookLink(
	ctx context.Context,
	query url.Values,
) (*linksecDomain.WebhookClaims, error) {
	start := time.Now()
	claims, err := l.next.VerifyWebhookLink(ctx, query)
	record(ctx, l.metrics, "webhook_link_verify", start, err)
	return claims, err
}

func record(ctx context.Context, m metrics.BusinessMetrics, operation string, start time.Time, err error) {
	status := metrics.Outcome(err)
	m.RecordOperation(ctx, metricsDomain, operation, status)
	m.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}
