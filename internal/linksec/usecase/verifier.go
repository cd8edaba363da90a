package usecase

import (
	"context"
	"crypto/subtle"
	"net/url"
	"strconv"
	"time"

	linksecDomain "github.com/paylink/terminal/internal/linksec/domain"
	linksecService "github.com/paylink/terminal/internal/linksec/service"
)

// VerifierConfig configures a LinkVerifier. Zero durations take the package defaults.
type VerifierConfig struct {
	PaymentLinkLifetime time.Duration
	ReceiptLifetime     time.Duration
	WebhookLifetime     time.Duration
	ClockSkew           time.Duration
	WebhookAuthMode     linksecDomain.WebhookAuthMode
	WebhookSecret       string
}

type linkVerifier struct {
	config VerifierConfig
	signer linksecService.Signer
	vault  linksecService.Vault
	now    func() time.Time
}

// VerifyPaymentLink returns the amount and customer fields of a valid /pay link.
func (l *linkVerifier) VerifyPaymentLink(
	ctx context.Context,
	query url.Values,
) (*linksecDomain.PaymentIntent, error) {
	amount := query.Get(linksecDomain.ParamAmount)
	issuedAtMs := query.Get(linksecDomain.ParamTime)
	token := query.Get(linksecDomain.ParamToken)

	issuedAt, err := l.checkIssuedAt(issuedAtMs, l.config.PaymentLinkLifetime)
	if err != nil {
		return nil, err
	}

	if !l.verifySignature(
		linksecDomain.PurposePay,
		linksecDomain.PaymentCanonical(amount, issuedAtMs, token),
		query.Get(linksecDomain.ParamSignature),
	) {
		return nil, linksecDomain.ErrInvalidSignature
	}

	pii, err := l.vault.Decrypt(token)
	if err != nil {
		return nil, linksecDomain.ErrInvalidToken
	}

	return &linksecDomain.PaymentIntent{
		Amount:   amount,
		PII:      pii,
		IssuedAt: issuedAt,
	}, nil
}

// VerifyReceiptLink returns the order id and customer fields of a valid /success link.
func (l *linkVerifier) VerifyReceiptLink(
	ctx context.Context,
	query url.Values,
) (*linksecDomain.ReceiptClaims, error) {
	orderID := query.Get(linksecDomain.ParamOrderID)
	issuedAtMs := query.Get(linksecDomain.ParamTime)
	unixSeconds := query.Get(linksecDomain.ParamUnixTime)
	token := query.Get(linksecDomain.ParamToken)

	issuedAt, err := l.checkIssuedAt(issuedAtMs, l.config.ReceiptLifetime)
	if err != nil {
		return nil, err
	}

	if !l.verifySignature(
		linksecDomain.PurposeReceipt,
		linksecDomain.ReceiptCanonical(orderID, issuedAtMs, unixSeconds, token),
		query.Get(linksecDomain.ParamSignature),
	) {
		return nil, linksecDomain.ErrInvalidSignature
	}

	pii, err := l.vault.Decrypt(token)
	if err != nil {
		return nil, linksecDomain.ErrInvalidToken
	}

	if orderID == "" || pii.OrderID != orderID {
		return nil, linksecDomain.ErrCrossCheckFailed
	}

	return &linksecDomain.ReceiptClaims{
		OrderID:  orderID,
		PII:      pii,
		IssuedAt: issuedAt,
	}, nil
}

// VerifyWebhookLink authenticates a /webhook call. In signed mode the link must
// carry a valid, unexpired WEBHOOK signature. In secret mode the static secret
// is compared in constant time and the optional token is opened afterwards.
func (l *linkVerifier) VerifyWebhookLink(
	ctx context.Context,
	query url.Values,
) (*linksecDomain.WebhookClaims, error) {
	token := query.Get(linksecDomain.ParamToken)

	if l.config.WebhookAuthMode == linksecDomain.WebhookAuthSecret {
		candidate := query.Get(linksecDomain.ParamSecret)
		if l.config.WebhookSecret == "" ||
			subtle.ConstantTimeCompare([]byte(candidate), []byte(l.config.WebhookSecret)) != 1 {
			return nil, linksecDomain.ErrInvalidWebhookSecret
		}
		if token == "" {
			return &linksecDomain.WebhookClaims{}, nil
		}
		pii, err := l.vault.Decrypt(token)
		if err != nil {
			return nil, linksecDomain.ErrInvalidToken
		}
		return &linksecDomain.WebhookClaims{PII: pii}, nil
	}

	issuedAtMs := query.Get(linksecDomain.ParamTime)
	issuedAt, err := l.checkIssuedAt(issuedAtMs, l.config.WebhookLifetime)
	if err != nil {
		return nil, err
	}

	if !l.verifySignature(
		linksecDomain.PurposeWebhook,
		linksecDomain.WebhookCanonical(token, issuedAtMs),
		query.Get(linksecDomain.ParamSignature),
	) {
		return nil, linksecDomain.ErrInvalidSignature
	}

	pii, err := l.vault.Decrypt(token)
	if err != nil {
		return nil, linksecDomain.ErrInvalidToken
	}

	return &linksecDomain.WebhookClaims{PII: pii, IssuedAt: issuedAt}, nil
}

// checkIssuedAt parses the millisecond issue time and applies the expiry rule
// now - issuedAt > lifetime. A missing value reads as 0 and is therefore
// expired. A malformed value, or one further in the future than the clock
// skew, cannot have come from the issuer and is reported as a bad signature.
func (l *linkVerifier) checkIssuedAt(issuedAtMs string, lifetime time.Duration) (time.Time, error) {
	var ms int64
	if issuedAtMs != "" {
		parsed, err := strconv.ParseInt(issuedAtMs, 10, 64)
		if err != nil {
			return time.Time{}, linksecDomain.ErrInvalidSignature
		}
		ms = parsed
	}

	now := l.now()
	issuedAt := time.UnixMilli(ms)

	if issuedAt.Sub(now) > l.config.ClockSkew {
		return time.Time{}, linksecDomain.ErrInvalidSignature
	}
	if now.Sub(issuedAt) > lifetime {
		return time.Time{}, linksecDomain.ErrLinkExpired
	}

	return issuedAt, nil
}

func (l *linkVerifier) verifySignature(purpose linksecDomain.Purpose, canonical, signature string) bool {
	if signature == "" {
		return false
	}
	return l.signer.Verify(purpose, canonical, signature)
}

// NewLinkVerifier creates a LinkVerifier. A nil now defaults to time.Now.
func NewLinkVerifier(
	config VerifierConfig,
	signer linksecService.Signer,
	vault linksecService.Vault,
	now func() time.Time,
) LinkVerifier {
	if config.PaymentLinkLifetime <= 0 {
		config.PaymentLinkLifetime = linksecDomain.DefaultPaymentLinkLifetime
	}
	if config.ReceiptLifetime <= 0 {
		config.ReceiptLifetime = linksecDomain.DefaultReceiptLifetime
	}
	if config.WebhookLifetime <= 0 {
		config.WebhookLifetime = config.ReceiptLifetime
	}
	if config.ClockSkew <= 0 {
		config.ClockSkew = linksecDomain.DefaultClockSkew
	}
	if now == nil {
		now = time.Now
	}
	return &linkVerifier{
		config: config,
		signer: signer,
		vault:  vault,
		now:    now,
	}
}
