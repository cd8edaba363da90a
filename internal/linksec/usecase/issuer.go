package usecase

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	linksecDomain "github.com/paylink/terminal/internal/linksec/domain"
	linksecService "github.com/paylink/terminal/internal/linksec/service"
)

// DefaultQRCodeBaseURL renders QR codes through the public qrserver API.
const DefaultQRCodeBaseURL = "https://api.qrserver.com/v1/create-qr-code/"

// IssuerConfig configures a LinkIssuer.
type IssuerConfig struct {
	// BaseURL is the public origin links are rooted at, e.g. "https://pos.example.com".
	BaseURL         string
	QRCodeBaseURL   string
	WebhookAuthMode linksecDomain.WebhookAuthMode
	WebhookSecret   string
}

type linkIssuer struct {
	config   IssuerConfig
	signer   linksecService.Signer
	vault    linksecService.Vault
	orderIDs linksecService.OrderIDGenerator
	now      func() time.Time
}

// IssuePaymentLink seals the customer fields and signs amount, time and token
// under the PAY purpose.
func (l *linkIssuer) IssuePaymentLink(
	ctx context.Context,
	amount string,
	pii linksecDomain.PIIRecord,
) (*linksecDomain.PaymentLink, error) {
	if amount == "" {
		return nil, linksecDomain.ErrEmptyAmount
	}

	pii.OrderID = ""
	token, err := l.vault.Encrypt(pii)
	if err != nil {
		return nil, err
	}

	issuedAt := l.now()
	issuedAtMs := strconv.FormatInt(issuedAt.UnixMilli(), 10)

	signature, err := l.signer.Sign(
		linksecDomain.PurposePay,
		linksecDomain.PaymentCanonical(amount, issuedAtMs, token),
	)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set(linksecDomain.ParamAmount, amount)
	query.Set(linksecDomain.ParamTime, issuedAtMs)
	query.Set(linksecDomain.ParamToken, token)
	query.Set(linksecDomain.ParamSignature, signature)

	return &linksecDomain.PaymentLink{
		URL:       l.absolute("/pay", query),
		Amount:    amount,
		Token:     token,
		IssuedAt:  issuedAt,
		Signature: signature,
	}, nil
}

// IssueReceiptLink binds the order id into a fresh token and signs the receipt
// link under RCT. The webhook link reuses the token and is signed under WEBHOOK,
// or carries the static secret when the issuer runs in secret mode.
func (l *linkIssuer) IssueReceiptLink(
	ctx context.Context,
	orderID string,
	pii linksecDomain.PIIRecord,
) (*linksecDomain.ReceiptLinks, error) {
	if orderID == "" {
		generated, err := l.orderIDs.Generate(linksecDomain.OrderIDLength)
		if err != nil {
			return nil, fmt.Errorf("failed to generate order id: %w", err)
		}
		orderID = generated
	}

	pii.OrderID = orderID
	token, err := l.vault.Encrypt(pii)
	if err != nil {
		return nil, err
	}

	issuedAt := l.now()
	issuedAtMs := strconv.FormatInt(issuedAt.UnixMilli(), 10)
	unixSeconds := strconv.FormatInt(issuedAt.Unix(), 10)

	receiptSignature, err := l.signer.Sign(
		linksecDomain.PurposeReceipt,
		linksecDomain.ReceiptCanonical(orderID, issuedAtMs, unixSeconds, token),
	)
	if err != nil {
		return nil, err
	}

	successQuery := url.Values{}
	successQuery.Set(linksecDomain.ParamOrderID, orderID)
	successQuery.Set(linksecDomain.ParamToken, token)
	successQuery.Set(linksecDomain.ParamTime, issuedAtMs)
	successQuery.Set(linksecDomain.ParamUnixTime, unixSeconds)
	successQuery.Set(linksecDomain.ParamSignature, receiptSignature)

	webhookQuery := url.Values{}
	webhookQuery.Set(linksecDomain.ParamToken, token)

	switch l.config.WebhookAuthMode {
	case linksecDomain.WebhookAuthSecret:
		webhookQuery.Set(linksecDomain.ParamSecret, l.config.WebhookSecret)
	default:
		webhookSignature, err := l.signer.Sign(
			linksecDomain.PurposeWebhook,
			linksecDomain.WebhookCanonical(token, issuedAtMs),
		)
		if err != nil {
			return nil, err
		}
		webhookQuery.Set(linksecDomain.ParamTime, issuedAtMs)
		webhookQuery.Set(linksecDomain.ParamSignature, webhookSignature)
	}

	return &linksecDomain.ReceiptLinks{
		OrderID:    orderID,
		SuccessURL: l.absolute("/success", successQuery),
		WebhookURL: l.absolute("/webhook", webhookQuery),
		IssuedAt:   issuedAt,
	}, nil
}

// QRCodeURL returns a 450x450 QR code image URL for link.
func (l *linkIssuer) QRCodeURL(link string) string {
	base := l.config.QRCodeBaseURL
	if base == "" {
		base = DefaultQRCodeBaseURL
	}
	return base + "?size=450x450&data=" + url.QueryEscape(link)
}

func (l *linkIssuer) absolute(path string, query url.Values) string {
	return strings.TrimRight(l.config.BaseURL, "/") + path + "?" + query.Encode()
}

// NewLinkIssuer creates a LinkIssuer. A nil now defaults to time.Now.
func NewLinkIssuer(
	config IssuerConfig,
	signer linksecService.Signer,
	vault linksecService.Vault,
	orderIDs linksecService.OrderIDGenerator,
	now func() time.Time,
) LinkIssuer {
	if now == nil {
		now = time.Now
	}
	return &linkIssuer{
		config:   config,
		signer:   signer,
		vault:    vault,
		orderIDs: orderIDs,
		now:      now,
	}
}
