package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/paylink/terminal/internal/errors"
	linksecDomain "github.com/paylink/terminal/internal/linksec/domain"
	"github.com/paylink/terminal/internal/linksec/usecase/mocks"
)

var issuedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestRunIssueLink(t *testing.T) {
	ctx := context.Background()
	pii := linksecDomain.PIIRecord{Name: "Ali", Title: "Table 4"}
	link := &linksecDomain.PaymentLink{
		URL:      "https://pos.example.com/pay?amount=10000",
		Amount:   "10000",
		IssuedAt: issuedAt,
	}

	t.Run("text", func(t *testing.T) {
		issuer := &mocks.MockLinkIssuer{}
		issuer.On("IssuePaymentLink", ctx, "10000", pii).Return(link, nil)
		issuer.On("QRCodeURL", link.URL).Return("https://qr.example.com/?data=x")
		var out bytes.Buffer

		err := RunIssueLink(ctx, issuer, &out, "10000", pii, 30*time.Minute, "text")

		require.NoError(t, err)
		assert.Contains(t, out.String(), "Payment link: https://pos.example.com/pay?amount=10000")
		assert.Contains(t, out.String(), "QR code:      https://qr.example.com/?data=x")
		assert.Contains(t, out.String(), "Expires at:   2026-03-01T12:30:00Z")
		issuer.AssertExpectations(t)
	})

	t.Run("json", func(t *testing.T) {
		issuer := &mocks.MockLinkIssuer{}
		issuer.On("IssuePaymentLink", ctx, "10000", pii).Return(link, nil)
		issuer.On("QRCodeURL", link.URL).Return("https://qr.example.com/?data=x")
		var out bytes.Buffer

		err := RunIssueLink(ctx, issuer, &out, "10000", pii, 30*time.Minute, "json")

		require.NoError(t, err)
		var decoded issuedLinkOutput
		require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
		assert.Equal(t, link.URL, decoded.URL)
		assert.Equal(t, issuedAt.Add(30*time.Minute), decoded.ExpiresAt)
	})

	t.Run("invalid amount", func(t *testing.T) {
		issuer := &mocks.MockLinkIssuer{}

		err := RunIssueLink(ctx, issuer, &bytes.Buffer{}, "-5", pii, 30*time.Minute, "text")

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		issuer.AssertNotCalled(t, "IssuePaymentLink", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRunVerifyLink(t *testing.T) {
	ctx := context.Background()

	t.Run("payment link", func(t *testing.T) {
		verifier := &mocks.MockLinkVerifier{}
		query := url.Values{"amount": {"10000"}, "sig": {"abc"}}
		verifier.On("VerifyPaymentLink", ctx, query).Return(&linksecDomain.PaymentIntent{
			Amount:   "10000",
			PII:      linksecDomain.PIIRecord{Name: "Ali", Email: "ali@example.com"},
			IssuedAt: issuedAt,
		}, nil)
		var out bytes.Buffer

		err := RunVerifyLink(ctx, verifier, &out, "https://pos.example.com/pay?amount=10000&sig=abc", "text")

		require.NoError(t, err)
		assert.Contains(t, out.String(), "Valid payment link issued at 2026-03-01T12:00:00Z")
		assert.Contains(t, out.String(), "Amount:   10000")
		assert.Contains(t, out.String(), "Name:     Ali")
		assert.Contains(t, out.String(), "Email:    ali@example.com")
		assert.NotContains(t, out.String(), "Order ID")
	})

	t.Run("receipt link json", func(t *testing.T) {
		verifier := &mocks.MockLinkVerifier{}
		verifier.On("VerifyReceiptLink", ctx, mock.Anything).Return(&linksecDomain.ReceiptClaims{
			OrderID:  "AbC123xY",
			PII:      linksecDomain.PIIRecord{Name: "Ali", OrderID: "AbC123xY"},
			IssuedAt: issuedAt,
		}, nil)
		var out bytes.Buffer

		err := RunVerifyLink(ctx, verifier, &out, "https://pos.example.com/success?oid=AbC123xY", "json")

		require.NoError(t, err)
		var decoded verifiedLinkOutput
		require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
		assert.Equal(t, "receipt", decoded.Kind)
		assert.Equal(t, "AbC123xY", decoded.OrderID)
		assert.Equal(t, "Ali", decoded.Name)
	})

	t.Run("webhook link", func(t *testing.T) {
		verifier := &mocks.MockLinkVerifier{}
		verifier.On("VerifyWebhookLink", ctx, mock.Anything).Return(&linksecDomain.WebhookClaims{
			PII:      linksecDomain.PIIRecord{OrderID: "AbC123xY"},
			IssuedAt: issuedAt,
		}, nil)
		var out bytes.Buffer

		err := RunVerifyLink(ctx, verifier, &out, "https://pos.example.com/webhook?c=x", "text")

		require.NoError(t, err)
		assert.Contains(t, out.String(), "Valid webhook link")
		assert.Contains(t, out.String(), "Order ID: AbC123xY")
	})

	t.Run("verification failure", func(t *testing.T) {
		verifier := &mocks.MockLinkVerifier{}
		verifier.On("VerifyPaymentLink", ctx, mock.Anything).Return(nil, linksecDomain.ErrLinkExpired)

		err := RunVerifyLink(ctx, verifier, &bytes.Buffer{}, "https://pos.example.com/pay?amount=1", "text")

		assert.ErrorIs(t, err, linksecDomain.ErrLinkExpired)
	})

	t.Run("unknown path", func(t *testing.T) {
		err := RunVerifyLink(ctx, &mocks.MockLinkVerifier{}, &bytes.Buffer{}, "https://pos.example.com/generate", "text")
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("malformed url", func(t *testing.T) {
		err := RunVerifyLink(ctx, &mocks.MockLinkVerifier{}, &bytes.Buffer{}, "https://pos.example.com/%zz", "text")
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}
