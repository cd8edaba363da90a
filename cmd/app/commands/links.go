package commands

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"time"

	validation "github.com/jellydator/validation"

	apperrors "github.com/paylink/terminal/internal/errors"
	linksecDomain "github.com/paylink/terminal/internal/linksec/domain"
	linksecUseCase "github.com/paylink/terminal/internal/linksec/usecase"
	customValidation "github.com/paylink/terminal/internal/validation"
)

type issuedLinkOutput struct {
	URL       string    `json:"url"`
	QRCodeURL string    `json:"qr_code_url"`
	Amount    string    `json:"amount"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type verifiedLinkOutput struct {
	Kind     string    `json:"kind"`
	Amount   string    `json:"amount,omitempty"`
	OrderID  string    `json:"order_id,omitempty"`
	Name     string    `json:"name,omitempty"`
	Email    string    `json:"email,omitempty"`
	Title    string    `json:"title,omitempty"`
	IssuedAt time.Time `json:"issued_at"`
}

// RunIssueLink mints a payment link outside the web terminal, e.g. for links
// sent by email. lifetime is only used to print the expiry time.
func RunIssueLink(
	ctx context.Context,
	issuer linksecUseCase.LinkIssuer,
	out io.Writer,
	amount string,
	pii linksecDomain.PIIRecord,
	lifetime time.Duration,
	format string,
) error {
	if err := validation.Validate(amount, validation.Required, customValidation.Amount); err != nil {
		return customValidation.WrapValidationError(err)
	}

	link, err := issuer.IssuePaymentLink(ctx, amount, pii)
	if err != nil {
		return err
	}

	output := issuedLinkOutput{
		URL:       link.URL,
		QRCodeURL: issuer.QRCodeURL(link.URL),
		Amount:    link.Amount,
		IssuedAt:  link.IssuedAt.UTC(),
		ExpiresAt: link.IssuedAt.Add(lifetime).UTC(),
	}

	if format == "json" {
		return writeJSON(out, output)
	}

	_, _ = fmt.Fprintf(out, "Payment link: %s\n", output.URL)
	_, _ = fmt.Fprintf(out, "QR code:      %s\n", output.QRCodeURL)
	_, _ = fmt.Fprintf(out, "Amount:       %s\n", output.Amount)
	_, _ = fmt.Fprintf(out, "Expires at:   %s\n", output.ExpiresAt.Format(time.RFC3339))
	return nil
}

// RunVerifyLink verifies a /pay, /success or /webhook URL exactly as the
// server would and prints what the link carries.
func RunVerifyLink(
	ctx context.Context,
	verifier linksecUseCase.LinkVerifier,
	out io.Writer,
	rawURL string,
	format string,
) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "malformed url")
	}

	query := parsed.Query()
	var output verifiedLinkOutput

	switch path.Base(parsed.Path) {
	case "pay":
		intent, err := verifier.VerifyPaymentLink(ctx, query)
		if err != nil {
			return err
		}
		output = verifiedLinkOutput{Kind: "payment", Amount: intent.Amount, IssuedAt: intent.IssuedAt}
		output.withPII(intent.PII)
	case "success":
		claims, err := verifier.VerifyReceiptLink(ctx, query)
		if err != nil {
			return err
		}
		output = verifiedLinkOutput{Kind: "receipt", OrderID: claims.OrderID, IssuedAt: claims.IssuedAt}
		output.withPII(claims.PII)
	case "webhook":
		claims, err := verifier.VerifyWebhookLink(ctx, query)
		if err != nil {
			return err
		}
		output = verifiedLinkOutput{Kind: "webhook", IssuedAt: claims.IssuedAt}
		output.withPII(claims.PII)
	default:
		return apperrors.Wrap(apperrors.ErrInvalidInput, "url path must be /pay, /success or /webhook")
	}
	output.IssuedAt = output.IssuedAt.UTC()

	if format == "json" {
		return writeJSON(out, output)
	}

	_, _ = fmt.Fprintf(out, "Valid %s link issued at %s\n", output.Kind, output.IssuedAt.Format(time.RFC3339))
	for _, field := range []struct{ label, value string }{
		{"Amount", output.Amount},
		{"Order ID", output.OrderID},
		{"Name", output.Name},
		{"Email", output.Email},
		{"Title", output.Title},
	} {
		if field.value != "" {
			_, _ = fmt.Fprintf(out, "%-9s %s\n", field.label+":", field.value)
		}
	}
	return nil
}

func (o *verifiedLinkOutput) withPII(pii linksecDomain.PIIRecord) {
	o.Name = pii.Name
	o.Email = pii.Email
	o.Title = pii.Title
	if o.OrderID == "" {
		o.OrderID = pii.OrderID
	}
}
