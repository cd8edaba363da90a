package domain

import (
	"github.com/paylink/terminal/internal/errors"
)

var (
	// ErrMissingPaymentID indicates the gateway redirect carried no payment id.
	ErrMissingPaymentID = errors.Wrap(errors.ErrInvalidInput, "payment id is required")

	// ErrInvalidWebhookPayload indicates the webhook body is not a JSON payment object.
	ErrInvalidWebhookPayload = errors.Wrap(errors.ErrInvalidInput, "invalid webhook payload")
)
