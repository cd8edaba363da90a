package domain

import (
	"github.com/paylink/terminal/internal/errors"
)

// Link-security errors. Every verification failure is terminal and fails closed.
var (
	// ErrLinkExpired indicates the link is older than its lifetime.
	ErrLinkExpired = errors.Wrap(errors.ErrExpired, "link expired")

	// ErrInvalidSignature indicates a missing, malformed, or mismatching signature.
	ErrInvalidSignature = errors.Wrap(errors.ErrForbidden, "invalid signature")

	// ErrInvalidToken indicates the encrypted PII token could not be authenticated or parsed.
	ErrInvalidToken = errors.Wrap(errors.ErrForbidden, "invalid token")

	// ErrCrossCheckFailed indicates the order id inside the token differs from the one in the URL.
	ErrCrossCheckFailed = errors.Wrap(errors.ErrForbidden, "cross-check failed")

	// ErrInvalidWebhookSecret indicates a webhook call carrying the wrong static secret.
	ErrInvalidWebhookSecret = errors.Wrap(errors.ErrForbidden, "invalid webhook secret")

	// ErrEmptySecret indicates a signing or encryption secret that is empty.
	ErrEmptySecret = errors.Wrap(errors.ErrInvalidInput, "secret must not be empty")

	// ErrSharedSecret indicates identical signing and encryption secrets without explicit opt-in.
	ErrSharedSecret = errors.Wrap(errors.ErrInvalidInput, "signing and encryption secrets must differ")

	// ErrUnknownPurpose indicates a purpose tag outside the known set.
	ErrUnknownPurpose = errors.Wrap(errors.ErrInvalidInput, "unknown purpose")
)

// ErrEmptyAmount indicates a payment link request without an amount.
var ErrEmptyAmount = errors.Wrap(errors.ErrInvalidInput, "amount must not be empty")
