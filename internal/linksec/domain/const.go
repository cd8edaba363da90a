package domain

import "time"

// Default link lifetimes.
const (
	DefaultPaymentLinkLifetime = 30 * time.Minute
	DefaultReceiptLifetime     = 48 * time.Hour
	DefaultClockSkew           = 5 * time.Minute

	// OrderIDLength is the length of generated order ids.
	OrderIDLength = 8
)

// Token version tags prefixed to encrypted PII tokens as "<tag>.".
const (
	TokenVersionAESGCM   = "v1"
	TokenVersionChaCha20 = "v2"
)

// WebhookAuthMode selects how gateway webhook callbacks are authenticated.
type WebhookAuthMode string

const (
	// WebhookAuthSigned embeds a signed, encrypted token in the callback URL.
	WebhookAuthSigned WebhookAuthMode = "signed"

	// WebhookAuthSecret embeds the static shared webhook secret in the callback URL.
	WebhookAuthSecret WebhookAuthMode = "secret"
)
