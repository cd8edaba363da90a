// Package domain defines the link-security model: purpose tags, PII records,
// canonical signing strings, and the claims produced by link verification.
package domain

// Purpose binds a signature to one specific use. The tag is part of the MAC
// input, so a signature minted for one purpose never verifies under another.
type Purpose string

const (
	// PurposePay signs payment-intent links (/pay).
	PurposePay Purpose = "PAY"

	// PurposeReceipt signs receipt links (/success).
	PurposeReceipt Purpose = "RCT"

	// PurposeWebhook signs gateway webhook callback links (/webhook).
	PurposeWebhook Purpose = "WEBHOOK"

	// PurposeSession signs operator session tokens.
	PurposeSession Purpose = "SESSION"
)

// Valid reports whether p is a known purpose tag.
func (p Purpose) Valid() bool {
	switch p {
	case PurposePay, PurposeReceipt, PurposeWebhook, PurposeSession:
		return true
	default:
		return false
	}
}

// String returns the tag as it appears in signed data.
func (p Purpose) String() string {
	return string(p)
}
