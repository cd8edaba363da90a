package domain

import "time"

// PaymentLink is an issued payment-intent link.
type PaymentLink struct {
	URL       string
	Amount    string
	Token     string
	IssuedAt  time.Time
	Signature string
}

// ReceiptLinks are the links minted when a payment intent is accepted: the
// customer-facing receipt URL and the gateway-facing webhook URL.
type ReceiptLinks struct {
	OrderID    string
	SuccessURL string
	WebhookURL string
	IssuedAt   time.Time
}

// PaymentIntent is the verified content of a payment-intent link.
type PaymentIntent struct {
	Amount   string
	PII      PIIRecord
	IssuedAt time.Time
}

// ReceiptClaims is the verified content of a receipt link.
type ReceiptClaims struct {
	OrderID  string
	PII      PIIRecord
	IssuedAt time.Time
}

// WebhookClaims is the verified content of a webhook callback link.
type WebhookClaims struct {
	PII      PIIRecord
	IssuedAt time.Time
}
