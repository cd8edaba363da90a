// Package domain defines the payment gateway model.
package domain

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Payment statuses reported by the gateway.
const (
	StatusPaid   = "PAID"
	StatusFailed = "FAILED"
)

// DefaultTitle is the payment title used when the operator gives none.
const DefaultTitle = "POS Terminal Payment"

// CreatePaymentRequest is the body of a gateway payment creation call.
type CreatePaymentRequest struct {
	Title         string `json:"title"`
	OrderID       string `json:"order_id"`
	TotalAmount   string `json:"total_amount"`
	Currency      string `json:"currency"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CallbackURL   string `json:"callback_url"`
	WebhookURL    string `json:"webhook_url"`
}

// Amount is a gateway amount. The gateway sends it either as a JSON string or
// as a JSON number; both decode to the textual form.
type Amount string

// UnmarshalJSON accepts a string, a number, or null.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*a = Amount(n.String())
	return nil
}

// String returns the amount text.
func (a Amount) String() string {
	return string(a)
}

// Payment is the gateway's view of a payment, as returned by the status call
// and posted to the webhook.
type Payment struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	TotalAmount Amount `json:"total_amount"`
	OrderID     string `json:"order_id"`
	CreatedAt   string `json:"created_at"`
}

// Normalize applies the defaults for missing fields: status FAILED and amount "0".
func (p *Payment) Normalize() {
	p.Status = strings.ToUpper(strings.TrimSpace(p.Status))
	if p.Status == "" {
		p.Status = StatusFailed
	}
	if p.TotalAmount == "" {
		p.TotalAmount = "0"
	}
}

// IsPaid reports whether the payment completed.
func (p *Payment) IsPaid() bool {
	return strings.EqualFold(p.Status, StatusPaid)
}
