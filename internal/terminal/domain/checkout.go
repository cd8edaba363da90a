// Package domain defines the checkout model of the POS terminal: the operator's
// payment request, the share screen, the customer receipt and the gateway
// status callback.
package domain

import (
	"time"

	gatewayDomain "github.com/paylink/terminal/internal/gateway/domain"
)

// PaymentRequest is what the operator enters on the terminal form.
type PaymentRequest struct {
	Amount string
	Title  string
	Name   string
	Email  string
}

// ShareLink is a freshly issued payment link ready to be shown as a QR code.
type ShareLink struct {
	Amount    string
	Currency  string
	Title     string
	PayURL    string
	QRCodeURL string
	IssuedAt  time.Time
}

// Receipt is the customer-facing view of a verified, gateway-confirmed payment.
type Receipt struct {
	PaymentID     string
	OrderID       string
	Amount        string
	Currency      string
	Status        string
	CustomerName  string
	CustomerEmail string
}

// IsPaid reports whether the receipt shows a completed payment.
func (r *Receipt) IsPaid() bool {
	return r.Status == gatewayDomain.StatusPaid
}
