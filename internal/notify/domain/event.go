// Package domain defines the transaction events relayed to the chat notifier.
package domain

import "time"

const (
	// GuestName is shown when the customer left the name empty.
	GuestName = "Guest"
	// NoEmail is shown when the customer left the email empty.
	NoEmail = "No Email"
	// NotAvailable is shown when the gateway sent no transaction id.
	NotAvailable = "N/A"

	statusPaid = "PAID"
)

// TransactionEvent is a payment status update received from the gateway.
type TransactionEvent struct {
	Status        string
	Amount        string
	Currency      string
	ClientName    string
	ClientEmail   string
	OrderID       string
	TransactionID string
	OccurredAt    time.Time
}

// IsPaid reports whether the gateway marked the transaction as paid.
func (e TransactionEvent) IsPaid() bool {
	return e.Status == statusPaid
}

// WithDefaults returns a copy with display placeholders filled in for the
// optional fields.
func (e TransactionEvent) WithDefaults() TransactionEvent {
	if e.ClientName == "" {
		e.ClientName = GuestName
	}
	if e.ClientEmail == "" {
		e.ClientEmail = NoEmail
	}
	if e.TransactionID == "" {
		e.TransactionID = NotAvailable
	}
	if e.OrderID == "" {
		e.OrderID = NotAvailable
	}
	return e
}
