package domain

import (
	"github.com/paylink/terminal/internal/errors"
)

// Gateway errors.
var (
	// ErrGatewayBlocked indicates the gateway answered with an HTML page, typically a firewall challenge.
	ErrGatewayBlocked = errors.Wrap(errors.ErrBadGateway, "gateway firewall block")

	// ErrGatewayUnreachable indicates a transport failure talking to the gateway.
	ErrGatewayUnreachable = errors.Wrap(errors.ErrBadGateway, "gateway unreachable")

	// ErrGatewayInvalidResponse indicates a gateway response that is not valid JSON.
	ErrGatewayInvalidResponse = errors.Wrap(errors.ErrBadGateway, "gateway invalid response")

	// ErrPaymentNotFound indicates the gateway does not know the payment id.
	ErrPaymentNotFound = errors.Wrap(errors.ErrNotFound, "payment not found")
)

// GatewayError is a well-formed gateway refusal carrying the gateway's message.
type GatewayError struct {
	Message string
}

func (e *GatewayError) Error() string {
	return "gateway error: " + e.Message
}

// Unwrap lets GatewayError match ErrBadGateway.
func (e *GatewayError) Unwrap() error {
	return errors.ErrBadGateway
}
