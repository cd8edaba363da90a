package service

import (
	"context"

	notifyDomain "github.com/paylink/terminal/internal/notify/domain"
)

// NoopNotifier drops every event. It is used when no chat webhook is configured.
type NoopNotifier struct{}

// NewNoopNotifier creates a NoopNotifier.
func NewNoopNotifier() *NoopNotifier {
	return &NoopNotifier{}
}

// Notify does nothing.
func (NoopNotifier) Notify(context.Context, notifyDomain.TransactionEvent) error {
	return nil
}
