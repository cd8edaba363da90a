// Package service delivers transaction events to an operator chat channel.
package service

import (
	"context"

	notifyDomain "github.com/paylink/terminal/internal/notify/domain"
)

// Notifier publishes transaction events.
type Notifier interface {
	// Notify delivers one event. The returned error is informational: callers
	// log it and carry on.
	Notify(ctx context.Context, event notifyDomain.TransactionEvent) error
}
