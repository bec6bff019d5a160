package ports

import (
	"context"

	"compliance/internal/core/domain/model/kernel"
)

// Notification is one message handed to the external dispatcher: template
// name, recipient address and template context.
type Notification struct {
	OrderID   kernel.UUID
	Template  string
	Recipient string
	Context   map[string]string
}

// NotificationDispatcher is the outbound port to the external notification
// collaborator. Dispatch is fire-and-forget from the engine's perspective:
// a dispatch failure is logged for retry and never fails the transition
// that triggered it.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, notification Notification) error
}
