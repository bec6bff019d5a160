package ports

import (
	"context"

	"compliance/internal/core/domain/model/kernel"
	"compliance/internal/core/domain/model/order"
)

// TimelineRepository defines the persistence contract for the append-only
// audit timeline. Entries are never updated or deleted.
type TimelineRepository interface {
	// Append persists a new timeline entry.
	Append(ctx context.Context, entry order.TimelineEntry) error

	// GetAllForOrder retrieves an order's timeline ordered by creation
	// time ascending.
	GetAllForOrder(ctx context.Context, orderID kernel.UUID) ([]order.TimelineEntry, error)
}
