package ports

import (
	"context"

	"compliance/internal/core/domain/model/kernel"
	"compliance/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order using optimistic
	// concurrency: it fails with ConcurrentModification when the stored
	// aggregate version differs from the one the aggregate was loaded with.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllInStatus retrieves all orders currently in the given status.
	// Used by scheduled jobs (delivery retry, stalled-order monitoring).
	GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error)
}
