package ports

import (
	"context"

	"compliance/internal/core/domain/model/document"
	"compliance/internal/core/domain/model/kernel"
)

// DocumentVersionRepository defines the persistence contract for document
// versions. Versions are immutable once created; only the approval flag is
// ever written after creation.
type DocumentVersionRepository interface {
	// Add persists a new document version. The (order, version) pair is
	// unique; inserting a duplicate fails.
	Add(ctx context.Context, version *document.Version) error

	// Get retrieves one version of an order's document.
	Get(ctx context.Context, orderID kernel.UUID, version int) (*document.Version, error)

	// GetAllForOrder retrieves all versions of an order's document,
	// ordered by version number ascending.
	GetAllForOrder(ctx context.Context, orderID kernel.UUID) ([]*document.Version, error)

	// MaxVersion returns the highest version number recorded for the
	// order, 0 when none exist.
	MaxVersion(ctx context.Context, orderID kernel.UUID) (int, error)

	// MarkApproved sets the approval flag on one version. Called at most
	// once per order, in the same unit of work that locks the order.
	MarkApproved(ctx context.Context, orderID kernel.UUID, version int) error
}
