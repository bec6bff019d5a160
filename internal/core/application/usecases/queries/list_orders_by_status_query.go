package queries

import (
	"errors"
	"time"

	"compliance/internal/core/domain/model/kernel"
	"compliance/internal/core/domain/model/order"
	"compliance/internal/pkg/errs"
	"compliance/internal/pkg/guard"
)

var ErrListOrdersByStatusQueryIsNotConstructed = errors.New(
	"ListOrdersByStatusQuery must be created via NewListOrdersByStatusQuery constructor",
)

// SortKey selects the ordering of a pipeline stage listing.
type SortKey string

const (
	// SortEnteredDesc lists the orders that entered the stage most
	// recently first. This is the default.
	SortEnteredDesc SortKey = "entered_desc"

	// SortEnteredAsc lists the longest-waiting orders first.
	SortEnteredAsc SortKey = "entered_asc"

	// SortPriority lists priority orders first, most recent stage entry
	// within each group.
	SortPriority SortKey = "priority"

	// SortSLAAsc lists the least remaining SLA budget first; orders
	// without an SLA budget sort last.
	SortSLAAsc SortKey = "sla_asc"

	// SortCreatedDesc lists the newest orders first.
	SortCreatedDesc SortKey = "created_desc"

	// SortCreatedAsc lists the oldest orders first.
	SortCreatedAsc SortKey = "created_asc"
)

func sortKeyClauses() map[SortKey]string {
	return map[SortKey]string{
		SortEnteredDesc: "updated_at DESC",
		SortEnteredAsc:  "updated_at ASC",
		SortPriority:    "priority DESC, updated_at DESC",
		SortSLAAsc:      "sla_remaining_seconds ASC NULLS LAST, updated_at ASC",
		SortCreatedDesc: "created_at DESC",
		SortCreatedAsc:  "created_at ASC",
	}
}

// Validate checks the sort key is one of the supported orderings.
func (k SortKey) Validate() error {
	if _, ok := sortKeyClauses()[k]; !ok {
		return errs.NewValueIsInvalidError("sortKey")
	}
	return nil
}

// ListOrdersByStatusQuery lists the orders currently in one pipeline stage.
type ListOrdersByStatusQuery struct {
	status  order.Status
	sortKey SortKey

	guard guard.ConstructorGuard
}

// NewListOrdersByStatusQuery creates the query. An empty sort key defaults
// to entered_desc.
func NewListOrdersByStatusQuery(status order.Status, sortKey SortKey) (ListOrdersByStatusQuery, error) {
	if err := status.Validate(); err != nil {
		return ListOrdersByStatusQuery{}, err
	}
	if sortKey == "" {
		sortKey = SortEnteredDesc
	}
	if err := sortKey.Validate(); err != nil {
		return ListOrdersByStatusQuery{}, err
	}

	return ListOrdersByStatusQuery{
		status:  status,
		sortKey: sortKey,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersByStatusQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersByStatusQueryIsNotConstructed)
}

// Status returns the pipeline stage to list.
func (q ListOrdersByStatusQuery) Status() order.Status { return q.status }

// SortKey returns the requested ordering.
func (q ListOrdersByStatusQuery) SortKey() SortKey { return q.sortKey }

// OrderSummary is one row of a stage listing.
type OrderSummary struct {
	ID              kernel.UUID
	Status          string
	Priority        bool
	CustomerName    string
	ServiceName     string
	ServiceCode     string
	CreatedAt       time.Time
	EnteredStatusAt time.Time

	// SLARemaining is nil for orders without an SLA budget; negative when
	// the budget is already exhausted.
	SLARemaining *time.Duration
}
