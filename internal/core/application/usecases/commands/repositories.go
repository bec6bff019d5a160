package commands

import (
	"context"

	"compliance/internal/core/ports"
)

// OrderUoWFactory creates units of work for commands that touch only the
// order and timeline stores.
type OrderUoWFactory interface {
	Create() OrderUoW
}

// OrderUoW is the unit-of-work surface for order-and-timeline commands.
type OrderUoW interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() ports.OrderRepository
	TimelineRepository() ports.TimelineRepository
}

// UoWFactory creates units of work for commands that also touch the
// document version store.
type UoWFactory interface {
	Create() UoW
}

// UoW is the full unit-of-work surface across all three stores.
type UoW interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() ports.OrderRepository
	DocumentVersionRepository() ports.DocumentVersionRepository
	TimelineRepository() ports.TimelineRepository
}
