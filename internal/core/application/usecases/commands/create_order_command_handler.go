package commands

import (
	"context"
	"time"

	"compliance/internal/core/domain/model/kernel"
	"compliance/internal/core/domain/model/order"
)

// CreateOrderCommandHandler persists new orders together with their synthetic
// creation timeline entry.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order intake.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle creates the order in CREATED status and returns its identifier.
// The order row and the creation timeline entry commit in one transaction.
func (h CreateOrderCommandHandler) Handle(
	ctx context.Context,
	command CreateOrderCommand,
) (kernel.UUID, error) {
	if err := command.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	now := time.Now().UTC()
	id := kernel.NewUUID()

	aggregate, err := order.NewOrder(
		id,
		command.Customer(),
		command.Service(),
		command.Pricing(),
		command.SLAHours(),
		command.Priority(),
		command.InternalNotes(),
		now,
	)
	if err != nil {
		return kernel.UUID{}, err
	}

	entry, err := order.NewTimelineEntry(
		id, order.Created, order.Created, order.SystemAuto, "order created", "system", now,
	)
	if err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return kernel.UUID{}, err
	}
	if err = uow.TimelineRepository().Append(ctx, entry); err != nil {
		return kernel.UUID{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return id, nil
}
