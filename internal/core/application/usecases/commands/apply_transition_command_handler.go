package commands

import (
	"context"
	"log/slog"
	"time"

	"compliance/internal/core/domain/model/order"
	"compliance/internal/core/ports"
	"compliance/internal/pkg/errs"
)

// TransitionResult carries the committed outcome of a transition back to
// the caller: the updated order and the appended timeline entry.
type TransitionResult struct {
	Order *order.Order
	Entry order.TimelineEntry
}

// ApplyTransitionCommandHandler validates and applies state transitions.
// The order update and timeline append commit atomically; delivery
// notifications fire after the commit and never affect the transition.
type ApplyTransitionCommandHandler struct {
	uowFactory OrderUoWFactory
	dispatcher ports.NotificationDispatcher
	logger     *slog.Logger
}

// NewApplyTransitionCommandHandler creates a handler for transition requests.
func NewApplyTransitionCommandHandler(
	uowFactory OrderUoWFactory,
	dispatcher ports.NotificationDispatcher,
	logger *slog.Logger,
) ApplyTransitionCommandHandler {
	return ApplyTransitionCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		logger:     logger.With("component", "apply_transition_handler"),
	}
}

// Handle loads the order, applies the requested action and commits the new
// status together with its timeline entry. Rollback actions are resolved
// against the order's own timeline history. A losing concurrent write
// surfaces as ConcurrentModification; the caller reloads and retries.
func (h ApplyTransitionCommandHandler) Handle(
	ctx context.Context,
	command ApplyTransitionCommand,
) (TransitionResult, error) {
	if err := command.Validate(); err != nil {
		return TransitionResult{}, err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return TransitionResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()
	timeline := uow.TimelineRepository()

	aggregate, err := orders.Get(ctx, command.OrderID())
	if err != nil {
		return TransitionResult{}, err
	}

	var entry order.TimelineEntry
	if command.Action() == order.ActionRollback {
		entry, err = h.rollback(ctx, timeline, aggregate, command, now)
	} else {
		entry, err = aggregate.ApplyAction(
			command.Action(), command.TransitionType(), command.Reason(), command.Actor(), now,
		)
	}
	if err != nil {
		return TransitionResult{}, err
	}

	if err = orders.Update(ctx, aggregate); err != nil {
		return TransitionResult{}, err
	}
	if err = timeline.Append(ctx, entry); err != nil {
		return TransitionResult{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return TransitionResult{}, err
	}

	h.notifyDelivery(ctx, aggregate, entry)

	return TransitionResult{Order: aggregate, Entry: entry}, nil
}

// rollback resolves the explicit target against the statuses the order has
// actually occupied, taken from its timeline.
func (h ApplyTransitionCommandHandler) rollback(
	ctx context.Context,
	timeline ports.TimelineRepository,
	aggregate *order.Order,
	command ApplyTransitionCommand,
	now time.Time,
) (order.TimelineEntry, error) {
	if command.RollbackTarget() == nil {
		return order.TimelineEntry{}, errs.NewValueIsRequiredError("rollbackTarget")
	}

	entries, err := timeline.GetAllForOrder(ctx, aggregate.ID())
	if err != nil {
		return order.TimelineEntry{}, err
	}

	history := make([]order.Status, 0, len(entries))
	for _, e := range entries {
		history = append(history, e.NewState())
	}

	return aggregate.Rollback(
		*command.RollbackTarget(), history, command.Reason(), command.Actor(), now,
	)
}

// notifyDelivery fires the delivery notification on entering DELIVERING or
// COMPLETED. Failures are logged for the retry channel, never propagated.
func (h ApplyTransitionCommandHandler) notifyDelivery(
	ctx context.Context,
	aggregate *order.Order,
	entry order.TimelineEntry,
) {
	var template string
	switch entry.NewState() {
	case order.Delivering:
		template = "delivery_started"
	case order.Completed:
		template = "delivery_completed"
	default:
		return
	}

	notification := ports.Notification{
		OrderID:   aggregate.ID(),
		Template:  template,
		Recipient: aggregate.Customer().Email(),
		Context: map[string]string{
			"customer_name": aggregate.Customer().Name(),
			"service_name":  aggregate.Service().Name(),
			"status":        entry.NewState().String(),
		},
	}

	if err := h.dispatcher.Dispatch(ctx, notification); err != nil {
		h.logger.ErrorContext(ctx, "delivery notification failed",
			"order_id", aggregate.ID().String(),
			"template", template,
			"error", err,
		)
	}
}
