package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"compliance/internal/core/domain/model/order"
)

// MarkPaidCommandHandler confirms payment and moves the order into the
// pipeline's paid stage.
type MarkPaidCommandHandler struct {
	uowFactory OrderUoWFactory
	logger     *slog.Logger
}

// NewMarkPaidCommandHandler creates a handler for payment confirmations.
func NewMarkPaidCommandHandler(uowFactory OrderUoWFactory, logger *slog.Logger) MarkPaidCommandHandler {
	return MarkPaidCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "mark_paid_handler"),
	}
}

// Handle applies the payment transition as a system action.
func (h MarkPaidCommandHandler) Handle(ctx context.Context, command MarkPaidCommand) (TransitionResult, error) {
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

	aggregate, err := orders.Get(ctx, command.OrderID())
	if err != nil {
		return TransitionResult{}, err
	}

	reason := "payment confirmed"
	if command.PaymentID() != "" {
		reason = fmt.Sprintf("payment confirmed: %s", command.PaymentID())
	}

	entry, err := aggregate.ApplyAction(order.ActionMarkPaid, order.SystemAuto, reason, "system", now)
	if err != nil {
		return TransitionResult{}, err
	}

	if err = orders.Update(ctx, aggregate); err != nil {
		return TransitionResult{}, err
	}
	if err = uow.TimelineRepository().Append(ctx, entry); err != nil {
		return TransitionResult{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return TransitionResult{}, err
	}

	h.logger.InfoContext(ctx, "order marked paid",
		"order_id", aggregate.ID().String(),
		"payment_id", command.PaymentID(),
	)

	return TransitionResult{Order: aggregate, Entry: entry}, nil
}
