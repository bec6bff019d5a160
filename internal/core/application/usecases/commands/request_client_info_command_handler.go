package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"compliance/internal/core/ports"
)

// RequestClientInfoCommandHandler pauses an order on missing client input
// and notifies the client. The notification is fire-and-forget.
type RequestClientInfoCommandHandler struct {
	uowFactory OrderUoWFactory
	dispatcher ports.NotificationDispatcher
	logger     *slog.Logger
}

// NewRequestClientInfoCommandHandler creates a handler for information requests.
func NewRequestClientInfoCommandHandler(
	uowFactory OrderUoWFactory,
	dispatcher ports.NotificationDispatcher,
	logger *slog.Logger,
) RequestClientInfoCommandHandler {
	return RequestClientInfoCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		logger:     logger.With("component", "request_client_info_handler"),
	}
}

// Handle moves the order to CLIENT_INPUT_REQUIRED, records the structured
// request, pauses the SLA clock and notifies the client after commit.
func (h RequestClientInfoCommandHandler) Handle(
	ctx context.Context,
	command RequestClientInfoCommand,
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

	aggregate, err := orders.Get(ctx, command.OrderID())
	if err != nil {
		return TransitionResult{}, err
	}

	entry, err := aggregate.RequestClientInfo(
		command.RequestedFields(),
		command.RequestNotes(),
		command.DeadlineDays(),
		command.Actor(),
		now,
	)
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

	notificationContext := map[string]string{
		"customer_name":    aggregate.Customer().Name(),
		"service_name":     aggregate.Service().Name(),
		"request_notes":    command.RequestNotes(),
		"requested_fields": strings.Join(command.RequestedFields(), ","),
		"attachments":      strings.Join(command.RequestAttachments(), ","),
	}
	if deadline := command.DeadlineDays(); deadline != nil {
		notificationContext["deadline_days"] = fmt.Sprintf("%d", *deadline)
	}

	notification := ports.Notification{
		OrderID:   aggregate.ID(),
		Template:  "client_input_request",
		Recipient: aggregate.Customer().Email(),
		Context:   notificationContext,
	}
	if err = h.dispatcher.Dispatch(ctx, notification); err != nil {
		h.logger.ErrorContext(ctx, "client input notification failed",
			"order_id", aggregate.ID().String(),
			"error", err,
		)
	}

	return TransitionResult{Order: aggregate, Entry: entry}, nil
}
