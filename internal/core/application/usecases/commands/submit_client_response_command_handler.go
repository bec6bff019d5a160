package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"compliance/internal/core/domain/model/order"
	"compliance/internal/core/ports"
)

// SubmitClientResponseCommandHandler records a client's answer to an open
// information request and returns the order to review.
type SubmitClientResponseCommandHandler struct {
	uowFactory OrderUoWFactory
	dispatcher ports.NotificationDispatcher
	logger     *slog.Logger
}

// NewSubmitClientResponseCommandHandler creates a handler for client responses.
func NewSubmitClientResponseCommandHandler(
	uowFactory OrderUoWFactory,
	dispatcher ports.NotificationDispatcher,
	logger *slog.Logger,
) SubmitClientResponseCommandHandler {
	return SubmitClientResponseCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		logger:     logger.With("component", "submit_client_response_handler"),
	}
}

// ClientResponseResult carries the stored response alongside the transition.
type ClientResponseResult struct {
	Order    *order.Order
	Response order.ClientInputResponse
	Entry    order.TimelineEntry
}

// Handle stores the response, resumes the SLA clock and moves the order back
// to INTERNAL_REVIEW. Reviewers are notified after commit.
func (h SubmitClientResponseCommandHandler) Handle(
	ctx context.Context,
	command SubmitClientResponseCommand,
) (ClientResponseResult, error) {
	if err := command.Validate(); err != nil {
		return ClientResponseResult{}, err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ClientResponseResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()

	aggregate, err := orders.Get(ctx, command.OrderID())
	if err != nil {
		return ClientResponseResult{}, err
	}

	response, entry, err := aggregate.RecordClientResponse(command.Payload(), now)
	if err != nil {
		return ClientResponseResult{}, err
	}

	if err = orders.Update(ctx, aggregate); err != nil {
		return ClientResponseResult{}, err
	}
	if err = uow.TimelineRepository().Append(ctx, entry); err != nil {
		return ClientResponseResult{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return ClientResponseResult{}, err
	}

	notification := ports.Notification{
		OrderID:   aggregate.ID(),
		Template:  "client_response_received",
		Recipient: "reviewers",
		Context: map[string]string{
			"customer_name":    aggregate.Customer().Name(),
			"service_name":     aggregate.Service().Name(),
			"response_version": fmt.Sprintf("%d", response.Version()),
		},
	}
	if err = h.dispatcher.Dispatch(ctx, notification); err != nil {
		h.logger.ErrorContext(ctx, "client response notification failed",
			"order_id", aggregate.ID().String(),
			"error", err,
		)
	}

	return ClientResponseResult{Order: aggregate, Response: response, Entry: entry}, nil
}
