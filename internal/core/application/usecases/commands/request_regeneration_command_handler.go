package commands

import (
	"context"
	"log/slog"
	"time"

	"compliance/internal/core/domain/model/order"
	"compliance/internal/core/ports"
)

// RequestRegenerationCommandHandler applies the INTERNAL_REVIEW ->
// REGEN_REQUESTED transition and hands the correction to the external
// generator. The generator request is fire-and-forget: a publish failure is
// logged for the retry channel and the committed transition stands.
type RequestRegenerationCommandHandler struct {
	uowFactory UoWFactory
	generator  ports.DocumentGenerator
	logger     *slog.Logger
}

// NewRequestRegenerationCommandHandler creates a handler for regeneration requests.
func NewRequestRegenerationCommandHandler(
	uowFactory UoWFactory,
	generator ports.DocumentGenerator,
	logger *slog.Logger,
) RequestRegenerationCommandHandler {
	return RequestRegenerationCommandHandler{
		uowFactory: uowFactory,
		generator:  generator,
		logger:     logger.With("component", "request_regeneration_handler"),
	}
}

// Handle records the regeneration request on the order and timeline, then
// asks the generator for a corrected version based on the latest one.
func (h RequestRegenerationCommandHandler) Handle(
	ctx context.Context,
	command RequestRegenerationCommand,
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

	baseVersion, err := uow.DocumentVersionRepository().MaxVersion(ctx, command.OrderID())
	if err != nil {
		return TransitionResult{}, err
	}

	detail := order.RegenerationDetail{
		ReasonCode:       command.ReasonCode(),
		AffectedSections: command.AffectedSections(),
		Guardrails:       command.Guardrails(),
	}

	entry, err := aggregate.RequestRegeneration(detail, command.CorrectionNotes(), command.Actor(), now)
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

	request := ports.GenerationRequest{
		OrderID:         aggregate.ID(),
		BaseVersion:     baseVersion,
		CorrectionNotes: command.CorrectionNotes(),
		Detail:          detail,
	}
	if err = h.generator.RequestGeneration(ctx, request); err != nil {
		h.logger.ErrorContext(ctx, "generation request failed",
			"order_id", aggregate.ID().String(),
			"base_version", baseVersion,
			"error", err,
		)
	}

	return TransitionResult{Order: aggregate, Entry: entry}, nil
}
