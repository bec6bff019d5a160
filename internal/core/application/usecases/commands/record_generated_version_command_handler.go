package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"compliance/internal/core/domain/model/document"
	"compliance/internal/core/domain/model/order"
)

// RecordGeneratedVersionCommandHandler stores a freshly generated document
// version and advances the order: first drafts land in DRAFT_READY,
// regenerated drafts go straight back to INTERNAL_REVIEW.
type RecordGeneratedVersionCommandHandler struct {
	uowFactory UoWFactory
	logger     *slog.Logger
}

// NewRecordGeneratedVersionCommandHandler creates a handler for generator callbacks.
func NewRecordGeneratedVersionCommandHandler(
	uowFactory UoWFactory,
	logger *slog.Logger,
) RecordGeneratedVersionCommandHandler {
	return RecordGeneratedVersionCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "record_generated_version_handler"),
	}
}

// GeneratedVersionResult carries the stored version alongside the transition.
type GeneratedVersionResult struct {
	Order   *order.Order
	Version *document.Version
	Entry   order.TimelineEntry
}

// Handle records the next document version and applies the matching
// system transition for the order's current stage.
func (h RecordGeneratedVersionCommandHandler) Handle(
	ctx context.Context,
	command RecordGeneratedVersionCommand,
) (GeneratedVersionResult, error) {
	if err := command.Validate(); err != nil {
		return GeneratedVersionResult{}, err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return GeneratedVersionResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()
	documents := uow.DocumentVersionRepository()

	aggregate, err := orders.Get(ctx, command.OrderID())
	if err != nil {
		return GeneratedVersionResult{}, err
	}

	// A draft produced while regenerating is a correction of an earlier
	// version and skips DRAFT_READY.
	action := order.ActionDraftReady
	isRegeneration := false
	reason := "draft generated"
	if aggregate.Status() == order.Regenerating {
		action = order.ActionRegenerationComplete
		isRegeneration = true
		reason = "regeneration complete"
	}

	entry, err := aggregate.ApplyAction(action, order.SystemAuto, reason, "generator", now)
	if err != nil {
		return GeneratedVersionResult{}, err
	}

	maxVersion, err := documents.MaxVersion(ctx, aggregate.ID())
	if err != nil {
		return GeneratedVersionResult{}, err
	}

	version, err := document.NewVersion(
		aggregate.ID(),
		maxVersion+1,
		command.DocumentType(),
		isRegeneration,
		regenerationNotes(isRegeneration, maxVersion),
		now,
	)
	if err != nil {
		return GeneratedVersionResult{}, err
	}

	if err = documents.Add(ctx, version); err != nil {
		return GeneratedVersionResult{}, err
	}
	if err = orders.Update(ctx, aggregate); err != nil {
		return GeneratedVersionResult{}, err
	}
	if err = uow.TimelineRepository().Append(ctx, entry); err != nil {
		return GeneratedVersionResult{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return GeneratedVersionResult{}, err
	}

	h.logger.InfoContext(ctx, "document version recorded",
		"order_id", aggregate.ID().String(),
		"version", version.Number(),
		"is_regeneration", isRegeneration,
	)

	return GeneratedVersionResult{Order: aggregate, Version: version, Entry: entry}, nil
}

func regenerationNotes(isRegeneration bool, baseVersion int) string {
	if !isRegeneration {
		return ""
	}

	return fmt.Sprintf("regenerated from version %d", baseVersion)
}
