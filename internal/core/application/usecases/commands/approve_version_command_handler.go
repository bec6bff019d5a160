package commands

import (
	"context"
	"time"
)

// ApproveVersionCommandHandler performs the atomic approve-and-lock:
// no reader ever observes a locked order without its approved version or
// an approved version on an unlocked order.
type ApproveVersionCommandHandler struct {
	uowFactory UoWFactory
}

// NewApproveVersionCommandHandler creates a handler for approvals.
func NewApproveVersionCommandHandler(uowFactory UoWFactory) ApproveVersionCommandHandler {
	return ApproveVersionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle verifies the version exists, approves it, locks the order and
// moves it to FINALISING in one transaction. When the same version is
// already approved the call is a no-op and returns the unchanged order
// with a zero Entry.
func (h ApproveVersionCommandHandler) Handle(
	ctx context.Context,
	command ApproveVersionCommand,
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
	documents := uow.DocumentVersionRepository()

	aggregate, err := orders.Get(ctx, command.OrderID())
	if err != nil {
		return TransitionResult{}, err
	}

	// The version must exist before the aggregate is touched.
	if _, err = documents.Get(ctx, command.OrderID(), command.Version()); err != nil {
		return TransitionResult{}, err
	}

	entry, err := aggregate.Approve(command.Version(), command.Notes(), command.Actor(), now)
	if err != nil {
		return TransitionResult{}, err
	}
	if entry == nil {
		// Idempotent re-approve: nothing to write.
		return TransitionResult{Order: aggregate}, nil
	}

	if err = documents.MarkApproved(ctx, command.OrderID(), command.Version()); err != nil {
		return TransitionResult{}, err
	}
	if err = orders.Update(ctx, aggregate); err != nil {
		return TransitionResult{}, err
	}
	if err = uow.TimelineRepository().Append(ctx, *entry); err != nil {
		return TransitionResult{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return TransitionResult{}, err
	}

	return TransitionResult{Order: aggregate, Entry: *entry}, nil
}
