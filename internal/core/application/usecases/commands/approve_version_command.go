package commands

import (
	"errors"

	"compliance/internal/core/domain/model/kernel"
	"compliance/internal/pkg/errs"
	"compliance/internal/pkg/guard"
)

var ErrApproveVersionCommandIsNotConstructed = errors.New(
	"ApproveVersionCommand must be created via NewApproveVersionCommand constructor",
)

// ApproveVersionCommand approves one document version of an order under
// internal review: the version's approval flag, the order's version lock
// and the INTERNAL_REVIEW -> FINALISING transition commit atomically.
// Re-approving the already-approved version is an idempotent no-op.
type ApproveVersionCommand struct {
	orderID kernel.UUID
	version int
	notes   string
	actor   string

	guard guard.ConstructorGuard
}

// NewApproveVersionCommand creates the command. Notes are optional; approve
// is the one action exempt from the reason rule.
func NewApproveVersionCommand(
	orderID kernel.UUID,
	version int,
	notes, actor string,
) (ApproveVersionCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ApproveVersionCommand{}, err
	}
	if version <= 0 {
		return ApproveVersionCommand{}, errs.NewVersionIsInvalidError("version")
	}
	if actor == "" {
		return ApproveVersionCommand{}, errs.NewValueIsRequiredError("actor")
	}

	return ApproveVersionCommand{
		orderID: orderID,
		version: version,
		notes:   notes,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ApproveVersionCommand) Validate() error {
	return c.guard.Validate(ErrApproveVersionCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c ApproveVersionCommand) OrderID() kernel.UUID { return c.orderID }

// Version returns the document version to approve.
func (c ApproveVersionCommand) Version() int { return c.version }

// Notes returns the optional approval notes.
func (c ApproveVersionCommand) Notes() string { return c.notes }

// Actor returns the approving admin's identity.
func (c ApproveVersionCommand) Actor() string { return c.actor }
