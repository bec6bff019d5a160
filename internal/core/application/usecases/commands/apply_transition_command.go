package commands

import (
	"errors"

	"compliance/internal/core/domain/model/kernel"
	"compliance/internal/core/domain/model/order"
	"compliance/internal/pkg/guard"
)

var ErrApplyTransitionCommandIsNotConstructed = errors.New(
	"ApplyTransitionCommand must be created via NewApplyTransitionCommand constructor",
)

// ApplyTransitionCommand requests one state transition on an order: the
// action is resolved against the current status through the allowed-
// transition table. Covers the plain pipeline actions (queue, start, fail,
// deliver, complete, retries, cancel, archive, mark_paid, resume) and the
// history-validated rollback from FAILED.
//
// Example:
//
//	cmd, err := commands.NewApplyTransitionCommand(
//	    orderID, order.ActionCancel, order.AdminManual,
//	    "duplicate order", "ops@example.com", nil,
//	)
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
type ApplyTransitionCommand struct {
	orderID        kernel.UUID
	action         order.Action
	transitionType order.TransitionType
	reason         string
	actor          string
	rollbackTarget *order.Status

	guard guard.ConstructorGuard
}

// NewApplyTransitionCommand creates the command. rollbackTarget is required
// for the rollback action and must be nil otherwise. The reason rule
// (required for manual transitions) is enforced by the aggregate.
func NewApplyTransitionCommand(
	orderID kernel.UUID,
	action order.Action,
	transitionType order.TransitionType,
	reason, actor string,
	rollbackTarget *order.Status,
) (ApplyTransitionCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ApplyTransitionCommand{}, err
	}
	if err := action.Validate(); err != nil {
		return ApplyTransitionCommand{}, err
	}
	if err := transitionType.Validate(); err != nil {
		return ApplyTransitionCommand{}, err
	}
	if rollbackTarget != nil {
		if err := rollbackTarget.Validate(); err != nil {
			return ApplyTransitionCommand{}, err
		}
	}

	return ApplyTransitionCommand{
		orderID:        orderID,
		action:         action,
		transitionType: transitionType,
		reason:         reason,
		actor:          actor,
		rollbackTarget: rollbackTarget,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ApplyTransitionCommand) Validate() error {
	return c.guard.Validate(ErrApplyTransitionCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c ApplyTransitionCommand) OrderID() kernel.UUID { return c.orderID }

// Action returns the requested action.
func (c ApplyTransitionCommand) Action() order.Action { return c.action }

// TransitionType returns who or what triggered the transition.
func (c ApplyTransitionCommand) TransitionType() order.TransitionType { return c.transitionType }

// Reason returns the caller-supplied reason.
func (c ApplyTransitionCommand) Reason() string { return c.reason }

// Actor returns the acting identity.
func (c ApplyTransitionCommand) Actor() string { return c.actor }

// RollbackTarget returns the explicit rollback target, or nil.
func (c ApplyTransitionCommand) RollbackTarget() *order.Status { return c.rollbackTarget }
