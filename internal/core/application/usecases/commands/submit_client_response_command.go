package commands

import (
	"errors"

	"compliance/internal/core/domain/model/kernel"
	"compliance/internal/pkg/errs"
	"compliance/internal/pkg/guard"
)

var ErrSubmitClientResponseCommandIsNotConstructed = errors.New(
	"SubmitClientResponseCommand must be created via NewSubmitClientResponseCommand constructor",
)

// SubmitClientResponseCommand records the client portal's answer to an open
// information request and returns the order to INTERNAL_REVIEW, resuming
// the SLA clock.
type SubmitClientResponseCommand struct {
	orderID kernel.UUID
	payload map[string]string

	guard guard.ConstructorGuard
}

// NewSubmitClientResponseCommand creates the command. The payload maps
// requested field ids to the submitted values and must not be empty.
func NewSubmitClientResponseCommand(
	orderID kernel.UUID,
	payload map[string]string,
) (SubmitClientResponseCommand, error) {
	if err := orderID.Validate(); err != nil {
		return SubmitClientResponseCommand{}, err
	}
	if len(payload) == 0 {
		return SubmitClientResponseCommand{}, errs.NewValueIsRequiredError("payload")
	}

	copied := make(map[string]string, len(payload))
	for k, v := range payload {
		copied[k] = v
	}

	return SubmitClientResponseCommand{
		orderID: orderID,
		payload: copied,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitClientResponseCommand) Validate() error {
	return c.guard.Validate(ErrSubmitClientResponseCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c SubmitClientResponseCommand) OrderID() kernel.UUID { return c.orderID }

// Payload returns the submitted field values.
func (c SubmitClientResponseCommand) Payload() map[string]string {
	copied := make(map[string]string, len(c.payload))
	for k, v := range c.payload {
		copied[k] = v
	}
	return copied
}
