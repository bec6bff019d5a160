package commands

import (
	"errors"

	"compliance/internal/core/domain/model/kernel"
	"compliance/internal/pkg/guard"
)

var ErrMarkPaidCommandIsNotConstructed = errors.New(
	"MarkPaidCommand must be created via NewMarkPaidCommand constructor",
)

// MarkPaidCommand confirms payment for an order, typically from a payment
// provider webhook, moving it from CREATED to PAID.
type MarkPaidCommand struct {
	orderID   kernel.UUID
	paymentID string

	guard guard.ConstructorGuard
}

// NewMarkPaidCommand creates the command. The payment id is the provider's
// reference and is recorded in the timeline reason; it may be empty.
func NewMarkPaidCommand(orderID kernel.UUID, paymentID string) (MarkPaidCommand, error) {
	if err := orderID.Validate(); err != nil {
		return MarkPaidCommand{}, err
	}

	return MarkPaidCommand{
		orderID:   orderID,
		paymentID: paymentID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkPaidCommand) Validate() error {
	return c.guard.Validate(ErrMarkPaidCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c MarkPaidCommand) OrderID() kernel.UUID { return c.orderID }

// PaymentID returns the payment provider's reference.
func (c MarkPaidCommand) PaymentID() string { return c.paymentID }
