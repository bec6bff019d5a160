package commands

import (
	"errors"

	"compliance/internal/core/domain/model/kernel"
	"compliance/internal/pkg/errs"
	"compliance/internal/pkg/guard"
)

var ErrRecordGeneratedVersionCommandIsNotConstructed = errors.New(
	"RecordGeneratedVersionCommand must be created via NewRecordGeneratedVersionCommand constructor",
)

// RecordGeneratedVersionCommand is the generator's callback: the pipeline
// finished producing a document and the next version must be recorded.
type RecordGeneratedVersionCommand struct {
	orderID      kernel.UUID
	documentType string

	guard guard.ConstructorGuard
}

// NewRecordGeneratedVersionCommand creates the command.
func NewRecordGeneratedVersionCommand(
	orderID kernel.UUID,
	documentType string,
) (RecordGeneratedVersionCommand, error) {
	if err := orderID.Validate(); err != nil {
		return RecordGeneratedVersionCommand{}, err
	}
	if documentType == "" {
		return RecordGeneratedVersionCommand{}, errs.NewValueIsRequiredError("documentType")
	}

	return RecordGeneratedVersionCommand{
		orderID:      orderID,
		documentType: documentType,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordGeneratedVersionCommand) Validate() error {
	return c.guard.Validate(ErrRecordGeneratedVersionCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c RecordGeneratedVersionCommand) OrderID() kernel.UUID { return c.orderID }

// DocumentType returns the generated document's type code.
func (c RecordGeneratedVersionCommand) DocumentType() string { return c.documentType }
