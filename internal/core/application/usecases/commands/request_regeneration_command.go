package commands

import (
	"errors"

	"compliance/internal/core/domain/model/kernel"
	"compliance/internal/core/domain/model/order"
	"compliance/internal/pkg/errs"
	"compliance/internal/pkg/guard"
)

var ErrRequestRegenerationCommandIsNotConstructed = errors.New(
	"RequestRegenerationCommand must be created via NewRequestRegenerationCommand constructor",
)

// RequestRegenerationCommand asks for a corrected document version while an
// order is under internal review. Reason code, correction notes, affected
// sections and guardrails are recorded on the timeline entry and forwarded
// to the generator.
type RequestRegenerationCommand struct {
	orderID          kernel.UUID
	reasonCode       order.ReasonCode
	correctionNotes  string
	affectedSections []string
	guardrails       order.Guardrails
	actor            string

	guard guard.ConstructorGuard
}

// NewRequestRegenerationCommand creates the command. Correction notes are
// mandatory and the reason code must be one of the enumerated set.
func NewRequestRegenerationCommand(
	orderID kernel.UUID,
	reasonCode order.ReasonCode,
	correctionNotes string,
	affectedSections []string,
	guardrails order.Guardrails,
	actor string,
) (RequestRegenerationCommand, error) {
	if err := orderID.Validate(); err != nil {
		return RequestRegenerationCommand{}, err
	}
	if err := reasonCode.Validate(); err != nil {
		return RequestRegenerationCommand{}, err
	}
	if correctionNotes == "" {
		return RequestRegenerationCommand{}, errs.NewValueIsRequiredError("correctionNotes")
	}
	if actor == "" {
		return RequestRegenerationCommand{}, errs.NewValueIsRequiredError("actor")
	}

	sections := make([]string, len(affectedSections))
	copy(sections, affectedSections)

	return RequestRegenerationCommand{
		orderID:          orderID,
		reasonCode:       reasonCode,
		correctionNotes:  correctionNotes,
		affectedSections: sections,
		guardrails:       guardrails,
		actor:            actor,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestRegenerationCommand) Validate() error {
	return c.guard.Validate(ErrRequestRegenerationCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c RequestRegenerationCommand) OrderID() kernel.UUID { return c.orderID }

// ReasonCode returns the enumerated regeneration reason.
func (c RequestRegenerationCommand) ReasonCode() order.ReasonCode { return c.reasonCode }

// CorrectionNotes returns what the generator must fix.
func (c RequestRegenerationCommand) CorrectionNotes() string { return c.correctionNotes }

// AffectedSections returns the document sections the correction concerns.
func (c RequestRegenerationCommand) AffectedSections() []string {
	sections := make([]string, len(c.affectedSections))
	copy(sections, c.affectedSections)
	return sections
}

// Guardrails returns the pass-through generation constraints.
func (c RequestRegenerationCommand) Guardrails() order.Guardrails { return c.guardrails }

// Actor returns the requesting admin's identity.
func (c RequestRegenerationCommand) Actor() string { return c.actor }
