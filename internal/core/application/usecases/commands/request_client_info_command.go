package commands

import (
	"errors"

	"compliance/internal/core/domain/model/kernel"
	"compliance/internal/pkg/errs"
	"compliance/internal/pkg/guard"
)

var ErrRequestClientInfoCommandIsNotConstructed = errors.New(
	"RequestClientInfoCommand must be created via NewRequestClientInfoCommand constructor",
)

// RequestClientInfoCommand blocks an order on missing client information:
// the order moves to CLIENT_INPUT_REQUIRED, the SLA clock pauses and the
// client is notified of what is needed.
type RequestClientInfoCommand struct {
	orderID            kernel.UUID
	requestNotes       string
	requestedFields    []string
	deadlineDays       *int
	requestAttachments []string
	actor              string

	guard guard.ConstructorGuard
}

// NewRequestClientInfoCommand creates the command. Notes are mandatory;
// attachments are forwarded to the notification only.
func NewRequestClientInfoCommand(
	orderID kernel.UUID,
	requestNotes string,
	requestedFields []string,
	deadlineDays *int,
	requestAttachments []string,
	actor string,
) (RequestClientInfoCommand, error) {
	if err := orderID.Validate(); err != nil {
		return RequestClientInfoCommand{}, err
	}
	if requestNotes == "" {
		return RequestClientInfoCommand{}, errs.NewValueIsRequiredError("requestNotes")
	}
	if actor == "" {
		return RequestClientInfoCommand{}, errs.NewValueIsRequiredError("actor")
	}

	fields := make([]string, len(requestedFields))
	copy(fields, requestedFields)
	attachments := make([]string, len(requestAttachments))
	copy(attachments, requestAttachments)

	return RequestClientInfoCommand{
		orderID:            orderID,
		requestNotes:       requestNotes,
		requestedFields:    fields,
		deadlineDays:       deadlineDays,
		requestAttachments: attachments,
		actor:              actor,
		guard:              guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestClientInfoCommand) Validate() error {
	return c.guard.Validate(ErrRequestClientInfoCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c RequestClientInfoCommand) OrderID() kernel.UUID { return c.orderID }

// RequestNotes returns the admin's description of what is needed.
func (c RequestClientInfoCommand) RequestNotes() string { return c.requestNotes }

// RequestedFields returns the field ids the client must provide.
func (c RequestClientInfoCommand) RequestedFields() []string {
	fields := make([]string, len(c.requestedFields))
	copy(fields, c.requestedFields)
	return fields
}

// DeadlineDays returns the response deadline in days, or nil.
func (c RequestClientInfoCommand) DeadlineDays() *int { return c.deadlineDays }

// RequestAttachments returns attachment references included in the
// notification to the client.
func (c RequestClientInfoCommand) RequestAttachments() []string {
	attachments := make([]string, len(c.requestAttachments))
	copy(attachments, c.requestAttachments)
	return attachments
}

// Actor returns the requesting admin's identity.
func (c RequestClientInfoCommand) Actor() string { return c.actor }
