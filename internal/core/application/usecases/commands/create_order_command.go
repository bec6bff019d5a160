package commands

import (
	"errors"

	"compliance/internal/core/domain/model/kernel"
	"compliance/internal/core/domain/model/order"
	"compliance/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand registers a new paid engagement in the pipeline.
// Orders start in CREATED; payment confirmation arrives separately through
// the mark-paid operation.
type CreateOrderCommand struct {
	customer      order.Customer
	service       order.Service
	pricing       kernel.Money
	slaHours      *int
	priority      bool
	internalNotes string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates the command, validating customer, service
// and pricing through their domain constructors.
func NewCreateOrderCommand(
	customerName, customerEmail, customerPhone string,
	serviceName, serviceCode, serviceCategory string,
	amount int64, currency string,
	slaHours *int,
	priority bool,
	internalNotes string,
) (CreateOrderCommand, error) {
	customer, err := order.NewCustomer(customerName, customerEmail, customerPhone)
	if err != nil {
		return CreateOrderCommand{}, err
	}

	service, err := order.NewService(serviceName, serviceCode, serviceCategory)
	if err != nil {
		return CreateOrderCommand{}, err
	}

	pricing, err := kernel.NewMoney(amount, currency)
	if err != nil {
		return CreateOrderCommand{}, err
	}

	return CreateOrderCommand{
		customer:      customer,
		service:       service,
		pricing:       pricing,
		slaHours:      slaHours,
		priority:      priority,
		internalNotes: internalNotes,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// Customer returns the validated customer value.
func (c CreateOrderCommand) Customer() order.Customer { return c.customer }

// Service returns the validated service value.
func (c CreateOrderCommand) Service() order.Service { return c.service }

// Pricing returns the validated price.
func (c CreateOrderCommand) Pricing() kernel.Money { return c.pricing }

// SLAHours returns the SLA budget in hours, or nil when unbounded.
func (c CreateOrderCommand) SLAHours() *int { return c.slaHours }

// Priority reports whether the order is flagged as priority.
func (c CreateOrderCommand) Priority() bool { return c.priority }

// InternalNotes returns the free-text admin notes.
func (c CreateOrderCommand) InternalNotes() string { return c.internalNotes }
