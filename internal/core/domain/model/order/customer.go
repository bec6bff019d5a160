package order

import (
	"fmt"
	"strings"

	"compliance/internal/pkg/errs"
)

// Customer identifies the client an order is produced for.
// Phone is optional; name and email are required so notifications can
// always be addressed.
type Customer struct {
	name  string
	email string
	phone string

	isConstructed bool
}

// NewCustomer creates a validated Customer value.
func NewCustomer(name, email, phone string) (Customer, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" {
		return Customer{}, errs.NewValueIsRequiredError("customer name")
	}
	if email == "" {
		return Customer{}, errs.NewValueIsRequiredError("customer email")
	}
	if !strings.Contains(email, "@") {
		return Customer{}, errs.NewValueIsInvalidErrorWithCause(
			"customer email",
			fmt.Errorf("%q does not look like an email address", email),
		)
	}

	return Customer{
		name:          name,
		email:         email,
		phone:         strings.TrimSpace(phone),
		isConstructed: true,
	}, nil
}

// Name returns the customer's display name.
func (c Customer) Name() string { return c.name }

// Email returns the customer's notification address.
func (c Customer) Email() string { return c.email }

// Phone returns the customer's phone number, possibly empty.
func (c Customer) Phone() string { return c.phone }

// Validate ensures the value was created via NewCustomer.
func (c Customer) Validate() error {
	if !c.isConstructed {
		return errs.NewValueIsRequiredError("Customer must be created via NewCustomer")
	}
	return nil
}
