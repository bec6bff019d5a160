package kernel

import (
	"fmt"
	"strings"

	"compliance/internal/pkg/errs"
)

// ErrMoneyIsNotConstructed is returned when a Money value was not created
// through NewMoney.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("Money must be created via NewMoney")

// Money represents a price as an amount in minor units (pence, cents)
// together with an ISO 4217 currency code. It is an immutable value object.
type Money struct {
	amount   int64
	currency string

	isConstructed bool
}

// NewMoney creates a Money value.
//
// The amount is expressed in minor units and must not be negative; the
// currency must be a three-letter ISO 4217 code.
func NewMoney(amount int64, currency string) (Money, error) {
	if amount < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("%d is negative", amount),
		)
	}

	currency = strings.ToUpper(strings.TrimSpace(currency))
	if len(currency) != 3 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"currency",
			fmt.Errorf("%q is not a three-letter currency code", currency),
		)
	}

	return Money{
		amount:        amount,
		currency:      currency,
		isConstructed: true,
	}, nil
}

// Amount returns the amount in minor units.
func (m Money) Amount() int64 {
	return m.amount
}

// Currency returns the ISO 4217 currency code.
func (m Money) Currency() string {
	return m.currency
}

// IsEqual compares two Money values by amount and currency.
func (m Money) IsEqual(other Money) bool {
	return m.amount == other.amount && m.currency == other.currency
}

// String formats the value as "<amount> <currency>", e.g. "12900 GBP".
func (m Money) String() string {
	return fmt.Sprintf("%d %s", m.amount, m.currency)
}

// Validate ensures the value was created via NewMoney.
func (m Money) Validate() error {
	if !m.isConstructed {
		return ErrMoneyIsNotConstructed
	}
	return nil
}
