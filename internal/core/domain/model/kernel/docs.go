// Package kernel contains shared value objects used across the domain model.
//
// The kernel provides:
//   - UUID: validated identifier wrapper around github.com/google/uuid
//   - Money: currency amount used for order pricing
//
// Value objects in this package are immutable, created through validating
// constructors and compared by value.
package kernel
