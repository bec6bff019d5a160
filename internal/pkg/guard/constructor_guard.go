// Package guard implements the constructor-guard pattern used by commands,
// queries and value objects to detect zero-value instances that bypassed
// their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific
// validation error is supplied and the object was not constructed properly.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as created through its designated
// constructor. Embedding a guard in a struct makes zero-value instances
// detectable: a guard obtained from NewConstructorGuard validates, a
// zero-value guard does not.
//
// Example usage:
//
//	type ApproveVersionCommand struct {
//	    orderID kernel.UUID
//	    version int
//	    guard   guard.ConstructorGuard
//	}
//
//	func NewApproveVersionCommand(...) (ApproveVersionCommand, error) {
//	    ...
//	    return ApproveVersionCommand{..., guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (c ApproveVersionCommand) Validate() error {
//	    return c.guard.Validate(ErrApproveVersionCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking its holder as properly
// constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the holder was created through its constructor.
// For zero-value guards it returns validationError, or
// ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
