// Package errs provides standardized error types for the compliance pipeline.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package covers two groups of errors:
//   - Generic validation errors: ValueIsRequiredError, ValueIsInvalidError,
//     ValueIsOutOfRangeError, ObjectNotFoundError, VersionIsInvalidError
//   - Engine errors surfaced to API callers: InvalidTransitionError,
//     OrderTerminalError, AlreadyLockedError, ConcurrentModificationError
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrInvalidTransition)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for single-line message formatting
//   - Unwrap() method so errors.Is works against the sentinel
//
// Engine errors are recoverable at the caller boundary: the HTTP adapter maps
// each sentinel to a status code and a structured error body, and a rejected
// operation never leaves partial writes behind.
package errs
