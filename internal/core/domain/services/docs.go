// Package services contains stateless domain services that operate across
// aggregates without owning state of their own.
package services
