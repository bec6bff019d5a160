package services

import (
	"time"

	"compliance/internal/core/domain/model/order"
)

// SLAClock computes active time-in-state and remaining SLA budget for
// orders. It is a stateless domain service: pausing and resuming are side
// effects of the CLIENT_INPUT_REQUIRED transitions on the aggregate, the
// clock only reads the resulting fields.
type SLAClock struct{}

// NewSLAClock creates an SLA clock.
func NewSLAClock() SLAClock {
	return SLAClock{}
}

// ElapsedActive returns the active (non-paused) time since the order entered
// its current status. While the clock is paused the value freezes at what it
// was when the pause began. Never negative.
func (SLAClock) ElapsedActive(o *order.Order, now time.Time) time.Duration {
	if pausedAt := o.SLAPausedAt(); pausedAt != nil {
		now = *pausedAt
	}

	elapsed := now.Sub(o.UpdatedAt()) - o.SLAPausedTotal()
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// Remaining returns the remaining SLA budget and true, or zero and false
// when the order carries no SLA budget. The value goes negative once the
// budget is exceeded so callers can sort by how far over budget an order is.
func (c SLAClock) Remaining(o *order.Order, now time.Time) (time.Duration, bool) {
	slaHours := o.SLAHours()
	if slaHours == nil {
		return 0, false
	}

	budget := time.Duration(*slaHours) * time.Hour
	return budget - c.ElapsedActive(o, now), true
}
