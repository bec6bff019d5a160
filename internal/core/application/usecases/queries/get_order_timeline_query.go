package queries

import (
	"errors"
	"time"

	"compliance/internal/core/domain/model/kernel"
	"compliance/internal/pkg/guard"
)

var ErrGetOrderTimelineQueryIsNotConstructed = errors.New(
	"GetOrderTimelineQuery must be created via NewGetOrderTimelineQuery constructor",
)

// GetOrderTimelineQuery retrieves an order's full audit timeline.
type GetOrderTimelineQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderTimelineQuery creates the query.
func NewGetOrderTimelineQuery(orderID kernel.UUID) (GetOrderTimelineQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderTimelineQuery{}, err
	}

	return GetOrderTimelineQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderTimelineQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderTimelineQueryIsNotConstructed)
}

// OrderID returns the order whose timeline is requested.
func (q GetOrderTimelineQuery) OrderID() kernel.UUID { return q.orderID }

// TimelineEntryView is one transition in the audit timeline, oldest first.
type TimelineEntryView struct {
	ID             kernel.UUID
	PreviousState  string
	NewState       string
	TransitionType string
	Reason         string
	TriggeredBy    string
	Regeneration   *RegenerationView
	CreatedAt      time.Time
}

// RegenerationView is the structured correction request attached to a
// regeneration transition.
type RegenerationView struct {
	ReasonCode         string   `json:"reason_code"`
	AffectedSections   []string `json:"affected_sections,omitempty"`
	PreserveNamesDates bool     `json:"preserve_names_dates"`
	PreserveFormat     bool     `json:"preserve_format"`
}
