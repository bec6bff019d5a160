package queries

import (
	"errors"
	"time"

	"compliance/internal/core/domain/model/kernel"
	"compliance/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order's detail view, including its document
// version history.
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates the query.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the requested order's identifier.
func (q GetOrderQuery) OrderID() kernel.UUID { return q.orderID }

// OrderDetail is the admin detail view of one order.
type OrderDetail struct {
	ID              kernel.UUID
	Status          string
	Priority        bool
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	ServiceName     string
	ServiceCode     string
	ServiceCategory string
	PriceAmount     int64
	PriceCurrency   string
	SLAHours        *int
	SLAPaused       bool
	VersionLocked   bool
	ApprovedVersion *int
	InternalNotes   string
	AllowedActions  []string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Versions        []DocumentVersionView
}

// DocumentVersionView is one document version in the detail view.
type DocumentVersionView struct {
	Version           int
	DocumentType      string
	IsRegeneration    bool
	RegenerationNotes string
	IsApproved        bool
	GeneratedAt       time.Time
}
