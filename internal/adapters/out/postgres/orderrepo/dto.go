// Package orderrepo persists order aggregates. Structured sub-values that
// never need relational querying (the open client input request and the
// response history) are stored as jsonb documents on the order row.
package orderrepo

import (
	"encoding/json"
	"time"

	"compliance/internal/core/domain/model/kernel"
	"compliance/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// aggregate_version backs optimistic locking: every successful update bumps
// it by one, and a stale writer's UPDATE matches zero rows.
type OrderDTO struct {
	ID                   uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Status               int         `gorm:"index"`
	Priority             bool        `gorm:"index"`
	Customer             CustomerDTO `gorm:"embedded;embeddedPrefix:customer_"`
	Service              ServiceDTO  `gorm:"embedded;embeddedPrefix:service_"`
	PriceAmount          int64
	PriceCurrency        string
	SLAHours             *int       `gorm:"column:sla_hours"`
	SLAPausedAt          *time.Time `gorm:"column:sla_paused_at"`
	SLAPausedTotalNS     int64      `gorm:"column:sla_paused_total_ns"`
	VersionLocked        bool
	ApprovedVersion      int
	InternalNotes        string
	ClientInputRequest   *string `gorm:"type:jsonb"`
	ClientInputResponses *string `gorm:"type:jsonb"`
	CreatedAt            time.Time
	UpdatedAt            time.Time `gorm:"index"`
	AggregateVersion     int
}

// TableName overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// CustomerDTO holds the embedded customer columns.
type CustomerDTO struct {
	Name  string
	Email string
	Phone string
}

// ServiceDTO holds the embedded service columns.
type ServiceDTO struct {
	Name     string
	Code     string `gorm:"index"`
	Category string
}

type clientInputRequestJSON struct {
	RequestedFields []string  `json:"requested_fields"`
	RequestNotes    string    `json:"request_notes"`
	DeadlineDays    *int      `json:"deadline_days,omitempty"`
	RequestedAt     time.Time `json:"requested_at"`
	RequestedBy     string    `json:"requested_by"`
}

type clientInputResponseJSON struct {
	Version     int               `json:"version"`
	Payload     map[string]string `json:"payload"`
	SubmittedAt time.Time         `json:"submitted_at"`
}

func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	var request *string
	if r := aggregate.ClientInputRequest(); r != nil {
		raw, err := json.Marshal(clientInputRequestJSON{
			RequestedFields: r.RequestedFields(),
			RequestNotes:    r.RequestNotes(),
			DeadlineDays:    r.DeadlineDays(),
			RequestedAt:     r.RequestedAt(),
			RequestedBy:     r.RequestedBy(),
		})
		if err != nil {
			return OrderDTO{}, err
		}
		encoded := string(raw)
		request = &encoded
	}

	var responses *string
	if rs := aggregate.ClientInputResponses(); len(rs) > 0 {
		encoded := make([]clientInputResponseJSON, 0, len(rs))
		for _, r := range rs {
			encoded = append(encoded, clientInputResponseJSON{
				Version:     r.Version(),
				Payload:     r.Payload(),
				SubmittedAt: r.SubmittedAt(),
			})
		}
		raw, err := json.Marshal(encoded)
		if err != nil {
			return OrderDTO{}, err
		}
		rawStr := string(raw)
		responses = &rawStr
	}

	return OrderDTO{
		ID:       aggregate.ID().Bytes(),
		Status:   int(aggregate.Status()),
		Priority: aggregate.Priority(),
		Customer: CustomerDTO{
			Name:  aggregate.Customer().Name(),
			Email: aggregate.Customer().Email(),
			Phone: aggregate.Customer().Phone(),
		},
		Service: ServiceDTO{
			Name:     aggregate.Service().Name(),
			Code:     aggregate.Service().Code(),
			Category: aggregate.Service().Category(),
		},
		PriceAmount:          aggregate.Pricing().Amount(),
		PriceCurrency:        aggregate.Pricing().Currency(),
		SLAHours:             aggregate.SLAHours(),
		SLAPausedAt:          aggregate.SLAPausedAt(),
		SLAPausedTotalNS:     int64(aggregate.SLAPausedTotal()),
		VersionLocked:        aggregate.VersionLocked(),
		ApprovedVersion:      aggregate.ApprovedVersion(),
		InternalNotes:        aggregate.InternalNotes(),
		ClientInputRequest:   request,
		ClientInputResponses: responses,
		CreatedAt:            aggregate.CreatedAt(),
		UpdatedAt:            aggregate.UpdatedAt(),
		AggregateVersion:     aggregate.AggregateVersion(),
	}, nil
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customer, err := order.NewCustomer(dto.Customer.Name, dto.Customer.Email, dto.Customer.Phone)
	if err != nil {
		return nil, err
	}

	service, err := order.NewService(dto.Service.Name, dto.Service.Code, dto.Service.Category)
	if err != nil {
		return nil, err
	}

	pricing, err := kernel.NewMoney(dto.PriceAmount, dto.PriceCurrency)
	if err != nil {
		return nil, err
	}

	var request *order.ClientInputRequest
	if dto.ClientInputRequest != nil {
		var decoded clientInputRequestJSON
		if err = json.Unmarshal([]byte(*dto.ClientInputRequest), &decoded); err != nil {
			return nil, err
		}
		restored := order.RestoreClientInputRequest(
			decoded.RequestedFields,
			decoded.RequestNotes,
			decoded.DeadlineDays,
			decoded.RequestedAt,
			decoded.RequestedBy,
		)
		request = &restored
	}

	var responses []order.ClientInputResponse
	if dto.ClientInputResponses != nil {
		var decoded []clientInputResponseJSON
		if err = json.Unmarshal([]byte(*dto.ClientInputResponses), &decoded); err != nil {
			return nil, err
		}
		responses = make([]order.ClientInputResponse, 0, len(decoded))
		for _, r := range decoded {
			responses = append(responses, order.RestoreClientInputResponse(r.Version, r.Payload, r.SubmittedAt))
		}
	}

	return order.RestoreOrder(
		id,
		customer,
		service,
		pricing,
		dto.SLAHours,
		dto.Priority,
		order.Status(dto.Status),
		dto.VersionLocked,
		dto.ApprovedVersion,
		dto.InternalNotes,
		request,
		responses,
		dto.SLAPausedAt,
		time.Duration(dto.SLAPausedTotalNS),
		dto.CreatedAt,
		dto.UpdatedAt,
		dto.AggregateVersion,
	)
}
