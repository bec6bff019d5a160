// Package timelinerepo persists the append-only order timeline. Rows are
// never updated or deleted; regeneration detail, when present, is stored as
// a jsonb document on the entry.
package timelinerepo

import (
	"encoding/json"
	"time"

	"compliance/internal/core/domain/model/kernel"
	"compliance/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// TimelineEntryDTO represents the database structure for timeline entries.
type TimelineEntryDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;index:idx_timeline_order_created"`
	PreviousState  int
	NewState       int
	TransitionType int
	Reason         string
	TriggeredBy    string
	Regeneration   *string   `gorm:"type:jsonb"`
	CreatedAt      time.Time `gorm:"index:idx_timeline_order_created"`
}

// TableName overrides GORM's default naming convention.
func (TimelineEntryDTO) TableName() string {
	return "order_timeline"
}

type regenerationJSON struct {
	ReasonCode         string   `json:"reason_code"`
	AffectedSections   []string `json:"affected_sections,omitempty"`
	PreserveNamesDates bool     `json:"preserve_names_dates"`
	PreserveFormat     bool     `json:"preserve_format"`
}

func fromDomain(entry order.TimelineEntry) (TimelineEntryDTO, error) {
	var regeneration *string
	if detail := entry.Regeneration(); detail != nil {
		raw, err := json.Marshal(regenerationJSON{
			ReasonCode:         detail.ReasonCode.String(),
			AffectedSections:   detail.AffectedSections,
			PreserveNamesDates: detail.Guardrails.PreserveNamesDates,
			PreserveFormat:     detail.Guardrails.PreserveFormat,
		})
		if err != nil {
			return TimelineEntryDTO{}, err
		}
		encoded := string(raw)
		regeneration = &encoded
	}

	return TimelineEntryDTO{
		ID:             entry.ID().Bytes(),
		OrderID:        entry.OrderID().Bytes(),
		PreviousState:  int(entry.PreviousState()),
		NewState:       int(entry.NewState()),
		TransitionType: int(entry.TransitionType()),
		Reason:         entry.Reason(),
		TriggeredBy:    entry.TriggeredBy(),
		Regeneration:   regeneration,
		CreatedAt:      entry.CreatedAt(),
	}, nil
}

func toDomain(dto TimelineEntryDTO) (order.TimelineEntry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.TimelineEntry{}, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return order.TimelineEntry{}, err
	}

	var detail *order.RegenerationDetail
	if dto.Regeneration != nil {
		var decoded regenerationJSON
		if err = json.Unmarshal([]byte(*dto.Regeneration), &decoded); err != nil {
			return order.TimelineEntry{}, err
		}
		reasonCode, codeErr := order.ReasonCodeFromString(decoded.ReasonCode)
		if codeErr != nil {
			return order.TimelineEntry{}, codeErr
		}
		detail = &order.RegenerationDetail{
			ReasonCode:       reasonCode,
			AffectedSections: decoded.AffectedSections,
			Guardrails: order.Guardrails{
				PreserveNamesDates: decoded.PreserveNamesDates,
				PreserveFormat:     decoded.PreserveFormat,
			},
		}
	}

	return order.RestoreTimelineEntry(
		id,
		orderID,
		order.Status(dto.PreviousState),
		order.Status(dto.NewState),
		order.TransitionType(dto.TransitionType),
		dto.Reason,
		dto.TriggeredBy,
		detail,
		dto.CreatedAt,
	), nil
}
