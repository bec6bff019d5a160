package timelinerepo

import (
	"context"

	"compliance/internal/core/domain/model/kernel"
	"compliance/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GormTimelineRepository implements TimelineRepository using GORM.
type GormTimelineRepository struct {
	db *gorm.DB
}

// NewGormTimelineRepository creates a new GORM timeline repository.
func NewGormTimelineRepository(db *gorm.DB) *GormTimelineRepository {
	return &GormTimelineRepository{db: db}
}

// Append persists a new timeline entry.
func (r *GormTimelineRepository) Append(ctx context.Context, entry order.TimelineEntry) error {
	if err := entry.OrderID().Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(entry)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetAllForOrder retrieves an order's timeline ordered by creation time
// ascending, oldest transition first.
func (r *GormTimelineRepository) GetAllForOrder(
	ctx context.Context,
	orderID kernel.UUID,
) ([]order.TimelineEntry, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []TimelineEntryDTO
	err := r.db.WithContext(ctx).
		Order("created_at").
		Find(&dtos, "order_id = ?", orderID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	entries := make([]order.TimelineEntry, 0, len(dtos))
	for _, dto := range dtos {
		entry, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
