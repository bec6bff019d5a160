package queries

import (
	"context"

	"compliance/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetPipelineSnapshotQueryHandler counts orders per pipeline stage with a
// single grouped query, bypassing the aggregate for read performance.
type GetPipelineSnapshotQueryHandler struct {
	db *gorm.DB
}

// NewGetPipelineSnapshotQueryHandler creates a handler for snapshot queries.
func NewGetPipelineSnapshotQueryHandler(db *gorm.DB) GetPipelineSnapshotQueryHandler {
	return GetPipelineSnapshotQueryHandler{db: db}
}

// Handle returns one count per pipeline stage, in pipeline order, including
// stages that currently hold no orders.
func (h GetPipelineSnapshotQueryHandler) Handle(
	ctx context.Context,
	query GetPipelineSnapshotQuery,
) ([]PipelineStageCount, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			COUNT(*)
		FROM orders
		GROUP BY status
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[order.Status]int)
	for rows.Next() {
		var status, count int
		if err = rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[order.Status(status)] = count
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	statuses := order.AllStatuses()
	snapshot := make([]PipelineStageCount, 0, len(statuses))
	for _, status := range statuses {
		snapshot = append(snapshot, PipelineStageCount{
			Status: status.String(),
			Count:  counts[status],
		})
	}

	return snapshot, nil
}
