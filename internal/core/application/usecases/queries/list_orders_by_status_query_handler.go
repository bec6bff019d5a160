package queries

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"compliance/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListOrdersByStatusQueryHandler lists one pipeline stage straight from the
// database. Remaining SLA is computed in SQL with the same pause-aware
// formula the domain clock uses, so sla_asc ordering happens in the query.
type ListOrdersByStatusQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersByStatusQueryHandler creates a handler for stage listings.
func NewListOrdersByStatusQueryHandler(db *gorm.DB) ListOrdersByStatusQueryHandler {
	return ListOrdersByStatusQueryHandler{db: db}
}

// Handle returns the stage's orders in the requested ordering.
func (h ListOrdersByStatusQueryHandler) Handle(
	ctx context.Context,
	query ListOrdersByStatusQuery,
) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	// sort clauses come from the fixed SortKey table, never from input
	orderBy := sortKeyClauses()[query.SortKey()]

	rows, err := h.db.WithContext(ctx).Raw(fmt.Sprintf(`
		SELECT
			id,
			status,
			priority,
			customer_name,
			service_name,
			service_code,
			created_at,
			updated_at,
			CASE WHEN sla_hours IS NULL THEN NULL ELSE
				sla_hours * 3600.0
					- EXTRACT(EPOCH FROM (COALESCE(sla_paused_at, NOW()) - updated_at))
					+ sla_paused_total_ns / 1e9
			END AS sla_remaining_seconds
		FROM orders
		WHERE status = ?
		ORDER BY %s
	`, orderBy), int(query.Status())).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]OrderSummary, 0)
	for rows.Next() {
		var (
			summary          OrderSummary
			id               uuid.UUID
			status           int
			remainingSeconds sql.NullFloat64
		)

		err = rows.Scan(
			&id,
			&status,
			&summary.Priority,
			&summary.CustomerName,
			&summary.ServiceName,
			&summary.ServiceCode,
			&summary.CreatedAt,
			&summary.EnteredStatusAt,
			&remainingSeconds,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		summary.ID = orderID
		summary.Status = statusName(status)

		if remainingSeconds.Valid {
			remaining := time.Duration(remainingSeconds.Float64 * float64(time.Second))
			summary.SLARemaining = &remaining
		}

		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}
