package queries

import (
	"context"
	"database/sql"
	"encoding/json"

	"compliance/internal/core/domain/model/kernel"
	"compliance/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderTimelineQueryHandler reads the audit timeline straight from the
// order_timeline table.
type GetOrderTimelineQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderTimelineQueryHandler creates a handler for timeline queries.
func NewGetOrderTimelineQueryHandler(db *gorm.DB) GetOrderTimelineQueryHandler {
	return GetOrderTimelineQueryHandler{db: db}
}

// Handle returns the order's transitions oldest first. Unknown order ids
// yield ObjectNotFound rather than an empty timeline, since every order has
// at least its creation entry.
func (h GetOrderTimelineQueryHandler) Handle(
	ctx context.Context,
	query GetOrderTimelineQuery,
) ([]TimelineEntryView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			previous_state,
			new_state,
			transition_type,
			reason,
			triggered_by,
			regeneration,
			created_at
		FROM order_timeline
		WHERE order_id = ?
		ORDER BY created_at
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]TimelineEntryView, 0)
	for rows.Next() {
		var (
			view           TimelineEntryView
			id             uuid.UUID
			previousState  int
			newState       int
			transitionType int
			regeneration   sql.NullString
		)

		err = rows.Scan(
			&id,
			&previousState,
			&newState,
			&transitionType,
			&view.Reason,
			&view.TriggeredBy,
			&regeneration,
			&view.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		entryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		view.ID = entryID
		view.PreviousState = statusName(previousState)
		view.NewState = statusName(newState)
		view.TransitionType = transitionTypeName(transitionType)

		if regeneration.Valid {
			var detail RegenerationView
			if err = json.Unmarshal([]byte(regeneration.String), &detail); err != nil {
				return nil, err
			}
			view.Regeneration = &detail
		}

		entries = append(entries, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		return nil, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	return entries, nil
}
