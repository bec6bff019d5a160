package queries

import (
	"context"
	"database/sql"
	"errors"

	"compliance/internal/core/domain/model/kernel"
	"compliance/internal/core/domain/model/order"
	"compliance/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order's detail view, joining in its
// document version history.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order detail queries.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns the detail view or ObjectNotFound.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderDetail, error) {
	if err := query.Validate(); err != nil {
		return OrderDetail{}, err
	}

	detail, status, err := h.loadOrder(ctx, query.OrderID())
	if err != nil {
		return OrderDetail{}, err
	}

	actions := status.AllowedActions()
	detail.Status = status.String()
	detail.AllowedActions = make([]string, 0, len(actions))
	for _, action := range actions {
		detail.AllowedActions = append(detail.AllowedActions, action.String())
	}

	if detail.Versions, err = h.loadVersions(ctx, query.OrderID()); err != nil {
		return OrderDetail{}, err
	}

	return detail, nil
}

func (h GetOrderQueryHandler) loadOrder(
	ctx context.Context,
	orderID kernel.UUID,
) (OrderDetail, order.Status, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			priority,
			customer_name,
			customer_email,
			customer_phone,
			service_name,
			service_code,
			service_category,
			price_amount,
			price_currency,
			sla_hours,
			sla_paused_at,
			version_locked,
			approved_version,
			internal_notes,
			created_at,
			updated_at
		FROM orders
		WHERE id = ?
	`, orderID.Bytes()).Row()

	var (
		detail          OrderDetail
		id              uuid.UUID
		status          int
		slaHours        sql.NullInt64
		slaPausedAt     sql.NullTime
		approvedVersion int
	)

	err := row.Scan(
		&id,
		&status,
		&detail.Priority,
		&detail.CustomerName,
		&detail.CustomerEmail,
		&detail.CustomerPhone,
		&detail.ServiceName,
		&detail.ServiceCode,
		&detail.ServiceCategory,
		&detail.PriceAmount,
		&detail.PriceCurrency,
		&slaHours,
		&slaPausedAt,
		&detail.VersionLocked,
		&approvedVersion,
		&detail.InternalNotes,
		&detail.CreatedAt,
		&detail.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return OrderDetail{}, order.Unknown, errs.NewObjectNotFoundError("order", orderID.String())
		}
		return OrderDetail{}, order.Unknown, err
	}

	detailID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return OrderDetail{}, order.Unknown, err
	}
	detail.ID = detailID

	if slaHours.Valid {
		hours := int(slaHours.Int64)
		detail.SLAHours = &hours
	}
	detail.SLAPaused = slaPausedAt.Valid
	if approvedVersion > 0 {
		detail.ApprovedVersion = &approvedVersion
	}

	return detail, order.Status(status), nil
}

func (h GetOrderQueryHandler) loadVersions(
	ctx context.Context,
	orderID kernel.UUID,
) ([]DocumentVersionView, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			version,
			document_type,
			is_regeneration,
			regeneration_notes,
			is_approved,
			generated_at
		FROM document_versions
		WHERE order_id = ?
		ORDER BY version
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	versions := make([]DocumentVersionView, 0)
	for rows.Next() {
		var view DocumentVersionView
		err = rows.Scan(
			&view.Version,
			&view.DocumentType,
			&view.IsRegeneration,
			&view.RegenerationNotes,
			&view.IsApproved,
			&view.GeneratedAt,
		)
		if err != nil {
			return nil, err
		}
		versions = append(versions, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return versions, nil
}
