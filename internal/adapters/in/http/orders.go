package http

import (
	"net/http"
	"time"

	"compliance/internal/core/application/usecases/commands"
	"compliance/internal/core/application/usecases/queries"
	"compliance/internal/core/domain/model/kernel"
	"compliance/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// NewOrderRequest is the body of POST /api/v1/orders.
type NewOrderRequest struct {
	CustomerName    string `json:"customer_name"`
	CustomerEmail   string `json:"customer_email"`
	CustomerPhone   string `json:"customer_phone"`
	ServiceName     string `json:"service_name"`
	ServiceCode     string `json:"service_code"`
	ServiceCategory string `json:"service_category"`
	PriceAmount     int64  `json:"price_amount"`
	PriceCurrency   string `json:"price_currency"`
	SLAHours        *int   `json:"sla_hours,omitempty"`
	Priority        bool   `json:"priority"`
	InternalNotes   string `json:"internal_notes,omitempty"`
}

// OrderCreatedResponse carries the identifier of a newly created order.
type OrderCreatedResponse struct {
	ID string `json:"id"`
}

// OrderDetailResponse is the full order view of GET /api/v1/orders/:id.
type OrderDetailResponse struct {
	ID              string                    `json:"id"`
	Status          string                    `json:"status"`
	Priority        bool                      `json:"priority"`
	CustomerName    string                    `json:"customer_name"`
	CustomerEmail   string                    `json:"customer_email"`
	CustomerPhone   string                    `json:"customer_phone,omitempty"`
	ServiceName     string                    `json:"service_name"`
	ServiceCode     string                    `json:"service_code"`
	ServiceCategory string                    `json:"service_category"`
	PriceAmount     int64                     `json:"price_amount"`
	PriceCurrency   string                    `json:"price_currency"`
	SLAHours        *int                      `json:"sla_hours,omitempty"`
	SLAPaused       bool                      `json:"sla_paused"`
	VersionLocked   bool                      `json:"version_locked"`
	ApprovedVersion *int                      `json:"approved_version,omitempty"`
	InternalNotes   string                    `json:"internal_notes,omitempty"`
	AllowedActions  []string                  `json:"allowed_actions"`
	CreatedAt       time.Time                 `json:"created_at"`
	UpdatedAt       time.Time                 `json:"updated_at"`
	Versions        []DocumentVersionResponse `json:"versions"`
}

// DocumentVersionResponse is one document version in the detail view.
type DocumentVersionResponse struct {
	Version           int       `json:"version"`
	DocumentType      string    `json:"document_type"`
	IsRegeneration    bool      `json:"is_regeneration"`
	RegenerationNotes string    `json:"regeneration_notes,omitempty"`
	IsApproved        bool      `json:"is_approved"`
	GeneratedAt       time.Time `json:"generated_at"`
}

// TimelineEntryResponse is one audit record of GET /api/v1/orders/:id/timeline.
type TimelineEntryResponse struct {
	ID             string                    `json:"id"`
	PreviousState  string                    `json:"previous_state"`
	NewState       string                    `json:"new_state"`
	TransitionType string                    `json:"transition_type"`
	Reason         string                    `json:"reason,omitempty"`
	TriggeredBy    string                    `json:"triggered_by"`
	Regeneration   *queries.RegenerationView `json:"regeneration,omitempty"`
	CreatedAt      time.Time                 `json:"created_at"`
}

// CreateOrder handles POST /api/v1/orders - registers a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request NewOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewCreateOrderCommand(
		request.CustomerName, request.CustomerEmail, request.CustomerPhone,
		request.ServiceName, request.ServiceCode, request.ServiceCategory,
		request.PriceAmount, request.PriceCurrency,
		request.SLAHours,
		request.Priority,
		request.InternalNotes,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, OrderCreatedResponse{ID: orderID.String()})
}

// GetOrder handles GET /api/v1/orders/:id - retrieves the full order view.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, "invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	detail, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	versions := make([]DocumentVersionResponse, len(detail.Versions))
	for i, version := range detail.Versions {
		versions[i] = DocumentVersionResponse{
			Version:           version.Version,
			DocumentType:      version.DocumentType,
			IsRegeneration:    version.IsRegeneration,
			RegenerationNotes: version.RegenerationNotes,
			IsApproved:        version.IsApproved,
			GeneratedAt:       version.GeneratedAt,
		}
	}

	return ctx.JSON(http.StatusOK, OrderDetailResponse{
		ID:              detail.ID.String(),
		Status:          detail.Status,
		Priority:        detail.Priority,
		CustomerName:    detail.CustomerName,
		CustomerEmail:   detail.CustomerEmail,
		CustomerPhone:   detail.CustomerPhone,
		ServiceName:     detail.ServiceName,
		ServiceCode:     detail.ServiceCode,
		ServiceCategory: detail.ServiceCategory,
		PriceAmount:     detail.PriceAmount,
		PriceCurrency:   detail.PriceCurrency,
		SLAHours:        detail.SLAHours,
		SLAPaused:       detail.SLAPaused,
		VersionLocked:   detail.VersionLocked,
		ApprovedVersion: detail.ApprovedVersion,
		InternalNotes:   detail.InternalNotes,
		AllowedActions:  detail.AllowedActions,
		CreatedAt:       detail.CreatedAt,
		UpdatedAt:       detail.UpdatedAt,
		Versions:        versions,
	})
}

// GetOrderTimeline handles GET /api/v1/orders/:id/timeline - retrieves the
// append-only audit trail, oldest first.
func (s *Server) GetOrderTimeline(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, "invalid order id")
	}

	query, err := queries.NewGetOrderTimelineQuery(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	entries, err := s.getTimelineHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]TimelineEntryResponse, len(entries))
	for i, entry := range entries {
		response[i] = TimelineEntryResponse{
			ID:             entry.ID.String(),
			PreviousState:  entry.PreviousState,
			NewState:       entry.NewState,
			TransitionType: entry.TransitionType,
			Reason:         entry.Reason,
			TriggeredBy:    entry.TriggeredBy,
			Regeneration:   entry.Regeneration,
			CreatedAt:      entry.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// DeleteOrder handles DELETE /api/v1/orders/:id. Orders are never removed;
// the delete verb cancels the order and records the admin-delete trigger on
// the timeline.
func (s *Server) DeleteOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewApplyTransitionCommand(
		orderID, order.ActionCancel, order.AdminDelete,
		"order deleted", actorFrom(ctx), nil,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.applyTransitionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, transitionResponseFrom(result))
}
