package http

import (
	"net/http"
	"time"

	"compliance/internal/core/application/usecases/queries"
	"compliance/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// PipelineStageResponse is one stage of GET /api/v1/pipeline.
type PipelineStageResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// OrderSummaryResponse is one row of GET /api/v1/pipeline/:status.
type OrderSummaryResponse struct {
	ID                  string    `json:"id"`
	Status              string    `json:"status"`
	Priority            bool      `json:"priority"`
	CustomerName        string    `json:"customer_name"`
	ServiceName         string    `json:"service_name"`
	ServiceCode         string    `json:"service_code"`
	CreatedAt           time.Time `json:"created_at"`
	EnteredStatusAt     time.Time `json:"entered_status_at"`
	SLARemainingSeconds *int64    `json:"sla_remaining_seconds,omitempty"`
}

// GetPipeline handles GET /api/v1/pipeline - per-stage order counts across
// the whole pipeline, zero-filled.
func (s *Server) GetPipeline(ctx echo.Context) error {
	query := queries.NewGetPipelineSnapshotQuery()

	stages, err := s.getPipelineHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]PipelineStageResponse, len(stages))
	for i, stage := range stages {
		response[i] = PipelineStageResponse{Status: stage.Status, Count: stage.Count}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ListOrdersByStatus handles GET /api/v1/pipeline/:status - orders in one
// stage, sorted by the optional ?sort= key.
func (s *Server) ListOrdersByStatus(ctx echo.Context) error {
	status, err := order.StatusFromString(ctx.Param("status"))
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewListOrdersByStatusQuery(status, queries.SortKey(ctx.QueryParam("sort")))
	if err != nil {
		return respondError(ctx, err)
	}

	summaries, err := s.listOrdersByStatus.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]OrderSummaryResponse, len(summaries))
	for i, summary := range summaries {
		row := OrderSummaryResponse{
			ID:              summary.ID.String(),
			Status:          summary.Status,
			Priority:        summary.Priority,
			CustomerName:    summary.CustomerName,
			ServiceName:     summary.ServiceName,
			ServiceCode:     summary.ServiceCode,
			CreatedAt:       summary.CreatedAt,
			EnteredStatusAt: summary.EnteredStatusAt,
		}
		if summary.SLARemaining != nil {
			seconds := int64(summary.SLARemaining.Seconds())
			row.SLARemainingSeconds = &seconds
		}
		response[i] = row
	}

	return ctx.JSON(http.StatusOK, response)
}
