// Package http exposes the workflow engine over a JSON REST API built on
// echo. Handlers translate requests into commands and queries and map
// usecase errors onto HTTP statuses.
package http

import (
	"net/http"

	"compliance/internal/core/application/usecases/commands"
	"compliance/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler          commands.CreateOrderCommandHandler
	applyTransitionHandler      commands.ApplyTransitionCommandHandler
	markPaidHandler             commands.MarkPaidCommandHandler
	approveVersionHandler       commands.ApproveVersionCommandHandler
	requestRegenerationHandler  commands.RequestRegenerationCommandHandler
	requestClientInfoHandler    commands.RequestClientInfoCommandHandler
	submitClientResponseHandler commands.SubmitClientResponseCommandHandler
	recordVersionHandler        commands.RecordGeneratedVersionCommandHandler

	// Query handlers
	getOrderHandler    queries.GetOrderQueryHandler
	getTimelineHandler queries.GetOrderTimelineQueryHandler
	getPipelineHandler queries.GetPipelineSnapshotQueryHandler
	listOrdersByStatus queries.ListOrdersByStatusQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	applyTransitionHandler commands.ApplyTransitionCommandHandler,
	markPaidHandler commands.MarkPaidCommandHandler,
	approveVersionHandler commands.ApproveVersionCommandHandler,
	requestRegenerationHandler commands.RequestRegenerationCommandHandler,
	requestClientInfoHandler commands.RequestClientInfoCommandHandler,
	submitClientResponseHandler commands.SubmitClientResponseCommandHandler,
	recordVersionHandler commands.RecordGeneratedVersionCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getTimelineHandler queries.GetOrderTimelineQueryHandler,
	getPipelineHandler queries.GetPipelineSnapshotQueryHandler,
	listOrdersByStatus queries.ListOrdersByStatusQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:          createOrderHandler,
		applyTransitionHandler:      applyTransitionHandler,
		markPaidHandler:             markPaidHandler,
		approveVersionHandler:       approveVersionHandler,
		requestRegenerationHandler:  requestRegenerationHandler,
		requestClientInfoHandler:    requestClientInfoHandler,
		submitClientResponseHandler: submitClientResponseHandler,
		recordVersionHandler:        recordVersionHandler,
		getOrderHandler:             getOrderHandler,
		getTimelineHandler:          getTimelineHandler,
		getPipelineHandler:          getPipelineHandler,
		listOrdersByStatus:          listOrdersByStatus,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:id", s.GetOrder)
	api.GET("/orders/:id/timeline", s.GetOrderTimeline)
	api.DELETE("/orders/:id", s.DeleteOrder)

	api.POST("/orders/:id/transitions", s.ApplyTransition)
	api.POST("/orders/:id/paid", s.MarkPaid)
	api.POST("/orders/:id/approve", s.ApproveVersion)
	api.POST("/orders/:id/regenerate", s.RequestRegeneration)
	api.POST("/orders/:id/request-info", s.RequestClientInfo)
	api.POST("/orders/:id/client-response", s.SubmitClientResponse)

	api.GET("/pipeline", s.GetPipeline)
	api.GET("/pipeline/:status", s.ListOrdersByStatus)

	api.POST("/internal/versions", s.RecordGeneratedVersion)

	e.GET("/health", s.Health)
}

// Health handles GET /health - liveness probe.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
