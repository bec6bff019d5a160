package http

import (
	"net/http"
	"time"

	"compliance/internal/core/application/usecases/commands"
	"compliance/internal/core/domain/model/kernel"
	"compliance/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// TransitionRequest is the body of POST /api/v1/orders/:id/transitions.
// The transition type is never taken from the request: this endpoint is the
// admin surface and always records admin_manual. System transitions enter
// through the payment webhook, the generator callback and the jobs.
type TransitionRequest struct {
	Action         string  `json:"action"`
	Reason         string  `json:"reason,omitempty"`
	Actor          string  `json:"actor"`
	RollbackTarget *string `json:"rollback_target,omitempty"`
}

// MarkPaidRequest is the body of POST /api/v1/orders/:id/paid.
type MarkPaidRequest struct {
	PaymentID string `json:"payment_id,omitempty"`
}

// ApproveVersionRequest is the body of POST /api/v1/orders/:id/approve.
type ApproveVersionRequest struct {
	Version int    `json:"version"`
	Notes   string `json:"notes,omitempty"`
	Actor   string `json:"actor"`
}

// RegenerationRequest is the body of POST /api/v1/orders/:id/regenerate.
type RegenerationRequest struct {
	ReasonCode         string   `json:"reason_code"`
	CorrectionNotes    string   `json:"correction_notes"`
	AffectedSections   []string `json:"affected_sections,omitempty"`
	PreserveNamesDates bool     `json:"preserve_names_dates"`
	PreserveFormat     bool     `json:"preserve_format"`
	Actor              string   `json:"actor"`
}

// ClientInfoRequest is the body of POST /api/v1/orders/:id/request-info.
type ClientInfoRequest struct {
	Notes           string   `json:"notes"`
	RequestedFields []string `json:"requested_fields,omitempty"`
	DeadlineDays    *int     `json:"deadline_days,omitempty"`
	Attachments     []string `json:"attachments,omitempty"`
	Actor           string   `json:"actor"`
}

// ClientResponseRequest is the body of POST /api/v1/orders/:id/client-response.
type ClientResponseRequest struct {
	Payload map[string]string `json:"payload"`
}

// RecordVersionRequest is the body of POST /api/v1/internal/versions, the
// generator's completion callback.
type RecordVersionRequest struct {
	OrderID      string `json:"order_id"`
	DocumentType string `json:"document_type"`
}

// TransitionResponse reports a successful transition: the order's new status
// with its refreshed action menu and the timeline entry just appended.
type TransitionResponse struct {
	OrderID        string                `json:"order_id"`
	Status         string                `json:"status"`
	AllowedActions []string              `json:"allowed_actions"`
	Entry          TimelineEntryResponse `json:"entry"`
}

// VersionRecordedResponse reports a stored document version.
type VersionRecordedResponse struct {
	OrderID        string   `json:"order_id"`
	Status         string   `json:"status"`
	Version        int      `json:"version"`
	IsRegeneration bool     `json:"is_regeneration"`
	AllowedActions []string `json:"allowed_actions"`
}

// ClientResponseAccepted reports a stored client response.
type ClientResponseAccepted struct {
	OrderID         string    `json:"order_id"`
	Status          string    `json:"status"`
	ResponseVersion int       `json:"response_version"`
	SubmittedAt     time.Time `json:"submitted_at"`
}

func transitionResponseFrom(result commands.TransitionResult) TransitionResponse {
	return TransitionResponse{
		OrderID:        result.Order.ID().String(),
		Status:         result.Order.Status().String(),
		AllowedActions: actionNames(result.Order.Status().AllowedActions()),
		Entry: TimelineEntryResponse{
			ID:             result.Entry.ID().String(),
			PreviousState:  result.Entry.PreviousState().String(),
			NewState:       result.Entry.NewState().String(),
			TransitionType: result.Entry.TransitionType().String(),
			Reason:         result.Entry.Reason(),
			TriggeredBy:    result.Entry.TriggeredBy(),
			CreatedAt:      result.Entry.CreatedAt(),
		},
	}
}

func actionNames(actions []order.Action) []string {
	names := make([]string, len(actions))
	for i, action := range actions {
		names[i] = action.String()
	}
	return names
}

// actorFrom resolves the acting identity for endpoints without a body.
func actorFrom(ctx echo.Context) string {
	if actor := ctx.Request().Header.Get("X-Actor"); actor != "" {
		return actor
	}
	return "admin"
}

// ApplyTransition handles POST /api/v1/orders/:id/transitions - applies one
// pipeline action to the order.
func (s *Server) ApplyTransition(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, "invalid order id")
	}

	var request TransitionRequest
	if err := ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	action, err := order.ActionFromString(request.Action)
	if err != nil {
		return respondError(ctx, err)
	}

	var rollbackTarget *order.Status
	if request.RollbackTarget != nil {
		target, err := order.StatusFromString(*request.RollbackTarget)
		if err != nil {
			return respondError(ctx, err)
		}
		rollbackTarget = &target
	}

	actor := request.Actor
	if actor == "" {
		actor = actorFrom(ctx)
	}

	cmd, err := commands.NewApplyTransitionCommand(
		orderID, action, order.AdminManual,
		request.Reason, actor, rollbackTarget,
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

// MarkPaid handles POST /api/v1/orders/:id/paid - confirms payment.
func (s *Server) MarkPaid(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, "invalid order id")
	}

	var request MarkPaidRequest
	if err := ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewMarkPaidCommand(orderID, request.PaymentID)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.markPaidHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, transitionResponseFrom(result))
}

// ApproveVersion handles POST /api/v1/orders/:id/approve - approves one
// document version and locks the order to it.
func (s *Server) ApproveVersion(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, "invalid order id")
	}

	var request ApproveVersionRequest
	if err := ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewApproveVersionCommand(orderID, request.Version, request.Notes, request.Actor)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.approveVersionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, transitionResponseFrom(result))
}

// RequestRegeneration handles POST /api/v1/orders/:id/regenerate - requests
// a corrected document version.
func (s *Server) RequestRegeneration(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, "invalid order id")
	}

	var request RegenerationRequest
	if err := ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	reasonCode, err := order.ReasonCodeFromString(request.ReasonCode)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewRequestRegenerationCommand(
		orderID, reasonCode, request.CorrectionNotes, request.AffectedSections,
		order.Guardrails{
			PreserveNamesDates: request.PreserveNamesDates,
			PreserveFormat:     request.PreserveFormat,
		},
		request.Actor,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.requestRegenerationHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, transitionResponseFrom(result))
}

// RequestClientInfo handles POST /api/v1/orders/:id/request-info - pauses
// the order for missing client input.
func (s *Server) RequestClientInfo(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, "invalid order id")
	}

	var request ClientInfoRequest
	if err := ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewRequestClientInfoCommand(
		orderID, request.Notes, request.RequestedFields,
		request.DeadlineDays, request.Attachments, request.Actor,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.requestClientInfoHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, transitionResponseFrom(result))
}

// SubmitClientResponse handles POST /api/v1/orders/:id/client-response -
// stores the client's answers and resumes the order.
func (s *Server) SubmitClientResponse(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, "invalid order id")
	}

	var request ClientResponseRequest
	if err := ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewSubmitClientResponseCommand(orderID, request.Payload)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.submitClientResponseHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ClientResponseAccepted{
		OrderID:         result.Order.ID().String(),
		Status:          result.Order.Status().String(),
		ResponseVersion: result.Response.Version(),
		SubmittedAt:     result.Response.SubmittedAt(),
	})
}

// RecordGeneratedVersion handles POST /api/v1/internal/versions - the
// generator's HTTP completion callback, equivalent to the queue consumer.
func (s *Server) RecordGeneratedVersion(ctx echo.Context) error {
	var request RecordVersionRequest
	if err := ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	orderID, err := kernel.UUIDFromString(request.OrderID)
	if err != nil {
		return respondBadRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewRecordGeneratedVersionCommand(orderID, request.DocumentType)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.recordVersionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, VersionRecordedResponse{
		OrderID:        result.Order.ID().String(),
		Status:         result.Order.Status().String(),
		Version:        result.Version.Number(),
		IsRegeneration: result.Version.IsRegeneration(),
		AllowedActions: actionNames(result.Order.Status().AllowedActions()),
	})
}
