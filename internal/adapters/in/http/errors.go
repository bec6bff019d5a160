package http

import (
	"errors"
	"net/http"

	"compliance/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the JSON envelope for every non-2xx answer. CurrentStatus
// and AllowedActions are set on transition conflicts so clients can refresh
// their action menu without a second round trip.
type ErrorResponse struct {
	Kind           string   `json:"kind"`
	Message        string   `json:"message"`
	CurrentStatus  string   `json:"current_status,omitempty"`
	AllowedActions []string `json:"allowed_actions,omitempty"`
}

// respondError maps a usecase error onto an HTTP status and envelope.
func respondError(ctx echo.Context, err error) error {
	var invalidTransition *errs.InvalidTransitionError
	if errors.As(err, &invalidTransition) {
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Kind:           "invalid_transition",
			Message:        err.Error(),
			CurrentStatus:  invalidTransition.From,
			AllowedActions: invalidTransition.Allowed,
		})
	}

	var terminal *errs.OrderTerminalError
	if errors.As(err, &terminal) {
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Kind:          "order_terminal",
			Message:       err.Error(),
			CurrentStatus: terminal.Status,
		})
	}

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Kind:    "not_found",
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrAlreadyLocked):
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Kind:    "version_locked",
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrConcurrentModification):
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Kind:    "concurrent_modification",
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrVersionIsInvalid):
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Kind:    "validation",
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Kind:    "internal",
			Message: "internal server error",
		})
	}
}

// respondBadRequest answers a malformed request body or parameter.
func respondBadRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Kind:    "validation",
		Message: message,
	})
}
