// Package server provides the HTTP JSON API over a single plan controller.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/eduplan/internal/narration"
	"github.com/jonathan/eduplan/internal/planner"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// validationError converts validator output into an ErrValidation for the first failing field
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		msg := fe.Tag()
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		return &ErrValidation{Field: fe.Field(), Message: msg}
	}
	return &ErrValidation{Field: "body", Message: err.Error()}
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var verr *ErrValidation
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, planner.ErrUnknownSection), errors.Is(err, planner.ErrUnknownField):
		return http.StatusNotFound
	case errors.Is(err, planner.ErrIdeaRequired), errors.Is(err, planner.ErrProfileSection),
		errors.Is(err, narration.ErrEmptyScript):
		return http.StatusUnprocessableEntity
	case errors.Is(err, planner.ErrFieldBusy), errors.Is(err, planner.ErrPlanBusy),
		errors.Is(err, planner.ErrIdeaBusy), errors.Is(err, planner.ErrStale):
		return http.StatusConflict
	case errors.Is(err, planner.ErrNoResult):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
