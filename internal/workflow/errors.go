package workflow

import (
	"errors"
	"net/http"

	"docutrail/internal/directory"
	"docutrail/internal/documents"
)

// Workflow errors. Storage failures pass through unwrapped and map to 500.
var (
	ErrUnauthorized      = errors.New("actor role insufficient for operation")
	ErrInvalidTransition = errors.New("operation not valid in current state")
	ErrValidation        = errors.New("invalid operation payload")
)

// MapHTTPStatus maps workflow errors, including referenced-entity lookup
// failures, to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, documents.ErrNotFound),
		errors.Is(err, directory.ErrActorNotFound),
		errors.Is(err, directory.ErrDepartmentNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
