package directory

import (
	"errors"
	"net/http"
)

// Domain errors for directory lookups.
var (
	ErrActorNotFound      = errors.New("actor not found")
	ErrDepartmentNotFound = errors.New("department not found")
)

// MapHTTPStatus maps directory domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrActorNotFound) || errors.Is(err, ErrDepartmentNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
