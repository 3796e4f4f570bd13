package documents

import (
	"errors"
	"net/http"
)

// Domain errors.
var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("document reference already exists")
)

// MapHTTPStatus maps document errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
