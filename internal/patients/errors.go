package patients

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound  = errors.New("patient not found")
	ErrDuplicate = errors.New("motech id already registered")
	ErrInvalid   = errors.New("invalid patient")
)

// MapHTTPStatus maps domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
