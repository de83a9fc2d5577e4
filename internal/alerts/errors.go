package alerts

import (
	"errors"
	"net/http"
)

// Domain errors for alert operations.
var (
	ErrNotFound       = errors.New("alert not found")
	ErrDuplicate      = errors.New("alert already exists")
	ErrInvalidLevel   = errors.New("invalid alert level")
	ErrInvalidInput   = errors.New("invalid alert input")
	ErrAlreadyHandled = errors.New("alert already handled")
)

// MapHTTPStatus maps alert domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) || errors.Is(err, ErrAlreadyHandled) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidLevel) || errors.Is(err, ErrInvalidInput) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
