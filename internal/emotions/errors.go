package emotions

import (
	"errors"
	"net/http"

	"github.com/seren-app/seren/internal/recognition"
)

// Domain errors for classification record operations.
var (
	ErrNotFound      = errors.New("record not found")
	ErrDuplicate     = errors.New("record already exists")
	ErrInvalidInput  = errors.New("invalid classification input")
	ErrMediaTooLarge = errors.New("media exceeds maximum upload size")
)

// MapHTTPStatus maps record domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidInput) || errors.Is(err, recognition.ErrEmptyText) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrMediaTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, recognition.ErrNotReady) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
