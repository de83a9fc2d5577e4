package lexicons

import (
	"errors"
	"net/http"

	"github.com/seren-app/seren/internal/recognition"
)

// Domain errors for lexicon operations.
var (
	ErrNotFound     = errors.New("lexicon entry not found")
	ErrDuplicate    = errors.New("lexicon entry already exists")
	ErrInvalidKind  = errors.New("invalid lexicon entry kind")
	ErrInvalidEntry = errors.New("invalid lexicon entry")
)

// MapHTTPStatus maps lexicon domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidKind) ||
		errors.Is(err, ErrInvalidEntry) ||
		errors.Is(err, recognition.ErrInvalidLabel) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
