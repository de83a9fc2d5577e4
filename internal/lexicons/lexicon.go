// Package lexicons implements the lexicon management domain for Seren.
// It provides types, data access, and HTTP handlers for the keyword and
// greeting entries that drive lexical matching, compiling them into the
// form the recognizer consumes and pushing updates to it on change.
package lexicons

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/seren-app/seren/internal/recognition"
)

// Kind distinguishes the two entry families a lexicon holds.
type Kind string

const (
	KindKeyword  Kind = "keyword"
	KindGreeting Kind = "greeting"
)

// ParseKind validates a raw string against the kind set.
func ParseKind(raw string) (Kind, error) {
	switch Kind(raw) {
	case KindKeyword, KindGreeting:
		return Kind(raw), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidKind, raw)
	}
}

// UnmarshalJSON enforces the closed kind set on decode.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	parsed, err := ParseKind(raw)
	if err != nil {
		return err
	}

	*k = parsed
	return nil
}

// Entry is one term in the lexicon. Keyword entries carry the label they
// vote for; greeting entries have no label.
type Entry struct {
	ID        uuid.UUID          `json:"id"`
	Kind      Kind               `json:"kind"`
	Label     *recognition.Label `json:"label"`
	Term      string             `json:"term"`
	CreatedAt time.Time          `json:"created_at"`
}

// CreateCommand carries the data needed to add a lexicon entry.
type CreateCommand struct {
	Kind  Kind               `json:"kind"`
	Label *recognition.Label `json:"label"`
	Term  string             `json:"term"`
}
