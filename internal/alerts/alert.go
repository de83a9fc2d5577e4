// Package alerts implements the alert domain for Seren: escalation rules
// evaluated over a subject's recent classification history, deduplication
// against unresolved alerts, and the handling workflow that resolves them.
package alerts

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AlertLevel is an ordered severity: normal < mild < moderate < severe.
// The ordering drives deduplication, so comparisons go through Rank.
type AlertLevel string

const (
	LevelNormal   AlertLevel = "normal"
	LevelMild     AlertLevel = "mild"
	LevelModerate AlertLevel = "moderate"
	LevelSevere   AlertLevel = "severe"
)

var levelRanks = map[AlertLevel]int{
	LevelNormal:   0,
	LevelMild:     1,
	LevelModerate: 2,
	LevelSevere:   3,
}

// Rank returns the ordinal position of the level. Unknown levels rank
// below normal.
func (l AlertLevel) Rank() int {
	if r, ok := levelRanks[l]; ok {
		return r
	}
	return -1
}

// AtLeast reports whether l is equal to or more severe than other.
func (l AlertLevel) AtLeast(other AlertLevel) bool {
	return l.Rank() >= other.Rank()
}

// ParseLevel validates a raw string against the level set.
func ParseLevel(raw string) (AlertLevel, error) {
	l := AlertLevel(raw)
	if _, ok := levelRanks[l]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidLevel, raw)
	}
	return l, nil
}

// UnmarshalJSON enforces the closed level set on decode.
func (l *AlertLevel) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	parsed, err := ParseLevel(raw)
	if err != nil {
		return err
	}

	*l = parsed
	return nil
}

// levelsAtLeast returns every level equal to or above the given level,
// for use in store-side dedup queries.
func levelsAtLeast(level AlertLevel) []any {
	out := make([]any, 0, len(levelRanks))
	for l, r := range levelRanks {
		if r >= level.Rank() {
			out = append(out, string(l))
		}
	}
	return out
}

// Alert is a human-reviewable escalation for one subject. An alert is
// mutated exactly once, from unhandled to handled, and never deleted.
type Alert struct {
	ID          uuid.UUID  `json:"id"`
	SubjectID   uuid.UUID  `json:"subject_id"`
	Level       AlertLevel `json:"level"`
	Reason      string     `json:"reason"`
	Description string     `json:"description"`
	IsHandled   bool       `json:"is_handled"`
	HandledBy   *string    `json:"handled_by"`
	HandledAt   *time.Time `json:"handled_at"`
	HandledNote *string    `json:"handled_note"`
	CreatedAt   time.Time  `json:"created_at"`
}

// CreateCommand carries a manually raised alert. Manual creation bypasses
// the rule engine and its deduplication entirely.
type CreateCommand struct {
	SubjectID   uuid.UUID  `json:"subject_id"`
	Level       AlertLevel `json:"level"`
	Reason      string     `json:"reason"`
	Description string     `json:"description"`
}

// HandleCommand resolves an alert.
type HandleCommand struct {
	HandledBy   string  `json:"handled_by"`
	HandledNote *string `json:"handled_note,omitempty"`
}

// Outcome reports the result of one rule evaluation pass. Level is the
// candidate severity the rules produced (normal when no rule fired);
// Suppressed marks a candidate dropped by deduplication; Alert is set
// only when a new alert was persisted.
type Outcome struct {
	Alert      *Alert     `json:"alert,omitempty"`
	Level      AlertLevel `json:"level"`
	Suppressed bool       `json:"suppressed"`
}
