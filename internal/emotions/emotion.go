// Package emotions implements the classification record domain for Seren.
// It provides types, data access, and business logic for classifying text
// samples, persisting the resulting records, and serving the per-subject
// history window that alert evaluation depends on.
package emotions

import (
	"time"

	"github.com/google/uuid"

	"github.com/seren-app/seren/internal/recognition"
)

// Record is a stored classification result for one text sample.
// Records are immutable once created; Distribution[Label] equals Score.
type Record struct {
	ID           uuid.UUID                `json:"id"`
	SubjectID    uuid.UUID                `json:"subject_id"`
	SourceText   *string                  `json:"source_text"`
	MediaKey     *string                  `json:"media_key"`
	MediaType    *string                  `json:"media_type"`
	Label        recognition.Label        `json:"label"`
	Score        int                      `json:"score"`
	Distribution recognition.Distribution `json:"distribution"`
	CreatedAt    time.Time                `json:"created_at"`
}

// MediaAttachment carries an optional uploaded file accompanying a
// classification submission (voice or image capture alongside the text).
type MediaAttachment struct {
	Data        []byte
	Filename    string
	ContentType string
}

// ClassifyCommand carries the data needed to classify and persist a new record.
// Text is always classified; Media, when present, is stored as a blob and
// referenced from the record.
type ClassifyCommand struct {
	SubjectID uuid.UUID `json:"subject_id"`
	Text      string    `json:"text"`
	Media     *MediaAttachment
}

// LabelStat aggregates record counts and average score for one label.
type LabelStat struct {
	Label        recognition.Label `json:"label"`
	Count        int               `json:"count"`
	AverageScore float64           `json:"average_score"`
}

// StatsRequest bounds a statistics query to an optional date range.
type StatsRequest struct {
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`
}
