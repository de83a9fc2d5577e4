// Package reports implements read-only decision-support summaries over
// classification records and alerts. It aggregates in the store and never
// mutates domain data.
package reports

import (
	"time"

	"github.com/google/uuid"

	"github.com/seren-app/seren/internal/alerts"
	"github.com/seren-app/seren/internal/recognition"
)

// LabelCount pairs a label with how often it occurs.
type LabelCount struct {
	Label recognition.Label `json:"label"`
	Count int               `json:"count"`
}

// LevelCount pairs an alert level with how often it occurs.
type LevelCount struct {
	Level alerts.AlertLevel `json:"level"`
	Count int               `json:"count"`
}

// SubjectSummary describes one subject's recent emotional trajectory.
type SubjectSummary struct {
	SubjectID       uuid.UUID          `json:"subject_id"`
	RecordCount     int                `json:"record_count"`
	AverageScore    float64            `json:"average_score"`
	NegativeRatio   float64            `json:"negative_ratio"`
	DominantLabel   *recognition.Label `json:"dominant_label"`
	Labels          []LabelCount       `json:"labels"`
	UnhandledAlerts int                `json:"unhandled_alerts"`
	LatestLabel     *recognition.Label `json:"latest_label"`
	LatestScore     *int               `json:"latest_score"`
	LatestAt        *time.Time         `json:"latest_at"`
	GeneratedAt     time.Time          `json:"generated_at"`
}

// Overview describes the whole population at a glance.
type Overview struct {
	Subjects        int          `json:"subjects"`
	Records         int          `json:"records"`
	Labels          []LabelCount `json:"labels"`
	Alerts          []LevelCount `json:"alerts"`
	UnhandledAlerts int          `json:"unhandled_alerts"`
	GeneratedAt     time.Time    `json:"generated_at"`
}
