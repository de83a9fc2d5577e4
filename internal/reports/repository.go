package reports

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/seren-app/seren/internal/recognition"
	"github.com/seren-app/seren/pkg/repository"
)

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a report repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "reports"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) Subject(ctx context.Context, subjectID uuid.UUID) (*SubjectSummary, error) {
	s := SubjectSummary{
		SubjectID:   subjectID,
		GeneratedAt: time.Now().UTC(),
	}

	labels, err := repository.QueryMany(ctx, r.db, `
		SELECT label, COUNT(*)
		FROM emotion_records
		WHERE subject_id = $1
		GROUP BY label
		ORDER BY COUNT(*) DESC, label ASC`,
		[]any{subjectID}, scanLabelCount)
	if err != nil {
		return nil, fmt.Errorf("query subject labels: %w", err)
	}
	s.Labels = labels

	for _, lc := range labels {
		s.RecordCount += lc.Count
		if lc.Label.Negative() {
			s.NegativeRatio += float64(lc.Count)
		}
	}
	if s.RecordCount > 0 {
		s.NegativeRatio /= float64(s.RecordCount)
		s.DominantLabel = &labels[0].Label
	}

	if s.RecordCount > 0 {
		if err := r.db.QueryRowContext(ctx, `
			SELECT AVG(score) FROM emotion_records WHERE subject_id = $1`,
			subjectID,
		).Scan(&s.AverageScore); err != nil {
			return nil, fmt.Errorf("query subject average score: %w", err)
		}
	}

	var (
		latestLabel recognition.Label
		latestScore int
		latestAt    time.Time
	)
	err = r.db.QueryRowContext(ctx, `
		SELECT label, score, created_at
		FROM emotion_records
		WHERE subject_id = $1
		ORDER BY created_at DESC
		LIMIT 1`,
		subjectID,
	).Scan(&latestLabel, &latestScore, &latestAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return nil, fmt.Errorf("query subject latest record: %w", err)
	default:
		latestAt = latestAt.UTC()
		s.LatestLabel = &latestLabel
		s.LatestScore = &latestScore
		s.LatestAt = &latestAt
	}

	if err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM alerts WHERE subject_id = $1 AND is_handled = FALSE`,
		subjectID,
	).Scan(&s.UnhandledAlerts); err != nil {
		return nil, fmt.Errorf("count subject unhandled alerts: %w", err)
	}

	return &s, nil
}

func (r *repo) Overview(ctx context.Context) (*Overview, error) {
	o := Overview{GeneratedAt: time.Now().UTC()}

	if err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT subject_id), COUNT(*) FROM emotion_records`,
	).Scan(&o.Subjects, &o.Records); err != nil {
		return nil, fmt.Errorf("count records: %w", err)
	}

	labels, err := repository.QueryMany(ctx, r.db, `
		SELECT label, COUNT(*)
		FROM emotion_records
		GROUP BY label
		ORDER BY COUNT(*) DESC, label ASC`,
		nil, scanLabelCount)
	if err != nil {
		return nil, fmt.Errorf("query label counts: %w", err)
	}
	o.Labels = labels

	levels, err := repository.QueryMany(ctx, r.db, `
		SELECT level, COUNT(*)
		FROM alerts
		GROUP BY level
		ORDER BY COUNT(*) DESC, level ASC`,
		nil, func(s repository.Scanner) (LevelCount, error) {
			var lc LevelCount
			err := s.Scan(&lc.Level, &lc.Count)
			return lc, err
		})
	if err != nil {
		return nil, fmt.Errorf("query alert counts: %w", err)
	}
	o.Alerts = levels

	if err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM alerts WHERE is_handled = FALSE`,
	).Scan(&o.UnhandledAlerts); err != nil {
		return nil, fmt.Errorf("count unhandled alerts: %w", err)
	}

	return &o, nil
}

func scanLabelCount(s repository.Scanner) (LabelCount, error) {
	var lc LabelCount
	err := s.Scan(&lc.Label, &lc.Count)
	return lc, err
}
