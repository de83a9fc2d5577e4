package alerts

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// alertStore is the narrow persistence surface the evaluator needs: the
// dedup lookup and the insert. The Postgres repository implements it.
type alertStore interface {
	hasUnresolved(ctx context.Context, subjectID uuid.UUID, level AlertLevel) (bool, error)
	insert(ctx context.Context, subjectID uuid.UUID, level AlertLevel, reason, description string) (*Alert, error)
}

// evaluator runs the escalation rules for one subject and applies the
// dedup policy against the store. The check-then-insert is serialized
// per subject so two concurrent evaluations cannot both pass the check
// and both insert.
type evaluator struct {
	store   alertStore
	records RecordSource
	logger  *slog.Logger
	locks   *subjectLocks
}

func (e *evaluator) evaluate(ctx context.Context, subjectID uuid.UUID) (*Outcome, error) {
	lock := e.locks.get(subjectID)
	lock.Lock()
	defer lock.Unlock()

	window, err := e.records.Window(ctx, subjectID, evaluationLookback)
	if err != nil {
		return nil, fmt.Errorf("load evaluation window: %w", err)
	}

	cand, ok := evaluateRules(window)
	if !ok {
		return &Outcome{Level: LevelNormal}, nil
	}

	exists, err := e.store.hasUnresolved(ctx, subjectID, cand.level)
	if err != nil {
		return nil, err
	}
	if exists {
		e.logger.Debug("alert suppressed by unresolved duplicate",
			"subject", subjectID,
			"level", cand.level,
		)
		return &Outcome{Level: cand.level, Suppressed: true}, nil
	}

	a, err := e.store.insert(ctx, subjectID, cand.level, cand.reason, describe(window[0]))
	if err != nil {
		return nil, err
	}

	e.logger.Info("alert created",
		"id", a.ID,
		"subject", a.SubjectID,
		"level", a.Level,
		"reason", a.Reason,
		"source", "automatic",
	)
	return &Outcome{Alert: a, Level: cand.level}, nil
}
