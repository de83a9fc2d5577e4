package alerts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/seren-app/seren/pkg/pagination"
	"github.com/seren-app/seren/pkg/query"
	"github.com/seren-app/seren/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
	eval       *evaluator
}

// New creates an alert repository implementing the System interface.
func New(
	db *sql.DB,
	records RecordSource,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	r := &repo{
		db:         db,
		logger:     logger.With("system", "alerts"),
		pagination: pagination,
	}
	r.eval = &evaluator{
		store:   r,
		records: records,
		logger:  r.logger,
		locks:   newSubjectLocks(),
	}
	return r
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Alert], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Reason", "Description")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count alerts: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	alerts, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanAlert)
	if err != nil {
		return nil, fmt.Errorf("query alerts: %w", err)
	}

	result := pagination.NewPageResult(alerts, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Alert, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	a, err := repository.QueryOne(ctx, r.db, q, args, scanAlert)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &a, nil
}

// Create persists a manually raised alert without any deduplication check.
func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Alert, error) {
	if cmd.SubjectID == uuid.Nil || cmd.Reason == "" {
		return nil, ErrInvalidInput
	}
	if _, err := ParseLevel(string(cmd.Level)); err != nil {
		return nil, err
	}

	a, err := r.insert(ctx, cmd.SubjectID, cmd.Level, cmd.Reason, cmd.Description)
	if err != nil {
		return nil, err
	}

	r.logger.Info("alert created",
		"id", a.ID,
		"subject", a.SubjectID,
		"level", a.Level,
		"source", "manual",
	)
	return a, nil
}

// Handle resolves an alert exactly once. A second attempt returns
// ErrAlreadyHandled without modifying the stored handling fields.
func (r *repo) Handle(ctx context.Context, id uuid.UUID, cmd HandleCommand) (*Alert, error) {
	if cmd.HandledBy == "" {
		return nil, ErrInvalidInput
	}

	q := `
		UPDATE alerts
		SET is_handled = TRUE, handled_by = $2, handled_at = now(), handled_note = $3
		WHERE id = $1 AND is_handled = FALSE
		RETURNING id, subject_id, level, reason, description, is_handled, handled_by, handled_at, handled_note, created_at`

	a, err := repository.QueryOne(ctx, r.db, q, []any{id, cmd.HandledBy, cmd.HandledNote}, scanAlert)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if _, findErr := r.Find(ctx, id); findErr != nil {
				return nil, findErr
			}
			return nil, ErrAlreadyHandled
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("alert handled", "id", a.ID, "by", cmd.HandledBy)
	return &a, nil
}

// Evaluate runs the escalation rules against the subject's recent history.
func (r *repo) Evaluate(ctx context.Context, subjectID uuid.UUID) (*Outcome, error) {
	return r.eval.evaluate(ctx, subjectID)
}

// hasUnresolved reports whether an unhandled alert at or above the given
// level exists for the subject.
func (r *repo) hasUnresolved(ctx context.Context, subjectID uuid.UUID, level AlertLevel) (bool, error) {
	handled := false
	q, args := query.
		NewBuilder(projection).
		WhereEquals("SubjectID", subjectID).
		WhereEquals("IsHandled", &handled).
		WhereIn("Level", levelsAtLeast(level)).
		BuildCount()

	var count int
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("count unresolved alerts: %w", err)
	}
	return count > 0, nil
}

func (r *repo) insert(
	ctx context.Context,
	subjectID uuid.UUID,
	level AlertLevel,
	reason string,
	description string,
) (*Alert, error) {
	q := `
		INSERT INTO alerts(id, subject_id, level, reason, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, subject_id, level, reason, description, is_handled, handled_by, handled_at, handled_note, created_at`

	args := []any{uuid.New(), subjectID, level, reason, description}

	a, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Alert, error) {
		return repository.QueryOne(ctx, tx, q, args, scanAlert)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &a, nil
}
