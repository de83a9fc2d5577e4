package lexicons

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/seren-app/seren/internal/recognition"
	"github.com/seren-app/seren/pkg/pagination"
	"github.com/seren-app/seren/pkg/query"
	"github.com/seren-app/seren/pkg/repository"
)

type repo struct {
	db         *sql.DB
	target     Target
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a lexicon repository implementing the System interface.
// Mutations recompile the lexicon and push it to target.
func New(
	db *sql.DB,
	target Target,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		target:     target,
		logger:     logger.With("system", "lexicons"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Entry], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Term")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count lexicon entries: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	entries, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanEntry)
	if err != nil {
		return nil, fmt.Errorf("query lexicon entries: %w", err)
	}

	result := pagination.NewPageResult(entries, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Entry, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	e, err := repository.QueryOne(ctx, r.db, q, args, scanEntry)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &e, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Entry, error) {
	if err := validate(cmd); err != nil {
		return nil, err
	}

	q := `
		INSERT INTO lexicon_entries(id, kind, label, term)
		VALUES ($1, $2, $3, $4)
		RETURNING id, kind, label, term, created_at`

	args := []any{uuid.New(), cmd.Kind, cmd.Label, cmd.Term}

	e, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Entry, error) {
		return repository.QueryOne(ctx, tx, q, args, scanEntry)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("lexicon entry created", "id", e.ID, "kind", e.Kind, "term", e.Term)
	r.refresh(ctx)
	return &e, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM lexicon_entries WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("lexicon entry deleted", "id", id)
	r.refresh(ctx)
	return nil
}

// Compile merges the stored entries over the built-in lexicon per label:
// a label with stored keyword entries uses those entries, every other
// label keeps its embedded defaults, and stored greeting entries replace
// the default greeting set when any exist. A label never loses its
// matching just because no entries were stored for it.
func (r *repo) Compile(ctx context.Context) (recognition.Lexicon, error) {
	q, args := query.NewBuilder(projection, defaultSort).Build()

	entries, err := repository.QueryMany(ctx, r.db, q, args, scanEntry)
	if err != nil {
		return recognition.Lexicon{}, fmt.Errorf("query lexicon entries: %w", err)
	}

	return compile(entries), nil
}

func compile(entries []Entry) recognition.Lexicon {
	overrides := make(map[recognition.Label][]string)
	var greetings []string

	for _, e := range entries {
		switch e.Kind {
		case KindGreeting:
			greetings = append(greetings, e.Term)
		case KindKeyword:
			if e.Label != nil {
				overrides[*e.Label] = append(overrides[*e.Label], e.Term)
			}
		}
	}

	lx := recognition.DefaultLexicon()
	for label, terms := range overrides {
		lx.Keywords[label] = terms
	}
	if len(greetings) > 0 {
		lx.Greetings = greetings
	}
	return lx
}

func validate(cmd CreateCommand) error {
	if cmd.Term == "" {
		return ErrInvalidEntry
	}

	switch cmd.Kind {
	case KindKeyword:
		if cmd.Label == nil {
			return fmt.Errorf("%w: keyword entries require a label", ErrInvalidEntry)
		}
		if _, err := recognition.ParseLabel(string(*cmd.Label)); err != nil {
			return err
		}
	case KindGreeting:
		if cmd.Label != nil {
			return fmt.Errorf("%w: greeting entries carry no label", ErrInvalidEntry)
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidKind, cmd.Kind)
	}

	return nil
}

func (r *repo) refresh(ctx context.Context) {
	lx, err := r.Compile(ctx)
	if err != nil {
		r.logger.Warn("lexicon recompile failed, recognizer keeps previous lexicon", "error", err)
		return
	}
	r.target.SetLexicon(lx)
}
