package emotions

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/seren-app/seren/internal/recognition"
	"github.com/seren-app/seren/pkg/pagination"
	"github.com/seren-app/seren/pkg/query"
	"github.com/seren-app/seren/pkg/repository"
	"github.com/seren-app/seren/pkg/storage"
)

type repo struct {
	db         *sql.DB
	recognizer *recognition.Recognizer
	storage    storage.System
	evaluator  AlertEvaluator
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a classification record repository implementing the System interface.
func New(
	db *sql.DB,
	recognizer *recognition.Recognizer,
	store storage.System,
	evaluator AlertEvaluator,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		recognizer: recognizer,
		storage:    store,
		evaluator:  evaluator,
		logger:     logger.With("system", "emotions"),
		pagination: pagination,
	}
}

func (r *repo) Handler(maxUploadSize int64) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxUploadSize)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Record], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "SourceText")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count records: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	records, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanRecord)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}

	result := pagination.NewPageResult(records, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Record, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	rec, err := repository.QueryOne(ctx, r.db, q, args, scanRecord)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &rec, nil
}

func (r *repo) Classify(ctx context.Context, cmd ClassifyCommand) (*Record, error) {
	if cmd.SubjectID == uuid.Nil {
		return nil, ErrInvalidInput
	}

	result, err := r.recognizer.Recognize(ctx, cmd.Text)
	if err != nil {
		return nil, err
	}

	id := uuid.New()

	var mediaKey, mediaType *string
	if cmd.Media != nil {
		key := buildMediaKey(id, sanitizeFilename(cmd.Media.Filename))
		if err := r.storage.Upload(
			ctx, key,
			bytes.NewReader(cmd.Media.Data),
			cmd.Media.ContentType,
		); err != nil {
			return nil, fmt.Errorf("upload media blob: %w", err)
		}
		mediaKey = &key
		mediaType = &cmd.Media.ContentType
	}

	dist, err := marshalDistribution(result.Distribution)
	if err != nil {
		return nil, err
	}

	q := `
		INSERT INTO emotion_records(id, subject_id, source_text, media_key, media_type, label, score, distribution)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, subject_id, source_text, media_key, media_type, label, score, distribution, created_at`

	insertArgs := []any{
		id,
		cmd.SubjectID,
		cmd.Text,
		mediaKey,
		mediaType,
		result.Label,
		result.Score,
		dist,
	}

	rec, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Record, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanRecord)
	})

	if err != nil {
		if mediaKey != nil {
			if delErr := r.storage.Delete(ctx, *mediaKey); delErr != nil {
				r.logger.Warn("compensating blob delete failed", "key", *mediaKey, "error", delErr)
			}
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("record created",
		"id", rec.ID,
		"subject", rec.SubjectID,
		"label", rec.Label,
		"score", rec.Score,
	)

	// The record is durable at this point; a failed evaluation must not
	// undo it. The next classification event retries the rules anyway.
	if err := r.evaluator.Evaluate(ctx, cmd.SubjectID); err != nil {
		r.logger.Warn("alert evaluation failed", "subject", cmd.SubjectID, "error", err)
	}

	return &rec, nil
}

func (r *repo) Window(
	ctx context.Context,
	subjectID uuid.UUID,
	lookback time.Duration,
) ([]Record, error) {
	cutoff := time.Now().UTC().Add(-lookback)

	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("SubjectID", subjectID).
		WhereCompare("CreatedAt", ">=", cutoff).
		Build()

	records, err := repository.QueryMany(ctx, r.db, q, args, scanRecord)
	if err != nil {
		return nil, fmt.Errorf("query record window: %w", err)
	}
	return records, nil
}

func (r *repo) Statistics(
	ctx context.Context,
	subjectID uuid.UUID,
	req StatsRequest,
) ([]LabelStat, error) {
	q := `
		SELECT label, COUNT(*), AVG(score)
		FROM emotion_records
		WHERE subject_id = $1`
	args := []any{subjectID}

	if req.From != nil {
		args = append(args, req.From.UTC())
		q += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if req.To != nil {
		args = append(args, req.To.UTC())
		q += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}

	q += " GROUP BY label ORDER BY COUNT(*) DESC, label ASC"

	stats, err := repository.QueryMany(ctx, r.db, q, args, func(s repository.Scanner) (LabelStat, error) {
		var st LabelStat
		err := s.Scan(&st.Label, &st.Count, &st.AverageScore)
		return st, err
	})
	if err != nil {
		return nil, fmt.Errorf("query record statistics: %w", err)
	}
	return stats, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	rec, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM emotion_records WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if rec.MediaKey != nil {
		if delErr := r.storage.Delete(ctx, *rec.MediaKey); delErr != nil {
			r.logger.Warn(
				"blob delete failed after DB delete",
				"key", *rec.MediaKey,
				"error", delErr,
			)
		}
	}

	r.logger.Info("record deleted", "id", id)
	return nil
}

func buildMediaKey(id uuid.UUID, filename string) string {
	return fmt.Sprintf("media/%s/%s", id, filename)
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	if name == "." || name == "" {
		name = "media"
	}
	return url.PathEscape(name)
}
