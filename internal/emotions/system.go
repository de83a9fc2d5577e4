package emotions

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/seren-app/seren/pkg/pagination"
)

// AlertEvaluator is notified after a record is persisted so alert rules can
// run against the subject's updated history. Implementations must not modify
// the record.
type AlertEvaluator interface {
	Evaluate(ctx context.Context, subjectID uuid.UUID) error
}

// System defines the public contract for classification record operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Record], error)

	Find(ctx context.Context, id uuid.UUID) (*Record, error)
	Classify(ctx context.Context, cmd ClassifyCommand) (*Record, error)
	Window(ctx context.Context, subjectID uuid.UUID, lookback time.Duration) ([]Record, error)
	Statistics(ctx context.Context, subjectID uuid.UUID, req StatsRequest) ([]LabelStat, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
