package alerts

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/seren-app/seren/internal/emotions"
	"github.com/seren-app/seren/pkg/pagination"
)

// RecordSource supplies the newest-first classification history the rule
// engine evaluates.
type RecordSource interface {
	Window(ctx context.Context, subjectID uuid.UUID, lookback time.Duration) ([]emotions.Record, error)
}

// System defines the public contract for alert domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Alert], error)

	Find(ctx context.Context, id uuid.UUID) (*Alert, error)
	Create(ctx context.Context, cmd CreateCommand) (*Alert, error)
	Handle(ctx context.Context, id uuid.UUID, cmd HandleCommand) (*Alert, error)
	Evaluate(ctx context.Context, subjectID uuid.UUID) (*Outcome, error)
}
