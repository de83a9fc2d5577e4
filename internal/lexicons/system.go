package lexicons

import (
	"context"

	"github.com/google/uuid"

	"github.com/seren-app/seren/internal/recognition"
	"github.com/seren-app/seren/pkg/pagination"
)

// Target receives the compiled lexicon whenever the stored entries change.
type Target interface {
	SetLexicon(lx recognition.Lexicon)
}

// System defines the public contract for lexicon domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Entry], error)

	Find(ctx context.Context, id uuid.UUID) (*Entry, error)
	Create(ctx context.Context, cmd CreateCommand) (*Entry, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Compile(ctx context.Context) (recognition.Lexicon, error)
}
