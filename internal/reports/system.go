package reports

import (
	"context"

	"github.com/google/uuid"
)

// System defines the public contract for report generation.
type System interface {
	Handler() *Handler

	Subject(ctx context.Context, subjectID uuid.UUID) (*SubjectSummary, error)
	Overview(ctx context.Context) (*Overview, error)
}
