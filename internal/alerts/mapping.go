package alerts

import (
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/seren-app/seren/pkg/query"
	"github.com/seren-app/seren/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "alerts", "a").
	Project("id", "ID").
	Project("subject_id", "SubjectID").
	Project("level", "Level").
	Project("reason", "Reason").
	Project("description", "Description").
	Project("is_handled", "IsHandled").
	Project("handled_by", "HandledBy").
	Project("handled_at", "HandledAt").
	Project("handled_note", "HandledNote").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for alert queries.
// Nil fields are ignored; all use exact matching.
type Filters struct {
	SubjectID *uuid.UUID `json:"subject_id,omitempty"`
	Level     *string    `json:"level,omitempty"`
	IsHandled *bool      `json:"is_handled,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("SubjectID", f.SubjectID).
		WhereEquals("Level", f.Level).
		WhereEquals("IsHandled", f.IsHandled)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("subject_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			f.SubjectID = &id
		}
	}

	if l := values.Get("level"); l != "" {
		f.Level = &l
	}

	if h := values.Get("is_handled"); h != "" {
		if v, err := strconv.ParseBool(h); err == nil {
			f.IsHandled = &v
		}
	}

	return f
}

func scanAlert(s repository.Scanner) (Alert, error) {
	var a Alert
	err := s.Scan(
		&a.ID,
		&a.SubjectID,
		&a.Level,
		&a.Reason,
		&a.Description,
		&a.IsHandled,
		&a.HandledBy,
		&a.HandledAt,
		&a.HandledNote,
		&a.CreatedAt,
	)
	if err != nil {
		return a, err
	}

	a.CreatedAt = a.CreatedAt.UTC()
	if a.HandledAt != nil {
		t := a.HandledAt.UTC()
		a.HandledAt = &t
	}
	return a, nil
}
