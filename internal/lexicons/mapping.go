package lexicons

import (
	"net/url"

	"github.com/seren-app/seren/pkg/query"
	"github.com/seren-app/seren/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "lexicon_entries", "l").
	Project("id", "ID").
	Project("kind", "Kind").
	Project("label", "Label").
	Project("term", "Term").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field: "Term",
}

// Filters contains optional filtering criteria for lexicon entry queries.
// Nil fields are ignored. Kind and Label use exact matching; Term uses
// case-insensitive contains matching.
type Filters struct {
	Kind  *string `json:"kind,omitempty"`
	Label *string `json:"label,omitempty"`
	Term  *string `json:"term,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Kind", f.Kind).
		WhereEquals("Label", f.Label).
		WhereContains("Term", f.Term)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if k := values.Get("kind"); k != "" {
		f.Kind = &k
	}

	if l := values.Get("label"); l != "" {
		f.Label = &l
	}

	if t := values.Get("term"); t != "" {
		f.Term = &t
	}

	return f
}

func scanEntry(s repository.Scanner) (Entry, error) {
	var e Entry
	err := s.Scan(
		&e.ID,
		&e.Kind,
		&e.Label,
		&e.Term,
		&e.CreatedAt,
	)
	if err != nil {
		return e, err
	}

	e.CreatedAt = e.CreatedAt.UTC()
	return e, nil
}
