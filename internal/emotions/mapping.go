package emotions

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/seren-app/seren/internal/recognition"
	"github.com/seren-app/seren/pkg/query"
	"github.com/seren-app/seren/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "emotion_records", "e").
	Project("id", "ID").
	Project("subject_id", "SubjectID").
	Project("source_text", "SourceText").
	Project("media_key", "MediaKey").
	Project("media_type", "MediaType").
	Project("label", "Label").
	Project("score", "Score").
	Project("distribution", "Distribution").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for record queries.
// Nil fields are ignored. SubjectID and Label use exact matching;
// MinScore keeps records at or above the given score.
type Filters struct {
	SubjectID *uuid.UUID `json:"subject_id,omitempty"`
	Label     *string    `json:"label,omitempty"`
	MinScore  *int       `json:"min_score,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	b = b.
		WhereEquals("SubjectID", f.SubjectID).
		WhereEquals("Label", f.Label)

	if f.MinScore != nil {
		b = b.WhereCompare("Score", ">=", *f.MinScore)
	}

	return b
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("subject_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			f.SubjectID = &id
		}
	}

	if l := values.Get("label"); l != "" {
		f.Label = &l
	}

	if ms := values.Get("min_score"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil {
			f.MinScore = &v
		}
	}

	return f
}

func scanRecord(s repository.Scanner) (Record, error) {
	var (
		rec  Record
		dist []byte
	)

	err := s.Scan(
		&rec.ID,
		&rec.SubjectID,
		&rec.SourceText,
		&rec.MediaKey,
		&rec.MediaType,
		&rec.Label,
		&rec.Score,
		&dist,
		&rec.CreatedAt,
	)
	if err != nil {
		return rec, err
	}

	if len(dist) > 0 {
		if err := json.Unmarshal(dist, &rec.Distribution); err != nil {
			return rec, fmt.Errorf("decode distribution: %w", err)
		}
	}

	rec.CreatedAt = rec.CreatedAt.UTC()
	return rec, nil
}

func marshalDistribution(d recognition.Distribution) ([]byte, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encode distribution: %w", err)
	}
	return data, nil
}

func parseTimeParam(values url.Values, key string) *time.Time {
	raw := values.Get(key)
	if raw == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		t = t.UTC()
		return &t
	}
	return nil
}
