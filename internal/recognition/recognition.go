// Package recognition implements the emotion recognition cascade for Seren.
// It turns raw text into an emotion label, a confidence score, and a full
// distribution over the label set, layering a trainable intent classifier,
// sentiment-driven score synthesis, and a keyword fallback that keeps
// classification available when the statistical backend is not.
package recognition

import (
	"encoding/json"
	"slices"
)

// Label identifies one emotional state from the closed label set.
type Label string

// The closed emotion label set. LabelOrder fixes enumeration order for
// deterministic winner selection and tie-breaking.
const (
	LabelHappy     Label = "happy"
	LabelSad       Label = "sad"
	LabelAngry     Label = "angry"
	LabelAnxious   Label = "anxious"
	LabelFearful   Label = "fearful"
	LabelSurprised Label = "surprised"
	LabelNeutral   Label = "neutral"
)

var labelOrder = []Label{
	LabelHappy,
	LabelSad,
	LabelAngry,
	LabelAnxious,
	LabelFearful,
	LabelSurprised,
	LabelNeutral,
}

var negativeLabels = []Label{
	LabelSad,
	LabelAngry,
	LabelAnxious,
	LabelFearful,
}

// Labels returns every label in enumeration order.
func Labels() []Label {
	return labelOrder
}

// NegativeLabels returns the labels treated as negative by alert evaluation.
func NegativeLabels() []Label {
	return negativeLabels
}

// Negative reports whether l is one of the negative emotion labels.
func (l Label) Negative() bool {
	return slices.Contains(negativeLabels, l)
}

// ParseLabel validates a string as a known emotion label.
// Returns ErrInvalidLabel if the value is not recognized.
func ParseLabel(s string) (Label, error) {
	v := Label(s)
	if !slices.Contains(labelOrder, v) {
		return "", ErrInvalidLabel
	}
	return v, nil
}

// UnmarshalJSON validates that the decoded string is a known label value.
func (l *Label) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, err := ParseLabel(raw)
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// Distribution maps every label to an integer score in [0,100].
// Values are not normalized to sum to 100.
type Distribution map[Label]int

// NewDistribution returns a distribution with every label at zero.
func NewDistribution() Distribution {
	d := make(Distribution, len(labelOrder))
	for _, l := range labelOrder {
		d[l] = 0
	}
	return d
}

// Raise sets d[l] to v if v is greater than the current entry, capping at 100.
func (d Distribution) Raise(l Label, v int) {
	if v > 100 {
		v = 100
	}
	if v > d[l] {
		d[l] = v
	}
}

// Result is the outcome of recognizing a single text sample.
// Distribution[Label] always equals Score.
type Result struct {
	Label        Label        `json:"label"`
	Score        int          `json:"score"`
	Distribution Distribution `json:"distribution"`
}
