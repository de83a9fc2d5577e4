package recognition

import "context"

// Candidate is a runner-up intent prediction with its own confidence.
type Candidate struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
}

// Output is the raw prediction produced by a classifier backend.
// Sentiment is a signed polarity in [-1,1], independent of the intent.
// Confidence is the backend's certainty about Intent, in [0,1].
// Alternatives are ordered by descending confidence and exclude Intent.
type Output struct {
	Intent       string      `json:"intent"`
	Sentiment    float64     `json:"sentiment"`
	Confidence   float64     `json:"confidence"`
	Alternatives []Candidate `json:"alternatives"`
}

// Classifier is a swappable text classification backend. Train must be
// called before the first Classify; the readiness gate serializes it so
// concurrent first callers share a single training run. Classify errors
// route the caller to the keyword fallback for that request.
type Classifier interface {
	Train(ctx context.Context) error
	Classify(ctx context.Context, text string) (Output, error)
}

// intentLabels maps backend intents onto the emotion label set.
// Unknown or empty intents map to neutral.
var intentLabels = map[string]Label{
	"greeting":    LabelNeutral,
	"affirmation": LabelNeutral,
	"joy":         LabelHappy,
	"sadness":     LabelSad,
	"anger":       LabelAngry,
	"anxiety":     LabelAnxious,
	"fear":        LabelFearful,
	"surprise":    LabelSurprised,
	"neutral":     LabelNeutral,
}

// IntentLabel resolves a backend intent to its emotion label.
func IntentLabel(intent string) Label {
	if l, ok := intentLabels[intent]; ok {
		return l
	}
	return LabelNeutral
}
