package recognition

import (
	"context"
	"log/slog"
	"math"
	"sync/atomic"
	"time"
)

const (
	greetingScore = 90
	// winnerSeed is the running maximum bound to neutral before scanning:
	// a non-neutral label must exceed it to displace neutral.
	winnerSeed = 70
)

// negativeFloors are the keyword-directed overrides applied when sentiment
// is strongly negative but the classifier is unsure about the label.
// Order is the fixed override priority.
var negativeFloors = []struct {
	label Label
	floor int
}{
	{LabelAngry, 85},
	{LabelSad, 80},
	{LabelAnxious, 75},
	{LabelFearful, 75},
}

// Recognizer runs the full recognition cascade: greeting short-circuit,
// statistical classification behind the readiness gate, score synthesis,
// and the keyword fallback when the backend is unavailable.
type Recognizer struct {
	classifier   *Gate
	lexicon      atomic.Pointer[Lexicon]
	readyTimeout time.Duration
	logger       *slog.Logger
}

// NewRecognizer creates a Recognizer around the given backend.
// readyTimeout bounds how long a single request waits for classifier
// readiness before falling back to keywords.
func NewRecognizer(backend Classifier, lexicon Lexicon, readyTimeout time.Duration, logger *slog.Logger) *Recognizer {
	r := &Recognizer{
		classifier:   NewGate(backend, logger),
		readyTimeout: readyTimeout,
		logger:       logger.With("system", "recognition"),
	}
	r.lexicon.Store(&lexicon)
	return r
}

// Warm trains the classifier backend ahead of the first request.
func (r *Recognizer) Warm(ctx context.Context) error {
	return r.classifier.Ready(ctx)
}

// Lexicon returns the active keyword lexicon.
func (r *Recognizer) Lexicon() Lexicon {
	return *r.lexicon.Load()
}

// SetLexicon swaps the active keyword lexicon. Safe for concurrent use;
// in-flight recognitions keep the lexicon they started with.
func (r *Recognizer) SetLexicon(lx Lexicon) {
	r.lexicon.Store(&lx)
}

// Recognize classifies a text sample. It always produces a valid Result:
// classifier failure or readiness timeout routes to the keyword fallback.
func (r *Recognizer) Recognize(ctx context.Context, text string) (Result, error) {
	if text == "" {
		return Result{}, ErrEmptyText
	}

	lx := r.Lexicon()

	if lx.Greeting(text) {
		dist := NewDistribution()
		dist[LabelNeutral] = greetingScore
		return Result{Label: LabelNeutral, Score: greetingScore, Distribution: dist}, nil
	}

	cctx, cancel := context.WithTimeout(ctx, r.readyTimeout)
	defer cancel()

	out, err := r.classifier.Classify(cctx, text)
	if err != nil {
		r.logger.Warn("classifier unavailable, using keyword fallback", "error", err)
		return fallback(text, lx), nil
	}

	return synthesize(text, out, lx), nil
}

// synthesize combines classifier output, sentiment magnitude, short-text
// heuristics, and keyword overrides into the final label, score, and
// distribution. Pure: fixed classifier output always yields the same result.
func synthesize(text string, out Output, lx Lexicon) Result {
	label := IntentLabel(out.Intent)
	score := labelScore(label, out.Sentiment, out.Confidence)

	dist := NewDistribution()
	dist[label] = score

	if shortText(text) {
		dist.Raise(LabelNeutral, round(60+out.Confidence*10))
	}

	if out.Confidence < 0.6 {
		for _, alt := range out.Alternatives {
			if alt.Confidence <= 0.3 {
				continue
			}
			altSentiment := scaledSentiment(out.Sentiment, alt.Confidence, out.Confidence)
			altLabel := IntentLabel(alt.Intent)
			dist.Raise(altLabel, labelScore(altLabel, altSentiment, alt.Confidence))
		}
	}

	if math.Abs(out.Sentiment) > 0.7 && out.Confidence < 0.5 {
		if out.Sentiment > 0 {
			dist.Raise(LabelHappy, 80)
		} else {
			hits := lx.Match(text)
			for _, nf := range negativeFloors {
				if hits[nf.label] >= 1 {
					dist.Raise(nf.label, nf.floor)
					break
				}
			}
		}
	}

	winner, best := LabelNeutral, winnerSeed
	for _, l := range labelOrder {
		if dist[l] > best {
			winner, best = l, dist[l]
		}
	}
	dist[winner] = best

	return Result{Label: winner, Score: best, Distribution: dist}
}

// fallback is the keyword-only path used when the classifier call fails.
// Short text favors neutral when any neutral keyword is present; otherwise
// the label with the most hits wins, ties resolved in enumeration order.
func fallback(text string, lx Lexicon) Result {
	hits := lx.Match(text)

	winner := LabelNeutral
	if !shortText(text) || hits[LabelNeutral] == 0 {
		most := 0
		winner = LabelNeutral
		for _, l := range labelOrder {
			if hits[l] > most {
				winner, most = l, hits[l]
			}
		}
	}

	score := 70
	if hits[winner] > 0 {
		score = min(100, 60+10*hits[winner])
	}

	dist := NewDistribution()
	for _, l := range labelOrder {
		if hits[l] > 0 {
			dist[l] = min(100, 60+10*hits[l])
		}
	}
	dist[winner] = score

	return Result{Label: winner, Score: score, Distribution: dist}
}

func labelScore(label Label, sentiment, confidence float64) int {
	var v float64
	switch {
	case label == LabelHappy || label.Negative():
		v = clamp(50+math.Abs(sentiment)*40+confidence*10, 60, 95)
	default:
		v = clamp(60+confidence*20, 50, 85)
	}
	return round(v)
}

// scaledSentiment scales the primary sentiment by the alternative's share
// of the primary confidence, clamped back into [-1,1].
func scaledSentiment(sentiment, altConfidence, confidence float64) float64 {
	if confidence <= 0 {
		return sentiment
	}
	return clamp(sentiment*(altConfidence/confidence), -1, 1)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round(v float64) int {
	return int(math.Round(v))
}
