package recognition

import (
	"context"
	"math"
	"sort"
)

// BayesClassifier is the default in-process backend: a multinomial naive
// Bayes intent model over the seeded bilingual corpus, paired with a
// signed sentiment lexicon. Train builds the token counts; Classify is
// read-only afterwards, so the model is safe for concurrent use once the
// readiness gate reports ready.
type BayesClassifier struct {
	intents     []string
	tokenCounts map[string]map[string]float64
	totalTokens map[string]float64
	docCounts   map[string]int
	totalDocs   int
	vocab       map[string]struct{}
}

// NewBayesClassifier creates an untrained naive Bayes backend.
func NewBayesClassifier() *BayesClassifier {
	return &BayesClassifier{}
}

// Train fits the model on the embedded corpus. Deterministic: intents
// are processed in sorted order and counts do not depend on map
// iteration.
func (c *BayesClassifier) Train(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	intents := make([]string, 0, len(trainingCorpus))
	for intent := range trainingCorpus {
		intents = append(intents, intent)
	}
	sort.Strings(intents)

	c.intents = intents
	c.tokenCounts = make(map[string]map[string]float64, len(intents))
	c.totalTokens = make(map[string]float64, len(intents))
	c.docCounts = make(map[string]int, len(intents))
	c.vocab = make(map[string]struct{})
	c.totalDocs = 0

	for _, intent := range intents {
		counts := make(map[string]float64)
		for _, sample := range trainingCorpus[intent] {
			for _, tok := range tokenize(sample) {
				counts[tok]++
				c.totalTokens[intent]++
				c.vocab[tok] = struct{}{}
			}
			c.docCounts[intent]++
			c.totalDocs++
		}
		c.tokenCounts[intent] = counts
	}

	return nil
}

// Classify predicts the most likely intent with softmax-normalized
// posteriors, plus the signed sentiment of the text.
func (c *BayesClassifier) Classify(ctx context.Context, text string) (Output, error) {
	if err := ctx.Err(); err != nil {
		return Output{}, err
	}
	if c.totalDocs == 0 {
		return Output{}, ErrNotReady
	}

	tokens := tokenize(text)
	vocabSize := float64(len(c.vocab))

	logProbs := make([]float64, len(c.intents))
	for i, intent := range c.intents {
		lp := math.Log(float64(c.docCounts[intent]) / float64(c.totalDocs))
		for _, tok := range tokens {
			// Laplace smoothing keeps unseen tokens from zeroing the class.
			p := (c.tokenCounts[intent][tok] + 1) / (c.totalTokens[intent] + vocabSize)
			lp += math.Log(p)
		}
		logProbs[i] = lp
	}

	posteriors := softmax(logProbs)

	type scored struct {
		intent string
		p      float64
	}
	ranked := make([]scored, len(c.intents))
	for i, intent := range c.intents {
		ranked[i] = scored{intent, posteriors[i]}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].p > ranked[j].p
	})

	out := Output{
		Intent:     ranked[0].intent,
		Confidence: ranked[0].p,
		Sentiment:  c.sentiment(tokens),
	}
	for _, r := range ranked[1:] {
		out.Alternatives = append(out.Alternatives, Candidate{
			Intent:     r.intent,
			Confidence: r.p,
		})
	}

	return out, nil
}

func (c *BayesClassifier) sentiment(tokens []string) float64 {
	var sum float64
	for _, tok := range tokens {
		sum += sentimentWeights[tok]
	}
	s := sum / 2
	return math.Max(-1, math.Min(1, s))
}

func softmax(logProbs []float64) []float64 {
	maxLP := math.Inf(-1)
	for _, lp := range logProbs {
		if lp > maxLP {
			maxLP = lp
		}
	}

	out := make([]float64, len(logProbs))
	var total float64
	for i, lp := range logProbs {
		out[i] = math.Exp(lp - maxLP)
		total += out[i]
	}
	for i := range out {
		out[i] /= total
	}
	return out
}
