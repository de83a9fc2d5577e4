package recognition_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/seren-app/seren/internal/recognition"
)

type stubClassifier struct {
	out      recognition.Output
	err      error
	trainErr error
	trains   atomic.Int32
}

func (s *stubClassifier) Train(ctx context.Context) error {
	s.trains.Add(1)
	return s.trainErr
}

func (s *stubClassifier) Classify(ctx context.Context, text string) (recognition.Output, error) {
	if s.err != nil {
		return recognition.Output{}, s.err
	}
	return s.out, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRecognizer(backend recognition.Classifier) *recognition.Recognizer {
	return recognition.NewRecognizer(backend, recognition.DefaultLexicon(), time.Second, discardLogger())
}

func TestRecognizeEmptyText(t *testing.T) {
	r := newRecognizer(&stubClassifier{})

	_, err := r.Recognize(context.Background(), "")
	if !errors.Is(err, recognition.ErrEmptyText) {
		t.Errorf("error: got %v, want ErrEmptyText", err)
	}
}

func TestRecognizeGreeting(t *testing.T) {
	stub := &stubClassifier{}
	r := newRecognizer(stub)

	res, err := r.Recognize(context.Background(), "你好")
	if err != nil {
		t.Fatalf("recognize failed: %v", err)
	}

	if res.Label != recognition.LabelNeutral {
		t.Errorf("label: got %s, want neutral", res.Label)
	}
	if res.Score != 90 {
		t.Errorf("score: got %d, want 90", res.Score)
	}
	if res.Distribution[recognition.LabelNeutral] != 90 {
		t.Errorf("distribution[neutral]: got %d, want 90", res.Distribution[recognition.LabelNeutral])
	}
	if n := stub.trains.Load(); n != 0 {
		t.Errorf("greeting should not touch the classifier, trained %d times", n)
	}
}

func TestRecognizeHighConfidenceNegative(t *testing.T) {
	stub := &stubClassifier{out: recognition.Output{
		Intent:     "sadness",
		Sentiment:  -0.8,
		Confidence: 0.9,
	}}
	r := newRecognizer(stub)

	res, err := r.Recognize(context.Background(), "最近总是睡不着觉")
	if err != nil {
		t.Fatalf("recognize failed: %v", err)
	}

	if res.Label != recognition.LabelSad {
		t.Errorf("label: got %s, want sad", res.Label)
	}
	if res.Score != 91 {
		t.Errorf("score: got %d, want 91", res.Score)
	}
	if res.Distribution[res.Label] != res.Score {
		t.Errorf("distribution[%s] = %d, want %d", res.Label, res.Distribution[res.Label], res.Score)
	}
}

func TestRecognizeShortTextFavorsNeutral(t *testing.T) {
	stub := &stubClassifier{out: recognition.Output{
		Intent:     "joy",
		Sentiment:  0.1,
		Confidence: 0.2,
	}}
	r := newRecognizer(stub)

	res, err := r.Recognize(context.Background(), "嗯嗯嗯")
	if err != nil {
		t.Fatalf("recognize failed: %v", err)
	}

	if res.Label != recognition.LabelNeutral {
		t.Errorf("label: got %s, want neutral", res.Label)
	}
	if res.Score != 70 {
		t.Errorf("score: got %d, want 70", res.Score)
	}
}

func TestRecognizeAlternativeInjection(t *testing.T) {
	stub := &stubClassifier{out: recognition.Output{
		Intent:     "anger",
		Sentiment:  -0.9,
		Confidence: 0.5,
		Alternatives: []recognition.Candidate{
			{Intent: "sadness", Confidence: 0.4},
			{Intent: "surprise", Confidence: 0.2},
		},
	}}
	r := newRecognizer(stub)

	res, err := r.Recognize(context.Background(), "完全无法接受这种结果")
	if err != nil {
		t.Fatalf("recognize failed: %v", err)
	}

	if res.Label != recognition.LabelAngry {
		t.Errorf("label: got %s, want angry", res.Label)
	}
	if res.Score != 91 {
		t.Errorf("score: got %d, want 91", res.Score)
	}
	if got := res.Distribution[recognition.LabelSad]; got != 83 {
		t.Errorf("distribution[sad]: got %d, want 83", got)
	}
	if got := res.Distribution[recognition.LabelSurprised]; got != 0 {
		t.Errorf("distribution[surprised]: got %d, want 0 (below confidence cutoff)", got)
	}
}

func TestRecognizeNegativeKeywordFloor(t *testing.T) {
	stub := &stubClassifier{out: recognition.Output{
		Intent:     "neutral",
		Sentiment:  -0.8,
		Confidence: 0.4,
	}}
	r := newRecognizer(stub)

	res, err := r.Recognize(context.Background(), "他把我的东西弄坏了气死我了")
	if err != nil {
		t.Fatalf("recognize failed: %v", err)
	}

	if res.Label != recognition.LabelAngry {
		t.Errorf("label: got %s, want angry", res.Label)
	}
	if res.Score != 85 {
		t.Errorf("score: got %d, want 85", res.Score)
	}
}

func TestRecognizePositiveOverride(t *testing.T) {
	stub := &stubClassifier{out: recognition.Output{
		Intent:     "neutral",
		Sentiment:  0.8,
		Confidence: 0.4,
	}}
	r := newRecognizer(stub)

	res, err := r.Recognize(context.Background(), "事情发展得出乎我的预料地顺利")
	if err != nil {
		t.Fatalf("recognize failed: %v", err)
	}

	if res.Label != recognition.LabelHappy {
		t.Errorf("label: got %s, want happy", res.Label)
	}
	if res.Score != 80 {
		t.Errorf("score: got %d, want 80", res.Score)
	}
}

func TestRecognizeFallbackOnClassifyError(t *testing.T) {
	stub := &stubClassifier{err: errors.New("backend down")}
	r := newRecognizer(stub)

	res, err := r.Recognize(context.Background(), "畜生")
	if err != nil {
		t.Fatalf("recognize failed: %v", err)
	}

	if res.Label != recognition.LabelAngry {
		t.Errorf("label: got %s, want angry", res.Label)
	}
	if res.Score != 70 {
		t.Errorf("score: got %d, want 70", res.Score)
	}
}

func TestRecognizeFallbackOnTrainFailure(t *testing.T) {
	stub := &stubClassifier{trainErr: errors.New("corpus unavailable")}
	r := newRecognizer(stub)

	res, err := r.Recognize(context.Background(), "难过")
	if err != nil {
		t.Fatalf("recognize failed: %v", err)
	}

	if res.Label != recognition.LabelSad {
		t.Errorf("label: got %s, want sad", res.Label)
	}
	if res.Score != 70 {
		t.Errorf("score: got %d, want 70", res.Score)
	}
}

func TestRecognizeFallbackNoKeywords(t *testing.T) {
	stub := &stubClassifier{err: errors.New("backend down")}
	r := newRecognizer(stub)

	res, err := r.Recognize(context.Background(), "zzz qqq vvv")
	if err != nil {
		t.Fatalf("recognize failed: %v", err)
	}

	if res.Label != recognition.LabelNeutral {
		t.Errorf("label: got %s, want neutral", res.Label)
	}
	if res.Score != 70 {
		t.Errorf("score: got %d, want 70", res.Score)
	}
}

func TestRecognizeFallbackTieBreak(t *testing.T) {
	stub := &stubClassifier{err: errors.New("backend down")}
	r := newRecognizer(stub)

	// One sad keyword and one angry keyword: enumeration order wins.
	res, err := r.Recognize(context.Background(), "sad angry")
	if err != nil {
		t.Fatalf("recognize failed: %v", err)
	}

	if res.Label != recognition.LabelSad {
		t.Errorf("label: got %s, want sad", res.Label)
	}
}

func TestSetLexiconSwapsFallback(t *testing.T) {
	stub := &stubClassifier{err: errors.New("backend down")}
	r := newRecognizer(stub)

	lx := recognition.Lexicon{
		Keywords: map[recognition.Label][]string{
			recognition.LabelFearful: {"zzz"},
		},
	}
	r.SetLexicon(lx)

	res, err := r.Recognize(context.Background(), "zzz qqq vvv")
	if err != nil {
		t.Fatalf("recognize failed: %v", err)
	}

	if res.Label != recognition.LabelFearful {
		t.Errorf("label: got %s, want fearful", res.Label)
	}
}

func TestIntentLabel(t *testing.T) {
	tests := []struct {
		intent string
		want   recognition.Label
	}{
		{"joy", recognition.LabelHappy},
		{"sadness", recognition.LabelSad},
		{"anger", recognition.LabelAngry},
		{"anxiety", recognition.LabelAnxious},
		{"fear", recognition.LabelFearful},
		{"surprise", recognition.LabelSurprised},
		{"greeting", recognition.LabelNeutral},
		{"affirmation", recognition.LabelNeutral},
		{"neutral", recognition.LabelNeutral},
		{"unknown", recognition.LabelNeutral},
		{"", recognition.LabelNeutral},
	}

	for _, tt := range tests {
		if got := recognition.IntentLabel(tt.intent); got != tt.want {
			t.Errorf("IntentLabel(%q) = %s, want %s", tt.intent, got, tt.want)
		}
	}
}

func TestParseLabel(t *testing.T) {
	if got, err := recognition.ParseLabel("sad"); err != nil || got != recognition.LabelSad {
		t.Errorf("ParseLabel(sad) = %s, %v", got, err)
	}

	if _, err := recognition.ParseLabel("joyful"); !errors.Is(err, recognition.ErrInvalidLabel) {
		t.Errorf("ParseLabel(joyful) error: got %v, want ErrInvalidLabel", err)
	}
}

func TestLabelNegative(t *testing.T) {
	negatives := map[recognition.Label]bool{
		recognition.LabelSad:       true,
		recognition.LabelAngry:     true,
		recognition.LabelAnxious:   true,
		recognition.LabelFearful:   true,
		recognition.LabelHappy:     false,
		recognition.LabelSurprised: false,
		recognition.LabelNeutral:   false,
	}

	for label, want := range negatives {
		if got := label.Negative(); got != want {
			t.Errorf("%s.Negative() = %v, want %v", label, got, want)
		}
	}
}

func TestDistributionRaise(t *testing.T) {
	d := recognition.NewDistribution()

	d.Raise(recognition.LabelSad, 80)
	if d[recognition.LabelSad] != 80 {
		t.Errorf("raise: got %d, want 80", d[recognition.LabelSad])
	}

	d.Raise(recognition.LabelSad, 50)
	if d[recognition.LabelSad] != 80 {
		t.Errorf("raise must not lower: got %d, want 80", d[recognition.LabelSad])
	}

	d.Raise(recognition.LabelSad, 150)
	if d[recognition.LabelSad] != 100 {
		t.Errorf("raise must cap at 100: got %d", d[recognition.LabelSad])
	}
}

func TestLexiconMatch(t *testing.T) {
	lx := recognition.DefaultLexicon()

	hits := lx.Match("难过 angry")
	if hits[recognition.LabelSad] != 1 {
		t.Errorf("sad hits: got %d, want 1", hits[recognition.LabelSad])
	}
	if hits[recognition.LabelAngry] != 1 {
		t.Errorf("angry hits: got %d, want 1", hits[recognition.LabelAngry])
	}
	if hits[recognition.LabelHappy] != 0 {
		t.Errorf("happy hits: got %d, want 0", hits[recognition.LabelHappy])
	}
}

func TestLexiconGreeting(t *testing.T) {
	lx := recognition.DefaultLexicon()

	tests := []struct {
		text string
		want bool
	}{
		{"你好", true},
		{"hello", true},
		{"嗯", true},
		{"hello there", false},
		{"你好吗", false},
		{"今天真开心", false},
	}

	for _, tt := range tests {
		if got := lx.Greeting(tt.text); got != tt.want {
			t.Errorf("Greeting(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestGateTrainsOnce(t *testing.T) {
	stub := &stubClassifier{}
	g := recognition.NewGate(stub, discardLogger())

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := g.Ready(context.Background()); err != nil {
				t.Errorf("ready failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if err := g.Ready(context.Background()); err != nil {
		t.Fatalf("ready after success: %v", err)
	}
	if n := stub.trains.Load(); n != 1 {
		t.Errorf("trained %d times, want 1", n)
	}
}

func TestGateRetriesAfterTrainFailure(t *testing.T) {
	stub := &stubClassifier{trainErr: errors.New("boom")}
	g := recognition.NewGate(stub, discardLogger())

	if err := g.Ready(context.Background()); !errors.Is(err, recognition.ErrTrainFailed) {
		t.Fatalf("error: got %v, want ErrTrainFailed", err)
	}

	stub.trainErr = nil
	if err := g.Ready(context.Background()); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if n := stub.trains.Load(); n != 2 {
		t.Errorf("trained %d times, want 2", n)
	}
}

func TestGateClassifyTrainsFirst(t *testing.T) {
	stub := &stubClassifier{out: recognition.Output{Intent: "joy", Confidence: 0.9}}
	g := recognition.NewGate(stub, discardLogger())

	out, err := g.Classify(context.Background(), "今天真开心")
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}
	if out.Intent != "joy" {
		t.Errorf("intent: got %s, want joy", out.Intent)
	}
	if n := stub.trains.Load(); n != 1 {
		t.Errorf("trained %d times, want 1", n)
	}
}

func TestBayesClassifyBeforeTrain(t *testing.T) {
	c := recognition.NewBayesClassifier()

	_, err := c.Classify(context.Background(), "我好难过")
	if !errors.Is(err, recognition.ErrNotReady) {
		t.Errorf("error: got %v, want ErrNotReady", err)
	}
}

func TestBayesTrainAndClassify(t *testing.T) {
	c := recognition.NewBayesClassifier()
	if err := c.Train(context.Background()); err != nil {
		t.Fatalf("train failed: %v", err)
	}

	tests := []struct {
		text       string
		wantIntent string
		negative   bool
	}{
		{"我好难过", "sadness", true},
		{"i am so happy today", "joy", false},
		{"气死我了", "anger", true},
		{"我好害怕", "fear", true},
	}

	for _, tt := range tests {
		out, err := c.Classify(context.Background(), tt.text)
		if err != nil {
			t.Fatalf("classify %q failed: %v", tt.text, err)
		}
		if out.Intent != tt.wantIntent {
			t.Errorf("classify %q intent: got %s, want %s", tt.text, out.Intent, tt.wantIntent)
		}
		if out.Confidence <= 0 || out.Confidence > 1 {
			t.Errorf("classify %q confidence out of range: %f", tt.text, out.Confidence)
		}
		if tt.negative && out.Sentiment >= 0 {
			t.Errorf("classify %q sentiment: got %f, want negative", tt.text, out.Sentiment)
		}
		if !tt.negative && out.Sentiment <= 0 {
			t.Errorf("classify %q sentiment: got %f, want positive", tt.text, out.Sentiment)
		}
	}
}

func TestBayesDeterministic(t *testing.T) {
	c := recognition.NewBayesClassifier()
	if err := c.Train(context.Background()); err != nil {
		t.Fatalf("train failed: %v", err)
	}

	first, err := c.Classify(context.Background(), "最近压力很大一直很紧张")
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}

	for range 5 {
		out, err := c.Classify(context.Background(), "最近压力很大一直很紧张")
		if err != nil {
			t.Fatalf("classify failed: %v", err)
		}
		if out.Intent != first.Intent || out.Confidence != first.Confidence {
			t.Errorf("classification drifted: got %s/%f, want %s/%f",
				out.Intent, out.Confidence, first.Intent, first.Confidence)
		}
	}
}
