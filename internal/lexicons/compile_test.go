package lexicons

import (
	"slices"
	"testing"

	"github.com/google/uuid"

	"github.com/seren-app/seren/internal/recognition"
)

func keywordEntry(label recognition.Label, term string) Entry {
	return Entry{ID: uuid.New(), Kind: KindKeyword, Label: &label, Term: term}
}

func greetingEntry(term string) Entry {
	return Entry{ID: uuid.New(), Kind: KindGreeting, Term: term}
}

func TestCompileEmptyKeepsDefaults(t *testing.T) {
	lx := compile(nil)
	want := recognition.DefaultLexicon()

	for label, terms := range want.Keywords {
		if !slices.Equal(lx.Keywords[label], terms) {
			t.Errorf("label %s diverged from defaults", label)
		}
	}
	if !slices.Equal(lx.Greetings, want.Greetings) {
		t.Error("greetings diverged from defaults")
	}
}

func TestCompileOverridesPerLabel(t *testing.T) {
	lx := compile([]Entry{
		keywordEntry(recognition.LabelFearful, "zzz"),
		keywordEntry(recognition.LabelFearful, "qqq"),
	})

	if !slices.Equal(lx.Keywords[recognition.LabelFearful], []string{"zzz", "qqq"}) {
		t.Errorf("fearful keywords = %v", lx.Keywords[recognition.LabelFearful])
	}

	// Labels without stored entries keep their embedded lists.
	defaults := recognition.DefaultLexicon()
	for _, label := range []recognition.Label{
		recognition.LabelSad,
		recognition.LabelAngry,
		recognition.LabelHappy,
	} {
		if !slices.Equal(lx.Keywords[label], defaults.Keywords[label]) {
			t.Errorf("label %s lost its default keywords", label)
		}
	}
	if !slices.Equal(lx.Greetings, defaults.Greetings) {
		t.Error("greetings should stay default without greeting entries")
	}
}

func TestCompileGreetingOverride(t *testing.T) {
	lx := compile([]Entry{greetingEntry("howdy"), greetingEntry("yo")})

	if !slices.Equal(lx.Greetings, []string{"howdy", "yo"}) {
		t.Errorf("greetings = %v", lx.Greetings)
	}

	defaults := recognition.DefaultLexicon()
	if !slices.Equal(lx.Keywords[recognition.LabelSad], defaults.Keywords[recognition.LabelSad]) {
		t.Error("keyword defaults should survive a greeting-only override")
	}
}

func TestCompileDoesNotMutateDefaults(t *testing.T) {
	before := recognition.DefaultLexicon()
	wantSad := slices.Clone(before.Keywords[recognition.LabelSad])

	compile([]Entry{keywordEntry(recognition.LabelSad, "only-term")})

	after := recognition.DefaultLexicon()
	if !slices.Equal(after.Keywords[recognition.LabelSad], wantSad) {
		t.Error("compile mutated the embedded default lexicon")
	}
}
