package recognition

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// tokenize splits text into classifier features. Input is NFKC-normalized
// and lowercased; latin/digit runs become word tokens, Han characters
// become overlapping bigrams (with a unigram fallback for isolated
// characters) so short Chinese samples still produce usable features.
func tokenize(text string) []string {
	text = strings.ToLower(norm.NFKC.String(text))

	var tokens []string
	var word []rune
	var han []rune

	flushWord := func() {
		if len(word) > 0 {
			tokens = append(tokens, string(word))
			word = word[:0]
		}
	}
	flushHan := func() {
		if len(han) == 1 {
			tokens = append(tokens, string(han))
		}
		for i := 0; i+1 < len(han); i++ {
			tokens = append(tokens, string(han[i:i+2]))
		}
		han = han[:0]
	}

	for _, r := range text {
		switch {
		case unicode.Is(unicode.Han, r):
			flushWord()
			han = append(han, r)
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			flushHan()
			word = append(word, r)
		default:
			flushWord()
			flushHan()
		}
	}
	flushWord()
	flushHan()

	return tokens
}
