package recognition

import (
	"strings"
	"unicode/utf8"
)

// shortTextRunes is the rune-length cutoff below which text is treated as
// short: greetings short-circuit and the neutral distribution entry is
// re-weighted upward.
const shortTextRunes = 5

// Lexicon holds the per-label keyword lists and the closed greeting set
// used by the keyword matcher. Keyword lists are data: the embedded
// defaults may be overridden per label from persisted lexicons.
type Lexicon struct {
	Keywords  map[Label][]string
	Greetings []string
}

// DefaultLexicon returns the embedded bilingual keyword lists.
func DefaultLexicon() Lexicon {
	return Lexicon{
		Keywords: map[Label][]string{
			LabelHappy: {
				"开心", "高兴", "快乐", "幸福", "兴奋", "喜欢", "太棒",
				"happy", "glad", "great", "wonderful", "love", "awesome",
			},
			LabelSad: {
				"难过", "伤心", "悲伤", "想哭", "哭", "失落", "沮丧", "绝望",
				"sad", "cry", "unhappy", "miserable", "hopeless", "depressed",
			},
			LabelAngry: {
				"生气", "愤怒", "气死", "讨厌", "烦死", "滚", "畜生", "混蛋",
				"angry", "furious", "hate", "annoyed", "pissed",
			},
			LabelAnxious: {
				"焦虑", "紧张", "担心", "不安", "压力", "心慌",
				"anxious", "nervous", "worried", "stressed", "uneasy",
			},
			LabelFearful: {
				"害怕", "恐惧", "恐怖", "吓", "怕",
				"afraid", "scared", "terrified", "fear", "frightened",
			},
			LabelSurprised: {
				"惊讶", "震惊", "没想到", "意外", "居然", "竟然",
				"surprised", "shocked", "unbelievable", "wow",
			},
			LabelNeutral: {
				"你好", "在吗", "谢谢", "再见", "嗯", "好的", "知道了",
				"hello", "hi", "thanks", "ok", "okay", "yes", "bye",
			},
		},
		Greetings: []string{
			"你好", "您好", "嗨", "在吗", "谢谢", "再见", "嗯", "好的",
			"hello", "hi", "hey", "thanks", "ok", "okay", "yes", "no", "bye",
		},
	}
}

// Match counts case-sensitive substring occurrences of each label's
// keywords in text. Labels with no hits map to zero; the result always
// carries every label.
func (lx Lexicon) Match(text string) map[Label]int {
	hits := make(map[Label]int, len(labelOrder))
	for _, l := range labelOrder {
		n := 0
		for _, kw := range lx.Keywords[l] {
			if strings.Contains(text, kw) {
				n++
			}
		}
		hits[l] = n
	}
	return hits
}

// Greeting reports whether text is short filler: rune length at most
// shortTextRunes and an exact member of the closed greeting set.
func (lx Lexicon) Greeting(text string) bool {
	if utf8.RuneCountInString(text) > shortTextRunes {
		return false
	}
	for _, g := range lx.Greetings {
		if text == g {
			return true
		}
	}
	return false
}

func shortText(text string) bool {
	return utf8.RuneCountInString(text) <= shortTextRunes
}
