package tone

import (
	"strings"
	"unicode/utf8"
)

// FeatureVector is the set of numeric measurements extracted from one text.
// It is created and discarded within a single analysis call.
//
// Every ratio denominator is floored at 1, so ratios are always finite.
// ExclamationRatio is per sentence rather than per word and is the only
// ratio that may exceed 1.0.
type FeatureVector struct {
	WordCount     int     `json:"word_count"`
	CharCount     int     `json:"char_count"`
	SentenceCount int     `json:"sentence_count"`
	AvgWordLength float64 `json:"avg_word_length"`

	ExclamationCount int `json:"exclamation_count"`
	QuestionCount    int `json:"question_count"`
	CapsWords        int `json:"caps_words"`
	EllipsisCount    int `json:"ellipsis_count"`
	EmoticonCount    int `json:"emoticon_count"`

	PositiveWordCount int `json:"positive_word_count"`
	NegativeWordCount int `json:"negative_word_count"`
	FormalWordCount   int `json:"formal_word_count"`
	CasualWordCount   int `json:"casual_word_count"`
	ContractionCount  int `json:"contraction_count"`

	PositiveRatio    float64 `json:"positive_ratio"`
	NegativeRatio    float64 `json:"negative_ratio"`
	FormalRatio      float64 `json:"formal_ratio"`
	CasualRatio      float64 `json:"casual_ratio"`
	ContractionRatio float64 `json:"contraction_ratio"`
	CapsRatio        float64 `json:"caps_ratio"`
	ExclamationRatio float64 `json:"exclamation_ratio"`
}

// ExtractFeatures computes the feature vector for text against the given
// lexicon. It is a pure function: one pass per signal, no retained state.
func ExtractFeatures(text string, lex *Lexicon) FeatureVector {
	lower := strings.ToLower(text)
	words := splitWords(lower)

	f := FeatureVector{
		WordCount: len(words),
		CharCount: utf8.RuneCountInString(text),

		ExclamationCount: countMatches(exclamationPattern, text),
		QuestionCount:    countMatches(questionPattern, text),
		CapsWords:        countMatches(capsPattern, text),
		EllipsisCount:    countMatches(ellipsisPattern, text),
		EmoticonCount:    countMatches(emoticonPattern, text),
	}

	for _, seg := range sentencePattern.Split(text, -1) {
		if strings.TrimSpace(seg) != "" {
			f.SentenceCount++
		}
	}

	totalLen := 0
	for _, w := range words {
		totalLen += len(w)
		if _, ok := lex.positive[w]; ok {
			f.PositiveWordCount++
		}
		if _, ok := lex.negative[w]; ok {
			f.NegativeWordCount++
		}
		if _, ok := lex.formal[w]; ok {
			f.FormalWordCount++
		}
		if _, ok := lex.casual[w]; ok {
			f.CasualWordCount++
		}
	}
	f.AvgWordLength = float64(totalLen) / float64(maxInt(f.WordCount, 1))

	// Contractions are matched on whitespace-split tokens so the apostrophe
	// form stays intact ("won't" would otherwise tokenize as "won" + "t").
	for _, tok := range strings.Fields(text) {
		if _, ok := lex.contractions[strings.ToLower(tok)]; ok {
			f.ContractionCount++
		}
	}

	wordDen := float64(maxInt(f.WordCount, 1))
	f.PositiveRatio = float64(f.PositiveWordCount) / wordDen
	f.NegativeRatio = float64(f.NegativeWordCount) / wordDen
	f.FormalRatio = float64(f.FormalWordCount) / wordDen
	f.CasualRatio = float64(f.CasualWordCount) / wordDen
	f.ContractionRatio = float64(f.ContractionCount) / wordDen
	f.CapsRatio = float64(f.CapsWords) / wordDen
	f.ExclamationRatio = float64(f.ExclamationCount) / float64(maxInt(f.SentenceCount, 1))

	return f
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
