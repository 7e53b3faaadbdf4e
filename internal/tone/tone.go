// Package tone performs heuristic tone analysis of English text.
//
// The analyzer scores free text along two independent axes, sentiment
// (positive/neutral/negative) and formality (formal/neutral/casual), and
// reports a confidence estimate. It combines weak lexical and structural
// signals: lexicon hits, punctuation runs, capitalization, emoticons, and
// sentence/word statistics. There is no model and no network access; the
// same input always produces the same result.
//
// All exported functions are safe for concurrent use: the lexicons and
// compiled patterns are read-only after package init, and every call keeps
// its state on the stack.
package tone

import (
	"encoding/json"
	"fmt"
)

// Sentiment is the polarity classification of a text.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Formality is the register classification of a text.
type Formality string

const (
	FormalityFormal  Formality = "formal"
	FormalityNeutral Formality = "neutral"
	FormalityCasual  Formality = "casual"
)

// Scores holds the raw net scores behind the categorical labels.
// Sentiment is positive-minus-negative, formality is formal-minus-casual;
// neither is clamped.
type Scores struct {
	Sentiment float64 `json:"sentiment"`
	Formality float64 `json:"formality"`
}

// Analysis is the result of analyzing one text.
//
// Confidence is 0.0 only for blank input; for any other input it lies in
// [0.1, 1.0]. Features is nil for blank input.
type Analysis struct {
	Sentiment  Sentiment      `json:"sentiment"`
	Formality  Formality      `json:"formality"`
	Scores     Scores         `json:"scores"`
	Confidence float64        `json:"confidence"`
	Features   *FeatureVector `json:"features,omitempty"`
}

func (a Analysis) String() string {
	return fmt.Sprintf("%s/%s(sent=%.2f, form=%.2f, conf=%.2f)",
		a.Sentiment, a.Formality, a.Scores.Sentiment, a.Scores.Formality, a.Confidence)
}

// MarshalFeatures returns the feature vector as a flat name->value map, the
// shape the detailed API response exposes. Returns an empty map when the
// analysis carries no features (blank input).
func (a Analysis) MarshalFeatures() map[string]float64 {
	if a.Features == nil {
		return map[string]float64{}
	}
	raw, err := json.Marshal(a.Features)
	if err != nil {
		return map[string]float64{}
	}
	out := map[string]float64{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return map[string]float64{}
	}
	return out
}
