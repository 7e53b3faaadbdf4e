package tone

import (
	"math"
	"os"
	"strconv"
	"strings"
)

// Tuning holds the hand-tuned constants of the scorers. They are empirical,
// not learned; keeping them here lets behavior be retuned without touching
// the scoring structure. DefaultTuning reads TONE_* environment overrides
// so deployments can adjust thresholds without a rebuild.
type Tuning struct {
	// Sentiment.
	SentimentWordWeight float64 // lexicon ratio multiplier
	ExclamationBoost    float64 // amplifies the currently leading polarity
	EmoticonBoost       float64 // flat positive bias when any emoticon present
	CapsTrigger         float64 // caps_ratio above which caps amplify
	CapsBoost           float64
	SentimentThreshold  float64 // |net| beyond which the text leaves neutral

	// Formality.
	FormalWordWeight       float64
	CasualWordWeight       float64
	ContractionWeight      float64
	ExclamationRateTrigger float64
	ExclamationCasual      float64
	EllipsisCasual         float64
	LongWordTrigger        float64
	LongWordFormal         float64
	ShortWordTrigger       float64
	ShortWordCasual        float64
	LongSentenceTrigger    float64
	LongSentenceFormal     float64
	ShortSentenceTrigger   float64
	ShortSentenceCasual    float64
	FormalityThreshold     float64

	// Confidence.
	FullConfidenceWords float64 // word count at which length confidence saturates
	LengthWeight        float64
	FeatureWeight       float64
	ConfidenceFloor     float64
}

// DefaultTuning returns the stock constants with environment overrides
// applied.
func DefaultTuning() Tuning {
	return Tuning{
		SentimentWordWeight: getenvFloat("TONE_SENTIMENT_WORD_WEIGHT", 2.0),
		ExclamationBoost:    getenvFloat("TONE_EXCLAMATION_BOOST", 0.5),
		EmoticonBoost:       getenvFloat("TONE_EMOTICON_BOOST", 0.2),
		CapsTrigger:         getenvFloat("TONE_CAPS_TRIGGER", 0.1),
		CapsBoost:           getenvFloat("TONE_CAPS_BOOST", 0.3),
		SentimentThreshold:  getenvFloat("TONE_SENTIMENT_THRESHOLD", 0.2),

		FormalWordWeight:       getenvFloat("TONE_FORMAL_WORD_WEIGHT", 3.0),
		CasualWordWeight:       getenvFloat("TONE_CASUAL_WORD_WEIGHT", 2.0),
		ContractionWeight:      getenvFloat("TONE_CONTRACTION_WEIGHT", 2.0),
		ExclamationRateTrigger: getenvFloat("TONE_EXCLAMATION_RATE_TRIGGER", 0.5),
		ExclamationCasual:      getenvFloat("TONE_EXCLAMATION_CASUAL", 0.5),
		EllipsisCasual:         getenvFloat("TONE_ELLIPSIS_CASUAL", 0.3),
		LongWordTrigger:        getenvFloat("TONE_LONG_WORD_TRIGGER", 5.5),
		LongWordFormal:         getenvFloat("TONE_LONG_WORD_FORMAL", 0.5),
		ShortWordTrigger:       getenvFloat("TONE_SHORT_WORD_TRIGGER", 4.0),
		ShortWordCasual:        getenvFloat("TONE_SHORT_WORD_CASUAL", 0.3),
		LongSentenceTrigger:    getenvFloat("TONE_LONG_SENTENCE_TRIGGER", 15),
		LongSentenceFormal:     getenvFloat("TONE_LONG_SENTENCE_FORMAL", 0.4),
		ShortSentenceTrigger:   getenvFloat("TONE_SHORT_SENTENCE_TRIGGER", 8),
		ShortSentenceCasual:    getenvFloat("TONE_SHORT_SENTENCE_CASUAL", 0.3),
		FormalityThreshold:     getenvFloat("TONE_FORMALITY_THRESHOLD", 0.5),

		FullConfidenceWords: getenvFloat("TONE_FULL_CONFIDENCE_WORDS", 50),
		LengthWeight:        getenvFloat("TONE_LENGTH_WEIGHT", 0.6),
		FeatureWeight:       getenvFloat("TONE_FEATURE_WEIGHT", 0.4),
		ConfidenceFloor:     getenvFloat("TONE_CONFIDENCE_FLOOR", 0.1),
	}
}

// scoreSentiment maps a feature vector to a sentiment label and net score.
// The branch order is load-bearing: exclamations amplify only a strict
// leader (equal scores are left alone), while the caps boost falls to the
// negative side on an exact tie.
func scoreSentiment(f FeatureVector, t Tuning) (Sentiment, float64) {
	positive := f.PositiveRatio * t.SentimentWordWeight
	negative := f.NegativeRatio * t.SentimentWordWeight

	if f.ExclamationCount > 0 {
		if positive > negative {
			positive += f.ExclamationRatio * t.ExclamationBoost
		} else if negative > positive {
			negative += f.ExclamationRatio * t.ExclamationBoost
		}
	}

	if f.EmoticonCount > 0 {
		positive += t.EmoticonBoost
	}

	if f.CapsRatio > t.CapsTrigger {
		if positive > negative {
			positive += t.CapsBoost
		} else {
			negative += t.CapsBoost
		}
	}

	net := positive - negative
	switch {
	case net > t.SentimentThreshold:
		return SentimentPositive, net
	case net < -t.SentimentThreshold:
		return SentimentNegative, net
	default:
		return SentimentNeutral, net
	}
}

// scoreFormality maps a feature vector to a formality label and net score
// (formal minus casual).
func scoreFormality(f FeatureVector, t Tuning) (Formality, float64) {
	formal := f.FormalRatio * t.FormalWordWeight
	casual := f.CasualRatio*t.CasualWordWeight + f.ContractionRatio*t.ContractionWeight

	if f.ExclamationRatio > t.ExclamationRateTrigger {
		casual += t.ExclamationCasual
	}
	if f.EllipsisCount > 0 {
		casual += t.EllipsisCasual
	}

	if f.AvgWordLength > t.LongWordTrigger {
		formal += t.LongWordFormal
	} else if f.AvgWordLength < t.ShortWordTrigger {
		casual += t.ShortWordCasual
	}

	if f.SentenceCount > 0 {
		avgSentenceLength := float64(f.WordCount) / float64(f.SentenceCount)
		if avgSentenceLength > t.LongSentenceTrigger {
			formal += t.LongSentenceFormal
		} else if avgSentenceLength < t.ShortSentenceTrigger {
			casual += t.ShortSentenceCasual
		}
	}

	net := formal - casual
	switch {
	case net > t.FormalityThreshold:
		return FormalityFormal, net
	case net < -t.FormalityThreshold:
		return FormalityCasual, net
	default:
		return FormalityNeutral, net
	}
}

// scoreConfidence blends text length with the magnitude of both net scores.
// Longer texts and stronger signals both raise confidence; the result is
// clamped to [floor, 1.0].
func scoreConfidence(f FeatureVector, sentimentNet, formalityNet float64, t Tuning) float64 {
	lengthConfidence := math.Min(float64(f.WordCount)/t.FullConfidenceWords, 1.0)
	featureConfidence := (math.Abs(sentimentNet) + math.Abs(formalityNet)) / 2.0
	overall := lengthConfidence*t.LengthWeight + featureConfidence*t.FeatureWeight
	return math.Min(math.Max(overall, t.ConfidenceFloor), 1.0)
}

func getenvFloat(name string, fallback float64) float64 {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}
