package tone

import (
	"math"
	"reflect"
	"strings"
	"testing"
)

func FuzzAnalyze(f *testing.F) {
	f.Add("I'm really excited about this amazing opportunity!")
	f.Add("yeah gonna be kinda late lol")
	f.Add("")
	f.Add("   \t\n")
	f.Add("WHY?! WHY?! WHY?!")
	f.Add(":) :( ;-D (:")
	f.Add("Furthermore, the undersigned shall endeavor to facilitate the aforementioned implementation.")
	f.Add("\x00\x01 control bytes and émojis 🙂")

	a := NewAnalyzer()
	f.Fuzz(func(t *testing.T, text string) {
		got := a.Analyze(text)

		switch got.Sentiment {
		case SentimentPositive, SentimentNeutral, SentimentNegative:
		default:
			t.Errorf("invalid sentiment %q", got.Sentiment)
		}
		switch got.Formality {
		case FormalityFormal, FormalityNeutral, FormalityCasual:
		default:
			t.Errorf("invalid formality %q", got.Formality)
		}

		if math.IsNaN(got.Confidence) || math.IsInf(got.Confidence, 0) {
			t.Errorf("confidence not finite: %v", got.Confidence)
		}
		if strings.TrimSpace(text) == "" {
			if got.Confidence != 0.0 {
				t.Errorf("blank input confidence %f, want 0", got.Confidence)
			}
		} else if got.Confidence < 0.1 || got.Confidence > 1.0 {
			t.Errorf("confidence %f out of [0.1, 1.0]", got.Confidence)
		}

		if math.IsNaN(got.Scores.Sentiment) || math.IsNaN(got.Scores.Formality) {
			t.Errorf("scores contain NaN: %+v", got.Scores)
		}

		if got.Features != nil {
			fv := *got.Features
			if fv.WordCount < 0 || fv.SentenceCount < 0 || fv.ExclamationCount < 0 {
				t.Errorf("negative counts: %+v", fv)
			}
			if fv.PositiveRatio > 1.0 || fv.NegativeRatio > 1.0 || fv.CapsRatio > 1.0 {
				t.Errorf("per-word ratio above 1.0: %+v", fv)
			}
		}

		// No hidden state: a second pass is bit-identical.
		if again := a.Analyze(text); !reflect.DeepEqual(again, got) {
			t.Errorf("analysis not deterministic for %q", text)
		}
	})
}
