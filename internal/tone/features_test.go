package tone

import (
	"testing"
)

func TestExtractFeaturesCounts(t *testing.T) {
	f := ExtractFeatures("Wait... WHAT?? This is GREAT!!! :) I'm thrilled.", DefaultLexicon())

	if f.ExclamationCount != 1 {
		t.Fatalf("expected one exclamation run, got %d", f.ExclamationCount)
	}
	if f.QuestionCount != 1 {
		t.Fatalf("expected one question run, got %d", f.QuestionCount)
	}
	if f.EllipsisCount != 1 {
		t.Fatalf("expected one ellipsis, got %d", f.EllipsisCount)
	}
	if f.CapsWords != 2 {
		t.Fatalf("expected WHAT and GREAT as caps words, got %d", f.CapsWords)
	}
	if f.EmoticonCount != 1 {
		t.Fatalf("expected one emoticon, got %d", f.EmoticonCount)
	}
	if f.ContractionCount != 1 {
		t.Fatalf("expected I'm as contraction, got %d", f.ContractionCount)
	}
	if f.PositiveWordCount != 2 {
		t.Fatalf("expected great and thrilled as positive hits, got %d", f.PositiveWordCount)
	}
}

func TestExtractFeaturesSentenceSegments(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"One. Two! Three?", 3},
		{"No terminal punctuation", 1},
		{"Trailing... ", 1},
		{"!!!", 0},
		{"a.b.c", 3},
	}
	for _, tc := range cases {
		f := ExtractFeatures(tc.text, DefaultLexicon())
		if f.SentenceCount != tc.want {
			t.Fatalf("%q: expected %d sentences, got %d", tc.text, tc.want, f.SentenceCount)
		}
	}
}

func TestExtractFeaturesRatioFloors(t *testing.T) {
	// A text with zero words must not divide by zero anywhere.
	f := ExtractFeatures("!?!", DefaultLexicon())
	if f.WordCount != 0 {
		t.Fatalf("expected no words, got %d", f.WordCount)
	}
	if f.AvgWordLength != 0 {
		t.Fatalf("expected zero avg word length, got %f", f.AvgWordLength)
	}
	if f.PositiveRatio != 0 || f.CapsRatio != 0 {
		t.Fatalf("expected zero ratios, got pos=%f caps=%f", f.PositiveRatio, f.CapsRatio)
	}
}

func TestExclamationRatioPerSentence(t *testing.T) {
	// Two runs across one sentence segment: the only ratio allowed above 1.0.
	f := ExtractFeatures("go! go!", DefaultLexicon())
	if f.ExclamationCount != 2 {
		t.Fatalf("expected 2 exclamation runs, got %d", f.ExclamationCount)
	}
	if f.SentenceCount != 2 {
		t.Fatalf("expected 2 sentence segments, got %d", f.SentenceCount)
	}
	if f.ExclamationRatio != 1.0 {
		t.Fatalf("expected ratio 1.0, got %f", f.ExclamationRatio)
	}
}

func TestContractionMatchingKeepsPunctuation(t *testing.T) {
	// "won't" must match as a whitespace token; the word tokenizer would
	// shred it into "won" and "t".
	f := ExtractFeatures("We won't and they'll", DefaultLexicon())
	if f.ContractionCount != 2 {
		t.Fatalf("expected 2 contractions, got %d", f.ContractionCount)
	}
	// Mixed-case surface forms still count.
	f = ExtractFeatures("I'M HAPPY", DefaultLexicon())
	if f.ContractionCount != 1 {
		t.Fatalf("expected I'M to match, got %d", f.ContractionCount)
	}
}

func TestLexiconContains(t *testing.T) {
	lex := DefaultLexicon()
	if !lex.Contains(CategoryPositive, "Amazing") {
		t.Fatal("expected case-insensitive positive hit")
	}
	if lex.Contains(CategoryPositive, "amazingly") {
		t.Fatal("expected exact matching, no stemming")
	}
	if !lex.Contains(CategoryContractions, "I'm") {
		t.Fatal("expected lowercase-normalized contraction hit")
	}
	if lex.Contains(Category("bogus"), "word") {
		t.Fatal("unknown category must not match")
	}
}
