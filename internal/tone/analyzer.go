package tone

import "strings"

// MaxBatchSize is the largest number of texts AnalyzeBatch accepts per call.
const MaxBatchSize = 10

// SkipReasonEmpty is the reason recorded for blank batch items.
const SkipReasonEmpty = "Empty text"

// Analyzer scores text tone. The zero value is not usable; construct with
// NewAnalyzer. A single Analyzer serves unlimited concurrent callers.
type Analyzer struct {
	lexicon *Lexicon
	tuning  Tuning
}

// NewAnalyzer returns an analyzer over the built-in lexicon and the default
// tuning constants.
func NewAnalyzer() *Analyzer {
	return &Analyzer{lexicon: DefaultLexicon(), tuning: DefaultTuning()}
}

// NewAnalyzerWithTuning returns an analyzer with custom constants.
func NewAnalyzerWithTuning(t Tuning) *Analyzer {
	return &Analyzer{lexicon: DefaultLexicon(), tuning: t}
}

// Analyze scores one text. It is total over all string inputs and never
// fails: blank input yields the neutral zero-confidence result without
// touching the extractors, everything else flows
// features -> {sentiment, formality} -> confidence.
func (a *Analyzer) Analyze(text string) Analysis {
	if strings.TrimSpace(text) == "" {
		return Analysis{
			Sentiment:  SentimentNeutral,
			Formality:  FormalityNeutral,
			Scores:     Scores{Sentiment: 0.0, Formality: 0.0},
			Confidence: 0.0,
		}
	}

	features := ExtractFeatures(text, a.lexicon)
	sentiment, sentimentNet := scoreSentiment(features, a.tuning)
	formality, formalityNet := scoreFormality(features, a.tuning)
	confidence := scoreConfidence(features, sentimentNet, formalityNet, a.tuning)

	return Analysis{
		Sentiment:  sentiment,
		Formality:  formality,
		Scores:     Scores{Sentiment: sentimentNet, Formality: formalityNet},
		Confidence: confidence,
		Features:   &features,
	}
}

// BatchItem is one entry of a batch result. Skipped items carry the
// neutral zero-confidence placeholder and a reason instead of a real score.
type BatchItem struct {
	Text     string   `json:"text"`
	Analysis Analysis `json:"-"`
	Skipped  bool     `json:"skipped"`
	Reason   string   `json:"reason,omitempty"`
}

// AnalyzeBatch applies Analyze to each text. Blank items are reported as
// skipped with SkipReasonEmpty; they never abort the batch. Results are
// index-aligned with the input. Inputs beyond MaxBatchSize are the caller's
// problem; the engine processes whatever it is handed.
func (a *Analyzer) AnalyzeBatch(texts []string) []BatchItem {
	items := make([]BatchItem, len(texts))
	for i, text := range texts {
		items[i] = a.analyzeItem(text)
	}
	return items
}

func (a *Analyzer) analyzeItem(text string) BatchItem {
	if strings.TrimSpace(text) == "" {
		return BatchItem{
			Text:     text,
			Analysis: a.Analyze(""),
			Skipped:  true,
			Reason:   SkipReasonEmpty,
		}
	}
	return BatchItem{Text: text, Analysis: a.Analyze(text)}
}

// HealthCheck runs the self-test the service health endpoint reports: a
// known-positive sample must classify as positive with confidence above
// 0.3.
func (a *Analyzer) HealthCheck() (bool, map[string]any) {
	const sample = "I'm really excited about this amazing opportunity!"
	analysis := a.Analyze(sample)
	passed := analysis.Sentiment == SentimentPositive && analysis.Confidence > 0.3
	details := map[string]any{
		"lexicons_loaded": true,
		"positive_words":  a.lexicon.Size(CategoryPositive),
		"negative_words":  a.lexicon.Size(CategoryNegative),
		"formal_words":    a.lexicon.Size(CategoryFormal),
		"casual_words":    a.lexicon.Size(CategoryCasual),
		"test_input":      sample,
		"test_sentiment":  string(analysis.Sentiment),
		"test_formality":  string(analysis.Formality),
		"test_confidence": analysis.Confidence,
		"test_passed":     passed,
	}
	return passed, details
}
