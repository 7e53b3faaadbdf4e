package tone

import (
	_ "embed"
	"encoding/json"
	"strings"
)

//go:embed lexicon.json
var lexiconJSON []byte

// Category names a lexicon word set.
type Category string

const (
	CategoryPositive     Category = "positive"
	CategoryNegative     Category = "negative"
	CategoryFormal       Category = "formal"
	CategoryCasual       Category = "casual"
	CategoryContractions Category = "contractions"
)

// Lexicon holds the five fixed word sets the analyzer consults. It is built
// once at package init and never mutated, so a single instance is shared by
// all callers.
//
// The contraction set is stored lowercase. The source material mixed the
// case of pronoun contractions ("I'm") while comparing lowercased tokens
// against them, which silently missed those forms; lookups here are always
// against lowercase surface forms.
type Lexicon struct {
	positive     map[string]struct{}
	negative     map[string]struct{}
	formal       map[string]struct{}
	casual       map[string]struct{}
	contractions map[string]struct{}
}

var defaultLexicon = mustLoadLexicon(lexiconJSON)

// DefaultLexicon returns the shared built-in English lexicon.
func DefaultLexicon() *Lexicon {
	return defaultLexicon
}

func mustLoadLexicon(raw []byte) *Lexicon {
	var data struct {
		Positive     []string `json:"positive"`
		Negative     []string `json:"negative"`
		Formal       []string `json:"formal"`
		Casual       []string `json:"casual"`
		Contractions []string `json:"contractions"`
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		panic("tone: corrupt embedded lexicon: " + err.Error())
	}
	return &Lexicon{
		positive:     wordSet(data.Positive),
		negative:     wordSet(data.Negative),
		formal:       wordSet(data.Formal),
		casual:       wordSet(data.Casual),
		contractions: wordSet(data.Contractions),
	}
}

func wordSet(words []string) map[string]struct{} {
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		out[strings.ToLower(w)] = struct{}{}
	}
	return out
}

// Contains reports whether word belongs to the named category. The word is
// lowercased before lookup; membership is exact string equality, no
// stemming or fuzzy matching.
func (l *Lexicon) Contains(cat Category, word string) bool {
	set := l.set(cat)
	if set == nil {
		return false
	}
	_, ok := set[strings.ToLower(word)]
	return ok
}

// Size returns the number of entries in the named category.
func (l *Lexicon) Size(cat Category) int {
	return len(l.set(cat))
}

func (l *Lexicon) set(cat Category) map[string]struct{} {
	switch cat {
	case CategoryPositive:
		return l.positive
	case CategoryNegative:
		return l.negative
	case CategoryFormal:
		return l.formal
	case CategoryCasual:
		return l.casual
	case CategoryContractions:
		return l.contractions
	default:
		return nil
	}
}
