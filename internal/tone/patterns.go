package tone

import "regexp"

// Structural pattern scanners. Each regexp matches maximal runs, so a "!!!"
// counts as one exclamation and "....." as one ellipsis.
var (
	exclamationPattern = regexp.MustCompile(`!+`)
	questionPattern    = regexp.MustCompile(`\?+`)
	capsPattern        = regexp.MustCompile(`\b[A-Z]{2,}\b`)
	ellipsisPattern    = regexp.MustCompile(`\.{3,}`)
	emoticonPattern    = regexp.MustCompile(`[:;=]-?[)D(P\\/]|[)D(P\\/]-?[:;=]`)
	wordPattern        = regexp.MustCompile(`\w+`)
	sentencePattern    = regexp.MustCompile(`[.!?]+`)
)

func countMatches(re *regexp.Regexp, text string) int {
	return len(re.FindAllStringIndex(text, -1))
}

// splitWords returns the word tokens of text: maximal runs of alphanumeric
// or underscore characters. Callers lowercase the text first when the
// tokens feed lexicon lookups.
func splitWords(text string) []string {
	return wordPattern.FindAllString(text, -1)
}
