package rewrite

import (
	"regexp"
	"strings"
)

// transform is one regex substitution. Either repl or fn is set; fn covers
// replacements that depend on the matched text.
type transform struct {
	re   *regexp.Regexp
	repl string
	fn   func(string) string
}

func (t transform) apply(s string) string {
	if t.fn != nil {
		return t.re.ReplaceAllStringFunc(s, t.fn)
	}
	return t.re.ReplaceAllString(s, t.repl)
}

func upperLast(m string) string {
	return m[:len(m)-1] + strings.ToUpper(m[len(m)-1:])
}

// Transform tables are ordered; later rules see the output of earlier ones.
var grammarFixes = []transform{
	{re: regexp.MustCompile(`^([a-z])`), fn: strings.ToUpper},
	{re: regexp.MustCompile(`(\. )([a-z])`), fn: upperLast},

	{re: regexp.MustCompile(`(?i)\bi\b`), repl: "I"},
	{re: regexp.MustCompile(`(?i)\bu\b`), repl: "you"},
	{re: regexp.MustCompile(`(?i)\bur\b`), repl: "your"},
	{re: regexp.MustCompile(`(?i)\br\b`), repl: "are"},
	{re: regexp.MustCompile(`(?i)\bwont\b`), repl: "won't"},
	{re: regexp.MustCompile(`(?i)\bcant\b`), repl: "can't"},
	{re: regexp.MustCompile(`(?i)\bdont\b`), repl: "don't"},
	{re: regexp.MustCompile(`(?i)\bwontnt\b`), repl: "won't"},
	{re: regexp.MustCompile(`(?i)\bshoudl\b`), repl: "should"},
	{re: regexp.MustCompile(`(?i)\bwoudl\b`), repl: "would"},
	{re: regexp.MustCompile(`(?i)\bthier\b`), repl: "their"},
	{re: regexp.MustCompile(`(?i)\bteh\b`), repl: "the"},
	{re: regexp.MustCompile(`(?i)\byoru\b`), repl: "your"},
	{re: regexp.MustCompile(`(?i)\bfro\b`), repl: "for"},
	{re: regexp.MustCompile(`(?i)\bnad\b`), repl: "and"},

	// Terminate the final sentence.
	{re: regexp.MustCompile(`([^.!?])$`), repl: "$1."},
}

var formalTransforms = []transform{
	{re: regexp.MustCompile(`(?i)\bhey\b`), repl: "Hello"},
	{re: regexp.MustCompile(`(?i)\bhi\b`), repl: "Hello"},
	{re: regexp.MustCompile(`(?i)\byeah\b`), repl: "yes"},
	{re: regexp.MustCompile(`(?i)\byep\b`), repl: "yes"},
	{re: regexp.MustCompile(`(?i)\bnah\b`), repl: "no"},
	{re: regexp.MustCompile(`(?i)\bokay\b`), repl: "very well"},
	{re: regexp.MustCompile(`(?i)\bok\b`), repl: "acceptable"},
	{re: regexp.MustCompile(`(?i)\bthanks\b`), repl: "thank you"},
	{re: regexp.MustCompile(`(?i)\bthx\b`), repl: "thank you"},
	{re: regexp.MustCompile(`(?i)\bty\b`), repl: "thank you"},
	{re: regexp.MustCompile(`(?i)\bbtw\b`), repl: "by the way"},
	{re: regexp.MustCompile(`(?i)\basap\b`), repl: "as soon as possible"},
	{re: regexp.MustCompile(`(?i)\bfyi\b`), repl: "for your information"},
	{re: regexp.MustCompile(`(?i)\bimo\b`), repl: "in my opinion"},
	{re: regexp.MustCompile(`(?i)\bidk\b`), repl: "I do not know"},
	{re: regexp.MustCompile(`(?i)\bidc\b`), repl: "I do not care"},
	{re: regexp.MustCompile(`(?i)\bwanna\b`), repl: "want to"},
	{re: regexp.MustCompile(`(?i)\bgonna\b`), repl: "going to"},
	{re: regexp.MustCompile(`(?i)\bkinda\b`), repl: "somewhat"},
	{re: regexp.MustCompile(`(?i)\bsorta\b`), repl: "somewhat"},
	{re: regexp.MustCompile(`(?i)\bgotta\b`), repl: "have to"},
	{re: regexp.MustCompile(`(?i)\blemme\b`), repl: "let me"},
	{re: regexp.MustCompile(`(?i)\bgimme\b`), repl: "give me"},
	{re: regexp.MustCompile(`(?i)\bwhatcha\b`), repl: "what are you"},
	{re: regexp.MustCompile(`(?i)\bhowd\b`), repl: "how did"},
	{re: regexp.MustCompile(`(?i)\bwhyd\b`), repl: "why did"},
}

var friendlyTransforms = []transform{
	{re: regexp.MustCompile(`(?i)\bHello\b`), repl: "Hey"},
	{re: regexp.MustCompile(`(?i)\bGood morning\b`), repl: "Morning!"},
	{re: regexp.MustCompile(`(?i)\bGood afternoon\b`), repl: "Hey there!"},
	{re: regexp.MustCompile(`(?i)\bGood evening\b`), repl: "Evening!"},
	{re: regexp.MustCompile(`(?i)\bthank you\b`), repl: "thanks"},
	{re: regexp.MustCompile(`(?i)\bvery well\b`), repl: "sounds good"},
	{re: regexp.MustCompile(`(?i)\bacceptable\b`), repl: "cool"},
	{re: regexp.MustCompile(`(?i)\bas soon as possible\b`), repl: "ASAP"},
	{re: regexp.MustCompile(`(?i)\bfor your information\b`), repl: "FYI"},
	{re: regexp.MustCompile(`(?i)\bin my opinion\b`), repl: "IMO"},
	{re: regexp.MustCompile(`(?i)\bI do not know\b`), repl: "IDK"},
	{re: regexp.MustCompile(`(?i)\bwant to\b`), repl: "wanna"},
	{re: regexp.MustCompile(`(?i)\bgoing to\b`), repl: "gonna"},
	{re: regexp.MustCompile(`(?i)\bhave to\b`), repl: "gotta"},
	{re: regexp.MustCompile(`(?i)\bsomewhat\b`), repl: "kinda"},
	{re: regexp.MustCompile(`(?i)\blet me\b`), repl: "lemme"},
	{re: regexp.MustCompile(`(?i)\bgive me\b`), repl: "gimme"},
	{re: regexp.MustCompile(`(?i)\bPlease complete\b`), repl: "Could you"},
	{re: regexp.MustCompile(`(?i)\bimmediately\b`), repl: "when you get a chance"},
	{re: regexp.MustCompile(`(?i)\brequired\b`), repl: "would be great"},
	{re: regexp.MustCompile(`(?i)\bmust\b`), repl: "should"},
	{re: regexp.MustCompile(`\.( |$)`), repl: "! $1"},
}

var conciseTransforms = []transform{
	{re: regexp.MustCompile(`(?i)\bI would like to ask if you could possibly\b`), repl: "Could you"},
	{re: regexp.MustCompile(`(?i)\bI am writing to inform you that\b`), repl: ""},
	{re: regexp.MustCompile(`(?i)\bI hope this message finds you well\b`), repl: ""},
	{re: regexp.MustCompile(`(?i)\bPlease be advised that\b`), repl: ""},
	{re: regexp.MustCompile(`(?i)\bIn order to\b`), repl: "To"},
	{re: regexp.MustCompile(`(?i)\bDue to the fact that\b`), repl: "Because"},
	{re: regexp.MustCompile(`(?i)\bAt this point in time\b`), repl: "Now"},
	{re: regexp.MustCompile(`(?i)\bIn the event that\b`), repl: "If"},
	{re: regexp.MustCompile(`(?i)\bFor the purpose of\b`), repl: "For"},
	{re: regexp.MustCompile(`(?i)\bWith regard to\b`), repl: "About"},
	{re: regexp.MustCompile(`(?i)\bIt is important to note that\b`), repl: ""},
	{re: regexp.MustCompile(`(?i)\bPlease do not hesitate to\b`), repl: "Please"},
	{re: regexp.MustCompile(`(?i)\bI would appreciate it if you could\b`), repl: "Please"},
	{re: regexp.MustCompile(`(?i)\bAs previously mentioned\b`), repl: "As mentioned"},
	{re: regexp.MustCompile(`(?i)\bIn conclusion\b`), repl: "Finally"},
	{re: regexp.MustCompile(`(?i)\bvery much\b`), repl: "much"},
	{re: regexp.MustCompile(`(?i)\ba lot of\b`), repl: "many"},
	{re: regexp.MustCompile(`(?i)\ba large number of\b`), repl: "many"},
	{re: regexp.MustCompile(`(?i)\ba small number of\b`), repl: "few"},
	{re: regexp.MustCompile(`(?i)\bin the near future\b`), repl: "soon"},
}

var (
	spaceRun         = regexp.MustCompile(`\s+`)
	sentenceEnders   = regexp.MustCompile(`[.!?]+`)
	firstPeriodBreak = regexp.MustCompile(`\.( |$)`)
)

func applyTransforms(text string, transforms []transform) string {
	result := text
	for _, t := range transforms {
		result = t.apply(result)
	}
	return result
}

// RuleRewriter rewrites text with ordered substitution tables. All work is
// local and deterministic.
type RuleRewriter struct{}

func NewRuleRewriter() *RuleRewriter { return &RuleRewriter{} }

// Modes lists the modes this rewriter supports.
func (r *RuleRewriter) Modes() []Mode { return RuleModes() }

// Rewrite transforms text in the given mode. Blank input is returned as is,
// and an empty result falls back to the trimmed input.
func (r *RuleRewriter) Rewrite(text string, mode Mode) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}
	original := strings.TrimSpace(text)

	var result string
	switch mode {
	case ModeFix:
		result = fixGrammar(original)
	case ModeFormal:
		result = makeFormal(original)
	case ModeFriendly:
		result = makeFriendly(original)
	case ModeConcise:
		result = makeConcise(original)
	default:
		if _, err := ParseMode(string(mode), RuleModes()); err != nil {
			return "", err
		}
	}

	result = strings.TrimSpace(result)
	if result == "" {
		result = original
	}
	return result, nil
}

func fixGrammar(text string) string {
	return applyTransforms(text, grammarFixes)
}

func makeFormal(text string) string {
	result := fixGrammar(text)
	result = applyTransforms(result, formalTransforms)
	if !strings.HasSuffix(result, ".") && !strings.HasSuffix(result, "!") && !strings.HasSuffix(result, "?") {
		result += "."
	}
	return result
}

func makeFriendly(text string) string {
	result := fixGrammar(text)
	result = applyTransforms(result, friendlyTransforms)
	if !strings.Contains(result, "!") && len(result) > 10 {
		result = replaceFirst(firstPeriodBreak, result, "! $1")
	}
	return result
}

func makeConcise(text string) string {
	result := fixGrammar(text)
	result = applyTransforms(result, conciseTransforms)
	result = strings.TrimSpace(spaceRun.ReplaceAllString(result, " "))

	var sentences []string
	for _, s := range sentenceEnders.Split(result, -1) {
		if s = strings.TrimSpace(s); s != "" {
			sentences = append(sentences, s)
		}
	}
	if len(sentences) > 0 {
		result = strings.Join(sentences, ". ") + "."
	}
	return result
}

// replaceFirst substitutes only the first match of re.
func replaceFirst(re *regexp.Regexp, s, repl string) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + re.ReplaceAllString(s[loc[0]:loc[1]], repl) + s[loc[1]:]
}

// HealthCheck runs every mode against a short sample.
func (r *RuleRewriter) HealthCheck() (bool, map[string]any) {
	const sample = "hey whats up"
	results := map[string]any{}
	for _, mode := range RuleModes() {
		out, err := r.Rewrite(sample, mode)
		if err != nil {
			return false, map[string]any{"service": "RuleRewriter", "status": "unhealthy", "error": err.Error()}
		}
		results[string(mode)] = map[string]any{
			"input":   sample,
			"output":  out,
			"success": out != "" && out != sample,
		}
	}
	modes := make([]string, 0, len(RuleModes()))
	for _, m := range RuleModes() {
		modes = append(modes, string(m))
	}
	return true, map[string]any{
		"service":         "RuleRewriter",
		"status":          "healthy",
		"modes_available": modes,
		"test_results":    results,
	}
}
