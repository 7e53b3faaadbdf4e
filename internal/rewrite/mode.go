// Package rewrite transforms text into alternate phrasings. Two engines are
// provided: a rule-based rewriter that answers instantly from regex transform
// tables, and an OpenAI-backed rewriter used when an API key is configured.
package rewrite

import "fmt"

// Mode selects the rewriting style.
type Mode string

const (
	ModeFix       Mode = "fix"
	ModeConcise   Mode = "concise"
	ModeFormal    Mode = "formal"
	ModeFriendly  Mode = "friendly"
	ModeElaborate Mode = "elaborate"
	ModeCreative  Mode = "creative"
)

// RuleModes are the modes the rule-based rewriter implements.
func RuleModes() []Mode {
	return []Mode{ModeFix, ModeConcise, ModeFormal, ModeFriendly}
}

// AllModes are the modes the OpenAI rewriter implements.
func AllModes() []Mode {
	return []Mode{ModeFix, ModeConcise, ModeFormal, ModeFriendly, ModeElaborate, ModeCreative}
}

// ParseMode validates a mode string against the given set.
func ParseMode(s string, allowed []Mode) (Mode, error) {
	for _, m := range allowed {
		if Mode(s) == m {
			return m, nil
		}
	}
	return "", fmt.Errorf("unsupported rewrite mode %q", s)
}
