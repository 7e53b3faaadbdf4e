package rewrite

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// MaxBatchSize caps the number of texts in one batch rewrite request.
const MaxBatchSize = 5

// Service fronts both rewriters. When the OpenAI client is configured it is
// preferred; the rule rewriter is the always-available fallback.
type Service struct {
	rules  *RuleRewriter
	openai *OpenAIRewriter
	logger *zap.Logger
}

// NewService wires the two engines together. openai may be nil.
func NewService(openai *OpenAIRewriter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		rules:  NewRuleRewriter(),
		openai: openai,
		logger: logger,
	}
}

// Engine names the backend a rewrite went through.
type Engine string

const (
	EngineRules  Engine = "rules"
	EngineOpenAI Engine = "openai"
)

// Modes lists the modes currently available.
func (s *Service) Modes() []Mode {
	if s.openai != nil && s.openai.Ready() {
		return AllModes()
	}
	return RuleModes()
}

// Rewrite transforms text in the given mode. OpenAI failures fall back to
// the rule tables for the modes they cover; AI-only modes fall back to the
// original text, matching the principle that a rewrite never hard-fails on
// a collaborator outage.
func (s *Service) Rewrite(ctx context.Context, text string, mode Mode) (string, Engine, error) {
	if _, err := ParseMode(string(mode), s.Modes()); err != nil {
		return "", "", err
	}

	if s.openai != nil && s.openai.Ready() {
		result, err := s.openai.Rewrite(ctx, text, mode)
		if err == nil {
			return result, EngineOpenAI, nil
		}
		s.logger.Warn("openai rewrite failed, falling back",
			zap.String("mode", string(mode)),
			zap.Error(err))
		if isRuleMode(mode) {
			result, rerr := s.rules.Rewrite(text, mode)
			return result, EngineRules, rerr
		}
		return strings.TrimSpace(text), EngineRules, nil
	}

	result, err := s.rules.Rewrite(text, mode)
	return result, EngineRules, err
}

func isRuleMode(mode Mode) bool {
	for _, m := range RuleModes() {
		if m == mode {
			return true
		}
	}
	return false
}

// HealthCheck reports the state of whichever engine is active.
func (s *Service) HealthCheck(ctx context.Context) (bool, map[string]any) {
	if s.openai != nil && s.openai.Ready() {
		return s.openai.HealthCheck(ctx)
	}
	return s.rules.HealthCheck()
}
