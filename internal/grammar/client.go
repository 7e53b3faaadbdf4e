// Package grammar checks text against a LanguageTool server. The server is
// an external collaborator (usually managed by the lifecycle package); this
// client only speaks the /v2/check HTTP API.
package grammar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultLanguage is used when a request names no language or an
// unsupported one.
const DefaultLanguage = "en-US"

// maxReplacements caps the suggestions carried per issue.
const maxReplacements = 3

// Issue is one grammar, spelling, or style finding.
type Issue struct {
	Start           int      `json:"start"`
	End             int      `json:"end"`
	Message         string   `json:"message"`
	Replacements    []string `json:"replacements"`
	RuleID          string   `json:"rule_id"`
	Category        string   `json:"category,omitempty"`
	RuleDescription string   `json:"rule_description,omitempty"`
}

// Client talks to one LanguageTool endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient returns a client for the given /v2/check endpoint.
func NewClient(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Endpoint returns the configured check URL.
func (c *Client) Endpoint() string { return c.endpoint }

type checkResponse struct {
	Matches []struct {
		Offset       int    `json:"offset"`
		Length       int    `json:"length"`
		Message      string `json:"message"`
		Replacements []struct {
			Value string `json:"value"`
		} `json:"replacements"`
		Rule struct {
			ID          string `json:"id"`
			Description string `json:"description"`
			Category    struct {
				ID string `json:"id"`
			} `json:"category"`
		} `json:"rule"`
	} `json:"matches"`
}

// Check submits text and returns the issues found. The language falls back
// to DefaultLanguage when empty or unsupported.
func (c *Client) Check(ctx context.Context, text, language string) ([]Issue, error) {
	if !IsSupported(language) {
		language = DefaultLanguage
	}

	vals := url.Values{}
	vals.Set("language", language)
	vals.Set("text", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(vals.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build check request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("languagetool request: %w", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("languagetool status %d", resp.StatusCode)
	}

	var parsed checkResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode languagetool response: %w", err)
	}

	issues := make([]Issue, 0, len(parsed.Matches))
	for _, m := range parsed.Matches {
		replacements := make([]string, 0, maxReplacements)
		for _, r := range m.Replacements {
			if len(replacements) == maxReplacements {
				break
			}
			replacements = append(replacements, r.Value)
		}
		issues = append(issues, Issue{
			Start:           m.Offset,
			End:             m.Offset + m.Length,
			Message:         m.Message,
			Replacements:    replacements,
			RuleID:          m.Rule.ID,
			Category:        m.Rule.Category.ID,
			RuleDescription: m.Rule.Description,
		})
	}
	return issues, nil
}

// CheckSentence checks a single sentence. Very short fragments are skipped
// so that per-keystroke checking stays quiet while the user types.
func (c *Client) CheckSentence(ctx context.Context, sentence, language string) ([]Issue, error) {
	if len(strings.TrimSpace(sentence)) < 3 {
		return []Issue{}, nil
	}
	return c.Check(ctx, sentence, language)
}

// Languages returns the language codes the assistant accepts for checking.
func Languages() []string {
	return []string{
		"en-US", "en-GB", "en-CA", "en-AU",
		"de-DE", "fr-FR", "es-ES", "pt-BR", "it-IT", "nl-NL",
	}
}

// IsSupported reports whether code is an accepted language code.
func IsSupported(code string) bool {
	for _, l := range Languages() {
		if l == code {
			return true
		}
	}
	return false
}

// HealthCheck verifies the collaborator end to end: a sentence with a known
// spelling error must produce at least one issue.
func (c *Client) HealthCheck(ctx context.Context) (bool, map[string]any) {
	const sample = "This is a test sentance with a spelling error."
	details := map[string]any{
		"endpoint":         c.endpoint,
		"current_language": DefaultLanguage,
	}
	issues, err := c.Check(ctx, sample, DefaultLanguage)
	if err != nil {
		details["error"] = err.Error()
		return false, details
	}
	details["test_issues_found"] = len(issues)
	details["test_passed"] = len(issues) > 0
	return len(issues) > 0, details
}
