package rewrite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

// systemPrompts steer the model per mode.
var systemPrompts = map[Mode]string{
	ModeFix: "You are a grammar and spelling correction assistant.\n" +
		"Fix any grammatical errors, spelling mistakes, and punctuation issues in the text.\n" +
		"Maintain the original tone and meaning. Only make necessary corrections.",
	ModeConcise: "You are a concise writing assistant.\n" +
		"Make the text more concise and to the point. Remove unnecessary words and phrases.\n" +
		"Maintain the core message but express it more efficiently.",
	ModeFormal: "You are a formal writing assistant.\n" +
		"Rewrite the text in a professional, formal tone suitable for business communication.\n" +
		"Use proper grammar and vocabulary while maintaining the original meaning.",
	ModeFriendly: "You are a friendly writing assistant.\n" +
		"Rewrite the text in a warm, conversational, and approachable tone.\n" +
		"Make it sound natural and engaging while keeping the core message.",
	ModeElaborate: "You are a detailed writing assistant.\n" +
		"Expand on the text to make it more comprehensive and detailed.\n" +
		"Add relevant context and explanations while maintaining clarity.",
	ModeCreative: "You are a creative writing assistant.\n" +
		"Rewrite the text in a more creative and engaging way.\n" +
		"Use vivid language and interesting phrasing while preserving the meaning.",
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model            string        `json:"model"`
	Messages         []chatMessage `json:"messages"`
	MaxTokens        int           `json:"max_tokens"`
	Temperature      float64       `json:"temperature"`
	TopP             float64       `json:"top_p"`
	FrequencyPenalty float64       `json:"frequency_penalty"`
	PresencePenalty  float64       `json:"presence_penalty"`
	Stream           bool          `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// OpenAIRewriter calls an OpenAI-compatible chat completions endpoint.
type OpenAIRewriter struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewOpenAIRewriter builds a client. An empty API key yields a client whose
// Ready() is false; callers should then use the rule rewriter.
func NewOpenAIRewriter(apiKey, model, baseURL string, timeout time.Duration) *OpenAIRewriter {
	if model == "" {
		model = "gpt-4o-mini"
	}
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &OpenAIRewriter{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Ready reports whether the client has credentials to call the API.
func (o *OpenAIRewriter) Ready() bool {
	return o.apiKey != "" && o.apiKey != "your-openai-api-key-here"
}

// Model returns the configured model name.
func (o *OpenAIRewriter) Model() string { return o.model }

// Modes lists the modes this rewriter supports.
func (o *OpenAIRewriter) Modes() []Mode { return AllModes() }

// Rewrite sends the text through the chat completions API. Blank input is
// returned as is.
func (o *OpenAIRewriter) Rewrite(ctx context.Context, text string, mode Mode) (string, error) {
	if !o.Ready() {
		return "", fmt.Errorf("openai rewriter not configured")
	}
	if strings.TrimSpace(text) == "" {
		return text, nil
	}
	original := strings.TrimSpace(text)

	prompt, ok := systemPrompts[mode]
	if !ok {
		prompt = systemPrompts[ModeFix]
	}

	temperature := 0.3
	if mode == ModeCreative || mode == ModeFriendly {
		temperature = 0.7
	}
	maxTokens := len(original) * 2
	if maxTokens > 500 {
		maxTokens = 500
	}

	reqBody := chatRequest{
		Model: o.model,
		Messages: []chatMessage{
			{Role: "system", Content: prompt},
			{Role: "user", Content: "Rewrite the following text:\n\n" + original},
		},
		MaxTokens:        maxTokens,
		Temperature:      temperature,
		TopP:             0.9,
		FrequencyPenalty: 0.1,
		PresencePenalty:  0.1,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai request: %w", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode openai response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			return "", fmt.Errorf("openai status %d: %s", resp.StatusCode, parsed.Error.Message)
		}
		return "", fmt.Errorf("openai status %d", resp.StatusCode)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("openai response has no choices")
	}

	result := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if result == "" {
		result = original
	}
	return result, nil
}

// HealthCheck reports whether the client is configured and reachable.
func (o *OpenAIRewriter) HealthCheck(ctx context.Context) (bool, map[string]any) {
	if !o.Ready() {
		return false, map[string]any{
			"service": "OpenAIRewriter",
			"status":  "not_configured",
			"error":   "OpenAI API key not configured",
		}
	}
	result, err := o.Rewrite(ctx, "hello world", ModeFix)
	if err != nil {
		return false, map[string]any{
			"service": "OpenAIRewriter",
			"status":  "unhealthy",
			"error":   err.Error(),
		}
	}
	modes := make([]string, 0, len(AllModes()))
	for _, m := range AllModes() {
		modes = append(modes, string(m))
	}
	return true, map[string]any{
		"service":         "OpenAIRewriter",
		"status":          "healthy",
		"model":           o.model,
		"modes_available": modes,
		"test_successful": result != "",
	}
}
