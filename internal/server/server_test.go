package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Muzammil-Ahm3d/Local-Writing-Assistant/internal/grammar"
	"github.com/Muzammil-Ahm3d/Local-Writing-Assistant/internal/speech"
)

const testToken = "local-secret"

const ltResponse = `{
  "matches": [
    {
      "offset": 15,
      "length": 8,
      "message": "Possible spelling mistake found.",
      "replacements": [{"value": "sentence"}],
      "rule": {
        "id": "MORFOLOGIK_RULE_EN_US",
        "description": "Possible spelling mistake",
        "category": {"id": "TYPOS"}
      }
    }
  ]
}`

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	lt := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(ltResponse))
	}))
	t.Cleanup(lt.Close)

	srv := New(Options{
		Token:   testToken,
		Grammar: grammar.NewClient(lt.URL, 0),
		Speech:  speech.NewService(),
	})
	return srv.Handler()
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("X-Local-Auth", testToken)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestAuthRequired(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/api/tone", map[string]string{"text": "hello"}, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))

	// Bearer token works too.
	req := httptest.NewRequest(http.MethodGet, "/api/tone/info", nil)
	req.Header.Set("Authorization", "Bearer "+testToken)
	rec2 := httptest.NewRecorder()
	h.ServeHTTP(rec2, req)
	assert.Equal(t, http.StatusOK, rec2.Code)
}

func TestAuthSkippedForHealthAndPreflight(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodGet, "/health", nil, false)
	assert.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodOptions, "/api/tone", nil)
	rec2 := httptest.NewRecorder()
	h.ServeHTTP(rec2, req)
	assert.Equal(t, http.StatusNoContent, rec2.Code)
	assert.Equal(t, "*", rec2.Header().Get("Access-Control-Allow-Origin"))
}

func TestAuthMissingTokenConfiguration(t *testing.T) {
	h := New(Options{}).Handler()
	rec := doJSON(t, h, http.MethodPost, "/api/tone", map[string]string{"text": "hello"}, false)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["detail"], "API token not set")
}

func TestRequestIDHeader(t *testing.T) {
	h := newTestHandler(t)
	rec := doJSON(t, h, http.MethodGet, "/health", nil, false)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestToneEndpoint(t *testing.T) {
	h := newTestHandler(t)
	rec := doJSON(t, h, http.MethodPost, "/api/tone",
		map[string]string{"text": "I'm really excited about this amazing opportunity!"}, true)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	labels := body["labels"].(map[string]any)
	assert.Equal(t, "positive", labels["sentiment"])
	assert.Contains(t, body, "scores")
	assert.Greater(t, body["confidence"].(float64), 0.3)
	assert.EqualValues(t, 50, body["text_length"])
	assert.Contains(t, body, "time_ms")
	assert.NotContains(t, body, "features")
}

func TestToneEmptyText(t *testing.T) {
	h := newTestHandler(t)
	rec := doJSON(t, h, http.MethodPost, "/api/tone", map[string]string{"text": "   "}, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Text cannot be empty", decodeBody(t, rec)["detail"])
}

func TestToneTooLong(t *testing.T) {
	h := newTestHandler(t)
	rec := doJSON(t, h, http.MethodPost, "/api/tone",
		map[string]string{"text": strings.Repeat("a", maxToneChars+1)}, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestToneDetailedIncludesFeatures(t *testing.T) {
	h := newTestHandler(t)
	rec := doJSON(t, h, http.MethodPost, "/api/tone/detailed",
		map[string]string{"text": "Furthermore, we shall proceed accordingly."}, true)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	features := body["features"].(map[string]any)
	assert.EqualValues(t, 5, features["word_count"])
	assert.Contains(t, features, "formal_ratio")
}

func TestToneBatch(t *testing.T) {
	h := newTestHandler(t)
	rec := doJSON(t, h, http.MethodPost, "/api/tone/batch",
		map[string]any{"texts": []string{"This is wonderful!", "   ", "This is terrible."}}, true)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	results := body["results"].([]any)
	require.Len(t, results, 3)

	second := results[1].(map[string]any)
	assert.Equal(t, true, second["skipped"])
	assert.Equal(t, "Empty text", second["reason"])
	assert.EqualValues(t, 0, second["confidence"])

	first := results[0].(map[string]any)
	assert.Equal(t, false, first["skipped"])
	assert.Equal(t, "positive", first["labels"].(map[string]any)["sentiment"])

	assert.EqualValues(t, 3, body["total_texts"])
	assert.EqualValues(t, 2, body["successful_analyses"])
	assert.Greater(t, body["average_confidence"].(float64), 0.0)
}

func TestToneBatchLimits(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/api/tone/batch", map[string]any{"texts": []string{}}, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	texts := make([]string, 11)
	for i := range texts {
		texts[i] = "hello"
	}
	rec = doJSON(t, h, http.MethodPost, "/api/tone/batch", map[string]any{"texts": texts}, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckEndpoint(t *testing.T) {
	h := newTestHandler(t)
	rec := doJSON(t, h, http.MethodPost, "/api/check",
		map[string]string{"text": "This is a test sentance here.", "language": "en-US"}, true)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	issues := body["issues"].([]any)
	require.Len(t, issues, 1)
	issue := issues[0].(map[string]any)
	assert.EqualValues(t, 15, issue["start"])
	assert.EqualValues(t, 23, issue["end"])
	assert.Equal(t, "MORFOLOGIK_RULE_EN_US", issue["rule_id"])
	assert.Equal(t, "en-US", body["language_used"])
}

func TestCheckBlankText(t *testing.T) {
	h := newTestHandler(t)
	rec := doJSON(t, h, http.MethodPost, "/api/check", map[string]string{"text": "  "}, true)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Empty(t, body["issues"])
	assert.EqualValues(t, 0, body["text_length"])
}

func TestCheckUnsupportedLanguageFallsBack(t *testing.T) {
	h := newTestHandler(t)
	rec := doJSON(t, h, http.MethodPost, "/api/check",
		map[string]string{"text": "hello world", "language": "xx-XX"}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "en-US", decodeBody(t, rec)["language_used"])
}

func TestCheckWithoutGrammarService(t *testing.T) {
	h := New(Options{Token: testToken}).Handler()
	rec := doJSON(t, h, http.MethodPost, "/api/check", map[string]string{"text": "hello"}, true)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCheckLanguages(t *testing.T) {
	h := newTestHandler(t)
	rec := doJSON(t, h, http.MethodGet, "/api/check/languages", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "en-US", body["default"])
	assert.NotEmpty(t, body["languages"])
}

func TestRewriteEndpoint(t *testing.T) {
	h := newTestHandler(t)
	rec := doJSON(t, h, http.MethodPost, "/api/rewrite",
		map[string]string{"text": "hey thx", "mode": "formal"}, true)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "Hello thank you.", body["text"])
	assert.Equal(t, "formal", body["mode_used"])
	assert.EqualValues(t, 7, body["original_length"])
	assert.EqualValues(t, 16, body["rewritten_length"])
}

func TestRewriteValidation(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/api/rewrite", map[string]string{"text": " ", "mode": "fix"}, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/rewrite", map[string]string{"text": "hello", "mode": "shouty"}, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Without an OpenAI key, AI-only modes are not offered.
	rec = doJSON(t, h, http.MethodPost, "/api/rewrite", map[string]string{"text": "hello", "mode": "creative"}, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRewriteModes(t *testing.T) {
	h := newTestHandler(t)
	rec := doJSON(t, h, http.MethodGet, "/api/rewrite/modes", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	modes := body["modes"].(map[string]any)
	assert.Equal(t, "Fix", modes["fix"])
	assert.Equal(t, "fix", body["default"])
	assert.NotContains(t, modes, "creative")
}

func TestRewriteBatch(t *testing.T) {
	h := newTestHandler(t)
	rec := doJSON(t, h, http.MethodPost, "/api/rewrite/batch",
		map[string]any{"texts": []string{"hey thx", ""}, "mode": "formal"}, true)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	results := body["results"].([]any)
	require.Len(t, results, 2)
	assert.Equal(t, "Hello thank you.", results[0].(map[string]any)["rewritten"])
	assert.Equal(t, true, results[1].(map[string]any)["skipped"])
	assert.EqualValues(t, 1, body["successful_rewrites"])

	texts := make([]string, 6)
	for i := range texts {
		texts[i] = "hello"
	}
	rec = doJSON(t, h, http.MethodPost, "/api/rewrite/batch", map[string]any{"texts": texts, "mode": "fix"}, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTranscribeEndpoint(t *testing.T) {
	h := newTestHandler(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("audio", "clip.webm")
	require.NoError(t, err)
	_, err = fw.Write([]byte{0x1a, 0x45, 0xdf, 0xa3})
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("language", "en-GB"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/transcribe", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-Local-Auth", testToken)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, speech.DelegationMarker, decodeBody(t, rec)["text"])
}

func TestTranscribeEmptyUpload(t *testing.T) {
	h := newTestHandler(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_, err := mw.CreateFormFile("audio", "clip.webm")
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/transcribe", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-Local-Auth", testToken)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Empty audio file", decodeBody(t, rec)["detail"])
}

func TestHealthEndpoints(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodGet, "/health", nil, false)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, Version, body["version"])

	rec = doJSON(t, h, http.MethodGet, "/health/tone", nil, false)
	body = decodeBody(t, rec)
	assert.Equal(t, true, body["ok"])

	rec = doJSON(t, h, http.MethodGet, "/health/lt", nil, false)
	body = decodeBody(t, rec)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "LanguageTool", body["service"])

	rec = doJSON(t, h, http.MethodGet, "/health/speech", nil, false)
	assert.Equal(t, true, decodeBody(t, rec)["ok"])

	rec = doJSON(t, h, http.MethodGet, "/health/rewriter", nil, false)
	assert.Equal(t, true, decodeBody(t, rec)["ok"])

	rec = doJSON(t, h, http.MethodGet, "/health/openai", nil, false)
	body = decodeBody(t, rec)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "OpenAIRewriter", body["service"])
}

func TestDocsInfo(t *testing.T) {
	h := newTestHandler(t)
	rec := doJSON(t, h, http.MethodGet, "/docs-info", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["message"], "Local Writing Assistant")
}
