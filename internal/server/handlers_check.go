package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/Muzammil-Ahm3d/Local-Writing-Assistant/internal/grammar"
)

type checkRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

func (s *Server) grammarClient(w http.ResponseWriter) (*grammar.Client, bool) {
	if s.grammar == nil {
		writeError(w, http.StatusServiceUnavailable,
			"LanguageTool service not available. Please check if Java is installed and the service is running.")
		return nil, false
	}
	return s.grammar, true
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	client, ok := s.grammarClient(w)
	if !ok {
		return
	}

	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Language == "" {
		req.Language = grammar.DefaultLanguage
	}
	if utf8.RuneCountInString(req.Text) > maxCheckChars {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Text too long (max %d characters)", maxCheckChars))
		return
	}

	// Blank input short-circuits to an empty issue list.
	if strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusOK, map[string]any{
			"issues":        []grammar.Issue{},
			"time_ms":       time.Since(start).Milliseconds(),
			"language_used": req.Language,
			"text_length":   0,
		})
		return
	}

	language := req.Language
	if !grammar.IsSupported(language) {
		s.logger.Warn("unsupported language, falling back", zap.String("language", language))
		language = grammar.DefaultLanguage
	}

	issues, err := client.Check(r.Context(), req.Text, language)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable,
			"Grammar checking service temporarily unavailable. Please try again later.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"issues":        issues,
		"time_ms":       time.Since(start).Milliseconds(),
		"language_used": language,
		"text_length":   utf8.RuneCountInString(req.Text),
	})
}

func (s *Server) handleCheckSentence(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	client, ok := s.grammarClient(w)
	if !ok {
		return
	}

	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Language == "" {
		req.Language = grammar.DefaultLanguage
	}
	if utf8.RuneCountInString(req.Text) > maxCheckChars {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Text too long (max %d characters)", maxCheckChars))
		return
	}

	issues, err := client.CheckSentence(r.Context(), req.Text, req.Language)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Sentence check failed: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"issues":        issues,
		"time_ms":       time.Since(start).Milliseconds(),
		"language_used": req.Language,
		"text_length":   utf8.RuneCountInString(req.Text),
	})
}

func (s *Server) handleCheckLanguages(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.grammarClient(w); !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"languages": grammar.Languages(),
		"default":   grammar.DefaultLanguage,
		"message":   "Supported languages for grammar checking",
	})
}
