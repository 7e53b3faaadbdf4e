package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Muzammil-Ahm3d/Local-Writing-Assistant/internal/rewrite"
)

type rewriteRequest struct {
	Text string `json:"text"`
	Mode string `json:"mode"`
}

type batchRewriteRequest struct {
	Texts []string `json:"texts"`
	Mode  string   `json:"mode"`
}

func (s *Server) handleRewrite(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req rewriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "Text cannot be empty")
		return
	}
	if utf8.RuneCountInString(req.Text) > maxRewriteChars {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Text too long (max %d characters)", maxRewriteChars))
		return
	}
	mode, err := rewrite.ParseMode(req.Mode, s.rewriter.Modes())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, _, err := s.rewriter.Rewrite(r.Context(), req.Text, mode)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Text rewriting failed: "+err.Error())
		return
	}
	if result == "" {
		result = req.Text
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"text":             result,
		"time_ms":          time.Since(start).Milliseconds(),
		"mode_used":        string(mode),
		"original_length":  utf8.RuneCountInString(req.Text),
		"rewritten_length": utf8.RuneCountInString(result),
	})
}

func (s *Server) handleRewriteModes(w http.ResponseWriter, r *http.Request) {
	modes := map[string]string{}
	for _, m := range s.rewriter.Modes() {
		name := string(m)
		modes[name] = strings.ToUpper(name[:1]) + name[1:]
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"modes":   modes,
		"default": string(rewrite.ModeFix),
		"message": "Available rewriting modes",
	})
}

func (s *Server) handleRewriteBatch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req batchRewriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Texts) == 0 {
		writeError(w, http.StatusBadRequest, "No texts provided")
		return
	}
	if len(req.Texts) > rewrite.MaxBatchSize {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("Too many texts. Maximum %d texts per batch request.", rewrite.MaxBatchSize))
		return
	}
	mode, err := rewrite.ParseMode(req.Mode, s.rewriter.Modes())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	results := make([]map[string]any, 0, len(req.Texts))
	successful := 0
	totalOriginal, totalRewritten := 0, 0
	for _, text := range req.Texts {
		if strings.TrimSpace(text) == "" {
			results = append(results, map[string]any{
				"original":  text,
				"rewritten": text,
				"skipped":   true,
				"reason":    "Empty text",
			})
			continue
		}
		rewritten, _, err := s.rewriter.Rewrite(r.Context(), text, mode)
		if err != nil {
			results = append(results, map[string]any{
				"original":  text,
				"rewritten": text,
				"skipped":   true,
				"reason":    "Rewrite failed: " + err.Error(),
			})
			continue
		}
		results = append(results, map[string]any{
			"original":  text,
			"rewritten": rewritten,
			"skipped":   false,
		})
		successful++
		totalOriginal += utf8.RuneCountInString(text)
		totalRewritten += utf8.RuneCountInString(rewritten)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"results":                results,
		"time_ms":                time.Since(start).Milliseconds(),
		"mode_used":              string(mode),
		"total_texts":            len(req.Texts),
		"successful_rewrites":    successful,
		"total_original_length":  totalOriginal,
		"total_rewritten_length": totalRewritten,
	})
}
