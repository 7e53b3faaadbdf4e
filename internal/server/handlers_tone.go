package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Muzammil-Ahm3d/Local-Writing-Assistant/internal/batch"
	"github.com/Muzammil-Ahm3d/Local-Writing-Assistant/internal/tone"
)

type toneRequest struct {
	Text string `json:"text"`
}

type batchToneRequest struct {
	Texts []string `json:"texts"`
}

func toneLabels(a tone.Analysis) map[string]string {
	return map[string]string{
		"sentiment": string(a.Sentiment),
		"formality": string(a.Formality),
	}
}

func toneScores(a tone.Analysis) map[string]float64 {
	return map[string]float64{
		"sentiment": a.Scores.Sentiment,
		"formality": a.Scores.Formality,
	}
}

func (s *Server) decodeToneRequest(w http.ResponseWriter, r *http.Request) (toneRequest, bool) {
	var req toneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return req, false
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "Text cannot be empty")
		return req, false
	}
	if utf8.RuneCountInString(req.Text) > maxToneChars {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Text too long (max %d characters)", maxToneChars))
		return req, false
	}
	return req, true
}

func (s *Server) handleTone(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req, ok := s.decodeToneRequest(w, r)
	if !ok {
		return
	}

	analysis := s.tone.Analyze(req.Text)
	writeJSON(w, http.StatusOK, map[string]any{
		"labels":      toneLabels(analysis),
		"scores":      toneScores(analysis),
		"confidence":  analysis.Confidence,
		"time_ms":     time.Since(start).Milliseconds(),
		"text_length": utf8.RuneCountInString(req.Text),
	})
}

func (s *Server) handleToneDetailed(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req, ok := s.decodeToneRequest(w, r)
	if !ok {
		return
	}

	analysis := s.tone.Analyze(req.Text)
	writeJSON(w, http.StatusOK, map[string]any{
		"labels":      toneLabels(analysis),
		"scores":      toneScores(analysis),
		"confidence":  analysis.Confidence,
		"features":    analysis.MarshalFeatures(),
		"time_ms":     time.Since(start).Milliseconds(),
		"text_length": utf8.RuneCountInString(req.Text),
	})
}

func (s *Server) handleToneBatch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req batchToneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Texts) == 0 {
		writeError(w, http.StatusBadRequest, "No texts provided")
		return
	}
	if len(req.Texts) > tone.MaxBatchSize {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("Too many texts. Maximum %d texts per batch request.", tone.MaxBatchSize))
		return
	}

	runResults, err := batch.Run(r.Context(), len(req.Texts), 4, func(ctx context.Context, i int) (tone.Analysis, error) {
		return s.tone.Analyze(req.Texts[i]), nil
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Batch tone analysis failed: "+err.Error())
		return
	}

	results := make([]map[string]any, 0, len(req.Texts))
	var confidences []float64
	for i, text := range req.Texts {
		if strings.TrimSpace(text) == "" {
			results = append(results, map[string]any{
				"text":       text,
				"labels":     map[string]string{"sentiment": "neutral", "formality": "neutral"},
				"scores":     map[string]float64{"sentiment": 0, "formality": 0},
				"confidence": 0.0,
				"skipped":    true,
				"reason":     tone.SkipReasonEmpty,
			})
			continue
		}
		analysis := runResults[i].Value
		results = append(results, map[string]any{
			"text":       text,
			"labels":     toneLabels(analysis),
			"scores":     toneScores(analysis),
			"confidence": analysis.Confidence,
			"skipped":    false,
		})
		confidences = append(confidences, analysis.Confidence)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"results":             results,
		"time_ms":             time.Since(start).Milliseconds(),
		"total_texts":         len(req.Texts),
		"successful_analyses": len(confidences),
		"average_confidence":  batch.MeanConfidence(confidences),
	})
}

func (s *Server) handleToneInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"description": "Heuristic-based tone analysis service",
		"dimensions": map[string]any{
			"sentiment": map[string]any{
				"description": "Emotional polarity of the text",
				"values":      []string{"positive", "neutral", "negative"},
				"methods":     []string{"word sentiment", "punctuation", "emoticons", "capitalization"},
			},
			"formality": map[string]any{
				"description": "Level of formality in the text",
				"values":      []string{"formal", "neutral", "casual"},
				"methods":     []string{"vocabulary choice", "contractions", "sentence structure", "word length"},
			},
		},
		"features": []string{
			"Word count and ratios",
			"Punctuation analysis",
			"Contraction detection",
			"Vocabulary formality scoring",
			"Sentence structure analysis",
		},
		"offline": true,
		"privacy": "All analysis is performed locally with no external requests",
	})
}
