package server

import "net/http"

type serviceHealth struct {
	OK      bool           `json:"ok"`
	Service string         `json:"service"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func healthMessage(ok bool) string {
	if ok {
		return "Service is healthy"
	}
	return "Service is unhealthy"
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"message": "Service is healthy",
		"version": Version,
	})
}

func (s *Server) handleHealthLanguageTool(w http.ResponseWriter, r *http.Request) {
	if s.grammar == nil {
		writeJSON(w, http.StatusOK, serviceHealth{Service: "LanguageTool", Message: "Service not initialized"})
		return
	}
	ok, details := s.grammar.HealthCheck(r.Context())
	if s.lifecycle != nil {
		snap := s.lifecycle.Snapshot()
		details["lifecycle"] = map[string]any{
			"overall":      snap.Overall,
			"initializing": snap.Initializing,
			"status":       snap.LanguageTool,
		}
	}
	writeJSON(w, http.StatusOK, serviceHealth{
		OK:      ok,
		Service: "LanguageTool",
		Message: healthMessage(ok),
		Details: details,
	})
}

func (s *Server) handleHealthTone(w http.ResponseWriter, r *http.Request) {
	ok, details := s.tone.HealthCheck()
	writeJSON(w, http.StatusOK, serviceHealth{
		OK:      ok,
		Service: "ToneAnalysis",
		Message: healthMessage(ok),
		Details: details,
	})
}

func (s *Server) handleHealthRewriter(w http.ResponseWriter, r *http.Request) {
	ok, details := s.rewriter.HealthCheck(r.Context())
	writeJSON(w, http.StatusOK, serviceHealth{
		OK:      ok,
		Service: "Rewriter",
		Message: healthMessage(ok),
		Details: details,
	})
}

func (s *Server) handleHealthSpeech(w http.ResponseWriter, r *http.Request) {
	ok, details := s.speech.HealthCheck()
	writeJSON(w, http.StatusOK, serviceHealth{
		OK:      ok,
		Service: "BrowserSpeech",
		Message: healthMessage(ok),
		Details: details,
	})
}

func (s *Server) handleHealthOpenAI(w http.ResponseWriter, r *http.Request) {
	ok, details := s.rewriter.HealthCheck(r.Context())
	if details["service"] != "OpenAIRewriter" {
		writeJSON(w, http.StatusOK, serviceHealth{
			Service: "OpenAIRewriter",
			Message: "Service not initialized",
			Details: map[string]any{"status": "not_configured"},
		})
		return
	}
	writeJSON(w, http.StatusOK, serviceHealth{
		OK:      ok,
		Service: "OpenAIRewriter",
		Message: healthMessage(ok),
		Details: details,
	})
}
