package server

import (
	"io"
	"net/http"
	"time"
)

func (s *Server) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if err := r.ParseMultipartForm(maxAudioBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	file, header, err := r.FormFile("audio")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No audio file provided")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxAudioBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read audio file")
		return
	}
	if len(content) == 0 {
		writeError(w, http.StatusBadRequest, "Empty audio file")
		return
	}
	if len(content) > maxAudioBytes {
		writeError(w, http.StatusBadRequest, "Audio file too large (max 50MB)")
		return
	}

	language := r.FormValue("language")
	if language == "" {
		language = "en-US"
	}

	text := s.speech.Transcribe(content, header.Filename, language)
	writeJSON(w, http.StatusOK, map[string]any{
		"text":    text,
		"time_ms": time.Since(start).Milliseconds(),
	})
}

func (s *Server) handleTranscribeInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"supported_formats":    []string{"webm", "ogg", "wav", "mp3"},
		"max_duration_seconds": 300,
		"min_duration_seconds": 0.1,
		"model_info": map[string]string{
			"type":        "browser_speech_api",
			"description": "Web Speech API for browser-based recognition",
		},
	})
}

func (s *Server) handleTranscribeTest(w http.ResponseWriter, r *http.Request) {
	healthy, details := s.speech.HealthCheck()
	writeJSON(w, http.StatusOK, map[string]any{
		"service": "Voice Transcription",
		"healthy": healthy,
		"details": details,
		"message": "Browser speech recognition available",
	})
}
