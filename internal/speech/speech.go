// Package speech is a delegation stub. Audio is never decoded server-side;
// transcription happens in the browser through the Web Speech API, and this
// service exists so the transcribe endpoint keeps a stable shape.
package speech

// DelegationMarker tells clients to run speech recognition locally.
const DelegationMarker = "BROWSER_SPEECH_API_REQUIRED"

// Service implements the transcription surface without touching audio bytes.
type Service struct{}

func NewService() *Service { return &Service{} }

// Transcribe accepts the upload for API compatibility and returns the
// delegation marker. The payload is deliberately ignored.
func (s *Service) Transcribe(audio []byte, filename, language string) string {
	return DelegationMarker
}

// SupportedLanguages lists the codes the browser recognizer handles.
func (s *Service) SupportedLanguages() []string {
	return []string{"en-US", "en-GB", "es-ES", "fr-FR", "de-DE"}
}

// HealthCheck always succeeds; there is no server-side dependency.
func (s *Service) HealthCheck() (bool, map[string]any) {
	return true, map[string]any{
		"service":             "BrowserSpeech",
		"status":              "healthy",
		"implementation":      "client_side",
		"supported_languages": s.SupportedLanguages(),
		"api":                 "Web Speech API",
		"note":                "Uses browser's built-in speech recognition",
	}
}
