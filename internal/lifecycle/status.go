package lifecycle

import "strings"

// ServiceStatus describes one managed collaborator.
type ServiceStatus struct {
	Name           string `json:"name"`
	Running        bool   `json:"running"`
	Ready          bool   `json:"ready"`
	Detail         string `json:"detail,omitempty"`
	LastError      string `json:"last_error,omitempty"`
	Missing        bool   `json:"missing,omitempty"`
	InstallCommand string `json:"install_command,omitempty"`
	InstallHint    string `json:"install_hint,omitempty"`
}

// ServiceTrace is one lifecycle event for the diagnostics feed.
type ServiceTrace struct {
	Time    string `json:"time"`
	Level   string `json:"level"`
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

// Diagnostics is a point-in-time snapshot of the managed services.
type Diagnostics struct {
	Overall      string         `json:"overall"`
	Initializing bool           `json:"initializing"`
	LanguageTool ServiceStatus  `json:"languagetool"`
	Traces       []ServiceTrace `json:"traces"`
}

// annotateStatus recognizes well-known failure strings and attaches an
// install hint so the UI can offer a one-line fix.
func annotateStatus(in ServiceStatus) ServiceStatus {
	err := strings.ToLower(strings.TrimSpace(in.LastError))
	detail := strings.ToLower(strings.TrimSpace(in.Detail))
	combined := err + " | " + detail

	if strings.Contains(combined, "languagetool binary missing") ||
		strings.Contains(combined, "languagetool-server") ||
		strings.Contains(combined, "languagetool not found") {
		in.Missing = true
		in.InstallCommand = "brew install languagetool"
		in.InstallHint = "LanguageTool is missing. Install with: brew install languagetool"
		return in
	}
	if strings.Contains(combined, "java not found") {
		in.Missing = true
		in.InstallCommand = "brew install openjdk"
		in.InstallHint = "Java runtime is missing. Install with: brew install openjdk"
		return in
	}
	return in
}
