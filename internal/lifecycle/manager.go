// Package lifecycle supervises the external LanguageTool server. When the
// endpoint is already alive it is adopted as-is; otherwise the manager starts
// a process of its own and tears it down on shutdown.
package lifecycle

import (
	"net/url"
	"sync"
	"time"

	"go.uber.org/zap"
)

const traceRingSize = 400

// Options configures the manager.
type Options struct {
	// CheckURL is the LanguageTool /v2/check endpoint to probe and, if
	// needed, to bring up.
	CheckURL string
	// Jar is the LANGUAGETOOL_JAR fallback path, may be empty.
	Jar string
	// Managed enables starting a local process when the endpoint is down.
	Managed bool
}

// Manager owns the LanguageTool process lifecycle.
type Manager struct {
	mu sync.Mutex

	opts   Options
	logger *zap.Logger

	started      bool
	ready        bool
	initializing bool

	proc   *managedProcess
	status ServiceStatus

	traces    []ServiceTrace
	traceSink func(ServiceTrace)
}

// NewManager builds a manager; it does nothing until Start or EnsureReady.
func NewManager(opts Options, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		opts:   opts,
		logger: logger,
		status: ServiceStatus{Name: "languagetool"},
		traces: make([]ServiceTrace, 0, traceRingSize),
	}
}

// Start kicks off initialization in the background. Safe to call once.
func (m *Manager) Start() {
	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return
	}
	m.started = true
	m.mu.Unlock()
	go m.ensureReadyInternal()
}

// EnsureReady initializes synchronously if no initialization is in flight.
func (m *Manager) EnsureReady() {
	m.mu.Lock()
	if m.ready || m.initializing {
		m.mu.Unlock()
		return
	}
	m.started = true
	m.mu.Unlock()
	m.ensureReadyInternal()
}

func (m *Manager) ensureReadyInternal() {
	m.mu.Lock()
	if m.ready || m.initializing {
		m.mu.Unlock()
		return
	}
	m.initializing = true
	m.mu.Unlock()
	defer func() {
		m.mu.Lock()
		m.initializing = false
		m.ready = m.status.Ready
		m.mu.Unlock()
	}()

	m.trace("INFO", "Service lifecycle start", "initializing dependencies")

	checkURL := m.opts.CheckURL
	if isHTTPAlive(checkURL, 2*time.Second) {
		m.update(true, true, "using existing endpoint", "")
		m.trace("INFO", "LanguageTool ready", checkURL)
		return
	}

	if !m.opts.Managed {
		m.update(false, false, "endpoint unreachable and management disabled", "")
		m.trace("RISK", "LanguageTool unreachable", checkURL)
		return
	}

	proc, err := startLanguageTool(portOf(checkURL), m.opts.Jar)
	if err != nil {
		m.update(false, false, "startup failed", err.Error())
		m.trace("RISK", "LanguageTool start failed", err.Error())
		return
	}
	m.mu.Lock()
	m.proc = proc
	m.mu.Unlock()

	m.trace("ANALYSIS", "LanguageTool process started", "waiting for health endpoint")
	waitForHTTP(checkURL, 35*time.Second)
	if isHTTPAlive(checkURL, 2*time.Second) {
		m.update(true, true, "started by app", "")
		m.trace("INFO", "LanguageTool ready", checkURL)
	} else {
		m.update(true, false, "process started but endpoint unreachable", "timeout")
		m.trace("RISK", "LanguageTool endpoint unreachable", checkURL)
	}
}

// Stop terminates any process the manager started.
func (m *Manager) Stop() {
	m.mu.Lock()
	proc := m.proc
	m.proc = nil
	m.mu.Unlock()
	stopManagedProcess(proc)
}

// Snapshot returns current diagnostics with a copy of the trace ring.
func (m *Manager) Snapshot() Diagnostics {
	m.mu.Lock()
	defer m.mu.Unlock()
	overall := "DEGRADED"
	if m.status.Ready {
		overall = "READY"
	} else if !m.started {
		overall = "IDLE"
	}
	copyTraces := make([]ServiceTrace, len(m.traces))
	copy(copyTraces, m.traces)
	return Diagnostics{
		Overall:      overall,
		Initializing: m.initializing,
		LanguageTool: m.status,
		Traces:       copyTraces,
	}
}

// SetTraceSink registers a callback that observes every trace as it lands.
func (m *Manager) SetTraceSink(sink func(ServiceTrace)) {
	m.mu.Lock()
	m.traceSink = sink
	m.mu.Unlock()
}

func (m *Manager) update(running, ready bool, detail, errMsg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status = annotateStatus(ServiceStatus{
		Name:      "languagetool",
		Running:   running,
		Ready:     ready,
		Detail:    detail,
		LastError: errMsg,
	})
}

func (m *Manager) trace(level, message, detail string) {
	t := ServiceTrace{Time: time.Now().Format("15:04:05.000"), Level: level, Message: message, Detail: detail}
	m.mu.Lock()
	m.traces = append(m.traces, t)
	if len(m.traces) > traceRingSize {
		m.traces = m.traces[len(m.traces)-traceRingSize:]
	}
	sink := m.traceSink
	m.mu.Unlock()
	if sink != nil {
		sink(t)
	}

	m.logger.Info("service trace",
		zap.String("level", level),
		zap.String("message", message),
		zap.String("detail", detail))
}

// portOf extracts the port from the check URL, defaulting to 8010.
func portOf(checkURL string) string {
	u, err := url.Parse(checkURL)
	if err == nil && u.Port() != "" {
		return u.Port()
	}
	return "8010"
}
