// Package server exposes the writing assistant over HTTP. The surface is a
// small JSON API consumed by the browser extension: tone analysis, grammar
// checking, rewriting, and a transcription delegation stub, plus per-service
// health probes.
package server

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/Muzammil-Ahm3d/Local-Writing-Assistant/internal/grammar"
	"github.com/Muzammil-Ahm3d/Local-Writing-Assistant/internal/lifecycle"
	"github.com/Muzammil-Ahm3d/Local-Writing-Assistant/internal/rewrite"
	"github.com/Muzammil-Ahm3d/Local-Writing-Assistant/internal/speech"
	"github.com/Muzammil-Ahm3d/Local-Writing-Assistant/internal/tone"
)

// Version is reported by /health.
const Version = "1.0.0"

// Input ceilings, enforced here rather than in the engines.
const (
	maxToneChars    = 5000
	maxCheckChars   = 10000
	maxRewriteChars = 2000
	maxAudioBytes   = 50 * 1024 * 1024
)

// Options carries the collaborators the server fronts. Lifecycle may be nil
// when the process does not manage LanguageTool itself.
type Options struct {
	Token     string
	Logger    *zap.Logger
	Tone      *tone.Analyzer
	Grammar   *grammar.Client
	Rewriter  *rewrite.Service
	Speech    *speech.Service
	Lifecycle *lifecycle.Manager
}

// Server holds the handler dependencies.
type Server struct {
	token     string
	logger    *zap.Logger
	tone      *tone.Analyzer
	grammar   *grammar.Client
	rewriter  *rewrite.Service
	speech    *speech.Service
	lifecycle *lifecycle.Manager
}

// New builds a server. Nil engine fields get working defaults so tests can
// construct a server from just the pieces they exercise.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Tone == nil {
		opts.Tone = tone.NewAnalyzer()
	}
	if opts.Rewriter == nil {
		opts.Rewriter = rewrite.NewService(nil, opts.Logger)
	}
	if opts.Speech == nil {
		opts.Speech = speech.NewService()
	}
	return &Server{
		token:     opts.Token,
		logger:    opts.Logger,
		tone:      opts.Tone,
		grammar:   opts.Grammar,
		rewriter:  opts.Rewriter,
		speech:    opts.Speech,
		lifecycle: opts.Lifecycle,
	}
}

// Handler assembles the route table and the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /health/lt", s.handleHealthLanguageTool)
	mux.HandleFunc("GET /health/tone", s.handleHealthTone)
	mux.HandleFunc("GET /health/rewriter", s.handleHealthRewriter)
	mux.HandleFunc("GET /health/speech", s.handleHealthSpeech)
	mux.HandleFunc("GET /health/openai", s.handleHealthOpenAI)
	mux.HandleFunc("GET /docs-info", s.handleDocsInfo)

	mux.HandleFunc("POST /api/tone", s.handleTone)
	mux.HandleFunc("POST /api/tone/detailed", s.handleToneDetailed)
	mux.HandleFunc("POST /api/tone/batch", s.handleToneBatch)
	mux.HandleFunc("GET /api/tone/info", s.handleToneInfo)

	mux.HandleFunc("POST /api/check", s.handleCheck)
	mux.HandleFunc("POST /api/check/sentence", s.handleCheckSentence)
	mux.HandleFunc("GET /api/check/languages", s.handleCheckLanguages)

	mux.HandleFunc("POST /api/rewrite", s.handleRewrite)
	mux.HandleFunc("GET /api/rewrite/modes", s.handleRewriteModes)
	mux.HandleFunc("POST /api/rewrite/batch", s.handleRewriteBatch)

	mux.HandleFunc("POST /api/transcribe", s.handleTranscribe)
	mux.HandleFunc("GET /api/transcribe/info", s.handleTranscribeInfo)
	mux.HandleFunc("POST /api/transcribe/test", s.handleTranscribeTest)

	var h http.Handler = mux
	h = s.withAuth(h)
	h = s.withCORS(h)
	h = s.withRequestID(h)
	h = s.withRecovery(h)
	return h
}

func (s *Server) handleDocsInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Local Writing Assistant API",
		"privacy": "All processing is done locally. No data is sent to external servers.",
		"auth":    "Include X-Local-Auth header with your token for API access",
	})
}
