package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Muzammil-Ahm3d/Local-Writing-Assistant/internal/grammar"
	"github.com/Muzammil-Ahm3d/Local-Writing-Assistant/internal/lifecycle"
	"github.com/Muzammil-Ahm3d/Local-Writing-Assistant/internal/rewrite"
	"github.com/Muzammil-Ahm3d/Local-Writing-Assistant/internal/server"
	"github.com/Muzammil-Ahm3d/Local-Writing-Assistant/internal/speech"
	"github.com/Muzammil-Ahm3d/Local-Writing-Assistant/internal/tone"
	"github.com/Muzammil-Ahm3d/Local-Writing-Assistant/internal/tracestore"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Info("starting local writing assistant", zap.String("addr", cfg.Server.Addr()))

		manager := lifecycle.NewManager(lifecycle.Options{
			CheckURL: cfg.LanguageTool.URL,
			Jar:      cfg.LanguageTool.JarPath,
			Managed:  cfg.LanguageTool.Managed,
		}, logger)

		if cfg.TraceDBPath != "" {
			store, err := tracestore.Open(cfg.TraceDBPath)
			if err != nil {
				logger.Warn("trace archive unavailable", zap.Error(err))
			} else {
				defer store.Close()
				if pruned, err := store.Prune(); err == nil && pruned > 0 {
					logger.Info("pruned archived traces", zap.Int64("rows", pruned))
				}
				manager.SetTraceSink(store.Sink())
			}
		}

		manager.Start()
		defer manager.Stop()

		var openaiClient *rewrite.OpenAIRewriter
		if cfg.OpenAI.APIKey != "" {
			openaiClient = rewrite.NewOpenAIRewriter(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.BaseURL, 0)
			logger.Info("openai rewriter enabled", zap.String("model", openaiClient.Model()))
		} else {
			logger.Info("openai rewriter not configured, using rule-based rewriter")
		}

		srv := server.New(server.Options{
			Token:     cfg.Server.APIToken,
			Logger:    logger,
			Tone:      tone.NewAnalyzer(),
			Grammar:   grammar.NewClient(cfg.LanguageTool.URL, time.Duration(cfg.LanguageTool.TimeoutSeconds)*time.Second),
			Rewriter:  rewrite.NewService(openaiClient, logger),
			Speech:    speech.NewService(),
			Lifecycle: manager,
		})

		httpServer := &http.Server{
			Addr:         cfg.Server.Addr(),
			Handler:      srv.Handler(),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 90 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- httpServer.ListenAndServe()
		}()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
		case sig := <-stop:
			logger.Info("shutting down", zap.String("signal", sig.String()))
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(ctx); err != nil {
				logger.Warn("graceful shutdown failed", zap.Error(err))
			}
		}
		return nil
	},
}
