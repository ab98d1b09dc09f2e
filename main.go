package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/paperwatch/paperwatch/internal/ai"
	"github.com/paperwatch/paperwatch/internal/arxiv"
	"github.com/paperwatch/paperwatch/internal/config"
	"github.com/paperwatch/paperwatch/internal/keywords"
	"github.com/paperwatch/paperwatch/internal/logger"
	"github.com/paperwatch/paperwatch/internal/orchestrator"
	"github.com/paperwatch/paperwatch/internal/server"
	"github.com/paperwatch/paperwatch/internal/slack"
)

func main() {
	log := logger.New("paperwatch")

	cfg, err := config.Load()
	if err != nil {
		log.Error("load config", slog.Any("err", err))
		os.Exit(1)
	}

	store := keywords.New(cfg.SeedKeywords)
	notifier := slack.NewNotifier(cfg.SlackAPIToken, cfg.SlackChannel)
	summarizer := ai.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)

	orch := orchestrator.New(arxiv.NewClient(), summarizer, notifier, store, orchestrator.Options{
		Categories:           arxiv.Categories,
		SampleSize:           cfg.SampleSize,
		MaxMatchesPerKeyword: cfg.MaxMatchesPerKey,
	}, log)

	dispatcher := slack.NewDispatcher(store, notifier, log)
	srv := server.New(log, orch, dispatcher, cfg.SlackSigningSecret)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.RunInterval > 0 {
		go runLoop(ctx, log, orch, cfg.RunInterval)
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
	}

	go func() {
		log.Info("server starting", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", slog.Any("err", err))
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", slog.Any("err", err))
	}
}

// runLoop fires the same pass the /run endpoint triggers, on a fixed
// interval. Disabled unless RUN_INTERVAL is set.
func runLoop(ctx context.Context, log *slog.Logger, orch *orchestrator.Orchestrator, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := orch.Run(ctx); err != nil {
				log.Error("scheduled run failed", slog.Any("err", err))
			}
		}
	}
}
