package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/amal-thomson/pixelphraser-commercetools-connector/internal/commercetools"
	"github.com/amal-thomson/pixelphraser-commercetools-connector/internal/config"
	"github.com/amal-thomson/pixelphraser-commercetools-connector/internal/event"
	"github.com/amal-thomson/pixelphraser-commercetools-connector/internal/genai"
	"github.com/amal-thomson/pixelphraser-commercetools-connector/internal/pipeline"
	"github.com/amal-thomson/pixelphraser-commercetools-connector/internal/server"
	"github.com/amal-thomson/pixelphraser-commercetools-connector/internal/storage/sqldb"
	"github.com/amal-thomson/pixelphraser-commercetools-connector/internal/telemetry"
	"github.com/amal-thomson/pixelphraser-commercetools-connector/internal/vision"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Initialize OpenTelemetry
	shutdownTracer, err := telemetry.InitTracer("pixelphraser-connector", logger)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			logger.Error("failed to shutdown tracer", slog.String("error", err.Error()))
		}
	}()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// External collaborators
	ctClient := commercetools.NewClient(cfg.Commercetools, logger)

	visionOpts := []vision.ClientOption{}
	if cfg.Vision.BaseURL != "" {
		visionOpts = append(visionOpts, vision.WithBaseURL(cfg.Vision.BaseURL))
	}
	analyzer := vision.NewClient(cfg.Vision.APIKey, logger, visionOpts...)

	genaiOpts := []genai.ClientOption{}
	if cfg.GenAI.BaseURL != "" {
		genaiOpts = append(genaiOpts, genai.WithBaseURL(cfg.GenAI.BaseURL))
	}
	generator := genai.NewClient(cfg.GenAI.APIKey, cfg.GenAI.Model, logger, genaiOpts...)

	// Audit trail
	var audit event.AuditRecorder = event.NopRecorder{}
	if cfg.Storage.Type == "sqlite" {
		store, err := sqldb.New(cfg.Storage.SQLite.Path)
		if err != nil {
			log.Fatalf("Failed to open audit store: %v", err)
		}
		defer store.Close()
		audit = store
	}

	enricher := pipeline.NewEnricher(analyzer, generator, ctClient, generator, ctClient, logger)
	handler := event.NewHandler(ctClient, ctClient, enricher, audit, logger)

	srv := server.New(cfg.Server.Port, logger)
	srv.Router.Post("/event", handler.Handle)
	srv.Router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received, stopping connector")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("connector shutdown complete")
}
