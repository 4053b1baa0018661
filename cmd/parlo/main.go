package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/parlolabs/parlo/internal/api"
	"github.com/parlolabs/parlo/internal/config"
	"github.com/parlolabs/parlo/internal/eval"
	"github.com/parlolabs/parlo/internal/events"
	"github.com/parlolabs/parlo/internal/groq"
	"github.com/parlolabs/parlo/internal/practice"
	"github.com/parlolabs/parlo/internal/store"
	"github.com/parlolabs/parlo/internal/tts"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	slog.Info("parlo starting", "port", cfg.Port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.GroqAPIKey == "" {
		slog.Error("GROQ_API_KEY is required")
		os.Exit(1)
	}
	llm := groq.NewClient(cfg.GroqAPIKey, cfg.GroqModel, cfg.WhisperModel, slog.Default())
	slog.Info("groq client ready", "model", cfg.GroqModel, "whisper_model", cfg.WhisperModel)

	speech := tts.NewClient(cfg.TTSVoice, slog.Default())

	// Session archive (optional — parlo works without Postgres, sessions are
	// just not persisted).
	var archive practice.Archiver
	if cfg.DatabaseURL != "" {
		db, err := store.New(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		archive = db
		slog.Info("database connected")
	} else {
		slog.Warn("DATABASE_URL not set — running without session archive")
	}

	// Lifecycle events (optional, same deal).
	var publisher practice.Publisher
	if cfg.NatsURL != "" {
		nc, err := events.NewPublisher(cfg.NatsURL, cfg.NatsToken, slog.Default())
		if err != nil {
			slog.Error("failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer nc.Close()
		publisher = nc
		slog.Info("NATS connected", "url", cfg.NatsURL)
	} else {
		slog.Warn("NATS_URL not set — running without lifecycle events")
	}

	evaluator := eval.New(llm, slog.Default())
	service := practice.New(llm, llm, speech, evaluator, publisher, archive, slog.Default())

	srv := api.NewServer(cfg.Port, service)
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	slog.Info("parlo ready", "port", cfg.Port)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	slog.Info("shutting down")
	cancel()
	slog.Info("parlo stopped")
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
