// Command worker consumes diagnosis requests from NATS and publishes ranked
// results, recording resolved cases for similarity retrieval.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"

	"github.com/revivatech/diagnose/engine/diagnose"
	"github.com/revivatech/diagnose/engine/knowledge"
	"github.com/revivatech/diagnose/engine/similar"
	"github.com/revivatech/diagnose/pkg/metrics"
	"github.com/revivatech/diagnose/pkg/natsutil"
)

// Config holds all environment-based configuration.
type Config struct {
	NATSURL        string
	RequestSubject string
	ResultSubject  string
	KnowledgePath  string
	QdrantURL      string
	Collection     string
	RecordRate     float64
	MetricsPort    int
}

func loadConfig() Config {
	return Config{
		NATSURL:        envOr("NATS_URL", nats.DefaultURL),
		RequestSubject: envOr("REQUEST_SUBJECT", "diagnose.request"),
		ResultSubject:  envOr("RESULT_SUBJECT", "diagnose.result"),
		KnowledgePath:  envOr("KNOWLEDGE_PATH", ""),
		QdrantURL:      envOr("QDRANT_URL", ""),
		Collection:     envOr("QDRANT_COLLECTION", "diagnostic_cases"),
		RecordRate:     envFloat("CASE_RECORD_RPS", 5),
		MetricsPort:    envInt("METRICS_PORT", 9091),
	}
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := loadConfig()

	if err := run(cfg, logger); err != nil {
		logger.Error("worker exited with error", "err", err)
		os.Exit(1)
	}
}

func run(cfg Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	kb := knowledge.Default()
	if cfg.KnowledgePath != "" {
		loaded, err := knowledge.Load(cfg.KnowledgePath)
		if err != nil {
			return fmt.Errorf("load knowledge base: %w", err)
		}
		kb = loaded
	}
	engine := diagnose.New(kb, diagnose.Options{}, logger)

	var cases caseRecorder
	if cfg.QdrantURL != "" {
		store, err := similar.NewStore(cfg.QdrantURL, cfg.Collection)
		if err != nil {
			return fmt.Errorf("qdrant connect: %w", err)
		}
		defer store.Close()
		if err := store.EnsureCollection(ctx); err != nil {
			return fmt.Errorf("ensure case collection: %w", err)
		}
		cases = similar.NewService(store, logger)
	}

	reg := metrics.New()
	reg.ServeAsync(cfg.MetricsPort)

	proc := newProcessor(engine, cases, cfg.RecordRate, reg, logger)

	nc, err := nats.Connect(cfg.NATSURL)
	if err != nil {
		return fmt.Errorf("nats connect: %w", err)
	}
	defer nc.Close()

	sub, err := natsutil.Subscribe(nc, cfg.RequestSubject, func(msgCtx context.Context, req DiagnoseRequest) {
		reply := proc.Process(msgCtx, req)
		if err := natsutil.Publish(msgCtx, nc, cfg.ResultSubject, reply); err != nil {
			logger.Error("result publish failed", "requestId", req.RequestID, "err", err)
		}
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", cfg.RequestSubject, err)
	}
	defer sub.Unsubscribe()

	logger.Info("worker started",
		"nats", cfg.NATSURL,
		"request", cfg.RequestSubject,
		"result", cfg.ResultSubject,
	)

	<-ctx.Done()
	logger.Info("shutting down")
	return nil
}
