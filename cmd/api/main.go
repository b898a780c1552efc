// Package main implements the diagnostic API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/revivatech/diagnose/engine/catalog"
	"github.com/revivatech/diagnose/engine/diagnose"
	"github.com/revivatech/diagnose/engine/knowledge"
	"github.com/revivatech/diagnose/engine/similar"
	"github.com/revivatech/diagnose/pkg/metrics"
	"github.com/revivatech/diagnose/pkg/mid"
	"github.com/revivatech/diagnose/pkg/resilience"
)

// Config holds all environment-based configuration. Neo4j and Qdrant are
// optional backends; leaving their URLs empty runs the API engine-only.
type Config struct {
	Port          string
	KnowledgePath string
	Neo4jURL      string
	Neo4jUser     string
	Neo4jPass     string
	QdrantURL     string
	Collection    string
	CORSOrigin    string
	RateLimit     float64
	RateBurst     int
}

func loadConfig() Config {
	return Config{
		Port:          envOr("PORT", "8080"),
		KnowledgePath: envOr("KNOWLEDGE_PATH", ""),
		Neo4jURL:      envOr("NEO4J_URL", ""),
		Neo4jUser:     envOr("NEO4J_USER", "neo4j"),
		Neo4jPass:     envOr("NEO4J_PASS", "password"),
		QdrantURL:     envOr("QDRANT_URL", ""),
		Collection:    envOr("QDRANT_COLLECTION", "diagnostic_cases"),
		CORSOrigin:    envOr("CORS_ORIGIN", "*"),
		RateLimit:     envFloat("RATE_LIMIT_RPS", 20),
		RateBurst:     envInt("RATE_LIMIT_BURST", 40),
	}
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

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
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
		logger.Error("server exited with error", "err", err)
		os.Exit(1)
	}
}

func run(cfg Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Knowledge base ---
	kb := knowledge.Default()
	if cfg.KnowledgePath != "" {
		loaded, err := knowledge.Load(cfg.KnowledgePath)
		if err != nil {
			return fmt.Errorf("load knowledge base: %w", err)
		}
		kb = loaded
		logger.Info("knowledge base loaded", "path", cfg.KnowledgePath, "version", kb.Version)
	}

	engine := diagnose.New(kb, diagnose.Options{}, logger)

	// --- Device catalog (optional) ---
	var resolver *catalog.Resolver
	if cfg.Neo4jURL != "" {
		driver, err := neo4j.NewDriverWithContext(cfg.Neo4jURL, neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPass, ""))
		if err != nil {
			return fmt.Errorf("neo4j driver: %w", err)
		}
		defer driver.Close(ctx)
		resolver = catalog.NewResolver(catalog.NewStore(driver), 512, 10*time.Minute, logger)
		logger.Info("device catalog enabled", "url", cfg.Neo4jURL)
	} else {
		resolver = catalog.NewResolver(nil, 512, 10*time.Minute, logger)
	}

	// --- Similar-case service (optional) ---
	var cases *similar.Service
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
		logger.Info("similar-case service enabled", "url", cfg.QdrantURL, "collection", cfg.Collection)
	}

	// --- Metrics ---
	reg := metrics.New()

	// --- HTTP server ---
	srv := newServer(engine, resolver, cases, reg, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", srv.handleHealth)
	mux.HandleFunc("POST /api/diagnose", srv.handleDiagnose)
	mux.HandleFunc("POST /api/similar", srv.handleSimilar)
	mux.Handle("GET /metrics", reg.Handler())

	limiter := resilience.NewLimiter(resilience.LimiterOpts{Rate: cfg.RateLimit, Burst: cfg.RateBurst})
	handler := mid.Chain(mux,
		mid.Recover(logger),
		mid.Logger(logger),
		mid.CORS(cfg.CORSOrigin),
		mid.RateLimit(limiter),
		mid.OTel("diagnose-api"),
	)

	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("api server starting", "port", cfg.Port)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutCtx)
}
