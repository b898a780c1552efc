package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/revivatech/diagnose/engine/catalog"
	"github.com/revivatech/diagnose/engine/diagnose"
	"github.com/revivatech/diagnose/engine/domain"
	"github.com/revivatech/diagnose/engine/similar"
	"github.com/revivatech/diagnose/pkg/metrics"
)

// deviceResolver narrows catalog.Resolver for testing.
type deviceResolver interface {
	Resolve(ctx context.Context, text string) (domain.DeviceInfo, bool)
}

// caseService narrows similar.Service for testing.
type caseService interface {
	Record(ctx context.Context, c similar.Case) error
	Similar(ctx context.Context, symptoms string, topK int, category string) ([]similar.Hit, error)
}

type server struct {
	engine   *diagnose.Engine
	resolver deviceResolver
	cases    caseService
	logger   *slog.Logger

	diagnoses *metrics.Counter
	failures  *metrics.Counter
	latency   *metrics.Histogram
}

func newServer(engine *diagnose.Engine, resolver deviceResolver, cases caseService, reg *metrics.Registry, logger *slog.Logger) *server {
	return &server{
		engine:   engine,
		resolver: resolver,
		cases:    cases,
		logger:   logger,

		diagnoses: reg.Counter("diagnose_requests_total", "Total diagnosis requests"),
		failures:  reg.Counter("diagnose_failures_total", "Diagnosis requests rejected or failed"),
		latency:   reg.Histogram("diagnose_duration_seconds", "Diagnosis latency", nil),
	}
}

func (s *server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// DiagnoseResponse is the JSON response for POST /api/diagnose.
type DiagnoseResponse struct {
	Results []domain.DiagnosticResult `json:"results"`
	Device  domain.DeviceInfo         `json:"device"`
}

func (s *server) handleDiagnose(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	s.diagnoses.Inc()

	var input domain.DiagnosticInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.failures.Inc()
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Fill missing device metadata from mentions in the symptom text.
	if input.DeviceInfo.Category == "" && s.resolver != nil {
		if info, ok := s.resolver.Resolve(r.Context(), input.Symptoms); ok {
			input.DeviceInfo = info
		}
	}

	results, err := s.engine.Diagnose(r.Context(), input)
	if err != nil {
		s.failures.Inc()
		if domain.IsInvalidInput(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("diagnosis failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	s.recordCase(r.Context(), input, results)
	s.latency.Since(start)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(DiagnoseResponse{Results: results, Device: input.DeviceInfo})
}

// recordCase stores the top result as a historical case for later similarity
// retrieval. Failures only log; they never affect the response.
func (s *server) recordCase(ctx context.Context, input domain.DiagnosticInput, results []domain.DiagnosticResult) {
	if s.cases == nil || len(results) == 0 {
		return
	}
	top := results[0]
	err := s.cases.Record(ctx, similar.Case{
		ID:       top.ID,
		Symptoms: input.Symptoms,
		Category: top.Category,
		Issue:    top.Issue,
		Brand:    input.DeviceInfo.Brand,
		Model:    input.DeviceInfo.Model,
	})
	if err != nil {
		s.logger.Warn("case recording failed", "err", err)
	}
}

// SimilarRequest is the JSON body for POST /api/similar.
type SimilarRequest struct {
	Symptoms string `json:"symptoms"`
	Category string `json:"category,omitempty"`
	TopK     int    `json:"topK,omitempty"`
}

func (s *server) handleSimilar(w http.ResponseWriter, r *http.Request) {
	if s.cases == nil {
		writeError(w, http.StatusServiceUnavailable, "similar-case service not configured")
		return
	}

	var req SimilarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Symptoms == "" {
		writeError(w, http.StatusBadRequest, "symptoms is required")
		return
	}

	hits, err := s.cases.Similar(r.Context(), req.Symptoms, req.TopK, req.Category)
	if err != nil {
		s.logger.Error("similar-case lookup failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"cases": hits})
}

// writeError emits a JSON error body. Messages pass through the encoder so
// quoted values inside validation errors stay valid JSON.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

var _ deviceResolver = (*catalog.Resolver)(nil)
var _ caseService = (*similar.Service)(nil)
