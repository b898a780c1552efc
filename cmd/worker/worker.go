package main

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/revivatech/diagnose/engine/diagnose"
	"github.com/revivatech/diagnose/engine/domain"
	"github.com/revivatech/diagnose/engine/similar"
	"github.com/revivatech/diagnose/pkg/metrics"
)

// DiagnoseRequest is the message consumed from the request subject.
type DiagnoseRequest struct {
	RequestID string                 `json:"requestId"`
	Input     domain.DiagnosticInput `json:"input"`
}

// DiagnoseReply is the message published to the result subject.
type DiagnoseReply struct {
	RequestID string                    `json:"requestId"`
	Results   []domain.DiagnosticResult `json:"results,omitempty"`
	Error     string                    `json:"error,omitempty"`
}

// caseRecorder narrows similar.Service for testing.
type caseRecorder interface {
	Record(ctx context.Context, c similar.Case) error
}

// processor runs diagnoses for queued requests. Case recording is throttled
// so a burst of requests cannot flood the vector store.
type processor struct {
	engine   *diagnose.Engine
	cases    caseRecorder
	throttle *rate.Limiter
	logger   *slog.Logger

	processed *metrics.Counter
	rejected  *metrics.Counter
	recorded  *metrics.Counter
	duration  *metrics.Histogram
}

func newProcessor(engine *diagnose.Engine, cases caseRecorder, recordsPerSec float64, reg *metrics.Registry, logger *slog.Logger) *processor {
	if logger == nil {
		logger = slog.Default()
	}
	if reg == nil {
		reg = metrics.New()
	}
	return &processor{
		engine:    engine,
		cases:     cases,
		throttle:  rate.NewLimiter(rate.Limit(recordsPerSec), 1),
		logger:    logger,
		processed: reg.Counter("worker_requests_total", "Requests processed"),
		rejected:  reg.Counter("worker_rejected_total", "Requests rejected as invalid"),
		recorded:  reg.Counter("worker_cases_recorded_total", "Cases written to the similarity store"),
		duration:  reg.Histogram("worker_process_duration_seconds", "Per-request processing time", nil),
	}
}

// Process runs one diagnosis. Failures are reported in the reply, never as
// a dropped message.
func (p *processor) Process(ctx context.Context, req DiagnoseRequest) DiagnoseReply {
	start := time.Now()
	defer p.duration.Since(start)
	p.processed.Inc()

	results, err := p.engine.Diagnose(ctx, req.Input)
	if err != nil {
		p.rejected.Inc()
		p.logger.Warn("diagnosis rejected", "requestId", req.RequestID, "err", err)
		return DiagnoseReply{RequestID: req.RequestID, Error: err.Error()}
	}

	p.record(ctx, req.Input, results)
	return DiagnoseReply{RequestID: req.RequestID, Results: results}
}

func (p *processor) record(ctx context.Context, input domain.DiagnosticInput, results []domain.DiagnosticResult) {
	if p.cases == nil || len(results) == 0 {
		return
	}
	if !p.throttle.Allow() {
		return
	}
	top := results[0]
	err := p.cases.Record(ctx, similar.Case{
		ID:       top.ID,
		Symptoms: input.Symptoms,
		Category: top.Category,
		Issue:    top.Issue,
		Brand:    input.DeviceInfo.Brand,
		Model:    input.DeviceInfo.Model,
	})
	if err != nil {
		p.logger.Warn("case recording failed", "err", err)
		return
	}
	p.recorded.Inc()
}
