// Package diagnose orchestrates the diagnostic inference pipeline. It accepts
// a symptom description, device metadata, and optional pre-computed image
// observations, and returns a ranked set of structured repair diagnoses.
//
// The engine is a pure function of its inputs: no persistence, no caching,
// no side effects. It is safe to invoke concurrently from multiple callers.
package diagnose

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/revivatech/diagnose/engine/costing"
	"github.com/revivatech/diagnose/engine/domain"
	"github.com/revivatech/diagnose/engine/imaging"
	"github.com/revivatech/diagnose/engine/knowledge"
	"github.com/revivatech/diagnose/engine/symptom"
	"github.com/revivatech/diagnose/pkg/fn"
)

// Options configures engine behaviour. The zero value is usable; Now and
// NewID exist so tests can pin time and identifiers.
type Options struct {
	Now   func() time.Time
	NewID func() string
}

// Engine runs the full diagnostic pipeline.
type Engine struct {
	kb     *knowledge.Base
	text   *symptom.Analyzer
	images *imaging.Analyzer
	costs  *costing.Estimator
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// New creates an Engine over the given knowledge base.
func New(kb *knowledge.Base, opts Options, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	newID := opts.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	return &Engine{
		kb:     kb,
		text:   symptom.New(kb),
		images: imaging.New(kb),
		costs:  costing.New(kb),
		logger: logger,
		now:    now,
		newID:  newID,
	}
}

// state threads intermediate artifacts through the pipeline stages.
type state struct {
	input   domain.DiagnosticInput
	text    domain.TextAnalysis
	images  []imaging.Analysis
	results []domain.DiagnosticResult
}

// Diagnose runs validation, text and image analysis, synthesis, and
// dedup/ranking. The only failure mode is invalid input; everything else
// degrades to generic fallbacks and succeeds with a non-empty result list.
func (e *Engine) Diagnose(ctx context.Context, input domain.DiagnosticInput) ([]domain.DiagnosticResult, error) {
	pipe := fn.Pipeline(
		fn.TracedStage("diagnose.validate", e.validate),
		fn.TracedStage("diagnose.analyze", e.analyze),
		fn.TapStage(func(_ context.Context, s state) {
			e.logger.Debug("analysis done",
				"categories", s.text.Categories,
				"severity", s.text.Severity,
				"images", len(s.images),
			)
		}),
		fn.TracedStage("diagnose.synthesize", fn.MapStage(e.synthesize)),
		fn.TracedStage("diagnose.finalize", fn.MapStage(finalize)),
	)

	out := pipe(ctx, state{input: input})
	final, err := out.Unwrap()
	if err != nil {
		return nil, err
	}

	e.logger.Info("diagnosis complete",
		"categories", len(final.text.Categories),
		"images", len(final.images),
		"results", len(final.results),
		"severity", final.text.Severity,
	)
	return final.results, nil
}

func (e *Engine) validate(_ context.Context, s state) fn.Result[state] {
	if err := domain.ValidateInput(s.input); err != nil {
		return fn.Err[state](err)
	}
	return fn.Ok(s)
}

// analyze runs text and image analysis concurrently; neither depends on the
// other's output.
func (e *Engine) analyze(_ context.Context, s state) fn.Result[state] {
	var (
		wg      sync.WaitGroup
		textErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.text, textErr = e.text.Analyze(s.input.Symptoms, s.input.DeviceInfo)
	}()
	go func() {
		defer wg.Done()
		s.images = e.images.Analyze(s.input.Images)
	}()
	wg.Wait()

	if textErr != nil {
		return fn.Err[state](textErr)
	}
	return fn.Ok(s)
}

// warranty applies the explicit status when present, otherwise infers from
// the manufacture year against the engine clock.
func (e *Engine) warranty(d domain.DeviceInfo) bool {
	switch d.WarrantyStatus {
	case domain.WarrantyActive:
		return true
	case domain.WarrantyExpired, domain.WarrantyUnknown:
		return false
	}
	if d.Year > 0 {
		return e.now().Year()-d.Year <= 1
	}
	return false
}
