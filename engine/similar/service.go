package similar

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/revivatech/diagnose/pkg/fn"
	"github.com/revivatech/diagnose/pkg/resilience"
)

// Recorder is the storage backend consumed by the Service. *CaseStore
// satisfies it.
type Recorder interface {
	Upsert(ctx context.Context, c Case, embedding []float32) error
	Search(ctx context.Context, embedding []float32, topK int, category string) ([]Hit, error)
}

// Service embeds and records cases and answers similarity queries. All
// backend calls go through a shared circuit breaker so a down vector store
// fails fast instead of stalling every request.
type Service struct {
	store   Recorder
	breaker *resilience.Breaker
	retry   fn.RetryOpts
	logger  *slog.Logger
}

// NewService creates a Service over a case store.
func NewService(store Recorder, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:   store,
		breaker: resilience.NewBreaker(resilience.BreakerOpts{FailThreshold: 5, Timeout: 15 * time.Second}),
		retry: fn.RetryOpts{
			MaxAttempts: 3,
			InitialWait: 200 * time.Millisecond,
			MaxWait:     2 * time.Second,
			Jitter:      true,
		},
		logger: logger,
	}
}

// Record stores a resolved case. An empty ID gets a generated UUID. Upserts
// are retried since recording rides on the request path and the store may
// drop the odd write under load.
func (s *Service) Record(ctx context.Context, c Case) error {
	if strings.TrimSpace(c.Symptoms) == "" {
		return fmt.Errorf("similar: case has no symptoms")
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	embedding := Embed(c.Symptoms)

	res := fn.Retry(ctx, s.retry, func(ctx context.Context) fn.Result[struct{}] {
		err := s.breaker.Call(ctx, func(ctx context.Context) error {
			return s.store.Upsert(ctx, c, embedding)
		})
		if err != nil {
			return fn.Err[struct{}](err)
		}
		return fn.Ok(struct{}{})
	})
	if _, err := res.Unwrap(); err != nil {
		return err
	}
	s.logger.Debug("case recorded", "id", c.ID, "category", c.Category)
	return nil
}

// Similar returns up to topK historical cases closest to the symptoms,
// optionally restricted to one category.
func (s *Service) Similar(ctx context.Context, symptoms string, topK int, category string) ([]Hit, error) {
	if strings.TrimSpace(symptoms) == "" {
		return nil, fmt.Errorf("similar: empty symptoms")
	}
	if topK <= 0 {
		topK = 5
	}
	res := resilience.CallResult(s.breaker, ctx, func(ctx context.Context) fn.Result[[]Hit] {
		hits, err := s.store.Search(ctx, Embed(symptoms), topK, category)
		if err != nil {
			return fn.Err[[]Hit](err)
		}
		return fn.Ok(hits)
	})
	return res.Unwrap()
}
