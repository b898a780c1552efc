package similar

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/revivatech/diagnose/pkg/fn"
	"github.com/revivatech/diagnose/pkg/resilience"
)

type fakeRecorder struct {
	recorded    []Case
	vectors     [][]float32
	upsertCalls int
	failUpserts int
	hits        []Hit
	searchErr   error
	lastTopK    int
	lastCat     string
}

func (f *fakeRecorder) Upsert(_ context.Context, c Case, embedding []float32) error {
	f.upsertCalls++
	if f.upsertCalls <= f.failUpserts {
		return errors.New("store unavailable")
	}
	f.recorded = append(f.recorded, c)
	f.vectors = append(f.vectors, embedding)
	return nil
}

// fastRetry keeps retry backoff out of test runtime.
var fastRetry = fn.RetryOpts{MaxAttempts: 3, InitialWait: time.Millisecond, MaxWait: time.Millisecond}

func (f *fakeRecorder) Search(_ context.Context, _ []float32, topK int, category string) ([]Hit, error) {
	f.lastTopK = topK
	f.lastCat = category
	return f.hits, f.searchErr
}

func TestServiceRecordAssignsID(t *testing.T) {
	rec := &fakeRecorder{}
	svc := NewService(rec, nil)

	err := svc.Record(context.Background(), Case{Symptoms: "screen cracked", Category: "display"})
	if err != nil {
		t.Fatal(err)
	}
	if len(rec.recorded) != 1 {
		t.Fatalf("recorded %d cases, want 1", len(rec.recorded))
	}
	if rec.recorded[0].ID == "" {
		t.Error("expected a generated ID")
	}
	if len(rec.vectors[0]) != Dims {
		t.Errorf("vector dims = %d", len(rec.vectors[0]))
	}
}

func TestServiceRecordKeepsID(t *testing.T) {
	rec := &fakeRecorder{}
	svc := NewService(rec, nil)

	if err := svc.Record(context.Background(), Case{ID: "case-42", Symptoms: "won't boot"}); err != nil {
		t.Fatal(err)
	}
	if rec.recorded[0].ID != "case-42" {
		t.Errorf("ID = %q, want case-42", rec.recorded[0].ID)
	}
}

func TestServiceRecordRejectsEmptySymptoms(t *testing.T) {
	svc := NewService(&fakeRecorder{}, nil)
	if err := svc.Record(context.Background(), Case{Symptoms: "   "}); err == nil {
		t.Fatal("expected error")
	}
}

func TestServiceSimilar(t *testing.T) {
	rec := &fakeRecorder{hits: []Hit{{Case: Case{ID: "c1"}, Score: 0.9}}}
	svc := NewService(rec, nil)

	hits, err := svc.Similar(context.Background(), "screen flicker", 0, "display")
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 || hits[0].ID != "c1" {
		t.Errorf("hits = %+v", hits)
	}
	if rec.lastTopK != 5 {
		t.Errorf("topK = %d, want default 5", rec.lastTopK)
	}
	if rec.lastCat != "display" {
		t.Errorf("category = %q", rec.lastCat)
	}
}

func TestServiceSimilarEmptySymptoms(t *testing.T) {
	svc := NewService(&fakeRecorder{}, nil)
	if _, err := svc.Similar(context.Background(), "", 5, ""); err == nil {
		t.Fatal("expected error")
	}
}

func TestServiceSearchErrorPropagates(t *testing.T) {
	rec := &fakeRecorder{searchErr: errors.New("down")}
	svc := NewService(rec, nil)
	if _, err := svc.Similar(context.Background(), "slow", 5, ""); err == nil {
		t.Fatal("expected error")
	}
}

func TestServiceRecordRetriesUpsert(t *testing.T) {
	rec := &fakeRecorder{failUpserts: 2}
	svc := NewService(rec, nil)
	svc.retry = fastRetry

	if err := svc.Record(context.Background(), Case{Symptoms: "no power"}); err != nil {
		t.Fatal(err)
	}
	if rec.upsertCalls != 3 {
		t.Errorf("upsert calls = %d, want 3", rec.upsertCalls)
	}
	if len(rec.recorded) != 1 {
		t.Errorf("recorded %d cases, want 1", len(rec.recorded))
	}
}

func TestServiceRecordGivesUpAfterRetries(t *testing.T) {
	rec := &fakeRecorder{failUpserts: 10}
	svc := NewService(rec, nil)
	svc.retry = fastRetry

	if err := svc.Record(context.Background(), Case{Symptoms: "no power"}); err == nil {
		t.Fatal("expected error")
	}
	if rec.upsertCalls != 3 {
		t.Errorf("upsert calls = %d, want 3", rec.upsertCalls)
	}
}

func TestServiceBreakerOpensOnRepeatedSearchFailures(t *testing.T) {
	rec := &fakeRecorder{searchErr: errors.New("down")}
	svc := NewService(rec, nil)

	for i := 0; i < 5; i++ {
		if _, err := svc.Similar(context.Background(), "slow", 5, ""); err == nil {
			t.Fatal("expected error")
		}
	}
	if got := svc.breaker.State(); got != resilience.StateOpen {
		t.Errorf("breaker state = %v, want open", got)
	}
}
