package main

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/revivatech/diagnose/engine/diagnose"
	"github.com/revivatech/diagnose/engine/domain"
	"github.com/revivatech/diagnose/engine/knowledge"
	"github.com/revivatech/diagnose/engine/similar"
)

type fakeRecorder struct {
	recorded []similar.Case
}

func (f *fakeRecorder) Record(_ context.Context, c similar.Case) error {
	f.recorded = append(f.recorded, c)
	return nil
}

func testProcessor(t *testing.T, cases caseRecorder, recordRate float64) *processor {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	engine := diagnose.New(knowledge.Default(), diagnose.Options{}, logger)
	return newProcessor(engine, cases, recordRate, nil, logger)
}

func TestProcessReturnsResults(t *testing.T) {
	proc := testProcessor(t, nil, 5)

	reply := proc.Process(context.Background(), DiagnoseRequest{
		RequestID: "req-1",
		Input: domain.DiagnosticInput{
			Symptoms:   "screen cracked and flickering",
			DeviceInfo: domain.DeviceInfo{Category: domain.DeviceLaptop},
		},
	})
	if reply.RequestID != "req-1" {
		t.Errorf("RequestID = %q", reply.RequestID)
	}
	if reply.Error != "" {
		t.Fatalf("unexpected error: %s", reply.Error)
	}
	if len(reply.Results) == 0 {
		t.Fatal("expected results")
	}
}

func TestProcessInvalidInputReportsError(t *testing.T) {
	proc := testProcessor(t, nil, 5)

	reply := proc.Process(context.Background(), DiagnoseRequest{
		RequestID: "req-2",
		Input:     domain.DiagnosticInput{Symptoms: "  "},
	})
	if reply.Error == "" {
		t.Fatal("expected an error in the reply")
	}
	if len(reply.Results) != 0 {
		t.Errorf("results should be empty, got %d", len(reply.Results))
	}
}

func TestProcessRecordsCase(t *testing.T) {
	rec := &fakeRecorder{}
	proc := testProcessor(t, rec, 100)

	proc.Process(context.Background(), DiagnoseRequest{
		RequestID: "req-3",
		Input: domain.DiagnosticInput{
			Symptoms:   "battery draining fast",
			DeviceInfo: domain.DeviceInfo{Category: domain.DeviceLaptop, Brand: "Dell"},
		},
	})
	if len(rec.recorded) != 1 {
		t.Fatalf("recorded %d cases, want 1", len(rec.recorded))
	}
	if rec.recorded[0].Brand != "Dell" {
		t.Errorf("case = %+v", rec.recorded[0])
	}
	if got := proc.processed.Value(); got != 1 {
		t.Errorf("processed counter = %d, want 1", got)
	}
	if got := proc.recorded.Value(); got != 1 {
		t.Errorf("recorded counter = %d, want 1", got)
	}
}

func TestProcessThrottlesRecording(t *testing.T) {
	rec := &fakeRecorder{}
	// Burst of 1 at a very slow refill: only the first record passes.
	proc := testProcessor(t, rec, 0.001)

	for i := 0; i < 5; i++ {
		proc.Process(context.Background(), DiagnoseRequest{
			Input: domain.DiagnosticInput{
				Symptoms:   "battery draining fast",
				DeviceInfo: domain.DeviceInfo{Category: domain.DeviceLaptop},
			},
		})
	}
	if len(rec.recorded) != 1 {
		t.Errorf("recorded %d cases, want 1 under throttle", len(rec.recorded))
	}
}
