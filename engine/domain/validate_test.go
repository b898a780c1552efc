package domain

import (
	"errors"
	"testing"
)

func TestValidateInput(t *testing.T) {
	tests := []struct {
		name    string
		input   DiagnosticInput
		wantErr error
	}{
		{
			name:  "valid",
			input: DiagnosticInput{Symptoms: "screen is cracked", DeviceInfo: DeviceInfo{Category: DevicePhone}},
		},
		{
			name:    "empty symptoms",
			input:   DiagnosticInput{Symptoms: "", DeviceInfo: DeviceInfo{Category: DevicePhone}},
			wantErr: ErrEmptySymptoms,
		},
		{
			name:    "whitespace only symptoms",
			input:   DiagnosticInput{Symptoms: "   \t\n ", DeviceInfo: DeviceInfo{Category: DeviceLaptop}},
			wantErr: ErrEmptySymptoms,
		},
		{
			name:    "missing device category",
			input:   DiagnosticInput{Symptoms: "battery drains fast"},
			wantErr: ErrMissingDevice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInput(tt.input)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
			if !IsInvalidInput(err) {
				t.Errorf("IsInvalidInput(%v) = false, want true", err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("expected *ValidationError, got %T", err)
			}
		})
	}
}

func TestClampConfidence(t *testing.T) {
	tests := []struct {
		in, max, want float64
	}{
		{0.5, 0.95, 0.5},
		{1.2, 0.95, 0.95},
		{0.95, 0.95, 0.95},
		{-0.1, 0.95, 0},
		{0.99, 1.0, 0.99},
	}
	for _, tt := range tests {
		if got := ClampConfidence(tt.in, tt.max); got != tt.want {
			t.Errorf("ClampConfidence(%v, %v) = %v, want %v", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestSeverityRankOrdering(t *testing.T) {
	if SeverityRank[SeverityCritical] <= SeverityRank[SeverityHigh] ||
		SeverityRank[SeverityHigh] <= SeverityRank[SeverityMedium] ||
		SeverityRank[SeverityMedium] <= SeverityRank[SeverityLow] {
		t.Fatal("severity ranks must be strictly ordered critical > high > medium > low")
	}
}
