package domain

import "strings"

// ValidateInput validates a DiagnosticInput at the pipeline entry point.
// Symptoms must contain at least one non-whitespace character and the device
// category must be set. Everything else degrades gracefully downstream.
func ValidateInput(in DiagnosticInput) error {
	if strings.TrimSpace(in.Symptoms) == "" {
		return NewValidationError("symptoms", in.Symptoms, ErrEmptySymptoms)
	}
	if in.DeviceInfo.Category == "" {
		return NewValidationError("deviceInfo.category", "", ErrMissingDevice)
	}
	return nil
}

// ClampConfidence bounds a confidence score to [0, max]. Scores computed
// above the cap are clamped, never rejected.
func ClampConfidence(v, max float64) float64 {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

// MaxTextConfidence is the hard cap on any text-derived confidence score.
// Text alone is never fully certain.
const MaxTextConfidence = 0.95
