// Package imaging aggregates per-image feature observations supplied by an
// upstream extractor. The engine never analyzes pixels itself; observations
// arrive pre-computed so a real vision model can be substituted without
// touching the pipeline.
package imaging

import (
	"github.com/revivatech/diagnose/engine/domain"
	"github.com/revivatech/diagnose/engine/knowledge"
	"github.com/revivatech/diagnose/pkg/fn"
)

// Analysis is one image's observation set with the condition rating resolved
// and fixed recommendations attached.
type Analysis struct {
	domain.ImageObservationSet
	Recommendations []string `json:"recommendations"`
}

// Analyzer derives condition ratings and recommendations for image
// observation sets. Stateless and safe for concurrent use.
type Analyzer struct {
	kb *knowledge.Base
}

// New creates an Analyzer over the given knowledge base.
func New(kb *knowledge.Base) *Analyzer {
	return &Analyzer{kb: kb}
}

// Analyze resolves each observation set. An empty input yields an empty
// output; the rest of the pipeline handles zero image evidence gracefully.
func (a *Analyzer) Analyze(images []domain.ImageObservationSet) []Analysis {
	return fn.ParMap(images, 4, func(img domain.ImageObservationSet) Analysis {
		if img.OverallCondition == "" {
			img.OverallCondition = conditionFromIssueCount(len(img.DetectedIssues))
		}
		return Analysis{
			ImageObservationSet: img,
			Recommendations:     a.recommend(img),
		}
	})
}

// conditionFromIssueCount derives an overall condition when the extractor
// did not supply one.
func conditionFromIssueCount(n int) domain.Condition {
	switch {
	case n == 0:
		return domain.ConditionGood
	case n == 1:
		return domain.ConditionFair
	case n == 2:
		return domain.ConditionPoor
	default:
		return domain.ConditionCritical
	}
}

// recommend collects the fixed phrase set for each distinct issue category in
// the image, falling back to the generic maintenance advice.
func (a *Analyzer) recommend(img domain.ImageObservationSet) []string {
	if len(img.DetectedIssues) == 0 {
		return a.kb.RecommendationsFor("")
	}
	var recs []string
	seen := make(map[string]bool)
	for _, issue := range img.DetectedIssues {
		if seen[issue.Type] {
			continue
		}
		seen[issue.Type] = true
		recs = append(recs, a.kb.RecommendationsFor(issue.Type)...)
	}
	return recs
}

// SeverityFor maps an image condition to the severity assigned to results
// built from that image's issues.
func SeverityFor(c domain.Condition) domain.Severity {
	switch c {
	case domain.ConditionCritical:
		return domain.SeverityCritical
	case domain.ConditionPoor:
		return domain.SeverityHigh
	case domain.ConditionFair:
		return domain.SeverityMedium
	default:
		return domain.SeverityLow
	}
}
