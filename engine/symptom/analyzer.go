// Package symptom analyzes free-text symptom descriptions against the
// diagnostic lexicon. Matching is deliberately permissive: tokens and lexicon
// terms match on substring containment in either direction, trading precision
// for recall on short user descriptions.
package symptom

import (
	"fmt"
	"slices"
	"strings"

	"github.com/revivatech/diagnose/engine/domain"
	"github.com/revivatech/diagnose/engine/knowledge"
)

// Analyzer extracts keywords, categories, severity, urgency, and a confidence
// score from a symptom description. It is stateless and safe for concurrent use.
type Analyzer struct {
	kb *knowledge.Base
}

// New creates an Analyzer over the given knowledge base.
func New(kb *knowledge.Base) *Analyzer {
	return &Analyzer{kb: kb}
}

// Analyze runs the full text analysis. It fails only on empty or
// whitespace-only symptoms; every other input produces a result.
func (a *Analyzer) Analyze(symptoms string, device domain.DeviceInfo) (domain.TextAnalysis, error) {
	if strings.TrimSpace(symptoms) == "" {
		return domain.TextAnalysis{}, domain.NewValidationError("symptoms", symptoms, domain.ErrEmptySymptoms)
	}

	lower := strings.ToLower(symptoms)
	tokens := strings.Fields(lower)

	keywords := a.extractKeywords(tokens)
	categories := a.categorize(keywords)
	severity := matchTiered(lower, a.kb.SeverityTiers, string(domain.SeverityLow))
	urgency := matchTiered(lower, a.kb.UrgencyTiers, string(domain.UrgencyLow))
	confidence := a.score(symptoms, keywords, categories, lower)

	analysis := domain.TextAnalysis{
		ExtractedKeywords: keywords,
		Categories:        categories,
		Severity:          domain.Severity(severity),
		Urgency:           domain.Urgency(urgency),
		Confidence:        confidence,
	}
	analysis.Reasoning = a.reason(analysis)
	return analysis, nil
}

// termMatch applies the bidirectional substring rule: containment in either
// direction counts, with no length floor. Known to over-match short fragments
// ("key" inside "turkey", "on" inside "connection"); that tradeoff favors
// recall and is covered by tests.
func termMatch(token, term string) bool {
	return strings.Contains(token, term) || strings.Contains(term, token)
}

// extractKeywords collects the unique tokens that match any lexicon term,
// in input order.
func (a *Analyzer) extractKeywords(tokens []string) []string {
	seen := make(map[string]bool)
	var keywords []string
	for _, tok := range tokens {
		if seen[tok] {
			continue
		}
		if a.tokenRelevant(tok) {
			seen[tok] = true
			keywords = append(keywords, tok)
		}
	}
	return keywords
}

func (a *Analyzer) tokenRelevant(token string) bool {
	for _, terms := range a.kb.Lexicon {
		for _, term := range terms {
			if termMatch(token, term) {
				return true
			}
		}
	}
	return false
}

// categorize marks each category whose lexicon intersects the keyword set.
// Zero matches default to the hardware fallback; the analyzer never returns
// an empty category list.
func (a *Analyzer) categorize(keywords []string) []string {
	var categories []string
	for _, cat := range a.kb.Categories() {
		if a.categoryMatches(cat, keywords) {
			categories = append(categories, cat)
		}
	}
	if len(categories) == 0 {
		categories = []string{knowledge.FallbackCategory}
	}
	return categories
}

func (a *Analyzer) categoryMatches(category string, keywords []string) bool {
	for _, term := range a.kb.Lexicon[category] {
		for _, kw := range keywords {
			if termMatch(kw, term) {
				return true
			}
		}
	}
	return false
}

// matchTiered scans ordered phrase tiers against the raw lowered text; the
// first tier with any match wins.
func matchTiered(lower string, tiers []knowledge.Tier, fallback string) string {
	for _, tier := range tiers {
		for _, phrase := range tier.Phrases {
			if strings.Contains(lower, phrase) {
				return tier.Level
			}
		}
	}
	return fallback
}

// score computes the additive confidence heuristic, clamped at 0.95.
func (a *Analyzer) score(symptoms string, keywords, categories []string, lower string) float64 {
	conf := 0.5
	if len(symptoms) > 50 {
		conf += 0.1
	}
	if len(symptoms) > 100 {
		conf += 0.1
	}
	if len(keywords) > 3 {
		conf += 0.1
	}
	if len(keywords) > 6 {
		conf += 0.1
	}
	if len(categories) > 1 {
		conf += 0.05
	}
	for _, j := range a.kb.Jargon {
		if strings.Contains(lower, j) {
			conf += 0.15
			break
		}
	}
	return domain.ClampConfidence(conf, domain.MaxTextConfidence)
}

// reason assembles a short human-readable explanation of the analysis.
func (a *Analyzer) reason(t domain.TextAnalysis) string {
	var clauses []string
	if len(t.ExtractedKeywords) > 5 {
		clauses = append(clauses, "detailed description provided")
	}
	if len(t.Categories) > 1 {
		clauses = append(clauses, "multiple system areas affected: "+strings.Join(t.Categories, ", "))
	}
	if t.Severity == domain.SeverityHigh || t.Severity == domain.SeverityCritical {
		clauses = append(clauses, "severity indicators suggest urgent attention")
	}
	if slices.Contains(t.Categories, "display") {
		clauses = append(clauses, "display-related symptoms identified")
	}
	if slices.Contains(t.Categories, "power") {
		clauses = append(clauses, "power subsystem symptoms identified")
	}
	if len(clauses) == 0 {
		return "Diagnosis based on symptom pattern matching against the repair knowledge base."
	}
	return fmt.Sprintf("Analysis notes: %s.", strings.Join(clauses, "; "))
}

