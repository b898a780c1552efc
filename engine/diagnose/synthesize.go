package diagnose

import (
	"github.com/revivatech/diagnose/engine/domain"
	"github.com/revivatech/diagnose/engine/imaging"
	"github.com/revivatech/diagnose/engine/knowledge"
	"github.com/revivatech/diagnose/pkg/fn"
)

// visualCategory labels results derived purely from image observations,
// with no corroborating text category.
const visualCategory = "Visual Damage Assessment"

const (
	imageBoost       = 0.15
	visualTimeGuess  = "1-2 hours"
	imagePrefix      = "Image-detected: "
	visualTechDetail = "Finding originates from automated visual inspection; confirm with a bench diagnostic before ordering parts."
)

// visualCauses is the fixed cause distribution attached to image-only
// findings, where text gives no signal to refine it.
var visualCauses = []domain.Cause{
	{Cause: "Physical impact or drop", Probability: 0.6, Impact: "Localized damage at the point of impact"},
	{Cause: "Manufacturing defect", Probability: 0.2, Impact: "May recur after repair if systemic"},
	{Cause: "Normal wear and tear", Probability: 0.2, Impact: "Gradual degradation, low recurrence risk"},
}

// synthesize builds one result per text category and one per image-detected
// issue type not already covered by a text category.
func (e *Engine) synthesize(s state) state {
	warranty := e.warranty(s.input.DeviceInfo)

	covered := make(map[string]bool, len(s.text.Categories))
	for _, cat := range s.text.Categories {
		covered[cat] = true
		s.results = append(s.results, e.textResult(cat, s, warranty))
	}

	for i := range s.images {
		for _, issue := range s.images[i].DetectedIssues {
			if covered[issue.Type] {
				continue
			}
			s.results = append(s.results, e.imageResult(issue, &s.images[i], s.input.DeviceInfo, warranty))
		}
	}
	return s
}

// textResult fills a result from the category template. Corroborating image
// evidence boosts confidence by a fixed step, still capped.
func (e *Engine) textResult(category string, s state, warranty bool) domain.DiagnosticResult {
	tmpl := e.kb.TemplateFor(category)
	evidence := evidenceFor(category, s.images)

	confidence := s.text.Confidence
	if len(evidence) > 0 {
		confidence = domain.ClampConfidence(confidence+imageBoost, domain.MaxTextConfidence)
	}

	return domain.DiagnosticResult{
		ID:                 e.newID(),
		Confidence:         confidence,
		Category:           tmpl.CategoryName,
		Issue:              tmpl.IssueName,
		Severity:           s.text.Severity,
		Description:        tmpl.Description,
		TechnicalDetails:   tmpl.TechnicalDetails,
		PossibleCauses:     causesFrom(tmpl.Causes),
		RecommendedActions: actionsFrom(tmpl.Actions, e.kb.Currency),
		EstimatedCost:      e.costs.Estimate(category, s.input.DeviceInfo.Category),
		Urgency:            s.text.Urgency,
		RepairTime:         tmpl.RepairTime,
		Warranty:           warranty,
		PreventiveMeasures: orEmpty(tmpl.PreventiveMeasures),
		FollowUpActions:    orEmpty(tmpl.FollowUpActions),
		RiskFactors:        orEmpty(tmpl.RiskFactors),
		ImageEvidence:      evidence,
	}
}

// imageResult fills a result for a single visually detected issue. The
// observation confidence passes through unboosted.
func (e *Engine) imageResult(issue domain.IssueObservation, img *imaging.Analysis, device domain.DeviceInfo, warranty bool) domain.DiagnosticResult {
	urgency := domain.UrgencyMedium
	if img.OverallCondition == domain.ConditionCritical {
		urgency = domain.UrgencyHigh
	}

	actions := make([]domain.Action, 0, len(img.Recommendations))
	for i, rec := range img.Recommendations {
		actions = append(actions, domain.Action{
			Action:       rec,
			Priority:     i + 1,
			TimeEstimate: visualTimeGuess,
			SkillLevel:   domain.SkillProfessional,
		})
	}

	return domain.DiagnosticResult{
		ID:                 e.newID(),
		Confidence:         domain.ClampConfidence(issue.Confidence, domain.MaxTextConfidence),
		Category:           visualCategory,
		Issue:              imagePrefix + issue.Description,
		Severity:           imaging.SeverityFor(img.OverallCondition),
		Description:        issue.Description,
		TechnicalDetails:   visualTechDetail,
		PossibleCauses:     append([]domain.Cause(nil), visualCauses...),
		RecommendedActions: actions,
		EstimatedCost:      e.costs.Estimate(issue.Type, device.Category),
		Urgency:            urgency,
		RepairTime:         visualTimeGuess,
		Warranty:           warranty,
		PreventiveMeasures: []string{},
		FollowUpActions:    []string{},
		RiskFactors:        []string{},
		ImageEvidence:      []domain.ImageObservationSet{img.ImageObservationSet},
	}
}

// evidenceFor returns the observation sets that contain at least one detected
// issue of the given category.
func evidenceFor(category string, images []imaging.Analysis) []domain.ImageObservationSet {
	matching := fn.Filter(images, func(a imaging.Analysis) bool {
		for _, issue := range a.DetectedIssues {
			if issue.Type == category {
				return true
			}
		}
		return false
	})
	out := fn.Map(matching, func(a imaging.Analysis) domain.ImageObservationSet {
		return a.ImageObservationSet
	})
	if out == nil {
		out = []domain.ImageObservationSet{}
	}
	return out
}

func causesFrom(causes []knowledge.TemplateCause) []domain.Cause {
	return fn.Map(causes, func(c knowledge.TemplateCause) domain.Cause {
		return domain.Cause{Cause: c.Name, Probability: c.Probability, Impact: c.Impact}
	})
}

func actionsFrom(actions []knowledge.TemplateAction, currency string) []domain.Action {
	out := make([]domain.Action, 0, len(actions))
	for i, a := range actions {
		out = append(out, domain.Action{
			Action:       a.Name,
			Priority:     i + 1,
			Cost:         &domain.CostRange{Min: a.CostMin, Max: a.CostMax, Currency: currency},
			TimeEstimate: a.TimeEstimate,
			SkillLevel:   a.SkillLevel,
		})
	}
	return out
}

func orEmpty(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
