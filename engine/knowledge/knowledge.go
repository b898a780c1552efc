// Package knowledge holds the static diagnostic knowledge base: the category
// lexicon, severity and urgency phrase tiers, per-category repair templates,
// cost tables, and image recommendation phrase sets. The compiled-in defaults
// can be overridden section-by-section from a versioned YAML file loaded once
// at process start; the engine treats the resulting Base as immutable.
package knowledge

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/revivatech/diagnose/engine/domain"
)

// FallbackCategory is used whenever a symptom or image issue maps to no
// dedicated category. Lookups against it never fail.
const FallbackCategory = "hardware"

// Tier is one ordered phrase tier; the first tier whose phrases match wins.
type Tier struct {
	Level   string   `yaml:"level"`
	Phrases []string `yaml:"phrases"`
}

// TemplateCause is a cause entry inside a category template.
type TemplateCause struct {
	Name        string  `yaml:"name"`
	Probability float64 `yaml:"probability"`
	Impact      string  `yaml:"impact"`
}

// TemplateAction is an action entry inside a category template.
type TemplateAction struct {
	Name         string            `yaml:"name"`
	TimeEstimate string            `yaml:"timeEstimate"`
	SkillLevel   domain.SkillLevel `yaml:"skillLevel"`
	CostMin      int               `yaml:"costMin"`
	CostMax      int               `yaml:"costMax"`
}

// Template is the static per-category knowledge block used to populate a
// diagnostic result.
type Template struct {
	CategoryName       string           `yaml:"categoryName"`
	IssueName          string           `yaml:"issueName"`
	Description        string           `yaml:"description"`
	TechnicalDetails   string           `yaml:"technicalDetails"`
	Causes             []TemplateCause  `yaml:"causes"`
	Actions            []TemplateAction `yaml:"actions"`
	RepairTime         string           `yaml:"repairTime"`
	PreventiveMeasures []string         `yaml:"preventiveMeasures"`
	FollowUpActions    []string         `yaml:"followUpActions"`
	RiskFactors        []string         `yaml:"riskFactors"`
}

// CostBase is the per-category base cost tuple before the device multiplier.
type CostBase struct {
	PartsMin int `yaml:"partsMin"`
	PartsMax int `yaml:"partsMax"`
	LaborMin int `yaml:"laborMin"`
	LaborMax int `yaml:"laborMax"`
}

// Base is the full immutable knowledge base consumed by the pipeline.
type Base struct {
	Version string `yaml:"version"`

	// Lexicon maps category keys to their keyword terms.
	Lexicon map[string][]string `yaml:"lexicon"`

	// SeverityTiers and UrgencyTiers are checked in listed order against the
	// raw lowered symptom text. No match falls through to low.
	SeverityTiers []Tier `yaml:"severityTiers"`
	UrgencyTiers  []Tier `yaml:"urgencyTiers"`

	// Jargon terms raise text confidence when present.
	Jargon []string `yaml:"jargon"`

	Templates   map[string]Template               `yaml:"templates"`
	Costs       map[string]CostBase               `yaml:"costs"`
	Multipliers map[domain.DeviceCategory]float64 `yaml:"multipliers"`

	// ImageRecommendations maps issue categories to fixed recommendation
	// phrases; FallbackRecommendations applies to anything else.
	ImageRecommendations    map[string][]string `yaml:"imageRecommendations"`
	FallbackRecommendations []string            `yaml:"fallbackRecommendations"`

	Currency string `yaml:"currency"`
}

// Default returns the compiled-in knowledge base.
func Default() *Base {
	return defaultBase()
}

// Load reads a YAML override file and merges it over the defaults.
func Load(path string) (*Base, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("knowledge: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse merges a YAML override over the defaults. Any section present and
// non-empty in the override replaces the corresponding default section
// wholesale; absent sections keep their defaults.
func Parse(data []byte) (*Base, error) {
	var override Base
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("knowledge: parse yaml: %w", err)
	}

	base := defaultBase()
	if override.Version != "" {
		base.Version = override.Version
	}
	if len(override.Lexicon) > 0 {
		base.Lexicon = override.Lexicon
	}
	if len(override.SeverityTiers) > 0 {
		base.SeverityTiers = override.SeverityTiers
	}
	if len(override.UrgencyTiers) > 0 {
		base.UrgencyTiers = override.UrgencyTiers
	}
	if len(override.Jargon) > 0 {
		base.Jargon = override.Jargon
	}
	if len(override.Templates) > 0 {
		for k, v := range override.Templates {
			base.Templates[k] = v
		}
	}
	if len(override.Costs) > 0 {
		for k, v := range override.Costs {
			base.Costs[k] = v
		}
	}
	if len(override.Multipliers) > 0 {
		base.Multipliers = override.Multipliers
	}
	if len(override.ImageRecommendations) > 0 {
		base.ImageRecommendations = override.ImageRecommendations
	}
	if len(override.FallbackRecommendations) > 0 {
		base.FallbackRecommendations = override.FallbackRecommendations
	}
	if override.Currency != "" {
		base.Currency = override.Currency
	}

	if err := base.Validate(); err != nil {
		return nil, err
	}
	return base, nil
}

// Validate checks structural invariants of the knowledge base.
func (b *Base) Validate() error {
	if len(b.Lexicon) == 0 {
		return fmt.Errorf("knowledge: lexicon is empty")
	}
	for cat, terms := range b.Lexicon {
		if len(terms) == 0 {
			return fmt.Errorf("knowledge: lexicon category %q has no terms", cat)
		}
	}
	if _, ok := b.Templates[FallbackCategory]; !ok {
		return fmt.Errorf("knowledge: missing %q fallback template", FallbackCategory)
	}
	if _, ok := b.Costs[FallbackCategory]; !ok {
		return fmt.Errorf("knowledge: missing %q fallback cost base", FallbackCategory)
	}
	for name, t := range b.Templates {
		for _, c := range t.Causes {
			if c.Probability < 0 || c.Probability > 1 {
				return fmt.Errorf("knowledge: template %q cause %q probability %v out of [0,1]", name, c.Name, c.Probability)
			}
		}
		for _, a := range t.Actions {
			if a.CostMin < 0 || a.CostMax < a.CostMin {
				return fmt.Errorf("knowledge: template %q action %q has invalid cost range [%d,%d]", name, a.Name, a.CostMin, a.CostMax)
			}
		}
	}
	for name, c := range b.Costs {
		if c.PartsMin < 0 || c.PartsMax < c.PartsMin || c.LaborMin < 0 || c.LaborMax < c.LaborMin {
			return fmt.Errorf("knowledge: cost base %q is not a valid range", name)
		}
	}
	for _, tiers := range [][]Tier{b.SeverityTiers, b.UrgencyTiers} {
		for _, tier := range tiers {
			if tier.Level == "" || len(tier.Phrases) == 0 {
				return fmt.Errorf("knowledge: tier %q must have a level and phrases", tier.Level)
			}
		}
	}
	return nil
}

// TemplateFor returns the template for a category, falling back to the
// generic hardware template. Never returns a zero template.
func (b *Base) TemplateFor(category string) Template {
	if t, ok := b.Templates[category]; ok {
		return t
	}
	return b.Templates[FallbackCategory]
}

// CostFor returns the base cost tuple for a category, falling back to the
// generic hardware table.
func (b *Base) CostFor(category string) CostBase {
	if c, ok := b.Costs[category]; ok {
		return c
	}
	return b.Costs[FallbackCategory]
}

// MultiplierFor returns the device-class cost multiplier, defaulting to 1.0
// for unknown classes.
func (b *Base) MultiplierFor(dc domain.DeviceCategory) float64 {
	if m, ok := b.Multipliers[dc]; ok {
		return m
	}
	return 1.0
}

// RecommendationsFor returns the fixed image recommendation phrases for an
// issue category, or the generic fallback list.
func (b *Base) RecommendationsFor(category string) []string {
	if r, ok := b.ImageRecommendations[category]; ok {
		return r
	}
	return b.FallbackRecommendations
}

// Categories returns the lexicon category keys in a stable scan order: the
// canonical order first, then any override-added categories sorted by name.
func (b *Base) Categories() []string {
	out := make([]string, 0, len(b.Lexicon))
	seen := make(map[string]bool, len(b.Lexicon))
	for _, c := range categoryOrder {
		if _, ok := b.Lexicon[c]; ok {
			out = append(out, c)
			seen[c] = true
		}
	}
	var extra []string
	for c := range b.Lexicon {
		if !seen[c] {
			extra = append(extra, c)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}
