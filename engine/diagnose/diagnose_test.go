package diagnose

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/revivatech/diagnose/engine/domain"
	"github.com/revivatech/diagnose/engine/knowledge"
)

func testEngine(t *testing.T) *Engine {
	t.Helper()
	var seq int
	return New(knowledge.Default(), Options{
		Now:   func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) },
		NewID: func() string { seq++; return fmt.Sprintf("result-%d", seq) },
	}, nil)
}

func laptop() domain.DeviceInfo {
	return domain.DeviceInfo{Category: domain.DeviceLaptop, Brand: "Lenovo", Model: "ThinkPad T14"}
}

func TestDiagnoseRejectsInvalidInput(t *testing.T) {
	e := testEngine(t)

	_, err := e.Diagnose(context.Background(), domain.DiagnosticInput{
		Symptoms:   "   ",
		DeviceInfo: laptop(),
	})
	if !errors.Is(err, domain.ErrEmptySymptoms) {
		t.Fatalf("err = %v, want ErrEmptySymptoms", err)
	}

	_, err = e.Diagnose(context.Background(), domain.DiagnosticInput{Symptoms: "screen broken"})
	if !errors.Is(err, domain.ErrMissingDevice) {
		t.Fatalf("err = %v, want ErrMissingDevice", err)
	}
}

func TestDiagnoseClassicDeadLaptop(t *testing.T) {
	e := testEngine(t)

	results, err := e.Diagnose(context.Background(), domain.DiagnosticInput{
		Symptoms:   "My laptop won't turn on at all, the battery seems completely dead and there is no charging light",
		DeviceInfo: laptop(),
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) == 0 {
		t.Fatal("expected at least one result")
	}

	var power *domain.DiagnosticResult
	for i := range results {
		if results[i].Category == "Power" {
			power = &results[i]
		}
	}
	if power == nil {
		t.Fatalf("no Power result in %+v", categoriesOf(results))
	}
	if power.Severity != domain.SeverityCritical {
		t.Errorf("severity = %s, want critical", power.Severity)
	}
	if power.Urgency != domain.UrgencyHigh {
		t.Errorf("urgency = %s, want high", power.Urgency)
	}
	if power.Confidence < 0.7 {
		t.Errorf("confidence = %v, want >= 0.7", power.Confidence)
	}
	if len(power.PossibleCauses) == 0 || len(power.RecommendedActions) == 0 {
		t.Error("expected template causes and actions")
	}
	if power.EstimatedCost.Total.Min != power.EstimatedCost.Parts.Min+power.EstimatedCost.Labor.Min {
		t.Error("total min must be sum of parts and labor mins")
	}
}

func TestDiagnoseVagueSymptoms(t *testing.T) {
	e := testEngine(t)

	results, err := e.Diagnose(context.Background(), domain.DiagnosticInput{
		Symptoms:   "It's been a bit slow lately",
		DeviceInfo: laptop(),
	})
	if err != nil {
		t.Fatal(err)
	}
	// The permissive matcher marks more than one category here ("a" sits
	// inside terms across the lexicon); performance must be among them.
	r := findCategory(t, results, "Performance")
	if r.Confidence >= 0.7 {
		t.Errorf("confidence = %v, want < 0.7 for a vague description", r.Confidence)
	}
	if r.Severity != domain.SeverityMedium {
		t.Errorf("severity = %s, want medium", r.Severity)
	}
}

func TestDiagnoseNoLexiconMatchFallsBack(t *testing.T) {
	e := testEngine(t)

	results, err := e.Diagnose(context.Background(), domain.DiagnosticInput{
		Symptoms:   "Something feels wrong somehow",
		DeviceInfo: laptop(),
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Category != "General Hardware" {
		t.Errorf("category = %q, want General Hardware fallback", results[0].Category)
	}
}

func TestDiagnoseImageBoostsMatchingCategory(t *testing.T) {
	e := testEngine(t)

	base := domain.DiagnosticInput{
		Symptoms:   "The screen is cracked and flickering in the corner",
		DeviceInfo: laptop(),
	}
	plain, err := e.Diagnose(context.Background(), base)
	if err != nil {
		t.Fatal(err)
	}

	withImage := base
	withImage.Images = []domain.ImageObservationSet{{
		SourceID: "img-1",
		DetectedIssues: []domain.IssueObservation{
			{Type: "display", Confidence: 0.9, Description: "cracked panel, upper left"},
		},
	}}
	boosted, err := e.Diagnose(context.Background(), withImage)
	if err != nil {
		t.Fatal(err)
	}

	pc := findCategory(t, plain, "Display")
	bc := findCategory(t, boosted, "Display")
	want := domain.ClampConfidence(pc.Confidence+0.15, domain.MaxTextConfidence)
	if bc.Confidence != want {
		t.Errorf("boosted confidence = %v, want %v", bc.Confidence, want)
	}
	if len(bc.ImageEvidence) != 1 || bc.ImageEvidence[0].SourceID != "img-1" {
		t.Errorf("image evidence = %+v, want the matching observation set", bc.ImageEvidence)
	}
	if len(pc.ImageEvidence) != 0 {
		t.Errorf("plain run should carry no image evidence, got %+v", pc.ImageEvidence)
	}
}

func TestDiagnoseImageOnlyIssues(t *testing.T) {
	e := testEngine(t)

	results, err := e.Diagnose(context.Background(), domain.DiagnosticInput{
		Symptoms:   "Dropped it yesterday, not sure what is broken",
		DeviceInfo: laptop(),
		Images: []domain.ImageObservationSet{{
			SourceID: "img-9",
			DetectedIssues: []domain.IssueObservation{
				{Type: "liquid", Confidence: 0.8, Description: "corrosion residue near hinge"},
				{Type: "physical", Confidence: 0.7, Description: "dented bottom case"},
				{Type: "liquid", Confidence: 0.75, Description: "sticky residue under keys"},
			},
		}},
	})
	if err != nil {
		t.Fatal(err)
	}

	var visual []domain.DiagnosticResult
	for _, r := range results {
		if r.Category == "Visual Damage Assessment" {
			visual = append(visual, r)
		}
	}
	if len(visual) != 3 {
		t.Fatalf("got %d visual results, want 3", len(visual))
	}
	for _, v := range visual {
		if !strings.HasPrefix(v.Issue, "Image-detected: ") {
			t.Errorf("issue = %q, want Image-detected prefix", v.Issue)
		}
		// Three issues in one image means critical condition.
		if v.Severity != domain.SeverityCritical {
			t.Errorf("severity = %s, want critical for a 3-issue image", v.Severity)
		}
		if v.Urgency != domain.UrgencyHigh {
			t.Errorf("urgency = %s, want high under critical condition", v.Urgency)
		}
		var total float64
		for _, c := range v.PossibleCauses {
			total += c.Probability
		}
		if math.Abs(total-1.0) > 1e-9 {
			t.Errorf("cause probabilities sum to %v, want 1.0", total)
		}
		if len(v.RecommendedActions) == 0 {
			t.Error("expected recommendation-derived actions")
		}
		for i, a := range v.RecommendedActions {
			if a.Priority != i+1 {
				t.Errorf("action %d priority = %d", i, a.Priority)
			}
			if a.SkillLevel != domain.SkillProfessional {
				t.Errorf("action skill = %s, want professional", a.SkillLevel)
			}
		}
	}
}

func TestDiagnoseLiquidTextAndImageMerge(t *testing.T) {
	e := testEngine(t)

	base := domain.DiagnosticInput{
		Symptoms:   "spilled liquid on it yesterday, liquid damage suspected",
		DeviceInfo: laptop(),
	}
	plain, err := e.Diagnose(context.Background(), base)
	if err != nil {
		t.Fatal(err)
	}

	withImage := base
	withImage.Images = []domain.ImageObservationSet{{
		SourceID: "img-7",
		DetectedIssues: []domain.IssueObservation{
			{Type: "liquid", Confidence: 0.9, Description: "liquid damage indicators"},
		},
	}}
	merged, err := e.Diagnose(context.Background(), withImage)
	if err != nil {
		t.Fatal(err)
	}

	// The liquid mention categorizes the text, so the image observation
	// corroborates that result instead of spawning a separate visual one.
	var liquids int
	for _, r := range merged {
		if r.Category == "Visual Damage Assessment" {
			t.Errorf("liquid issue is text-covered, want a single merged result: %+v", r)
		}
		if r.Category == "Liquid Damage" {
			liquids++
		}
	}
	if liquids != 1 {
		t.Fatalf("got %d Liquid Damage results, want 1", liquids)
	}

	pl := findCategory(t, plain, "Liquid Damage")
	ml := findCategory(t, merged, "Liquid Damage")
	want := domain.ClampConfidence(pl.Confidence+0.15, domain.MaxTextConfidence)
	if ml.Confidence != want {
		t.Errorf("merged confidence = %v, want %v", ml.Confidence, want)
	}
	if ml.Confidence <= pl.Confidence {
		t.Errorf("merged confidence %v not boosted above text-only %v", ml.Confidence, pl.Confidence)
	}
	if len(ml.ImageEvidence) != 1 || ml.ImageEvidence[0].SourceID != "img-7" {
		t.Errorf("image evidence = %+v, want the liquid observation set", ml.ImageEvidence)
	}
}

func TestDiagnoseImageTypeCoveredByTextSkipped(t *testing.T) {
	e := testEngine(t)

	results, err := e.Diagnose(context.Background(), domain.DiagnosticInput{
		Symptoms:   "cracked screen with dead pixels",
		DeviceInfo: laptop(),
		Images: []domain.ImageObservationSet{{
			SourceID: "img-2",
			DetectedIssues: []domain.IssueObservation{
				{Type: "display", Confidence: 0.9, Description: "shattered glass"},
			},
		}},
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range results {
		if r.Category == "Visual Damage Assessment" {
			t.Errorf("display issue is text-covered, should not produce a visual result: %+v", r)
		}
	}
}

func TestDiagnoseDeduplicates(t *testing.T) {
	e := testEngine(t)

	results, err := e.Diagnose(context.Background(), domain.DiagnosticInput{
		Symptoms:   "Nothing works properly",
		DeviceInfo: laptop(),
		Images: []domain.ImageObservationSet{
			{SourceID: "a", DetectedIssues: []domain.IssueObservation{
				{Type: "liquid", Confidence: 0.8, Description: "corrosion on board"},
			}},
			{SourceID: "b", DetectedIssues: []domain.IssueObservation{
				{Type: "liquid", Confidence: 0.6, Description: "corrosion on board"},
			}},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	seen := make(map[[2]string]int)
	for _, r := range results {
		seen[[2]string{r.Category, r.Issue}]++
	}
	for key, n := range seen {
		if n > 1 {
			t.Errorf("duplicate (category, issue) pair %v appears %d times", key, n)
		}
	}
	// First occurrence wins: the surviving duplicate keeps the higher
	// confidence from source image "a".
	v := findCategory(t, results, "Visual Damage Assessment")
	if len(v.ImageEvidence) != 1 || v.ImageEvidence[0].SourceID != "a" {
		t.Errorf("surviving visual result evidence = %+v, want source a", v.ImageEvidence)
	}
}

func TestDiagnoseOrdering(t *testing.T) {
	e := testEngine(t)

	results, err := e.Diagnose(context.Background(), domain.DiagnosticInput{
		Symptoms:   "screen flickering badly, battery draining fast, wifi keeps dropping, fan is loud and it overheats",
		DeviceInfo: laptop(),
		Images: []domain.ImageObservationSet{{
			SourceID: "img-3",
			DetectedIssues: []domain.IssueObservation{
				{Type: "display", Confidence: 0.95, Description: "visible crack"},
			},
		}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) < 2 {
		t.Fatalf("got %d results, want several", len(results))
	}
	for i := 1; i < len(results); i++ {
		prev, cur := results[i-1], results[i]
		if cur.Confidence > prev.Confidence {
			t.Fatalf("results not sorted by confidence: %v before %v", prev.Confidence, cur.Confidence)
		}
		if cur.Confidence == prev.Confidence &&
			domain.SeverityRank[cur.Severity] > domain.SeverityRank[prev.Severity] {
			t.Fatalf("severity tiebreak violated at index %d", i)
		}
	}
	// The image-corroborated display result should rank first.
	if results[0].Category != "Display" {
		t.Errorf("top result category = %q, want Display", results[0].Category)
	}
}

func TestDiagnoseConfidenceBounds(t *testing.T) {
	e := testEngine(t)

	inputs := []domain.DiagnosticInput{
		{Symptoms: "slow", DeviceInfo: laptop()},
		{
			Symptoms: "screen cracked flickering, battery draining, overheating fan noise, wifi dropping, keyboard keys stuck, " +
				"speaker crackling, blue screen crashes, disk errors clicking noise, driver and bios and firmware problems everywhere",
			DeviceInfo: laptop(),
			Images: []domain.ImageObservationSet{{
				SourceID: "x",
				DetectedIssues: []domain.IssueObservation{
					{Type: "display", Confidence: 0.99, Description: "crack"},
				},
			}},
		},
	}
	for _, in := range inputs {
		results, err := e.Diagnose(context.Background(), in)
		if err != nil {
			t.Fatal(err)
		}
		for _, r := range results {
			if r.Confidence < 0 || r.Confidence > domain.MaxTextConfidence {
				t.Errorf("confidence %v outside [0, %v]", r.Confidence, domain.MaxTextConfidence)
			}
		}
	}
}

func TestDiagnoseWarranty(t *testing.T) {
	e := testEngine(t) // clock pinned to 2025-06-01

	cases := []struct {
		name   string
		device domain.DeviceInfo
		want   bool
	}{
		{"explicit active", domain.DeviceInfo{Category: domain.DeviceLaptop, WarrantyStatus: domain.WarrantyActive}, true},
		{"explicit expired recent year", domain.DeviceInfo{Category: domain.DeviceLaptop, Year: 2025, WarrantyStatus: domain.WarrantyExpired}, false},
		{"unset status last year", domain.DeviceInfo{Category: domain.DeviceLaptop, Year: 2024}, true},
		{"unset status three years old", domain.DeviceInfo{Category: domain.DeviceLaptop, Year: 2022}, false},
		{"no year no status", domain.DeviceInfo{Category: domain.DeviceLaptop}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			results, err := e.Diagnose(context.Background(), domain.DiagnosticInput{
				Symptoms:   "battery swollen",
				DeviceInfo: tc.device,
			})
			if err != nil {
				t.Fatal(err)
			}
			for _, r := range results {
				if r.Warranty != tc.want {
					t.Errorf("warranty = %v, want %v", r.Warranty, tc.want)
				}
			}
		})
	}
}

func TestDiagnoseDeviceMultiplierScalesCost(t *testing.T) {
	e := testEngine(t)

	symptoms := "screen is cracked"
	lap, err := e.Diagnose(context.Background(), domain.DiagnosticInput{
		Symptoms:   symptoms,
		DeviceInfo: domain.DeviceInfo{Category: domain.DeviceLaptop},
	})
	if err != nil {
		t.Fatal(err)
	}
	tab, err := e.Diagnose(context.Background(), domain.DiagnosticInput{
		Symptoms:   symptoms,
		DeviceInfo: domain.DeviceInfo{Category: domain.DeviceTablet},
	})
	if err != nil {
		t.Fatal(err)
	}

	lc := findCategory(t, lap, "Display").EstimatedCost
	tc := findCategory(t, tab, "Display").EstimatedCost
	if tc.Parts.Max <= lc.Parts.Max {
		t.Errorf("tablet parts max %d should exceed laptop %d under the 1.2 multiplier", tc.Parts.Max, lc.Parts.Max)
	}
	if lc.Total.Min != lc.Parts.Min+lc.Labor.Min || tc.Total.Min != tc.Parts.Min+tc.Labor.Min {
		t.Error("totals must be sums of rounded components")
	}
}

func TestDiagnoseDeterministicExceptIDs(t *testing.T) {
	e := testEngine(t)

	in := domain.DiagnosticInput{
		Symptoms:   "keyboard keys stuck and trackpad not responding",
		DeviceInfo: laptop(),
	}
	a, err := e.Diagnose(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	b, err := e.Diagnose(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != len(b) {
		t.Fatalf("result counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		a[i].ID, b[i].ID = "", ""
		if a[i].Category != b[i].Category || a[i].Issue != b[i].Issue ||
			a[i].Confidence != b[i].Confidence || a[i].Severity != b[i].Severity {
			t.Errorf("result %d differs between identical runs", i)
		}
	}
}

func TestDiagnoseUniqueIDs(t *testing.T) {
	e := New(knowledge.Default(), Options{}, nil)

	results, err := e.Diagnose(context.Background(), domain.DiagnosticInput{
		Symptoms:   "screen flickering and battery dying and wifi dropping",
		DeviceInfo: laptop(),
	})
	if err != nil {
		t.Fatal(err)
	}
	seen := make(map[string]bool)
	for _, r := range results {
		if r.ID == "" {
			t.Error("empty result ID")
		}
		if seen[r.ID] {
			t.Errorf("duplicate ID %s", r.ID)
		}
		seen[r.ID] = true
	}
}

func findCategory(t *testing.T, results []domain.DiagnosticResult, category string) domain.DiagnosticResult {
	t.Helper()
	for _, r := range results {
		if r.Category == category {
			return r
		}
	}
	t.Fatalf("no %q result among %v", category, categoriesOf(results))
	return domain.DiagnosticResult{}
}

func categoriesOf(results []domain.DiagnosticResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Category
	}
	return out
}
