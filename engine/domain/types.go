// Package domain defines the core diagnostic types, constants, and validation
// for the inference engine pipeline. It acts as the validation gate at
// pipeline entry points.
package domain

// DeviceCategory classifies the device being diagnosed. It drives the cost
// multiplier; unknown categories fall back to the laptop baseline.
type DeviceCategory string

const (
	DeviceLaptop  DeviceCategory = "laptop"
	DeviceDesktop DeviceCategory = "desktop"
	DeviceTablet  DeviceCategory = "tablet"
	DevicePhone   DeviceCategory = "phone"
	DeviceConsole DeviceCategory = "console"
	DeviceOther   DeviceCategory = "other"
)

// WarrantyStatus is an explicit override of year-based warranty inference.
type WarrantyStatus string

const (
	WarrantyActive  WarrantyStatus = "active"
	WarrantyExpired WarrantyStatus = "expired"
	WarrantyUnknown WarrantyStatus = "unknown"
)

// Severity classifies how serious a described symptom is.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// SeverityRank maps severities to a fixed ordinal used for ranking.
var SeverityRank = map[Severity]int{
	SeverityCritical: 4,
	SeverityHigh:     3,
	SeverityMedium:   2,
	SeverityLow:      1,
}

// Urgency classifies how time-sensitive intervention is, distinct from severity.
type Urgency string

const (
	UrgencyLow       Urgency = "low"
	UrgencyMedium    Urgency = "medium"
	UrgencyHigh      Urgency = "high"
	UrgencyEmergency Urgency = "emergency"
)

// Condition rates the overall physical state observed in an image.
type Condition string

const (
	ConditionExcellent Condition = "excellent"
	ConditionGood      Condition = "good"
	ConditionFair      Condition = "fair"
	ConditionPoor      Condition = "poor"
	ConditionCritical  Condition = "critical"
)

// SkillLevel classifies who should perform a recommended action.
type SkillLevel string

const (
	SkillBasic        SkillLevel = "basic"
	SkillIntermediate SkillLevel = "intermediate"
	SkillProfessional SkillLevel = "professional"
)

// DeviceInfo carries the structured device metadata supplied by the caller.
// Resolution from a device identifier is the catalog's job, not the engine's.
type DeviceInfo struct {
	Category       DeviceCategory `json:"category"`
	Brand          string         `json:"brand,omitempty"`
	Model          string         `json:"model,omitempty"`
	Year           int            `json:"year,omitempty"`
	WarrantyStatus WarrantyStatus `json:"warrantyStatus,omitempty"`
}

// BoundingRegion locates a detected issue inside an image. Pass-through only.
type BoundingRegion struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// IssueObservation is one issue detected in a single image by the upstream
// feature extractor.
type IssueObservation struct {
	Type           string          `json:"type"`
	Confidence     float64         `json:"confidence"`
	Description    string          `json:"description"`
	BoundingRegion *BoundingRegion `json:"boundingRegion,omitempty"`
}

// ImageObservationSet holds the pre-computed feature observations for one
// submitted image. How the features are produced is external and pluggable.
type ImageObservationSet struct {
	SourceID         string             `json:"sourceId"`
	DetectedIssues   []IssueObservation `json:"detectedIssues"`
	OverallCondition Condition          `json:"overallCondition,omitempty"`
}

// DiagnosticInput is the single input to the engine.
type DiagnosticInput struct {
	Symptoms   string                `json:"symptoms"`
	DeviceInfo DeviceInfo            `json:"deviceInfo"`
	Images     []ImageObservationSet `json:"images,omitempty"`
}

// TextAnalysis is the ephemeral output of the text symptom analyzer.
type TextAnalysis struct {
	ExtractedKeywords []string `json:"extractedKeywords"`
	Categories        []string `json:"categories"`
	Severity          Severity `json:"severity"`
	Urgency           Urgency  `json:"urgency"`
	Confidence        float64  `json:"confidence"`
	Reasoning         string   `json:"reasoning"`
}

// Cause is one possible cause with its estimated probability.
type Cause struct {
	Cause       string  `json:"cause"`
	Probability float64 `json:"probability"`
	Impact      string  `json:"impact"`
}

// CostRange is a min/max cost band in a symbolic currency unit.
type CostRange struct {
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	Currency string `json:"currency"`
}

// CostEstimate breaks a repair cost into parts and labor.
// Total is always the element-wise sum of the two.
type CostEstimate struct {
	Parts CostRange `json:"parts"`
	Labor CostRange `json:"labor"`
	Total CostRange `json:"total"`
}

// Action is one recommended repair action. Priority is 1-based in the order
// the action was listed.
type Action struct {
	Action       string     `json:"action"`
	Priority     int        `json:"priority"`
	Cost         *CostRange `json:"cost,omitempty"`
	TimeEstimate string     `json:"timeEstimate,omitempty"`
	SkillLevel   SkillLevel `json:"skillLevel,omitempty"`
}

// DiagnosticResult is the final output unit returned to the caller.
type DiagnosticResult struct {
	ID                 string                `json:"id"`
	Confidence         float64               `json:"confidence"`
	Category           string                `json:"category"`
	Issue              string                `json:"issue"`
	Severity           Severity              `json:"severity"`
	Description        string                `json:"description"`
	TechnicalDetails   string                `json:"technicalDetails"`
	PossibleCauses     []Cause               `json:"possibleCauses"`
	RecommendedActions []Action              `json:"recommendedActions"`
	EstimatedCost      CostEstimate          `json:"estimatedCost"`
	Urgency            Urgency               `json:"urgency"`
	RepairTime         string                `json:"repairTime"`
	Warranty           bool                  `json:"warranty"`
	PreventiveMeasures []string              `json:"preventiveMeasures"`
	FollowUpActions    []string              `json:"followUpActions"`
	RiskFactors        []string              `json:"riskFactors"`
	ImageEvidence      []ImageObservationSet `json:"imageEvidence"`
}
