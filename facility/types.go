// Package facility defines the domain types for warehouse facility
// screening: the validated snapshot of a facility's attributes, the
// evaluation result, and the enumerations both are built from.
package facility

// Verdict is the three-valued outcome of a facility evaluation.
type Verdict string

const (
	VerdictQualified    Verdict = "QUALIFIED"
	VerdictDisqualified Verdict = "DISQUALIFIED"
	VerdictUnknown      Verdict = "UNKNOWN"
)

// HumanTrafficDensity describes how much human foot traffic the
// facility floor sees during operating hours.
type HumanTrafficDensity string

const (
	TrafficLow    HumanTrafficDensity = "low"
	TrafficMedium HumanTrafficDensity = "medium"
	TrafficHigh   HumanTrafficDensity = "high"
)

// LayoutStability describes how often the facility layout changes.
type LayoutStability string

const (
	LayoutStable         LayoutStability = "stable"
	LayoutModerateChange LayoutStability = "moderate_change"
	LayoutFrequentChange LayoutStability = "frequent_change"
)

// GovernanceMaturity describes the facility's safety governance maturity.
type GovernanceMaturity string

const (
	GovernanceStrong  GovernanceMaturity = "strong"
	GovernanceAverage GovernanceMaturity = "average"
	GovernanceWeak    GovernanceMaturity = "weak"
)

// Snapshot is the validated, immutable representation of one facility's
// screening-relevant attributes. A Snapshot only exists in a fully valid
// state: construction goes through Validate, which refuses to build one
// if any required field is missing, mistyped, or outside its enumeration.
type Snapshot struct {
	FacilityName                 string
	MinAisleWidthFt              float64
	HasSeparatedPaths            bool
	HumanTrafficDensity          HumanTrafficDensity
	HasClosedOperatingWindow     bool
	LayoutStability              LayoutStability
	ChronicDestinationSaturation bool
	ToteStandardization          bool
	SafetyGovernanceMaturity     GovernanceMaturity

	// Notes is optional free text and carries no validation.
	Notes string
}

// FieldIssue describes one offending input field found during validation.
type FieldIssue struct {
	Field  string
	Reason string
}

// EvaluationResult is the engine's sole output. Slices are always
// non-nil so the JSON rendering is [] rather than null.
type EvaluationResult struct {
	Verdict       Verdict  `json:"verdict"`
	Disqualifiers []string `json:"disqualifiers"`
	CautionFlags  []string `json:"caution_flags"`
	MissingFields []string `json:"missing_fields"`
	Notes         []string `json:"notes"`
}

// NewEvaluationResult returns a result with the given verdict and empty,
// non-nil detail slices.
func NewEvaluationResult(verdict Verdict) *EvaluationResult {
	return &EvaluationResult{
		Verdict:       verdict,
		Disqualifiers: []string{},
		CautionFlags:  []string{},
		MissingFields: []string{},
		Notes:         []string{},
	}
}
