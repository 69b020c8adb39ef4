package facility

import "fmt"

// Field names in declaration order. Validation issues are always reported
// in this order regardless of input order.
const (
	FieldFacilityName                 = "facility_name"
	FieldMinAisleWidthFt              = "min_aisle_width_ft"
	FieldHasSeparatedPaths            = "has_separated_paths"
	FieldHumanTrafficDensity          = "human_traffic_density"
	FieldHasClosedOperatingWindow     = "has_closed_operating_window"
	FieldLayoutStability              = "layout_stability"
	FieldChronicDestinationSaturation = "chronic_destination_saturation"
	FieldToteStandardization          = "tote_standardization"
	FieldSafetyGovernanceMaturity     = "safety_governance_maturity"
	FieldNotes                        = "notes"
)

// RequiredFields lists the nine required field names in declaration order.
var RequiredFields = []string{
	FieldFacilityName,
	FieldMinAisleWidthFt,
	FieldHasSeparatedPaths,
	FieldHumanTrafficDensity,
	FieldHasClosedOperatingWindow,
	FieldLayoutStability,
	FieldChronicDestinationSaturation,
	FieldToteStandardization,
	FieldSafetyGovernanceMaturity,
}

var (
	trafficValues = []string{
		string(TrafficLow), string(TrafficMedium), string(TrafficHigh),
	}
	layoutValues = []string{
		string(LayoutStable), string(LayoutModerateChange), string(LayoutFrequentChange),
	}
	governanceValues = []string{
		string(GovernanceStrong), string(GovernanceAverage), string(GovernanceWeak),
	}
)

// Validate checks a raw attribute map against the required field set and
// either builds an immutable Snapshot or reports every offending field.
// All nine fields are checked before failing: the returned issue list
// carries one entry per offending field, in declaration order, with no
// duplicates. Types must match exactly; numeric strings are not coerced.
func Validate(raw map[string]any) (*Snapshot, []FieldIssue) {
	var issues []FieldIssue
	snap := &Snapshot{}

	fail := func(field, reason string) {
		issues = append(issues, FieldIssue{Field: field, Reason: reason})
	}

	if v, reason, ok := stringValue(raw, FieldFacilityName); !ok {
		fail(FieldFacilityName, reason)
	} else {
		snap.FacilityName = v
	}

	if v, reason, ok := numberValue(raw, FieldMinAisleWidthFt); !ok {
		fail(FieldMinAisleWidthFt, reason)
	} else if v < 0 {
		fail(FieldMinAisleWidthFt, fmt.Sprintf("must be non-negative, got %v", v))
	} else {
		snap.MinAisleWidthFt = v
	}

	if v, reason, ok := boolValue(raw, FieldHasSeparatedPaths); !ok {
		fail(FieldHasSeparatedPaths, reason)
	} else {
		snap.HasSeparatedPaths = v
	}

	if v, reason, ok := enumValue(raw, FieldHumanTrafficDensity, trafficValues); !ok {
		fail(FieldHumanTrafficDensity, reason)
	} else {
		snap.HumanTrafficDensity = HumanTrafficDensity(v)
	}

	if v, reason, ok := boolValue(raw, FieldHasClosedOperatingWindow); !ok {
		fail(FieldHasClosedOperatingWindow, reason)
	} else {
		snap.HasClosedOperatingWindow = v
	}

	if v, reason, ok := enumValue(raw, FieldLayoutStability, layoutValues); !ok {
		fail(FieldLayoutStability, reason)
	} else {
		snap.LayoutStability = LayoutStability(v)
	}

	if v, reason, ok := boolValue(raw, FieldChronicDestinationSaturation); !ok {
		fail(FieldChronicDestinationSaturation, reason)
	} else {
		snap.ChronicDestinationSaturation = v
	}

	if v, reason, ok := boolValue(raw, FieldToteStandardization); !ok {
		fail(FieldToteStandardization, reason)
	} else {
		snap.ToteStandardization = v
	}

	if v, reason, ok := enumValue(raw, FieldSafetyGovernanceMaturity, governanceValues); !ok {
		fail(FieldSafetyGovernanceMaturity, reason)
	} else {
		snap.SafetyGovernanceMaturity = GovernanceMaturity(v)
	}

	// Optional, unvalidated. Non-string values are ignored.
	if v, ok := raw[FieldNotes].(string); ok {
		snap.Notes = v
	}

	if len(issues) > 0 {
		return nil, issues
	}
	return snap, nil
}

func stringValue(raw map[string]any, field string) (string, string, bool) {
	v, present := raw[field]
	if !present {
		return "", "missing", false
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Sprintf("expected string, got %T", v), false
	}
	return s, "", true
}

func boolValue(raw map[string]any, field string) (bool, string, bool) {
	v, present := raw[field]
	if !present {
		return false, "missing", false
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Sprintf("expected bool, got %T", v), false
	}
	return b, "", true
}

// numberValue accepts float64 (what encoding/json produces) plus int and
// int64 for callers constructing the map in Go.
func numberValue(raw map[string]any, field string) (float64, string, bool) {
	v, present := raw[field]
	if !present {
		return 0, "missing", false
	}
	switch n := v.(type) {
	case float64:
		return n, "", true
	case int:
		return float64(n), "", true
	case int64:
		return float64(n), "", true
	default:
		return 0, fmt.Sprintf("expected number, got %T", v), false
	}
}

func enumValue(raw map[string]any, field string, allowed []string) (string, string, bool) {
	s, reason, ok := stringValue(raw, field)
	if !ok {
		return "", reason, false
	}
	for _, a := range allowed {
		if s == a {
			return s, "", true
		}
	}
	return "", fmt.Sprintf("invalid value %q, expected one of %v", s, allowed), false
}
