package facility

import (
	"reflect"
	"strings"
	"testing"
)

// validRaw returns a raw attribute map that passes validation with no
// caution-worthy attributes.
func validRaw() map[string]any {
	return map[string]any{
		"facility_name":                  "Riverside DC",
		"min_aisle_width_ft":             10.0,
		"has_separated_paths":            true,
		"human_traffic_density":          "low",
		"has_closed_operating_window":    true,
		"layout_stability":               "stable",
		"chronic_destination_saturation": false,
		"tote_standardization":           true,
		"safety_governance_maturity":     "strong",
	}
}

func TestValidateSuccess(t *testing.T) {
	snap, issues := Validate(validRaw())
	if len(issues) != 0 {
		t.Fatalf("Validate() returned issues for valid input: %v", issues)
	}
	if snap == nil {
		t.Fatal("Validate() should return a snapshot for valid input")
	}

	if snap.FacilityName != "Riverside DC" {
		t.Errorf("FacilityName = %q, want %q", snap.FacilityName, "Riverside DC")
	}
	if snap.MinAisleWidthFt != 10.0 {
		t.Errorf("MinAisleWidthFt = %v, want 10.0", snap.MinAisleWidthFt)
	}
	if snap.HumanTrafficDensity != TrafficLow {
		t.Errorf("HumanTrafficDensity = %q, want %q", snap.HumanTrafficDensity, TrafficLow)
	}
	if snap.LayoutStability != LayoutStable {
		t.Errorf("LayoutStability = %q, want %q", snap.LayoutStability, LayoutStable)
	}
	if snap.SafetyGovernanceMaturity != GovernanceStrong {
		t.Errorf("SafetyGovernanceMaturity = %q, want %q", snap.SafetyGovernanceMaturity, GovernanceStrong)
	}
}

func TestValidateIntegerWidthAccepted(t *testing.T) {
	raw := validRaw()
	raw["min_aisle_width_ft"] = 10

	snap, issues := Validate(raw)
	if len(issues) != 0 {
		t.Fatalf("Validate() returned issues: %v", issues)
	}
	if snap.MinAisleWidthFt != 10.0 {
		t.Errorf("MinAisleWidthFt = %v, want 10.0", snap.MinAisleWidthFt)
	}
}

func TestValidateZeroWidthAccepted(t *testing.T) {
	raw := validRaw()
	raw["min_aisle_width_ft"] = 0.0

	snap, issues := Validate(raw)
	if len(issues) != 0 {
		t.Fatalf("zero aisle width should validate, got issues: %v", issues)
	}
	if snap.MinAisleWidthFt != 0.0 {
		t.Errorf("MinAisleWidthFt = %v, want 0.0", snap.MinAisleWidthFt)
	}
}

func TestValidateNegativeWidthRejected(t *testing.T) {
	raw := validRaw()
	raw["min_aisle_width_ft"] = -1.5

	snap, issues := Validate(raw)
	if snap != nil {
		t.Fatal("Validate() should not return a snapshot for negative width")
	}
	if len(issues) != 1 || issues[0].Field != FieldMinAisleWidthFt {
		t.Fatalf("issues = %v, want single min_aisle_width_ft issue", issues)
	}
}

func TestValidateEmptyInput(t *testing.T) {
	snap, issues := Validate(map[string]any{})
	if snap != nil {
		t.Fatal("Validate() should not return a snapshot for empty input")
	}

	var fields []string
	for _, issue := range issues {
		fields = append(fields, issue.Field)
		if issue.Reason != "missing" {
			t.Errorf("field %s reason = %q, want %q", issue.Field, issue.Reason, "missing")
		}
	}

	if !reflect.DeepEqual(fields, RequiredFields) {
		t.Errorf("offending fields = %v, want declaration order %v", fields, RequiredFields)
	}
}

func TestValidateTypeMismatch(t *testing.T) {
	testCases := []struct {
		name  string
		field string
		value any
	}{
		{"string for bool", "has_separated_paths", "true"},
		{"number for bool", "tote_standardization", 1.0},
		{"bool for string", "facility_name", true},
		{"number for enum", "human_traffic_density", 2.0},
		{"numeric string not coerced", "min_aisle_width_ft", "10.0"},
		{"bool for number", "min_aisle_width_ft", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			raw := validRaw()
			raw[tc.field] = tc.value

			snap, issues := Validate(raw)
			if snap != nil {
				t.Fatal("Validate() should not return a snapshot for mistyped input")
			}
			if len(issues) != 1 {
				t.Fatalf("issues = %v, want exactly one", issues)
			}
			if issues[0].Field != tc.field {
				t.Errorf("offending field = %q, want %q", issues[0].Field, tc.field)
			}
			if !strings.Contains(issues[0].Reason, "expected") {
				t.Errorf("reason %q should describe the expected type", issues[0].Reason)
			}
		})
	}
}

func TestValidateEnumMembership(t *testing.T) {
	testCases := []struct {
		field string
		value string
		valid bool
	}{
		{"human_traffic_density", "low", true},
		{"human_traffic_density", "medium", true},
		{"human_traffic_density", "high", true},
		{"human_traffic_density", "HIGH", false},
		{"human_traffic_density", "extreme", false},
		{"layout_stability", "stable", true},
		{"layout_stability", "moderate_change", true},
		{"layout_stability", "frequent_change", true},
		{"layout_stability", "chaotic", false},
		{"safety_governance_maturity", "strong", true},
		{"safety_governance_maturity", "average", true},
		{"safety_governance_maturity", "weak", true},
		{"safety_governance_maturity", "bad", false},
	}

	for _, tc := range testCases {
		t.Run(tc.field+"="+tc.value, func(t *testing.T) {
			raw := validRaw()
			raw[tc.field] = tc.value

			snap, issues := Validate(raw)
			if tc.valid {
				if snap == nil {
					t.Fatalf("value %q should validate, got issues: %v", tc.value, issues)
				}
				return
			}
			if snap != nil {
				t.Fatalf("value %q should not validate", tc.value)
			}
			if len(issues) != 1 || issues[0].Field != tc.field {
				t.Fatalf("issues = %v, want single %s issue", issues, tc.field)
			}
		})
	}
}

func TestValidateAccumulatesAllIssues(t *testing.T) {
	raw := validRaw()
	delete(raw, "facility_name")
	raw["has_separated_paths"] = "yes"
	raw["layout_stability"] = "chaotic"
	delete(raw, "safety_governance_maturity")

	snap, issues := Validate(raw)
	if snap != nil {
		t.Fatal("Validate() should not return a snapshot")
	}

	var fields []string
	for _, issue := range issues {
		fields = append(fields, issue.Field)
	}

	// Declaration order, not input order, one entry per field.
	want := []string{
		FieldFacilityName,
		FieldHasSeparatedPaths,
		FieldLayoutStability,
		FieldSafetyGovernanceMaturity,
	}
	if !reflect.DeepEqual(fields, want) {
		t.Errorf("offending fields = %v, want %v", fields, want)
	}
}

func TestValidateNotesOptional(t *testing.T) {
	t.Run("absent", func(t *testing.T) {
		snap, issues := Validate(validRaw())
		if len(issues) != 0 {
			t.Fatalf("unexpected issues: %v", issues)
		}
		if snap.Notes != "" {
			t.Errorf("Notes = %q, want empty", snap.Notes)
		}
	})

	t.Run("present", func(t *testing.T) {
		raw := validRaw()
		raw["notes"] = "night shift only"
		snap, issues := Validate(raw)
		if len(issues) != 0 {
			t.Fatalf("unexpected issues: %v", issues)
		}
		if snap.Notes != "night shift only" {
			t.Errorf("Notes = %q, want %q", snap.Notes, "night shift only")
		}
	})

	t.Run("non-string ignored", func(t *testing.T) {
		raw := validRaw()
		raw["notes"] = 42.0
		snap, issues := Validate(raw)
		if len(issues) != 0 {
			t.Fatalf("notes carries no validation, got issues: %v", issues)
		}
		if snap.Notes != "" {
			t.Errorf("Notes = %q, want empty", snap.Notes)
		}
	})
}
