package engine

// Rule is one fixed screening rule: a CEL predicate over the facility
// snapshot fields plus the identifier and reason that surface in reports.
// The rule tables are pure declarative data; order is significant and
// matches the order identifiers appear in results.
type Rule struct {
	ID         string
	Expression string
	Reason     string
}

// DisqualifierRules are checked exhaustively; any trigger forces verdict
// DISQUALIFIED. Evaluation never short-circuits so every applicable
// reason surfaces together.
var DisqualifierRules = []Rule{
	{
		ID:         "human_dense_shared_aisles",
		Expression: `human_traffic_density == "high" && !has_separated_paths`,
		Reason:     "high traffic without path separation is a safety risk",
	},
	{
		ID:         "chronic_destination_saturation",
		Expression: `chronic_destination_saturation`,
		Reason:     "saturation prevents reliable automation",
	},
	{
		ID:         "unstable_layout",
		Expression: `layout_stability == "frequent_change"`,
		Reason:     "frequent layout change makes automation infeasible",
	},
	{
		ID:         "poor_safety_governance",
		Expression: `safety_governance_maturity == "weak"`,
		Reason:     "weak governance incompatible with automation",
	},
	{
		ID:         "unclear_tote_standards",
		Expression: `!tote_standardization`,
		Reason:     "non-standard totes prevent reliable handling",
	},
}

// CautionFlagRules surface warnings in the report but never change the
// verdict. Evaluated independently of the disqualifier table.
var CautionFlagRules = []Rule{
	{
		ID:         "narrow_aisles",
		Expression: `min_aisle_width_ft < 8.0`,
		Reason:     "may limit maneuverability",
	},
	{
		ID:         "mixed_traffic_no_separation",
		Expression: `human_traffic_density == "medium" && !has_separated_paths`,
		Reason:     "mixed traffic needs added safety measures",
	},
	{
		ID:         "layout_drift_risk",
		Expression: `layout_stability == "moderate_change"`,
		Reason:     "requires monitoring",
	},
	{
		ID:         "no_off_hours_window",
		Expression: `!has_closed_operating_window`,
		Reason:     "complicates deployment",
	},
	{
		ID:         "average_safety_maturity",
		Expression: `safety_governance_maturity == "average"`,
		Reason:     "may need enhancement",
	},
}
