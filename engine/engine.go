// Package engine evaluates warehouse facility snapshots against the
// fixed screening rule set, producing a QUALIFIED, DISQUALIFIED, or
// UNKNOWN verdict with supporting diagnostics.
package engine

import (
	"fmt"

	"github.com/google/cel-go/cel"

	"github.com/boringai/constraintsim/facility"
)

// Engine holds the CEL environment and the compiled rule programs.
// Rules are compiled once at construction; evaluation is read-only, so
// an Engine is safe for concurrent use without coordination.
type Engine struct {
	env           *cel.Env
	disqualifiers []compiledRule
	cautionFlags  []compiledRule
}

type compiledRule struct {
	rule Rule
	prog cel.Program
}

// New creates an engine with a typed CEL environment for the facility
// snapshot fields and compiles both rule tables. A compilation failure
// means a defective rule table, not bad input.
func New() (*Engine, error) {
	env, err := cel.NewEnv(
		cel.Variable(facility.FieldFacilityName, cel.StringType),
		cel.Variable(facility.FieldMinAisleWidthFt, cel.DoubleType),
		cel.Variable(facility.FieldHasSeparatedPaths, cel.BoolType),
		cel.Variable(facility.FieldHumanTrafficDensity, cel.StringType),
		cel.Variable(facility.FieldHasClosedOperatingWindow, cel.BoolType),
		cel.Variable(facility.FieldLayoutStability, cel.StringType),
		cel.Variable(facility.FieldChronicDestinationSaturation, cel.BoolType),
		cel.Variable(facility.FieldToteStandardization, cel.BoolType),
		cel.Variable(facility.FieldSafetyGovernanceMaturity, cel.StringType),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	en := &Engine{env: env}

	en.disqualifiers, err = compileRules(env, DisqualifierRules)
	if err != nil {
		return nil, fmt.Errorf("failed to compile disqualifier rules: %w", err)
	}

	en.cautionFlags, err = compileRules(env, CautionFlagRules)
	if err != nil {
		return nil, fmt.Errorf("failed to compile caution flag rules: %w", err)
	}

	return en, nil
}

func compileRules(env *cel.Env, rules []Rule) ([]compiledRule, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		ast, issues := env.Compile(r.Expression)
		if issues != nil && issues.Err() != nil {
			return nil, fmt.Errorf("rule %s: compile error: %w", r.ID, issues.Err())
		}
		prog, err := env.Program(ast)
		if err != nil {
			return nil, fmt.Errorf("rule %s: program creation error: %w", r.ID, err)
		}
		compiled = append(compiled, compiledRule{rule: r, prog: prog})
	}
	return compiled, nil
}

// Evaluate validates the raw attribute map and applies both rule tables.
// Malformed input is never an error: it yields verdict UNKNOWN listing
// every offending field. The returned error is reserved for internal
// defects (a rule program failing at runtime) and is never folded into
// a verdict.
func (en *Engine) Evaluate(raw map[string]any) (*facility.EvaluationResult, error) {
	snap, fieldIssues := facility.Validate(raw)
	if len(fieldIssues) > 0 {
		result := facility.NewEvaluationResult(facility.VerdictUnknown)
		for _, issue := range fieldIssues {
			result.MissingFields = append(result.MissingFields, issue.Field)
			result.Notes = append(result.Notes,
				fmt.Sprintf("field %s is missing or invalid: %s", issue.Field, issue.Reason))
		}
		return result, nil
	}

	activation := snapshotActivation(snap)

	disqualified, err := en.apply(en.disqualifiers, activation)
	if err != nil {
		return nil, err
	}
	cautioned, err := en.apply(en.cautionFlags, activation)
	if err != nil {
		return nil, err
	}

	verdict := facility.VerdictQualified
	if len(disqualified) > 0 {
		verdict = facility.VerdictDisqualified
	}
	result := facility.NewEvaluationResult(verdict)

	if verdict == facility.VerdictDisqualified {
		result.Notes = append(result.Notes,
			fmt.Sprintf("Facility %q is DISQUALIFIED due to %d rule violation(s).",
				snap.FacilityName, len(disqualified)))
		for _, r := range disqualified {
			result.Disqualifiers = append(result.Disqualifiers, r.ID)
			result.Notes = append(result.Notes, fmt.Sprintf("  - %s: %s", r.ID, r.Reason))
		}
	} else {
		result.Notes = append(result.Notes,
			fmt.Sprintf("Facility %q is QUALIFIED for the empty tote return task.",
				snap.FacilityName))
	}

	if len(cautioned) > 0 {
		result.Notes = append(result.Notes,
			fmt.Sprintf("%d caution flag(s) identified:", len(cautioned)))
		for _, r := range cautioned {
			result.CautionFlags = append(result.CautionFlags, r.ID)
			result.Notes = append(result.Notes, fmt.Sprintf("  - %s: %s", r.ID, r.Reason))
		}
	}

	return result, nil
}

// apply runs every rule in the table, in table order, with no
// short-circuiting, and returns the triggered rules.
func (en *Engine) apply(rules []compiledRule, activation map[string]any) ([]Rule, error) {
	var triggered []Rule
	for _, cr := range rules {
		out, _, err := cr.prog.Eval(activation)
		if err != nil {
			return nil, fmt.Errorf("rule %s: evaluation error: %w", cr.rule.ID, err)
		}
		matched, ok := out.Value().(bool)
		if !ok {
			return nil, fmt.Errorf("rule %s: expression yielded %T, want bool", cr.rule.ID, out.Value())
		}
		if matched {
			triggered = append(triggered, cr.rule)
		}
	}
	return triggered, nil
}

func snapshotActivation(snap *facility.Snapshot) map[string]any {
	return map[string]any{
		facility.FieldFacilityName:                 snap.FacilityName,
		facility.FieldMinAisleWidthFt:              snap.MinAisleWidthFt,
		facility.FieldHasSeparatedPaths:            snap.HasSeparatedPaths,
		facility.FieldHumanTrafficDensity:          string(snap.HumanTrafficDensity),
		facility.FieldHasClosedOperatingWindow:     snap.HasClosedOperatingWindow,
		facility.FieldLayoutStability:              string(snap.LayoutStability),
		facility.FieldChronicDestinationSaturation: snap.ChronicDestinationSaturation,
		facility.FieldToteStandardization:          snap.ToteStandardization,
		facility.FieldSafetyGovernanceMaturity:     string(snap.SafetyGovernanceMaturity),
	}
}
