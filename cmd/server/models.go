package main

import "github.com/boringai/constraintsim/facility"

// API response models

// EvaluateResponse wraps one evaluation outcome.
type EvaluateResponse struct {
	ID             string                     `json:"id"`
	Result         *facility.EvaluationResult `json:"result"`
	EvaluationTime string                     `json:"evaluationTime"`
}

// RuleDescriptor describes one fixed screening rule.
type RuleDescriptor struct {
	ID         string `json:"id"`
	Expression string `json:"expression"`
	Reason     string `json:"reason"`
}

// RulesResponse lists both fixed rule tables in evaluation order.
type RulesResponse struct {
	Disqualifiers []RuleDescriptor `json:"disqualifiers"`
	CautionFlags  []RuleDescriptor `json:"caution_flags"`
}

// HealthResponse is the health check payload.
type HealthResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is the error payload shape.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
