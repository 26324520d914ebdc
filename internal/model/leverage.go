package model

import "fmt"

// LeverageFlag is a boolean indicator of one specific competitive-advantage
// mechanism. Flags are independent; any subset may co-occur.
type LeverageFlag string

const (
	LeverageCost       LeverageFlag = "COST"
	LeverageTime       LeverageFlag = "TIME"
	LeverageCognitive  LeverageFlag = "COGNITIVE"
	LeverageAccess     LeverageFlag = "ACCESS"
	LeverageConstraint LeverageFlag = "CONSTRAINT"
)

// LeverageAnswers carries the caller's raw structured answers keyed by
// field name. Values must be strictly boolean or non-negative integers;
// anything else is rejected with an InputError so the caller can re-ask.
type LeverageAnswers map[string]any

// Leverage answer field names
const (
	FieldPricingDelta          = "has_pricing_delta"
	FieldInfrastructureShift   = "has_infrastructure_shift"
	FieldDistributionShift     = "has_distribution_shift"
	FieldReplacesHumanLabor    = "replaces_human_labor"
	FieldStepReduction         = "step_reduction"
	FieldDeliversFinalAnswer   = "delivers_final_answer"
	FieldUniqueDataAccess      = "unique_data_access"
	FieldWorksUnderConstraints = "works_under_constraints"
)

// InputError reports a leverage answer that failed strict type validation.
// It names the exact field so the caller knows what to resupply.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid leverage input %q: %s (please resupply)", e.Field, e.Reason)
}

// SanityWarning flags a logically suspicious but non-blocking answer
// combination
type SanityWarning struct {
	Fields  []string `json:"fields"`
	Message string   `json:"message"`
}
