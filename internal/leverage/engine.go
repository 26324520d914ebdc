// Package leverage detects competitive-advantage flags from the
// caller's structured answers and the computed market parameters.
// Inputs are validated twice: a strict type check that hard-rejects
// (so the caller is asked to resupply the exact field), then a soft
// sanity check that only warns.
package leverage

import (
	"fmt"

	"github.com/ppiankov/ideagauge/internal/model"
)

// answers is the typed form of the raw caller input
type answers struct {
	pricingDelta          bool
	infrastructureShift   bool
	distributionShift     bool
	replacesHumanLabor    bool
	stepReduction         int
	deliversFinalAnswer   bool
	uniqueDataAccess      bool
	worksUnderConstraints bool
}

// Engine evaluates the independent leverage rules
type Engine struct {
	t model.Thresholds
}

// NewEngine creates a leverage engine
func NewEngine(t model.Thresholds) *Engine {
	return &Engine{t: t}
}

// Detect validates the raw answers and returns the set of flags that
// fired plus any sanity warnings. A type violation returns an
// *model.InputError and no partial result.
func (e *Engine) Detect(raw model.LeverageAnswers, market model.MarketStrength) ([]model.LeverageFlag, []model.SanityWarning, error) {
	a, err := validateTypes(raw)
	if err != nil {
		return nil, nil, err
	}

	warnings := sanityCheck(a, market)

	// Rules are independent; any subset may fire. Order here only
	// fixes the output ordering, not any precedence.
	var flags []model.LeverageFlag

	// COST requires an explicit cost-advantage input. Automation or
	// labor replacement alone is insufficient.
	if a.pricingDelta || a.infrastructureShift || a.distributionShift {
		flags = append(flags, model.LeverageCost)
	}

	if a.stepReduction >= e.t.TimeStepReduction ||
		(market.AutomationRelevance == model.RelevanceHigh && market.SubstitutePressure.Rank() >= model.PressureMedium.Rank()) {
		flags = append(flags, model.LeverageTime)
	}

	if a.deliversFinalAnswer && market.ContentSaturation.Rank() >= model.PressureMedium.Rank() {
		flags = append(flags, model.LeverageCognitive)
	}

	// Public/open data does not qualify; that rule is enforced when
	// the answer is collected, not here.
	if a.uniqueDataAccess {
		flags = append(flags, model.LeverageAccess)
	}

	if a.worksUnderConstraints {
		flags = append(flags, model.LeverageConstraint)
	}

	return flags, warnings, nil
}

// validateTypes enforces strict typing: booleans must be booleans,
// integers must be non-negative integers. Missing fields default to
// their zero value; present-but-wrong fields hard-reject.
func validateTypes(raw model.LeverageAnswers) (answers, error) {
	var a answers
	var err error

	if a.pricingDelta, err = boolField(raw, model.FieldPricingDelta); err != nil {
		return answers{}, err
	}
	if a.infrastructureShift, err = boolField(raw, model.FieldInfrastructureShift); err != nil {
		return answers{}, err
	}
	if a.distributionShift, err = boolField(raw, model.FieldDistributionShift); err != nil {
		return answers{}, err
	}
	if a.replacesHumanLabor, err = boolField(raw, model.FieldReplacesHumanLabor); err != nil {
		return answers{}, err
	}
	if a.stepReduction, err = intField(raw, model.FieldStepReduction); err != nil {
		return answers{}, err
	}
	if a.deliversFinalAnswer, err = boolField(raw, model.FieldDeliversFinalAnswer); err != nil {
		return answers{}, err
	}
	if a.uniqueDataAccess, err = boolField(raw, model.FieldUniqueDataAccess); err != nil {
		return answers{}, err
	}
	if a.worksUnderConstraints, err = boolField(raw, model.FieldWorksUnderConstraints); err != nil {
		return answers{}, err
	}

	return a, nil
}

func boolField(raw model.LeverageAnswers, field string) (bool, error) {
	v, ok := raw[field]
	if !ok {
		return false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, &model.InputError{Field: field, Reason: fmt.Sprintf("expected boolean, got %T", v)}
	}
	return b, nil
}

func intField(raw model.LeverageAnswers, field string) (int, error) {
	v, ok := raw[field]
	if !ok {
		return 0, nil
	}
	var n int
	switch t := v.(type) {
	case int:
		n = t
	case int64:
		n = int(t)
	case float64:
		// JSON numbers decode as float64; only accept whole values
		if t != float64(int(t)) {
			return 0, &model.InputError{Field: field, Reason: "expected integer, got fraction"}
		}
		n = int(t)
	default:
		return 0, &model.InputError{Field: field, Reason: fmt.Sprintf("expected integer, got %T", v)}
	}
	if n < 0 {
		return 0, &model.InputError{Field: field, Reason: "must be >= 0"}
	}
	return n, nil
}

// sanityCheck flags logically suspicious combinations without blocking
func sanityCheck(a answers, market model.MarketStrength) []model.SanityWarning {
	var warnings []model.SanityWarning

	if market.AutomationRelevance == model.RelevanceHigh && a.stepReduction == 0 {
		warnings = append(warnings, model.SanityWarning{
			Fields:  []string{model.FieldStepReduction},
			Message: "automation relevance is HIGH but step_reduction is 0",
		})
	}
	if a.replacesHumanLabor && !a.pricingDelta && !a.infrastructureShift && !a.distributionShift {
		warnings = append(warnings, model.SanityWarning{
			Fields:  []string{model.FieldReplacesHumanLabor},
			Message: "labor replacement claimed without any cost-structure input; COST will not fire",
		})
	}
	if a.deliversFinalAnswer && a.stepReduction == 0 && market.ContentSaturation == model.PressureLow {
		warnings = append(warnings, model.SanityWarning{
			Fields:  []string{model.FieldDeliversFinalAnswer},
			Message: "final-answer claim with low content saturation and no step reduction",
		})
	}

	return warnings
}
