// Package synth combines the severity verdict and the leverage flags
// into the final validation state. Market data is deliberately absent
// from this derivation: it is narrative context, never a verdict input.
package synth

import "github.com/ppiankov/ideagauge/internal/model"

// Synthesize derives the final three-way verdict
func Synthesize(level model.ProblemLevel, flags []model.LeverageFlag) model.ValidationState {
	validity := model.ProblemWeak
	if level == model.LevelSevere || level == model.LevelDrastic {
		validity = model.ProblemReal
	}

	presence := model.LeverageNone
	if len(flags) > 0 {
		presence = model.LeveragePresent
	}

	var class model.ValidationClass
	switch {
	case validity == model.ProblemWeak:
		// A weak problem is a weak foundation no matter the edge
		class = model.ClassWeakFoundation
	case presence == model.LeveragePresent:
		class = model.ClassStrongFoundation
	default:
		class = model.ClassRealProblemWeakEdge
	}

	return model.ValidationState{
		ProblemValidity:  validity,
		LeveragePresence: presence,
		ValidationClass:  class,
	}
}
