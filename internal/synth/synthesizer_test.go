package synth

import (
	"testing"

	"github.com/ppiankov/ideagauge/internal/model"
)

func TestSynthesize(t *testing.T) {
	allFlags := []model.LeverageFlag{
		model.LeverageCost,
		model.LeverageTime,
		model.LeverageCognitive,
		model.LeverageAccess,
		model.LeverageConstraint,
	}

	tests := []struct {
		name         string
		level        model.ProblemLevel
		flags        []model.LeverageFlag
		wantValidity model.ProblemValidity
		wantPresence model.LeveragePresence
		wantClass    model.ValidationClass
	}{
		{
			name:         "low problem with every flag is still weak",
			level:        model.LevelLow,
			flags:        allFlags,
			wantValidity: model.ProblemWeak,
			wantPresence: model.LeveragePresent,
			wantClass:    model.ClassWeakFoundation,
		},
		{
			name:         "moderate problem does not count as real",
			level:        model.LevelModerate,
			flags:        []model.LeverageFlag{model.LeverageCost},
			wantValidity: model.ProblemWeak,
			wantPresence: model.LeveragePresent,
			wantClass:    model.ClassWeakFoundation,
		},
		{
			name:         "severe problem with a flag is a strong foundation",
			level:        model.LevelSevere,
			flags:        []model.LeverageFlag{model.LeverageTime},
			wantValidity: model.ProblemReal,
			wantPresence: model.LeveragePresent,
			wantClass:    model.ClassStrongFoundation,
		},
		{
			name:         "drastic problem without flags has a weak edge",
			level:        model.LevelDrastic,
			flags:        nil,
			wantValidity: model.ProblemReal,
			wantPresence: model.LeverageNone,
			wantClass:    model.ClassRealProblemWeakEdge,
		},
		{
			name:         "low problem without flags",
			level:        model.LevelLow,
			flags:        nil,
			wantValidity: model.ProblemWeak,
			wantPresence: model.LeverageNone,
			wantClass:    model.ClassWeakFoundation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Synthesize(tt.level, tt.flags)
			if got.ProblemValidity != tt.wantValidity {
				t.Errorf("ProblemValidity = %s, want %s", got.ProblemValidity, tt.wantValidity)
			}
			if got.LeveragePresence != tt.wantPresence {
				t.Errorf("LeveragePresence = %s, want %s", got.LeveragePresence, tt.wantPresence)
			}
			if got.ValidationClass != tt.wantClass {
				t.Errorf("ValidationClass = %s, want %s", got.ValidationClass, tt.wantClass)
			}
		})
	}
}
