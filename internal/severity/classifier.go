// Package severity derives the ProblemLevel from SignalCounts in one
// deterministic pass: a weighted score picks a tentative level, then an
// ordered chain of guards applies ceilings and floors. Each guard
// records its before/after decision so every verdict is re-derivable by
// hand.
package severity

import (
	"fmt"

	"github.com/ppiankov/ideagauge/internal/model"
)

// Classifier maps signal counts to a problem level
type Classifier struct {
	t model.Thresholds
}

// NewClassifier creates a classifier with the given thresholds
func NewClassifier(t model.Thresholds) *Classifier {
	return &Classifier{t: t}
}

// state threads the level through the guard chain
type state struct {
	counts model.SignalCounts
	score  int
	level  model.ProblemLevel
	traces []model.GuardTrace
	done   bool
}

// guard is one deterministic adjustment step
type guard struct {
	name  string
	apply func(*Classifier, *state)
}

// guards run in fixed order; none retries or loops
var guards = []guard{
	{"zero_signals", (*Classifier).guardZeroSignals},
	{"weighted_score", (*Classifier).guardWeightedScore},
	{"total_ceiling", (*Classifier).guardTotalCeiling},
	{"drastic_floor", (*Classifier).guardDrasticFloor},
	{"severe_floor", (*Classifier).guardSevereFloor},
}

// Classify returns the problem level and the guard trace
func (c *Classifier) Classify(counts model.SignalCounts) (model.ProblemLevel, []model.GuardTrace) {
	s := &state{counts: counts, level: model.LevelLow}
	for _, g := range guards {
		if s.done {
			break
		}
		before := s.level
		g.apply(c, s)
		if len(s.traces) == 0 || s.traces[len(s.traces)-1].Guard != g.name {
			s.traces = append(s.traces, model.GuardTrace{Guard: g.name, Before: before, After: s.level})
		}
	}
	return s.level, s.traces
}

// guardZeroSignals short-circuits the no-evidence case
func (c *Classifier) guardZeroSignals(s *state) {
	if s.counts.Total() == 0 {
		s.level = model.LevelLow
		s.done = true
		s.traces = append(s.traces, model.GuardTrace{
			Guard:  "zero_signals",
			Before: model.LevelLow,
			After:  model.LevelLow,
			Reason: "no signals",
		})
	}
}

// guardWeightedScore computes the tentative level. The workaround
// contribution is capped unconditionally so workaround volume alone can
// never be gamed into severity.
func (c *Classifier) guardWeightedScore(s *state) {
	effectiveWorkaround := s.counts.Workaround
	if effectiveWorkaround > c.t.WorkaroundCap {
		effectiveWorkaround = c.t.WorkaroundCap
	}

	s.score = c.t.IntensityWeight*s.counts.Intensity +
		c.t.ComplaintWeight*s.counts.Complaint +
		c.t.WorkaroundWeight*effectiveWorkaround

	switch {
	case s.score >= c.t.DrasticScore:
		s.level = model.LevelDrastic
	case s.score >= c.t.SevereScore:
		s.level = model.LevelSevere
	case s.score >= c.t.ModerateScore:
		s.level = model.LevelModerate
	default:
		s.level = model.LevelLow
	}

	s.traces = append(s.traces, model.GuardTrace{
		Guard:  "weighted_score",
		Before: model.LevelLow,
		After:  s.level,
		Reason: fmt.Sprintf("score=%d (effective_workaround=%d)", s.score, effectiveWorkaround),
	})
}

// guardTotalCeiling caps the level by total evidence volume: a handful
// of documents cannot certify a severe problem no matter how they score
func (c *Classifier) guardTotalCeiling(s *state) {
	total := s.counts.Total()
	before := s.level

	var ceiling model.ProblemLevel
	switch {
	case total <= c.t.LowCeilingTotal:
		ceiling = model.LevelLow
	case total < c.t.ModerateCeilingTotal:
		ceiling = model.LevelModerate
	case total < c.t.DrasticFloorTotal:
		ceiling = model.LevelSevere
	default:
		ceiling = model.LevelDrastic
	}

	if s.level.Rank() > ceiling.Rank() {
		s.level = ceiling
	}

	s.traces = append(s.traces, model.GuardTrace{
		Guard:  "total_ceiling",
		Before: before,
		After:  s.level,
		Reason: fmt.Sprintf("total=%d ceiling=%s", total, ceiling),
	})
}

// guardDrasticFloor downgrades DRASTIC unless intensity volume and the
// bucketed intensity level both clear the bar
func (c *Classifier) guardDrasticFloor(s *state) {
	if s.level != model.LevelDrastic {
		return
	}
	if s.counts.Intensity >= c.t.DrasticMinIntensity && c.intensityBucket(s.counts.Intensity) == "HIGH" {
		return
	}
	s.traces = append(s.traces, model.GuardTrace{
		Guard:  "drastic_floor",
		Before: model.LevelDrastic,
		After:  model.LevelSevere,
		Reason: fmt.Sprintf("intensity=%d bucket=%s", s.counts.Intensity, c.intensityBucket(s.counts.Intensity)),
	})
	s.level = model.LevelSevere
}

// guardSevereFloor downgrades SEVERE without at least one intensity
// signal and enough total evidence
func (c *Classifier) guardSevereFloor(s *state) {
	if s.level != model.LevelSevere {
		return
	}
	if s.counts.Intensity >= 1 && s.counts.Total() >= c.t.SevereMinTotal {
		return
	}
	s.traces = append(s.traces, model.GuardTrace{
		Guard:  "severe_floor",
		Before: model.LevelSevere,
		After:  model.LevelModerate,
		Reason: fmt.Sprintf("intensity=%d total=%d", s.counts.Intensity, s.counts.Total()),
	})
	s.level = model.LevelModerate
}

// intensityBucket grades intensity volume LOW/MEDIUM/HIGH at the
// configured breakpoints
func (c *Classifier) intensityBucket(intensity int) string {
	switch {
	case intensity <= c.t.IntensityLowMax:
		return "LOW"
	case intensity <= c.t.IntensityMediumMax:
		return "MEDIUM"
	default:
		return "HIGH"
	}
}
