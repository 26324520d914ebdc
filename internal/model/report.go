package model

import "time"

// ProblemValidity is the binary reality verdict on the problem
type ProblemValidity string

const (
	ProblemReal ProblemValidity = "REAL"
	ProblemWeak ProblemValidity = "WEAK"
)

// LeveragePresence states whether any leverage flag fired
type LeveragePresence string

const (
	LeveragePresent LeveragePresence = "PRESENT"
	LeverageNone    LeveragePresence = "NONE"
)

// ValidationClass is the final three-way verdict
type ValidationClass string

const (
	ClassStrongFoundation    ValidationClass = "STRONG_FOUNDATION"
	ClassRealProblemWeakEdge ValidationClass = "REAL_PROBLEM_WEAK_EDGE"
	ClassWeakFoundation      ValidationClass = "WEAK_FOUNDATION"
)

// ValidationState is the synthesized final verdict. Market data never
// participates in this derivation; it is narrative context only.
type ValidationState struct {
	ProblemValidity  ProblemValidity  `json:"problem_validity"`
	LeveragePresence LeveragePresence `json:"leverage_presence"`
	ValidationClass  ValidationClass  `json:"validation_class"`
}

// ProblemStage is the Stage 1 output: demand evidence and severity
type ProblemStage struct {
	NormalizedText string             `json:"normalized_text"`
	Queries        map[Bucket][]Query `json:"queries"`
	ResultCount    int                `json:"result_count"` // After URL dedup
	Signals        SignalCounts       `json:"signals"`
	Matches        []SignalMatch      `json:"matches,omitempty"`
	Level          ProblemLevel       `json:"problem_level"`
	Guards         []GuardTrace       `json:"guards"`
}

// SolutionStage is the Stage 2 output: classified field and market facts
type SolutionStage struct {
	NormalizedText string             `json:"normalized_text"`
	Queries        map[Bucket][]Query `json:"queries"`
	ResultCount    int                `json:"result_count"`
	Classified     []ClassifiedResult `json:"classified,omitempty"`
	Market         MarketStrength     `json:"market"`
}

// LeverageStage is the Stage 3 output: edge detection
type LeverageStage struct {
	Flags    []LeverageFlag  `json:"flags"`
	Warnings []SanityWarning `json:"warnings,omitempty"`
}

// Narration is the optional prose explanation of the verdict. It is
// produced after all scoring and never feeds back into any stage.
type Narration struct {
	Enabled  bool     `json:"enabled"`
	Provider string   `json:"provider,omitempty"`
	Model    string   `json:"model,omitempty"`
	Fallback bool     `json:"fallback"` // True when the deterministic template was used
	Text     string   `json:"text,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// Report is the complete nested Stage 1-4 evaluation
type Report struct {
	Problem     string    `json:"problem"`
	TargetUser  string    `json:"target_user,omitempty"`
	Frequency   string    `json:"frequency,omitempty"`
	EvaluatedAt time.Time `json:"evaluated_at"`

	Stage1 ProblemStage    `json:"stage1_problem"`
	Stage2 *SolutionStage  `json:"stage2_solution,omitempty"`
	Stage3 *LeverageStage  `json:"stage3_leverage,omitempty"`
	Stage4 ValidationState `json:"stage4_validation"`

	Warnings  []string   `json:"warnings,omitempty"`
	Narration *Narration `json:"narration,omitempty"`
}
