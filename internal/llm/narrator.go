package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/ideagauge/internal/model"
)

// Narrator produces the optional prose section of a report. Every
// failure mode degrades to the deterministic template with a warning;
// narration can never fail an evaluation or alter a verdict.
type Narrator struct {
	provider Provider
	config   Config
}

// NewNarrator creates a narrator. A nil provider means template-only.
func NewNarrator(provider Provider, config Config) *Narrator {
	return &Narrator{
		provider: provider,
		config:   config,
	}
}

// Narrate fills in the narration for a finished report. The report is
// read-only input; nothing here touches its verdicts.
func (n *Narrator) Narrate(ctx context.Context, report model.Report) *model.Narration {
	narration := &model.Narration{
		Enabled:  n.provider != nil,
		Fallback: true,
		Text:     FallbackNarration(report),
	}

	if n.provider == nil {
		return narration
	}

	narration.Provider = n.provider.Name()

	if !n.provider.IsAvailable(ctx) {
		narration.Warnings = append(narration.Warnings,
			fmt.Sprintf("narration provider %s unavailable, using template", n.provider.Name()))
		return narration
	}

	resp, err := n.provider.Narrate(ctx, NarrateRequest{
		Report:    report,
		Model:     n.config.Model,
		MaxTokens: n.config.MaxTokens,
	})
	if err != nil {
		narration.Warnings = append(narration.Warnings,
			fmt.Sprintf("narration failed: %v, using template", err))
		return narration
	}

	if resp.Text == "" {
		narration.Warnings = append(narration.Warnings,
			"narration provider returned empty text, using template")
		return narration
	}

	narration.Fallback = false
	narration.Model = resp.Model
	narration.Text = resp.Text
	return narration
}

// FallbackNarration renders the deterministic template. It restates
// the report's own facts and nothing else, so two runs over the same
// report always produce the same text.
func FallbackNarration(report model.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "The problem %q scored %s based on %d intensity, %d complaint and %d workaround signals across %d search results.",
		report.Problem,
		report.Stage1.Level,
		report.Stage1.Signals.Intensity,
		report.Stage1.Signals.Complaint,
		report.Stage1.Signals.Workaround,
		report.Stage1.ResultCount)

	if report.Stage2 != nil {
		m := report.Stage2.Market
		fmt.Fprintf(&b, " The market shows %s competitor density with %s fragmentation, %s substitute pressure and %s maturity.",
			strings.ToLower(string(m.CompetitorDensity)),
			strings.ToLower(string(m.MarketFragmentation)),
			strings.ToLower(string(m.SubstitutePressure)),
			strings.ToLower(string(m.SolutionClassMaturity)))
		for _, risk := range m.Risks {
			fmt.Fprintf(&b, " Market risk: %s.", risk)
		}
	}

	if report.Stage3 != nil {
		if len(report.Stage3.Flags) == 0 {
			b.WriteString(" No leverage flags were detected.")
		} else {
			flags := make([]string, 0, len(report.Stage3.Flags))
			for _, f := range report.Stage3.Flags {
				flags = append(flags, string(f))
			}
			fmt.Fprintf(&b, " Leverage flags: %s.", strings.Join(flags, ", "))
		}
	}

	fmt.Fprintf(&b, " Verdict: %s (problem %s, leverage %s).",
		report.Stage4.ValidationClass,
		report.Stage4.ProblemValidity,
		report.Stage4.LeveragePresence)

	return b.String()
}
