package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/ideagauge/internal/model"
)

// Renderer writes reports as JSON and Markdown
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the report as indented JSON
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write JSON: %w", err)
	}
	return nil
}

// RenderMarkdown writes the report as a Markdown document
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	content := r.Markdown(report)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// Markdown builds the full Markdown document
func (r *Renderer) Markdown(report *model.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Idea Validation Report\n\n")
	fmt.Fprintf(&b, "**Problem:** %s\n\n", report.Problem)
	if report.TargetUser != "" {
		fmt.Fprintf(&b, "**Target user:** %s\n\n", report.TargetUser)
	}
	if report.Frequency != "" {
		fmt.Fprintf(&b, "**Frequency:** %s\n\n", report.Frequency)
	}
	fmt.Fprintf(&b, "**Evaluated:** %s\n\n", report.EvaluatedAt.Format("2006-01-02 15:04 UTC"))

	fmt.Fprintf(&b, "## Verdict: %s\n\n", report.Stage4.ValidationClass)
	fmt.Fprintf(&b, "| Dimension | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Problem validity | %s |\n", report.Stage4.ProblemValidity)
	fmt.Fprintf(&b, "| Leverage presence | %s |\n", report.Stage4.LeveragePresence)
	fmt.Fprintf(&b, "\n")

	r.renderProblemStage(&b, report.Stage1)

	if report.Stage2 != nil {
		r.renderSolutionStage(&b, report.Stage2)
	}

	if report.Stage3 != nil {
		r.renderLeverageStage(&b, report.Stage3)
	}

	if len(report.Warnings) > 0 {
		fmt.Fprintf(&b, "## Warnings\n\n")
		for _, w := range report.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
		fmt.Fprintf(&b, "\n")
	}

	// Narration stays in its own section so the scored facts above
	// remain clearly separated from generated prose
	if report.Narration != nil && report.Narration.Text != "" {
		fmt.Fprintf(&b, "## Narration\n\n")
		if report.Narration.Fallback {
			fmt.Fprintf(&b, "_Deterministic template (no language model used)._\n\n")
		} else {
			fmt.Fprintf(&b, "_Generated by %s/%s. Prose only: the verdict above is computed, not narrated._\n\n",
				report.Narration.Provider, report.Narration.Model)
		}
		fmt.Fprintf(&b, "%s\n\n", report.Narration.Text)
		for _, w := range report.Narration.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}

	if r.includeFooter {
		fmt.Fprintf(&b, "---\n\n")
		fmt.Fprintf(&b, "Generated by [ideagauge](https://github.com/ppiankov/ideagauge). ")
		fmt.Fprintf(&b, "Every number above traces to a rule in the report JSON; nothing is a black box.\n")
	}

	return b.String()
}

func (r *Renderer) renderProblemStage(b *strings.Builder, stage model.ProblemStage) {
	fmt.Fprintf(b, "## Stage 1: Problem Demand\n\n")
	fmt.Fprintf(b, "**Level:** %s\n\n", stage.Level)
	fmt.Fprintf(b, "Searched %d unique results for %q.\n\n", stage.ResultCount, stage.NormalizedText)

	fmt.Fprintf(b, "| Signal | Count |\n|---|---|\n")
	fmt.Fprintf(b, "| Intensity | %d |\n", stage.Signals.Intensity)
	fmt.Fprintf(b, "| Complaint | %d |\n", stage.Signals.Complaint)
	fmt.Fprintf(b, "| Workaround | %d |\n", stage.Signals.Workaround)
	fmt.Fprintf(b, "\n")

	if len(stage.Guards) > 0 {
		fmt.Fprintf(b, "### Guard Trace\n\n")
		fmt.Fprintf(b, "| Guard | Before | After | Reason |\n|---|---|---|---|\n")
		for _, g := range stage.Guards {
			fmt.Fprintf(b, "| %s | %s | %s | %s |\n", g.Guard, g.Before, g.After, g.Reason)
		}
		fmt.Fprintf(b, "\n")
	}
}

func (r *Renderer) renderSolutionStage(b *strings.Builder, stage *model.SolutionStage) {
	fmt.Fprintf(b, "## Stage 2: Market Strength\n\n")
	fmt.Fprintf(b, "Classified %d unique results for %q.\n\n", stage.ResultCount, stage.NormalizedText)

	m := stage.Market
	fmt.Fprintf(b, "| Fact | Value |\n|---|---|\n")
	fmt.Fprintf(b, "| Competitor density | %s |\n", m.CompetitorDensity)
	fmt.Fprintf(b, "| Market fragmentation | %s |\n", m.MarketFragmentation)
	fmt.Fprintf(b, "| Substitute pressure | %s |\n", m.SubstitutePressure)
	fmt.Fprintf(b, "| Content saturation | %s |\n", m.ContentSaturation)
	fmt.Fprintf(b, "| Solution class maturity | %s |\n", m.SolutionClassMaturity)
	fmt.Fprintf(b, "| Automation relevance | %s |\n", m.AutomationRelevance)
	fmt.Fprintf(b, "\n")

	for _, risk := range m.Risks {
		fmt.Fprintf(b, "**Risk:** %s\n\n", risk)
	}

	if len(m.CompetitorDomains) > 0 {
		fmt.Fprintf(b, "Competitor domains: %s\n\n", strings.Join(m.CompetitorDomains, ", "))
	}
}

func (r *Renderer) renderLeverageStage(b *strings.Builder, stage *model.LeverageStage) {
	fmt.Fprintf(b, "## Stage 3: Leverage\n\n")

	if len(stage.Flags) == 0 {
		fmt.Fprintf(b, "No leverage flags detected.\n\n")
	} else {
		for _, f := range stage.Flags {
			fmt.Fprintf(b, "- %s\n", f)
		}
		fmt.Fprintf(b, "\n")
	}

	for _, w := range stage.Warnings {
		fmt.Fprintf(b, "> Sanity check: %s\n\n", w.Message)
	}
}

// RenderSummary prints a short verdict to stdout
func (r *Renderer) RenderSummary(report *model.Report) {
	fmt.Printf("\n")
	fmt.Printf("Problem:  %s\n", report.Problem)
	fmt.Printf("Level:    %s (%d intensity / %d complaint / %d workaround signals)\n",
		report.Stage1.Level,
		report.Stage1.Signals.Intensity,
		report.Stage1.Signals.Complaint,
		report.Stage1.Signals.Workaround)

	if report.Stage2 != nil {
		m := report.Stage2.Market
		fmt.Printf("Market:   density=%s fragmentation=%s maturity=%s\n",
			m.CompetitorDensity, m.MarketFragmentation, m.SolutionClassMaturity)
	}

	if report.Stage3 != nil {
		if len(report.Stage3.Flags) == 0 {
			fmt.Printf("Leverage: none\n")
		} else {
			flags := make([]string, 0, len(report.Stage3.Flags))
			for _, f := range report.Stage3.Flags {
				flags = append(flags, string(f))
			}
			fmt.Printf("Leverage: %s\n", strings.Join(flags, ", "))
		}
	}

	fmt.Printf("Verdict:  %s\n", report.Stage4.ValidationClass)
	fmt.Printf("\n")
}

// RenderReport renders the report to the configured outputs
func (p *Pipeline) RenderReport(report *model.Report, jsonPath string, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	p.renderer.RenderSummary(report)
	return nil
}
