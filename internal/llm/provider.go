package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/ideagauge/internal/model"
)

// Provider defines the interface for narration providers. Narration is
// strictly one-way: providers receive a finished report and produce
// prose. Nothing a provider returns ever feeds back into scoring.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Narrate generates a prose explanation of a finished report
	Narrate(ctx context.Context, req NarrateRequest) (*NarrateResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// NarrateRequest contains the input for narration
type NarrateRequest struct {
	// Report is the finished evaluation to narrate
	Report model.Report

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// NarrateResponse contains the provider's narration output
type NarrateResponse struct {
	// Text is the generated narration
	Text string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds narration provider configuration
type Config struct {
	// Provider name: "openai", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Model:     "",
		Timeout:   30,
		MaxTokens: 800,
	}
}

const systemPrompt = "You are explaining an idea validation report. Restate the recorded facts in plain prose. Never invent evidence, never change any verdict, never suggest the scores should be different."

// BuildPrompt constructs the default narration prompt from a report.
// Only facts already present in the report go in; the provider is told
// to restate, not to judge.
func BuildPrompt(report model.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, `Explain this idea validation report in 4-6 sentences of plain prose.

RULES:
1. Restate only the facts below. Do not add evidence or sources.
2. Do not second-guess any verdict or score.
3. Do not use marketing language.

Problem: %s
`, report.Problem)

	if report.TargetUser != "" {
		fmt.Fprintf(&b, "Target user: %s\n", report.TargetUser)
	}

	fmt.Fprintf(&b, "Problem level: %s (from %d intensity, %d complaint, %d workaround signals across %d results)\n",
		report.Stage1.Level,
		report.Stage1.Signals.Intensity,
		report.Stage1.Signals.Complaint,
		report.Stage1.Signals.Workaround,
		report.Stage1.ResultCount)

	if report.Stage2 != nil {
		m := report.Stage2.Market
		fmt.Fprintf(&b, "Market: %s competitor density, %s fragmentation, %s substitute pressure, %s maturity\n",
			m.CompetitorDensity, m.MarketFragmentation, m.SubstitutePressure, m.SolutionClassMaturity)
		for _, risk := range m.Risks {
			fmt.Fprintf(&b, "Market risk: %s\n", risk)
		}
	}

	if report.Stage3 != nil {
		if len(report.Stage3.Flags) == 0 {
			b.WriteString("Leverage: no flags detected\n")
		} else {
			flags := make([]string, 0, len(report.Stage3.Flags))
			for _, f := range report.Stage3.Flags {
				flags = append(flags, string(f))
			}
			fmt.Fprintf(&b, "Leverage flags: %s\n", strings.Join(flags, ", "))
		}
	}

	fmt.Fprintf(&b, "Final verdict: %s (problem %s, leverage %s)\n",
		report.Stage4.ValidationClass,
		report.Stage4.ProblemValidity,
		report.Stage4.LeveragePresence)

	return b.String()
}
