package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ppiankov/ideagauge/internal/model"
	"github.com/ppiankov/ideagauge/internal/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var (
	outJSON    string
	outMD      string
	timeout    time.Duration
	userAgent  string
	maxBytes   int64
	noCache    bool
	noFooter   bool
	searxURL   string
	enrichPage bool

	targetUser string
	frequency  string

	solutionText     string
	solutionModality string
	automationLevel  string

	leverageEnabled   bool
	pricingDelta      bool
	infraShift        bool
	distributionShift bool
	replacesLabor     bool
	stepReduction     int
	finalAnswer       bool
	uniqueData        bool
	underConstraints  bool

	llmEnabled  bool
	llmProvider string
	llmModel    string
)

// gaugeCmd represents the gauge command
var gaugeCmd = &cobra.Command{
	Use:   "gauge <problem>",
	Short: "Evaluate a single problem statement",
	Long: `Gauge runs one idea through all applicable stages:
- Search the public web for complaints, workarounds and competitors
- Count demand signals with fixed keyword rules
- Grade problem severity through an auditable guard chain
- With --solution: classify the competitive field and derive market facts
- With --leverage: detect structural edges from your answers
- Synthesize a final verdict from problem severity and leverage only

Example:
  ideagauge gauge "freelancers lose hours chasing unpaid invoices"
  ideagauge gauge "teams drown in meeting notes" --solution "AI notetaker" --modality SOFTWARE
  ideagauge gauge "manual expense reports" --solution "receipt scanner" --leverage --step-reduction 6`,
	Args: cobra.ExactArgs(1),
	RunE: runGauge,
}

func init() {
	rootCmd.AddCommand(gaugeCmd)

	// Output flags
	gaugeCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	gaugeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")

	// HTTP / search flags
	gaugeCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall evaluation timeout")
	gaugeCmd.Flags().StringVar(&userAgent, "ua", "Ideagauge/0.1 (+https://github.com/ppiankov/ideagauge)", "HTTP User-Agent")
	gaugeCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	gaugeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh searches)")
	gaugeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	gaugeCmd.Flags().StringVar(&searxURL, "searx-url", "", "SearxNG endpoint (default: http://localhost:8888)")
	gaugeCmd.Flags().BoolVar(&enrichPage, "enrich", false, "fetch pages to fill empty snippets (robots.txt respected)")

	// Problem context flags
	gaugeCmd.Flags().StringVar(&targetUser, "target-user", "", "who has this problem")
	gaugeCmd.Flags().StringVar(&frequency, "frequency", "", "how often the problem occurs")

	// Solution flags (unlock Stage 2)
	gaugeCmd.Flags().StringVar(&solutionText, "solution", "", "proposed solution description (enables market analysis)")
	gaugeCmd.Flags().StringVar(&solutionModality, "modality", "SOFTWARE", "solution modality (SOFTWARE, SERVICE, PHYSICAL_PRODUCT, HYBRID)")
	gaugeCmd.Flags().StringVar(&automationLevel, "automation", "", "automation level, free text (e.g. \"fully automated\")")

	// Leverage flags (unlock Stage 3)
	gaugeCmd.Flags().BoolVar(&leverageEnabled, "leverage", false, "enable leverage detection from the answers below")
	gaugeCmd.Flags().BoolVar(&pricingDelta, "pricing-delta", false, "order-of-magnitude pricing advantage exists")
	gaugeCmd.Flags().BoolVar(&infraShift, "infrastructure-shift", false, "a recent infrastructure shift enables this")
	gaugeCmd.Flags().BoolVar(&distributionShift, "distribution-shift", false, "a new distribution channel enables this")
	gaugeCmd.Flags().BoolVar(&replacesLabor, "replaces-labor", false, "replaces human labor")
	gaugeCmd.Flags().IntVar(&stepReduction, "step-reduction", 0, "workflow steps removed for the user")
	gaugeCmd.Flags().BoolVar(&finalAnswer, "final-answer", false, "delivers a final answer, not raw material")
	gaugeCmd.Flags().BoolVar(&uniqueData, "unique-data", false, "has access to data others lack")
	gaugeCmd.Flags().BoolVar(&underConstraints, "constraints", false, "works under constraints competitors cannot meet")

	// Narration flags
	gaugeCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable narration (prose only, never affects the verdict)")
	gaugeCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "narration provider (openai, ollama)")
	gaugeCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "narration model name")
}

func runGauge(cmd *cobra.Command, args []string) error {
	problem := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Gauging: %s\n", problem)
		fmt.Fprintf(os.Stderr, "Search:  %s\n", cfg.Search.BaseURL)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", timeout)
		fmt.Fprintf(os.Stderr, "Cache:   %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	req := pipeline.Request{
		Problem:    problem,
		TargetUser: targetUser,
		Frequency:  frequency,
	}

	if solutionText != "" {
		modality, err := model.ParseModality(solutionModality)
		if err != nil {
			return err
		}
		req.Solution = &model.Solution{
			Description:     solutionText,
			Modality:        modality,
			AutomationLevel: automationLevel,
		}
	}

	if leverageEnabled {
		if req.Solution == nil {
			fmt.Fprintf(os.Stderr, "Warning: --leverage without --solution runs against empty market facts\n")
		}
		req.Leverage = model.LeverageAnswers{
			model.FieldPricingDelta:          pricingDelta,
			model.FieldInfrastructureShift:   infraShift,
			model.FieldDistributionShift:     distributionShift,
			model.FieldReplacesHumanLabor:    replacesLabor,
			model.FieldStepReduction:         stepReduction,
			model.FieldDeliversFinalAnswer:   finalAnswer,
			model.FieldUniqueDataAccess:      uniqueData,
			model.FieldWorksUnderConstraints: underConstraints,
		}
	}

	p, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	report, err := p.Evaluate(ctx, req)
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Searched %d unique results\n", report.Stage1.ResultCount)
		fmt.Fprintf(os.Stderr, "✓ Problem level: %s\n", report.Stage1.Level)
		if report.Stage2 != nil {
			fmt.Fprintf(os.Stderr, "✓ Classified %d solution results\n", report.Stage2.ResultCount)
		}
		if report.Narration != nil && !report.Narration.Fallback {
			fmt.Fprintf(os.Stderr, "✓ Narrated using %s/%s\n", report.Narration.Provider, report.Narration.Model)
		}
		fmt.Fprintln(os.Stderr)
	}

	if err := p.RenderReport(report, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}

// buildConfig assembles configuration from defaults, the config file,
// viper env values and flags, in that order
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	// The config file overlays the defaults, including the keyword
	// rule tables
	if path := viper.ConfigFileUsed(); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	// IDEAGAUGE_* env values
	if v := viper.GetString("search.base_url"); v != "" {
		cfg.Search.BaseURL = v
	}
	if v := viper.GetString("searx_url"); v != "" {
		cfg.Search.BaseURL = v
	}

	// Flags win over everything
	if searxURL != "" {
		cfg.Search.BaseURL = searxURL
	}
	cfg.HTTP.Timeout = timeout
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.MaxBodyBytes = maxBytes
	cfg.Cache.Enabled = !noCache
	cfg.Enrich.Enabled = enrichPage
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel

		switch llmProvider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "ollama":
			// Ollama doesn't need an API key
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	}

	return cfg, nil
}
