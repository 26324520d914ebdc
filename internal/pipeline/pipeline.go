package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/ppiankov/ideagauge/internal/classify"
	"github.com/ppiankov/ideagauge/internal/enrich"
	"github.com/ppiankov/ideagauge/internal/extract"
	"github.com/ppiankov/ideagauge/internal/leverage"
	"github.com/ppiankov/ideagauge/internal/llm"
	"github.com/ppiankov/ideagauge/internal/market"
	"github.com/ppiankov/ideagauge/internal/model"
	"github.com/ppiankov/ideagauge/internal/query"
	"github.com/ppiankov/ideagauge/internal/search"
	"github.com/ppiankov/ideagauge/internal/severity"
	"github.com/ppiankov/ideagauge/internal/synth"
	"github.com/ppiankov/ideagauge/internal/textnorm"
	"github.com/ppiankov/ideagauge/internal/urlnorm"
)

// Request is one evaluation: a problem statement plus the optional
// solution and leverage inputs that unlock Stage 2 and Stage 3
type Request struct {
	Problem    string
	TargetUser string
	Frequency  string
	Solution   *model.Solution
	Leverage   model.LeverageAnswers
}

// Pipeline orchestrates the complete Stage 1-4 evaluation
type Pipeline struct {
	provider   search.Provider
	generator  *query.Generator
	canon      *urlnorm.Canonicalizer
	extractor  *extract.SignalExtractor
	severity   *severity.Classifier
	classifier *classify.Classifier
	market     *market.Computer
	leverage   *leverage.Engine
	enricher   *enrich.Enricher // Optional (nil when enrichment disabled)
	narrator   *llm.Narrator
	renderer   *Renderer
	config     *model.Config
}

// NewPipeline creates a pipeline with the given configuration and
// search provider
func NewPipeline(cfg *model.Config, provider search.Provider) *Pipeline {
	var llmProvider llm.Provider
	llmConfig := llm.ConfigFromModel(cfg.LLM, cfg.HTTP)
	if cfg.LLM.Provider != "" {
		p, err := llm.NewProvider(llmConfig)
		if err != nil {
			fmt.Printf("Warning: Failed to initialize narration provider: %v\n", err)
		} else {
			llmProvider = p
		}
	}

	var enricher *enrich.Enricher
	if cfg.Enrich.Enabled {
		enricher = enrich.NewEnricher(cfg, nil)
	}

	return &Pipeline{
		provider:   provider,
		generator:  query.NewGenerator(cfg.Buckets),
		canon:      urlnorm.NewCanonicalizer(cfg.Rules),
		extractor:  extract.NewSignalExtractor(cfg.Rules),
		severity:   severity.NewClassifier(cfg.Thresholds),
		classifier: classify.NewClassifier(cfg.Rules, cfg.Thresholds),
		market:     market.NewComputer(cfg.Rules, cfg.Thresholds),
		leverage:   leverage.NewEngine(cfg.Thresholds),
		enricher:   enricher,
		narrator:   llm.NewNarrator(llmProvider, llmConfig),
		renderer:   NewRenderer(cfg.Output.IncludeFooter),
		config:     cfg,
	}
}

// SetEnricher overrides the enricher, mainly so the CLI can share one
// rate limiter between search and enrichment
func (p *Pipeline) SetEnricher(e *enrich.Enricher) {
	p.enricher = e
}

// Evaluate runs one request through all applicable stages. Stage 2
// runs only when a solution is supplied; Stage 3 only when leverage
// answers are supplied. Market data never reaches Stage 4.
func (p *Pipeline) Evaluate(ctx context.Context, req Request) (*model.Report, error) {
	if req.Problem == "" {
		return nil, fmt.Errorf("problem statement is required")
	}

	report := &model.Report{
		Problem:     req.Problem,
		TargetUser:  req.TargetUser,
		Frequency:   req.Frequency,
		EvaluatedAt: time.Now().UTC(),
	}

	// Stage 1: problem demand
	stage1, warnings, err := p.evaluateProblem(ctx, req.Problem)
	if err != nil {
		return nil, fmt.Errorf("stage 1: %w", err)
	}
	report.Stage1 = *stage1
	report.Warnings = append(report.Warnings, warnings...)

	// Stage 2: solution field
	if req.Solution != nil {
		stage2, warnings, err := p.evaluateSolution(ctx, req.Solution)
		if err != nil {
			return nil, fmt.Errorf("stage 2: %w", err)
		}
		report.Stage2 = stage2
		report.Warnings = append(report.Warnings, warnings...)
	}

	// Stage 3: leverage edge
	if req.Leverage != nil {
		var marketFacts model.MarketStrength
		if report.Stage2 != nil {
			marketFacts = report.Stage2.Market
		}

		flags, sanity, err := p.leverage.Detect(req.Leverage, marketFacts)
		if err != nil {
			return nil, fmt.Errorf("stage 3: %w", err)
		}
		report.Stage3 = &model.LeverageStage{
			Flags:    flags,
			Warnings: sanity,
		}
	}

	// Stage 4: synthesis from problem level and leverage flags only
	var flags []model.LeverageFlag
	if report.Stage3 != nil {
		flags = report.Stage3.Flags
	}
	report.Stage4 = synth.Synthesize(report.Stage1.Level, flags)

	// Narration comes last and never feeds back into any stage
	report.Narration = p.narrator.Narrate(ctx, *report)

	return report, nil
}

// evaluateProblem runs normalization, query generation, search and
// signal scoring for the problem statement
func (p *Pipeline) evaluateProblem(ctx context.Context, problem string) (*model.ProblemStage, []string, error) {
	normalized := textnorm.Normalize(problem)
	if normalized == "" {
		return nil, nil, fmt.Errorf("problem statement is empty after normalization")
	}

	queries, warnings := p.generator.Problem(normalized)

	results, searchWarnings := p.runSearches(ctx, queries)
	warnings = append(warnings, searchWarnings...)

	deduped := p.canon.Deduplicate(results)

	if p.enricher != nil {
		deduped = p.enricher.Enrich(ctx, deduped)
	}

	counts, matches := p.extractor.Extract(deduped)
	level, guards := p.severity.Classify(counts)

	return &model.ProblemStage{
		NormalizedText: normalized,
		Queries:        queries,
		ResultCount:    len(deduped),
		Signals:        counts,
		Matches:        matches,
		Level:          level,
		Guards:         guards,
	}, warnings, nil
}

// evaluateSolution runs the Stage 2 search and market computation
func (p *Pipeline) evaluateSolution(ctx context.Context, solution *model.Solution) (*model.SolutionStage, []string, error) {
	normalized := textnorm.Normalize(solution.Description)
	if normalized == "" {
		return nil, nil, fmt.Errorf("solution description is empty after normalization")
	}

	queries, warnings := p.generator.Solution(normalized)

	results, searchWarnings := p.runSearches(ctx, queries)
	warnings = append(warnings, searchWarnings...)

	deduped := p.canon.Deduplicate(results)

	if p.enricher != nil {
		deduped = p.enricher.Enrich(ctx, deduped)
	}

	classified := p.classifier.ClassifyAll(deduped)
	facts := p.market.Compute(classified, solution.Modality, solution.AutomationLevel)

	return &model.SolutionStage{
		NormalizedText: normalized,
		Queries:        queries,
		ResultCount:    len(deduped),
		Classified:     classified,
		Market:         facts,
	}, warnings, nil
}

// runSearches issues every query bucket by bucket, preserving provider
// order within each query. A failed query warns and is skipped; only a
// context cancellation aborts the run.
func (p *Pipeline) runSearches(ctx context.Context, queries map[model.Bucket][]model.Query) ([]model.SearchResult, []string) {
	var results []model.SearchResult
	var warnings []string

	for _, bucket := range model.Buckets() {
		for _, q := range queries[bucket] {
			if ctx.Err() != nil {
				warnings = append(warnings, fmt.Sprintf("search aborted: %v", ctx.Err()))
				return results, warnings
			}

			found, err := p.provider.Search(ctx, q.Text)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("search failed for %q: %v", q.Text, err))
				continue
			}
			results = append(results, found...)
		}
	}

	return results, warnings
}
