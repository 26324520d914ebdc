package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/ideagauge/internal/model"
	"github.com/ppiankov/ideagauge/internal/pipeline"
)

// Evaluator runs one problem statement through the pipeline
type Evaluator interface {
	Evaluate(ctx context.Context, req pipeline.Request) (*model.Report, error)
}

// EvaluateJob is one problem evaluation
type EvaluateJob struct {
	Request   pipeline.Request
	Evaluator Evaluator
}

// Execute runs the evaluation
func (j *EvaluateJob) Execute(ctx context.Context) Result {
	report, err := j.Evaluator.Evaluate(ctx, j.Request)
	return &EvaluateResult{
		Problem: j.Request.Problem,
		Report:  report,
		Error:   err,
	}
}

// EvaluateResult is the outcome of one problem evaluation
type EvaluateResult struct {
	Problem string
	Report  *model.Report
	Error   error
}

// GetError returns the evaluation error, if any
func (r *EvaluateResult) GetError() error {
	return r.Error
}

// BatchProcessor evaluates multiple problem statements concurrently
type BatchProcessor struct {
	evaluator   Evaluator
	concurrency int
}

// NewBatchProcessor creates a batch processor
func NewBatchProcessor(evaluator Evaluator, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		evaluator:   evaluator,
		concurrency: concurrency,
	}
}

// ProcessProblems evaluates the given problems concurrently. Result
// order follows completion, not input; each result carries its problem.
func (b *BatchProcessor) ProcessProblems(ctx context.Context, problems []string) []*EvaluateResult {
	if len(problems) == 0 {
		return []*EvaluateResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, p := range problems {
		pool.Submit(&EvaluateJob{
			Request:   pipeline.Request{Problem: p},
			Evaluator: b.evaluator,
		})
	}

	results := pool.Wait()

	out := make([]*EvaluateResult, len(results))
	for i, r := range results {
		out[i] = r.(*EvaluateResult)
	}
	return out
}

// ProcessFile reads problem statements from a file (one per line) and
// evaluates them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*EvaluateResult, error) {
	problems, err := ReadProblemsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read problems: %w", err)
	}
	return b.ProcessProblems(ctx, problems), nil
}

// ReadProblemsFromFile reads non-empty, non-comment lines, dropping
// duplicates
func ReadProblemsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var problems []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			problems = append(problems, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}
	return problems, nil
}
