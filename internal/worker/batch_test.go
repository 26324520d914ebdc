package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/ppiankov/ideagauge/internal/model"
	"github.com/ppiankov/ideagauge/internal/pipeline"
)

type stubEvaluator struct {
	calls   int32
	failFor string
}

func (e *stubEvaluator) Evaluate(_ context.Context, req pipeline.Request) (*model.Report, error) {
	atomic.AddInt32(&e.calls, 1)
	if req.Problem == e.failFor {
		return nil, errors.New("evaluation failed")
	}
	return &model.Report{Problem: req.Problem}, nil
}

func TestBatchProcessor_ProcessProblems(t *testing.T) {
	eval := &stubEvaluator{failFor: "broken one"}
	b := NewBatchProcessor(eval, 2)

	problems := []string{
		"tracking invoices by hand",
		"broken one",
		"scheduling shifts over text messages",
	}
	results := b.ProcessProblems(context.Background(), problems)

	if len(results) != len(problems) {
		t.Fatalf("len(results) = %d, want %d", len(results), len(problems))
	}
	if atomic.LoadInt32(&eval.calls) != int32(len(problems)) {
		t.Errorf("evaluator calls = %d, want %d", eval.calls, len(problems))
	}

	failures := 0
	for _, r := range results {
		if r.Error != nil {
			failures++
			if r.Problem != "broken one" {
				t.Errorf("failure attributed to %q, want %q", r.Problem, "broken one")
			}
			continue
		}
		if r.Report == nil || r.Report.Problem != r.Problem {
			t.Errorf("result %q carries report %+v", r.Problem, r.Report)
		}
	}
	if failures != 1 {
		t.Errorf("failures = %d, want 1", failures)
	}
}

func TestBatchProcessor_EmptyInput(t *testing.T) {
	b := NewBatchProcessor(&stubEvaluator{}, 2)
	results := b.ProcessProblems(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("len(results) = %d, want 0", len(results))
	}
}

func TestReadProblemsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "problems.txt")
	content := `# idea backlog
tracking invoices by hand

  scheduling shifts over text messages
tracking invoices by hand
# another comment
chasing unpaid invoices
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	problems, err := ReadProblemsFromFile(path)
	if err != nil {
		t.Fatalf("ReadProblemsFromFile() error = %v", err)
	}

	want := []string{
		"tracking invoices by hand",
		"scheduling shifts over text messages",
		"chasing unpaid invoices",
	}
	if len(problems) != len(want) {
		t.Fatalf("problems = %v, want %v", problems, want)
	}
	for i := range want {
		if problems[i] != want[i] {
			t.Errorf("problems[%d] = %q, want %q", i, problems[i], want[i])
		}
	}
}

func TestReadProblemsFromFile_Missing(t *testing.T) {
	if _, err := ReadProblemsFromFile(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Error("expected error for a missing file")
	}
}
