package classify

import (
	"testing"

	"github.com/ppiankov/ideagauge/internal/model"
)

func newTestClassifier() *Classifier {
	cfg := model.DefaultConfig()
	return NewClassifier(cfg.Rules, cfg.Thresholds)
}

func TestClassify_DomainDenylistWins(t *testing.T) {
	c := newTestClassifier()

	// A LinkedIn page stuffed with commercial vocabulary is still content
	got := c.Classify(model.SearchResult{
		Title:   "InvoiceBot pricing - sign up for a free trial",
		Snippet: "Enterprise dashboard, login, buy now, trusted by customers",
		URL:     "https://www.linkedin.com/company/invoicebot",
	})

	if got.Kind != model.KindContent {
		t.Errorf("kind = %s, want content", got.Kind)
	}
	if got.Step != "domain_denylist" {
		t.Errorf("step = %s, want domain_denylist", got.Step)
	}
}

func TestClassify_DenylistMatchesSubdomains(t *testing.T) {
	c := newTestClassifier()

	got := c.Classify(model.SearchResult{
		Title: "A thread about invoices",
		URL:   "https://old.reddit.com/r/freelance/comments/abc",
	})

	if got.Kind != model.KindContent || got.Step != "domain_denylist" {
		t.Errorf("got %s/%s, want content/domain_denylist", got.Kind, got.Step)
	}

	// A lookalike domain must not match
	got = c.Classify(model.SearchResult{
		Title:   "Dashboard pricing, sign up now",
		Snippet: "free trial for teams",
		URL:     "https://notreddit.com/pricing",
	})
	if got.Step == "domain_denylist" {
		t.Errorf("lookalike host hit the denylist")
	}
}

func TestClassify_Documentation(t *testing.T) {
	c := newTestClassifier()

	tests := []struct {
		name   string
		result model.SearchResult
		step   string
		kind   model.ResultKind
	}{
		{
			name: "docs path plus docs keyword",
			result: model.SearchResult{
				Title:   "API reference for exports",
				Snippet: "how do i configure the export schedule",
				URL:     "https://vendor.io/docs/exports",
			},
			step: "documentation",
			kind: model.KindContent,
		},
		{
			name: "strong docs phrase alone",
			result: model.SearchResult{
				Title:   "Getting started guide",
				Snippet: "an introduction to invoice tracking",
				URL:     "https://vendor.io/start",
			},
			step: "documentation",
			kind: model.KindContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.result)
			if got.Kind != tt.kind || got.Step != tt.step {
				t.Errorf("got %s/%s, want %s/%s", got.Kind, got.Step, tt.kind, tt.step)
			}
		})
	}
}

func TestClassify_Informational(t *testing.T) {
	c := newTestClassifier()

	tests := []struct {
		title string
	}{
		{"How to chase unpaid invoices"},
		{"The complete guide to invoice tracking"},
		{"InvoiceBot vs PayChaser comparison"},
		{"Top 10 invoice tools for freelancers"},
		{"7 best apps for expense reports"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			got := c.Classify(model.SearchResult{Title: tt.title, URL: "https://example.com/post"})
			if got.Kind != model.KindContent || got.Step != "informational" {
				t.Errorf("got %s/%s, want content/informational", got.Kind, got.Step)
			}
		})
	}
}

func TestClassify_DIY(t *testing.T) {
	c := newTestClassifier()

	// DIY pattern with no product evidence
	got := c.Classify(model.SearchResult{
		Title:   "Build your own invoice tracker",
		Snippet: "I share the spreadsheet template I use",
		URL:     "https://example.com/build",
	})
	if got.Kind != model.KindDIY || got.Step != "diy" {
		t.Errorf("got %s/%s, want diy/diy", got.Kind, got.Step)
	}

	// DIY wording on a real product page falls through to commercial
	got = c.Classify(model.SearchResult{
		Title:   "Open source invoice tracker - pricing",
		Snippet: "Sign up for the hosted version or request a demo",
		URL:     "https://tracker.dev/pricing",
	})
	if got.Kind != model.KindCommercial {
		t.Errorf("got %s/%s, want commercial", got.Kind, got.Step)
	}
}

func TestClassify_CommercialEvidence(t *testing.T) {
	c := newTestClassifier()

	tests := []struct {
		name   string
		result model.SearchResult
		kind   model.ResultKind
	}{
		{
			name: "two structural signals",
			result: model.SearchResult{
				Title:   "InvoiceBot pricing",
				Snippet: "Log in to your dashboard",
				URL:     "https://invoicebot.example.com/pricing",
			},
			kind: model.KindCommercial,
		},
		{
			name: "structural plus offering",
			result: model.SearchResult{
				Title:   "Sign up for InvoiceBot",
				Snippet: "Start your free trial today",
				URL:     "https://invoicebot.example.com",
			},
			kind: model.KindCommercial,
		},
		{
			name: "two categories of evidence",
			result: model.SearchResult{
				Title:   "InvoiceBot for teams",
				Snippet: "Request a demo of our enterprise plan",
				URL:     "https://invoicebot.example.com",
			},
			kind: model.KindCommercial,
		},
		{
			name: "single mention is not commercial",
			result: model.SearchResult{
				Title:   "Our pricing philosophy",
				Snippet: "some thoughts on fairness, read more",
				URL:     "https://example.com/essay",
			},
			kind: model.KindContent,
		},
		{
			name: "nothing matches",
			result: model.SearchResult{
				Title:   "Quarterly update",
				Snippet: "numbers were fine",
				URL:     "https://example.com/q3",
			},
			kind: model.KindUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.result)
			if got.Kind != tt.kind {
				t.Errorf("got %s (step %s), want %s", got.Kind, got.Step, tt.kind)
			}
		})
	}
}

func TestClassify_WordBoundaries(t *testing.T) {
	c := newTestClassifier()

	// "repricing" must not satisfy the "pricing" structural signal
	got := c.Classify(model.SearchResult{
		Title:   "Dynamic repricing strategies",
		Snippet: "thoughts on retail repricing and relogin flows",
		URL:     "https://example.com/essay",
	})
	if got.Kind == model.KindCommercial {
		t.Errorf("substring matches treated as product evidence: %+v", got)
	}
}

func TestClassifyAll_PreservesOrder(t *testing.T) {
	c := newTestClassifier()

	results := []model.SearchResult{
		{Title: "How to do it", URL: "https://a.example.com/1"},
		{Title: "InvoiceBot pricing dashboard", Snippet: "log in", URL: "https://b.example.com/2"},
		{Title: "thread", URL: "https://reddit.com/r/x/3"},
	}

	got := c.ClassifyAll(results)
	if len(got) != len(results) {
		t.Fatalf("got %d results, want %d", len(got), len(results))
	}
	for i := range results {
		if got[i].Result.URL != results[i].URL {
			t.Errorf("order not preserved at %d: %s", i, got[i].Result.URL)
		}
	}
}
