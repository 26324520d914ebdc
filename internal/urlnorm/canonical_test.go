package urlnorm

import (
	"testing"

	"github.com/ppiankov/ideagauge/internal/model"
)

func newTestCanonicalizer() *Canonicalizer {
	return NewCanonicalizer(model.DefaultRules())
}

func TestCanonicalize_Rules(t *testing.T) {
	c := newTestCanonicalizer()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "http upgraded to https",
			input: "http://example.com/page",
			want:  "https://example.com/page",
		},
		{
			name:  "host lowercased",
			input: "https://EXAMPLE.com/Page",
			want:  "https://example.com/Page",
		},
		{
			name:  "trailing slash trimmed",
			input: "https://example.com/page/",
			want:  "https://example.com/page",
		},
		{
			name:  "root slash kept",
			input: "https://example.com/",
			want:  "https://example.com/",
		},
		{
			name:  "fragment dropped",
			input: "https://example.com/page#section-2",
			want:  "https://example.com/page",
		},
		{
			name:  "utm params stripped",
			input: "https://example.com/page?utm_source=x&utm_medium=y",
			want:  "https://example.com/page",
		},
		{
			name:  "fbclid stripped, real param kept",
			input: "https://example.com/page?fbclid=abc&id=42",
			want:  "https://example.com/page?id=42",
		},
		{
			name:  "params sorted",
			input: "https://example.com/page?b=2&a=1",
			want:  "https://example.com/page?a=1&b=2",
		},
		{
			name:  "localhost keeps http",
			input: "http://localhost:8888/search",
			want:  "http://localhost:8888/search",
		},
		{
			name:  "private address keeps http",
			input: "http://192.168.1.10/admin",
			want:  "http://192.168.1.10/admin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.Canonicalize(tt.input)
			if !ok {
				t.Fatalf("Canonicalize(%q) not ok", tt.input)
			}
			if got != tt.want {
				t.Errorf("Canonicalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCanonicalize_Rejects(t *testing.T) {
	c := newTestCanonicalizer()

	inputs := []string{
		"",
		"not a url",
		"ftp://example.com/file",
		"mailto:someone@example.com",
		"/relative/path",
	}

	for _, input := range inputs {
		if got, ok := c.Canonicalize(input); ok {
			t.Errorf("Canonicalize(%q) = %q, want rejection", input, got)
		}
	}
}

func TestCanonicalize_Idempotent(t *testing.T) {
	c := newTestCanonicalizer()

	inputs := []string{
		"http://Example.com/Page/?utm_source=x&b=2&a=1#frag",
		"https://www.vendor.io/pricing/",
		"http://localhost:8888/search?q=test",
	}

	for _, input := range inputs {
		once, ok := c.Canonicalize(input)
		if !ok {
			t.Fatalf("Canonicalize(%q) not ok", input)
		}
		twice, ok := c.Canonicalize(once)
		if !ok {
			t.Fatalf("Canonicalize(%q) not ok on second pass", once)
		}
		if once != twice {
			t.Errorf("not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestDeduplicate_CollapsesVariants(t *testing.T) {
	c := newTestCanonicalizer()

	// Five spellings of the same document
	results := []model.SearchResult{
		{Title: "first", URL: "http://example.com/page"},
		{Title: "second", URL: "https://example.com/page"},
		{Title: "third", URL: "https://EXAMPLE.com/page"},
		{Title: "fourth", URL: "https://example.com/page/"},
		{Title: "fifth", URL: "https://example.com/page?utm_source=newsletter"},
	}

	got := c.Deduplicate(results)
	if len(got) != 1 {
		t.Fatalf("expected 1 result after dedup, got %d", len(got))
	}
	if got[0].Title != "first" {
		t.Errorf("expected first occurrence kept, got %q", got[0].Title)
	}
}

func TestDeduplicate_DropsMalformed(t *testing.T) {
	c := newTestCanonicalizer()

	results := []model.SearchResult{
		{Title: "good", URL: "https://example.com/a"},
		{Title: "bad", URL: "not a url"},
		{Title: "other", URL: "https://example.com/b"},
	}

	got := c.Deduplicate(results)
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	for _, r := range got {
		if r.Title == "bad" {
			t.Error("malformed URL survived deduplication")
		}
	}
}

func TestDomain(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"https://www.vendor.io/pricing", "vendor.io"},
		{"https://Vendor.IO:443/x", "vendor.io"},
		{"https://app.vendor.io/x", "app.vendor.io"},
	}

	for _, tt := range tests {
		got, ok := Domain(tt.input)
		if !ok {
			t.Fatalf("Domain(%q) not ok", tt.input)
		}
		if got != tt.want {
			t.Errorf("Domain(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}

	if _, ok := Domain("not a url"); ok {
		t.Error("Domain accepted malformed input")
	}
}
