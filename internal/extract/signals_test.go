package extract

import (
	"testing"

	"github.com/ppiankov/ideagauge/internal/model"
)

func newTestExtractor() *SignalExtractor {
	return NewSignalExtractor(model.DefaultRules())
}

func TestExtract_OneSignalPerResult(t *testing.T) {
	e := newTestExtractor()

	// Contains intensity ("nightmare"), complaint ("frustrating") and
	// workaround ("spreadsheet") material at once; intensity must win
	results := []model.SearchResult{
		{
			Title:   "This is a nightmare",
			Snippet: "So frustrating that I track everything in a spreadsheet manually",
			URL:     "https://example.com/1",
		},
	}

	counts, matches := e.Extract(results)

	if counts.Total() != 1 {
		t.Fatalf("one result produced %d signals, want 1", counts.Total())
	}
	if counts.Intensity != 1 {
		t.Errorf("intensity = %d, want 1 (priority over complaint/workaround)", counts.Intensity)
	}
	if len(matches) != 1 || matches[0].Category != model.SignalIntensity {
		t.Errorf("matches = %+v, want single intensity match", matches)
	}
}

func TestExtract_CategoryPriority(t *testing.T) {
	e := newTestExtractor()

	tests := []struct {
		name    string
		snippet string
		want    model.SignalCounts
	}{
		{
			name:    "intensity only",
			snippet: "dealing with this is unbearable",
			want:    model.SignalCounts{Intensity: 1},
		},
		{
			name:    "complaint only",
			snippet: "it is really annoying to manage",
			want:    model.SignalCounts{Complaint: 1},
		},
		{
			name:    "workaround only",
			snippet: "we cobbled together a temporary fix",
			want:    model.SignalCounts{Workaround: 1},
		},
		{
			name:    "complaint beats workaround",
			snippet: "so frustrating, I do it manually now",
			want:    model.SignalCounts{Complaint: 1},
		},
		{
			name:    "no signal",
			snippet: "a calm description of accounting software features",
			want:    model.SignalCounts{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counts, _ := e.Extract([]model.SearchResult{
				{Snippet: tt.snippet, URL: "https://example.com/x"},
			})
			if counts != tt.want {
				t.Errorf("counts = %+v, want %+v", counts, tt.want)
			}
		})
	}
}

func TestExtract_WordBoundaries(t *testing.T) {
	e := newTestExtractor()

	// "hater" must not match "hate"; "issues" stems to "issue" and must
	// match
	counts, _ := e.Extract([]model.SearchResult{
		{Snippet: "the biggest hater club", URL: "https://example.com/1"},
		{Snippet: "ongoing issues with exports", URL: "https://example.com/2"},
	})

	if counts.Intensity != 0 {
		t.Errorf("intensity = %d, substring matched across a word boundary", counts.Intensity)
	}
	if counts.Complaint != 1 {
		t.Errorf("complaint = %d, want 1 for stemmed plural", counts.Complaint)
	}
}

func TestExtract_ExcludedPhrases(t *testing.T) {
	e := newTestExtractor()

	tests := []struct {
		name    string
		snippet string
		total   int
	}{
		{
			name:    "critical acclaim is not a signal",
			snippet: "the film received critical acclaim worldwide",
			total:   0,
		},
		{
			name:    "broken record is not a signal",
			snippet: "he sounds like a broken record about this",
			total:   0,
		},
		{
			name:    "broken outside the phrase still counts",
			snippet: "the export feature is completely broken",
			total:   1,
		},
		{
			name:    "excluded and real occurrence both present",
			snippet: "like a broken record, the sync is broken again",
			total:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counts, _ := e.Extract([]model.SearchResult{
				{Snippet: tt.snippet, URL: "https://example.com/x"},
			})
			if counts.Total() != tt.total {
				t.Errorf("total = %d, want %d", counts.Total(), tt.total)
			}
		})
	}
}

func TestExtract_RequiredContexts(t *testing.T) {
	e := newTestExtractor()

	tests := []struct {
		name      string
		snippet   string
		intensity int
	}{
		{
			name:      "critical alone is ambiguous",
			snippet:   "critical thinking skills for managers",
			intensity: 0,
		},
		{
			name:      "critical issue counts",
			snippet:   "we hit a critical issue in production",
			intensity: 1,
		},
		{
			name:      "mission critical counts",
			snippet:   "billing is mission critical for us",
			intensity: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counts, _ := e.Extract([]model.SearchResult{
				{Snippet: tt.snippet, URL: "https://example.com/x"},
			})
			if counts.Intensity != tt.intensity {
				t.Errorf("intensity = %d, want %d", counts.Intensity, tt.intensity)
			}
		})
	}
}

func TestExtract_MultiWordKeywords(t *testing.T) {
	e := newTestExtractor()

	counts, matches := e.Extract([]model.SearchResult{
		{Snippet: "this process is a waste of time", URL: "https://example.com/1"},
		{Snippet: "I am tired of copying data", URL: "https://example.com/2"},
	})

	if counts.Intensity != 1 || counts.Complaint != 1 {
		t.Errorf("counts = %+v, want 1 intensity and 1 complaint", counts)
	}
	for _, m := range matches {
		if m.Keyword != "waste of time" && m.Keyword != "tired of" {
			t.Errorf("unexpected keyword %q", m.Keyword)
		}
	}
}

func TestExtract_TitleAndSnippetBothSearched(t *testing.T) {
	e := newTestExtractor()

	counts, _ := e.Extract([]model.SearchResult{
		{Title: "Export nightmare", Snippet: "", URL: "https://example.com/1"},
		{Title: "", Snippet: "a real disaster for our team", URL: "https://example.com/2"},
	})

	if counts.Intensity != 2 {
		t.Errorf("intensity = %d, want 2 (title and snippet matches)", counts.Intensity)
	}
}
