package model

// ResultKind tags what a search result turned out to be
type ResultKind string

const (
	KindCommercial ResultKind = "commercial" // First-party product evidence
	KindDIY        ResultKind = "diy"        // Self-built or manual substitute
	KindContent    ResultKind = "content"    // Blogs, docs, forums, reviews
	KindUnknown    ResultKind = "unknown"    // Not enough evidence either way
)

// ClassifiedResult pairs a search result with its verdict and the step
// of the classification chain that decided it
type ClassifiedResult struct {
	Result  SearchResult `json:"result"`
	Kind    ResultKind   `json:"kind"`
	Step    string       `json:"step"`              // Which chain step decided (e.g. "domain_denylist")
	Matched []string     `json:"matched,omitempty"` // Phrases that triggered the step
}
