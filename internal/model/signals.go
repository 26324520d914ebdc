package model

// SearchResult is a single document returned by the search provider.
// Results are never mutated after intake; every downstream stage derives
// from them.
type SearchResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	URL     string `json:"url"`
}

// Bucket names a group of search queries sharing one detection intent
type Bucket string

const (
	BucketComplaint  Bucket = "complaint"  // People venting about the problem
	BucketWorkaround Bucket = "workaround" // Manual/DIY coping evidence
	BucketCompetitor Bucket = "competitor" // Existing tools and products
	BucketContent    Bucket = "content"    // Blogs, guides, newsletters
)

// Buckets lists all buckets in their fixed evaluation order
func Buckets() []Bucket {
	return []Bucket{BucketComplaint, BucketWorkaround, BucketCompetitor, BucketContent}
}

// Query is an instantiated search template belonging to exactly one bucket
type Query struct {
	Text   string `json:"text"`
	Bucket Bucket `json:"bucket"`
}

// SignalCategory classifies which counter a result contributed to
type SignalCategory string

const (
	SignalIntensity  SignalCategory = "intensity"
	SignalComplaint  SignalCategory = "complaint"
	SignalWorkaround SignalCategory = "workaround"
)

// SignalCounts tallies demand evidence across deduplicated results.
// Each result contributes to at most one counter (intensity wins over
// complaint, complaint over workaround), so the three counts are
// statistically independent.
type SignalCounts struct {
	Intensity  int `json:"intensity_count"`
	Complaint  int `json:"complaint_count"`
	Workaround int `json:"workaround_count"`
}

// Total returns the total number of signal-bearing results
func (c SignalCounts) Total() int {
	return c.Intensity + c.Complaint + c.Workaround
}

// SignalMatch records which keyword decided a result's category
type SignalMatch struct {
	URL      string         `json:"url"`
	Category SignalCategory `json:"category"`
	Keyword  string         `json:"keyword"`
}

// ProblemLevel is the derived severity of the stated problem
type ProblemLevel string

const (
	LevelLow      ProblemLevel = "LOW"
	LevelModerate ProblemLevel = "MODERATE"
	LevelSevere   ProblemLevel = "SEVERE"
	LevelDrastic  ProblemLevel = "DRASTIC"
)

// Rank orders levels for floor/ceiling comparisons
func (l ProblemLevel) Rank() int {
	switch l {
	case LevelModerate:
		return 1
	case LevelSevere:
		return 2
	case LevelDrastic:
		return 3
	default:
		return 0
	}
}

// GuardTrace records one severity guard's before/after decision
type GuardTrace struct {
	Guard  string       `json:"guard"`
	Before ProblemLevel `json:"before"`
	After  ProblemLevel `json:"after"`
	Reason string       `json:"reason,omitempty"`
}
