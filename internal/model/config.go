package model

import "time"

// Config is the complete ideagauge configuration
type Config struct {
	HTTP        HTTPConfig        `yaml:"http" json:"http"`
	Search      SearchConfig      `yaml:"search" json:"search"`
	Cache       CacheConfig       `yaml:"cache" json:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency"`
	Buckets     BucketBounds      `yaml:"buckets" json:"buckets"`
	Thresholds  Thresholds        `yaml:"thresholds" json:"thresholds"`
	Rules       RuleTables        `yaml:"rules" json:"rules"`
	Enrich      EnrichConfig      `yaml:"enrich" json:"enrich"`
	LLM         LLMConfig         `yaml:"llm" json:"llm"`
	Output      OutputConfig      `yaml:"output" json:"output"`
}

// HTTPConfig controls outbound HTTP behavior
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" json:"timeout"`
	UserAgent    string        `yaml:"user_agent" json:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" json:"max_body_bytes"`
	InsecureTLS  bool          `yaml:"insecure_tls" json:"insecure_tls"`
	HTTPProxy    string        `yaml:"http_proxy" json:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy" json:"https_proxy"`
	NoProxy      string        `yaml:"no_proxy" json:"no_proxy"`
}

// SearchConfig points at the search provider endpoint
type SearchConfig struct {
	BaseURL           string  `yaml:"base_url" json:"base_url"` // SearxNG-compatible JSON endpoint
	MaxResults        int     `yaml:"max_results" json:"max_results"`
	RequestsPerSecond float64 `yaml:"requests_per_second" json:"requests_per_second"`
	Burst             int     `yaml:"burst" json:"burst"`
}

// CacheConfig controls search response caching
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" json:"enabled"`
	Dir       string        `yaml:"dir" json:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" json:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" json:"disk_ttl"`
}

// ConcurrencyConfig sizes the worker pools
type ConcurrencyConfig struct {
	SearchWorkers int `yaml:"search_workers" json:"search_workers"` // Concurrent bucket searches
	BatchWorkers  int `yaml:"batch_workers" json:"batch_workers"`   // Concurrent batch evaluations
}

// BucketBound is the MIN/MAX query count for one bucket
type BucketBound struct {
	Min int `yaml:"min" json:"min"`
	Max int `yaml:"max" json:"max"`
}

// BucketBounds holds the per-bucket query count bounds
type BucketBounds struct {
	Complaint  BucketBound `yaml:"complaint" json:"complaint"`
	Workaround BucketBound `yaml:"workaround" json:"workaround"`
	Competitor BucketBound `yaml:"competitor" json:"competitor"`
	Content    BucketBound `yaml:"content" json:"content"`
}

// For returns the bound for the given bucket
func (b BucketBounds) For(bucket Bucket) BucketBound {
	switch bucket {
	case BucketComplaint:
		return b.Complaint
	case BucketWorkaround:
		return b.Workaround
	case BucketCompetitor:
		return b.Competitor
	default:
		return b.Content
	}
}

// Thresholds collects every numeric policy breakpoint in one auditable
// place. The values are locked by literal test scenarios, not re-derived.
type Thresholds struct {
	// Severity scoring
	IntensityWeight      int `yaml:"intensity_weight" json:"intensity_weight"`
	ComplaintWeight      int `yaml:"complaint_weight" json:"complaint_weight"`
	WorkaroundWeight     int `yaml:"workaround_weight" json:"workaround_weight"`
	WorkaroundCap        int `yaml:"workaround_cap" json:"workaround_cap"`
	DrasticScore         int `yaml:"drastic_score" json:"drastic_score"`
	SevereScore          int `yaml:"severe_score" json:"severe_score"`
	ModerateScore        int `yaml:"moderate_score" json:"moderate_score"`
	LowCeilingTotal      int `yaml:"low_ceiling_total" json:"low_ceiling_total"`           // total <= this caps LOW
	ModerateCeilingTotal int `yaml:"moderate_ceiling_total" json:"moderate_ceiling_total"` // total < this caps MODERATE
	DrasticFloorTotal    int `yaml:"drastic_floor_total" json:"drastic_floor_total"`       // total >= this allows DRASTIC
	DrasticMinIntensity  int `yaml:"drastic_min_intensity" json:"drastic_min_intensity"`
	SevereMinTotal       int `yaml:"severe_min_total" json:"severe_min_total"`
	IntensityLowMax      int `yaml:"intensity_low_max" json:"intensity_low_max"` // bucket breakpoint
	IntensityMediumMax   int `yaml:"intensity_medium_max" json:"intensity_medium_max"`

	// Result classification
	DIYMinProductSignals int `yaml:"diy_min_product_signals" json:"diy_min_product_signals"`

	// Market fragmentation ratio cutoffs (percent of local indicators)
	FragmentedMinShare   int `yaml:"fragmented_min_share" json:"fragmented_min_share"`
	ConsolidatedMaxShare int `yaml:"consolidated_max_share" json:"consolidated_max_share"`

	// TIME leverage
	TimeStepReduction int `yaml:"time_step_reduction" json:"time_step_reduction"`
}

// EnrichConfig controls optional snippet enrichment by page fetch
type EnrichConfig struct {
	Enabled    bool          `yaml:"enabled" json:"enabled"`
	MaxSnippet int           `yaml:"max_snippet" json:"max_snippet"`
	Timeout    time.Duration `yaml:"timeout" json:"timeout"`
}

// LLMConfig configures the optional narration provider
type LLMConfig struct {
	Provider  string `yaml:"provider" json:"provider"` // openai, ollama, ""
	Model     string `yaml:"model" json:"model"`
	APIKey    string `yaml:"-" json:"-"`
	BaseURL   string `yaml:"base_url" json:"base_url"`
	Timeout   int    `yaml:"timeout" json:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" json:"max_tokens"`
}

// OutputConfig controls rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" json:"verbose"`
	IncludeFooter bool `yaml:"include_footer" json:"include_footer"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "Ideagauge/0.1 (+https://github.com/ppiankov/ideagauge)",
			MaxBodyBytes: 2_000_000,
		},
		Search: SearchConfig{
			BaseURL:           "http://localhost:8888",
			MaxResults:        10,
			RequestsPerSecond: 2,
			Burst:             4,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "", // Resolved to ~/.ideagauge/cache at startup
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			SearchWorkers: 4,
			BatchWorkers:  4,
		},
		Buckets: BucketBounds{
			Complaint:  BucketBound{Min: 3, Max: 6},
			Workaround: BucketBound{Min: 2, Max: 5},
			Competitor: BucketBound{Min: 2, Max: 6},
			Content:    BucketBound{Min: 2, Max: 5},
		},
		Thresholds: Thresholds{
			IntensityWeight:      3,
			ComplaintWeight:      2,
			WorkaroundWeight:     1,
			WorkaroundCap:        5,
			DrasticScore:         15,
			SevereScore:          8,
			ModerateScore:        4,
			LowCeilingTotal:      3,
			ModerateCeilingTotal: 6,
			DrasticFloorTotal:    20,
			DrasticMinIntensity:  7,
			SevereMinTotal:       6,
			IntensityLowMax:      2,
			IntensityMediumMax:   5,
			DIYMinProductSignals: 2,
			FragmentedMinShare:   60,
			ConsolidatedMaxShare: 40,
			TimeStepReduction:    5,
		},
		Rules: DefaultRules(),
		Enrich: EnrichConfig{
			Enabled:    false,
			MaxSnippet: 240,
			Timeout:    10 * time.Second,
		},
		LLM: LLMConfig{
			Provider:  "",
			Timeout:   30,
			MaxTokens: 800,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}
