package model

// RuleTables holds every keyword/denylist/allowlist the classifiers use.
// Tables are immutable data injected at construction, not code branching,
// so they can be audited and overridden from the config file.
type RuleTables struct {
	Version string `yaml:"version" json:"version"`

	// Signal extraction vocabularies (stemmed at load time by the extractor)
	IntensityKeywords  []string `yaml:"intensity_keywords" json:"intensity_keywords"`
	ComplaintKeywords  []string `yaml:"complaint_keywords" json:"complaint_keywords"`
	WorkaroundKeywords []string `yaml:"workaround_keywords" json:"workaround_keywords"`

	// ExcludedPhrases maps a keyword to longer phrases that neutralize it
	// (e.g. "automation" inside "automation bias" is not a signal)
	ExcludedPhrases map[string][]string `yaml:"excluded_phrases" json:"excluded_phrases"`

	// RequiredContexts maps an ambiguous keyword to the n-grams that must
	// surround it for the match to count (e.g. "critical issue")
	RequiredContexts map[string][]string `yaml:"required_contexts" json:"required_contexts"`

	// URL canonicalization
	TrackingParams        []string `yaml:"tracking_params" json:"tracking_params"`
	TrackingParamPrefixes []string `yaml:"tracking_param_prefixes" json:"tracking_param_prefixes"`

	// Result classification
	ContentDomains       []string `yaml:"content_domains" json:"content_domains"`
	DocsPathSegments     []string `yaml:"docs_path_segments" json:"docs_path_segments"`
	DocsKeywords         []string `yaml:"docs_keywords" json:"docs_keywords"`
	StrongDocsPhrases    []string `yaml:"strong_docs_phrases" json:"strong_docs_phrases"`
	InformationalPhrases []string `yaml:"informational_phrases" json:"informational_phrases"`
	StructuralSignals    []string `yaml:"structural_signals" json:"structural_signals"`
	OfferingSignals      []string `yaml:"offering_signals" json:"offering_signals"`
	BusinessSignals      []string `yaml:"business_signals" json:"business_signals"`
	DIYPatterns          []string `yaml:"diy_patterns" json:"diy_patterns"`
	WeakContentSignals   []string `yaml:"weak_content_signals" json:"weak_content_signals"`

	// Market fragmentation vocabularies
	LocalIndicators      []string `yaml:"local_indicators" json:"local_indicators"`
	EnterpriseIndicators []string `yaml:"enterprise_indicators" json:"enterprise_indicators"`
}

// DefaultRules returns the built-in rule tables
func DefaultRules() RuleTables {
	return RuleTables{
		Version: "v1",

		IntensityKeywords: []string{
			"nightmare", "unbearable", "desperate", "hate", "impossible",
			"terrible", "awful", "furious", "ruining", "killing me",
			"waste of time", "critical", "urgent", "disaster", "losing money",
		},
		ComplaintKeywords: []string{
			"frustrating", "annoying", "problem", "issue", "struggle",
			"struggling", "difficult", "painful", "broken", "fails",
			"complain", "tired of", "sick of", "fed up", "takes forever",
		},
		WorkaroundKeywords: []string{
			"workaround", "work around", "hack together", "spreadsheet",
			"manually", "by hand", "duct tape", "band aid", "temporary fix",
			"cobbled together", "homegrown", "my own script",
		},

		ExcludedPhrases: map[string][]string{
			"automation": {"automation bias", "automation engineer jobs"},
			"critical":   {"critical acclaim", "critically acclaimed"},
			"hack":       {"hackathon", "growth hack"},
			"broken":     {"broken record"},
		},
		RequiredContexts: map[string][]string{
			"critical": {
				"critical issue", "critical problem", "critical failure",
				"critical bug", "mission critical",
			},
			"urgent": {
				"urgent problem", "urgent issue", "urgent need", "urgent help",
			},
		},

		TrackingParams: []string{
			"fbclid", "gclid", "gclsrc", "dclid", "msclkid", "yclid",
			"wbraid", "gbraid", "mc_cid", "mc_eid", "igshid",
			"_hsenc", "_hsmi", "vero_id", "oly_anon_id", "oly_enc_id",
		},
		TrackingParamPrefixes: []string{"utm_"},

		ContentDomains: []string{
			"reddit.com", "twitter.com", "x.com", "facebook.com",
			"linkedin.com", "youtube.com", "medium.com", "substack.com",
			"quora.com", "stackoverflow.com", "stackexchange.com",
			"news.ycombinator.com", "wordpress.com", "blogspot.com",
			"tumblr.com", "pinterest.com", "instagram.com", "tiktok.com",
			"g2.com", "capterra.com", "trustpilot.com", "producthunt.com",
			"wikipedia.org",
		},
		DocsPathSegments: []string{
			"docs", "documentation", "support", "help", "faq", "kb", "manual",
		},
		DocsKeywords: []string{
			"documentation", "api reference", "user manual", "knowledge base",
			"tutorial", "how do i", "troubleshooting",
		},
		StrongDocsPhrases: []string{
			"documentation", "tutorial", "introduction to", "getting started guide",
		},
		InformationalPhrases: []string{
			"how to", "guide to", "complete guide", "ultimate guide",
			"review of", "comparison", " vs ", "versus", "tips for",
			"newsletter", "blog", "what is", "why you should", "roundup",
		},
		StructuralSignals: []string{
			"pricing", "sign up", "signup", "log in", "login", "dashboard",
			"create account",
		},
		OfferingSignals: []string{
			"free trial", "start trial", "request a demo", "book a demo",
			"buy now", "purchase", "subscribe", "get started today",
		},
		BusinessSignals: []string{
			"saas", "enterprise", "for teams", "for business", "b2b",
			"trusted by", "customers",
		},
		DIYPatterns: []string{
			"diy", "do it yourself", "build your own", "open source",
			"spreadsheet template", "how i built", "my own script",
			"self hosted",
		},
		WeakContentSignals: []string{
			"article", "posted", "opinion", "story", "read more",
		},

		LocalIndicators: []string{
			"local", "near me", "small business", "independent",
			"family owned", "freelance",
		},
		EnterpriseIndicators: []string{
			"enterprise", "leading", "global", "platform", "fortune 500",
			"market leader",
		},
	}
}
