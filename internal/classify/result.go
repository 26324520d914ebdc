// Package classify decides what a search result is: a commercial
// product page, a DIY substitute, content, or unknown. The decision is
// an ordered chain of pure predicate steps with early exit; every
// ambiguity resolves away from "commercial".
package classify

import (
	"net/url"
	"regexp"
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"

	"github.com/ppiankov/ideagauge/internal/model"
)

// listiclePattern catches "top 10", "7 best", "5 ways" style titles
var listiclePattern = regexp.MustCompile(`(?:\btop \d+\b|\b\d+ (?:best|ways|tools|ideas)\b)`)

// Classifier runs the classification chain against immutable tables
type Classifier struct {
	rules      model.RuleTables
	minSignals int

	// One automaton over every phrase table gives a single O(n) scan;
	// hits are confirmed at word-boundary granularity afterwards.
	matcher *ahocorasick.Matcher
	phrases []string
}

// NewClassifier compiles the rule tables
func NewClassifier(rules model.RuleTables, t model.Thresholds) *Classifier {
	c := &Classifier{rules: rules, minSignals: t.DIYMinProductSignals}

	add := func(lists ...[]string) {
		for _, list := range lists {
			for _, p := range list {
				c.phrases = append(c.phrases, strings.ToLower(p))
			}
		}
	}
	add(rules.DocsKeywords, rules.StrongDocsPhrases, rules.InformationalPhrases,
		rules.StructuralSignals, rules.OfferingSignals, rules.BusinessSignals,
		rules.DIYPatterns, rules.WeakContentSignals)

	if len(c.phrases) > 0 {
		c.matcher = ahocorasick.NewStringMatcher(c.phrases)
	}
	return c
}

// step is one link of the classification chain
type step struct {
	name  string
	apply func(*Classifier, *resultContext) (model.ResultKind, []string, bool)
}

var chain = []step{
	{"domain_denylist", (*Classifier).stepDomainDenylist},
	{"documentation", (*Classifier).stepDocumentation},
	{"informational", (*Classifier).stepInformational},
	{"diy", (*Classifier).stepDIY},
	{"commercial_evidence", (*Classifier).stepCommercial},
}

// resultContext carries the parsed result through the chain
type resultContext struct {
	text string // Lowercased title + snippet
	host string
	path string
	hits map[string]bool // Phrases confirmed at word boundaries
}

// Classify runs the chain and returns the tagged verdict
func (c *Classifier) Classify(r model.SearchResult) model.ClassifiedResult {
	ctx := c.prepare(r)
	for _, s := range chain {
		if kind, matched, ok := s.apply(c, ctx); ok {
			return model.ClassifiedResult{Result: r, Kind: kind, Step: s.name, Matched: matched}
		}
	}
	return model.ClassifiedResult{Result: r, Kind: model.KindUnknown, Step: "exhausted"}
}

// ClassifyAll classifies a slice preserving order
func (c *Classifier) ClassifyAll(results []model.SearchResult) []model.ClassifiedResult {
	out := make([]model.ClassifiedResult, len(results))
	for i, r := range results {
		out[i] = c.Classify(r)
	}
	return out
}

func (c *Classifier) prepare(r model.SearchResult) *resultContext {
	ctx := &resultContext{
		text: strings.ToLower(r.Title + " " + r.Snippet),
		hits: make(map[string]bool),
	}
	if parsed, err := url.Parse(r.URL); err == nil {
		ctx.host = strings.ToLower(strings.TrimPrefix(parsed.Host, "www."))
		ctx.path = strings.ToLower(parsed.Path)
	}
	if c.matcher != nil {
		for _, idx := range c.matcher.Match([]byte(ctx.text)) {
			phrase := c.phrases[idx]
			if containsPhrase(ctx.text, phrase) {
				ctx.hits[phrase] = true
			}
		}
	}
	return ctx
}

// stepDomainDenylist: known content sites are content no matter what
// commercial vocabulary their pages carry. Non-bypassable.
func (c *Classifier) stepDomainDenylist(ctx *resultContext) (model.ResultKind, []string, bool) {
	for _, d := range c.rules.ContentDomains {
		if ctx.host == d || strings.HasSuffix(ctx.host, "."+d) {
			return model.KindContent, []string{d}, true
		}
	}
	return "", nil, false
}

// stepDocumentation: a docs/support/help path segment plus a docs
// keyword, or a strong documentation phrase on its own
func (c *Classifier) stepDocumentation(ctx *resultContext) (model.ResultKind, []string, bool) {
	if pathHasSegment(ctx.path, c.rules.DocsPathSegments) {
		if matched := c.anyHit(ctx, c.rules.DocsKeywords); len(matched) > 0 {
			return model.KindContent, matched, true
		}
	}
	if matched := c.anyHit(ctx, c.rules.StrongDocsPhrases); len(matched) > 0 {
		return model.KindContent, matched, true
	}
	return "", nil, false
}

// stepInformational: comparison/review/listicle/guide/newsletter phrasing
func (c *Classifier) stepInformational(ctx *resultContext) (model.ResultKind, []string, bool) {
	if matched := c.anyHit(ctx, c.rules.InformationalPhrases); len(matched) > 0 {
		return model.KindContent, matched, true
	}
	if m := listiclePattern.FindString(ctx.text); m != "" {
		return model.KindContent, []string{m}, true
	}
	return "", nil, false
}

// stepDIY: a DIY pattern with too little product evidence is a
// self-built substitute, not a vendor
func (c *Classifier) stepDIY(ctx *resultContext) (model.ResultKind, []string, bool) {
	diy := c.anyHit(ctx, c.rules.DIYPatterns)
	if len(diy) == 0 {
		return "", nil, false
	}
	structural, offering, business := c.productSignals(ctx)
	if len(structural)+len(offering)+len(business) < c.minSignals {
		return model.KindDIY, diy, true
	}
	return "", nil, false
}

// stepCommercial: commercial requires converging first-party product
// evidence; anything weaker falls to content or unknown
func (c *Classifier) stepCommercial(ctx *resultContext) (model.ResultKind, []string, bool) {
	structural, offering, business := c.productSignals(ctx)

	categories := 0
	for _, m := range [][]string{structural, offering, business} {
		if len(m) > 0 {
			categories++
		}
	}
	total := len(structural) + len(offering) + len(business)

	commercial := len(structural) >= 2 ||
		(len(structural) >= 1 && len(offering) >= 1) ||
		(total >= 2 && categories >= 2)

	if commercial {
		matched := append(append(append([]string{}, structural...), offering...), business...)
		return model.KindCommercial, matched, true
	}

	if weak := c.anyHit(ctx, c.rules.WeakContentSignals); len(weak) > 0 {
		return model.KindContent, weak, true
	}
	return model.KindUnknown, nil, true
}

// productSignals collects distinct matches per independent category
func (c *Classifier) productSignals(ctx *resultContext) (structural, offering, business []string) {
	structural = c.anyHit(ctx, c.rules.StructuralSignals)
	offering = c.anyHit(ctx, c.rules.OfferingSignals)
	business = c.anyHit(ctx, c.rules.BusinessSignals)
	return structural, offering, business
}

// anyHit filters the automaton hits down to one phrase table
func (c *Classifier) anyHit(ctx *resultContext, table []string) []string {
	var matched []string
	for _, p := range table {
		if ctx.hits[strings.ToLower(p)] {
			matched = append(matched, p)
		}
	}
	return matched
}

// pathHasSegment reports whether any path segment equals one of the
// configured docs segments
func pathHasSegment(path string, segments []string) bool {
	for _, part := range strings.Split(strings.Trim(path, "/"), "/") {
		for _, seg := range segments {
			if part == seg {
				return true
			}
		}
	}
	return false
}

// containsPhrase confirms an automaton hit at word-boundary granularity:
// "pricing" must not match inside "repricing". A phrase that starts or
// ends with a non-word byte (" vs ") carries its own boundary.
func containsPhrase(text, phrase string) bool {
	if phrase == "" {
		return false
	}
	checkBefore := isWordByte(phrase[0])
	checkAfter := isWordByte(phrase[len(phrase)-1])

	for start := 0; ; {
		idx := strings.Index(text[start:], phrase)
		if idx < 0 {
			return false
		}
		idx += start
		end := idx + len(phrase)
		if (!checkBefore || boundaryBefore(text, idx)) &&
			(!checkAfter || boundaryAfter(text, end)) {
			return true
		}
		start = idx + 1
	}
}

func boundaryBefore(text string, idx int) bool {
	if idx == 0 {
		return true
	}
	return !isWordByte(text[idx-1])
}

func boundaryAfter(text string, end int) bool {
	if end >= len(text) {
		return true
	}
	return !isWordByte(text[end])
}

func isWordByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	}
	return false
}
