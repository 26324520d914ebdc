// Package query instantiates the fixed search templates for each bucket.
// Every bucket has its own intent vocabulary; no indicator word generates
// queries in more than one bucket (checked by test).
package query

import (
	"fmt"
	"strings"

	"github.com/ppiankov/ideagauge/internal/model"
)

// maxTopicTokens caps how much of the normalized text feeds a template
const maxTopicTokens = 8

// problemTemplates are instantiated for the Stage 1 (problem) track
var problemTemplates = map[model.Bucket][]string{
	model.BucketComplaint: {
		"{topic} problem",
		"{topic} complaints",
		"why is {topic} so frustrating",
		"why is {topic} so annoying",
		"struggling with {topic}",
		"{topic} pain points",
	},
	model.BucketWorkaround: {
		"{topic} workaround",
		"how to handle {topic} manually",
		"{topic} spreadsheet template",
		"{topic} diy fix",
		"makeshift solution for {topic}",
	},
	model.BucketCompetitor: {
		"{topic} software",
		"{topic} tool",
		"best {topic} app",
		"{topic} platform pricing",
		"{topic} alternatives",
		"{topic} vendors",
	},
	model.BucketContent: {
		"{topic} guide",
		"{topic} blog",
		"{topic} newsletter",
		"{topic} tips",
		"what experts say about {topic}",
	},
}

// solutionTemplates are instantiated for the Stage 2 (solution) track
var solutionTemplates = map[model.Bucket][]string{
	model.BucketCompetitor: {
		"{topic} software",
		"{topic} tool",
		"best {topic} app",
		"{topic} platform pricing",
		"{topic} alternatives",
		"{topic} vendors",
	},
	model.BucketWorkaround: {
		"{topic} workaround",
		"{topic} spreadsheet template",
		"{topic} diy fix",
		"build your own {topic}",
		"{topic} open source",
	},
	model.BucketContent: {
		"{topic} guide",
		"{topic} blog",
		"{topic} newsletter",
		"{topic} market overview",
		"{topic} tips",
	},
}

// emotionalModifiers are pruned when two queries differ only by one of
// them ("frustrating X" and "annoying X" are the same probe)
var emotionalModifiers = map[string]bool{
	"frustrating": true, "annoying": true, "terrible": true,
	"awful": true, "painful": true, "infuriating": true,
}

// Generator builds bucketed query sets from normalized text
type Generator struct {
	bounds model.BucketBounds
}

// NewGenerator creates a generator with the given per-bucket bounds
func NewGenerator(bounds model.BucketBounds) *Generator {
	return &Generator{bounds: bounds}
}

// Problem generates the four problem-track buckets
func (g *Generator) Problem(normalized string) (map[model.Bucket][]model.Query, []string) {
	return g.generate(normalized, problemTemplates)
}

// Solution generates the solution-track buckets (no complaint bucket:
// complaints are a problem-side probe)
func (g *Generator) Solution(normalized string) (map[model.Bucket][]model.Query, []string) {
	return g.generate(normalized, solutionTemplates)
}

func (g *Generator) generate(normalized string, templates map[model.Bucket][]string) (map[model.Bucket][]model.Query, []string) {
	topic := topicFrom(normalized)
	out := make(map[model.Bucket][]model.Query, len(templates))
	var warnings []string

	for _, bucket := range model.Buckets() {
		tmpls, ok := templates[bucket]
		if !ok {
			continue
		}

		queries := instantiate(tmpls, topic)
		queries = dedupe(queries)
		queries = pruneEmotionalVariants(queries)

		bound := g.bounds.For(bucket)
		if len(queries) < bound.Min {
			// Never invent queries to reach MIN; surface the shortfall
			warnings = append(warnings, fmt.Sprintf(
				"bucket %s produced %d queries (min %d)", bucket, len(queries), bound.Min))
		}
		if len(queries) > bound.Max {
			queries = queries[:bound.Max]
		}

		qs := make([]model.Query, len(queries))
		for i, q := range queries {
			qs[i] = model.Query{Text: q, Bucket: bucket}
		}
		out[bucket] = qs
	}

	return out, warnings
}

// topicFrom caps the normalized text to the leading topic tokens
func topicFrom(normalized string) string {
	tokens := strings.Fields(normalized)
	if len(tokens) > maxTopicTokens {
		tokens = tokens[:maxTopicTokens]
	}
	return strings.Join(tokens, " ")
}

func instantiate(templates []string, topic string) []string {
	out := make([]string, 0, len(templates))
	for _, t := range templates {
		q := strings.ReplaceAll(t, "{topic}", topic)
		q = strings.Join(strings.Fields(q), " ")
		if q != "" {
			out = append(out, q)
		}
	}
	return out
}

// dedupe removes case-insensitive, whitespace-normalized duplicates
// preserving first occurrence
func dedupe(queries []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, q := range queries {
		key := strings.Join(strings.Fields(strings.ToLower(q)), " ")
		if !seen[key] {
			seen[key] = true
			out = append(out, q)
		}
	}
	return out
}

// pruneEmotionalVariants collapses queries that differ only by an
// emotional modifier to the first occurrence of their shared core
func pruneEmotionalVariants(queries []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, q := range queries {
		core := queryCore(q)
		if !seen[core] {
			seen[core] = true
			out = append(out, q)
		}
	}
	return out
}

// queryCore strips emotional modifier words and normalizes the rest
func queryCore(q string) string {
	var kept []string
	for _, w := range strings.Fields(strings.ToLower(q)) {
		if !emotionalModifiers[w] {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}

// Indicators returns the intent vocabulary of each problem bucket: the
// template words that are not the topic placeholder or glue. Used by the
// architectural disjointness test.
func Indicators() map[model.Bucket][]string {
	glue := map[string]bool{
		"why": true, "is": true, "so": true, "how": true, "to": true,
		"with": true, "for": true, "what": true, "about": true, "best": true,
		"{topic}": true, "your": true, "own": true, "say": true, "build": true,
		"handle": true,
	}
	out := make(map[model.Bucket][]string)
	for bucket, tmpls := range problemTemplates {
		seen := make(map[string]bool)
		for _, t := range tmpls {
			for _, w := range strings.Fields(t) {
				if !glue[w] && !seen[w] {
					seen[w] = true
					out[bucket] = append(out[bucket], w)
				}
			}
		}
	}
	return out
}
