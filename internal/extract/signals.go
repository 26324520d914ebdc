// Package extract turns deduplicated search results into SignalCounts.
// Matching is strictly token/n-gram based: a keyword never matches as a
// substring of another word, excluded phrases neutralize their keyword,
// and ambiguous keywords require disambiguating context.
package extract

import (
	"github.com/ppiankov/ideagauge/internal/model"
	"github.com/ppiankov/ideagauge/internal/textnorm"
)

// keyword is a pre-stemmed vocabulary entry with its guard phrases
type keyword struct {
	raw        string
	stems      []string
	exclusions [][]string // Longer phrases that neutralize a match
	contexts   [][]string // At least one must cover the match, if any
}

// SignalExtractor extracts demand signals from search results
type SignalExtractor struct {
	intensity  []keyword
	complaint  []keyword
	workaround []keyword
}

// NewSignalExtractor compiles the rule tables into stemmed vocabularies
func NewSignalExtractor(rules model.RuleTables) *SignalExtractor {
	compile := func(words []string) []keyword {
		out := make([]keyword, 0, len(words))
		for _, w := range words {
			kw := keyword{raw: w, stems: textnorm.StemPhrase(w)}
			if len(kw.stems) == 0 {
				continue
			}
			for _, excl := range rules.ExcludedPhrases[w] {
				kw.exclusions = append(kw.exclusions, textnorm.StemPhrase(excl))
			}
			for _, ctx := range rules.RequiredContexts[w] {
				kw.contexts = append(kw.contexts, textnorm.StemPhrase(ctx))
			}
			out = append(out, kw)
		}
		return out
	}

	return &SignalExtractor{
		intensity:  compile(rules.IntensityKeywords),
		complaint:  compile(rules.ComplaintKeywords),
		workaround: compile(rules.WorkaroundKeywords),
	}
}

// Extract assigns each result to the single highest-priority matching
// category (intensity > complaint > workaround). A result that matches
// intensity never reaches the complaint or workaround vocabularies, so
// no document increments more than one counter.
func (e *SignalExtractor) Extract(results []model.SearchResult) (model.SignalCounts, []model.SignalMatch) {
	var counts model.SignalCounts
	var matches []model.SignalMatch

	for _, r := range results {
		tokens := stemTokens(r.Title + " " + r.Snippet)

		if kw, ok := firstMatch(tokens, e.intensity); ok {
			counts.Intensity++
			matches = append(matches, model.SignalMatch{URL: r.URL, Category: model.SignalIntensity, Keyword: kw})
			continue
		}
		if kw, ok := firstMatch(tokens, e.complaint); ok {
			counts.Complaint++
			matches = append(matches, model.SignalMatch{URL: r.URL, Category: model.SignalComplaint, Keyword: kw})
			continue
		}
		if kw, ok := firstMatch(tokens, e.workaround); ok {
			counts.Workaround++
			matches = append(matches, model.SignalMatch{URL: r.URL, Category: model.SignalWorkaround, Keyword: kw})
		}
	}

	return counts, matches
}

// stemTokens tokenizes and stems without dropping stopwords, so phrase
// guards like "tired of" keep their shape
func stemTokens(text string) []string {
	raw := textnorm.Tokenize(text)
	out := make([]string, len(raw))
	for i, t := range raw {
		out[i] = textnorm.Stem(t)
	}
	return out
}

// firstMatch returns the first vocabulary keyword with an accepted match
func firstMatch(tokens []string, vocab []keyword) (string, bool) {
	for _, kw := range vocab {
		if matchKeyword(tokens, kw) {
			return kw.raw, true
		}
	}
	return "", false
}

// matchKeyword accepts a keyword only if some occurrence survives the
// exclusion and required-context guards
func matchKeyword(tokens []string, kw keyword) bool {
	occurrences := findWindows(tokens, kw.stems)
	if len(occurrences) == 0 {
		return false
	}

	var excluded [][2]int
	for _, excl := range kw.exclusions {
		excluded = append(excluded, findWindows(tokens, excl)...)
	}
	var contexts [][2]int
	for _, ctx := range kw.contexts {
		contexts = append(contexts, findWindows(tokens, ctx)...)
	}

	for _, occ := range occurrences {
		if within(occ, excluded) {
			continue
		}
		if len(kw.contexts) > 0 && !covered(occ, contexts) {
			continue
		}
		return true
	}
	return false
}

// findWindows returns [start,end) spans where the stem sequence occurs
func findWindows(tokens, stems []string) [][2]int {
	if len(stems) == 0 || len(stems) > len(tokens) {
		return nil
	}
	var spans [][2]int
	for i := 0; i+len(stems) <= len(tokens); i++ {
		match := true
		for j, s := range stems {
			if tokens[i+j] != s {
				match = false
				break
			}
		}
		if match {
			spans = append(spans, [2]int{i, i + len(stems)})
		}
	}
	return spans
}

// within reports whether span lies inside any of the given spans
func within(span [2]int, spans [][2]int) bool {
	for _, s := range spans {
		if span[0] >= s[0] && span[1] <= s[1] {
			return true
		}
	}
	return false
}

// covered reports whether any context span contains the keyword span
func covered(span [2]int, contexts [][2]int) bool {
	return within(span, contexts)
}
