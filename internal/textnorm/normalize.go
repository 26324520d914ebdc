// Package textnorm produces the canonical token form shared by the query
// generator and the signal extractor. Normalization is idempotent:
// Normalize(Normalize(x)) == Normalize(x) for every input.
package textnorm

import "strings"

// stopwords are dropped outright during normalization
var stopwords = map[string]bool{
	"a": true, "an": true, "the": true, "is": true, "are": true,
	"was": true, "were": true, "be": true, "been": true, "being": true,
	"i": true, "me": true, "my": true, "we": true, "our": true,
	"you": true, "your": true, "it": true, "its": true, "this": true,
	"that": true, "these": true, "those": true, "of": true, "to": true,
	"in": true, "on": true, "at": true, "for": true, "with": true,
	"and": true, "or": true, "but": true, "so": true, "as": true,
	"by": true, "from": true, "have": true, "has": true, "had": true,
	"do": true, "does": true, "did": true, "not": true, "no": true,
	"very": true, "really": true, "just": true, "too": true, "also": true,
	"when": true, "while": true, "there": true, "here": true, "can": true,
	"will": true, "would": true, "should": true, "could": true,
	"every": true,
}

// fillerTokens are time/frequency words that carry no topical meaning
var fillerTokens = map[string]bool{
	"daily": true, "always": true, "constantly": true, "often": true,
	"sometimes": true, "usually": true, "weekly": true, "monthly": true,
	"everyday": true, "currently": true, "nowadays": true,
}

// fillerPhrases are multi-word fillers stripped before tokenization
var fillerPhrases = []string{
	"every day", "every week", "every month", "every single day",
	"all the time", "day to day",
}

// Normalize lowercases, tokenizes, strips stopwords and filler/time
// words, stems, and deduplicates tokens preserving first occurrence.
func Normalize(text string) string {
	return strings.Join(NormalizeTokens(text), " ")
}

// NormalizeTokens is Normalize returning the token slice
func NormalizeTokens(text string) []string {
	lower := strings.ToLower(text)
	for _, phrase := range fillerPhrases {
		lower = strings.ReplaceAll(lower, phrase, " ")
	}

	tokens := Tokenize(lower)

	seen := make(map[string]bool)
	var out []string
	for _, tok := range tokens {
		if stopwords[tok] || fillerTokens[tok] {
			continue
		}
		stem := Stem(tok)
		if stem == "" || stopwords[stem] || fillerTokens[stem] {
			continue
		}
		if !seen[stem] {
			seen[stem] = true
			out = append(out, stem)
		}
	}
	return out
}

// Tokenize splits lowercased text on any non-alphanumeric rune
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		switch {
		case r >= 'a' && r <= 'z':
			return false
		case r >= '0' && r <= '9':
			return false
		default:
			return true
		}
	})
}

// Stem reduces a token to a stable stem. Rules are applied until no rule
// fires, which makes stemming (and therefore Normalize) idempotent.
func Stem(token string) string {
	for {
		next := stemOnce(token)
		if next == token {
			return token
		}
		token = next
	}
}

func stemOnce(t string) string {
	switch {
	case strings.HasSuffix(t, "ies") && len(t) > 4:
		return t[:len(t)-3] + "y"
	case strings.HasSuffix(t, "sses"):
		return t[:len(t)-2]
	case strings.HasSuffix(t, "ss"), strings.HasSuffix(t, "us"), strings.HasSuffix(t, "is"):
		return t
	case strings.HasSuffix(t, "s") && len(t) >= 4:
		return t[:len(t)-1]
	case strings.HasSuffix(t, "ing") && len(t) >= 7:
		return collapseDouble(t[:len(t)-3])
	case strings.HasSuffix(t, "ed") && len(t) >= 6:
		return collapseDouble(t[:len(t)-2])
	default:
		return t
	}
}

// collapseDouble trims a doubled trailing consonant left by suffix
// stripping ("running" -> "runn" -> "run")
func collapseDouble(t string) string {
	n := len(t)
	if n >= 2 && t[n-1] == t[n-2] && !isVowel(t[n-1]) {
		return t[:n-1]
	}
	return t
}

func isVowel(b byte) bool {
	switch b {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

// StemPhrase stems every word of a multi-word phrase
func StemPhrase(phrase string) []string {
	words := Tokenize(phrase)
	stems := make([]string, 0, len(words))
	for _, w := range words {
		stems = append(stems, Stem(w))
	}
	return stems
}
