// Package urlnorm derives the canonical form of a URL used as the
// deduplication key. Two results with equal canonical form are the same
// document.
package urlnorm

import (
	"net"
	"net/url"
	"strings"

	"github.com/ppiankov/ideagauge/internal/model"
)

// Canonicalizer normalizes URLs against a tracking-parameter denylist
type Canonicalizer struct {
	tracking map[string]bool
	prefixes []string
}

// NewCanonicalizer creates a canonicalizer from the rule tables
func NewCanonicalizer(rules model.RuleTables) *Canonicalizer {
	tracking := make(map[string]bool, len(rules.TrackingParams))
	for _, p := range rules.TrackingParams {
		tracking[strings.ToLower(p)] = true
	}
	return &Canonicalizer{
		tracking: tracking,
		prefixes: rules.TrackingParamPrefixes,
	}
}

// Canonicalize returns the canonical form of rawURL, or ok=false for
// unparsable input. Rules, in order: secure scheme unless the host is
// local/private, lowercase host, single trailing slash trimmed (root
// kept), fragment dropped, tracking params removed, remaining params
// sorted, values percent-encoded.
func (c *Canonicalizer) Canonicalize(rawURL string) (string, bool) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || parsed.Host == "" {
		return "", false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", false
	}

	host := strings.ToLower(parsed.Host)

	scheme := "https"
	if isPrivateHost(host) {
		scheme = parsed.Scheme
	}

	path := parsed.Path
	if len(path) > 1 && strings.HasSuffix(path, "/") {
		path = strings.TrimSuffix(path, "/")
	}

	query := c.cleanQuery(parsed.Query())

	canonical := url.URL{
		Scheme:   scheme,
		Host:     host,
		Path:     path,
		RawQuery: query,
	}
	return canonical.String(), true
}

// cleanQuery drops tracking parameters and re-encodes the rest in
// alphabetical key order
func (c *Canonicalizer) cleanQuery(values url.Values) string {
	kept := url.Values{}
	for key, vals := range values {
		lower := strings.ToLower(key)
		if c.tracking[lower] {
			continue
		}
		if hasAnyPrefix(lower, c.prefixes) {
			continue
		}
		for _, v := range vals {
			kept.Add(key, v)
		}
	}
	// url.Values.Encode sorts by key and percent-encodes values
	return kept.Encode()
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// isPrivateHost reports whether the host is localhost or an RFC1918
// address; those keep their original scheme
func isPrivateHost(host string) bool {
	hostname := host
	if h, _, err := net.SplitHostPort(host); err == nil {
		hostname = h
	}
	if hostname == "localhost" {
		return true
	}
	ip := net.ParseIP(hostname)
	if ip == nil {
		return false
	}
	return ip.IsPrivate() || ip.IsLoopback()
}

// Domain returns the canonical domain of a URL: lowercase host without
// port or a leading "www.". Used to collapse multiple pages of one
// vendor before market counting.
func Domain(rawURL string) (string, bool) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || parsed.Host == "" {
		return "", false
	}
	host := strings.ToLower(parsed.Host)
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.TrimPrefix(host, "www.")
	return host, true
}

// Deduplicate keeps the first occurrence per canonical URL, preserving
// original order. Results whose URL cannot be canonicalized are dropped.
func (c *Canonicalizer) Deduplicate(results []model.SearchResult) []model.SearchResult {
	seen := make(map[string]bool)
	out := make([]model.SearchResult, 0, len(results))
	for _, r := range results {
		key, ok := c.Canonicalize(r.URL)
		if !ok {
			continue
		}
		if !seen[key] {
			seen[key] = true
			out = append(out, r)
		}
	}
	return out
}
