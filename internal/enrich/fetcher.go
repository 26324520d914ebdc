package enrich

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ppiankov/ideagauge/internal/model"
	"github.com/ppiankov/ideagauge/internal/util"
	"golang.org/x/net/html"
)

// RateLimiter gates page fetches by destination domain.
// worker.Limiter satisfies it.
type RateLimiter interface {
	Wait(ctx context.Context, rawURL string) error
}

// Enricher fills empty result snippets by fetching the page and
// extracting visible text. It is strictly optional: fetch failures
// leave the result untouched, and robots.txt disallow skips the fetch.
type Enricher struct {
	httpClient *http.Client
	robots     *util.RobotsChecker
	limiter    RateLimiter
	userAgent  string
	maxBytes   int64
	maxSnippet int
	verbose    bool
}

// NewEnricher creates an enricher from configuration
func NewEnricher(cfg *model.Config, limiter RateLimiter) *Enricher {
	timeout := cfg.Enrich.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Enricher{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		robots:     util.NewRobotsChecker(cfg.HTTP.UserAgent, timeout),
		limiter:    limiter,
		userAgent:  cfg.HTTP.UserAgent,
		maxBytes:   cfg.HTTP.MaxBodyBytes,
		maxSnippet: cfg.Enrich.MaxSnippet,
		verbose:    cfg.Output.Verbose,
	}
}

// Enrich fills empty snippets in place. Results that already carry a
// snippet are never refetched.
func (e *Enricher) Enrich(ctx context.Context, results []model.SearchResult) []model.SearchResult {
	for i := range results {
		if results[i].Snippet != "" {
			continue
		}

		snippet, err := e.fetchSnippet(ctx, results[i].URL)
		if err != nil {
			e.logf("enrich: skip %s: %v", results[i].URL, err)
			continue
		}
		results[i].Snippet = snippet
	}
	return results
}

func (e *Enricher) fetchSnippet(ctx context.Context, rawURL string) (string, error) {
	if !e.robots.IsAllowed(ctx, rawURL) {
		return "", fmt.Errorf("disallowed by robots.txt")
	}

	if e.limiter != nil {
		if err := e.limiter.Wait(ctx, rawURL); err != nil {
			return "", fmt.Errorf("rate limit: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", e.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType != "" && !strings.Contains(contentType, "text/html") {
		return "", fmt.Errorf("not HTML: %s", contentType)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, e.maxBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	text := extractVisibleText(string(body))
	if text == "" {
		return "", fmt.Errorf("no visible text")
	}
	return truncateSnippet(text, e.maxSnippet), nil
}

// extractVisibleText walks the HTML tree and collects text nodes,
// skipping script, style and metadata subtrees
func extractVisibleText(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return ""
	}

	skip := map[string]bool{
		"script":   true,
		"style":    true,
		"noscript": true,
		"head":     true,
		"nav":      true,
		"footer":   true,
	}

	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skip[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				parts = append(parts, text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.Join(parts, " ")
}

// truncateSnippet cuts at a word boundary near the limit
func truncateSnippet(text string, max int) string {
	if max <= 0 || len(text) <= max {
		return text
	}

	cut := text[:max]
	if idx := strings.LastIndexByte(cut, ' '); idx > max/2 {
		cut = cut[:idx]
	}
	return strings.TrimSpace(cut)
}

func (e *Enricher) logf(format string, args ...any) {
	if e.verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
