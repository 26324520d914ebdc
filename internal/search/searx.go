package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/ppiankov/ideagauge/internal/cache"
	"github.com/ppiankov/ideagauge/internal/model"
	"github.com/ppiankov/ideagauge/internal/util"
)

// RateLimiter gates outbound requests by destination URL.
// worker.Limiter satisfies it.
type RateLimiter interface {
	Wait(ctx context.Context, rawURL string) error
}

// SearxClient queries a SearxNG-compatible JSON endpoint
type SearxClient struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	maxResults int
	cache      cache.Cache // Optional; nil disables caching
	limiter    RateLimiter // Optional; nil disables rate limiting
}

// searxResponse is the subset of the SearxNG JSON schema we consume
type searxResponse struct {
	Results []struct {
		Title   string `json:"title"`
		Content string `json:"content"`
		URL     string `json:"url"`
	} `json:"results"`
}

// NewSearxClient creates a search client from the configuration
func NewSearxClient(cfg model.SearchConfig, httpCfg model.HTTPConfig, c cache.Cache, limiter RateLimiter) *SearxClient {
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 10
	}

	return &SearxClient{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: httpCfg.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(httpCfg.HTTPProxy, httpCfg.HTTPSProxy, httpCfg.NoProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent:  httpCfg.UserAgent,
		maxBytes:   httpCfg.MaxBodyBytes,
		maxResults: maxResults,
		cache:      c,
		limiter:    limiter,
	}
}

// Search issues one query and returns up to maxResults results in
// provider order
func (s *SearxClient) Search(ctx context.Context, query string) ([]model.SearchResult, error) {
	key := cache.Key("search:" + query)
	if s.cache != nil {
		if data, found := s.cache.Get(key); found {
			var results []model.SearchResult
			if err := json.Unmarshal(data, &results); err == nil {
				return results, nil
			}
			// Corrupt entry: fall through to a fresh fetch
			_ = s.cache.Delete(key)
		}
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx, s.baseURL); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	endpoint := fmt.Sprintf("%s/search?q=%s&format=json", s.baseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var parsed searxResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	results := make([]model.SearchResult, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		if r.URL == "" {
			continue
		}
		results = append(results, model.SearchResult{
			Title:   r.Title,
			Snippet: r.Content,
			URL:     r.URL,
		})
		if len(results) >= s.maxResults {
			break
		}
	}

	if s.cache != nil {
		if data, err := json.Marshal(results); err == nil {
			// TTL 0 defers to each cache layer's configured default
			_ = s.cache.Set(key, data, 0)
		}
	}

	return results, nil
}
