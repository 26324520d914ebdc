// Package search is the boundary to the external web-search
// collaborator. The pipeline treats an empty or partial result list as
// valid input; availability concerns stay on this side of the boundary.
package search

import (
	"context"

	"github.com/ppiankov/ideagauge/internal/model"
)

// Provider returns an ordered list of results for a query. Order
// matters downstream: first occurrence wins deduplication ties.
type Provider interface {
	Search(ctx context.Context, query string) ([]model.SearchResult, error)
}

// Static is a fixed query->results provider used in tests and offline
// dry runs
type Static map[string][]model.SearchResult

// Search returns the canned results for the query (nil when absent)
func (s Static) Search(_ context.Context, query string) ([]model.SearchResult, error) {
	return s[query], nil
}
