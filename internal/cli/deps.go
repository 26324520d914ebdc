package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ppiankov/ideagauge/internal/cache"
	"github.com/ppiankov/ideagauge/internal/enrich"
	"github.com/ppiankov/ideagauge/internal/model"
	"github.com/ppiankov/ideagauge/internal/pipeline"
	"github.com/ppiankov/ideagauge/internal/search"
	"github.com/ppiankov/ideagauge/internal/worker"
)

// buildPipeline wires the search client, cache and rate limiter into a
// pipeline. Search and enrichment share one per-domain limiter so the
// combined request rate stays bounded.
func buildPipeline(cfg *model.Config) (*pipeline.Pipeline, error) {
	var searchCache cache.Cache
	if cfg.Cache.Enabled {
		dir := cfg.Cache.Dir
		if dir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("find home directory: %w", err)
			}
			dir = filepath.Join(home, ".ideagauge", "cache")
		}
		searchCache = cache.NewLayeredCache(cfg.Cache.MemoryTTL, dir, cfg.Cache.DiskTTL)
	}

	limiter := worker.NewLimiter(cfg.Search.RequestsPerSecond, cfg.Search.Burst)

	client := search.NewSearxClient(cfg.Search, cfg.HTTP, searchCache, limiter)

	p := pipeline.NewPipeline(cfg, client)
	if cfg.Enrich.Enabled {
		p.SetEnricher(enrich.NewEnricher(cfg, limiter))
	}
	return p, nil
}
