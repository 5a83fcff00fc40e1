package enrich

import (
	"fmt"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/kailas-cloud/tagdex/internal/domain/poi"
)

// NewCache creates a ristretto cache holding at most maxEntries lookups.
// Every entry costs 1, so MaxCost is the entry bound.
func NewCache(maxEntries int64) (*ristretto.Cache[string, []poi.POI], error) {
	if maxEntries <= 0 {
		return nil, fmt.Errorf("cache max entries must be positive, got %d", maxEntries)
	}
	c, err := ristretto.NewCache(&ristretto.Config[string, []poi.POI]{
		NumCounters:        maxEntries * 10,
		MaxCost:            maxEntries,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create enrichment cache: %w", err)
	}
	return c, nil
}
