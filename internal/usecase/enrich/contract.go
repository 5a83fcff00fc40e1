package enrich

import (
	"context"
	"time"

	"github.com/kailas-cloud/tagdex/internal/domain/poi"
)

// POIReader reads points of interest around a location.
type POIReader interface {
	Nearby(ctx context.Context, q poi.Query) ([]poi.POI, error)
}

// Cache memoizes lookups with a per-entry TTL and bounded size.
type Cache interface {
	Get(key string) ([]poi.POI, bool)
	SetWithTTL(key string, value []poi.POI, cost int64, ttl time.Duration) bool
}

// Observer counts cache hits and misses.
type Observer interface {
	CacheResult(hit bool)
}

type nopObserver struct{}

func (nopObserver) CacheResult(bool) {}
