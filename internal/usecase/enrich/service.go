package enrich

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/kailas-cloud/tagdex/internal/domain/content"
	"github.com/kailas-cloud/tagdex/internal/domain/poi"
)

// Config controls nearby lookups.
type Config struct {
	RadiusKm float64
	MaxPOIs  int
	TTL      time.Duration
}

// Service adds nearby points of interest to located content.
type Service struct {
	repo  POIReader
	cache Cache
	cfg   Config
	obs   Observer
}

// New creates an enrichment service. obs can be nil.
func New(repo POIReader, cache Cache, cfg Config, obs Observer) *Service {
	if obs == nil {
		obs = nopObserver{}
	}
	return &Service{repo: repo, cache: cache, cfg: cfg, obs: obs}
}

// Nearby returns POIs around rec within countryTagID's scope.
// Records without coordinates have no POIs.
func (s *Service) Nearby(ctx context.Context, countryTagID int64, rec content.Record) ([]poi.POI, error) {
	lat, lon, ok := rec.Coordinates()
	if !ok {
		return nil, nil
	}

	key := cacheKey(countryTagID, lat, lon)
	if pois, hit := s.cache.Get(key); hit {
		s.obs.CacheResult(true)
		return pois, nil
	}
	s.obs.CacheResult(false)

	pois, err := s.repo.Nearby(ctx, poi.Query{
		CountryTagID: countryTagID,
		Latitude:     lat,
		Longitude:    lon,
		RadiusKm:     s.cfg.RadiusKm,
		Limit:        s.cfg.MaxPOIs,
	})
	if err != nil {
		return nil, fmt.Errorf("nearby %s: %w", rec.Key, err)
	}
	s.cache.SetWithTTL(key, pois, 1, s.cfg.TTL)
	return pois, nil
}

// cacheKey rounds coordinates to ~11 m so neighbouring requests share entries.
func cacheKey(countryTagID int64, lat, lon float64) string {
	return strconv.FormatInt(countryTagID, 10) + ":" +
		strconv.FormatFloat(lat, 'f', 4, 64) + ":" +
		strconv.FormatFloat(lon, 'f', 4, 64)
}
