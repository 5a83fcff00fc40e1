package poi

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/tagdex/internal/db"
	dompoi "github.com/kailas-cloud/tagdex/internal/domain/poi"
	"github.com/kailas-cloud/tagdex/internal/repository/keys"
)

// store is the consumer interface for point-of-interest lookups (ISP).
type store interface {
	GeoSearch(ctx context.Context, q *db.GeoQuery) ([]db.GeoMember, error)
}

// Repo reads points of interest from per-country geo sets.
type Repo struct {
	store store
	keys  keys.Space
}

// New creates a POI repository.
func New(s store, k keys.Space) *Repo {
	return &Repo{store: s, keys: k}
}

// Nearby returns POIs within the query radius, nearest first.
func (r *Repo) Nearby(ctx context.Context, q dompoi.Query) ([]dompoi.POI, error) {
	members, err := r.store.GeoSearch(ctx, &db.GeoQuery{
		Key:       r.keys.POI(q.CountryTagID),
		Longitude: q.Longitude,
		Latitude:  q.Latitude,
		RadiusKm:  q.RadiusKm,
		Count:     q.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("nearby poi: %w", err)
	}

	out := make([]dompoi.POI, len(members))
	for i, m := range members {
		out[i] = dompoi.POI{
			Name:       m.Name,
			Latitude:   m.Latitude,
			Longitude:  m.Longitude,
			DistanceKm: m.DistanceKm,
		}
	}
	return out, nil
}
