package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kailas-cloud/tagdex/internal/db"
)

// GeoSearch runs GEOSEARCH FROMLONLAT BYRADIUS, nearest first.
func (s *Store) GeoSearch(ctx context.Context, q *db.GeoQuery) ([]db.GeoMember, error) {
	if q.Key == "" {
		return nil, fmt.Errorf("key is required")
	}
	if q.RadiusKm <= 0 {
		return nil, fmt.Errorf("radius must be positive")
	}

	args := []string{
		"FROMLONLAT", formatFloat(q.Longitude), formatFloat(q.Latitude),
		"BYRADIUS", formatFloat(q.RadiusKm), "km",
		"ASC",
	}
	if q.Count > 0 {
		args = append(args, "COUNT", strconv.Itoa(q.Count))
	}
	args = append(args, "WITHCOORD", "WITHDIST")

	cmd := s.b().Arbitrary("GEOSEARCH").Keys(q.Key).Args(args...).Build()
	locs, err := s.do(ctx, cmd).AsGeosearch()
	if err != nil {
		return nil, &db.Error{Op: db.OpGeoSearch, Err: err}
	}

	out := make([]db.GeoMember, len(locs))
	for i, l := range locs {
		out[i] = db.GeoMember{
			Name:       l.Name,
			Longitude:  l.Longitude,
			Latitude:   l.Latitude,
			DistanceKm: l.Dist,
		}
	}
	return out, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
