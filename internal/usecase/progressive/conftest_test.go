package progressive

import (
	"context"
	"slices"
	"strconv"
	"strings"

	domassoc "github.com/kailas-cloud/tagdex/internal/domain/association"
	"github.com/kailas-cloud/tagdex/internal/domain/content"
	"github.com/kailas-cloud/tagdex/internal/domain/fallback"
	"github.com/kailas-cloud/tagdex/internal/domain/tag"
)

// mockIndex answers intersections from a fixed tag -> listings table.
type mockIndex struct {
	listings    map[int64][]int64
	weights     map[int64]map[int64]float64 // tag -> listing -> weight
	unsupported bool
	err         error
	calls       []string
}

func (m *mockIndex) IntersectListings(_ context.Context, tagIDs []int64) ([]int64, error) {
	m.calls = append(m.calls, key(tagIDs))
	if m.err != nil {
		return nil, m.err
	}
	if m.unsupported {
		return nil, errUnsupported
	}
	counts := make(map[int64]int)
	for _, id := range tagIDs {
		for _, l := range m.listings[id] {
			counts[l]++
		}
	}
	var out []int64
	for l, n := range counts {
		if n == len(tagIDs) {
			out = append(out, l)
		}
	}
	slices.Sort(out)
	return out, nil
}

func (m *mockIndex) ListingsByTag(_ context.Context, tagID int64) ([]int64, error) {
	return m.listings[tagID], nil
}

func (m *mockIndex) ListingWeights(_ context.Context, tagIDs, listingIDs []int64) ([]domassoc.Association, error) {
	var out []domassoc.Association
	for _, t := range tagIDs {
		for _, l := range listingIDs {
			if w, ok := m.weights[t][l]; ok {
				out = append(out, domassoc.Association{ContentID: l, ContentType: content.Property, TagID: t, Weight: w})
			}
		}
	}
	return out, nil
}

type mockObserver struct {
	levels    []fallback.Achieved
	fallbacks int
}

func (m *mockObserver) FallbackLevel(_ string, l fallback.Achieved) { m.levels = append(m.levels, l) }
func (m *mockObserver) IntersectionFallback()                       { m.fallbacks++ }

func key(ids []int64) string {
	s := slices.Clone(ids)
	slices.Sort(s)
	parts := make([]string, len(s))
	for i, id := range s {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

func listingIDs(r Result) []int64 {
	out := make([]int64, len(r.Items))
	for i, it := range r.Items {
		out[i] = it.ContentID
	}
	return out
}

func seq(from, to int64) []int64 {
	var out []int64
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

var (
	chile     = tag.Reconstruct(1, tag.Country, "chile", nil, 1)
	sale      = tag.Reconstruct(10, tag.Operation, "sale", nil, 1)
	apartment = tag.Reconstruct(20, tag.PropertyType, "apartment", nil, 1)
	santiago  = tag.Reconstruct(30, tag.City, "santiago", nil, 1)
	providen  = tag.Reconstruct(40, tag.Sector, "providencia", nil, 1)
	pool      = tag.Reconstruct(60, tag.Feature, "pool", nil, 1)
)
