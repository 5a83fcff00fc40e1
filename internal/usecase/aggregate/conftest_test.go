package aggregate

import (
	"context"
	"strconv"
	"sync"

	"github.com/kailas-cloud/tagdex/internal/domain/content"
	"github.com/kailas-cloud/tagdex/internal/domain/poi"
	domrank "github.com/kailas-cloud/tagdex/internal/domain/ranking"
	"github.com/kailas-cloud/tagdex/internal/domain/tag"
	"github.com/kailas-cloud/tagdex/internal/usecase/carousel"
	"github.com/kailas-cloud/tagdex/internal/usecase/cascade"
	"github.com/kailas-cloud/tagdex/internal/usecase/progressive"
)

type mockResolver struct {
	tags       []tag.Tag
	country    tag.Tag
	hasCountry bool
	err        error
	countryIDs []int64
}

func (m *mockResolver) Resolve(context.Context, []string, string) ([]tag.Tag, error) {
	return m.tags, m.err
}

func (m *mockResolver) Country(_ context.Context, id int64) (tag.Tag, bool, error) {
	m.countryIDs = append(m.countryIDs, id)
	return m.country, m.hasCountry, nil
}

type mockListings struct {
	res   progressive.Result
	err   error
	query progressive.Query
}

func (m *mockListings) SearchWithFallback(_ context.Context, q progressive.Query) (progressive.Result, error) {
	m.query = q
	return m.res, m.err
}

type mockRelated struct {
	merged map[content.Type]domrank.Merged
	errs   map[content.Type]error
}

func (m *mockRelated) MergeType(_ context.Context, _ cascade.Query, t content.Type) (domrank.Merged, error) {
	if err := m.errs[t]; err != nil {
		return domrank.Merged{}, err
	}
	return m.merged[t], nil
}

type mockCarousels struct {
	carousels []carousel.Carousel
	err       error
}

func (m *mockCarousels) Generate(context.Context, carousel.Query) ([]carousel.Carousel, error) {
	return m.carousels, m.err
}

// mockContent hydrates every id except those listed in missing.
type mockContent struct {
	missing map[content.Key]bool
	errs    map[content.Type]error
}

func (m *mockContent) Details(_ context.Context, t content.Type, ids []int64) ([]content.Record, error) {
	if err := m.errs[t]; err != nil {
		return nil, err
	}
	var out []content.Record
	for _, id := range ids {
		k := content.Key{Type: t, ID: id}
		if m.missing[k] {
			continue
		}
		out = append(out, content.Record{Key: k, Fields: map[string]string{
			"title": k.String(), "lat": "-33.4", "lon": "-70.6",
		}})
	}
	return out, nil
}

type mockEnricher struct {
	pois []poi.POI
	err  error
}

func (m *mockEnricher) Nearby(context.Context, int64, content.Record) ([]poi.POI, error) {
	return m.pois, m.err
}

type mockObserver struct {
	mu       sync.Mutex
	branches []string
}

func (m *mockObserver) BranchFailed(branch string) {
	m.mu.Lock()
	m.branches = append(m.branches, branch)
	m.mu.Unlock()
}

func scored(ids ...int64) []domrank.Scored {
	out := make([]domrank.Scored, len(ids))
	for i, id := range ids {
		out[i] = domrank.Scored{ContentID: id, ContentType: content.Property, TotalWeight: float64(len(ids) - i)}
	}
	return out
}

func entryIDs(entries []Entry) []int64 {
	out := make([]int64, len(entries))
	for i, e := range entries {
		out[i] = e.Key.ID
	}
	return out
}

func titles(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Fields["title"]
	}
	return out
}

func itoa(v int64) string { return strconv.FormatInt(v, 10) }
