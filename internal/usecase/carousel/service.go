package carousel

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	domcarousel "github.com/kailas-cloud/tagdex/internal/domain/carousel"
	"github.com/kailas-cloud/tagdex/internal/domain/fallback"
	domrank "github.com/kailas-cloud/tagdex/internal/domain/ranking"
	"github.com/kailas-cloud/tagdex/internal/domain/tag"
	"github.com/kailas-cloud/tagdex/internal/logger"
	"github.com/kailas-cloud/tagdex/internal/usecase/progressive"
	"github.com/kailas-cloud/tagdex/internal/usecase/resolve"
)

const maxParallelGroups = 8

// Carousel is a filled thematic carousel.
type Carousel struct {
	Group   domcarousel.Group
	Items   []domrank.Scored
	Total   int
	Level   fallback.Achieved
	Tags    []tag.Tag // tags searched at Level, country included
	ViewAll string
}

// Query scopes carousel generation for one request.
type Query struct {
	Scope  resolve.Scope
	Locale string
}

// Service fills curated carousels.
type Service struct {
	groups    GroupReader
	tags      TagReader
	search    Searcher
	itemLimit int
	obs       Observer
}

// New creates a carousel service. itemLimit caps the items of each carousel;
// a group whose min_score is larger pages up to its min_score instead.
func New(groups GroupReader, tags TagReader, search Searcher, itemLimit int) *Service {
	return &Service{groups: groups, tags: tags, search: search, itemLimit: itemLimit, obs: nopObserver{}}
}

// WithObserver sets the observer notified of omitted groups.
func (s *Service) WithObserver(obs Observer) *Service {
	if obs != nil {
		s.obs = obs
	}
	return s
}

// Generate searches every active group in parallel and returns the carousels
// that reached their min_score, ordered by group priority. A group that fails
// or stays under min_score at every level is omitted.
func (s *Service) Generate(ctx context.Context, q Query) ([]Carousel, error) {
	groups, err := s.groups.Active(ctx)
	if err != nil {
		return nil, fmt.Errorf("load carousel groups: %w", err)
	}
	if len(groups) == 0 {
		return nil, nil
	}
	domcarousel.SortByPriority(groups)

	themes, err := s.themeTags(ctx, groups)
	if err != nil {
		return nil, err
	}

	slots := make([]*Carousel, len(groups))
	var g errgroup.Group
	g.SetLimit(maxParallelGroups)
	for i, grp := range groups {
		g.Go(func() error {
			slots[i] = s.fill(ctx, q, grp, themes)
			return nil
		})
	}
	_ = g.Wait() // group failures are absorbed in fill

	out := make([]Carousel, 0, len(slots))
	for _, c := range slots {
		if c != nil {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *Service) fill(ctx context.Context, q Query, grp domcarousel.Group, themes map[int64]tag.Tag) *Carousel {
	log := logger.FromContext(ctx).With(zap.Int64("carousel_group", grp.ID))

	pinned := make([]tag.Tag, 0, len(grp.RequiredTagIDs))
	for _, id := range grp.RequiredTagIDs {
		t, ok := themes[id]
		if !ok {
			log.Warn("Carousel group references unknown tag", zap.Int64("tag_id", id))
			return nil
		}
		pinned = append(pinned, t)
	}

	res, err := s.search.SearchWithFallback(ctx, progressive.Query{
		Scope:      q.Scope,
		Pinned:     pinned,
		MinResults: grp.MinScore,
		Limit:      max(s.itemLimit, grp.MinScore),
		Label:      "carousel",
	})
	if err != nil {
		log.Warn("Carousel group search failed", zap.Error(err))
		s.obs.BranchFailed("carousel_group")
		return nil
	}
	if !res.Level.Found() || res.Total < grp.MinScore || len(res.Items) < grp.MinScore {
		log.Debug("Carousel group under min_score",
			zap.Int("found", res.Total), zap.Int("items", len(res.Items)), zap.Int("min_score", grp.MinScore))
		return nil
	}

	return &Carousel{
		Group:   grp,
		Items:   res.Items,
		Total:   res.Total,
		Level:   res.Level,
		Tags:    res.Tags,
		ViewAll: ViewAllPath(res.Tags, q.Locale),
	}
}

// themeTags loads the required tags of every group in one catalog read.
func (s *Service) themeTags(ctx context.Context, groups []domcarousel.Group) (map[int64]tag.Tag, error) {
	var ids []int64
	for _, g := range groups {
		ids = append(ids, g.RequiredTagIDs...)
	}
	tags, err := s.tags.ByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load carousel tags: %w", err)
	}
	out := make(map[int64]tag.Tag, len(tags))
	for _, t := range tags {
		out[t.ID()] = t
	}
	return out, nil
}

// ViewAllPath builds the listing path for tags: country excluded, ordered
// operation, category, city, sector, then the rest, joined by "/" using the
// locale slugs.
func ViewAllPath(tags []tag.Tag, locale string) string {
	sorted := tag.SortByHierarchy(tags)
	parts := make([]string, 0, len(sorted))
	for _, t := range sorted {
		if t.Category() == tag.Country {
			continue
		}
		parts = append(parts, t.SlugFor(locale))
	}
	return strings.Join(parts, "/")
}
