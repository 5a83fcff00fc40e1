package aggregate

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/tagdex/internal/domain"
	"github.com/kailas-cloud/tagdex/internal/domain/content"
	domrank "github.com/kailas-cloud/tagdex/internal/domain/ranking"
	"github.com/kailas-cloud/tagdex/internal/logger"
	"github.com/kailas-cloud/tagdex/internal/usecase/carousel"
	"github.com/kailas-cloud/tagdex/internal/usecase/cascade"
	"github.com/kailas-cloud/tagdex/internal/usecase/progressive"
	"github.com/kailas-cloud/tagdex/internal/usecase/resolve"
)

// Branch names used in logs and metrics.
const (
	BranchRelated   = "related"
	BranchCarousels = "carousels"
	BranchNearby    = "nearby"
)

// Service assembles the discovery response from independent parallel branches.
type Service struct {
	resolver  Resolver
	listings  ListingSearcher
	related   RelatedMerger
	carousels CarouselGenerator
	content   ContentReader
	enrich    Enricher
	obs       Observer
	defaults  Defaults
}

// New creates an aggregate service.
func New(
	resolver Resolver, listings ListingSearcher, related RelatedMerger,
	carousels CarouselGenerator, contentReader ContentReader, defaults Defaults,
) *Service {
	return &Service{
		resolver:  resolver,
		listings:  listings,
		related:   related,
		carousels: carousels,
		content:   contentReader,
		obs:       nopObserver{},
		defaults:  defaults,
	}
}

// WithEnricher enables nearby POIs for anchored requests.
func (s *Service) WithEnricher(e Enricher) *Service {
	s.enrich = e
	return s
}

// WithObserver sets the observer notified of degraded branches.
func (s *Service) WithObserver(obs Observer) *Service {
	if obs != nil {
		s.obs = obs
	}
	return s
}

// Discover resolves the request tags, then runs the primary listing search,
// one related-content merge per type, carousel generation and nearby
// enrichment in parallel. Only a primary listing failure fails the request;
// every other branch degrades to empty output.
func (s *Service) Discover(ctx context.Context, req Request) (Response, error) {
	req, err := req.normalize(s.defaults)
	if err != nil {
		return Response{}, err
	}

	tags, err := s.resolver.Resolve(ctx, req.Slugs, req.Locale)
	if err != nil {
		return Response{}, fmt.Errorf("resolve: %w", err)
	}
	country, hasCountry, err := s.resolver.Country(ctx, req.CountryTagID)
	if err != nil {
		return Response{}, fmt.Errorf("resolve: %w", err)
	}
	scope := resolve.NewScope(tags, country, hasCountry)

	resp := Response{Locale: req.Locale, Tags: scope.Scoped()}
	if req.Anchor != nil {
		if resp.Anchor, err = s.anchor(ctx, *req.Anchor); err != nil {
			return Response{}, err
		}
	}

	types := content.RelatedTypes()
	related := make([]Related, len(types))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		listing, err := s.listing(gctx, scope, req)
		if err != nil {
			return fmt.Errorf("%w: %w", domain.ErrPrimarySearch, err)
		}
		resp.Listing = listing
		return nil
	})
	for i, t := range types {
		g.Go(func() error {
			related[i] = s.relatedList(gctx, cascade.Query{Scope: scope, Anchor: req.Anchor}, t)
			return nil
		})
	}
	g.Go(func() error {
		resp.Carousels = s.carouselList(gctx, carousel.Query{Scope: scope, Locale: req.Locale})
		return nil
	})
	if resp.Anchor != nil && s.enrich != nil && scope.HasCountry {
		g.Go(func() error {
			pois, err := s.enrich.Nearby(gctx, scope.Country.ID(), *resp.Anchor)
			if err != nil {
				s.degrade(gctx, BranchNearby, err)
				return nil
			}
			resp.Nearby = pois
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Response{}, err //nolint:wrapcheck // already wrapped with ErrPrimarySearch
	}

	resp.Related = related
	return resp, nil
}

func (s *Service) anchor(ctx context.Context, key content.Key) (*content.Record, error) {
	recs, err := s.content.Details(ctx, key.Type, []int64{key.ID})
	if err != nil {
		return nil, fmt.Errorf("load anchor %s: %w", key, err)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("anchor %s: %w", key, domain.ErrNotFound)
	}
	return &recs[0], nil
}

func (s *Service) listing(ctx context.Context, scope resolve.Scope, req Request) (Listing, error) {
	res, err := s.listings.SearchWithFallback(ctx, progressive.Query{
		Scope:      scope,
		MinResults: req.MinResults,
		Offset:     (req.Page - 1) * req.Limit,
		Limit:      req.Limit,
		Label:      "listing",
	})
	if err != nil {
		return Listing{}, err //nolint:wrapcheck // wrapped by caller
	}
	items, err := s.hydrateScored(ctx, content.Property, res.Items)
	if err != nil {
		return Listing{}, err
	}
	return Listing{
		Items: items,
		Total: res.Total,
		Page:  req.Page,
		Limit: req.Limit,
		Level: res.Level,
		Tags:  res.Tags,
	}, nil
}

func (s *Service) relatedList(ctx context.Context, q cascade.Query, t content.Type) Related {
	empty := Related{Type: t, Source: domrank.SourceOf(domrank.Counts{})}

	m, err := s.related.MergeType(ctx, q, t)
	if err != nil {
		s.degrade(ctx, BranchRelated+"_"+string(t), err)
		return empty
	}

	ids := make([]int64, len(m.Items))
	for i, it := range m.Items {
		ids[i] = it.Key.ID
	}
	recs, err := s.content.Details(ctx, t, ids)
	if err != nil {
		s.degrade(ctx, BranchRelated+"_"+string(t), err)
		return empty
	}
	byID := recordsByID(recs)

	out := Related{Type: t}
	for _, it := range m.Items {
		rec, ok := byID[it.Key.ID]
		if !ok {
			continue
		}
		out.Items = append(out.Items, Entry{
			Key:         it.Key,
			Fields:      rec.Fields,
			Tier:        it.Tier,
			TotalWeight: it.TotalWeight,
			MatchedTags: it.MatchedTags,
		})
		switch it.Tier {
		case domrank.TierSpecific:
			out.Counts.Specific++
		case domrank.TierTagRelated:
			out.Counts.TagRelated++
		case domrank.TierDefault:
			out.Counts.Default++
		}
	}
	out.Source = domrank.SourceOf(out.Counts)
	return out
}

func (s *Service) carouselList(ctx context.Context, q carousel.Query) []Carousel {
	cs, err := s.carousels.Generate(ctx, q)
	if err != nil {
		s.degrade(ctx, BranchCarousels, err)
		return nil
	}

	out := make([]Carousel, 0, len(cs))
	for _, c := range cs {
		items, err := s.hydrateScored(ctx, content.Property, c.Items)
		if err != nil {
			s.degrade(ctx, BranchCarousels, err)
			return nil
		}
		if len(items) < c.Group.MinScore {
			continue
		}
		out = append(out, Carousel{
			GroupID:  c.Group.ID,
			Theme:    c.Group.Theme,
			Priority: c.Group.Priority,
			Items:    items,
			Total:    c.Total,
			Level:    c.Level,
			ViewAll:  c.ViewAll,
		})
	}
	return out
}

// hydrateScored loads records for scored items, keeping rank order and
// dropping ids without a record.
func (s *Service) hydrateScored(ctx context.Context, t content.Type, scored []domrank.Scored) ([]Entry, error) {
	if len(scored) == 0 {
		return nil, nil
	}
	ids := make([]int64, len(scored))
	for i, sc := range scored {
		ids[i] = sc.ContentID
	}
	recs, err := s.content.Details(ctx, t, ids)
	if err != nil {
		return nil, fmt.Errorf("hydrate %s: %w", t, err)
	}
	byID := recordsByID(recs)

	out := make([]Entry, 0, len(scored))
	for _, sc := range scored {
		rec, ok := byID[sc.ContentID]
		if !ok {
			continue
		}
		out = append(out, Entry{
			Key:         rec.Key,
			Fields:      rec.Fields,
			TotalWeight: sc.TotalWeight,
			MatchedTags: sc.MatchedTags,
		})
	}
	return out, nil
}

func (s *Service) degrade(ctx context.Context, branch string, err error) {
	logger.FromContext(ctx).Warn("Optional branch degraded to empty",
		zap.String("branch", branch), zap.Error(err))
	s.obs.BranchFailed(branch)
}

func recordsByID(recs []content.Record) map[int64]content.Record {
	out := make(map[int64]content.Record, len(recs))
	for _, r := range recs {
		out[r.Key.ID] = r
	}
	return out
}
