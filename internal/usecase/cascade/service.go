package cascade

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/tagdex/internal/domain/content"
	domrank "github.com/kailas-cloud/tagdex/internal/domain/ranking"
	"github.com/kailas-cloud/tagdex/internal/domain/tag"
	"github.com/kailas-cloud/tagdex/internal/usecase/ranking"
	"github.com/kailas-cloud/tagdex/internal/usecase/resolve"
)

// DefaultLimits returns the per-type caps of the related-content lists.
func DefaultLimits() map[content.Type]int {
	return map[content.Type]int{
		content.Article:     12,
		content.Video:       10,
		content.Testimonial: 8,
		content.FAQ:         15,
		content.SEOContent:  8,
	}
}

// Query scopes one related-content merge.
type Query struct {
	Scope  resolve.Scope
	Anchor *content.Key // detail page item; feeds the specific tier
}

// Service fills per-type related-content lists through the three-tier cascade.
type Service struct {
	assocs     AssociationReader
	relations  RelationReader
	limits     map[content.Type]int
	fetchLimit int
}

// New creates a cascade service. limits caps each content type; types missing
// from limits use DefaultLimits. fetchLimit bounds the associations read per
// (tag, type) edge list.
func New(assocs AssociationReader, relations RelationReader, limits map[content.Type]int, fetchLimit int) *Service {
	merged := DefaultLimits()
	for t, n := range limits {
		merged[t] = n
	}
	return &Service{assocs: assocs, relations: relations, limits: merged, fetchLimit: fetchLimit}
}

// Limit returns the cap for content type t.
func (s *Service) Limit(t content.Type) int {
	return s.limits[t]
}

// MergeType builds the related-content list for one content type.
// Lower tiers are only read while the list is under its cap.
func (s *Service) MergeType(ctx context.Context, q Query, t content.Type) (domrank.Merged, error) {
	limit := s.Limit(t)

	specific, err := s.specific(ctx, q.Anchor, t, limit)
	if err != nil {
		return domrank.Merged{Type: t}, err
	}
	m := Merge(t, specific, nil, nil, limit)
	if len(m.Items) >= limit {
		return m, nil
	}

	tagRelated, err := s.ranked(ctx, tag.IDs(q.Scope.Tags), t, domrank.TierTagRelated, q.Anchor)
	if err != nil {
		return domrank.Merged{Type: t}, fmt.Errorf("tag related %s: %w", t, err)
	}
	if q.Scope.HasCountry {
		if tagRelated, err = s.inCountry(ctx, tagRelated, t, q.Scope.Country.ID()); err != nil {
			return domrank.Merged{Type: t}, fmt.Errorf("tag related %s: %w", t, err)
		}
	}
	m = Merge(t, specific, tagRelated, nil, limit)
	if len(m.Items) >= limit || !q.Scope.HasCountry {
		return m, nil
	}

	def, err := s.ranked(ctx, []int64{q.Scope.Country.ID()}, t, domrank.TierDefault, q.Anchor)
	if err != nil {
		return domrank.Merged{Type: t}, fmt.Errorf("default %s: %w", t, err)
	}
	return Merge(t, specific, tagRelated, def, limit), nil
}

func (s *Service) specific(ctx context.Context, anchor *content.Key, t content.Type, limit int) ([]int64, error) {
	if anchor == nil {
		return nil, nil
	}
	ids, err := s.relations.Related(ctx, *anchor, t, limit)
	if err != nil {
		return nil, fmt.Errorf("specific %s: %w", t, err)
	}
	return withoutAnchor(ids, anchor, t), nil
}

func (s *Service) ranked(
	ctx context.Context, tagIDs []int64, t content.Type, tier domrank.Tier, anchor *content.Key,
) ([]domrank.Scored, error) {
	if len(tagIDs) == 0 {
		return nil, nil
	}
	assocs, err := s.assocs.ByContentTags(ctx, tagIDs, []content.Type{t}, s.fetchLimit)
	if err != nil {
		return nil, err //nolint:wrapcheck // wrapped by caller with tier context
	}
	scored := ranking.Rank(assocs, tagIDs, tier)
	if anchor == nil || anchor.Type != t {
		return scored, nil
	}
	out := scored[:0]
	for _, sc := range scored {
		if sc.ContentID != anchor.ID {
			out = append(out, sc)
		}
	}
	return out, nil
}

// inCountry drops tag-related items with no association to the country tag.
func (s *Service) inCountry(
	ctx context.Context, scored []domrank.Scored, t content.Type, countryID int64,
) ([]domrank.Scored, error) {
	if len(scored) == 0 {
		return scored, nil
	}
	ids := make([]int64, len(scored))
	for i, sc := range scored {
		ids[i] = sc.ContentID
	}
	kept, err := s.assocs.WithTag(ctx, t, countryID, ids)
	if err != nil {
		return nil, err //nolint:wrapcheck // wrapped by caller with tier context
	}
	inside := make(map[int64]struct{}, len(kept))
	for _, id := range kept {
		inside[id] = struct{}{}
	}
	out := scored[:0]
	for _, sc := range scored {
		if _, ok := inside[sc.ContentID]; ok {
			out = append(out, sc)
		}
	}
	return out, nil
}

func withoutAnchor(ids []int64, anchor *content.Key, t content.Type) []int64 {
	if anchor.Type != t {
		return ids
	}
	out := ids[:0]
	for _, id := range ids {
		if id != anchor.ID {
			out = append(out, id)
		}
	}
	return out
}
