package progressive

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/kailas-cloud/tagdex/internal/domain"
	"github.com/kailas-cloud/tagdex/internal/logger"
)

// Intersect returns the listing ids associated with every tag in tagIDs,
// ascending. The precomputed set intersection is tried first; when the store
// cannot serve it, listings are counted per tag and kept only when their
// count equals the number of distinct tags.
func (s *Service) Intersect(ctx context.Context, tagIDs []int64) ([]int64, error) {
	tagIDs = distinct(tagIDs)
	if len(tagIDs) == 0 {
		return nil, nil
	}

	ids, err := s.index.IntersectListings(ctx, tagIDs)
	if err == nil {
		return ids, nil
	}
	if !errors.Is(err, domain.ErrIntersectionUnsupported) {
		return nil, fmt.Errorf("intersect: %w", err)
	}

	logger.FromContext(ctx).Debug("Set intersection unavailable, counting associations",
		zap.Int("tags", len(tagIDs)), zap.Error(err))
	s.obs.IntersectionFallback()

	counts := make(map[int64]int)
	for _, tagID := range tagIDs {
		listings, err := s.index.ListingsByTag(ctx, tagID)
		if err != nil {
			return nil, fmt.Errorf("count listings: %w", err)
		}
		for _, id := range distinct(listings) {
			counts[id]++
		}
	}

	out := make([]int64, 0, len(counts))
	for id, n := range counts {
		if n == len(tagIDs) {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return out, nil
}

func distinct(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
