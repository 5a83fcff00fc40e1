package progressive

import (
	"context"

	domassoc "github.com/kailas-cloud/tagdex/internal/domain/association"
	"github.com/kailas-cloud/tagdex/internal/domain/fallback"
)

// ListingIndex reads primary listings by tag (AND semantics).
type ListingIndex interface {
	IntersectListings(ctx context.Context, tagIDs []int64) ([]int64, error)
	ListingsByTag(ctx context.Context, tagID int64) ([]int64, error)
	ListingWeights(ctx context.Context, tagIDs, listingIDs []int64) ([]domassoc.Association, error)
}

// Observer receives search outcomes for metrics.
type Observer interface {
	FallbackLevel(scope string, level fallback.Achieved)
	IntersectionFallback()
}

type nopObserver struct{}

func (nopObserver) FallbackLevel(string, fallback.Achieved) {}
func (nopObserver) IntersectionFallback()                   {}
