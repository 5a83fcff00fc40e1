package aggregate

import (
	"context"

	"github.com/kailas-cloud/tagdex/internal/domain/content"
	"github.com/kailas-cloud/tagdex/internal/domain/poi"
	domrank "github.com/kailas-cloud/tagdex/internal/domain/ranking"
	"github.com/kailas-cloud/tagdex/internal/domain/tag"
	"github.com/kailas-cloud/tagdex/internal/usecase/carousel"
	"github.com/kailas-cloud/tagdex/internal/usecase/cascade"
	"github.com/kailas-cloud/tagdex/internal/usecase/progressive"
)

// Resolver maps path segments to tags and loads the country scope.
type Resolver interface {
	Resolve(ctx context.Context, rawSlugs []string, locale string) ([]tag.Tag, error)
	Country(ctx context.Context, id int64) (tag.Tag, bool, error)
}

// ListingSearcher runs the primary progressive listing search.
type ListingSearcher interface {
	SearchWithFallback(ctx context.Context, q progressive.Query) (progressive.Result, error)
}

// RelatedMerger builds one related-content list.
type RelatedMerger interface {
	MergeType(ctx context.Context, q cascade.Query, t content.Type) (domrank.Merged, error)
}

// CarouselGenerator fills thematic carousels.
type CarouselGenerator interface {
	Generate(ctx context.Context, q carousel.Query) ([]carousel.Carousel, error)
}

// ContentReader hydrates content ids into records.
type ContentReader interface {
	Details(ctx context.Context, t content.Type, ids []int64) ([]content.Record, error)
}

// Enricher looks up nearby points of interest.
type Enricher interface {
	Nearby(ctx context.Context, countryTagID int64, rec content.Record) ([]poi.POI, error)
}

// Observer counts optional branches degraded to empty output.
type Observer interface {
	BranchFailed(branch string)
}

type nopObserver struct{}

func (nopObserver) BranchFailed(string) {}
