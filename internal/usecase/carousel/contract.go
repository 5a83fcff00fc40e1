package carousel

import (
	"context"

	domcarousel "github.com/kailas-cloud/tagdex/internal/domain/carousel"
	"github.com/kailas-cloud/tagdex/internal/domain/tag"
	"github.com/kailas-cloud/tagdex/internal/usecase/progressive"
)

// GroupReader reads active carousel definitions.
type GroupReader interface {
	Active(ctx context.Context) ([]domcarousel.Group, error)
}

// TagReader loads tags by id.
type TagReader interface {
	ByIDs(ctx context.Context, ids []int64) ([]tag.Tag, error)
}

// Searcher runs a progressive listing search.
type Searcher interface {
	SearchWithFallback(ctx context.Context, q progressive.Query) (progressive.Result, error)
}

// Observer counts groups that failed and were omitted.
type Observer interface {
	BranchFailed(branch string)
}

type nopObserver struct{}

func (nopObserver) BranchFailed(string) {}
