package resolve

import (
	"context"

	"github.com/kailas-cloud/tagdex/internal/domain/tag"
)

// Catalog is the read-only tag catalog.
type Catalog interface {
	BySlugs(ctx context.Context, slugs []string, locale string) ([]tag.Tag, error)
	ByIDs(ctx context.Context, ids []int64) ([]tag.Tag, error)
}
