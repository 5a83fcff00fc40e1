package cascade

import (
	"context"

	domassoc "github.com/kailas-cloud/tagdex/internal/domain/association"
	"github.com/kailas-cloud/tagdex/internal/domain/content"
)

// AssociationReader reads weighted tag associations (OR semantics).
type AssociationReader interface {
	ByContentTags(
		ctx context.Context, tagIDs []int64, types []content.Type, limitPerType int,
	) ([]domassoc.Association, error)
	// WithTag keeps the ids of type t associated with tagID, in input order.
	WithTag(ctx context.Context, t content.Type, tagID int64, ids []int64) ([]int64, error)
}

// RelationReader reads curated item-to-item relations.
type RelationReader interface {
	Related(ctx context.Context, anchor content.Key, target content.Type, limit int) ([]int64, error)
}
