package association

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/kailas-cloud/tagdex/internal/db"
	"github.com/kailas-cloud/tagdex/internal/domain"
	domassoc "github.com/kailas-cloud/tagdex/internal/domain/association"
	"github.com/kailas-cloud/tagdex/internal/domain/content"
	"github.com/kailas-cloud/tagdex/internal/repository/keys"
)

// store is the consumer interface for tag associations (ISP).
type store interface {
	SInter(ctx context.Context, keys []string) ([]string, error)
	SMembers(ctx context.Context, key string) ([]string, error)
	ZRevRangeWithScores(ctx context.Context, key string, limit int) ([]db.ZMember, error)
	ZMScore(ctx context.Context, key string, members []string) ([]float64, []bool, error)
}

// Repo reads weighted tag associations and listing intersections.
type Repo struct {
	store        store
	keys         keys.Space
	intersection bool
}

// New creates an association repository. Set intersection is enabled by default.
func New(s store, k keys.Space) *Repo {
	return &Repo{store: s, keys: k, intersection: true}
}

// WithSetIntersection toggles the precomputed SINTER path.
func (r *Repo) WithSetIntersection(enabled bool) *Repo {
	r.intersection = enabled
	return r
}

// ByContentTags returns associations of the given content types to any of tagIDs,
// at most limitPerType per (tag, type) edge list, heaviest first. Output order is
// type order, then tag order, then weight descending.
func (r *Repo) ByContentTags(
	ctx context.Context, tagIDs []int64, types []content.Type, limitPerType int,
) ([]domassoc.Association, error) {
	var out []domassoc.Association
	for _, ct := range types {
		for _, tagID := range tagIDs {
			members, err := r.store.ZRevRangeWithScores(ctx, r.keys.Assoc(ct, tagID), limitPerType)
			if err != nil {
				return nil, fmt.Errorf("associations %s/%d: %w", ct, tagID, err)
			}
			for _, m := range members {
				ids := keys.ParseIDs([]string{m.Member})
				if len(ids) == 0 {
					continue
				}
				out = append(out, domassoc.Association{
					ContentID:   ids[0],
					ContentType: ct,
					TagID:       tagID,
					Weight:      m.Score,
				})
			}
		}
	}
	return out, nil
}

// IntersectListings returns primary listing ids carrying every tag, ascending.
// Returns domain.ErrIntersectionUnsupported when the precomputed path is disabled
// or rejected by the server.
func (r *Repo) IntersectListings(ctx context.Context, tagIDs []int64) ([]int64, error) {
	if !r.intersection {
		return nil, domain.ErrIntersectionUnsupported
	}
	if len(tagIDs) == 0 {
		return nil, nil
	}

	setKeys := make([]string, len(tagIDs))
	for i, id := range tagIDs {
		setKeys[i] = r.keys.Listing(id)
	}

	members, err := r.store.SInter(ctx, setKeys)
	if err != nil {
		if errors.Is(err, db.ErrUnsupported) {
			return nil, fmt.Errorf("%w: %w", domain.ErrIntersectionUnsupported, err)
		}
		return nil, fmt.Errorf("intersect listings: %w", err)
	}

	ids := keys.ParseIDs(members)
	slices.Sort(ids)
	return ids, nil
}

// ListingsByTag returns every primary listing id in the listing set of tagID.
// Used by the counting fallback when intersection is unavailable, so both
// paths read the same sets.
func (r *Repo) ListingsByTag(ctx context.Context, tagID int64) ([]int64, error) {
	members, err := r.store.SMembers(ctx, r.keys.Listing(tagID))
	if err != nil {
		return nil, fmt.Errorf("listings for tag %d: %w", tagID, err)
	}
	return keys.ParseIDs(members), nil
}

// WithTag keeps the ids of type t that have an association to tagID, in input order.
func (r *Repo) WithTag(ctx context.Context, t content.Type, tagID int64, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	_, found, err := r.store.ZMScore(ctx, r.keys.Assoc(t, tagID), keys.FormatIDs(ids))
	if err != nil {
		return nil, fmt.Errorf("associations %s/%d: %w", t, tagID, err)
	}
	out := make([]int64, 0, len(ids))
	for i, id := range ids {
		if i < len(found) && found[i] {
			out = append(out, id)
		}
	}
	return out, nil
}

// ListingWeights returns the associations between listingIDs and tagIDs.
// Pairs with no stored edge are omitted.
func (r *Repo) ListingWeights(
	ctx context.Context, tagIDs, listingIDs []int64,
) ([]domassoc.Association, error) {
	if len(listingIDs) == 0 {
		return nil, nil
	}
	members := keys.FormatIDs(listingIDs)

	var out []domassoc.Association
	for _, tagID := range tagIDs {
		scores, found, err := r.store.ZMScore(ctx, r.keys.Assoc(content.Property, tagID), members)
		if err != nil {
			return nil, fmt.Errorf("listing weights for tag %d: %w", tagID, err)
		}
		for i := range listingIDs {
			if i >= len(found) || !found[i] {
				continue
			}
			out = append(out, domassoc.Association{
				ContentID:   listingIDs[i],
				ContentType: content.Property,
				TagID:       tagID,
				Weight:      scores[i],
			})
		}
	}
	return out, nil
}
