package content

import (
	"context"
	"fmt"

	domcontent "github.com/kailas-cloud/tagdex/internal/domain/content"
	"github.com/kailas-cloud/tagdex/internal/repository/keys"
)

// store is the consumer interface for content records (ISP).
type store interface {
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	LRange(ctx context.Context, key string, limit int) ([]string, error)
}

// Repo hydrates content records and reads curated relations.
type Repo struct {
	store store
	keys  keys.Space
}

// New creates a content repository.
func New(s store, k keys.Space) *Repo {
	return &Repo{store: s, keys: k}
}

// Details hydrates ids of type t in input order. Ids without a record are omitted.
func (r *Repo) Details(ctx context.Context, t domcontent.Type, ids []int64) ([]domcontent.Record, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	hashKeys := make([]string, len(ids))
	for i, id := range ids {
		hashKeys[i] = r.keys.Content(domcontent.Key{Type: t, ID: id})
	}

	hashes, err := r.store.HGetAllMulti(ctx, hashKeys)
	if err != nil {
		return nil, fmt.Errorf("hydrate %s: %w", t, err)
	}

	out := make([]domcontent.Record, 0, len(ids))
	for i, h := range hashes {
		if len(h) == 0 {
			continue
		}
		out = append(out, domcontent.Record{Key: domcontent.Key{Type: t, ID: ids[i]}, Fields: h})
	}
	return out, nil
}

// Related returns the curated ids of type target related to anchor, in curated order.
func (r *Repo) Related(
	ctx context.Context, anchor domcontent.Key, target domcontent.Type, limit int,
) ([]int64, error) {
	members, err := r.store.LRange(ctx, r.keys.Related(anchor, target), limit)
	if err != nil {
		return nil, fmt.Errorf("related %s -> %s: %w", anchor, target, err)
	}
	return keys.ParseIDs(members), nil
}
