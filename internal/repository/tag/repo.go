package tag

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	domtag "github.com/kailas-cloud/tagdex/internal/domain/tag"
	"github.com/kailas-cloud/tagdex/internal/logger"
	"github.com/kailas-cloud/tagdex/internal/repository/keys"
)

const localizedSlugField = "slug:"

// store is the consumer interface for the tag catalog (ISP).
type store interface {
	GetMulti(ctx context.Context, keys []string) ([][]byte, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
}

// Repo is the read-only tag catalog accessor.
type Repo struct {
	store store
	keys  keys.Space
}

// New creates a tag repository.
func New(s store, k keys.Space) *Repo {
	return &Repo{store: s, keys: k}
}

// BySlugs resolves slugs for a locale. The localized slug index is consulted
// first, then the default slug index. Slugs found in neither are dropped;
// the result keeps input order without repeats.
func (r *Repo) BySlugs(ctx context.Context, slugs []string, locale string) ([]domtag.Tag, error) {
	if len(slugs) == 0 {
		return nil, nil
	}

	ids := make([]int64, len(slugs))

	if locale != "" {
		localized := make([]string, len(slugs))
		for i, s := range slugs {
			localized[i] = r.keys.TagSlug(locale, s)
		}
		vals, err := r.store.GetMulti(ctx, localized)
		if err != nil {
			return nil, fmt.Errorf("lookup localized slugs: %w", err)
		}
		fillIDs(ids, vals)
	}

	var pending []int
	for i, id := range ids {
		if id == 0 {
			pending = append(pending, i)
		}
	}
	if len(pending) > 0 {
		defaults := make([]string, len(pending))
		for j, i := range pending {
			defaults[j] = r.keys.DefaultTagSlug(slugs[i])
		}
		vals, err := r.store.GetMulti(ctx, defaults)
		if err != nil {
			return nil, fmt.Errorf("lookup default slugs: %w", err)
		}
		for j, i := range pending {
			if j < len(vals) {
				ids[i] = parseID(vals[j])
			}
		}
	}

	resolved := make([]int64, 0, len(ids))
	for i, id := range ids {
		if id == 0 {
			logger.FromContext(ctx).Debug("Dropping unresolved slug",
				zap.String("slug", slugs[i]), zap.String("locale", locale))
			continue
		}
		resolved = append(resolved, id)
	}

	return r.ByIDs(ctx, resolved)
}

// ByIDs loads tags by id in input order. Missing or malformed records are skipped.
func (r *Repo) ByIDs(ctx context.Context, ids []int64) ([]domtag.Tag, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil, nil
	}

	hashKeys := make([]string, len(ids))
	for i, id := range ids {
		hashKeys[i] = r.keys.Tag(id)
	}

	hashes, err := r.store.HGetAllMulti(ctx, hashKeys)
	if err != nil {
		return nil, fmt.Errorf("load tags: %w", err)
	}

	tags := make([]domtag.Tag, 0, len(ids))
	for i, h := range hashes {
		if len(h) == 0 {
			continue
		}
		t, err := tagFromHash(ids[i], h)
		if err != nil {
			logger.FromContext(ctx).Warn("Skipping malformed tag record",
				zap.Int64("tag_id", ids[i]), zap.Error(err))
			continue
		}
		tags = append(tags, t)
	}
	return tags, nil
}

// tagFromHash parses a stored tag hash.
func tagFromHash(id int64, h map[string]string) (domtag.Tag, error) {
	c, err := domtag.ParseCategory(h["category"])
	if err != nil {
		return domtag.Tag{}, err
	}

	weight := 1.0
	if w, ok := h["weight"]; ok && w != "" {
		weight, err = strconv.ParseFloat(w, 64)
		if err != nil {
			return domtag.Tag{}, fmt.Errorf("parse weight: %w", err)
		}
	}

	localized := make(map[string]string)
	for k, v := range h {
		if locale, ok := strings.CutPrefix(k, localizedSlugField); ok && locale != "" {
			localized[locale] = v
		}
	}

	return domtag.New(id, c, h["slug"], localized, weight)
}

func fillIDs(ids []int64, vals [][]byte) {
	for i := range ids {
		if i < len(vals) {
			ids[i] = parseID(vals[i])
		}
	}
}

func parseID(b []byte) int64 {
	if len(b) == 0 {
		return 0
	}
	id, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id <= 0 {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
