package progressive

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"

	domassoc "github.com/kailas-cloud/tagdex/internal/domain/association"
	"github.com/kailas-cloud/tagdex/internal/domain/content"
	"github.com/kailas-cloud/tagdex/internal/domain/fallback"
	domrank "github.com/kailas-cloud/tagdex/internal/domain/ranking"
	"github.com/kailas-cloud/tagdex/internal/domain/tag"
	"github.com/kailas-cloud/tagdex/internal/logger"
	"github.com/kailas-cloud/tagdex/internal/usecase/ranking"
	"github.com/kailas-cloud/tagdex/internal/usecase/resolve"
)

// Query describes one progressive listing search.
type Query struct {
	Scope      resolve.Scope // degradable request tags plus country scope
	Pinned     []tag.Tag     // tags kept at every level (carousel themes)
	MinResults int
	Offset     int
	Limit      int    // 0 returns every ranked listing from Offset
	Label      string // metrics scope, e.g. "listing" or "carousel"
}

// Result is the outcome of a progressive search.
type Result struct {
	Items []domrank.Scored // ranked page
	Total int              // listings matched at the reported level
	Level fallback.Achieved
	Tags  []tag.Tag // tags searched at the reported level, country included
}

// Service runs strict listing searches, relaxing the tag set when too few
// listings match.
type Service struct {
	index ListingIndex
	obs   Observer
}

// New creates a progressive search service. obs can be nil.
func New(index ListingIndex, obs Observer) *Service {
	if obs == nil {
		obs = nopObserver{}
	}
	return &Service{index: index, obs: obs}
}

// SearchWithFallback tries each degradation level in order and accepts the
// first whose match count reaches q.MinResults. Country scoping is re-applied
// at every level. A level whose tag set equals one already tried is skipped.
// When no level qualifies, the listings of the broadest level are returned
// with Level set to fallback.NoResults. Insufficient results are never an error.
func (s *Service) SearchWithFallback(ctx context.Context, q Query) (Result, error) {
	log := logger.FromContext(ctx)

	var (
		last    Result
		lastIDs []int64
		tried   = make(map[string]struct{})
	)
	for _, lvl := range fallback.Levels() {
		tags := levelTags(lvl, q)
		key := setKey(tags)
		if _, ok := tried[key]; ok {
			continue
		}
		tried[key] = struct{}{}

		ids, err := s.Intersect(ctx, tag.IDs(tags))
		if err != nil {
			return Result{}, fmt.Errorf("level %s: %w", lvl.Name, err)
		}
		last, lastIDs = Result{Total: len(ids), Tags: tags}, ids

		if len(ids) >= q.MinResults {
			last.Level = fallback.Achieved(lvl.Index)
			break
		}
		log.Debug("Degrading search",
			zap.String("scope", q.Label), zap.String("level", lvl.Name),
			zap.Int("found", len(ids)), zap.Int("min_results", q.MinResults))
		last.Level = fallback.NoResults
	}

	items, err := s.rank(ctx, tag.IDs(last.Tags), lastIDs)
	if err != nil {
		return Result{}, err
	}
	last.Items = page(items, q.Offset, q.Limit)
	s.obs.FallbackLevel(q.Label, last.Level)
	return last, nil
}

// levelTags returns the tags searched at lvl: surviving request tags, then
// pinned tags, with the country injected.
func levelTags(lvl fallback.Level, q Query) []tag.Tag {
	tags := lvl.Apply(q.Scope.Tags)
	tags = tag.Dedup(append(tags, q.Pinned...))
	if q.Scope.HasCountry {
		tags = resolve.Inject(tags, q.Scope.Country)
	}
	return tags
}

// rank orders intersected listings by their association weights for tagIDs.
// Discovery order is ascending id.
func (s *Service) rank(ctx context.Context, tagIDs, ids []int64) ([]domrank.Scored, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	assocs, err := s.index.ListingWeights(ctx, tagIDs, ids)
	if err != nil {
		return nil, fmt.Errorf("rank listings: %w", err)
	}

	byID := make(map[int64][]domassoc.Association, len(ids))
	for _, a := range assocs {
		byID[a.ContentID] = append(byID[a.ContentID], a)
	}

	out := make([]domrank.Scored, len(ids))
	for i, id := range ids {
		sc := ranking.Score(byID[id], tagIDs)
		sc.ContentID = id
		sc.ContentType = content.Property
		sc.DiscoveryPos = i
		out[i] = sc
	}
	ranking.Sort(out)
	return out, nil
}

func page(items []domrank.Scored, offset, limit int) []domrank.Scored {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

func setKey(tags []tag.Tag) string {
	ids := tag.IDs(tags)
	slices.Sort(ids)
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}
