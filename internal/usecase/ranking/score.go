// Package ranking implements the weighted relevance score and the
// deterministic ordering used for every ranked list.
package ranking

import (
	"cmp"
	"slices"

	domassoc "github.com/kailas-cloud/tagdex/internal/domain/association"
	"github.com/kailas-cloud/tagdex/internal/domain/content"
	domrank "github.com/kailas-cloud/tagdex/internal/domain/ranking"
)

// Score computes the relevance of one content item from its associations.
// Only associations to requested tags count. Repeated edges to the same tag
// are collapsed to the heaviest one before summing, so MatchedTags never
// exceeds the number of requested tags.
func Score(assocs []domassoc.Association, requestedTagIDs []int64) domrank.Scored {
	var s domrank.Scored
	if len(assocs) == 0 {
		return s
	}
	s.ContentID = assocs[0].ContentID
	s.ContentType = assocs[0].ContentType

	requested := make(map[int64]struct{}, len(requestedTagIDs))
	for _, id := range requestedTagIDs {
		requested[id] = struct{}{}
	}

	best := make(map[int64]float64, len(assocs))
	for _, a := range assocs {
		if _, ok := requested[a.TagID]; !ok {
			continue
		}
		if w, seen := best[a.TagID]; !seen || a.Weight > w {
			best[a.TagID] = a.Weight
		}
	}
	for _, w := range best {
		s.TotalWeight += w
	}
	s.MatchedTags = len(best)
	return s
}

// Rank groups associations per content item, scores each item, tags it with
// tier and returns the items ordered by Compare. Items matching no requested
// tag are dropped. DiscoveryPos is the position at which an item first appears
// in assocs.
func Rank(assocs []domassoc.Association, requestedTagIDs []int64, tier domrank.Tier) []domrank.Scored {
	groups := make(map[content.Key][]domassoc.Association)
	var order []content.Key
	for _, a := range assocs {
		k := a.Key()
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], a)
	}

	out := make([]domrank.Scored, 0, len(order))
	for pos, k := range order {
		s := Score(groups[k], requestedTagIDs)
		if s.MatchedTags == 0 {
			continue
		}
		s.Tier = tier
		s.DiscoveryPos = pos
		out = append(out, s)
	}
	Sort(out)
	return out
}

// Compare is the tie-break order for scored results: total weight descending,
// matched tag count descending, discovery position ascending, then content id
// ascending.
func Compare(a, b domrank.Scored) int {
	if c := cmp.Compare(b.TotalWeight, a.TotalWeight); c != 0 {
		return c
	}
	if c := cmp.Compare(b.MatchedTags, a.MatchedTags); c != 0 {
		return c
	}
	if c := cmp.Compare(a.DiscoveryPos, b.DiscoveryPos); c != 0 {
		return c
	}
	if c := cmp.Compare(a.ContentID, b.ContentID); c != 0 {
		return c
	}
	return cmp.Compare(a.ContentType, b.ContentType)
}

// Sort orders scored results in place by Compare.
func Sort(scored []domrank.Scored) {
	slices.SortFunc(scored, Compare)
}
