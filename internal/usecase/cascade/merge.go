package cascade

import (
	"github.com/kailas-cloud/tagdex/internal/domain/content"
	domrank "github.com/kailas-cloud/tagdex/internal/domain/ranking"
)

// Merge builds the capped, deduplicated list for content type t.
// Specific items come first in their given order, then tag-related items,
// then default items, each skipping anything already taken. A tier never
// displaces items of a stronger tier regardless of weight.
func Merge(
	t content.Type, specific []int64, tagRelated, def []domrank.Scored, limit int,
) domrank.Merged {
	m := domrank.Merged{Type: t}
	if limit <= 0 {
		m.Source = domrank.SourceOf(m.Counts)
		return m
	}

	seen := make(map[content.Key]struct{}, limit)
	take := func(it domrank.Item) bool {
		if len(m.Items) >= limit {
			return false
		}
		if _, dup := seen[it.Key]; dup {
			return false
		}
		seen[it.Key] = struct{}{}
		m.Items = append(m.Items, it)
		return true
	}

	for _, id := range specific {
		if take(domrank.Item{Key: content.Key{Type: t, ID: id}, Tier: domrank.TierSpecific}) {
			m.Counts.Specific++
		}
	}
	for _, s := range tagRelated {
		if take(scoredItem(s, domrank.TierTagRelated)) {
			m.Counts.TagRelated++
		}
	}
	for _, s := range def {
		if take(scoredItem(s, domrank.TierDefault)) {
			m.Counts.Default++
		}
	}

	m.Source = domrank.SourceOf(m.Counts)
	return m
}

func scoredItem(s domrank.Scored, tier domrank.Tier) domrank.Item {
	return domrank.Item{
		Key:         s.Key(),
		Tier:        tier,
		TotalWeight: s.TotalWeight,
		MatchedTags: s.MatchedTags,
	}
}
