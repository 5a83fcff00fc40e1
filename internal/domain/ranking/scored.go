package ranking

import (
	"fmt"

	"github.com/kailas-cloud/tagdex/internal/domain/content"
)

// Tier is the provenance of an item inside the fallback cascade.
type Tier string

// Priority tiers, strongest first.
const (
	TierSpecific   Tier = "specific"
	TierTagRelated Tier = "tag_related"
	TierDefault    Tier = "default"
)

// Rank returns the tier precedence (0 is strongest).
func (t Tier) Rank() int {
	switch t {
	case TierSpecific:
		return 0
	case TierTagRelated:
		return 1
	case TierDefault:
		return 2
	}
	return 3
}

// Scored is the relevance of one content item against a requested tag set.
type Scored struct {
	ContentID    int64
	ContentType  content.Type
	TotalWeight  float64
	MatchedTags  int
	Tier         Tier
	DiscoveryPos int // order in which the item was first seen; stable tie-break
}

// Key returns the identity of the scored item.
func (s Scored) Key() content.Key {
	return content.Key{Type: s.ContentType, ID: s.ContentID}
}

// Validate checks the matched-count invariant against the requested tag count.
func (s Scored) Validate(requested int) error {
	if s.MatchedTags > requested {
		return fmt.Errorf("%s: matched %d tags, only %d requested", s.Key(), s.MatchedTags, requested)
	}
	return nil
}

// Counts records how many items each tier contributed to a merged list.
type Counts struct {
	Specific   int `json:"specific"`
	TagRelated int `json:"tag_related"`
	Default    int `json:"default"`
}

// Total returns the number of merged items.
func (c Counts) Total() int { return c.Specific + c.TagRelated + c.Default }

// Source labels which tiers contributed to a merged list.
type Source string

// Source labels.
const (
	SourceAll             Source = "specific_and_tag_related_and_general"
	SourceSpecificGeneral Source = "specific_and_general"
	SourceTagGeneral      Source = "tag_related_and_general"
	SourceGeneralOnly     Source = "general_only"
)

// SourceOf derives the content source label from the tiers with a non-zero count.
func SourceOf(c Counts) Source {
	switch {
	case c.Specific > 0 && c.TagRelated > 0 && c.Default > 0:
		return SourceAll
	case c.Specific > 0 && c.TagRelated == 0 && c.Default > 0:
		return SourceSpecificGeneral
	case c.Specific == 0 && c.TagRelated > 0 && c.Default > 0:
		return SourceTagGeneral
	default:
		return SourceGeneralOnly
	}
}

// Item is one entry in a merged per-type list.
type Item struct {
	Key         content.Key
	Tier        Tier
	TotalWeight float64
	MatchedTags int
}

// Merged is the capped, deduplicated output of the cascade for one content type.
type Merged struct {
	Type   content.Type
	Items  []Item
	Counts Counts
	Source Source
}
