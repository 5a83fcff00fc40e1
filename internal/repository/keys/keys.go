// Package keys builds the storage key layout shared by all repositories.
package keys

import (
	"strconv"

	"github.com/kailas-cloud/tagdex/internal/domain/content"
)

// DefaultPrefix is used when no prefix is configured.
const DefaultPrefix = "tagdex:"

// Space renders keys under a common prefix.
type Space struct {
	prefix string
}

// New creates a key space. An empty prefix falls back to DefaultPrefix.
func New(prefix string) Space {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return Space{prefix: prefix}
}

// Prefix returns the configured prefix.
func (s Space) Prefix() string { return s.prefix }

// Tag is the hash holding a tag record.
func (s Space) Tag(id int64) string {
	return s.prefix + "tag:" + itoa(id)
}

// TagSlug maps a localized slug to a tag id.
func (s Space) TagSlug(locale, slug string) string {
	return s.prefix + "tag_slug:" + locale + ":" + slug
}

// DefaultTagSlug maps a default slug to a tag id.
func (s Space) DefaultTagSlug(slug string) string {
	return s.prefix + "tag_slug:" + slug
}

// Assoc is the sorted set of content ids of type t carrying tagID, scored by weight.
func (s Space) Assoc(t content.Type, tagID int64) string {
	return s.prefix + "assoc:" + string(t) + ":" + itoa(tagID)
}

// Listing is the set of primary listing ids carrying tagID.
func (s Space) Listing(tagID int64) string {
	return s.prefix + "listing:" + itoa(tagID)
}

// Content is the hash holding a content record.
func (s Space) Content(k content.Key) string {
	return s.prefix + "content:" + string(k.Type) + ":" + itoa(k.ID)
}

// Related is the curated list of target-typed items related to anchor.
func (s Space) Related(anchor content.Key, target content.Type) string {
	return s.prefix + "related:" + string(anchor.Type) + ":" + itoa(anchor.ID) + ":" + string(target)
}

// CarouselGroups holds the JSON array of carousel group definitions.
func (s Space) CarouselGroups() string {
	return s.prefix + "carousel_groups"
}

// POI is the geo set of points of interest for a country.
func (s Space) POI(countryTagID int64) string {
	return s.prefix + "poi:" + itoa(countryTagID)
}

func itoa(v int64) string { return strconv.FormatInt(v, 10) }

// ParseIDs converts stored members into ids, skipping anything that is not a positive integer.
func ParseIDs(members []string) []int64 {
	out := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil || id <= 0 {
			continue
		}
		out = append(out, id)
	}
	return out
}

// FormatIDs converts ids into stored members.
func FormatIDs(ids []int64) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = itoa(id)
	}
	return out
}
