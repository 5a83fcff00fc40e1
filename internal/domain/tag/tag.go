package tag

import (
	"fmt"
	"slices"
)

// Tag is a typed, categorized filter atom. Immutable after construction.
type Tag struct {
	id            int64
	category      Category
	slug          string
	localized     map[string]string
	defaultWeight float64
}

// New validates and creates a Tag.
// localized maps a locale (e.g. "es", "en") to the slug used in that locale.
func New(id int64, c Category, slug string, localized map[string]string, weight float64) (Tag, error) {
	if id <= 0 {
		return Tag{}, fmt.Errorf("tag id must be positive, got %d", id)
	}
	if !c.IsValid() {
		return Tag{}, fmt.Errorf("tag %d: invalid category", id)
	}
	if slug == "" {
		return Tag{}, fmt.Errorf("tag %d: slug is required", id)
	}
	if weight < 0 {
		return Tag{}, fmt.Errorf("tag %d: weight must be non-negative", id)
	}
	return Reconstruct(id, c, slug, localized, weight), nil
}

// Reconstruct creates a Tag without validation (storage hydration).
func Reconstruct(id int64, c Category, slug string, localized map[string]string, weight float64) Tag {
	var loc map[string]string
	if len(localized) > 0 {
		loc = make(map[string]string, len(localized))
		for k, v := range localized {
			loc[k] = v
		}
	}
	return Tag{id: id, category: c, slug: slug, localized: loc, defaultWeight: weight}
}

// ID returns the stable tag identifier.
func (t Tag) ID() int64 { return t.id }

// Category returns the tag category.
func (t Tag) Category() Category { return t.category }

// Slug returns the default (locale-independent) slug.
func (t Tag) Slug() string { return t.slug }

// DefaultWeight returns the catalog weight of the tag.
func (t Tag) DefaultWeight() float64 { return t.defaultWeight }

// SlugFor returns the slug for locale, falling back to the default slug.
func (t Tag) SlugFor(locale string) string {
	if s, ok := t.localized[locale]; ok && s != "" {
		return s
	}
	return t.slug
}

// Locales returns the locales with a dedicated slug, sorted.
func (t Tag) Locales() []string {
	out := make([]string, 0, len(t.localized))
	for k := range t.localized {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// IDs returns the ids of tags in order.
func IDs(tags []Tag) []int64 {
	out := make([]int64, len(tags))
	for i, t := range tags {
		out[i] = t.id
	}
	return out
}

// HasCategory reports whether any tag in tags has category c.
func HasCategory(tags []Tag, c Category) bool {
	return slices.ContainsFunc(tags, func(t Tag) bool { return t.category == c })
}

// Dedup removes repeated tag ids, keeping the first occurrence.
func Dedup(tags []Tag) []Tag {
	seen := make(map[int64]struct{}, len(tags))
	out := make([]Tag, 0, len(tags))
	for _, t := range tags {
		if _, ok := seen[t.id]; ok {
			continue
		}
		seen[t.id] = struct{}{}
		out = append(out, t)
	}
	return out
}

// SortByHierarchy returns a copy of tags ordered operation, category, city,
// sector, then everything else in input order.
func SortByHierarchy(tags []Tag) []Tag {
	out := slices.Clone(tags)
	slices.SortStableFunc(out, func(a, b Tag) int {
		return a.category.HierarchyRank() - b.category.HierarchyRank()
	})
	return out
}
