package fallback

import (
	"encoding/json"
	"strconv"

	"github.com/kailas-cloud/tagdex/internal/domain/tag"
)

// Level is a named degradation step of the progressive search.
// Exclusions grow monotonically with Index.
type Level struct {
	Index    int
	Name     string
	excluded map[tag.Category]struct{}
}

// NoResults is the index reported when no level met the threshold.
const NoResults = -1

// NoResultsName is the label reported alongside NoResults.
const NoResultsName = "no_results"

func newLevel(index int, name string, excluded ...tag.Category) Level {
	m := make(map[tag.Category]struct{}, len(excluded))
	for _, c := range excluded {
		m[c] = struct{}{}
	}
	return Level{Index: index, Name: name, excluded: m}
}

// Levels returns the degradation sequence in the order it must be tried.
//
//	0 exact:          full tag set
//	1 without_sector: drop sector
//	2 without_city:   drop sector and city
//	3 base_only:      keep only operation and category
func Levels() []Level {
	others := make([]tag.Category, 0, len(tag.Categories()))
	for _, c := range tag.Categories() {
		if c != tag.Operation && c != tag.PropertyType && c != tag.Country {
			others = append(others, c)
		}
	}
	return []Level{
		newLevel(0, "exact"),
		newLevel(1, "without_sector", tag.Sector),
		newLevel(2, "without_city", tag.Sector, tag.City),
		newLevel(3, "base_only", others...),
	}
}

// Excludes reports whether the level drops tags of category c.
// Country tags are never excluded; scoping is re-applied at every level.
func (l Level) Excludes(c tag.Category) bool {
	_, ok := l.excluded[c]
	return ok
}

// Excluded returns the excluded categories in declaration order.
func (l Level) Excluded() []tag.Category {
	out := make([]tag.Category, 0, len(l.excluded))
	for _, c := range tag.Categories() {
		if l.Excludes(c) {
			out = append(out, c)
		}
	}
	return out
}

// Apply returns the tags kept at this level, preserving order.
func (l Level) Apply(tags []tag.Tag) []tag.Tag {
	out := make([]tag.Tag, 0, len(tags))
	for _, t := range tags {
		if !l.Excludes(t.Category()) {
			out = append(out, t)
		}
	}
	return out
}

// Achieved is the level a search was accepted at, or NoResults.
type Achieved int

// Name returns the level label ("exact", ..., "no_results").
func (a Achieved) Name() string {
	if a == NoResults {
		return NoResultsName
	}
	for _, l := range Levels() {
		if l.Index == int(a) {
			return l.Name
		}
	}
	return "level_" + strconv.Itoa(int(a))
}

// Found reports whether a level met the threshold.
func (a Achieved) Found() bool { return a != NoResults }

// MarshalJSON renders the level as {"index": n, "name": "..."}.
func (a Achieved) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Index int    `json:"index"`
		Name  string `json:"name"`
	}{Index: int(a), Name: a.Name()})
}
