package tag

import "fmt"

// Category is the closed set of tag categories a filter path can carry.
type Category uint8

// Tag categories. The zero value is not a valid category.
const (
	Country Category = iota + 1
	Operation
	PropertyType
	City
	Sector
	Feature
	CustomList
)

var categoryNames = map[Category]string{
	Country:      "country",
	Operation:    "operation",
	PropertyType: "category",
	City:         "city",
	Sector:       "sector",
	Feature:      "feature",
	CustomList:   "custom_list",
}

var categoryByName = func() map[string]Category {
	m := make(map[string]Category, len(categoryNames))
	for c, n := range categoryNames {
		m[n] = c
	}
	return m
}()

// ParseCategory converts a stored category name into a Category.
func ParseCategory(s string) (Category, error) {
	c, ok := categoryByName[s]
	if !ok {
		return 0, fmt.Errorf("unknown tag category %q", s)
	}
	return c, nil
}

// Categories returns every valid category in declaration order.
func Categories() []Category {
	return []Category{Country, Operation, PropertyType, City, Sector, Feature, CustomList}
}

// String returns the stored name of the category.
func (c Category) String() string {
	if n, ok := categoryNames[c]; ok {
		return n
	}
	return fmt.Sprintf("category(%d)", uint8(c))
}

// IsValid reports whether c is one of the declared categories.
func (c Category) IsValid() bool {
	_, ok := categoryNames[c]
	return ok
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	if !c.IsValid() {
		return nil, fmt.Errorf("invalid tag category %d", uint8(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(b []byte) error {
	parsed, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// hierarchy is the path order used when building canonical listing URLs.
var hierarchy = map[Category]int{
	Operation:    0,
	PropertyType: 1,
	City:         2,
	Sector:       3,
}

// HierarchyRank returns the position of c in the canonical path order
// (operation, category, city, sector). Other categories sort after those.
func (c Category) HierarchyRank() int {
	if r, ok := hierarchy[c]; ok {
		return r
	}
	return len(hierarchy)
}
