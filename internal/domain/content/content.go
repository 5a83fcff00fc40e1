package content

import (
	"fmt"
	"strconv"
)

// Type identifies a content kind. The same numeric id may exist independently per type.
type Type string

// Content types served by the engine.
const (
	Property    Type = "property"
	Article     Type = "article"
	Video       Type = "video"
	Testimonial Type = "testimonial"
	FAQ         Type = "faq"
	SEOContent  Type = "seo_content"
)

// IsValid checks if the type is one of the supported values.
func (t Type) IsValid() bool {
	switch t {
	case Property, Article, Video, Testimonial, FAQ, SEOContent:
		return true
	}
	return false
}

// RelatedTypes returns the editorial types merged by the related-content cascade, in response order.
func RelatedTypes() []Type {
	return []Type{Article, Video, Testimonial, FAQ, SEOContent}
}

// Key is the identity of a content item.
type Key struct {
	Type Type
	ID   int64
}

// String renders the key as "type:id".
func (k Key) String() string {
	return string(k.Type) + ":" + strconv.FormatInt(k.ID, 10)
}

// ParseKey parses a "type:id" string.
func ParseKey(s string) (Key, error) {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] != ':' {
			continue
		}
		t := Type(s[:i])
		if !t.IsValid() {
			return Key{}, fmt.Errorf("invalid content type %q", s[:i])
		}
		id, err := strconv.ParseInt(s[i+1:], 10, 64)
		if err != nil || id <= 0 {
			return Key{}, fmt.Errorf("invalid content id %q", s[i+1:])
		}
		return Key{Type: t, ID: id}, nil
	}
	return Key{}, fmt.Errorf("content key %q must be type:id", s)
}

// Record is a hydrated content item as stored by the content repository.
type Record struct {
	Key    Key
	Fields map[string]string
}

// Coordinates returns the record location if both lat and lon are present and parseable.
func (r Record) Coordinates() (lat, lon float64, ok bool) {
	latS, okLat := r.Fields["lat"]
	lonS, okLon := r.Fields["lon"]
	if !okLat || !okLon {
		return 0, 0, false
	}
	lat, err := strconv.ParseFloat(latS, 64)
	if err != nil {
		return 0, 0, false
	}
	lon, err = strconv.ParseFloat(lonS, 64)
	if err != nil {
		return 0, 0, false
	}
	return lat, lon, true
}
