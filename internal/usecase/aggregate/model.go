package aggregate

import (
	"fmt"

	"github.com/kailas-cloud/tagdex/internal/domain"
	"github.com/kailas-cloud/tagdex/internal/domain/content"
	"github.com/kailas-cloud/tagdex/internal/domain/fallback"
	"github.com/kailas-cloud/tagdex/internal/domain/poi"
	domrank "github.com/kailas-cloud/tagdex/internal/domain/ranking"
	"github.com/kailas-cloud/tagdex/internal/domain/tag"
)

// Request is one discovery query.
type Request struct {
	Slugs        []string
	Locale       string
	CountryTagID int64 // 0 uses the configured default
	Page         int   // 1-based; 0 means first page
	Limit        int   // 0 uses the configured page size
	MinResults   int   // 0 uses the configured threshold
	Anchor       *content.Key
}

// Defaults fills unset request fields.
type Defaults struct {
	Locale       string
	CountryTagID int64
	MinResults   int
	PageSize     int
	MaxPageSize  int
}

// normalize applies defaults and validates the request.
func (r Request) normalize(d Defaults) (Request, error) {
	if r.Page < 0 || r.Limit < 0 || r.MinResults < 0 {
		return r, fmt.Errorf("%w: page, limit and min_results must be non-negative", domain.ErrInvalidRequest)
	}
	if r.Limit > d.MaxPageSize {
		return r, fmt.Errorf("%w: limit must be at most %d", domain.ErrInvalidRequest, d.MaxPageSize)
	}
	if r.Anchor != nil && (!r.Anchor.Type.IsValid() || r.Anchor.ID <= 0) {
		return r, fmt.Errorf("%w: invalid anchor %s", domain.ErrInvalidRequest, *r.Anchor)
	}
	if r.Page == 0 {
		r.Page = 1
	}
	if r.Limit == 0 {
		r.Limit = d.PageSize
	}
	if r.MinResults == 0 {
		r.MinResults = d.MinResults
	}
	if r.CountryTagID == 0 {
		r.CountryTagID = d.CountryTagID
	}
	if r.Locale == "" {
		r.Locale = d.Locale
	}
	return r, nil
}

// Entry is a hydrated content item with its ranking provenance.
type Entry struct {
	Key         content.Key
	Fields      map[string]string
	Tier        domrank.Tier
	TotalWeight float64
	MatchedTags int
}

// Listing is the paginated primary listing.
type Listing struct {
	Items []Entry
	Total int
	Page  int
	Limit int
	Level fallback.Achieved
	Tags  []tag.Tag
}

// Related is the merged list of one related content type.
type Related struct {
	Type   content.Type
	Items  []Entry
	Counts domrank.Counts
	Source domrank.Source
}

// Carousel is a hydrated thematic carousel.
type Carousel struct {
	GroupID  int64
	Theme    string
	Priority int
	Items    []Entry
	Total    int
	Level    fallback.Achieved
	ViewAll  string
}

// Response is the assembled discovery payload.
type Response struct {
	Locale    string
	Tags      []tag.Tag // resolved request tags with the country scope
	Listing   Listing
	Related   []Related
	Carousels []Carousel
	Anchor    *content.Record
	Nearby    []poi.POI
}
