package resolve

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/tagdex/internal/domain/tag"
	"github.com/kailas-cloud/tagdex/internal/logger"
)

// Service turns raw path segments into canonical tags.
type Service struct {
	catalog Catalog
}

// New creates a resolve service.
func New(catalog Catalog) *Service {
	return &Service{catalog: catalog}
}

// Resolve maps raw slugs to tags, trying the locale slug before the default slug.
// Unknown segments are dropped without error, so the result may be shorter than
// the input. Output follows input order with repeated tags removed.
func (s *Service) Resolve(ctx context.Context, rawSlugs []string, locale string) ([]tag.Tag, error) {
	slugs := normalize(rawSlugs)
	if len(slugs) == 0 {
		return nil, nil
	}

	tags, err := s.catalog.BySlugs(ctx, slugs, strings.ToLower(strings.TrimSpace(locale)))
	if err != nil {
		return nil, fmt.Errorf("resolve slugs: %w", err)
	}
	if dropped := len(slugs) - len(tags); dropped > 0 {
		logger.FromContext(ctx).Debug("Dropped unresolved path segments",
			zap.Int("requested", len(slugs)), zap.Int("dropped", dropped))
	}
	return tag.Dedup(tags), nil
}

// Country loads the country tag used to scope a search.
// ok is false when id is unset, unknown, or not a country tag.
func (s *Service) Country(ctx context.Context, id int64) (country tag.Tag, ok bool, err error) {
	if id <= 0 {
		return tag.Tag{}, false, nil
	}
	tags, err := s.catalog.ByIDs(ctx, []int64{id})
	if err != nil {
		return tag.Tag{}, false, fmt.Errorf("load country tag %d: %w", id, err)
	}
	if len(tags) == 0 || tags[0].Category() != tag.Country {
		logger.FromContext(ctx).Warn("Country tag not found", zap.Int64("country_tag_id", id))
		return tag.Tag{}, false, nil
	}
	return tags[0], true, nil
}

// Inject prepends country unless tags already contain a country tag.
// Existing tags keep their order. Inject is idempotent.
func Inject(tags []tag.Tag, country tag.Tag) []tag.Tag {
	if tag.HasCategory(tags, tag.Country) {
		return tags
	}
	out := make([]tag.Tag, 0, len(tags)+1)
	out = append(out, country)
	return append(out, tags...)
}

// Scope is the tag set of a request after resolution.
type Scope struct {
	Tags       []tag.Tag // resolved request tags, country excluded
	Country    tag.Tag
	HasCountry bool
}

// Scoped returns the request tags with the country tag injected.
func (s Scope) Scoped() []tag.Tag {
	if !s.HasCountry {
		return s.Tags
	}
	return Inject(s.Tags, s.Country)
}

// NewScope splits resolved tags into request tags and the country scope.
// The first country tag in the request path wins over the fallback country.
func NewScope(tags []tag.Tag, fallbackCountry tag.Tag, hasFallback bool) Scope {
	sc := Scope{Country: fallbackCountry, HasCountry: hasFallback}
	sc.Tags = make([]tag.Tag, 0, len(tags))
	fromPath := false
	for _, t := range tags {
		if t.Category() == tag.Country {
			if !fromPath {
				sc.Country, sc.HasCountry, fromPath = t, true, true
			}
			continue
		}
		sc.Tags = append(sc.Tags, t)
	}
	return sc
}

func normalize(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
