package chi

import (
	"github.com/kailas-cloud/tagdex/internal/domain/fallback"
	"github.com/kailas-cloud/tagdex/internal/domain/poi"
	domrank "github.com/kailas-cloud/tagdex/internal/domain/ranking"
)

// ErrorResponseCode is a machine-readable error code.
type ErrorResponseCode string

// Error codes.
const (
	ErrorResponseCodeBadRequest          ErrorResponseCode = "bad_request"
	ErrorResponseCodeUnauthorized        ErrorResponseCode = "unauthorized"
	ErrorResponseCodeValidationFailed    ErrorResponseCode = "validation_failed"
	ErrorResponseCodeNotFound            ErrorResponseCode = "not_found"
	ErrorResponseCodePrimarySearchFailed ErrorResponseCode = "primary_search_failed"
	ErrorResponseCodeInternalError       ErrorResponseCode = "internal_error"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Code    ErrorResponseCode `json:"code"`
	Message string            `json:"message"`
}

// DiscoverParams are the query parameters of the discovery endpoint.
type DiscoverParams struct {
	CountryTagID *int64  `json:"country_tag_id,omitempty"`
	Page         *int    `json:"page,omitempty"`
	Limit        *int    `json:"limit,omitempty"`
	MinResults   *int    `json:"min_results,omitempty"`
	Anchor       *string `json:"anchor,omitempty"` // "type:id"
}

// RelatedParams are the query parameters of the related-content endpoint.
type RelatedParams struct {
	Locale       *string `json:"locale,omitempty"`
	Path         *string `json:"path,omitempty"` // slash-separated tag slugs
	CountryTagID *int64  `json:"country_tag_id,omitempty"`
}

// Tag is a resolved tag.
type Tag struct {
	ID       int64  `json:"id"`
	Category string `json:"category"`
	Slug     string `json:"slug"`
}

// Item is a hydrated content item.
type Item struct {
	Type        string            `json:"type"`
	ID          int64             `json:"id"`
	Fields      map[string]string `json:"fields"`
	Tier        string            `json:"tier,omitempty"`
	Score       float64           `json:"score,omitempty"`
	MatchedTags int               `json:"matched_tags,omitempty"`
}

// Listing is the paginated primary listing.
type Listing struct {
	Items         []Item            `json:"items"`
	Total         int               `json:"total"`
	Page          int               `json:"page"`
	Limit         int               `json:"limit"`
	HasMore       bool              `json:"has_more"`
	FallbackLevel fallback.Achieved `json:"fallback_level"`
	Tags          []Tag             `json:"tags"`
}

// RelatedList is the merged list of one related content type.
type RelatedList struct {
	Type          string         `json:"type"`
	Items         []Item         `json:"items"`
	Counts        domrank.Counts `json:"counts"`
	ContentSource string         `json:"content_source"`
}

// Carousel is a filled thematic carousel.
type Carousel struct {
	GroupID       int64             `json:"group_id"`
	Theme         string            `json:"theme"`
	Priority      int               `json:"priority"`
	Items         []Item            `json:"items"`
	Total         int               `json:"total"`
	FallbackLevel fallback.Achieved `json:"fallback_level"`
	ViewAll       string            `json:"view_all"`
}

// DiscoverResponse is the body of a discovery reply.
type DiscoverResponse struct {
	Locale    string        `json:"locale"`
	Tags      []Tag         `json:"tags"`
	Listing   Listing       `json:"listing"`
	Related   []RelatedList `json:"related"`
	Carousels []Carousel    `json:"carousels"`
	Anchor    *Item         `json:"anchor,omitempty"`
	Nearby    []poi.POI     `json:"nearby,omitempty"`
}

// HealthResponse is the body of a health reply.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
