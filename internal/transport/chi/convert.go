package chi

import (
	"github.com/kailas-cloud/tagdex/internal/domain/content"
	"github.com/kailas-cloud/tagdex/internal/domain/tag"
	"github.com/kailas-cloud/tagdex/internal/usecase/aggregate"
)

func discoverToAPI(resp aggregate.Response) DiscoverResponse {
	out := DiscoverResponse{
		Locale: resp.Locale,
		Tags:   tagsToAPI(resp.Tags),
		Listing: Listing{
			Items:         entriesToAPI(resp.Listing.Items),
			Total:         resp.Listing.Total,
			Page:          resp.Listing.Page,
			Limit:         resp.Listing.Limit,
			HasMore:       resp.Listing.Page*resp.Listing.Limit < resp.Listing.Total,
			FallbackLevel: resp.Listing.Level,
			Tags:          tagsToAPI(resp.Listing.Tags),
		},
		Related:   make([]RelatedList, len(resp.Related)),
		Carousels: make([]Carousel, len(resp.Carousels)),
		Nearby:    resp.Nearby,
	}

	for i, r := range resp.Related {
		out.Related[i] = RelatedList{
			Type:          string(r.Type),
			Items:         entriesToAPI(r.Items),
			Counts:        r.Counts,
			ContentSource: string(r.Source),
		}
	}
	for i, c := range resp.Carousels {
		out.Carousels[i] = Carousel{
			GroupID:       c.GroupID,
			Theme:         c.Theme,
			Priority:      c.Priority,
			Items:         entriesToAPI(c.Items),
			Total:         c.Total,
			FallbackLevel: c.Level,
			ViewAll:       c.ViewAll,
		}
	}
	if resp.Anchor != nil {
		a := recordToAPI(*resp.Anchor)
		out.Anchor = &a
	}
	return out
}

func tagsToAPI(tags []tag.Tag) []Tag {
	out := make([]Tag, len(tags))
	for i, t := range tags {
		out[i] = Tag{ID: t.ID(), Category: t.Category().String(), Slug: t.Slug()}
	}
	return out
}

func entriesToAPI(entries []aggregate.Entry) []Item {
	out := make([]Item, len(entries))
	for i, e := range entries {
		out[i] = Item{
			Type:        string(e.Key.Type),
			ID:          e.Key.ID,
			Fields:      e.Fields,
			Tier:        string(e.Tier),
			Score:       e.TotalWeight,
			MatchedTags: e.MatchedTags,
		}
	}
	return out
}

func recordToAPI(rec content.Record) Item {
	return Item{Type: string(rec.Key.Type), ID: rec.Key.ID, Fields: rec.Fields}
}
