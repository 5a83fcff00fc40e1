package association

import "github.com/kailas-cloud/tagdex/internal/domain/content"

// Association is a weighted edge between a content item and a tag.
// Weight is per edge and need not equal the tag's default weight.
type Association struct {
	ContentID   int64
	ContentType content.Type
	TagID       int64
	Weight      float64
}

// Key returns the identity of the associated content item.
func (a Association) Key() content.Key {
	return content.Key{Type: a.ContentType, ID: a.ContentID}
}
