package redis

import (
	"context"

	"github.com/kailas-cloud/tagdex/internal/db"
)

// LRange returns the leading elements of a list.
func (s *Store) LRange(ctx context.Context, key string, limit int) ([]string, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}

	cmd := s.b().Lrange().Key(key).Start(0).Stop(stop).Build()
	items, err := s.do(ctx, cmd).AsStrSlice()
	if err != nil {
		return nil, &db.Error{Op: db.OpLRange, Err: err}
	}
	return items, nil
}
