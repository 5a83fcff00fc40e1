package redis

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/tagdex/internal/db"
)

// SMembers returns all members of a set. A missing key yields an empty slice.
func (s *Store) SMembers(ctx context.Context, key string) ([]string, error) {
	cmd := s.b().Smembers().Key(key).Build()
	members, err := s.do(ctx, cmd).AsStrSlice()
	if err != nil {
		return nil, &db.Error{Op: db.OpSMembers, Err: err}
	}
	return members, nil
}

// SInter intersects the given sets server-side.
func (s *Store) SInter(ctx context.Context, keys []string) ([]string, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("at least one key is required")
	}

	cmd := s.b().Sinter().Key(keys...).Build()
	members, err := s.do(ctx, cmd).AsStrSlice()
	if err != nil {
		if isUnsupported(err) {
			return nil, &db.Error{Op: db.OpSInter, Err: fmt.Errorf("%w: %w", db.ErrUnsupported, err)}
		}
		return nil, &db.Error{Op: db.OpSInter, Err: err}
	}
	return members, nil
}
