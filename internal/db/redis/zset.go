package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kailas-cloud/tagdex/internal/db"
)

// ZRevRangeWithScores returns members by descending score via ZRANGE ... REV WITHSCORES.
func (s *Store) ZRevRangeWithScores(ctx context.Context, key string, limit int) ([]db.ZMember, error) {
	stop := "-1"
	if limit > 0 {
		stop = strconv.Itoa(limit - 1)
	}

	cmd := s.b().Zrange().Key(key).Min("0").Max(stop).Rev().Withscores().Build()
	scores, err := s.do(ctx, cmd).AsZScores()
	if err != nil {
		return nil, &db.Error{Op: db.OpZRange, Err: err}
	}

	out := make([]db.ZMember, len(scores))
	for i, z := range scores {
		out[i] = db.ZMember{Member: z.Member, Score: z.Score}
	}
	return out, nil
}

// ZMScore returns the scores of members in one round-trip.
func (s *Store) ZMScore(ctx context.Context, key string, members []string) ([]float64, []bool, error) {
	if len(members) == 0 {
		return nil, nil, nil
	}

	cmd := s.b().Zmscore().Key(key).Member(members...).Build()
	arr, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return nil, nil, &db.Error{Op: db.OpZMScore, Err: err}
	}
	if len(arr) != len(members) {
		return nil, nil, &db.Error{
			Op:  db.OpZMScore,
			Err: fmt.Errorf("expected %d scores, got %d", len(members), len(arr)),
		}
	}

	scores := make([]float64, len(arr))
	found := make([]bool, len(arr))
	for i := range arr {
		if arr[i].IsNil() {
			continue
		}
		f, err := arr[i].AsFloat64()
		if err != nil {
			return nil, nil, &db.Error{Op: db.OpZMScore, Err: fmt.Errorf("member %s: %w", members[i], err)}
		}
		scores[i] = f
		found[i] = true
	}
	return scores, found, nil
}
