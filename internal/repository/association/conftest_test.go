package association

import (
	"context"
	"testing"

	"github.com/kailas-cloud/tagdex/internal/db"
	"github.com/kailas-cloud/tagdex/internal/repository/keys"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	sinterFn   func(ctx context.Context, keys []string) ([]string, error)
	smembersFn func(ctx context.Context, key string) ([]string, error)
	zrangeFn   func(ctx context.Context, key string, limit int) ([]db.ZMember, error)
	zmscoreFn  func(ctx context.Context, key string, members []string) ([]float64, []bool, error)
}

func (m *mockStore) SInter(ctx context.Context, keys []string) ([]string, error) {
	if m.sinterFn != nil {
		return m.sinterFn(ctx, keys)
	}
	return nil, nil
}

func (m *mockStore) SMembers(ctx context.Context, key string) ([]string, error) {
	if m.smembersFn != nil {
		return m.smembersFn(ctx, key)
	}
	return nil, nil
}

func (m *mockStore) ZRevRangeWithScores(ctx context.Context, key string, limit int) ([]db.ZMember, error) {
	if m.zrangeFn != nil {
		return m.zrangeFn(ctx, key, limit)
	}
	return nil, nil
}

func (m *mockStore) ZMScore(ctx context.Context, key string, members []string) ([]float64, []bool, error) {
	if m.zmscoreFn != nil {
		return m.zmscoreFn(ctx, key, members)
	}
	return make([]float64, len(members)), make([]bool, len(members)), nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, keys.New("")), ms
}
