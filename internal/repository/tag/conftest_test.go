package tag

import (
	"context"
	"testing"

	"github.com/kailas-cloud/tagdex/internal/repository/keys"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	getMultiFn     func(ctx context.Context, keys []string) ([][]byte, error)
	hgetAllMultiFn func(ctx context.Context, keys []string) ([]map[string]string, error)
}

func (m *mockStore) GetMulti(ctx context.Context, keys []string) ([][]byte, error) {
	if m.getMultiFn != nil {
		return m.getMultiFn(ctx, keys)
	}
	return make([][]byte, len(keys)), nil
}

func (m *mockStore) HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error) {
	if m.hgetAllMultiFn != nil {
		return m.hgetAllMultiFn(ctx, keys)
	}
	return make([]map[string]string, len(keys)), nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, keys.New("")), ms
}

// kvStore serves GetMulti and HGetAllMulti from in-memory maps.
func kvStore(ms *mockStore, kv map[string]string, hashes map[string]map[string]string) {
	ms.getMultiFn = func(_ context.Context, ks []string) ([][]byte, error) {
		out := make([][]byte, len(ks))
		for i, k := range ks {
			if v, ok := kv[k]; ok {
				out[i] = []byte(v)
			}
		}
		return out, nil
	}
	ms.hgetAllMultiFn = func(_ context.Context, ks []string) ([]map[string]string, error) {
		out := make([]map[string]string, len(ks))
		for i, k := range ks {
			out[i] = hashes[k]
			if out[i] == nil {
				out[i] = map[string]string{}
			}
		}
		return out, nil
	}
}
