package carousel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/tagdex/internal/db"
	domcarousel "github.com/kailas-cloud/tagdex/internal/domain/carousel"
	"github.com/kailas-cloud/tagdex/internal/logger"
	"github.com/kailas-cloud/tagdex/internal/repository/keys"
)

// store is the consumer interface for carousel definitions (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
}

// Repo reads curated carousel group definitions.
type Repo struct {
	store store
	keys  keys.Space
}

// New creates a carousel repository.
func New(s store, k keys.Space) *Repo {
	return &Repo{store: s, keys: k}
}

// Active returns the active, valid carousel groups ordered by priority.
// A missing definition key means no carousels.
func (r *Repo) Active(ctx context.Context) ([]domcarousel.Group, error) {
	data, err := r.store.Get(ctx, r.keys.CarouselGroups())
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load carousel groups: %w", err)
	}

	var groups []domcarousel.Group
	if err := json.Unmarshal(data, &groups); err != nil {
		return nil, fmt.Errorf("parse carousel groups: %w", err)
	}

	active := groups[:0]
	for _, g := range groups {
		if !g.Active {
			continue
		}
		if err := g.Validate(); err != nil {
			logger.FromContext(ctx).Warn("Skipping invalid carousel group", zap.Error(err))
			continue
		}
		active = append(active, g)
	}
	domcarousel.SortByPriority(active)
	return active, nil
}

// CheckCatalog reports whether the carousel definitions can be read and parsed.
func (r *Repo) CheckCatalog(ctx context.Context) error {
	_, err := r.Active(ctx)
	return err
}
