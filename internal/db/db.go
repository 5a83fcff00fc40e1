package db

import (
	"context"
	"time"
)

// Store is the main database facade combining all sub-interfaces.
//
//nolint:interfacebloat // facade by design -- consumers use narrow sub-interfaces (ISP)
type Store interface {
	Pinger
	KVStore
	HashStore
	SetStore
	SortedSetStore
	ListStore
	GeoStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KVStore provides simple key-value reads.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// GetMulti returns one value per key in order; missing keys yield nil.
	GetMulti(ctx context.Context, keys []string) ([][]byte, error)
}

// HashStore provides batched hash reads.
type HashStore interface {
	// HGetAllMulti returns one map per key in order; missing keys yield an empty map.
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
}

// SetStore provides set reads.
type SetStore interface {
	SMembers(ctx context.Context, key string) ([]string, error)
	// SInter returns the members present in every key. Returns ErrUnsupported
	// when the server cannot intersect the keys in one command.
	SInter(ctx context.Context, keys []string) ([]string, error)
}

// ZMember is a sorted set member with its score.
type ZMember struct {
	Member string
	Score  float64
}

// SortedSetStore provides sorted set reads.
type SortedSetStore interface {
	// ZRevRangeWithScores returns up to limit members by descending score.
	// limit <= 0 returns the whole set.
	ZRevRangeWithScores(ctx context.Context, key string, limit int) ([]ZMember, error)
	// ZMScore returns the score of each member in order; absent members are reported as ok=false.
	ZMScore(ctx context.Context, key string, members []string) ([]float64, []bool, error)
}

// ListStore provides list reads.
type ListStore interface {
	// LRange returns up to limit leading elements. limit <= 0 returns the whole list.
	LRange(ctx context.Context, key string, limit int) ([]string, error)
}

// GeoQuery is the input for a radius search over a geo set.
type GeoQuery struct {
	Key       string
	Longitude float64
	Latitude  float64
	RadiusKm  float64
	Count     int
}

// GeoMember is a single geo set hit ordered by distance.
type GeoMember struct {
	Name       string
	Longitude  float64
	Latitude   float64
	DistanceKm float64
}

// GeoStore provides geo radius search.
type GeoStore interface {
	GeoSearch(ctx context.Context, q *GeoQuery) ([]GeoMember, error)
}
