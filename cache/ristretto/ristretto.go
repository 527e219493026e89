package ristretto

import (
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// sizeParams maps a named size level to ristretto dimensions.
type sizeParams struct {
	numCounters int64
	maxCost     int64
}

var levels = map[string]sizeParams{
	"small":      {numCounters: 1e4, maxCost: 1 << 24},  // 16MB
	"medium":     {numCounters: 1e5, maxCost: 1 << 27},  // 128MB
	"large":      {numCounters: 1e6, maxCost: 1 << 30},  // 1GB
	"very-large": {numCounters: 1e7, maxCost: 4 << 30},  // 4GB
}

// Cache adapts a ristretto cache to the cache.Cache interface with string
// keys (normalized domains).
type Cache[V any] struct {
	cache *ristretto.Cache[string, V]
}

func (rc *Cache[V]) Get(key string) (V, bool) {
	return rc.cache.Get(key)
}

func (rc *Cache[V]) SetWithTTL(key string, value V, cost int64, ttl time.Duration) bool {
	return rc.cache.SetWithTTL(key, value, cost, ttl)
}

// Wait blocks until pending writes are applied. Only useful in tests;
// request paths never wait on cache admission.
func (rc *Cache[V]) Wait() {
	rc.cache.Wait()
}

// New creates a ristretto-backed cache sized by level: "small", "medium",
// "large" or "very-large".
func New[V any](level string) (*Cache[V], error) {
	params, ok := levels[level]
	if !ok {
		return nil, fmt.Errorf("ristretto: unknown cache size level %q", level)
	}

	c, err := ristretto.NewCache(&ristretto.Config[string, V]{
		NumCounters: params.numCounters,
		MaxCost:     params.maxCost,
		BufferItems: 64, // number of keys per Get buffer
	})
	if err != nil {
		return nil, err
	}

	return &Cache[V]{cache: c}, nil
}
