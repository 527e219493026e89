package cache

import "time"

// Cache is the result-cache capability of the resolver. Implementations must
// be safe for concurrent use. Entries expire on their own; there is no
// delete operation because resolved icons are simply re-fetched after expiry.
type Cache[K comparable, V any] interface {
	// Get retrieves a value from the cache
	Get(key K) (V, bool)

	// SetWithTTL stores a value with cost and TTL, returning true if the
	// write was admitted. Writes may be dropped under pressure; callers
	// must treat the cache as best-effort.
	SetWithTTL(key K, value V, cost int64, ttl time.Duration) bool
}
