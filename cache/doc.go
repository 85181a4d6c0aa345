// Package cache provides the caching building blocks for go-memory-store:
// a capacity-bounded FIFO cache, the CacheService interface consumed by the
// repository decorator, and key serialization.
//
// # Bounded
//
// Bounded[K, V] is an insertion-ordered key/value store with a fixed maximum
// size. Inserting a new key at capacity evicts the oldest entry; overwriting
// an existing key never evicts and never reorders, and Get has no recency
// effect, so eviction order is purely insertion order:
//
//	b := cache.NewBounded[string, int](2)
//	b.Set("a", 1)
//	b.Set("b", 2)
//	b.Set("c", 3) // evicts "a"
//
// Missing keys are reported through sentinel returns (false), never through
// errors. Bounded is single-goroutine code; NewBoundedService wraps one in a
// mutex to serve as a CacheService backend without any TTL semantics.
//
// # CacheService
//
// CacheService is the read-through contract used when decorating
// repositories. The default implementation (NewCacheService) is backed by
// sturdyc and adds TTL, sharding and stampede protection; NewBoundedService
// is the dependency-free alternative. The typed wrapper keeps call sites
// generic:
//
//	user, err := cache.GetOrFetch(ctx, service, key, func(ctx context.Context) (User, error) {
//		return repo.FindByID(ctx, id)
//	})
//
// # Key serialization
//
// The default KeySerializer builds deterministic keys from a method name and
// arguments using reflection: map keys are sorted, slices recurse, functions
// and channels are identified by pointer. Oversized argument segments are
// replaced by an xxhash digest while the method prefix is kept intact, so
// prefix-based invalidation still matches.
//
// Function pointers are stable only within one process. If keys must survive
// a restart or be shared between processes, provide a custom KeySerializer.
package cache
