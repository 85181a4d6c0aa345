// Package storecache provides a caching decorator for store.Repository
// implementations.
//
// # Overview
//
// CachedRepository wraps any store.Repository and intercepts the read
// operations (FindByID, FindAll, Count) with read-through caching, while
// write operations pass through to the base repository and invalidate the
// keys they affect:
//
//	base := memstore.NewGuarded(memstore.New(handlers))
//	service, _ := cache.NewCacheService(cache.DefaultConfig())
//	cached := storecache.New[User](base, service, cache.NewDefaultKeySerializer())
//
//	user, found, err := cached.FindByID(ctx, 1) // fills the cache
//	user, found, err = cached.FindByID(ctx, 1)  // served from cache
//
// # Invalidation
//
// Create invalidates FindAll and Count. Update and Delete additionally
// invalidate the record's FindByID entry. For cross-cutting invalidation,
// reads can be tagged through their context:
//
//	ctx = storecache.WithCacheTags(ctx, "reports")
//	cached.FindAll(ctx)
//	...
//	cached.InvalidateTags(ctx, "reports")
//
// # Namespaces
//
// Every decorator instance caches under a namespace built from the
// snake_cased record type name plus a random suffix. Two decorators sharing
// one CacheService therefore never collide, at the cost of losing cached
// state when a decorator is rebuilt.
//
// # Tracing
//
// When the context carries an OpenTelemetry span, reads and invalidations
// add events to it. Without a span these calls are no-ops.
package storecache
