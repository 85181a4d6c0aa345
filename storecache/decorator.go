package storecache

import (
	"context"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/goliatone/go-memory-store/cache"
	"github.com/goliatone/go-memory-store/store"
)

// Interface assertion to ensure CachedRepository implements store.Repository[T]
var _ store.Repository[struct{}] = (*CachedRepository[struct{}])(nil)

// Span event names emitted on the current span, if any.
const (
	eventRead       = "CachedRepository read"
	eventInvalidate = "CachedRepository invalidate"
)

// findResult wraps the (record, found) pair from FindByID for caching.
type findResult[T any] struct {
	Record T    `json:"record"`
	Found  bool `json:"found"`
}

// CachedRepository decorates a store.Repository with read-through caching.
// FindByID, FindAll and Count are cached; writes pass through to the base
// repository and invalidate the affected keys. Each instance caches under
// its own namespace (derived from the record type name plus a random
// suffix), so two decorators over the same type never share entries.
type CachedRepository[T any] struct {
	base          store.Repository[T]
	cache         cache.CacheService
	keySerializer cache.KeySerializer
	namespace     string

	// keyTags tracks every key this instance has cached, with the cache
	// tags that were attached to the read's context.
	keyTags *xsync.MapOf[string, []string]
}

// New creates a CachedRepository that wraps the base repository with caching.
func New[T any](base store.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) *CachedRepository[T] {
	return &CachedRepository[T]{
		base:          base,
		cache:         cacheService,
		keySerializer: keySerializer,
		namespace:     namespaceFor[T](),
		keyTags:       xsync.NewMapOf[string, []string](),
	}
}

// Namespace returns the cache key prefix used by this instance.
func (c *CachedRepository[T]) Namespace() string {
	return c.namespace
}

// FindByID returns the record with the given identity, served from cache
// when possible. The "not found" sentinel is cached alongside the record so
// repeated misses do not hit the base repository.
func (c *CachedRepository[T]) FindByID(ctx context.Context, id int64) (T, bool, error) {
	key := c.key("FindByID", id)
	c.trackKey(ctx, key)
	addSpanEvent(ctx, eventRead, attribute.String("key", key))

	res, err := cache.GetOrFetch(ctx, c.cache, key, func(ctx context.Context) (findResult[T], error) {
		record, found, err := c.base.FindByID(ctx, id)
		return findResult[T]{Record: record, Found: found}, err
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	return res.Record, res.Found, nil
}

// FindAll returns all records, served from cache when possible.
func (c *CachedRepository[T]) FindAll(ctx context.Context) ([]T, error) {
	key := c.key("FindAll")
	c.trackKey(ctx, key)
	addSpanEvent(ctx, eventRead, attribute.String("key", key))

	return cache.GetOrFetch(ctx, c.cache, key, func(ctx context.Context) ([]T, error) {
		return c.base.FindAll(ctx)
	})
}

// Count returns the number of records, served from cache when possible.
func (c *CachedRepository[T]) Count(ctx context.Context) (int, error) {
	key := c.key("Count")
	c.trackKey(ctx, key)
	addSpanEvent(ctx, eventRead, attribute.String("key", key))

	return cache.GetOrFetch(ctx, c.cache, key, func(ctx context.Context) (int, error) {
		return c.base.Count(ctx)
	})
}

// Create stores the record through the base repository and invalidates the
// collection caches, since a new record changes FindAll and Count.
func (c *CachedRepository[T]) Create(ctx context.Context, record T) (T, error) {
	result, err := c.base.Create(ctx, record)
	if err == nil {
		c.invalidateCollections(ctx)
	}
	return result, err
}

// Update patches the record through the base repository. A successful update
// invalidates the record's FindByID entry and the collection caches.
func (c *CachedRepository[T]) Update(ctx context.Context, id int64, patch map[string]any) (T, bool, error) {
	result, found, err := c.base.Update(ctx, id, patch)
	if err == nil && found {
		c.invalidateRecord(ctx, id)
	}
	return result, found, err
}

// Delete removes the record through the base repository. A successful delete
// invalidates the record's FindByID entry and the collection caches.
func (c *CachedRepository[T]) Delete(ctx context.Context, id int64) (bool, error) {
	removed, err := c.base.Delete(ctx, id)
	if err == nil && removed {
		c.invalidateRecord(ctx, id)
	}
	return removed, err
}

// InvalidateTags removes every cached entry that was read under any of the
// given cache tags (see WithCacheTags).
func (c *CachedRepository[T]) InvalidateTags(ctx context.Context, tags ...string) error {
	if len(tags) == 0 {
		return nil
	}

	want := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		want[tag] = struct{}{}
	}

	var keys []string
	c.keyTags.Range(func(key string, keyTags []string) bool {
		for _, tag := range keyTags {
			if _, ok := want[tag]; ok {
				keys = append(keys, key)
				break
			}
		}
		return true
	})

	for _, key := range keys {
		c.keyTags.Delete(key)
	}

	addSpanEvent(ctx, eventInvalidate, attribute.Int("keys", len(keys)))
	return c.cache.InvalidateKeys(ctx, keys)
}

// key builds the namespaced cache key for a method and its arguments.
func (c *CachedRepository[T]) key(method string, args ...any) string {
	return c.namespace + cache.KeySeparator + c.keySerializer.SerializeKey(method, args...)
}

// trackKey records the key and any tags carried by the context so tag-based
// invalidation can find it later.
func (c *CachedRepository[T]) trackKey(ctx context.Context, key string) {
	c.keyTags.Store(key, cacheTagsFromContext(ctx))
}

func (c *CachedRepository[T]) invalidateRecord(ctx context.Context, id int64) {
	key := c.key("FindByID", id)
	c.keyTags.Delete(key)
	addSpanEvent(ctx, eventInvalidate, attribute.String("key", key))
	c.cache.Delete(ctx, key)
	c.invalidateCollections(ctx)
}

func (c *CachedRepository[T]) invalidateCollections(ctx context.Context) {
	for _, method := range []string{"FindAll", "Count"} {
		prefix := c.namespace + cache.KeySeparator + method
		c.dropTrackedPrefix(prefix)
		addSpanEvent(ctx, eventInvalidate, attribute.String("prefix", prefix))
		c.cache.DeleteByPrefix(ctx, prefix)
	}
}

func (c *CachedRepository[T]) dropTrackedPrefix(prefix string) {
	var stale []string
	c.keyTags.Range(func(key string, _ []string) bool {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			stale = append(stale, key)
		}
		return true
	})
	for _, key := range stale {
		c.keyTags.Delete(key)
	}
}

// namespaceFor derives a cache namespace from the record type name. The
// random suffix keeps instances of the same type apart.
func namespaceFor[T any]() string {
	t := reflect.TypeOf((*T)(nil)).Elem()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	name := t.Name()
	if name == "" {
		name = t.String()
	}
	return toSnake(name) + "_" + uuid.NewString()[:8]
}

func addSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	span.AddEvent(name, trace.WithAttributes(attrs...), trace.WithTimestamp(time.Now().UTC()))
}
