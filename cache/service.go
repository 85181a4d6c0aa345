package cache

import (
	"context"
	"errors"
	"fmt"
)

// ErrInvalidResultType reports a cached value whose dynamic type does not
// match the type the caller asked GetOrFetch for.
var ErrInvalidResultType = errors.New("cache: cached value has unexpected type")

// KeySerializer builds a cache key from a method name + arbitrary args.
// It is responsible for producing stable keys across calls.
type KeySerializer interface {
	SerializeKey(method string, args ...any) string
}

// FetchFn is the function signature CacheService expects when fetching from
// the source of truth.
type FetchFn[T any] func(ctx context.Context) (T, error)

// CacheService exposes the read-through caching operations the repository
// decorator needs. It is exported so callers can plug in alternate cache
// backends; NewBoundedService and the default sturdyc backend both satisfy
// it.
type CacheService interface {
	// GetOrFetch returns the cached value for key, calling fetchFn (which
	// must be a FetchFn[T]) to fill the cache on a miss.
	GetOrFetch(ctx context.Context, key string, fetchFn any) (any, error)

	// Delete removes a single entry.
	Delete(ctx context.Context, key string) error

	// DeleteByPrefix removes every entry whose key starts with prefix.
	DeleteByPrefix(ctx context.Context, prefix string) error

	// InvalidateKeys removes the given entries.
	InvalidateKeys(ctx context.Context, keys []string) error
}

// GetOrFetch is the type-safe wrapper over CacheService.GetOrFetch. A nil
// cached value yields the zero value of T; a value of the wrong type yields
// ErrInvalidResultType rather than a panic.
func GetOrFetch[T any](ctx context.Context, service CacheService, key string, fetchFn FetchFn[T]) (T, error) {
	var zero T

	result, err := service.GetOrFetch(ctx, key, fetchFn)
	if err != nil {
		return zero, err
	}
	if result == nil {
		return zero, nil
	}

	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("%w: have %T", ErrInvalidResultType, result)
	}
	return typed, nil
}
