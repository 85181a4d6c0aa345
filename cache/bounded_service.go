package cache

import (
	"context"
	"strings"
	"sync"

	"github.com/goliatone/go-memory-store/internal/cacheinfra"
)

// Interface assertion to ensure boundedService implements CacheService
var _ CacheService = (*boundedService)(nil)

// boundedService is a CacheService backed by a Bounded[string, any] behind a
// mutex. It is the zero-dependency alternative to the sturdyc backend:
// entries never expire, they are only displaced first-in-first-out once the
// capacity is reached.
type boundedService struct {
	mu      sync.Mutex
	entries *Bounded[string, any]
}

// NewBoundedService creates a CacheService over a capacity-bounded FIFO
// cache. A non-positive capacity falls back to DefaultBoundedCapacity.
// Unlike the sturdyc backend there is no TTL, no stampede protection and no
// missing-record storage; errors from fetchFn are never cached.
func NewBoundedService(capacity int) CacheService {
	return &boundedService{entries: NewBounded[string, any](capacity)}
}

// GetOrFetch returns the cached value for key, calling fetchFn to fill the
// cache on a miss. fetchFn must be a func(context.Context) (T, error).
func (s *boundedService) GetOrFetch(ctx context.Context, key string, fetchFn any) (any, error) {
	if err := cacheinfra.ValidateFetchFn(fetchFn); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if value, ok := s.entries.Get(key); ok {
		s.mu.Unlock()
		return value, nil
	}
	s.mu.Unlock()

	// Fetch outside the lock; a concurrent fetch for the same key may run
	// twice, the last writer wins.
	value, err := cacheinfra.CallFetchFn(ctx, fetchFn)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.entries.Set(key, value)
	s.mu.Unlock()
	return value, nil
}

// Delete removes a single entry.
func (s *boundedService) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	s.entries.Delete(key)
	s.mu.Unlock()
	return nil
}

// DeleteByPrefix removes every entry whose key starts with prefix.
func (s *boundedService) DeleteByPrefix(ctx context.Context, prefix string) error {
	s.mu.Lock()
	for _, key := range s.entries.Keys() {
		if strings.HasPrefix(key, prefix) {
			s.entries.Delete(key)
		}
	}
	s.mu.Unlock()
	return nil
}

// InvalidateKeys removes the given entries.
func (s *boundedService) InvalidateKeys(ctx context.Context, keys []string) error {
	s.mu.Lock()
	for _, key := range keys {
		s.entries.Delete(key)
	}
	s.mu.Unlock()
	return nil
}
