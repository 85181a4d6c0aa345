package di

import (
	"github.com/goliatone/go-memory-store/cache"
	"github.com/goliatone/go-memory-store/store"
	"github.com/goliatone/go-memory-store/storecache"
)

// Container wires the cache-related components together. It holds singleton
// instances of the cache service and key serializer and provides a factory
// for cached repositories.
type Container struct {
	cacheService  cache.CacheService
	keySerializer cache.KeySerializer
	config        cache.Config
}

// NewContainer creates a container backed by the default sturdyc cache
// service with the provided configuration.
func NewContainer(config cache.Config) (*Container, error) {
	cacheService, err := cache.NewCacheService(config)
	if err != nil {
		return nil, err
	}

	return &Container{
		cacheService:  cacheService,
		keySerializer: cache.NewDefaultKeySerializer(),
		config:        config,
	}, nil
}

// NewContainerWithDefaults creates a container using the default sturdyc
// configuration.
func NewContainerWithDefaults() (*Container, error) {
	return NewContainer(cache.DefaultConfig())
}

// NewBoundedContainer creates a container backed by the capacity-bounded
// FIFO cache service instead of sturdyc. Entries never expire; they are
// displaced first-in-first-out once the capacity is reached.
func NewBoundedContainer(capacity int) *Container {
	return &Container{
		cacheService:  cache.NewBoundedService(capacity),
		keySerializer: cache.NewDefaultKeySerializer(),
	}
}

// CacheService returns the singleton cache service instance.
func (c *Container) CacheService() cache.CacheService {
	return c.cacheService
}

// KeySerializer returns the singleton key serializer instance.
func (c *Container) KeySerializer() cache.KeySerializer {
	return c.keySerializer
}

// Config returns a copy of the cache configuration used by this container.
// It is the zero Config for bounded containers.
func (c *Container) Config() cache.Config {
	return c.config
}

// NewCachedRepository wraps the base repository with the container's cache
// service and key serializer.
//
// Go methods cannot have type parameters, so this is a package-level
// function: NewCachedRepository[User](container, baseUserRepository).
func NewCachedRepository[T any](container *Container, base store.Repository[T]) *storecache.CachedRepository[T] {
	return storecache.New(base, container.cacheService, container.keySerializer)
}
