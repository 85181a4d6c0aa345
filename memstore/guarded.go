package memstore

import (
	"context"
	"sync"

	"github.com/goliatone/go-memory-store/store"
)

// Interface assertion to ensure Guarded implements store.Repository[T]
var _ store.Repository[struct{}] = (*Guarded[struct{}])(nil)

// Guarded adapts a Repository to the store.Repository contract by
// serializing every operation behind a RWMutex. The core repository makes no
// provision for concurrent mutation; this wrapper is the synchronization
// layer for callers that share one instance across goroutines, and it is
// what the caching decorator expects as its base.
type Guarded[T any] struct {
	mu   sync.RWMutex
	repo *Repository[T]
}

// NewGuarded wraps the repository. The wrapped repository must not be used
// directly afterwards.
func NewGuarded[T any](repo *Repository[T]) *Guarded[T] {
	return &Guarded[T]{repo: repo}
}

// Create stores the record and returns it with its assigned identity.
func (g *Guarded[T]) Create(ctx context.Context, record T) (T, error) {
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.repo.Create(record), nil
}

// FindByID returns the record with the given identity, or false when absent.
func (g *Guarded[T]) FindByID(ctx context.Context, id int64) (T, bool, error) {
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, false, err
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	record, ok := g.repo.FindByID(id)
	return record, ok, nil
}

// FindAll returns a snapshot of all records in insertion order.
func (g *Guarded[T]) FindAll(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.repo.FindAll(), nil
}

// Update merges the patch onto the record with the given identity.
func (g *Guarded[T]) Update(ctx context.Context, id int64, patch map[string]any) (T, bool, error) {
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, false, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	record, ok := g.repo.Update(id, patch)
	return record, ok, nil
}

// Delete removes the record with the given identity.
func (g *Guarded[T]) Delete(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.repo.Delete(id), nil
}

// Count returns the number of stored records.
func (g *Guarded[T]) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.repo.Len(), nil
}
