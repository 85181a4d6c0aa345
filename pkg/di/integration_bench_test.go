package di

import (
	"context"
	"testing"

	"github.com/goliatone/go-memory-store/memstore"
)

func BenchmarkGuardedFindByID(b *testing.B) {
	ctx := context.Background()
	base := memstore.NewGuarded(memstore.New(userHandlers))
	created, _ := base.Create(ctx, user{Name: "Alice"})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := base.FindByID(ctx, created.ID); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCachedFindByID(b *testing.B) {
	ctx := context.Background()
	container := NewBoundedContainer(1000)
	base := memstore.NewGuarded(memstore.New(userHandlers))
	cached := NewCachedRepository[user](container, base)
	created, _ := cached.Create(ctx, user{Name: "Alice"})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := cached.FindByID(ctx, created.ID); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCachedFindAll(b *testing.B) {
	ctx := context.Background()
	container := NewBoundedContainer(1000)
	base := memstore.NewGuarded(memstore.New(userHandlers))
	cached := NewCachedRepository[user](container, base)
	for i := 0; i < 100; i++ {
		cached.Create(ctx, user{Name: "user"})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := cached.FindAll(ctx); err != nil {
			b.Fatal(err)
		}
	}
}
