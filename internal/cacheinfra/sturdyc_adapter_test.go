package cacheinfra

import (
	"context"
	"testing"
	"time"
)

func testConfig() Config {
	return Config{
		Capacity:           100,
		NumShards:          2,
		TTL:                time.Minute,
		EvictionPercentage: 10,
	}
}

func TestNewSturdycService_RejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Capacity = 0
	if _, err := NewSturdycService(cfg); err == nil {
		t.Error("expected invalid config to be rejected")
	}
}

func TestSturdycService_GetOrFetchCaches(t *testing.T) {
	service, err := NewSturdycService(testConfig())
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}

	ctx := context.Background()
	calls := 0
	fetch := func(ctx context.Context) (string, error) {
		calls++
		return "cached", nil
	}

	for i := 0; i < 3; i++ {
		result, err := service.GetOrFetch(ctx, "key", fetch)
		if err != nil {
			t.Fatalf("read %d failed: %v", i+1, err)
		}
		if result != "cached" {
			t.Fatalf("read %d returned %v", i+1, result)
		}
	}

	if calls != 1 {
		t.Errorf("expected a single fetch, got %d", calls)
	}
}

func TestSturdycService_RejectsMalformedFetchFn(t *testing.T) {
	service, err := NewSturdycService(testConfig())
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}

	if _, err := service.GetOrFetch(context.Background(), "key", 123); err == nil {
		t.Error("expected malformed fetch function to be rejected")
	}
}

func TestSturdycService_DeleteForcesRefetch(t *testing.T) {
	service, err := NewSturdycService(testConfig())
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}

	ctx := context.Background()
	calls := 0
	fetch := func(ctx context.Context) (int, error) {
		calls++
		return calls, nil
	}

	service.GetOrFetch(ctx, "key", fetch)
	if err := service.Delete(ctx, "key"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	service.GetOrFetch(ctx, "key", fetch)

	if calls != 2 {
		t.Errorf("expected refetch after delete, got %d fetches", calls)
	}
}

func TestSturdycService_DeleteByPrefix(t *testing.T) {
	service, err := NewSturdycService(testConfig())
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}

	ctx := context.Background()
	fetches := map[string]int{}
	fetchFor := func(key string) func(context.Context) (string, error) {
		return func(ctx context.Context) (string, error) {
			fetches[key]++
			return key, nil
		}
	}

	keys := []string{"user_a1::FindAll", "user_a1::Count", "order_b2::Count"}
	for _, key := range keys {
		if _, err := service.GetOrFetch(ctx, key, fetchFor(key)); err != nil {
			t.Fatalf("fetch %q failed: %v", key, err)
		}
	}

	if err := service.DeleteByPrefix(ctx, "user_a1::"); err != nil {
		t.Fatalf("delete by prefix failed: %v", err)
	}

	for _, key := range keys {
		if _, err := service.GetOrFetch(ctx, key, fetchFor(key)); err != nil {
			t.Fatalf("refetch %q failed: %v", key, err)
		}
	}

	if fetches["user_a1::FindAll"] != 2 || fetches["user_a1::Count"] != 2 {
		t.Errorf("expected user keys refetched, got %v", fetches)
	}
	if fetches["order_b2::Count"] != 1 {
		t.Errorf("expected order key untouched, got %v", fetches)
	}
}
