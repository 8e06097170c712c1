package services

import (
	"testing"
	"time"
)

func TestQueryCacheSetGet(t *testing.T) {
	cache := NewQueryCache(time.Minute)

	cache.Set("leaderboard:2026", []string{"a", "b"})

	data, ok := cache.Get("leaderboard:2026")
	if !ok {
		t.Fatal("expected cache hit")
	}

	rows, ok := data.([]string)
	if !ok || len(rows) != 2 {
		t.Errorf("unexpected cached data: %v", data)
	}
}

func TestQueryCacheMiss(t *testing.T) {
	cache := NewQueryCache(time.Minute)

	if _, ok := cache.Get("missing"); ok {
		t.Error("expected cache miss for unknown key")
	}
}

func TestQueryCacheExpiry(t *testing.T) {
	cache := NewQueryCache(10 * time.Millisecond)

	cache.Set("stats:2026:all", 42)
	time.Sleep(20 * time.Millisecond)

	if _, ok := cache.Get("stats:2026:all"); ok {
		t.Error("expected entry to expire after TTL")
	}
}

func TestQueryCacheInvalidate(t *testing.T) {
	cache := NewQueryCache(time.Minute)

	cache.Set("leaderboard:2026", 1)
	cache.Set("stats:2026:all", 2)
	cache.Invalidate()

	if _, ok := cache.Get("leaderboard:2026"); ok {
		t.Error("expected leaderboard entry to be gone after invalidation")
	}
	if _, ok := cache.Get("stats:2026:all"); ok {
		t.Error("expected stats entry to be gone after invalidation")
	}
}

