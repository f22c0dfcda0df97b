package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupTestCache(t *testing.T) (*QuoteCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewQuoteCache(client, time.Minute), mr
}

func TestQuoteCacheRoundTrip(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	key := "110001-700001-10-5-5-0.5"
	if err := cache.Set(ctx, key, 63.5); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	charge, err := cache.Get(ctx, key)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if charge != 63.5 {
		t.Fatalf("expected 63.5, got %v", charge)
	}
}

func TestQuoteCacheMiss(t *testing.T) {
	cache, _ := setupTestCache(t)

	_, err := cache.Get(context.Background(), "missing-profile")
	if !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss, got %v", err)
	}
}

func TestQuoteCacheCorruptValue(t *testing.T) {
	cache, mr := setupTestCache(t)
	mr.Set(cacheKey("bad"), "not-a-number")

	if _, err := cache.Get(context.Background(), "bad"); err == nil {
		t.Fatal("expected parse error for corrupt cached value")
	}
}
