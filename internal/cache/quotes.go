package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("quote not in cache")

// QuoteCache holds per-shipment-profile delivery charges for a short TTL so
// repeated checkout loads and address toggles do not hammer the carrier-rate
// backend. Unavailability is treated as a miss by callers.
type QuoteCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewQuoteCache(client *redis.Client, ttl time.Duration) *QuoteCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &QuoteCache{client: client, ttl: ttl}
}

func (q *QuoteCache) Get(ctx context.Context, profileKey string) (float64, error) {
	raw, err := q.client.Get(ctx, cacheKey(profileKey)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrCacheMiss
	}
	if err != nil {
		return 0, fmt.Errorf("redis get failed: %w", err)
	}

	charge, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parse cached quote failed: %w", err)
	}
	return charge, nil
}

func (q *QuoteCache) Set(ctx context.Context, profileKey string, charge float64) error {
	value := strconv.FormatFloat(charge, 'f', -1, 64)
	if err := q.client.Set(ctx, cacheKey(profileKey), value, q.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func cacheKey(profileKey string) string {
	return fmt.Sprintf("quote:%s", profileKey)
}
