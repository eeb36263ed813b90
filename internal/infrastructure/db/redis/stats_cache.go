package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ratemystore/rating-system/internal/core/domain"
)

const statsTTL = 5 * time.Minute

// StatsCache caches per-store rating aggregates in Redis.
// Key format: rating_stats:<store_id>
type StatsCache struct {
	client *redis.Client
}

// NewStatsCache creates a StatsCache wrapping the given Redis client.
func NewStatsCache(client *redis.Client) *StatsCache {
	return &StatsCache{client: client}
}

// Get returns the cached stats for the store, or (nil, nil) on a miss.
func (c *StatsCache) Get(ctx context.Context, storeID string) (*domain.RatingStats, error) {
	raw, err := c.client.Get(ctx, c.key(storeID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("stats cache get: %w", err)
	}

	var stats domain.RatingStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, fmt.Errorf("stats cache decode: %w", err)
	}
	return &stats, nil
}

// Set stores the stats for the store (expires after statsTTL).
func (c *StatsCache) Set(ctx context.Context, storeID string, stats *domain.RatingStats) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("stats cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(storeID), raw, statsTTL).Err()
}

// Invalidate drops the cached entry after a rating mutation.
func (c *StatsCache) Invalidate(ctx context.Context, storeID string) error {
	return c.client.Del(ctx, c.key(storeID)).Err()
}

func (c *StatsCache) key(storeID string) string {
	return fmt.Sprintf("rating_stats:%s", storeID)
}
