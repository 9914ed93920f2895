package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"occupancyDash/internal/modules/statistics/application/port"
	"occupancyDash/internal/modules/statistics/domain"
)

const weeklyCacheKey = "occupancy-dash:stats:weekly"

// RedisWeeklyCache keeps the decoded weekly aggregate for ttl.
type RedisWeeklyCache struct {
	client *redis.Client
	ttl    time.Duration
	key    string
}

func NewRedisWeeklyCache(client *redis.Client, ttl time.Duration) *RedisWeeklyCache {
	return &RedisWeeklyCache{client: client, ttl: ttl, key: weeklyCacheKey}
}

func (c *RedisWeeklyCache) Get(ctx context.Context) (*domain.WeeklyStats, bool, error) {
	if c == nil || c.client == nil || c.ttl <= 0 {
		return nil, false, nil
	}
	val, err := c.client.Get(ctx, c.key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", c.key, err)
	}

	var stats domain.WeeklyStats
	if err := json.Unmarshal([]byte(val), &stats); err != nil {
		_ = c.client.Del(ctx, c.key).Err()
		return nil, false, nil
	}
	return &stats, true, nil
}

func (c *RedisWeeklyCache) Set(ctx context.Context, stats *domain.WeeklyStats) error {
	if c == nil || c.client == nil || c.ttl <= 0 || stats == nil {
		return nil
	}
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("encode weekly stats: %w", err)
	}
	if err := c.client.Set(ctx, c.key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", c.key, err)
	}
	return nil
}

var _ port.WeeklyCache = (*RedisWeeklyCache)(nil)
