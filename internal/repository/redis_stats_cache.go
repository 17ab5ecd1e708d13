package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"folklore-server/internal/models"
)

const statsCacheKey = "stats:stories"

// Compile-time check that redisStatsCache implements StatsCache.
var _ StatsCache = (*redisStatsCache)(nil)

type redisStatsCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisStatsCache creates a StatsCache that keeps the aggregated story
// statistics in Redis for the given TTL.
func NewRedisStatsCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) StatsCache {
	return &redisStatsCache{
		client: client,
		ttl:    ttl,
		logger: logger.Named("RedisStatsCache"),
	}
}

func (c *redisStatsCache) Get(ctx context.Context) (*models.StoryStats, bool) {
	payload, err := c.client.Get(ctx, statsCacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("Stats cache read failed, falling through", zap.Error(err))
		return nil, false
	}

	var stats models.StoryStats
	if err := json.Unmarshal(payload, &stats); err != nil {
		c.logger.Warn("Stats cache payload corrupt, falling through", zap.Error(err))
		return nil, false
	}
	return &stats, true
}

func (c *redisStatsCache) Set(ctx context.Context, stats *models.StoryStats) {
	payload, err := json.Marshal(stats)
	if err != nil {
		c.logger.Warn("Failed to marshal stats for cache", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, statsCacheKey, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("Stats cache write failed", zap.Error(err))
	}
}

func (c *redisStatsCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, statsCacheKey).Err(); err != nil {
		c.logger.Warn("Stats cache invalidation failed", zap.Error(err))
	}
}
