package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"

	"vetiver/internal/domain/ticket"
	"vetiver/internal/shared/logger"
)

const (
	statsKey = "tickets:stats"

	defaultStatsTTL = 60 * time.Second
	statsTTLJitter  = 15 * time.Second // anti-stampede
)

// StatsCache caches the aggregate statistics report. The report scans the
// whole table, so dashboards polling it would otherwise hammer the database.
type StatsCache interface {
	// Get returns the cached report, or nil on a miss.
	Get(ctx context.Context) (*ticket.Stats, error)
	Set(ctx context.Context, stats *ticket.Stats) error
	// Invalidate drops the cached report. Called after every mutation so the
	// next read reflects the change.
	Invalidate(ctx context.Context) error
}

// RedisStatsCache implements StatsCache using Redis.
type RedisStatsCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Interface
}

// NewRedisStatsCache creates a Redis-backed stats cache. A non-positive ttl
// falls back to the default.
func NewRedisStatsCache(client *redis.Client, ttl time.Duration, logger logger.Interface) *RedisStatsCache {
	if ttl <= 0 {
		ttl = defaultStatsTTL
	}
	return &RedisStatsCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Get returns the cached report, or nil on a miss.
func (c *RedisStatsCache) Get(ctx context.Context) (*ticket.Stats, error) {
	val, err := c.client.Get(ctx, statsKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get stats from cache: %w", err)
	}

	var stats ticket.Stats
	if err := json.Unmarshal([]byte(val), &stats); err != nil {
		// A payload from an older build; treat it as a miss.
		c.logger.Warnw("discarding unreadable cached stats", "error", err)
		return nil, nil
	}

	return &stats, nil
}

// Set stores the report with a jittered TTL.
func (c *RedisStatsCache) Set(ctx context.Context, stats *ticket.Stats) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	if err := c.client.Set(ctx, statsKey, raw, c.ttlWithJitter()).Err(); err != nil {
		return fmt.Errorf("failed to set stats in cache: %w", err)
	}

	c.logger.Debugw("stats cached", "total", stats.Total, "ttl", c.ttl)
	return nil
}

// Invalidate drops the cached report.
func (c *RedisStatsCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, statsKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate stats cache: %w", err)
	}
	return nil
}

// ttlWithJitter randomizes the TTL so concurrent refreshes do not all expire
// at the same instant.
func (c *RedisStatsCache) ttlWithJitter() time.Duration {
	jitter := time.Duration(rand.Int63n(int64(statsTTLJitter)))
	return c.ttl + jitter
}

// NoopStatsCache satisfies StatsCache without caching anything. Used when
// Redis is not configured; every read goes to the database.
type NoopStatsCache struct{}

func (NoopStatsCache) Get(ctx context.Context) (*ticket.Stats, error) { return nil, nil }
func (NoopStatsCache) Set(ctx context.Context, _ *ticket.Stats) error { return nil }
func (NoopStatsCache) Invalidate(ctx context.Context) error { return nil }
