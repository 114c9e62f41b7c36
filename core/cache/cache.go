package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"rite-api/core/config"
	"rite-api/core/constants"
	"rite-api/core/logger"
)

type Cache interface {
	AddToTokenBlacklist(ctx context.Context, token string, ttl time.Duration) error
	IsTokenBlacklisted(ctx context.Context, token string) (bool, error)
	AllowResolveAttempt(ctx context.Context, clientKey string) (bool, error)
	Close() error
}

type redisCache struct {
	client *redis.Client
}

func NewCache(cfg config.RedisConfig) (Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Redis connected", "addr", cfg.Addr)
	return &redisCache{client: client}, nil
}

func (c *redisCache) AddToTokenBlacklist(ctx context.Context, token string, ttl time.Duration) error {
	return c.client.Set(ctx, constants.RedisKeyTokenBlacklist+token, "1", ttl).Err()
}

func (c *redisCache) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	n, err := c.client.Exists(ctx, constants.RedisKeyTokenBlacklist+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// AllowResolveAttempt applies a fixed-window counter per client to the
// public resolve-by-token path. Submission tokens are the only credential on
// that path, so unbounded probing is not acceptable.
func (c *redisCache) AllowResolveAttempt(ctx context.Context, clientKey string) (bool, error) {
	key := constants.RedisKeyResolveRate + clientKey

	pipe := c.client.TxPipeline()
	count := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, constants.ResolveRateWindow)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return count.Val() <= constants.ResolveRateLimit, nil
}

func (c *redisCache) Close() error {
	return c.client.Close()
}
