package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient creates a Redis client and verifies connectivity. The
// reporting layer uses it as a read-through cache; the engine itself never
// touches Redis.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		// Tolerate a bare host:port value.
		opt = &redis.Options{Addr: redisURL}
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

// MaybeNewRedisClient returns a connected client, or nil when the URL is
// empty or the connection fails. A nil client disables report caching.
func MaybeNewRedisClient(ctx context.Context, logger *slog.Logger, redisURL string) *redis.Client {
	if redisURL == "" {
		return nil
	}
	client, err := NewRedisClient(ctx, redisURL)
	if err != nil {
		logger.Warn("Redis unavailable, report caching disabled", slog.String("error", err.Error()))
		return nil
	}
	logger.Info("Redis connection established.")
	return client
}
