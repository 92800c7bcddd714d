// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"time"

	"lexdesk/config"

	"github.com/go-redis/redis/v8"
)

// NewCacheClient connects the Redis client used for chat pub/sub and unseen
// counters and verifies it with a ping.
func NewCacheClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis (cache): %w", err)
	}
	return client, nil
}
