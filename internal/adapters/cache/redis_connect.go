package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Connect builds a Redis client from a redis:// or rediss:// URL. The caller
// owns the ping and the close.
func Connect(_ context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return redis.NewClient(opt), nil
}
