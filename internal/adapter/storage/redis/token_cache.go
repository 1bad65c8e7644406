package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// TokenCache stores the PayPal OAuth access token between API calls.
// The token is platform-wide, so one key serves every tenant.
type TokenCache struct {
	client *goredis.Client
	key    string
}

// NewTokenCache creates a Redis-backed OAuth token cache.
func NewTokenCache(client *goredis.Client) *TokenCache {
	return &TokenCache{
		client: client,
		key:    "paypal:access_token",
	}
}

// Get returns the cached token, or "" on a miss.
func (c *TokenCache) Get(ctx context.Context) (string, error) {
	val, err := c.client.Get(ctx, c.key).Result()
	if err != nil {
		if err == goredis.Nil {
			return "", nil
		}
		return "", fmt.Errorf("redis token get: %w", err)
	}
	return val, nil
}

// Set stores a token with the given TTL.
func (c *TokenCache) Set(ctx context.Context, token string, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.key, token, ttl).Err(); err != nil {
		return fmt.Errorf("redis token set: %w", err)
	}
	return nil
}
