package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionCache tracks issued access tokens in Redis so logout can revoke them.
// Key format: session:<token_id> -> user id, expiring with the token.
type SessionCache struct {
	client *redis.Client
}

func NewSessionCache(client *redis.Client) *SessionCache {
	return &SessionCache{client: client}
}

func (c *SessionCache) Store(ctx context.Context, tokenID, userID string, ttl time.Duration) error {
	if err := c.client.Set(ctx, key(tokenID), userID, ttl).Err(); err != nil {
		return fmt.Errorf("session store: %w", err)
	}
	return nil
}

func (c *SessionCache) Active(ctx context.Context, tokenID string) (bool, error) {
	n, err := c.client.Exists(ctx, key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("session check: %w", err)
	}
	return n > 0, nil
}

func (c *SessionCache) Revoke(ctx context.Context, tokenID string) error {
	return c.client.Del(ctx, key(tokenID)).Err()
}

func key(tokenID string) string {
	return "session:" + tokenID
}
