package ports

import (
	"context"
	"time"
)

// SessionCache tracks issued access tokens by token id so they can be revoked.
type SessionCache interface {
	Store(ctx context.Context, tokenID, userID string, ttl time.Duration) error
	Active(ctx context.Context, tokenID string) (bool, error)
	Revoke(ctx context.Context, tokenID string) error
}
