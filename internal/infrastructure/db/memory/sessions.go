package memory

import (
	"context"
	"sync"
	"time"
)

// SessionCache keeps issued token ids until they expire or are revoked.
type SessionCache struct {
	mu      sync.Mutex
	expires map[string]time.Time
	now     func() time.Time
}

func NewSessionCache() *SessionCache {
	return &SessionCache{expires: make(map[string]time.Time), now: time.Now}
}

func (c *SessionCache) Store(_ context.Context, tokenID, _ string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expires[tokenID] = c.now().Add(ttl)
	return nil
}

func (c *SessionCache) Active(_ context.Context, tokenID string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	exp, ok := c.expires[tokenID]
	if !ok {
		return false, nil
	}
	if !c.now().Before(exp) {
		delete(c.expires, tokenID)
		return false, nil
	}
	return true, nil
}

func (c *SessionCache) Revoke(_ context.Context, tokenID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.expires, tokenID)
	return nil
}
