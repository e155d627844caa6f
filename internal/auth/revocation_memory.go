package auth

import (
	"context"
	"sync"
	"time"
)

// InMemoryTRL is a process-local revocation list for tests and single-node
// deployments without Redis.
type InMemoryTRL struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
}

func NewInMemoryTRL() *InMemoryTRL {
	return &InMemoryTRL{revoked: make(map[string]time.Time)}
}

func (t *InMemoryTRL) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if jti == "" {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.revoked[jti] = time.Now().Add(ttl)
	return nil
}

func (t *InMemoryTRL) IsRevoked(_ context.Context, jti string) (bool, error) {
	t.mu.RLock()
	expiry, ok := t.revoked[jti]
	t.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if time.Now().After(expiry) {
		t.mu.Lock()
		delete(t.revoked, jti)
		t.mu.Unlock()
		return false, nil
	}
	return true, nil
}
