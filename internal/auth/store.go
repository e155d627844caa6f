package auth

import (
	"context"
	"time"
)

// Store persists user accounts. Implementations return sentinel.ErrNotFound
// for unknown usernames and sentinel.ErrConflict for duplicate ones.
type Store interface {
	FindByUsername(ctx context.Context, username string) (*User, error)
	Insert(ctx context.Context, user User) error
}

// TokenRevocationList tracks revoked token IDs until their natural expiry.
type TokenRevocationList interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
