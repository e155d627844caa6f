package auth

import (
	"context"
	"sync"

	"simwarga/pkg/platform/sentinel"
)

// InMemoryStore keeps users in a map. Used by unit tests and local demos.
type InMemoryStore struct {
	mu    sync.RWMutex
	users map[string]User
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{users: make(map[string]User)}
}

func (s *InMemoryStore) FindByUsername(_ context.Context, username string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[username]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &user, nil
}

func (s *InMemoryStore) Insert(_ context.Context, user User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.Username]; ok {
		return sentinel.ErrConflict
	}
	s.users[user.Username] = user
	return nil
}
