package keluarga

import (
	"context"
	"sort"
	"sync"

	"simwarga/pkg/platform/sentinel"
)

// InMemoryStore keeps keluarga records in a map with a monotonically
// increasing id, mirroring the bigserial column in postgres.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[int64]Keluarga
	nextID  int64
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[int64]Keluarga), nextID: 1}
}

func (s *InMemoryStore) List(_ context.Context) ([]Keluarga, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Keluarga, 0, len(s.records))
	for _, k := range s.records {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id int64) (*Keluarga, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	k, ok := s.records[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &k, nil
}

func (s *InMemoryStore) Insert(_ context.Context, k Keluarga) (*Keluarga, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k.ID = s.nextID
	s.nextID++
	s.records[k.ID] = k
	return &k, nil
}

func (s *InMemoryStore) Update(_ context.Context, k Keluarga) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[k.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.records[k.ID] = k
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.records, id)
	return nil
}
