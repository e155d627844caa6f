package warga

import (
	"context"
	"sort"
	"sync"

	"simwarga/pkg/platform/sentinel"
)

// InMemoryStore keeps warga records in a map. It is the test double for the
// postgres store and mirrors its semantics, including conflict on duplicate
// insert.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[string]Warga
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[string]Warga)}
}

func (s *InMemoryStore) List(_ context.Context) ([]Warga, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Warga, 0, len(s.records))
	for _, w := range s.records {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NIK < out[j].NIK })
	return out, nil
}

func (s *InMemoryStore) FindByNIK(_ context.Context, nik string) (*Warga, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.records[nik]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &w, nil
}

func (s *InMemoryStore) Insert(_ context.Context, w Warga) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[w.NIK]; ok {
		return sentinel.ErrConflict
	}
	s.records[w.NIK] = w
	return nil
}

func (s *InMemoryStore) Update(_ context.Context, w Warga) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[w.NIK]; !ok {
		return sentinel.ErrNotFound
	}
	s.records[w.NIK] = w
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, nik string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[nik]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.records, nik)
	return nil
}

func (s *InMemoryStore) FindRef(_ context.Context, nik string) (*Ref, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.records[nik]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &Ref{NIK: w.NIK, NamaWarga: w.NamaWarga}, nil
}

func (s *InMemoryStore) ListRefsByKeluarga(_ context.Context, keluargaID int64) ([]Ref, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	refs := make([]Ref, 0)
	for _, w := range s.records {
		if w.KeluargaID != nil && *w.KeluargaID == keluargaID {
			refs = append(refs, Ref{NIK: w.NIK, NamaWarga: w.NamaWarga})
		}
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].NIK < refs[j].NIK })
	return refs, nil
}
