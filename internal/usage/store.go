package usage

import (
	"context"
	"sync"
)

// Store persists quota records keyed by hashed user ID.
type Store interface {
	Get(ctx context.Context, userKey string) (*Record, error)
	Save(ctx context.Context, rec *Record) error
}

// MemoryStore is the default in-process store. Quotas reset with the
// process, which is acceptable for single-instance deployments.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

func (s *MemoryStore) Get(ctx context.Context, userKey string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[userKey]
	if !ok {
		return nil, nil
	}
	out := rec
	return &out, nil
}

func (s *MemoryStore) Save(ctx context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.UserKey] = *rec
	return nil
}
