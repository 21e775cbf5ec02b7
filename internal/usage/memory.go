package usage

import (
	"context"
	"sync"

	"babysimple/internal/model"
)

// MemoryStore keeps usage records in memory, one per session key. Used for
// anonymous sessions and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]model.UsageRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]model.UsageRecord)}
}

func (s *MemoryStore) Load(_ context.Context, key string) (*model.UsageRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[key]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (s *MemoryStore) Save(_ context.Context, key string, rec model.UsageRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = rec
	return nil
}
