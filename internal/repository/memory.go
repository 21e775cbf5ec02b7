package repository

import (
	"sync"

	"babysimple/internal/model"
)

// MemoryHistory holds per-session history for unauthenticated users, newest
// first, truncated to model.MaxHistoryItems with insertion-order eviction.
type MemoryHistory struct {
	mu    sync.RWMutex
	items map[string][]model.HistoryItem
}

// NewMemoryHistory creates an empty in-memory history store.
func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{items: make(map[string][]model.HistoryItem)}
}

// Append prepends the item to the session's history and evicts the oldest
// entries beyond the cap.
func (s *MemoryHistory) Append(sessionKey string, item model.HistoryItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	updated := append([]model.HistoryItem{item}, s.items[sessionKey]...)
	if len(updated) > model.MaxHistoryItems {
		updated = updated[:model.MaxHistoryItems]
	}
	s.items[sessionKey] = updated
}

// List returns the session's history, newest first.
func (s *MemoryHistory) List(sessionKey string) []model.HistoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := s.items[sessionKey]
	out := make([]model.HistoryItem, len(items))
	copy(out, items)
	return out
}

// Clear drops the session's history, used on sign-out.
func (s *MemoryHistory) Clear(sessionKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, sessionKey)
}
