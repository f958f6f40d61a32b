package cache

import (
	"sync"
	"time"
)

// MemoryStore is a concurrency-safe in-memory implementation of Store.
// Writes to the same key are last-writer-wins.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]Entry),
	}
}

// Get returns the entry for key if it exists and has not expired.
// An expired entry is evicted and reported as a miss.
func (s *MemoryStore) Get(key string) (Entry, bool) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return Entry{}, false
	}

	if entry.IsExpired(time.Now().UTC()) {
		s.mu.Lock()
		// Re-check under the write lock: a concurrent Put may have
		// refreshed the entry in the meantime.
		if current, ok := s.entries[key]; ok && current.IsExpired(time.Now().UTC()) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return Entry{}, false
	}

	return entry, true
}

// GetStale returns the entry for key regardless of expiry. It never evicts.
func (s *MemoryStore) GetStale(key string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[key]
	return entry, ok
}

// Put stores the entry under its location key, replacing any previous value.
func (s *MemoryStore) Put(entry Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[entry.LocationKey] = entry
}
