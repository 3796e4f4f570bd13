package audit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps audit entries in memory for tests and local development.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewMemoryStore creates an empty in-memory audit store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make([]Entry, 0)}
}

// Snapshot captures the current log and returns a closure that restores it,
// used to roll back simulated transactions.
func (s *MemoryStore) Snapshot() func() {
	s.mu.RLock()
	entries := make([]Entry, len(s.entries))
	copy(entries, s.entries)
	s.mu.RUnlock()

	return func() {
		s.mu.Lock()
		s.entries = entries
		s.mu.Unlock()
	}
}

func (s *MemoryStore) Append(_ context.Context, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.CreatedAt = time.Now().UTC()
	s.entries = append(s.entries, *entry)
	return nil
}

func (s *MemoryStore) ListForDocument(_ context.Context, documentID uuid.UUID) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]Entry, 0)
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].DocumentID == documentID {
			matches = append(matches, s.entries[i])
		}
	}
	return matches, nil
}
