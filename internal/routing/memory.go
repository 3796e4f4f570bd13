package routing

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps routing records in memory for tests and local development.
type MemoryStore struct {
	mu      sync.RWMutex
	records []Record
}

// NewMemoryStore creates an empty in-memory routing store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make([]Record, 0)}
}

// Snapshot captures the current ledger and returns a closure that restores
// it, used to roll back simulated transactions.
func (s *MemoryStore) Snapshot() func() {
	s.mu.RLock()
	records := make([]Record, len(s.records))
	copy(records, s.records)
	s.mu.RUnlock()

	return func() {
		s.mu.Lock()
		s.records = records
		s.mu.Unlock()
	}
}

func (s *MemoryStore) Append(_ context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.CreatedAt = time.Now().UTC()
	s.records = append(s.records, *rec)
	return nil
}

func (s *MemoryStore) ListForDocument(_ context.Context, documentID uuid.UUID) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]Record, 0)
	for _, r := range s.records {
		if r.DocumentID == documentID {
			matches = append(matches, r)
		}
	}
	return matches, nil
}
