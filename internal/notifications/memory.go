package notifications

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps notifications in memory for tests and local development.
type MemoryStore struct {
	mu    sync.RWMutex
	items []Notification
}

// NewMemoryStore creates an empty in-memory notification store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make([]Notification, 0)}
}

// Snapshot captures the current notifications and returns a closure that
// restores them, used to roll back simulated transactions.
func (s *MemoryStore) Snapshot() func() {
	s.mu.RLock()
	items := make([]Notification, len(s.items))
	copy(items, s.items)
	s.mu.RUnlock()

	return func() {
		s.mu.Lock()
		s.items = items
		s.mu.Unlock()
	}
}

func (s *MemoryStore) Insert(_ context.Context, n *Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n.CreatedAt = time.Now().UTC()
	s.items = append(s.items, *n)
	return nil
}

func (s *MemoryStore) UnreadCount(_ context.Context, recipientID uuid.UUID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, n := range s.items {
		if n.RecipientID == recipientID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) ListAndMarkRead(_ context.Context, recipientID uuid.UUID) ([]Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matches := make([]Notification, 0)
	for i := len(s.items) - 1; i >= 0; i-- {
		if s.items[i].RecipientID != recipientID {
			continue
		}
		matches = append(matches, s.items[i])
		s.items[i].Read = true
	}
	return matches, nil
}
