package workflow

import (
	"context"
	"sync"

	"docutrail/internal/audit"
	"docutrail/internal/directory"
	"docutrail/internal/documents"
	"docutrail/internal/notifications"
	"docutrail/internal/routing"
)

// MemoryTx simulates transactional semantics over in-memory stores by
// serializing operations under a single lock and restoring store snapshots
// when the operation fails. Intended for tests and local development.
type MemoryTx struct {
	mu sync.Mutex

	Docs   *documents.MemoryStore
	Ledger *routing.MemoryStore
	Log    *audit.MemoryStore
	Inbox  *notifications.MemoryStore
	Actors *directory.MemoryStore
}

// NewMemoryTx creates a transaction runner with fresh in-memory stores.
func NewMemoryTx() *MemoryTx {
	return &MemoryTx{
		Docs:   documents.NewMemoryStore(),
		Ledger: routing.NewMemoryStore(),
		Log:    audit.NewMemoryStore(),
		Inbox:  notifications.NewMemoryStore(),
		Actors: directory.NewMemoryStore(),
	}
}

func (m *MemoryTx) RunInTx(_ context.Context, fn func(Stores) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	restores := []func(){
		m.Docs.Snapshot(),
		m.Ledger.Snapshot(),
		m.Log.Snapshot(),
		m.Inbox.Snapshot(),
	}

	if err := fn(memoryStores{m}); err != nil {
		for _, restore := range restores {
			restore()
		}
		return err
	}

	return nil
}

type memoryStores struct {
	tx *MemoryTx
}

func (s memoryStores) Documents() documents.Store { return s.tx.Docs }

func (s memoryStores) Routing() routing.Store { return s.tx.Ledger }

func (s memoryStores) Audit() audit.Store { return s.tx.Log }

func (s memoryStores) Notifications() notifications.Store { return s.tx.Inbox }

func (s memoryStores) Directory() directory.Store { return s.tx.Actors }
