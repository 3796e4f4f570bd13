package workflow

import (
	"context"

	"docutrail/internal/audit"
	"docutrail/internal/directory"
	"docutrail/internal/documents"
	"docutrail/internal/notifications"
	"docutrail/internal/routing"
)

// Stores exposes the domain stores participating in a workflow transaction.
// All mutations performed through them commit or roll back together.
type Stores interface {
	Documents() documents.Store
	Routing() routing.Store
	Audit() audit.Store
	Notifications() notifications.Store
	Directory() directory.Store
}

// Tx runs workflow operations inside a transactional boundary.
type Tx interface {
	// RunInTx executes fn against transaction-scoped stores. If fn returns
	// an error, every mutation made through the stores is rolled back.
	RunInTx(ctx context.Context, fn func(Stores) error) error
}
