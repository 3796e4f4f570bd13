package routing

import (
	"context"

	"github.com/google/uuid"
)

// Store provides routing ledger persistence.
type Store interface {
	// Append adds a record to a document's ledger and fills in the
	// server-assigned timestamp.
	Append(ctx context.Context, rec *Record) error

	// ListForDocument returns a document's ledger oldest-first.
	ListForDocument(ctx context.Context, documentID uuid.UUID) ([]Record, error)
}
