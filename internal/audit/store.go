package audit

import (
	"context"

	"github.com/google/uuid"
)

// Store provides audit log persistence.
type Store interface {
	// Append adds an entry to a document's history and fills in the
	// server-assigned timestamp.
	Append(ctx context.Context, entry *Entry) error

	// ListForDocument returns a document's history newest-first.
	ListForDocument(ctx context.Context, documentID uuid.UUID) ([]Entry, error)
}
