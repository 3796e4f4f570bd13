package audit

import (
	"context"

	"github.com/google/uuid"

	"docutrail/pkg/repository"
)

const entryColumns = "id, document_id, actor_id, action, notes, created_at"

type postgresStore struct {
	db repository.DB
}

// NewPostgresStore creates an audit store over the given database handle.
// The handle may be a connection pool or an open transaction.
func NewPostgresStore(db repository.DB) Store {
	return &postgresStore{db: db}
}

func (s *postgresStore) Append(ctx context.Context, entry *Entry) error {
	q := `INSERT INTO document_logs (id, document_id, actor_id, action, notes)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING created_at`

	row := s.db.QueryRowContext(ctx, q,
		entry.ID, entry.DocumentID, entry.ActorID, entry.Action, entry.Notes,
	)
	return row.Scan(&entry.CreatedAt)
}

func (s *postgresStore) ListForDocument(ctx context.Context, documentID uuid.UUID) ([]Entry, error) {
	// created_at is the transaction timestamp, so entries appended by one
	// operation tie on it; seq reflects insert order and breaks the tie.
	q := "SELECT " + entryColumns + " FROM document_logs WHERE document_id = $1 ORDER BY seq DESC"
	return repository.QueryMany(ctx, s.db, q, []any{documentID}, scanEntry)
}

func scanEntry(s repository.Scanner) (Entry, error) {
	var e Entry
	err := s.Scan(
		&e.ID,
		&e.DocumentID,
		&e.ActorID,
		&e.Action,
		&e.Notes,
		&e.CreatedAt,
	)
	return e, err
}
