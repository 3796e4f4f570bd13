package routing

import (
	"context"

	"github.com/google/uuid"

	"docutrail/pkg/repository"
)

const recordColumns = "id, document_id, from_department_id, to_department_id, routed_by, notes, completed, created_at"

type postgresStore struct {
	db repository.DB
}

// NewPostgresStore creates a routing store over the given database handle.
// The handle may be a connection pool or an open transaction.
func NewPostgresStore(db repository.DB) Store {
	return &postgresStore{db: db}
}

func (s *postgresStore) Append(ctx context.Context, rec *Record) error {
	q := `INSERT INTO document_routings (
		id, document_id, from_department_id, to_department_id, routed_by, notes, completed
	) VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING created_at`

	row := s.db.QueryRowContext(ctx, q,
		rec.ID, rec.DocumentID, rec.FromDepartmentID, rec.ToDepartmentID,
		rec.RoutedBy, rec.Notes, rec.Completed,
	)
	return row.Scan(&rec.CreatedAt)
}

func (s *postgresStore) ListForDocument(ctx context.Context, documentID uuid.UUID) ([]Record, error) {
	q := "SELECT " + recordColumns + " FROM document_routings WHERE document_id = $1 ORDER BY created_at, id"
	return repository.QueryMany(ctx, s.db, q, []any{documentID}, scanRecord)
}

func scanRecord(s repository.Scanner) (Record, error) {
	var r Record
	err := s.Scan(
		&r.ID,
		&r.DocumentID,
		&r.FromDepartmentID,
		&r.ToDepartmentID,
		&r.RoutedBy,
		&r.Notes,
		&r.Completed,
		&r.CreatedAt,
	)
	return r, err
}
