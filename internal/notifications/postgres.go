package notifications

import (
	"context"

	"github.com/google/uuid"

	"docutrail/pkg/repository"
)

const notificationColumns = "id, recipient_id, document_id, message, read, created_at"

type postgresStore struct {
	db repository.DB
}

// NewPostgresStore creates a notification store over the given database
// handle. The handle may be a connection pool or an open transaction.
func NewPostgresStore(db repository.DB) Store {
	return &postgresStore{db: db}
}

func (s *postgresStore) Insert(ctx context.Context, n *Notification) error {
	q := `INSERT INTO notifications (id, recipient_id, document_id, message, read)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING created_at`

	row := s.db.QueryRowContext(ctx, q, n.ID, n.RecipientID, n.DocumentID, n.Message, n.Read)
	return row.Scan(&n.CreatedAt)
}

func (s *postgresStore) UnreadCount(ctx context.Context, recipientID uuid.UUID) (int, error) {
	q := "SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND read = FALSE"

	var count int
	if err := s.db.QueryRowContext(ctx, q, recipientID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (s *postgresStore) ListAndMarkRead(ctx context.Context, recipientID uuid.UUID) ([]Notification, error) {
	// The outer SELECT reads the pre-update snapshot, so entries that were
	// unread at call time come back with read = false exactly once.
	q := `WITH marked AS (
		UPDATE notifications SET read = TRUE
		WHERE recipient_id = $1 AND read = FALSE
	)
	SELECT ` + notificationColumns + ` FROM notifications
	WHERE recipient_id = $1
	ORDER BY created_at DESC, id DESC`

	return repository.QueryMany(ctx, s.db, q, []any{recipientID}, scanNotification)
}

func scanNotification(s repository.Scanner) (Notification, error) {
	var n Notification
	err := s.Scan(
		&n.ID,
		&n.RecipientID,
		&n.DocumentID,
		&n.Message,
		&n.Read,
		&n.CreatedAt,
	)
	return n, err
}
