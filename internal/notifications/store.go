package notifications

import (
	"context"

	"github.com/google/uuid"
)

// Store provides notification persistence.
type Store interface {
	// Insert persists a notification and fills in the server-assigned
	// timestamp.
	Insert(ctx context.Context, n *Notification) error

	// UnreadCount returns the number of unread notifications for a recipient.
	UnreadCount(ctx context.Context, recipientID uuid.UUID) (int, error)

	// ListAndMarkRead returns a recipient's notifications newest-first and
	// atomically marks the unread ones as read. Returned entries reflect
	// the read state before the call so clients can highlight new items.
	ListAndMarkRead(ctx context.Context, recipientID uuid.UUID) ([]Notification, error)
}
