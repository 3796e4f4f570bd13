// Package notifications delivers in-app messages produced by workflow
// transitions to the actors who need to act on them.
package notifications

import (
	"time"

	"github.com/google/uuid"
)

// Notification is an in-app message for a single recipient. DocumentID is
// nullable so notifications survive document removal.
type Notification struct {
	ID          uuid.UUID  `json:"id"`
	RecipientID uuid.UUID  `json:"recipient_id"`
	DocumentID  *uuid.UUID `json:"document_id,omitempty"`
	Message     string     `json:"message"`
	Read        bool       `json:"read"`
	CreatedAt   time.Time  `json:"created_at"`
}
