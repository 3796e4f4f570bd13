// Package audit records the append-only history of workflow actions taken
// on documents. Entries are never updated or deleted.
package audit

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Action identifies the kind of workflow event recorded in an entry.
type Action string

// Audit actions. The string values are persisted and must remain stable.
const (
	ActionCreated    Action = "created"
	ActionLogged     Action = "logged"
	ActionClassified Action = "classified"
	ActionAssigned   Action = "assigned"
	ActionProcessed  Action = "processed"
	ActionReviewed   Action = "reviewed"
	ActionApproved   Action = "approved"
	ActionRejected   Action = "rejected"
	ActionESigned    Action = "esigned"
	ActionRouted     Action = "routed"
	ActionReleased   Action = "released"
	ActionReturned   Action = "returned"
	ActionArchived   Action = "archived"
	ActionRevision   Action = "revision"
	ActionNotified   Action = "notified"
)

var actions = map[Action]struct{}{
	ActionCreated: {}, ActionLogged: {}, ActionClassified: {}, ActionAssigned: {},
	ActionProcessed: {}, ActionReviewed: {}, ActionApproved: {}, ActionRejected: {},
	ActionESigned: {}, ActionRouted: {}, ActionReleased: {}, ActionReturned: {},
	ActionArchived: {}, ActionRevision: {}, ActionNotified: {},
}

// ParseAction validates an action string.
func ParseAction(s string) (Action, error) {
	if _, ok := actions[Action(s)]; ok {
		return Action(s), nil
	}
	return "", fmt.Errorf("unknown audit action: %q", s)
}

// Entry is a single audit log record. ActorID is nullable so history
// survives actor removal.
type Entry struct {
	ID         uuid.UUID  `json:"id"`
	DocumentID uuid.UUID  `json:"document_id"`
	ActorID    *uuid.UUID `json:"actor_id,omitempty"`
	Action     Action     `json:"action"`
	Notes      string     `json:"notes,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
