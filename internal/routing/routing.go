// Package routing maintains the ledger of inter-department document transfers.
package routing

import (
	"time"

	"github.com/google/uuid"
)

// Record is a single entry in a document's routing ledger. Records are
// append-only; Completed is persisted for forward compatibility with
// acknowledgement tracking but is never flipped by the current workflow.
type Record struct {
	ID               uuid.UUID  `json:"id"`
	DocumentID       uuid.UUID  `json:"document_id"`
	FromDepartmentID uuid.UUID  `json:"from_department_id"`
	ToDepartmentID   uuid.UUID  `json:"to_department_id"`
	RoutedBy         *uuid.UUID `json:"routed_by,omitempty"`
	Notes            string     `json:"notes,omitempty"`
	Completed        bool       `json:"completed"`
	CreatedAt        time.Time  `json:"created_at"`
}

// CurrentDepartment derives a document's holding department from its ledger:
// the destination of the latest record, or the origin department when the
// document has never been routed. Records must be in routing order.
func CurrentDepartment(records []Record, origin uuid.UUID) uuid.UUID {
	if len(records) == 0 {
		return origin
	}
	return records[len(records)-1].ToDepartmentID
}
