package documents

import (
	"context"

	"github.com/google/uuid"

	"docutrail/pkg/pagination"
)

// Filters narrows document listings. Pointer fields are ignored when nil.
// VisibleToActor and VisibleToDepartment apply creator-or-assignee and
// current-or-origin department visibility restrictions respectively.
type Filters struct {
	Status          *Status
	Source          *Source
	Classification  *Classification
	ReferenceNumber *string
	CreatedBy       *uuid.UUID
	AssignedTo      *uuid.UUID
	DepartmentID    *uuid.UUID

	VisibleToActor      *uuid.UUID
	VisibleToDepartment *uuid.UUID
}

// Store provides document persistence.
type Store interface {
	// Find returns a document by ID, including department names.
	Find(ctx context.Context, id uuid.UUID) (*Document, error)

	// FindForUpdate returns a document by ID with a row lock held for the
	// duration of the surrounding transaction. Department name fields are
	// not populated.
	FindForUpdate(ctx context.Context, id uuid.UUID) (*Document, error)

	// Insert persists a new document and fills in server-assigned timestamps.
	Insert(ctx context.Context, doc *Document) error

	// Update persists all mutable fields of doc and refreshes UpdatedAt.
	Update(ctx context.Context, doc *Document) error

	// NextRefSequence reserves and returns the next reference number
	// sequence value. Values are never reused, so aborted transactions
	// leave gaps.
	NextRefSequence(ctx context.Context) (int64, error)

	// List returns a page of documents matching the filters.
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Document], error)
}
