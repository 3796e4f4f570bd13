package workflow

import (
	"github.com/google/uuid"

	"docutrail/internal/documents"
)

// Attachment describes a file already persisted to blob storage. The engine
// records only the metadata; bytes never pass through a transaction.
type Attachment struct {
	Name        string
	Key         string
	ContentType string
	SizeBytes   int64
	PageCount   *int
}

// CreateCommand carries intake data for a new document.
type CreateCommand struct {
	Title               string
	Description         string
	Source              documents.Source
	Classification      documents.Classification
	CorrespondentName   string
	CorrespondentAgency string
	Attachment          *Attachment
}

// ClassifyCommand sets a document's classification level.
type ClassifyCommand struct {
	DocumentID     uuid.UUID
	Classification documents.Classification
}

// AssignCommand designates the actor responsible for processing.
type AssignCommand struct {
	DocumentID uuid.UUID
	AssigneeID uuid.UUID
}

// ProcessCommand appends a processing note to a document.
type ProcessCommand struct {
	DocumentID uuid.UUID
	Notes      string
}

// ReviewDecision is the outcome chosen by a reviewer.
type ReviewDecision string

// Review decisions.
const (
	ReviewApprove ReviewDecision = "approve"
	ReviewReject  ReviewDecision = "reject"
)

// ReviewCommand records a reviewer's decision on a document.
type ReviewCommand struct {
	DocumentID uuid.UUID
	Decision   ReviewDecision
	Notes      string
}

// ESignCommand applies an electronic signature to an approved document.
// SignatureKey references an already-stored signature image and is optional.
type ESignCommand struct {
	DocumentID   uuid.UUID
	SignatureKey *string
	Notes        string
}

// RouteAction selects one of the mutually exclusive routing sub-actions.
type RouteAction string

// Routing sub-actions.
const (
	RouteForward              RouteAction = "route"
	RouteReleaseCorrespondent RouteAction = "release_correspondent"
	RouteReturnOrigin         RouteAction = "return_origin"
	RouteReleaseAgency        RouteAction = "release_agency"
)

// RouteCommand carries a routing decision. TargetDepartmentID is required
// for RouteForward and ignored otherwise.
type RouteCommand struct {
	DocumentID         uuid.UUID
	Action             RouteAction
	TargetDepartmentID *uuid.UUID
	Notes              string
}

// NotifyCommand confirms that interested parties were informed of a
// finalized document, sealing it in the archive.
type NotifyCommand struct {
	DocumentID uuid.UUID
	Notes      string
}
