// Package documents implements the document domain for Docutrail.
// It provides types, data access, and reference-number sequencing for
// documents tracked through the institutional workflow.
package documents

import (
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// Source identifies where a document originated.
type Source string

// Document sources.
const (
	SourceInternal Source = "internal"
	SourceExternal Source = "external"
)

// ParseSource validates a source string.
func ParseSource(s string) (Source, error) {
	switch Source(s) {
	case SourceInternal, SourceExternal:
		return Source(s), nil
	}
	return "", fmt.Errorf("unknown source: %q", s)
}

// Status is a document's position in the workflow state machine.
type Status string

// Workflow statuses. The string values are persisted and must remain stable.
const (
	StatusDraft             Status = "draft"
	StatusPendingReview     Status = "pending_review"
	StatusApproved          Status = "approved"
	StatusRejected          Status = "rejected"
	StatusESigned           Status = "esigned"
	StatusReleased          Status = "released"
	StatusReturned          Status = "returned"
	StatusArchived          Status = "archived"
	StatusReturnForRevision Status = "return_for_revision"
)

// Classification is a document's sensitivity level.
type Classification string

// Classification levels.
const (
	ClassificationConfidential Classification = "confidential"
	ClassificationInternal     Classification = "internal"
	ClassificationPublic       Classification = "public"
)

// ParseClassification validates a classification string.
func ParseClassification(s string) (Classification, error) {
	switch Classification(s) {
	case ClassificationConfidential, ClassificationInternal, ClassificationPublic:
		return Classification(s), nil
	}
	return "", fmt.Errorf("unknown classification: %q", s)
}

// ActionType records the terminal business outcome chosen at finalization.
type ActionType string

// Finalization action types.
const (
	ActionTypeReturn  ActionType = "return"
	ActionTypeRelease ActionType = "release"
)

// Document is the workflow subject. CreatedBy and AssignedTo are nullable so
// history survives actor removal; OriginDepartmentID is immutable once set,
// while CurrentDepartmentID advances as the document is routed.
type Document struct {
	ID                  uuid.UUID      `json:"id"`
	ReferenceNumber     string         `json:"reference_number"`
	Title               string         `json:"title"`
	Description         string         `json:"description"`
	Source              Source         `json:"source"`
	Classification      Classification `json:"classification"`
	Status              Status         `json:"status"`
	ActionType          *ActionType    `json:"action_type,omitempty"`
	CorrespondentName   string         `json:"correspondent_name,omitempty"`
	CorrespondentAgency string         `json:"correspondent_agency,omitempty"`

	AttachmentName *string `json:"attachment_name,omitempty"`
	AttachmentKey  *string `json:"attachment_key,omitempty"`
	ContentType    *string `json:"content_type,omitempty"`
	SizeBytes      *int64  `json:"size_bytes,omitempty"`
	PageCount      *int    `json:"page_count,omitempty"`
	SignatureKey   *string `json:"signature_key,omitempty"`

	CreatedBy           *uuid.UUID `json:"created_by,omitempty"`
	AssignedTo          *uuid.UUID `json:"assigned_to,omitempty"`
	OriginDepartmentID  uuid.UUID  `json:"origin_department_id"`
	CurrentDepartmentID uuid.UUID  `json:"current_department_id"`

	OriginDepartmentName  string `json:"origin_department_name,omitempty"`
	CurrentDepartmentName string `json:"current_department_name,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	LoggedAt  *time.Time `json:"logged_at,omitempty"`
}

var referencePattern = regexp.MustCompile(`^DOC-\d{4}-\d{5}$`)

// FormatReference builds a reference number from a creation year and a
// sequence value. The DOC-YYYY-NNNNN format is persisted and must remain
// stable for historical data compatibility.
func FormatReference(year int, seq int64) string {
	return fmt.Sprintf("DOC-%d-%05d", year, seq)
}

// ValidReference reports whether s matches the DOC-YYYY-NNNNN format.
func ValidReference(s string) bool {
	return referencePattern.MatchString(s)
}
