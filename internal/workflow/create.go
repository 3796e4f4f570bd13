package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"docutrail/internal/audit"
	"docutrail/internal/directory"
	"docutrail/internal/documents"
	"docutrail/internal/metrics"
)

// Create registers a new document. Internal documents start as drafts;
// external documents are stamped as logged and enter review immediately,
// alerting the department heads of the creator's department.
func (e *engine) Create(ctx context.Context, actor *directory.Actor, cmd CreateCommand) (doc *documents.Document, err error) {
	defer func() { e.instrument("create", err) }()

	if cmd.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if _, parseErr := documents.ParseSource(string(cmd.Source)); parseErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, parseErr)
	}
	if actor.DepartmentID == nil {
		return nil, fmt.Errorf("%w: creator must belong to a department", ErrValidation)
	}

	classification := cmd.Classification
	if classification == "" {
		classification = documents.ClassificationInternal
	}
	if _, parseErr := documents.ParseClassification(string(classification)); parseErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, parseErr)
	}

	var sent int
	err = e.tx.RunInTx(ctx, func(stores Stores) error {
		sent = 0
		seq, seqErr := stores.Documents().NextRefSequence(ctx)
		if seqErr != nil {
			return seqErr
		}

		creatorID := actor.ID
		d := documents.Document{
			ID:                  uuid.New(),
			ReferenceNumber:     documents.FormatReference(time.Now().UTC().Year(), seq),
			Title:               cmd.Title,
			Description:         cmd.Description,
			Source:              cmd.Source,
			Classification:      classification,
			Status:              documents.StatusDraft,
			CorrespondentName:   cmd.CorrespondentName,
			CorrespondentAgency: cmd.CorrespondentAgency,
			CreatedBy:           &creatorID,
			OriginDepartmentID:  *actor.DepartmentID,
			CurrentDepartmentID: *actor.DepartmentID,
		}

		if cmd.Attachment != nil {
			d.AttachmentName = &cmd.Attachment.Name
			d.AttachmentKey = &cmd.Attachment.Key
			d.ContentType = &cmd.Attachment.ContentType
			d.SizeBytes = &cmd.Attachment.SizeBytes
			d.PageCount = cmd.Attachment.PageCount
		}

		if cmd.Source == documents.SourceExternal {
			now := time.Now().UTC()
			d.Status = documents.StatusPendingReview
			d.LoggedAt = &now
		}

		if insertErr := stores.Documents().Insert(ctx, &d); insertErr != nil {
			return insertErr
		}

		notes := fmt.Sprintf("Document created by %s", actor.DisplayName())
		if auditErr := appendAudit(ctx, stores, d.ID, actor, audit.ActionCreated, notes); auditErr != nil {
			return auditErr
		}

		if cmd.Source == documents.SourceExternal {
			notes := fmt.Sprintf("External document logged by %s", actor.DisplayName())
			if auditErr := appendAudit(ctx, stores, d.ID, actor, audit.ActionLogged, notes); auditErr != nil {
				return auditErr
			}

			message := fmt.Sprintf("Incoming document %s has been logged and requires review", d.ReferenceNumber)
			n, notifyErr := notifyDeptHeads(ctx, stores, d.CurrentDepartmentID, d.ID, message)
			if notifyErr != nil {
				return notifyErr
			}
			sent = n
		}

		doc = &d
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.DocumentsCreated.Inc()
	recordNotifications(sent)
	e.logger.Info("document created",
		"document_id", doc.ID,
		"reference", doc.ReferenceNumber,
		"source", doc.Source,
	)
	return doc, nil
}
