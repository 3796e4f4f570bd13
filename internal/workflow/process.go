package workflow

import (
	"context"
	"fmt"

	"docutrail/internal/audit"
	"docutrail/internal/directory"
	"docutrail/internal/documents"
)

// Process appends a processing note to the document's description and
// alerts the current department's heads that it is ready for review.
// Any authenticated actor may process; in practice this is the assignee.
func (e *engine) Process(ctx context.Context, actor *directory.Actor, cmd ProcessCommand) (doc *documents.Document, err error) {
	defer func() { e.instrument("process", err) }()

	if cmd.Notes == "" {
		return nil, fmt.Errorf("%w: processing notes are required", ErrValidation)
	}

	var sent int
	err = e.tx.RunInTx(ctx, func(stores Stores) error {
		sent = 0
		d, findErr := stores.Documents().FindForUpdate(ctx, cmd.DocumentID)
		if findErr != nil {
			return findErr
		}

		d.Description += fmt.Sprintf("\n[Processed by %s]: %s", actor.DisplayName(), cmd.Notes)
		d.Status = documents.StatusPendingReview
		if updateErr := stores.Documents().Update(ctx, d); updateErr != nil {
			return updateErr
		}

		if auditErr := appendAudit(ctx, stores, d.ID, actor, audit.ActionProcessed, cmd.Notes); auditErr != nil {
			return auditErr
		}

		message := fmt.Sprintf("Document %s has been processed and requires review", d.ReferenceNumber)
		n, notifyErr := notifyDeptHeads(ctx, stores, d.CurrentDepartmentID, d.ID, message)
		if notifyErr != nil {
			return notifyErr
		}
		sent = n

		doc = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	recordNotifications(sent)
	return doc, nil
}
