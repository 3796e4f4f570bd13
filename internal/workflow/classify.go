package workflow

import (
	"context"
	"fmt"

	"docutrail/internal/audit"
	"docutrail/internal/directory"
	"docutrail/internal/documents"
)

// Classify sets a document's classification level and alerts the current
// department's heads that the document awaits assignment. Status is not
// changed.
func (e *engine) Classify(ctx context.Context, actor *directory.Actor, cmd ClassifyCommand) (doc *documents.Document, err error) {
	defer func() { e.instrument("classify", err) }()

	if roleErr := requireRole(actor, classifyRoles); roleErr != nil {
		return nil, roleErr
	}
	if _, parseErr := documents.ParseClassification(string(cmd.Classification)); parseErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, parseErr)
	}

	var sent int
	err = e.tx.RunInTx(ctx, func(stores Stores) error {
		sent = 0
		d, findErr := stores.Documents().FindForUpdate(ctx, cmd.DocumentID)
		if findErr != nil {
			return findErr
		}

		d.Classification = cmd.Classification
		if updateErr := stores.Documents().Update(ctx, d); updateErr != nil {
			return updateErr
		}

		notes := fmt.Sprintf("Classified as %s by %s", cmd.Classification, actor.DisplayName())
		if auditErr := appendAudit(ctx, stores, d.ID, actor, audit.ActionClassified, notes); auditErr != nil {
			return auditErr
		}

		message := fmt.Sprintf("Document %s has been classified and requires assignment", d.ReferenceNumber)
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
