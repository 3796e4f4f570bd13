package workflow

import (
	"context"
	"fmt"

	"docutrail/internal/audit"
	"docutrail/internal/directory"
	"docutrail/internal/documents"
)

// Notify confirms that interested parties were informed of a finalized
// document and seals it in the archive. Archival deliberately requires this
// explicit confirmation rather than happening automatically on release or
// return.
func (e *engine) Notify(ctx context.Context, actor *directory.Actor, cmd NotifyCommand) (doc *documents.Document, err error) {
	defer func() { e.instrument("notify", err) }()

	err = e.tx.RunInTx(ctx, func(stores Stores) error {
		d, findErr := stores.Documents().FindForUpdate(ctx, cmd.DocumentID)
		if findErr != nil {
			return findErr
		}

		d.Status = documents.StatusArchived
		if updateErr := stores.Documents().Update(ctx, d); updateErr != nil {
			return updateErr
		}

		notes := fmt.Sprintf("Parties notified by %s", actor.DisplayName())
		if cmd.Notes != "" {
			notes += ": " + cmd.Notes
		}
		if auditErr := appendAudit(ctx, stores, d.ID, actor, audit.ActionNotified, notes); auditErr != nil {
			return auditErr
		}
		if auditErr := appendAudit(ctx, stores, d.ID, actor, audit.ActionArchived, "Document archived"); auditErr != nil {
			return auditErr
		}

		doc = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	return doc, nil
}
