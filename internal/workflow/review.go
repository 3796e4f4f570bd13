package workflow

import (
	"context"
	"fmt"

	"docutrail/internal/audit"
	"docutrail/internal/directory"
	"docutrail/internal/documents"
)

// Review records a reviewer's decision. Approval moves the document to the
// approved state, from which a separate ESign call completes signing.
// Rejection sends it back for revision and alerts the assignee if one is
// set.
func (e *engine) Review(ctx context.Context, actor *directory.Actor, cmd ReviewCommand) (doc *documents.Document, err error) {
	defer func() { e.instrument("review", err) }()

	if roleErr := requireRole(actor, reviewRoles); roleErr != nil {
		return nil, roleErr
	}
	if cmd.Decision != ReviewApprove && cmd.Decision != ReviewReject {
		return nil, fmt.Errorf("%w: review requires an approve or reject decision", ErrInvalidTransition)
	}

	var sent int
	err = e.tx.RunInTx(ctx, func(stores Stores) error {
		sent = 0
		d, findErr := stores.Documents().FindForUpdate(ctx, cmd.DocumentID)
		if findErr != nil {
			return findErr
		}

		switch cmd.Decision {
		case ReviewApprove:
			d.Status = documents.StatusApproved
			if updateErr := stores.Documents().Update(ctx, d); updateErr != nil {
				return updateErr
			}

			notes := fmt.Sprintf("Approved by %s", actor.DisplayName())
			if cmd.Notes != "" {
				notes += ": " + cmd.Notes
			}
			if auditErr := appendAudit(ctx, stores, d.ID, actor, audit.ActionApproved, notes); auditErr != nil {
				return auditErr
			}

		case ReviewReject:
			d.Status = documents.StatusReturnForRevision
			if updateErr := stores.Documents().Update(ctx, d); updateErr != nil {
				return updateErr
			}

			notes := fmt.Sprintf("Returned for revision by %s", actor.DisplayName())
			if cmd.Notes != "" {
				notes += ": " + cmd.Notes
			}
			if auditErr := appendAudit(ctx, stores, d.ID, actor, audit.ActionRevision, notes); auditErr != nil {
				return auditErr
			}

			if d.AssignedTo != nil {
				message := fmt.Sprintf("Document %s was returned for revision", d.ReferenceNumber)
				if notifyErr := notifyActor(ctx, stores, *d.AssignedTo, d.ID, message); notifyErr != nil {
					return notifyErr
				}
				sent = 1
			}
		}

		doc = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	recordNotifications(sent)
	return doc, nil
}
