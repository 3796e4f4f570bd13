package workflow

import (
	"context"
	"fmt"

	"docutrail/internal/audit"
	"docutrail/internal/directory"
	"docutrail/internal/documents"
)

// Assign designates the actor responsible for processing a document and
// moves it into review. The assignee must hold a role eligible to receive
// assignments.
func (e *engine) Assign(ctx context.Context, actor *directory.Actor, cmd AssignCommand) (doc *documents.Document, err error) {
	defer func() { e.instrument("assign", err) }()

	if roleErr := requireRole(actor, assignRoles); roleErr != nil {
		return nil, roleErr
	}

	var sent int
	err = e.tx.RunInTx(ctx, func(stores Stores) error {
		sent = 0
		d, findErr := stores.Documents().FindForUpdate(ctx, cmd.DocumentID)
		if findErr != nil {
			return findErr
		}

		assignee, findErr := stores.Directory().FindActor(ctx, cmd.AssigneeID)
		if findErr != nil {
			return findErr
		}
		if !roleAssignable(assignee.Role) {
			return fmt.Errorf("%w: actor %s cannot receive assignments", ErrInvalidTransition, assignee.Username)
		}

		assigneeID := assignee.ID
		d.AssignedTo = &assigneeID
		d.Status = documents.StatusPendingReview
		if updateErr := stores.Documents().Update(ctx, d); updateErr != nil {
			return updateErr
		}

		notes := fmt.Sprintf("Assigned to %s by %s", assignee.DisplayName(), actor.DisplayName())
		if auditErr := appendAudit(ctx, stores, d.ID, actor, audit.ActionAssigned, notes); auditErr != nil {
			return auditErr
		}

		message := fmt.Sprintf("Document %s has been assigned to you for processing", d.ReferenceNumber)
		if notifyErr := notifyActor(ctx, stores, assignee.ID, d.ID, message); notifyErr != nil {
			return notifyErr
		}
		sent = 1

		doc = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	recordNotifications(sent)
	return doc, nil
}
