package workflow

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"docutrail/internal/audit"
	"docutrail/internal/directory"
	"docutrail/internal/documents"
	"docutrail/internal/routing"
)

// Route executes one of the mutually exclusive routing sub-actions:
// forwarding to another department, releasing to the correspondent,
// returning to the origin department, or releasing to an external agency.
// Release and return leave the document awaiting a final Notify call.
func (e *engine) Route(ctx context.Context, actor *directory.Actor, cmd RouteCommand) (doc *documents.Document, err error) {
	defer func() { e.instrument("route", err) }()

	if roleErr := requireRole(actor, routeRoles); roleErr != nil {
		return nil, roleErr
	}

	var sent int
	err = e.tx.RunInTx(ctx, func(stores Stores) error {
		sent = 0
		d, findErr := stores.Documents().FindForUpdate(ctx, cmd.DocumentID)
		if findErr != nil {
			return findErr
		}

		switch cmd.Action {
		case RouteForward:
			n, fwdErr := e.forward(ctx, stores, actor, d, cmd)
			if fwdErr != nil {
				return fwdErr
			}
			sent = n

		case RouteReleaseCorrespondent:
			d.Status = documents.StatusReleased
			if updateErr := stores.Documents().Update(ctx, d); updateErr != nil {
				return updateErr
			}

			notes := fmt.Sprintf("Released to correspondent by %s", actor.DisplayName())
			if auditErr := appendAudit(ctx, stores, d.ID, actor, audit.ActionReleased, notes); auditErr != nil {
				return auditErr
			}

		case RouteReturnOrigin:
			actionType := documents.ActionTypeReturn
			d.Status = documents.StatusReturned
			d.ActionType = &actionType
			if updateErr := stores.Documents().Update(ctx, d); updateErr != nil {
				return updateErr
			}

			notes := fmt.Sprintf("Returned to origin department by %s", actor.DisplayName())
			if auditErr := appendAudit(ctx, stores, d.ID, actor, audit.ActionReturned, notes); auditErr != nil {
				return auditErr
			}

			staff, listErr := stores.Directory().ActorsInDepartment(ctx, d.OriginDepartmentID)
			if listErr != nil {
				return listErr
			}
			message := fmt.Sprintf("Document %s has been returned to your department", d.ReferenceNumber)
			for _, member := range staff {
				if notifyErr := notifyActor(ctx, stores, member.ID, d.ID, message); notifyErr != nil {
					return notifyErr
				}
			}
			sent = len(staff)

		case RouteReleaseAgency:
			actionType := documents.ActionTypeRelease
			d.Status = documents.StatusReleased
			d.ActionType = &actionType
			if updateErr := stores.Documents().Update(ctx, d); updateErr != nil {
				return updateErr
			}

			notes := fmt.Sprintf("Released to agency by %s", actor.DisplayName())
			if auditErr := appendAudit(ctx, stores, d.ID, actor, audit.ActionReleased, notes); auditErr != nil {
				return auditErr
			}

		default:
			return fmt.Errorf("%w: unknown routing action %q", ErrInvalidTransition, cmd.Action)
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

func (e *engine) forward(ctx context.Context, stores Stores, actor *directory.Actor, d *documents.Document, cmd RouteCommand) (int, error) {
	if cmd.TargetDepartmentID == nil {
		return 0, fmt.Errorf("%w: routing requires a target department", ErrInvalidTransition)
	}
	if *cmd.TargetDepartmentID == d.CurrentDepartmentID {
		return 0, fmt.Errorf("%w: document is already in the target department", ErrInvalidTransition)
	}

	target, findErr := stores.Directory().FindDepartment(ctx, *cmd.TargetDepartmentID)
	if findErr != nil {
		return 0, findErr
	}

	actorID := actor.ID
	rec := routing.Record{
		ID:               uuid.New(),
		DocumentID:       d.ID,
		FromDepartmentID: d.CurrentDepartmentID,
		ToDepartmentID:   target.ID,
		RoutedBy:         &actorID,
		Notes:            cmd.Notes,
	}
	if appendErr := stores.Routing().Append(ctx, &rec); appendErr != nil {
		return 0, appendErr
	}

	d.CurrentDepartmentID = target.ID
	d.Status = documents.StatusPendingReview
	if updateErr := stores.Documents().Update(ctx, d); updateErr != nil {
		return 0, updateErr
	}

	notes := fmt.Sprintf("Routed to %s by %s", target.Name, actor.DisplayName())
	if auditErr := appendAudit(ctx, stores, d.ID, actor, audit.ActionRouted, notes); auditErr != nil {
		return 0, auditErr
	}

	message := fmt.Sprintf("Document %s has been routed to your department", d.ReferenceNumber)
	return notifyDeptHeads(ctx, stores, target.ID, d.ID, message)
}
