package workflow

import (
	"context"
	"fmt"

	"docutrail/internal/audit"
	"docutrail/internal/directory"
	"docutrail/internal/documents"
)

// ESign electronically signs an approved document, optionally attaching a
// stored signature image. Signing any other state fails with
// ErrInvalidTransition.
func (e *engine) ESign(ctx context.Context, actor *directory.Actor, cmd ESignCommand) (doc *documents.Document, err error) {
	defer func() { e.instrument("esign", err) }()

	if roleErr := requireRole(actor, esignRoles); roleErr != nil {
		return nil, roleErr
	}

	err = e.tx.RunInTx(ctx, func(stores Stores) error {
		d, findErr := stores.Documents().FindForUpdate(ctx, cmd.DocumentID)
		if findErr != nil {
			return findErr
		}

		if d.Status != documents.StatusApproved {
			return fmt.Errorf("%w: document must be approved before signing, status is %s", ErrInvalidTransition, d.Status)
		}

		if cmd.SignatureKey != nil {
			d.SignatureKey = cmd.SignatureKey
		}
		d.Status = documents.StatusESigned
		if updateErr := stores.Documents().Update(ctx, d); updateErr != nil {
			return updateErr
		}

		notes := fmt.Sprintf("Electronically signed by %s", actor.DisplayName())
		if cmd.Notes != "" {
			notes += ": " + cmd.Notes
		}
		if auditErr := appendAudit(ctx, stores, d.ID, actor, audit.ActionESigned, notes); auditErr != nil {
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
