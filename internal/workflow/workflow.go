// Package workflow implements the document workflow engine: the state
// machine governing status transitions, role-gated actions, routing
// history, and the audit and notification side effects each transition
// produces. Every operation runs inside a single transaction; on failure
// no partial effect persists.
package workflow

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"docutrail/internal/audit"
	"docutrail/internal/directory"
	"docutrail/internal/documents"
	"docutrail/internal/metrics"
	"docutrail/internal/notifications"
	"docutrail/pkg/storage"
)

// System defines the public contract for the workflow engine. Every
// operation validates the acting actor's role, applies the transition, and
// returns the document's new state.
type System interface {
	Create(ctx context.Context, actor *directory.Actor, cmd CreateCommand) (*documents.Document, error)
	Classify(ctx context.Context, actor *directory.Actor, cmd ClassifyCommand) (*documents.Document, error)
	Assign(ctx context.Context, actor *directory.Actor, cmd AssignCommand) (*documents.Document, error)
	Process(ctx context.Context, actor *directory.Actor, cmd ProcessCommand) (*documents.Document, error)
	Review(ctx context.Context, actor *directory.Actor, cmd ReviewCommand) (*documents.Document, error)
	ESign(ctx context.Context, actor *directory.Actor, cmd ESignCommand) (*documents.Document, error)
	Route(ctx context.Context, actor *directory.Actor, cmd RouteCommand) (*documents.Document, error)
	Notify(ctx context.Context, actor *directory.Actor, cmd NotifyCommand) (*documents.Document, error)

	Handler(blobs storage.System, maxUploadBytes int64) *Handler
}

type engine struct {
	tx     Tx
	logger *slog.Logger
}

// New creates a workflow engine over the given transaction runner.
func New(tx Tx, logger *slog.Logger) System {
	return &engine{
		tx:     tx,
		logger: logger.With("system", "workflow"),
	}
}

func (e *engine) Handler(blobs storage.System, maxUploadBytes int64) *Handler {
	return NewHandler(e, blobs, maxUploadBytes, e.logger)
}

func (e *engine) instrument(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.Transitions.WithLabelValues(operation, outcome).Inc()
}

func appendAudit(ctx context.Context, stores Stores, documentID uuid.UUID, actor *directory.Actor, action audit.Action, notes string) error {
	entry := audit.Entry{
		ID:         uuid.New(),
		DocumentID: documentID,
		Action:     action,
		Notes:      notes,
	}
	if actor != nil {
		actorID := actor.ID
		entry.ActorID = &actorID
	}
	return stores.Audit().Append(ctx, &entry)
}

// notifyActor inserts a notification; the sent counter is incremented by the
// calling operation only after its transaction commits.
func notifyActor(ctx context.Context, stores Stores, recipientID, documentID uuid.UUID, message string) error {
	n := notifications.Notification{
		ID:          uuid.New(),
		RecipientID: recipientID,
		DocumentID:  &documentID,
		Message:     message,
	}
	return stores.Notifications().Insert(ctx, &n)
}

// notifyDeptHeads notifies every head of the department and returns how many
// notifications were written.
func notifyDeptHeads(ctx context.Context, stores Stores, departmentID, documentID uuid.UUID, message string) (int, error) {
	heads, err := stores.Directory().ActorsWithRole(ctx, directory.RoleDeptHead, &departmentID)
	if err != nil {
		return 0, err
	}
	for _, head := range heads {
		if err := notifyActor(ctx, stores, head.ID, documentID, message); err != nil {
			return 0, err
		}
	}
	return len(heads), nil
}

// recordNotifications counts dispatched notifications after the enclosing
// transaction has committed.
func recordNotifications(sent int) {
	if sent > 0 {
		metrics.NotificationsSent.Add(float64(sent))
	}
}
