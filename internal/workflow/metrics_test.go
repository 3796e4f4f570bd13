package workflow_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"docutrail/internal/documents"
	"docutrail/internal/metrics"
	"docutrail/internal/workflow"
)

var errCommitFailed = errors.New("commit failed")

// commitFailTx runs the operation to completion and then fails the
// transaction, so every staged side effect is rolled back.
type commitFailTx struct {
	inner *workflow.MemoryTx
}

func (c *commitFailTx) RunInTx(ctx context.Context, fn func(workflow.Stores) error) error {
	return c.inner.RunInTx(ctx, func(stores workflow.Stores) error {
		if err := fn(stores); err != nil {
			return err
		}
		return errCommitFailed
	})
}

func TestCountersIgnoreRolledBackTransaction(t *testing.T) {
	h := newHarness(t)
	failing := workflow.New(&commitFailTx{inner: h.tx}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	sentBefore := testutil.ToFloat64(metrics.NotificationsSent)
	createdBefore := testutil.ToFloat64(metrics.DocumentsCreated)

	cmd := workflow.CreateCommand{
		Title:  "Incoming petition",
		Source: documents.SourceExternal,
	}
	if _, err := failing.Create(ctx, &h.clerk, cmd); !errors.Is(err, errCommitFailed) {
		t.Fatalf("Create error = %v, want commit failure", err)
	}

	if got := testutil.ToFloat64(metrics.NotificationsSent); got != sentBefore {
		t.Errorf("notifications counter moved by %v on a rolled back transaction", got-sentBefore)
	}
	if got := testutil.ToFloat64(metrics.DocumentsCreated); got != createdBefore {
		t.Errorf("created counter moved by %v on a rolled back transaction", got-createdBefore)
	}
	if got := h.unread(t, h.headRec.ID); got != 0 {
		t.Errorf("dept head unread = %d after rollback, want 0", got)
	}

	sentBefore = testutil.ToFloat64(metrics.NotificationsSent)
	if _, err := h.engine.Create(ctx, &h.clerk, cmd); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got := testutil.ToFloat64(metrics.NotificationsSent); got != sentBefore+1 {
		t.Errorf("notifications counter delta = %v, want 1", got-sentBefore)
	}
}
