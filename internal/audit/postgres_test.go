package audit_test

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"docutrail/internal/audit"
)

var errRecorderStop = errors.New("recorder stop")

// recordingDB captures issued SQL so query shape can be asserted without a
// live database.
type recordingDB struct {
	queries []string
}

func (r *recordingDB) QueryContext(_ context.Context, query string, _ ...any) (*sql.Rows, error) {
	r.queries = append(r.queries, query)
	return nil, errRecorderStop
}

func (r *recordingDB) QueryRowContext(_ context.Context, query string, _ ...any) *sql.Row {
	r.queries = append(r.queries, query)
	return nil
}

func (r *recordingDB) ExecContext(_ context.Context, query string, _ ...any) (sql.Result, error) {
	r.queries = append(r.queries, query)
	return nil, errRecorderStop
}

func TestListForDocumentOrdersByInsertSequence(t *testing.T) {
	db := &recordingDB{}
	store := audit.NewPostgresStore(db)

	_, err := store.ListForDocument(context.Background(), uuid.New())
	if !errors.Is(err, errRecorderStop) {
		t.Fatalf("error = %v, want recorder stop", err)
	}
	if len(db.queries) != 1 {
		t.Fatalf("issued %d queries, want 1", len(db.queries))
	}

	q := db.queries[0]
	// Entries appended inside one transaction share created_at, so the
	// listing must order by the monotonic insert sequence instead.
	if !strings.Contains(q, "ORDER BY seq DESC") {
		t.Errorf("query %q does not order by seq", q)
	}
	if strings.Contains(q, "ORDER BY created_at") {
		t.Errorf("query %q orders by the transaction timestamp", q)
	}
}
