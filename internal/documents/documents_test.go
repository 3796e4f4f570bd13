package documents_test

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"docutrail/internal/documents"
	"docutrail/pkg/pagination"
)

func TestFormatReference(t *testing.T) {
	tests := []struct {
		year int
		seq  int64
		want string
	}{
		{2026, 1, "DOC-2026-00001"},
		{2026, 42, "DOC-2026-00042"},
		{2030, 99999, "DOC-2030-99999"},
		{2030, 123456, "DOC-2030-123456"},
	}

	for _, tt := range tests {
		if got := documents.FormatReference(tt.year, tt.seq); got != tt.want {
			t.Errorf("FormatReference(%d, %d) = %s, want %s", tt.year, tt.seq, got, tt.want)
		}
	}
}

func TestValidReference(t *testing.T) {
	valid := []string{"DOC-2026-00001", "DOC-1999-54321"}
	invalid := []string{"", "DOC-26-00001", "doc-2026-00001", "DOC-2026-1", "MEMO-2026-00001"}

	for _, s := range valid {
		if !documents.ValidReference(s) {
			t.Errorf("ValidReference(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if documents.ValidReference(s) {
			t.Errorf("ValidReference(%q) = true, want false", s)
		}
	}
}

func TestParseEnums(t *testing.T) {
	if _, err := documents.ParseSource("external"); err != nil {
		t.Errorf("ParseSource(external): %v", err)
	}
	if _, err := documents.ParseSource("fax"); err == nil {
		t.Error("ParseSource(fax) should fail")
	}
	if _, err := documents.ParseClassification("confidential"); err != nil {
		t.Errorf("ParseClassification(confidential): %v", err)
	}
	if _, err := documents.ParseClassification("topsecret"); err == nil {
		t.Error("ParseClassification(topsecret) should fail")
	}
}

func TestMemoryStoreRefSequence(t *testing.T) {
	store := documents.NewMemoryStore()
	ctx := context.Background()

	first, err := store.NextRefSequence(ctx)
	if err != nil {
		t.Fatalf("NextRefSequence: %v", err)
	}
	second, err := store.NextRefSequence(ctx)
	if err != nil {
		t.Fatalf("NextRefSequence: %v", err)
	}
	if second != first+1 {
		t.Errorf("sequence advanced from %d to %d, want +1", first, second)
	}
}

func TestMemoryStoreListFilters(t *testing.T) {
	store := documents.NewMemoryStore()
	ctx := context.Background()

	deptA := uuid.New()
	deptB := uuid.New()
	alice := uuid.New()
	bob := uuid.New()

	seed := []documents.Document{
		{ID: uuid.New(), ReferenceNumber: "DOC-2026-00001", Title: "Budget request", Source: documents.SourceInternal, Classification: documents.ClassificationInternal, Status: documents.StatusDraft, CreatedBy: &alice, OriginDepartmentID: deptA, CurrentDepartmentID: deptA},
		{ID: uuid.New(), ReferenceNumber: "DOC-2026-00002", Title: "Permit appeal", Source: documents.SourceExternal, Classification: documents.ClassificationPublic, Status: documents.StatusPendingReview, CreatedBy: &bob, AssignedTo: &alice, OriginDepartmentID: deptA, CurrentDepartmentID: deptB},
		{ID: uuid.New(), ReferenceNumber: "DOC-2026-00003", Title: "Audit findings", Source: documents.SourceInternal, Classification: documents.ClassificationConfidential, Status: documents.StatusReleased, CreatedBy: &bob, OriginDepartmentID: deptB, CurrentDepartmentID: deptB},
	}
	for i := range seed {
		if err := store.Insert(ctx, &seed[i]); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}

	page := pagination.PageRequest{Page: 1, PageSize: 10}

	tests := []struct {
		name    string
		filters documents.Filters
		want    int
	}{
		{"no filters", documents.Filters{}, 3},
		{"by status", documents.Filters{Status: statusPtr(documents.StatusReleased)}, 1},
		{"by source", documents.Filters{Source: sourcePtr(documents.SourceExternal)}, 1},
		{"visible to alice", documents.Filters{VisibleToActor: &alice}, 2},
		{"visible to dept A", documents.Filters{VisibleToDepartment: &deptA}, 2},
		{"by current department", documents.Filters{DepartmentID: &deptB}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := store.List(ctx, page, tt.filters)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if result.Total != tt.want {
				t.Errorf("total = %d, want %d", result.Total, tt.want)
			}
		})
	}

	t.Run("search", func(t *testing.T) {
		search := "permit"
		result, err := store.List(ctx, pagination.PageRequest{Page: 1, PageSize: 10, Search: &search}, documents.Filters{})
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if result.Total != 1 {
			t.Errorf("total = %d, want 1", result.Total)
		}
	})
}

func TestMemoryStoreDuplicateReference(t *testing.T) {
	store := documents.NewMemoryStore()
	ctx := context.Background()
	dept := uuid.New()

	first := documents.Document{ID: uuid.New(), ReferenceNumber: "DOC-2026-00001", Title: "a", Source: documents.SourceInternal, Status: documents.StatusDraft, OriginDepartmentID: dept, CurrentDepartmentID: dept}
	if err := store.Insert(ctx, &first); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	dup := documents.Document{ID: uuid.New(), ReferenceNumber: "DOC-2026-00001", Title: "b", Source: documents.SourceInternal, Status: documents.StatusDraft, OriginDepartmentID: dept, CurrentDepartmentID: dept}
	if err := store.Insert(ctx, &dup); err != documents.ErrDuplicate {
		t.Errorf("Insert duplicate error = %v, want ErrDuplicate", err)
	}
}

func TestMemoryStoreSnapshot(t *testing.T) {
	store := documents.NewMemoryStore()
	ctx := context.Background()
	dept := uuid.New()

	doc := documents.Document{ID: uuid.New(), ReferenceNumber: "DOC-2026-00001", Title: "a", Source: documents.SourceInternal, Status: documents.StatusDraft, OriginDepartmentID: dept, CurrentDepartmentID: dept}
	if err := store.Insert(ctx, &doc); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	restore := store.Snapshot()

	doc.Status = documents.StatusReleased
	if err := store.Update(ctx, &doc); err != nil {
		t.Fatalf("Update: %v", err)
	}

	restore()

	found, err := store.Find(ctx, doc.ID)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if found.Status != documents.StatusDraft {
		t.Errorf("status after restore = %s, want %s", found.Status, documents.StatusDraft)
	}
}

func statusPtr(s documents.Status) *documents.Status { return &s }

func sourcePtr(s documents.Source) *documents.Source { return &s }
