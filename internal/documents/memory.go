package documents

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"docutrail/pkg/pagination"
)

// MemoryStore keeps documents in memory for tests and local development.
type MemoryStore struct {
	mu     sync.RWMutex
	docs   map[uuid.UUID]Document
	refSeq int64
}

// NewMemoryStore creates an empty in-memory document store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[uuid.UUID]Document)}
}

// Snapshot captures the current store contents and returns a closure that
// restores them, used to roll back simulated transactions.
func (s *MemoryStore) Snapshot() func() {
	s.mu.RLock()
	docs := make(map[uuid.UUID]Document, len(s.docs))
	for id, d := range s.docs {
		docs[id] = d
	}
	seq := s.refSeq
	s.mu.RUnlock()

	return func() {
		s.mu.Lock()
		s.docs = docs
		s.refSeq = seq
		s.mu.Unlock()
	}
}

func (s *MemoryStore) Find(_ context.Context, id uuid.UUID) (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if d, ok := s.docs[id]; ok {
		return &d, nil
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) FindForUpdate(ctx context.Context, id uuid.UUID) (*Document, error) {
	return s.Find(ctx, id)
}

func (s *MemoryStore) Insert(_ context.Context, doc *Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.docs {
		if existing.ReferenceNumber == doc.ReferenceNumber {
			return ErrDuplicate
		}
	}

	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now
	s.docs[doc.ID] = *doc
	return nil
}

func (s *MemoryStore) Update(_ context.Context, doc *Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[doc.ID]; !ok {
		return ErrNotFound
	}

	doc.UpdatedAt = time.Now().UTC()
	s.docs[doc.ID] = *doc
	return nil
}

func (s *MemoryStore) NextRefSequence(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refSeq++
	return s.refSeq, nil
}

func (s *MemoryStore) List(_ context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Document], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]Document, 0)
	for _, d := range s.docs {
		if matchesFilters(d, filters, page.Search) {
			matches = append(matches, d)
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})

	total := len(matches)
	start := page.Offset()
	if start > total {
		start = total
	}
	end := start + page.PageSize
	if end > total || page.PageSize < 1 {
		end = total
	}

	result := pagination.NewPageResult(matches[start:end], total, page.Page, page.PageSize)
	return &result, nil
}

func matchesFilters(d Document, f Filters, search *string) bool {
	if f.Status != nil && d.Status != *f.Status {
		return false
	}
	if f.Source != nil && d.Source != *f.Source {
		return false
	}
	if f.Classification != nil && d.Classification != *f.Classification {
		return false
	}
	if f.ReferenceNumber != nil && d.ReferenceNumber != *f.ReferenceNumber {
		return false
	}
	if f.CreatedBy != nil && (d.CreatedBy == nil || *d.CreatedBy != *f.CreatedBy) {
		return false
	}
	if f.AssignedTo != nil && (d.AssignedTo == nil || *d.AssignedTo != *f.AssignedTo) {
		return false
	}
	if f.DepartmentID != nil && d.CurrentDepartmentID != *f.DepartmentID {
		return false
	}

	if f.VisibleToActor != nil {
		created := d.CreatedBy != nil && *d.CreatedBy == *f.VisibleToActor
		assigned := d.AssignedTo != nil && *d.AssignedTo == *f.VisibleToActor
		if !created && !assigned {
			return false
		}
	}
	if f.VisibleToDepartment != nil {
		if d.CurrentDepartmentID != *f.VisibleToDepartment && d.OriginDepartmentID != *f.VisibleToDepartment {
			return false
		}
	}

	if search != nil && *search != "" {
		needle := strings.ToLower(*search)
		haystack := strings.ToLower(strings.Join([]string{
			d.Title, d.ReferenceNumber, d.CorrespondentName, d.CorrespondentAgency,
		}, "\n"))
		if !strings.Contains(haystack, needle) {
			return false
		}
	}

	return true
}
