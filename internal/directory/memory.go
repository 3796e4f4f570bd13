package directory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore keeps actors and departments in memory for tests and local development.
type MemoryStore struct {
	mu          sync.RWMutex
	actors      map[uuid.UUID]Actor
	departments map[uuid.UUID]Department
}

// NewMemoryStore creates an empty in-memory directory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		actors:      make(map[uuid.UUID]Actor),
		departments: make(map[uuid.UUID]Department),
	}
}

// AddActor seeds an actor. Returns the stored value for convenience.
func (s *MemoryStore) AddActor(a Actor) Actor {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	s.actors[a.ID] = a
	return a
}

// AddDepartment seeds a department. Returns the stored value for convenience.
func (s *MemoryStore) AddDepartment(d Department) Department {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	s.departments[d.ID] = d
	return d
}

func (s *MemoryStore) FindActor(_ context.Context, id uuid.UUID) (*Actor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if a, ok := s.actors[id]; ok {
		return &a, nil
	}
	return nil, ErrActorNotFound
}

func (s *MemoryStore) FindDepartment(_ context.Context, id uuid.UUID) (*Department, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if d, ok := s.departments[id]; ok {
		return &d, nil
	}
	return nil, ErrDepartmentNotFound
}

func (s *MemoryStore) ActorsWithRole(_ context.Context, role Role, departmentID *uuid.UUID) ([]Actor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]Actor, 0)
	for _, a := range s.actors {
		if a.Role != role {
			continue
		}
		if departmentID != nil {
			if a.DepartmentID == nil || *a.DepartmentID != *departmentID {
				continue
			}
		}
		matches = append(matches, a)
	}

	sortActors(matches)
	return matches, nil
}

func (s *MemoryStore) ActorsInDepartment(_ context.Context, departmentID uuid.UUID) ([]Actor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]Actor, 0)
	for _, a := range s.actors {
		if a.DepartmentID != nil && *a.DepartmentID == departmentID {
			matches = append(matches, a)
		}
	}

	sortActors(matches)
	return matches, nil
}

func (s *MemoryStore) ListActors(_ context.Context) ([]Actor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	actors := make([]Actor, 0, len(s.actors))
	for _, a := range s.actors {
		actors = append(actors, a)
	}

	sortActors(actors)
	return actors, nil
}

func (s *MemoryStore) ListDepartments(_ context.Context) ([]Department, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	departments := make([]Department, 0, len(s.departments))
	for _, d := range s.departments {
		departments = append(departments, d)
	}

	sort.Slice(departments, func(i, j int) bool {
		return departments[i].Name < departments[j].Name
	})
	return departments, nil
}

func sortActors(actors []Actor) {
	sort.Slice(actors, func(i, j int) bool {
		return actors[i].Username < actors[j].Username
	})
}
