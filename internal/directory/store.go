package directory

import (
	"context"

	"github.com/google/uuid"
)

// Store defines the read-only lookups the directory exposes.
type Store interface {
	FindActor(ctx context.Context, id uuid.UUID) (*Actor, error)
	FindDepartment(ctx context.Context, id uuid.UUID) (*Department, error)

	// ActorsWithRole returns actors holding the given role, optionally
	// restricted to a department.
	ActorsWithRole(ctx context.Context, role Role, departmentID *uuid.UUID) ([]Actor, error)

	// ActorsInDepartment returns every actor assigned to the department,
	// regardless of role.
	ActorsInDepartment(ctx context.Context, departmentID uuid.UUID) ([]Actor, error)

	ListActors(ctx context.Context) ([]Actor, error)
	ListDepartments(ctx context.Context) ([]Department, error)
}
