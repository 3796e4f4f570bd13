package directory

import (
	"context"

	"github.com/google/uuid"

	"docutrail/pkg/repository"
)

const actorColumns = "id, username, full_name, role, department_id"
const departmentColumns = "id, name, code, created_at"

type postgresStore struct {
	db repository.DB
}

// NewPostgresStore creates a directory store over the given database handle.
// The handle may be a connection pool or an open transaction.
func NewPostgresStore(db repository.DB) Store {
	return &postgresStore{db: db}
}

func (s *postgresStore) FindActor(ctx context.Context, id uuid.UUID) (*Actor, error) {
	q := "SELECT " + actorColumns + " FROM actors WHERE id = $1"

	a, err := repository.QueryOne(ctx, s.db, q, []any{id}, scanActor)
	if err != nil {
		return nil, repository.MapError(err, ErrActorNotFound, ErrActorNotFound)
	}
	return &a, nil
}

func (s *postgresStore) FindDepartment(ctx context.Context, id uuid.UUID) (*Department, error) {
	q := "SELECT " + departmentColumns + " FROM departments WHERE id = $1"

	d, err := repository.QueryOne(ctx, s.db, q, []any{id}, scanDepartment)
	if err != nil {
		return nil, repository.MapError(err, ErrDepartmentNotFound, ErrDepartmentNotFound)
	}
	return &d, nil
}

func (s *postgresStore) ActorsWithRole(ctx context.Context, role Role, departmentID *uuid.UUID) ([]Actor, error) {
	q := "SELECT " + actorColumns + " FROM actors WHERE role = $1"
	args := []any{role}

	if departmentID != nil {
		q += " AND department_id = $2"
		args = append(args, *departmentID)
	}

	return repository.QueryMany(ctx, s.db, q+" ORDER BY username", args, scanActor)
}

func (s *postgresStore) ActorsInDepartment(ctx context.Context, departmentID uuid.UUID) ([]Actor, error) {
	q := "SELECT " + actorColumns + " FROM actors WHERE department_id = $1 ORDER BY username"
	return repository.QueryMany(ctx, s.db, q, []any{departmentID}, scanActor)
}

func (s *postgresStore) ListActors(ctx context.Context) ([]Actor, error) {
	q := "SELECT " + actorColumns + " FROM actors ORDER BY role, username"
	return repository.QueryMany(ctx, s.db, q, nil, scanActor)
}

func (s *postgresStore) ListDepartments(ctx context.Context) ([]Department, error) {
	q := "SELECT " + departmentColumns + " FROM departments ORDER BY name"
	return repository.QueryMany(ctx, s.db, q, nil, scanDepartment)
}

func scanActor(s repository.Scanner) (Actor, error) {
	var a Actor
	err := s.Scan(
		&a.ID,
		&a.Username,
		&a.FullName,
		&a.Role,
		&a.DepartmentID,
	)
	return a, err
}

func scanDepartment(s repository.Scanner) (Department, error) {
	var d Department
	err := s.Scan(
		&d.ID,
		&d.Name,
		&d.Code,
		&d.CreatedAt,
	)
	return d, err
}
