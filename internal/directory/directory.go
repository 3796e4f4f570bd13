// Package directory implements the actor directory: users with roles and
// department membership, and the departments themselves. The workflow engine
// reads from it to resolve recipients and validate references; it never
// writes through it.
package directory

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Role identifies an actor's authority within the document workflow.
type Role string

// Workflow roles. The string values are persisted and must remain stable.
const (
	RoleSuperAdmin         Role = "super_admin"
	RoleDeptSenderReceiver Role = "dept_sender_receiver"
	RoleDeptHead           Role = "dept_head"
	RoleGovernor           Role = "governor"
	RoleExecutive          Role = "executive"
)

var roles = []Role{
	RoleSuperAdmin,
	RoleDeptSenderReceiver,
	RoleDeptHead,
	RoleGovernor,
	RoleExecutive,
}

// ParseRole validates a role string.
func ParseRole(s string) (Role, error) {
	for _, r := range roles {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role: %q", s)
}

// Department is an organizational unit documents are routed between.
type Department struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
}

// Actor is an authenticated user with a role and optional department.
type Actor struct {
	ID           uuid.UUID  `json:"id"`
	Username     string     `json:"username"`
	FullName     string     `json:"full_name"`
	Role         Role       `json:"role"`
	DepartmentID *uuid.UUID `json:"department_id,omitempty"`
}

// DisplayName returns the actor's full name, falling back to the username.
func (a Actor) DisplayName() string {
	if a.FullName != "" {
		return a.FullName
	}
	return a.Username
}
