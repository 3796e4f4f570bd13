package workflow

import "docutrail/internal/directory"

// Role gates per operation. Create, Process, and Notify accept any
// authenticated actor and have no gate here.
var (
	classifyRoles = []directory.Role{
		directory.RoleSuperAdmin,
		directory.RoleDeptHead,
	}

	assignRoles = []directory.Role{
		directory.RoleSuperAdmin,
		directory.RoleDeptHead,
	}

	reviewRoles = []directory.Role{
		directory.RoleSuperAdmin,
		directory.RoleDeptHead,
		directory.RoleGovernor,
		directory.RoleExecutive,
	}

	esignRoles = reviewRoles

	routeRoles = reviewRoles

	// Roles eligible to receive an assignment.
	assignableRoles = []directory.Role{
		directory.RoleDeptSenderReceiver,
		directory.RoleExecutive,
	}
)

// requireRole fails with ErrUnauthorized unless the actor holds one of the
// allowed roles. An empty allow list admits every actor.
func requireRole(actor *directory.Actor, allowed []directory.Role) error {
	if len(allowed) == 0 {
		return nil
	}
	for _, role := range allowed {
		if actor.Role == role {
			return nil
		}
	}
	return ErrUnauthorized
}

func roleAssignable(role directory.Role) bool {
	for _, r := range assignableRoles {
		if role == r {
			return true
		}
	}
	return false
}
