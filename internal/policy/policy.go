package policy

import (
	"hospital-management-api/internal/domain/entity"

	"github.com/google/uuid"
)

// Caller is the identity resolved from the bearer token on a request.
type Caller struct {
	UserID uuid.UUID
	Role   entity.Role
}

// IsAdmin checks if the caller has the admin role
func (c Caller) IsAdmin() bool {
	return c.Role == entity.RoleAdmin
}

// IsDoctor checks if the caller has the doctor role
func (c Caller) IsDoctor() bool {
	return c.Role == entity.RoleDoctor
}

// IsPatient checks if the caller has the patient role
func (c Caller) IsPatient() bool {
	return c.Role == entity.RolePatient
}

// Allows is the single resource-access rule used by every protected action:
// admins always pass; otherwise the caller must be the owning patient's user
// or the assigned professional's user. Nil means the resource has no owner or
// professional on that side.
func Allows(caller Caller, ownerUserID, professionalUserID *uuid.UUID) bool {
	if caller.IsAdmin() {
		return true
	}
	if ownerUserID != nil && caller.UserID == *ownerUserID {
		return true
	}
	if professionalUserID != nil && caller.UserID == *professionalUserID {
		return true
	}
	return false
}
