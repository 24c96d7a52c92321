package domain

import "github.com/google/uuid"

// Role identifies the caller's function as resolved by the external
// identity gate. The engine never authenticates; it only checks
// capabilities of an already-resolved actor against the target record.
type Role string

const (
	RoleAdmin       Role = "ADMIN"
	RoleSecretariat Role = "SEC"
	RoleTeacher     Role = "CD"
	RoleGroupLeader Role = "SG"
	RoleStudent     Role = "STUDENT"
)

// IsValid checks if the role is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleSecretariat, RoleTeacher, RoleGroupLeader, RoleStudent:
		return true
	default:
		return false
	}
}

// Actor is the resolved caller of an engine operation: a role plus the
// identity bindings the guards need (teacher id for CD, group for SG).
type Actor struct {
	ID           uuid.UUID
	Role         Role
	StudentGroup string
}

// canManage reports whether the actor holds one of the administrative
// roles allowed to create, cancel, and re-room assignments.
func (a Actor) canManage() bool {
	return a.Role == RoleSecretariat || a.Role == RoleAdmin
}
