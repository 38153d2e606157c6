package constants

import "fmt"

// Canonical role values, stored on users and carried in token claims.
const (
	RoleStudent     = "STUDENT"
	RoleInstructor  = "INSTRUCTOR"
	RoleAdmin       = "ADMIN"
	RoleTenantOwner = "TENANT_OWNER"
)

const DefaultRole = RoleStudent

// Role error message templates
const (
	ErrOnlyInstructorsCanAccess = "Only instructors, admins, or tenant owners may access %s."
	ErrOnlyAdminsCanAccess      = "Only admins may access %s."
	ErrOnlyOwnersCanAccess      = "Only tenant owners or admins may access %s."
)

func RoleErrorInstructor(feature string) string {
	return fmt.Sprintf(ErrOnlyInstructorsCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorOwner(feature string) string {
	return fmt.Sprintf(ErrOnlyOwnersCanAccess, feature)
}

// ==========================
// Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleStudent,
		RoleInstructor,
		RoleAdmin,
		RoleTenantOwner,
	}

	InstructorAndAbove = []string{
		RoleInstructor,
		RoleAdmin,
		RoleTenantOwner,
	}

	OwnerAndAdmin = []string{
		RoleTenantOwner,
		RoleAdmin,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)

func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
