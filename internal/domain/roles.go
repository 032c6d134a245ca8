package domain

const (
	RoleFaculty = "FACULTY"
	RoleHOD     = "HOD"
	RoleAdmin   = "ADMIN"
)

// IsApprover reports whether the role may decide leave requests and force
// substitute assignments.
func IsApprover(role string) bool {
	return role == RoleHOD || role == RoleAdmin
}
