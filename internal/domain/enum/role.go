package enum

// Role is a user's role. The stored role decides the permission set.
type Role string

const (
	RoleUser       Role = "user"
	RoleSupervisor Role = "supervisor"
	RoleAdmin      Role = "admin"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleSupervisor, RoleAdmin:
		return true
	}
	return false
}

// Permission names used by route guards.
const (
	PermNewServiceRead       = "new_service.read"
	PermNewServiceWrite      = "new_service.write"
	PermValidateServiceRead  = "validate_service.read"
	PermValidateServiceWrite = "validate_service.write"
	PermAdminRead            = "admin.read"
	PermAdminWrite           = "admin.write"
)

// Permissions returns the permission set granted by the role.
func (r Role) Permissions() []string {
	switch r {
	case RoleAdmin:
		return []string{
			PermNewServiceRead, PermNewServiceWrite,
			PermValidateServiceRead, PermValidateServiceWrite,
			PermAdminRead, PermAdminWrite,
		}
	case RoleSupervisor:
		return []string{
			PermNewServiceRead, PermNewServiceWrite,
			PermValidateServiceRead, PermValidateServiceWrite,
		}
	default:
		return []string{PermNewServiceRead, PermNewServiceWrite}
	}
}
