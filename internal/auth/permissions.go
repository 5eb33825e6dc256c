package auth

import "github.com/dmitrijs2005/fortress/internal/models"

// Permission represents a named capability in the system.
type Permission string

const (
	PermProfileRead    Permission = "profile:read"
	PermProfileUpdate  Permission = "profile:update"
	PermPasswordChange Permission = "password:change"
	PermAdminPanel     Permission = "admin:panel"
	PermUserManage     Permission = "user:manage"
)

// rolePermissions is the single source of truth for the authorisation model.
var rolePermissions = map[models.Role][]Permission{
	models.RoleGuest: {
		PermProfileRead,
	},
	models.RoleUser: {
		PermProfileRead,
		PermProfileUpdate,
		PermPasswordChange,
	},
	models.RoleAdmin: {
		PermProfileRead,
		PermProfileUpdate,
		PermPasswordChange,
		PermAdminPanel,
		PermUserManage,
	},
}

// HasPermission returns true if the given role has the specified permission.
// Unknown roles, including the empty role of an anonymous state, have none.
func HasPermission(role models.Role, perm Permission) bool {
	for _, p := range rolePermissions[role] {
		if p == perm {
			return true
		}
	}
	return false
}

// PermissionsForRole returns all permissions granted to a role.
// Returns nil for unknown roles.
func PermissionsForRole(role models.Role) []Permission {
	perms := rolePermissions[role]
	if perms == nil {
		return nil
	}
	result := make([]Permission, len(perms))
	copy(result, perms)
	return result
}
