package domain

import "strings"

// Role is the closed set of platform-user roles.
type Role string

const (
	RolePrimaryAdmin Role = "PRIMARY_ADMIN"
	RoleAdmin        Role = "ADMIN"
	RoleStandard     Role = "STANDARD"
)

var Roles = []Role{RolePrimaryAdmin, RoleAdmin, RoleStandard}

func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	switch r {
	case RolePrimaryAdmin, RoleAdmin, RoleStandard:
		return r, true
	}
	return "", false
}

func (r Role) String() string { return string(r) }

func (r Role) IsAdminTier() bool {
	return r == RolePrimaryAdmin || r == RoleAdmin
}

// DefaultAutoregisterPermission is the permission flag a role gets unless
// the caller sets it explicitly.
func DefaultAutoregisterPermission(r Role) bool {
	return r.IsAdminTier()
}
