// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// UserRole represents the authorization level granted to a staff account.
type UserRole string

const (
	// Approves staff requests and manages the directory. Only reachable through
	// the break-glass identity.
	RoleAdmin UserRole = "admin"

	// Court clerk: reads the registration feed once approved.
	RoleAuxiliar UserRole = "auxiliar"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() > 0 && r.level() >= target.level()
}

// IsStaff reports whether the role may enter the dashboard at all.
func (r UserRole) IsStaff() bool {
	return r == RoleAdmin || r == RoleAuxiliar
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {
	switch r {
	case RoleAdmin:
		return 20
	case RoleAuxiliar:
		return 10
	default:
		return 0
	}
}
