// internal/domain/models/role.go
package models

import "strings"

// Role is the closed set of access roles. Visibility and write rules per
// role live in the accesspolicy package.
type Role string

const (
	// RoleNone marks an anonymous principal (no session).
	RoleNone Role = ""
	// RoleUser is a field worker: sees only records they created.
	RoleUser Role = "user"
	// RoleOrgController oversees one organization's records.
	RoleOrgController Role = "orgcontroller"
	// RoleController oversees all organizations' records.
	RoleController Role = "controller"
	// RoleAdmin additionally manages configurations and structure.
	RoleAdmin Role = "admin"
)

// NormalizeRole folds a stored or transported role string into the closed
// set; anything unrecognized collapses to RoleNone.
func NormalizeRole(raw string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleUser:
		return RoleUser
	case RoleOrgController:
		return RoleOrgController
	case RoleController:
		return RoleController
	case RoleAdmin:
		return RoleAdmin
	}
	return RoleNone
}

// Valid reports whether the role is one of the authenticated roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleOrgController, RoleController, RoleAdmin:
		return true
	}
	return false
}
