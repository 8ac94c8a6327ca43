// Copyright (c) 2026 Hortus. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import "strings"

// # User Roles

// Role represents the capability tag granted to a garden staff account.
type Role string

const (
	// Full access, including reference data and user administration
	RoleAdmin Role = "Admin"

	// Curates plant records and observation logs
	RoleBotanist Role = "Botanist"

	// Reads collections and records observations for studies
	RoleResearcher Role = "Researcher"

	// Read-only access to the catalogue
	RoleViewer Role = "Viewer"
)

// Roles lists every known role in display order.
var Roles = []Role{RoleAdmin, RoleBotanist, RoleResearcher, RoleViewer}

// # Role Membership

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// In reports whether r is a member of the allowed set.
//
// Membership is exact: no role implies another, so an Admin is not
// automatically a Botanist.
func (r Role) In(allowed ...Role) bool {
	for _, candidate := range allowed {
		if r == candidate {
			return true
		}
	}
	return false
}

// String implements [fmt.Stringer].
func (r Role) String() string { return string(r) }

// ParseRole matches a role name case-insensitively.
func ParseRole(raw string) (Role, bool) {
	trimmed := strings.TrimSpace(raw)
	for _, known := range Roles {
		if strings.EqualFold(trimmed, string(known)) {
			return known, true
		}
	}
	return "", false
}

// RoleNames returns the role names as plain strings, for validation messages.
func RoleNames() []string {
	names := make([]string, 0, len(Roles))
	for _, role := range Roles {
		names = append(names, string(role))
	}
	return names
}
