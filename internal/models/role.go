package models

import "strings"

// Role is the audience a request is made on behalf of.
type Role string

const (
	RoleHeadquarters Role = "headquarters"
	RoleBranch       Role = "branch"
	RoleCustomer     Role = "customer"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleHeadquarters, RoleBranch, RoleCustomer:
		return true
	}
	return false
}

// IsStaff is true for headquarters and branch users.
func (r Role) IsStaff() bool {
	return r == RoleHeadquarters || r == RoleBranch
}

// NormalizeRole lowercases and trims a role token. It does not validate it.
func NormalizeRole(s string) Role {
	return Role(strings.ToLower(strings.TrimSpace(s)))
}
