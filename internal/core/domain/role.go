package domain

import "strings"

// Role is the closed set of roles a user can hold.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// DefaultRoles lists the roles that must exist in every store before traffic is served.
var DefaultRoles = []Role{RoleUser, RoleAdmin}

func (r Role) String() string { return string(r) }

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	}
	return false
}

// ParseRole converts a role name received from a client into a Role.
func ParseRole(name string) (Role, error) {
	r := Role(strings.TrimSpace(name))
	if !r.IsValid() {
		return "", ErrInvalidRole
	}
	return r, nil
}
