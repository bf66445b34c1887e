package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Role is one of the access levels Cinescope grants to an account.
type Role string

const (
	RoleUser       Role = "USER"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

// AllRoles lists every role the service knows about.
var AllRoles = []Role{RoleUser, RoleAdmin, RoleSuperAdmin}

func (r Role) Valid() bool {
	return slices.Contains(AllRoles, r)
}

func (r Role) String() string { return string(r) }

// ParseRole accepts role names case-insensitively.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// HasAnyRole reports whether roles intersects allowed.
func HasAnyRole(roles []Role, allowed ...Role) bool {
	for _, r := range roles {
		if slices.Contains(allowed, r) {
			return true
		}
	}
	return false
}
