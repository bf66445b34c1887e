package domain

import "slices"

// Credential is a test identity: the login pair plus the roles the account holds.
// It is immutable; accessors return copies.
type Credential struct {
	email    string
	password string
	roles    []Role
}

// NewCredential builds a Credential. A credential with no roles is treated as a plain user.
func NewCredential(email, password string, roles ...Role) Credential {
	if len(roles) == 0 {
		roles = []Role{RoleUser}
	}
	return Credential{email: email, password: password, roles: slices.Clone(roles)}
}

func (c Credential) Email() string    { return c.email }
func (c Credential) Password() string { return c.password }
func (c Credential) Roles() []Role    { return slices.Clone(c.roles) }
func (c Credential) IsZero() bool     { return c.email == "" && c.password == "" }

func (c Credential) HasRole(r Role) bool {
	return slices.Contains(c.roles, r)
}
