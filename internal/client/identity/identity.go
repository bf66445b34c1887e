// Package identity models role-scoped test actors. Every Identity owns a
// private session; the Factory keeps a disposal list so a scenario can close
// all of them at teardown.
package identity

import (
	"errors"
	"sync"

	"github.com/mshlentov/cinescope/internal/client/cinescope"
	"github.com/mshlentov/cinescope/internal/core/domain"
	"github.com/mshlentov/cinescope/internal/pkg/token"
)

var ErrAnonymous = errors.New("identity is anonymous")

// Identity is one actor: a credential plus its own API manager. The
// credential is fixed when the identity is built.
type Identity struct {
	Name string
	API  *cinescope.Manager

	credential domain.Credential

	// UserID is filled from the login response when known.
	UserID string

	closeOnce sync.Once
	closeErr  error
}

func (i *Identity) Credential() domain.Credential { return i.credential }

func (i *Identity) Email() string { return i.credential.Email() }

func (i *Identity) Anonymous() bool { return i.credential.IsZero() }

// Token returns the bearer token held by the identity's session.
func (i *Identity) Token() string { return i.API.Session().BearerToken() }

// Claims decodes the current access token without verifying it.
func (i *Identity) Claims() (*token.Claims, error) {
	raw := i.Token()
	if raw == "" {
		return nil, ErrAnonymous
	}
	return token.Inspect(raw)
}

// Close closes the identity's session. Only the first call does any work;
// later calls return the first result.
func (i *Identity) Close() error {
	i.closeOnce.Do(func() {
		i.closeErr = i.API.Close()
	})
	return i.closeErr
}
