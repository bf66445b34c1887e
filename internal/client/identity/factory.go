package identity

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mshlentov/cinescope/internal/client/cinescope"
	"github.com/mshlentov/cinescope/internal/client/requester"
	"github.com/mshlentov/cinescope/internal/core/domain"
)

// Factory creates isolated identities and tracks them for disposal.
type Factory struct {
	endpoints cinescope.Endpoints
	log       zerolog.Logger

	mu      sync.Mutex
	created []*Identity
}

func NewFactory(endpoints cinescope.Endpoints, log zerolog.Logger) *Factory {
	return &Factory{endpoints: endpoints, log: log}
}

func (f *Factory) Endpoints() cinescope.Endpoints { return f.endpoints }

// Anonymous returns an identity that has not logged in.
func (f *Factory) Anonymous() *Identity {
	return f.track(&Identity{Name: "anonymous", API: f.newManager("anonymous")})
}

// Authenticated logs cred in on a fresh session. The identity is tracked
// even when login fails so its session is still released at Close.
func (f *Factory) Authenticated(ctx context.Context, name string, cred domain.Credential) (*Identity, error) {
	id := f.track(&Identity{Name: name, credential: cred, API: f.newManager(name)})

	auth, err := id.API.Auth.Authenticate(ctx, cred)
	if err != nil {
		return nil, fmt.Errorf("identity %s: %w", name, err)
	}
	id.UserID = auth.User.ID

	f.log.Debug().Str("identity", name).Str("email", cred.Email()).Msg("identity authenticated")
	return id, nil
}

// Len reports how many identities are awaiting disposal.
func (f *Factory) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created)
}

// Close closes every tracked identity exactly once and empties the list.
// Errors are joined; one failure does not stop the rest.
func (f *Factory) Close() error {
	f.mu.Lock()
	created := f.created
	f.created = nil
	f.mu.Unlock()

	var errs []error
	for _, id := range created {
		if err := id.Close(); err != nil && !errors.Is(err, requester.ErrSessionClosed) {
			f.log.Warn().Err(err).Str("identity", id.Name).Msg("identity close failed")
			errs = append(errs, fmt.Errorf("close %s: %w", id.Name, err))
		}
	}
	return errors.Join(errs...)
}

func (f *Factory) newManager(name string) *cinescope.Manager {
	log := f.log.With().Str("identity", name).Logger()
	return cinescope.NewManager(requester.NewSession(log), f.endpoints, log)
}

func (f *Factory) track(id *Identity) *Identity {
	f.mu.Lock()
	f.created = append(f.created, id)
	f.mu.Unlock()
	return id
}
