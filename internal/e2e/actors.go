package e2e

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/mshlentov/cinescope/internal/client/cinescope"
	"github.com/mshlentov/cinescope/internal/client/datagen"
	"github.com/mshlentov/cinescope/internal/client/identity"
	"github.com/mshlentov/cinescope/internal/client/requester"
	"github.com/mshlentov/cinescope/internal/client/schema"
	"github.com/mshlentov/cinescope/internal/core/domain"
)

// Actors owns the identities and remote records created during one test.
// Close deletes the records and then releases every session.
type Actors struct {
	env *Environment
	ids *identity.Factory

	mu         sync.Mutex
	superAdmin *identity.Identity
	movies     []int
	users      []string
}

func newActors(env *Environment) *Actors {
	return &Actors{env: env, ids: identity.NewFactory(env.Endpoints, env.Log)}
}

func (a *Actors) Anonymous() *identity.Identity {
	return a.ids.Anonymous()
}

// SuperAdmin logs the configured super admin in once per Actors.
func (a *Actors) SuperAdmin(ctx context.Context) (*identity.Identity, error) {
	a.mu.Lock()
	cached := a.superAdmin
	a.mu.Unlock()
	if cached != nil {
		return cached, nil
	}

	id, err := a.ids.Authenticated(ctx, "super_admin", a.env.SuperAdmin())
	if err != nil {
		return nil, err
	}
	a.mu.Lock()
	a.superAdmin = id
	a.mu.Unlock()
	return id, nil
}

// Admin creates a verified ADMIN account and logs it in.
func (a *Actors) Admin(ctx context.Context) (*identity.Identity, error) {
	return a.withRole(ctx, "admin", domain.RoleAdmin)
}

// CommonUser creates a verified USER account and logs it in.
func (a *Actors) CommonUser(ctx context.Context) (*identity.Identity, error) {
	return a.withRole(ctx, "common_user", domain.RoleUser)
}

func (a *Actors) withRole(ctx context.Context, name string, role domain.Role) (*identity.Identity, error) {
	payload := datagen.CreateUser(role)
	if _, err := a.CreateUser(ctx, payload); err != nil {
		return nil, err
	}
	return a.ids.Authenticated(ctx, name, domain.NewCredential(payload.Email, payload.Password, role))
}

// CreateUser creates an account through the super admin and tracks it.
func (a *Actors) CreateUser(ctx context.Context, payload cinescope.CreateUserRequest) (*schema.RegisterUserResponse, error) {
	admin, err := a.SuperAdmin(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := admin.API.User.Create(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("create user %s: %w", payload.Email, err)
	}
	user, err := schema.Decode[schema.RegisterUserResponse](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("create user %s: %w", payload.Email, err)
	}
	a.TrackUser(user.ID)
	return &user, nil
}

// RegisterUser signs a random user up through an anonymous session.
func (a *Actors) RegisterUser(ctx context.Context) (cinescope.RegisterUserRequest, *schema.RegisterUserResponse, error) {
	payload := datagen.RegisterUser()
	resp, err := a.Anonymous().API.Auth.Register(ctx, payload)
	if err != nil {
		return payload, nil, fmt.Errorf("register %s: %w", payload.Email, err)
	}
	user, err := schema.Decode[schema.RegisterUserResponse](resp.Body)
	if err != nil {
		return payload, nil, fmt.Errorf("register %s: %w", payload.Email, err)
	}
	a.TrackUser(user.ID)
	return payload, &user, nil
}

// CreateMovie creates a movie as super admin and tracks it for deletion.
func (a *Actors) CreateMovie(ctx context.Context, payload cinescope.CreateMovieRequest) (*schema.Movie, error) {
	admin, err := a.SuperAdmin(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := admin.API.Movies.Create(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("create movie %q: %w", payload.Name, err)
	}
	movie, err := schema.Decode[schema.Movie](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("create movie %q: %w", payload.Name, err)
	}
	a.TrackMovie(movie.ID)
	return &movie, nil
}

func (a *Actors) TrackMovie(id int) {
	a.mu.Lock()
	a.movies = append(a.movies, id)
	a.mu.Unlock()
}

func (a *Actors) TrackUser(id string) {
	a.mu.Lock()
	a.users = append(a.users, id)
	a.mu.Unlock()
}

// Close removes tracked movies and users, then closes every identity.
// Records that are already gone are not an error.
func (a *Actors) Close(ctx context.Context) error {
	a.mu.Lock()
	movies, users := a.movies, a.users
	a.movies, a.users = nil, nil
	a.mu.Unlock()

	var errs []error
	if len(movies) > 0 || len(users) > 0 {
		admin, err := a.SuperAdmin(ctx)
		if err != nil {
			errs = append(errs, fmt.Errorf("cleanup: %w", err))
		} else {
			for _, id := range movies {
				_, err := admin.API.Movies.Delete(ctx, id)
				if err = alreadyGone(err); err != nil {
					errs = append(errs, fmt.Errorf("cleanup movie %d: %w", id, err))
				}
			}
			for _, id := range users {
				_, err := admin.API.User.Delete(ctx, id)
				if err = alreadyGone(err); err != nil {
					errs = append(errs, fmt.Errorf("cleanup user %s: %w", id, err))
				}
			}
		}
	}

	errs = append(errs, a.ids.Close())
	err := errors.Join(errs...)
	if err != nil {
		a.env.Log.Warn().Err(err).Msg("actors cleanup incomplete")
	}
	return err
}

func alreadyGone(err error) error {
	if m, ok := requester.AsStatusMismatch(err); ok && m.Actual == http.StatusNotFound {
		return nil
	}
	return err
}
