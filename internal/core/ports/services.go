package ports

import (
	"context"

	"github.com/mshlentov/cinescope/internal/core/domain"
	"github.com/mshlentov/cinescope/internal/pkg/token"
)

// LoginResult is what a successful login hands back.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
	User         *domain.User
}

// TokenAuthorizer resolves a bearer token to its claims.
type TokenAuthorizer interface {
	Authorize(ctx context.Context, rawToken string) (*token.Claims, error)
}

type AuthService interface {
	TokenAuthorizer
	Register(ctx context.Context, in domain.NewUserInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, claims *token.Claims) error
}

type UserService interface {
	Create(ctx context.Context, in domain.NewUserInput) (*domain.User, error)
	// Get accepts a user id or an email.
	Get(ctx context.Context, locator string) (*domain.User, error)
	Delete(ctx context.Context, id string) (*domain.User, error)
}

type MovieService interface {
	List(ctx context.Context, filter domain.MovieFilter) (*domain.MoviePage, error)
	Create(ctx context.Context, movie *domain.Movie) (*domain.Movie, error)
	Get(ctx context.Context, id int) (*domain.Movie, error)
	Update(ctx context.Context, id int, update domain.MovieUpdate) (*domain.Movie, error)
	Delete(ctx context.Context, id int) (*domain.Movie, error)
}
