package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mshlentov/cinescope/internal/core/domain"
	"github.com/mshlentov/cinescope/internal/core/ports"
	"github.com/mshlentov/cinescope/internal/metrics"
	"github.com/mshlentov/cinescope/internal/pkg/token"
)

// AuthService implements registration, login and token checks.
type AuthService struct {
	users      ports.UserRepository
	sessions   ports.SessionCache
	issuer     *token.Issuer
	bcryptCost int
	now        func() time.Time
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionCache, issuer *token.Issuer, bcryptCost int) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		issuer:     issuer,
		bcryptCost: bcryptCost,
		now:        time.Now,
	}
}

// Register signs up a plain user. Requested roles are ignored: public
// registration always yields [USER].
func (s *AuthService) Register(ctx context.Context, in domain.NewUserInput) (*domain.User, error) {
	in.Roles = []domain.Role{domain.RoleUser}
	in.Verified = false
	in.Banned = false
	return createUser(ctx, s.users, in, s.bcryptCost, s.now())
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	res, err := s.login(ctx, email, password)
	if err != nil {
		metrics.TwinLoginsTotal.WithLabelValues("failure").Inc()
		return nil, err
	}
	metrics.TwinLoginsTotal.WithLabelValues("success").Inc()
	return res, nil
}

func (s *AuthService) login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, strings.ToLower(email))
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	raw, claims, err := s.issuer.Issue(user)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Store(ctx, claims.ID, user.ID, s.issuer.TTL()); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	return &ports.LoginResult{
		AccessToken:  raw,
		RefreshToken: uuid.NewString(),
		ExpiresIn:    int64(s.issuer.TTL().Seconds()),
		User:         user,
	}, nil
}

// Authorize verifies the token and checks it has not been revoked.
func (s *AuthService) Authorize(ctx context.Context, rawToken string) (*token.Claims, error) {
	claims, err := s.issuer.Verify(rawToken)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	active, err := s.sessions.Active(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check session: %w", err)
	}
	if !active {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}

func (s *AuthService) Logout(ctx context.Context, claims *token.Claims) error {
	if claims == nil {
		return domain.ErrUnauthorized
	}
	return s.sessions.Revoke(ctx, claims.ID)
}

func createUser(ctx context.Context, repo ports.UserRepository, in domain.NewUserInput, cost int, now time.Time) (*domain.User, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if len(in.Roles) == 0 {
		in.Roles = []domain.Role{domain.RoleUser}
	}
	for _, r := range in.Roles {
		if !r.Valid() {
			return nil, domain.NewValidationError([]string{"Недопустимая роль " + string(r)})
		}
	}

	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), cost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(in.Email),
		FullName:     in.FullName,
		PasswordHash: string(hash),
		Verified:     in.Verified,
		Banned:       in.Banned,
		Roles:        in.Roles,
		CreatedAt:    now.UTC(),
	}
	return repo.Create(ctx, user)
}
