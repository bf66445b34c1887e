package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mshlentov/cinescope/internal/core/domain"
	"github.com/mshlentov/cinescope/internal/core/ports"
)

// UserService is the privileged account management surface.
type UserService struct {
	users      ports.UserRepository
	bcryptCost int
	now        func() time.Time
}

func NewUserService(users ports.UserRepository, bcryptCost int) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost, now: time.Now}
}

func (s *UserService) Create(ctx context.Context, in domain.NewUserInput) (*domain.User, error) {
	return createUser(ctx, s.users, in, s.bcryptCost, s.now())
}

// Get resolves locator as a user id when it parses as a UUID, otherwise as an email.
func (s *UserService) Get(ctx context.Context, locator string) (*domain.User, error) {
	if _, err := uuid.Parse(locator); err == nil {
		return s.users.FindByID(ctx, locator)
	}
	return s.users.FindByEmail(ctx, strings.ToLower(locator))
}

func (s *UserService) Delete(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return nil, err
	}
	return user, nil
}
