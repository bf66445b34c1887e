package ports

import (
	"context"

	"github.com/mshlentov/cinescope/internal/core/domain"
)

// UserRepository persists accounts. Emails are unique.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
