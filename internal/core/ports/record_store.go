package ports

import (
	"context"

	"github.com/mshlentov/cinescope/internal/core/domain"
)

// RecordStore is direct access to persisted Cinescope records, used by tests
// to check that what the API reports matches what was stored.
type RecordStore interface {
	MovieByID(ctx context.Context, id int) (*domain.Movie, error)
	MoviesByName(ctx context.Context, name string) ([]*domain.Movie, error)
	UserByEmail(ctx context.Context, email string) (*domain.User, error)
	DeleteMovie(ctx context.Context, id int) error
}
