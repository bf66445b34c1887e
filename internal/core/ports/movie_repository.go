package ports

import (
	"context"

	"github.com/mshlentov/cinescope/internal/core/domain"
)

// MovieRepository persists the catalog. Names are unique; Create assigns the id.
type MovieRepository interface {
	Create(ctx context.Context, movie *domain.Movie) (*domain.Movie, error)
	FindByID(ctx context.Context, id int) (*domain.Movie, error)
	FindByName(ctx context.Context, name string) (*domain.Movie, error)
	List(ctx context.Context, filter domain.MovieFilter) (*domain.MoviePage, error)
	Update(ctx context.Context, movie *domain.Movie) error
	Delete(ctx context.Context, id int) error
}
