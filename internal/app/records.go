package app

import (
	"context"
	"errors"

	"github.com/mshlentov/cinescope/internal/core/domain"
	"github.com/mshlentov/cinescope/internal/core/ports"
)

// records implements ports.RecordStore over the twin's repositories.
type records struct {
	users  ports.UserRepository
	movies ports.MovieRepository
}

func (r *records) MovieByID(ctx context.Context, id int) (*domain.Movie, error) {
	return r.movies.FindByID(ctx, id)
}

// MoviesByName returns an empty slice when nothing matches.
func (r *records) MoviesByName(ctx context.Context, name string) ([]*domain.Movie, error) {
	m, err := r.movies.FindByName(ctx, name)
	if errors.Is(err, domain.ErrMovieNotFound) {
		return []*domain.Movie{}, nil
	}
	if err != nil {
		return nil, err
	}
	return []*domain.Movie{m}, nil
}

func (r *records) UserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.users.FindByEmail(ctx, email)
}

func (r *records) DeleteMovie(ctx context.Context, id int) error {
	return r.movies.Delete(ctx, id)
}
