package service

import (
	"context"
	"errors"
	"time"

	"github.com/mshlentov/cinescope/internal/core/domain"
	"github.com/mshlentov/cinescope/internal/core/ports"
	"github.com/mshlentov/cinescope/internal/metrics"
)

// MovieService implements the catalog rules on top of a MovieRepository.
type MovieService struct {
	movies ports.MovieRepository
	now    func() time.Time
}

func NewMovieService(movies ports.MovieRepository) *MovieService {
	return &MovieService{movies: movies, now: time.Now}
}

// List applies the default page and page size before querying.
func (s *MovieService) List(ctx context.Context, filter domain.MovieFilter) (*domain.MoviePage, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = domain.DefaultPageSize
	}
	return s.movies.List(ctx, filter)
}

func (s *MovieService) Create(ctx context.Context, movie *domain.Movie) (*domain.Movie, error) {
	if _, err := domain.GenreByID(movie.GenreID); err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, movie.Name, 0); err != nil {
		return nil, err
	}

	movie.ID = 0
	movie.CreatedAt = s.now().UTC()
	created, err := s.movies.Create(ctx, movie)
	if err != nil {
		return nil, err
	}
	metrics.TwinMoviesCreatedTotal.WithLabelValues(string(created.Location)).Inc()
	return created, nil
}

func (s *MovieService) Get(ctx context.Context, id int) (*domain.Movie, error) {
	return s.movies.FindByID(ctx, id)
}

func (s *MovieService) Update(ctx context.Context, id int, update domain.MovieUpdate) (*domain.Movie, error) {
	movie, err := s.movies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if update.GenreID != nil {
		if _, err := domain.GenreByID(*update.GenreID); err != nil {
			return nil, err
		}
	}
	if update.Name != nil && *update.Name != movie.Name {
		if err := s.ensureNameFree(ctx, *update.Name, id); err != nil {
			return nil, err
		}
	}

	update.Apply(movie)
	if err := s.movies.Update(ctx, movie); err != nil {
		return nil, err
	}
	return movie, nil
}

func (s *MovieService) Delete(ctx context.Context, id int) (*domain.Movie, error) {
	movie, err := s.movies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.movies.Delete(ctx, id); err != nil {
		return nil, err
	}
	return movie, nil
}

func (s *MovieService) ensureNameFree(ctx context.Context, name string, selfID int) error {
	existing, err := s.movies.FindByName(ctx, name)
	switch {
	case errors.Is(err, domain.ErrMovieNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != selfID:
		return domain.ErrMovieExists
	}
	return nil
}
