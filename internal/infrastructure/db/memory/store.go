// Package memory is the default twin storage: process-local maps guarded by a
// mutex. Every value crossing the package boundary is a copy.
package memory

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/mshlentov/cinescope/internal/core/domain"
)

type Store struct {
	mu     sync.RWMutex
	users  map[string]*domain.User
	movies map[int]*domain.Movie
	nextID int
}

func NewStore() *Store {
	return &Store{
		users:  make(map[string]*domain.User),
		movies: make(map[int]*domain.Movie),
		nextID: 1,
	}
}

// Users returns the store viewed as a ports.UserRepository.
func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

// Movies returns the store viewed as a ports.MovieRepository.
func (s *Store) Movies() *MovieRepository { return &MovieRepository{s: s} }

func copyUser(u *domain.User) *domain.User {
	c := *u
	c.Roles = slices.Clone(u.Roles)
	return &c
}

func copyMovie(m *domain.Movie) *domain.Movie {
	c := *m
	return &c
}

type UserRepository struct{ s *Store }

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return nil, domain.ErrUserExists
		}
	}
	r.s.users[user.ID] = copyUser(user)
	return copyUser(user), nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return copyUser(u), nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return copyUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.s.users, id)
	return nil
}

type MovieRepository struct{ s *Store }

func (r *MovieRepository) Create(_ context.Context, movie *domain.Movie) (*domain.Movie, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, m := range r.s.movies {
		if m.Name == movie.Name {
			return nil, domain.ErrMovieExists
		}
	}
	stored := copyMovie(movie)
	stored.ID = r.s.nextID
	r.s.nextID++
	r.s.movies[stored.ID] = stored
	return copyMovie(stored), nil
}

func (r *MovieRepository) FindByID(_ context.Context, id int) (*domain.Movie, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m, ok := r.s.movies[id]
	if !ok {
		return nil, domain.ErrMovieNotFound
	}
	return copyMovie(m), nil
}

func (r *MovieRepository) FindByName(_ context.Context, name string) (*domain.Movie, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, m := range r.s.movies {
		if m.Name == name {
			return copyMovie(m), nil
		}
	}
	return nil, domain.ErrMovieNotFound
}

// List orders by creation time (newest first unless SortAsc), ties broken by id.
func (r *MovieRepository) List(_ context.Context, filter domain.MovieFilter) (*domain.MoviePage, error) {
	r.s.mu.RLock()
	matched := make([]*domain.Movie, 0, len(r.s.movies))
	for _, m := range r.s.movies {
		if filter.Matches(m) {
			matched = append(matched, copyMovie(m))
		}
	}
	r.s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			if filter.SortAsc {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return a.CreatedAt.After(b.CreatedAt)
		}
		if filter.SortAsc {
			return a.ID < b.ID
		}
		return a.ID > b.ID
	})

	start := (filter.Page - 1) * filter.PageSize
	if start > len(matched) {
		start = len(matched)
	}
	end := min(start+filter.PageSize, len(matched))

	return &domain.MoviePage{
		Movies:    matched[start:end],
		Count:     len(matched),
		Page:      filter.Page,
		PageSize:  filter.PageSize,
		PageCount: domain.PageCountFor(len(matched), filter.PageSize),
	}, nil
}

func (r *MovieRepository) Update(_ context.Context, movie *domain.Movie) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.movies[movie.ID]; !ok {
		return domain.ErrMovieNotFound
	}
	for id, m := range r.s.movies {
		if id != movie.ID && m.Name == movie.Name {
			return domain.ErrMovieExists
		}
	}
	r.s.movies[movie.ID] = copyMovie(movie)
	return nil
}

func (r *MovieRepository) Delete(_ context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.movies[id]; !ok {
		return domain.ErrMovieNotFound
	}
	delete(r.s.movies, id)
	return nil
}
