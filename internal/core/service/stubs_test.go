package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mshlentov/cinescope/internal/core/domain"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubSessions struct {
	mu     sync.Mutex
	active map[string]string
}

func newStubSessions() *stubSessions {
	return &stubSessions{active: make(map[string]string)}
}

func (s *stubSessions) Store(_ context.Context, tokenID, userID string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active[tokenID] = userID
	return nil
}

func (s *stubSessions) Active(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.active[tokenID]
	return ok, nil
}

func (s *stubSessions) Revoke(_ context.Context, tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.active, tokenID)
	return nil
}

type stubMovieRepo struct {
	movies map[int]*domain.Movie
	nextID int
}

func newStubMovieRepo() *stubMovieRepo {
	return &stubMovieRepo{movies: make(map[int]*domain.Movie), nextID: 1}
}

func cloneMovie(m *domain.Movie) *domain.Movie {
	clone := *m
	return &clone
}

func (r *stubMovieRepo) Create(_ context.Context, movie *domain.Movie) (*domain.Movie, error) {
	m := cloneMovie(movie)
	m.ID = r.nextID
	r.nextID++
	r.movies[m.ID] = m
	return cloneMovie(m), nil
}

func (r *stubMovieRepo) FindByID(_ context.Context, id int) (*domain.Movie, error) {
	m, ok := r.movies[id]
	if !ok {
		return nil, domain.ErrMovieNotFound
	}
	return cloneMovie(m), nil
}

func (r *stubMovieRepo) FindByName(_ context.Context, name string) (*domain.Movie, error) {
	for _, m := range r.movies {
		if m.Name == name {
			return cloneMovie(m), nil
		}
	}
	return nil, domain.ErrMovieNotFound
}

func (r *stubMovieRepo) List(_ context.Context, filter domain.MovieFilter) (*domain.MoviePage, error) {
	var out []*domain.Movie
	for _, m := range r.movies {
		if filter.Matches(m) {
			out = append(out, cloneMovie(m))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return &domain.MoviePage{
		Movies:    out,
		Count:     len(out),
		Page:      filter.Page,
		PageSize:  filter.PageSize,
		PageCount: domain.PageCountFor(len(out), filter.PageSize),
	}, nil
}

func (r *stubMovieRepo) Update(_ context.Context, movie *domain.Movie) error {
	if _, ok := r.movies[movie.ID]; !ok {
		return domain.ErrMovieNotFound
	}
	r.movies[movie.ID] = cloneMovie(movie)
	return nil
}

func (r *stubMovieRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.movies[id]; !ok {
		return domain.ErrMovieNotFound
	}
	delete(r.movies, id)
	return nil
}
