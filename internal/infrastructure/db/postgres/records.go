package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/mshlentov/cinescope/internal/core/domain"
)

// RecordStore reads Cinescope's own tables so tests can compare API answers
// with what was actually persisted.
type RecordStore struct {
	db *sqlx.DB
}

func NewRecordStore(db *sqlx.DB) *RecordStore {
	return &RecordStore{db: db}
}

const movieColumns = `id, name, price, description, image_url, location, published, rating, genre_id, created_at`

type movieRow struct {
	ID          int             `db:"id"`
	Name        string          `db:"name"`
	Price       int             `db:"price"`
	Description string          `db:"description"`
	ImageURL    sql.NullString  `db:"image_url"`
	Location    string          `db:"location"`
	Published   bool            `db:"published"`
	Rating      sql.NullFloat64 `db:"rating"`
	GenreID     int             `db:"genre_id"`
	CreatedAt   time.Time       `db:"created_at"`
}

func (r movieRow) toDomain() *domain.Movie {
	return &domain.Movie{
		ID:          r.ID,
		Name:        r.Name,
		Price:       r.Price,
		Description: r.Description,
		ImageURL:    r.ImageURL.String,
		Location:    domain.Location(r.Location),
		Published:   r.Published,
		Rating:      r.Rating.Float64,
		GenreID:     r.GenreID,
		CreatedAt:   r.CreatedAt,
	}
}

type userRow struct {
	ID        string         `db:"id"`
	Email     string         `db:"email"`
	FullName  string         `db:"full_name"`
	Password  string         `db:"password"`
	CreatedAt time.Time      `db:"created_at"`
	Verified  bool           `db:"verified"`
	Banned    bool           `db:"banned"`
	Roles     pq.StringArray `db:"roles"`
}

func (r userRow) toDomain() *domain.User {
	roles := make([]domain.Role, 0, len(r.Roles))
	for _, s := range r.Roles {
		roles = append(roles, domain.Role(s))
	}
	return &domain.User{
		ID:           r.ID,
		Email:        r.Email,
		FullName:     r.FullName,
		PasswordHash: r.Password,
		Verified:     r.Verified,
		Banned:       r.Banned,
		Roles:        roles,
		CreatedAt:    r.CreatedAt,
	}
}

func (s *RecordStore) MovieByID(ctx context.Context, id int) (*domain.Movie, error) {
	q := `SELECT ` + movieColumns + ` FROM movies WHERE id = $1`

	var row movieRow
	if err := s.db.GetContext(ctx, &row, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMovieNotFound
		}
		return nil, fmt.Errorf("failed to get movie %d: %w", id, err)
	}
	return row.toDomain(), nil
}

// MoviesByName returns every row with the exact name, possibly none.
func (s *RecordStore) MoviesByName(ctx context.Context, name string) ([]*domain.Movie, error) {
	q := `SELECT ` + movieColumns + ` FROM movies WHERE name = $1 ORDER BY id`

	var rows []movieRow
	if err := s.db.SelectContext(ctx, &rows, q, name); err != nil {
		return nil, fmt.Errorf("failed to select movies named %q: %w", name, err)
	}
	movies := make([]*domain.Movie, 0, len(rows))
	for _, row := range rows {
		movies = append(movies, row.toDomain())
	}
	return movies, nil
}

func (s *RecordStore) UserByEmail(ctx context.Context, email string) (*domain.User, error) {
	const q = `
		SELECT id, email, full_name, password, created_at, verified, banned, roles
		FROM users
		WHERE lower(email) = lower($1)
	`

	var row userRow
	if err := s.db.GetContext(ctx, &row, q, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %s: %w", email, err)
	}
	return row.toDomain(), nil
}

func (s *RecordStore) DeleteMovie(ctx context.Context, id int) error {
	const q = `DELETE FROM movies WHERE id = $1`

	res, err := s.db.ExecContext(ctx, q, id)
	if err != nil {
		return fmt.Errorf("failed to delete movie %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete movie %d: %w", id, err)
	}
	if n == 0 {
		return domain.ErrMovieNotFound
	}
	return nil
}
