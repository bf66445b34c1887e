package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"

	"github.com/mshlentov/cinescope/internal/core/domain"
)

type RecordStoreUnitSuite struct {
	suite.Suite
}

type resources struct {
	db       *sqlx.DB
	mock     sqlmock.Sqlmock
	records  *RecordStore
	accounts *AccountRepository
	ctx      context.Context
}

func initResources(t provider.T) *resources {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	sqlxDB := sqlx.NewDb(db, "postgres")

	return &resources{
		db:       sqlxDB,
		mock:     mock,
		records:  NewRecordStore(sqlxDB),
		accounts: NewAccountRepository(sqlxDB),
		ctx:      context.Background(),
	}
}

var movieCols = []string{
	"id", "name", "price", "description", "image_url", "location", "published", "rating", "genre_id", "created_at",
}

func movieRows(created time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(movieCols).
		AddRow(7, "Night Train", 250, "Long ride home", nil, "SPB", true, 4.5, 3, created)
}

func (s *RecordStoreUnitSuite) TestMovieByID(t provider.T) {
	t.Parallel()
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	testCases := []struct {
		name          string
		setupMocks    func(r *resources)
		expectErr     error
		errorContains string
	}{
		{
			name: "Should map the stored row",
			setupMocks: func(r *resources) {
				r.mock.ExpectQuery(`SELECT .* FROM movies WHERE id = \$1`).
					WithArgs(7).
					WillReturnRows(movieRows(created))
			},
		},
		{
			name: "Should report a missing movie",
			setupMocks: func(r *resources) {
				r.mock.ExpectQuery(`SELECT .* FROM movies WHERE id = \$1`).
					WithArgs(7).
					WillReturnRows(sqlmock.NewRows(movieCols))
			},
			expectErr: domain.ErrMovieNotFound,
		},
		{
			name: "Should wrap driver errors",
			setupMocks: func(r *resources) {
				r.mock.ExpectQuery(`SELECT .* FROM movies`).
					WillReturnError(errors.New("connection reset"))
			},
			errorContains: "failed to get movie 7",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t provider.T) {
			r := initResources(t)
			tc.setupMocks(r)

			m, err := r.records.MovieByID(r.ctx, 7)

			switch {
			case tc.expectErr != nil:
				assert.ErrorIs(t, err, tc.expectErr)
			case tc.errorContains != "":
				assert.ErrorContains(t, err, tc.errorContains)
			default:
				assert.NoError(t, err)
				assert.Equal(t, "Night Train", m.Name)
				assert.Equal(t, domain.LocationSPB, m.Location)
				assert.Empty(t, m.ImageURL)
				assert.Equal(t, 4.5, m.Rating)
				assert.True(t, m.CreatedAt.Equal(created))
			}
			assert.NoError(t, r.mock.ExpectationsWereMet())
		})
	}
}

func (s *RecordStoreUnitSuite) TestMoviesByName(t provider.T) {
	t.Parallel()
	r := initResources(t)

	r.mock.ExpectQuery(`SELECT .* FROM movies WHERE name = \$1 ORDER BY id`).
		WithArgs("Nobody").
		WillReturnRows(sqlmock.NewRows(movieCols))

	movies, err := r.records.MoviesByName(r.ctx, "Nobody")
	assert.NoError(t, err)
	assert.NotNil(t, movies)
	assert.Empty(t, movies)
	assert.NoError(t, r.mock.ExpectationsWereMet())
}

func (s *RecordStoreUnitSuite) TestUserByEmail(t provider.T) {
	t.Parallel()
	r := initResources(t)

	rows := sqlmock.NewRows([]string{"id", "email", "full_name", "password", "created_at", "verified", "banned", "roles"}).
		AddRow("0b0c", "api1@gmail.com", "Admin", "hash", time.Now(), true, false, []byte("{SUPER_ADMIN}"))
	r.mock.ExpectQuery(`FROM users\s+WHERE lower\(email\) = lower\(\$1\)`).
		WithArgs("API1@gmail.com").
		WillReturnRows(rows)

	u, err := r.records.UserByEmail(r.ctx, "API1@gmail.com")
	assert.NoError(t, err)
	assert.Equal(t, []domain.Role{domain.RoleSuperAdmin}, u.Roles)
	assert.Equal(t, "hash", u.PasswordHash)
	assert.NoError(t, r.mock.ExpectationsWereMet())
}

func (s *RecordStoreUnitSuite) TestDeleteMovie(t provider.T) {
	t.Parallel()

	t.Run("Should delete an existing row", func(t provider.T) {
		r := initResources(t)
		r.mock.ExpectExec(`DELETE FROM movies WHERE id = \$1`).
			WithArgs(9).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, r.records.DeleteMovie(r.ctx, 9))
		assert.NoError(t, r.mock.ExpectationsWereMet())
	})

	t.Run("Should report a row that is already gone", func(t provider.T) {
		r := initResources(t)
		r.mock.ExpectExec(`DELETE FROM movies WHERE id = \$1`).
			WithArgs(9).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, r.records.DeleteMovie(r.ctx, 9), domain.ErrMovieNotFound)
		assert.NoError(t, r.mock.ExpectationsWereMet())
	})
}

func TestRecordStoreUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(RecordStoreUnitSuite))
}
