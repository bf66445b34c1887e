// Package datagen produces random but valid Cinescope test data.
package datagen

import (
	"math/rand/v2"
	"strings"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"

	"github.com/mshlentov/cinescope/internal/client/cinescope"
	"github.com/mshlentov/cinescope/internal/core/domain"
)

const (
	lowerDigits  = "abcdefghijklmnopqrstuvwxyz0123456789"
	letters      = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits       = "0123456789"
	specialChars = "?@#$%^&*|:"
)

// Email returns kek<8 chars>@gmail.com.
func Email() string {
	return "kek" + pick(lowerDigits, 8) + "@gmail.com"
}

func FullName() string {
	return gofakeit.FirstName() + " " + gofakeit.LastName()
}

// Password returns 8..20 characters with at least one letter and one digit.
func Password() string {
	n := 8 + rand.IntN(13)
	b := []byte(pick(letters, 1) + pick(digits, 1) + pick(letters+digits+specialChars, n-2))
	rand.Shuffle(len(b), func(i, j int) { b[i], b[j] = b[j], b[i] })
	return string(b)
}

// MovieName is unique enough to avoid the duplicate-name rule.
func MovieName() string {
	return gofakeit.MovieName() + " " + uuid.NewString()[:8]
}

func Description() string {
	words := make([]string, 12)
	for i := range words {
		words[i] = gofakeit.Word()
	}
	return strings.Join(words, " ") + "."
}

func Price() int { return 1 + rand.IntN(500) }

func Location() domain.Location {
	return domain.AllLocations[rand.IntN(len(domain.AllLocations))]
}

func GenreID() int {
	return domain.Genres[rand.IntN(len(domain.Genres))].ID
}

func ImageURL() string {
	return "https://image.example.test/" + uuid.NewString() + ".png"
}

// RegisterUser returns a valid registration payload with roles [USER].
func RegisterUser() cinescope.RegisterUserRequest {
	password := Password()
	return cinescope.RegisterUserRequest{
		Email:          Email(),
		FullName:       FullName(),
		Password:       password,
		PasswordRepeat: password,
		Roles:          []domain.Role{domain.RoleUser},
	}
}

// CreateUser returns a verified, unbanned account payload with the given roles.
func CreateUser(roles ...domain.Role) cinescope.CreateUserRequest {
	if len(roles) == 0 {
		roles = []domain.Role{domain.RoleUser}
	}
	return cinescope.CreateUserRequest{
		Email:    Email(),
		FullName: FullName(),
		Password: Password(),
		Verified: true,
		Banned:   false,
		Roles:    roles,
	}
}

// Movie returns a complete, valid creation payload.
func Movie() cinescope.CreateMovieRequest {
	return cinescope.CreateMovieRequest{
		Name:        MovieName(),
		ImageURL:    ImageURL(),
		Price:       cinescope.Ptr(Price()),
		Description: Description(),
		Location:    Location(),
		Published:   cinescope.Ptr(true),
		GenreID:     cinescope.Ptr(GenreID()),
	}
}

func pick(alphabet string, n int) string {
	var sb strings.Builder
	sb.Grow(n)
	for range n {
		sb.WriteByte(alphabet[rand.IntN(len(alphabet))])
	}
	return sb.String()
}
