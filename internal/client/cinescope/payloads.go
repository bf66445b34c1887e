package cinescope

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/mshlentov/cinescope/internal/core/domain"
)

// RegisterUserRequest is the body of POST /register.
type RegisterUserRequest struct {
	Email          string        `json:"email"                    validate:"required,contains=@"`
	FullName       string        `json:"fullName"                 validate:"required,max=100"`
	Password       string        `json:"password"                 validate:"required,min=8,max=20,letterdigit"`
	PasswordRepeat string        `json:"passwordRepeat"           validate:"required,eqfield=Password"`
	Roles          []domain.Role `json:"roles,omitempty"          validate:"omitempty,dive,role"`
	Verified       *bool         `json:"verified,omitempty"`
	Banned         *bool         `json:"banned,omitempty"`
}

// CreateUserRequest is the body of POST /user, available to super admins.
type CreateUserRequest struct {
	Email    string        `json:"email"           validate:"required,contains=@"`
	FullName string        `json:"fullName"        validate:"required,max=100"`
	Password string        `json:"password"        validate:"required,min=8,max=20,letterdigit"`
	Verified bool          `json:"verified"`
	Banned   bool          `json:"banned"`
	Roles    []domain.Role `json:"roles,omitempty" validate:"omitempty,dive,role"`
}

// LoginRequest is the body of POST /login. Empty fields are omitted so that
// an empty request serialises to {}.
type LoginRequest struct {
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}

// LoginRequestFor builds a login body from a credential.
func LoginRequestFor(c domain.Credential) LoginRequest {
	return LoginRequest{Email: c.Email(), Password: c.Password()}
}

// CreateMovieRequest is the body of POST /movies. Empty strings and nil
// pointers are left out so negative tests can omit them; numbers are pointers
// so that an explicit 0 is still sent.
type CreateMovieRequest struct {
	Name        string          `json:"name,omitempty"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	Price       *int            `json:"price,omitempty"`
	Description string          `json:"description,omitempty"`
	Location    domain.Location `json:"location,omitempty"`
	Published   *bool           `json:"published,omitempty"`
	GenreID     *int            `json:"genreId,omitempty"`
}

// UpdateMovieRequest is the body of PATCH /movies/{id}; nil fields are not sent.
type UpdateMovieRequest struct {
	Name        *string          `json:"name,omitempty"`
	ImageURL    *string          `json:"imageUrl,omitempty"`
	Price       *int             `json:"price,omitempty"`
	Description *string          `json:"description,omitempty"`
	Location    *domain.Location `json:"location,omitempty"`
	Published   *bool            `json:"published,omitempty"`
	GenreID     *int             `json:"genreId,omitempty"`
}

// MovieFilter is the query of GET /movies. Locations are passed through as
// strings so that unsupported values can be sent on purpose.
type MovieFilter struct {
	Page      *int
	PageSize  *int
	MinPrice  *int
	MaxPrice  *int
	Locations []string
	Published *bool
	GenreID   *int
	CreatedAt string
}

// Values encodes the filter; nil and empty fields are left out.
func (f MovieFilter) Values() url.Values {
	q := url.Values{}
	setInt := func(key string, v *int) {
		if v != nil {
			q.Set(key, strconv.Itoa(*v))
		}
	}
	setInt("page", f.Page)
	setInt("pageSize", f.PageSize)
	setInt("minPrice", f.MinPrice)
	setInt("maxPrice", f.MaxPrice)
	setInt("genreId", f.GenreID)
	if len(f.Locations) > 0 {
		q.Set("locations", strings.Join(f.Locations, ","))
	}
	if f.Published != nil {
		q.Set("published", strconv.FormatBool(*f.Published))
	}
	if f.CreatedAt != "" {
		q.Set("createdAt", f.CreatedAt)
	}
	return q
}

// Ptr returns a pointer to v; handy for partial payloads.
func Ptr[T any](v T) *T { return &v }
