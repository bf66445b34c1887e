package schema

import "github.com/mshlentov/cinescope/internal/core/domain"

// RegisterUserResponse is returned by POST /register and POST /user.
type RegisterUserResponse struct {
	ID        string        `json:"id"        validate:"required"`
	Email     string        `json:"email"     validate:"cinemail"`
	FullName  string        `json:"fullName"  validate:"min=1,max=100"`
	Verified  bool          `json:"verified"`
	Banned    bool          `json:"banned"`
	Roles     []domain.Role `json:"roles"     validate:"min=1,dive,role"`
	CreatedAt string        `json:"createdAt" validate:"iso8601"`
}

// GetUserResponse is returned by GET /user/{id-or-email}.
type GetUserResponse RegisterUserResponse

// LoginUserResponse is the user object embedded in a login response.
type LoginUserResponse struct {
	ID       string        `json:"id"       validate:"uuid"`
	Email    string        `json:"email"    validate:"cinemail"`
	FullName string        `json:"fullName" validate:"min=1,max=100"`
	Roles    []domain.Role `json:"roles"    validate:"min=1,dive,role"`
}

type AuthResponse struct {
	User         LoginUserResponse `json:"user"`
	AccessToken  string            `json:"accessToken"            validate:"required"`
	RefreshToken string            `json:"refreshToken,omitempty"`
	ExpiresIn    int64             `json:"expiresIn,omitempty"`
}

type MovieGenre struct {
	Name string `json:"name" validate:"required"`
}

type Movie struct {
	ID          int             `json:"id"          validate:"gt=0"`
	Name        string          `json:"name"        validate:"required"`
	Price       int             `json:"price"       validate:"gte=0"`
	Description string          `json:"description"`
	ImageURL    *string         `json:"imageUrl,omitempty"`
	Location    domain.Location `json:"location"    validate:"location"`
	Published   bool            `json:"published"`
	GenreID     int             `json:"genreId"     validate:"gt=0"`
	Genre       *MovieGenre     `json:"genre,omitempty"`
	Rating      float64         `json:"rating,omitempty"`
	CreatedAt   string          `json:"createdAt"   validate:"iso8601"`
}

type MoviesPage struct {
	Movies    []Movie `json:"movies"    validate:"dive"`
	Count     int     `json:"count"     validate:"gte=0"`
	Page      int     `json:"page"      validate:"gte=1"`
	PageSize  int     `json:"pageSize"  validate:"gte=1"`
	PageCount int     `json:"pageCount" validate:"gte=0"`
}

type Genre struct {
	ID   int    `json:"id"   validate:"gt=0"`
	Name string `json:"name" validate:"required"`
}

// ErrorResponse is the envelope of 401/403/404/409 responses.
type ErrorResponse struct {
	Message    string `json:"message"`
	Error      string `json:"error,omitempty"`
	StatusCode int    `json:"statusCode,omitempty"`
}

// ValidationErrorResponse is the envelope of 400 responses.
type ValidationErrorResponse struct {
	Message    []string `json:"message"              validate:"min=1"`
	Error      string   `json:"error,omitempty"`
	StatusCode int      `json:"statusCode,omitempty"`
}

// MessageResponse is a bare acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}
