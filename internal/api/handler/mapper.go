package handler

import (
	"time"

	"github.com/mshlentov/cinescope/internal/core/domain"
	"github.com/mshlentov/cinescope/internal/core/ports"
)

// timestampLayout renders times the way Cinescope does: UTC with milliseconds.
const timestampLayout = "2006-01-02T15:04:05.000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func rolesToStrings(roles []domain.Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}

// --- Domain → Response ---

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Verified:  u.Verified,
		Banned:    u.Banned,
		Roles:     rolesToStrings(u.Roles),
		CreatedAt: formatTime(u.CreatedAt),
	}
}

func toLoginResponse(r *ports.LoginResult) loginResponse {
	return loginResponse{
		User: loginUser{
			ID:       r.User.ID,
			Email:    r.User.Email,
			FullName: r.User.FullName,
			Roles:    rolesToStrings(r.User.Roles),
		},
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
		ExpiresIn:    r.ExpiresIn,
	}
}

func toMovieResponse(m *domain.Movie) movieResponse {
	resp := movieResponse{
		ID:          m.ID,
		Name:        m.Name,
		Price:       m.Price,
		Description: m.Description,
		Location:    string(m.Location),
		Published:   m.Published,
		GenreID:     m.GenreID,
		Rating:      m.Rating,
		CreatedAt:   formatTime(m.CreatedAt),
	}
	if m.ImageURL != "" {
		url := m.ImageURL
		resp.ImageURL = &url
	}
	if g, err := domain.GenreByID(m.GenreID); err == nil {
		resp.Genre = &genreName{Name: g.Name}
	}
	return resp
}

func toMoviesPageResponse(p *domain.MoviePage) moviesPageResponse {
	movies := make([]movieResponse, 0, len(p.Movies))
	for _, m := range p.Movies {
		movies = append(movies, toMovieResponse(m))
	}
	return moviesPageResponse{
		Movies:    movies,
		Count:     p.Count,
		Page:      p.Page,
		PageSize:  p.PageSize,
		PageCount: p.PageCount,
	}
}

// --- Request → Domain ---

// toMovie builds a movie from a payload that already passed movieRules.
func toMovie(raw map[string]any) *domain.Movie {
	m := &domain.Movie{}
	toMovieUpdate(raw).Apply(m)
	return m
}

func toMovieUpdate(raw map[string]any) domain.MovieUpdate {
	var u domain.MovieUpdate
	if v, ok := raw["name"].(string); ok {
		u.Name = &v
	}
	if v, ok := raw["imageUrl"].(string); ok {
		u.ImageURL = &v
	}
	if v, ok := intValue(raw["price"]); ok {
		u.Price = &v
	}
	if v, ok := raw["description"].(string); ok {
		u.Description = &v
	}
	if v, ok := raw["location"].(string); ok {
		loc := domain.Location(v)
		u.Location = &loc
	}
	if v, ok := raw["published"].(bool); ok {
		u.Published = &v
	}
	if v, ok := intValue(raw["genreId"]); ok {
		u.GenreID = &v
	}
	return u
}
