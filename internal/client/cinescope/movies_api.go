package cinescope

import (
	"context"
	"net/http"
	"strconv"

	"github.com/mshlentov/cinescope/internal/client/requester"
)

const moviesEndpoint = "/movies"

// MoviesAPI covers the /movies resource of the catalog service.
type MoviesAPI struct {
	r *requester.Requester
}

func NewMoviesAPI(r *requester.Requester) *MoviesAPI {
	return &MoviesAPI{r: r}
}

// List fetches a page of movies. Expected status defaults to 200.
func (m *MoviesAPI) List(ctx context.Context, filter MovieFilter, expect ...int) (*requester.Response, error) {
	return m.r.Send(ctx, requester.Request{
		Method:         http.MethodGet,
		Endpoint:       moviesEndpoint,
		Query:          filter.Values(),
		ExpectedStatus: expectOr(http.StatusOK, expect),
	})
}

// Create adds a movie. Expected status defaults to 201.
func (m *MoviesAPI) Create(ctx context.Context, movie CreateMovieRequest, expect ...int) (*requester.Response, error) {
	return m.r.Send(ctx, requester.Request{
		Method:         http.MethodPost,
		Endpoint:       moviesEndpoint,
		Body:           movie,
		ExpectedStatus: expectOr(http.StatusCreated, expect),
	})
}

// GetByID fetches one movie. Expected status defaults to 200.
func (m *MoviesAPI) GetByID(ctx context.Context, id int, expect ...int) (*requester.Response, error) {
	return m.r.Send(ctx, requester.Request{
		Method:         http.MethodGet,
		Endpoint:       movieEndpoint(id),
		ExpectedStatus: expectOr(http.StatusOK, expect),
	})
}

// Update patches the given fields. Expected status defaults to 200.
func (m *MoviesAPI) Update(ctx context.Context, id int, patch UpdateMovieRequest, expect ...int) (*requester.Response, error) {
	return m.r.Send(ctx, requester.Request{
		Method:         http.MethodPatch,
		Endpoint:       movieEndpoint(id),
		Body:           patch,
		ExpectedStatus: expectOr(http.StatusOK, expect),
	})
}

// Delete removes a movie. Expected status defaults to 200.
func (m *MoviesAPI) Delete(ctx context.Context, id int, expect ...int) (*requester.Response, error) {
	return m.r.Send(ctx, requester.Request{
		Method:         http.MethodDelete,
		Endpoint:       movieEndpoint(id),
		ExpectedStatus: expectOr(http.StatusOK, expect),
	})
}

func movieEndpoint(id int) string {
	return moviesEndpoint + "/" + strconv.Itoa(id)
}
