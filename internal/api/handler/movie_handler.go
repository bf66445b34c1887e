package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mshlentov/cinescope/internal/core/domain"
	"github.com/mshlentov/cinescope/internal/core/ports"
)

// MovieHandler serves the /movies catalog routes.
type MovieHandler struct {
	service ports.MovieService
}

func NewMovieHandler(service ports.MovieService) *MovieHandler {
	return &MovieHandler{service: service}
}

// List returns one filtered page of the catalog.
//
// @Summary      List movies
// @Tags         movies
// @Produce      json
// @Param        page       query     int     false  "Page, from 1"
// @Param        pageSize   query     int     false  "Page size, 1..20"
// @Param        minPrice   query     int     false  "Minimum price"
// @Param        maxPrice   query     int     false  "Maximum price"
// @Param        locations  query     string  false  "MSK, SPB or both, comma separated"
// @Param        published  query     bool    false  "Published flag, defaults to true"
// @Param        genreId    query     int     false  "Genre id"
// @Param        createdAt  query     string  false  "asc or desc"
// @Success      200        {object}  moviesPageResponse
// @Failure      400        {object}  validationErrorResponse
// @Router       /movies [get]
func (h *MovieHandler) List(c echo.Context) error {
	filter, err := parseMovieFilter(c.QueryParams())
	if err != nil {
		return err
	}
	page, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMoviesPageResponse(page))
}

// Create adds a movie to the catalog.
//
// @Summary      Create a movie
// @Tags         movies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      movieRequest  true  "Movie"
// @Success      201   {object}  movieResponse
// @Failure      400   {object}  validationErrorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /movies [post]
func (h *MovieHandler) Create(c echo.Context) error {
	raw, err := decodeObject(c.Request().Body)
	if err != nil {
		return invalidPayload()
	}
	if err := validateMovie(raw, false); err != nil {
		return err
	}

	movie, err := h.service.Create(c.Request().Context(), toMovie(raw))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toMovieResponse(movie))
}

// Get returns one movie.
//
// @Summary      Get a movie
// @Tags         movies
// @Produce      json
// @Param        id   path      int  true  "Movie id"
// @Success      200  {object}  movieResponse
// @Failure      404  {object}  errorResponse
// @Router       /movies/{id} [get]
func (h *MovieHandler) Get(c echo.Context) error {
	id, err := movieID(c)
	if err != nil {
		return err
	}
	movie, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMovieResponse(movie))
}

// Update applies a partial change.
//
// @Summary      Update a movie
// @Tags         movies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int           true  "Movie id"
// @Param        body  body      movieRequest  true  "Fields to change"
// @Success      200   {object}  movieResponse
// @Failure      400   {object}  validationErrorResponse
// @Failure      404   {object}  errorResponse
// @Router       /movies/{id} [patch]
func (h *MovieHandler) Update(c echo.Context) error {
	id, err := movieID(c)
	if err != nil {
		return err
	}
	raw, err := decodeObject(c.Request().Body)
	if err != nil {
		return invalidPayload()
	}
	if err := validateMovie(raw, true); err != nil {
		return err
	}

	movie, err := h.service.Update(c.Request().Context(), id, toMovieUpdate(raw))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMovieResponse(movie))
}

// Delete removes a movie and returns it.
//
// @Summary      Delete a movie
// @Tags         movies
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Movie id"
// @Success      200  {object}  movieResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /movies/{id} [delete]
func (h *MovieHandler) Delete(c echo.Context) error {
	id, err := movieID(c)
	if err != nil {
		return err
	}
	movie, err := h.service.Delete(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMovieResponse(movie))
}

// movieID parses the :id path parameter. Anything that is not a positive
// integer cannot name a movie.
func movieID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return 0, domain.ErrMovieNotFound
	}
	return id, nil
}

func invalidPayload() error {
	return domain.NewValidationError([]string{domain.MsgInvalidPayload})
}
