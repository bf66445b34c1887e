package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mshlentov/cinescope/internal/core/domain"
)

// GenreHandler serves the fixed genre catalog.
type GenreHandler struct{}

func NewGenreHandler() *GenreHandler {
	return &GenreHandler{}
}

// List returns every genre.
//
// @Summary      List genres
// @Tags         genres
// @Produce      json
// @Success      200  {array}  domain.Genre
// @Router       /genres [get]
func (h *GenreHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, domain.Genres)
}

// Get returns one genre.
//
// @Summary      Get a genre
// @Tags         genres
// @Produce      json
// @Param        id   path      int  true  "Genre id"
// @Success      200  {object}  domain.Genre
// @Failure      404  {object}  errorResponse
// @Router       /genres/{id} [get]
func (h *GenreHandler) Get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return domain.ErrGenreNotFound
	}
	g, err := domain.GenreByID(id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, g)
}
