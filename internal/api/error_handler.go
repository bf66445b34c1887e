package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mshlentov/cinescope/internal/core/domain"
)

// errorResponse is the canonical error envelope. Message is a string, or a
// list of strings for validation failures.
type errorResponse struct {
	Message    any    `json:"message"`
	Error      string `json:"error"`
	StatusCode int    `json:"statusCode"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes and Cinescope messages.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"message", "error", "statusCode"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{
			Message:    msg,
			Error:      http.StatusText(code),
			StatusCode: code,
		})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, any) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ve.Messages
	}

	// Echo's own errors (unknown routes, 405, ...)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code == http.StatusNotFound {
			return he.Code, fmt.Sprintf("Cannot %s %s", c.Request().Method, c.Request().URL.Path)
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, domain.MsgInvalidLogin
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, domain.MsgUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, domain.MsgForbidden
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, domain.MsgUserNotFound
	case errors.Is(err, domain.ErrMovieNotFound):
		return http.StatusNotFound, domain.MsgMovieNotFound
	case errors.Is(err, domain.ErrGenreNotFound):
		return http.StatusNotFound, domain.MsgGenreNotFound
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, domain.MsgUserExists
	case errors.Is(err, domain.ErrMovieExists):
		return http.StatusConflict, domain.MsgMovieExists
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, domain.MsgInternal
}
