package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/mshlentov/cinescope/internal/api/middleware"
	"github.com/mshlentov/cinescope/internal/core/domain"
	"github.com/mshlentov/cinescope/internal/pkg/token"
)

// ctxClaims extracts the claims injected by the Auth middleware. Their
// absence means the route was mounted without it, which is reported as 401.
func ctxClaims(c echo.Context) (*token.Claims, error) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}
