package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/mshlentov/cinescope/internal/core/domain"
)

// RBAC lets the request through when the authenticated user holds any of
// allowedRoles. It must run after Auth.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := ClaimsFrom(c)
			if claims == nil {
				return domain.ErrUnauthorized
			}
			if !domain.HasAnyRole(claims.Roles, allowedRoles...) {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
