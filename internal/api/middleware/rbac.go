package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/warisan/heritage-api/internal/core/domain"
)

// ClaimsFrom extracts the verified identity injected by Auth or OptionalAuth.
func ClaimsFrom(c echo.Context) (domain.Claims, bool) {
	claims, ok := c.Get(claimsKey).(domain.Claims)
	return claims, ok
}

// RequirePermission enforces the role policy table for a single capability.
// It must run after Auth; a request with no claims is denied.
func RequirePermission(perm domain.Permission) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok || !claims.Role.Can(perm) {
				return echo.NewHTTPError(http.StatusForbidden, "access forbidden")
			}
			return next(c)
		}
	}
}
