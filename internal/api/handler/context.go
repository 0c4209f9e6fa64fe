package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/warisan/heritage-api/internal/api/middleware"
	"github.com/warisan/heritage-api/internal/core/domain"
)

// ctxClaims extracts the identity injected by the Auth middleware and
// fast-fails before any service call. A missing subject means the middleware
// did not run or the token carried no usable identity.
func ctxClaims(c echo.Context) (domain.Claims, error) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok || claims.SubjectID == "" {
		return domain.Claims{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return claims, nil
}

// ctxOptionalClaims returns the claims when the request carried a valid
// token, and reports whether it did. Used on endpoints open to the public.
func ctxOptionalClaims(c echo.Context) (domain.Claims, bool) {
	claims, ok := middleware.ClaimsFrom(c)
	return claims, ok && claims.SubjectID != ""
}
