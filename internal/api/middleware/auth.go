package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/warisan/heritage-api/internal/core/ports"
)

// claimsKey is the echo context key the verified identity is stored under.
const claimsKey = "auth_claims"

// Auth validates the bearer token and injects the verified claims into the
// request context. Every failure mode (missing header, malformed token,
// expired, bad signature) is reported as the same generic 401 so callers
// cannot probe token validity.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request().Header.Get("Authorization"))
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			claims, err := verifier.Verify(raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			c.Set(claimsKey, *claims)
			return next(c)
		}
	}
}

// OptionalAuth verifies a bearer token when one is present but lets
// unauthenticated requests through. Used on read endpoints that show more to
// reviewers and owners than to the public.
func OptionalAuth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if raw, ok := bearerToken(c.Request().Header.Get("Authorization")); ok {
				if claims, err := verifier.Verify(raw); err == nil {
					c.Set(claimsKey, *claims)
				}
			}
			return next(c)
		}
	}
}

func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
