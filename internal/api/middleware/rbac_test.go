package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/warisan/heritage-api/internal/core/domain"
)

func requestWithClaims(e *echo.Echo, claims *domain.Claims) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if claims != nil {
		c.Set(claimsKey, *claims)
	}
	return c, rec
}

func TestRequirePermission_Allowed(t *testing.T) {
	e := echo.New()
	c, rec := requestWithClaims(e, &domain.Claims{SubjectID: "off1", Role: domain.RoleOfficer})

	called := false
	handler := RequirePermission(domain.PermReviewSubmission)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatal("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequirePermission_Denied(t *testing.T) {
	e := echo.New()
	c, rec := requestWithClaims(e, &domain.Claims{SubjectID: "u1", Role: domain.RoleContributor})

	handler := RequirePermission(domain.PermReviewSubmission)(func(c echo.Context) error {
		t.Fatal("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequirePermission_NoClaims(t *testing.T) {
	// RequirePermission running without Auth in front must deny, not panic.
	e := echo.New()
	c, rec := requestWithClaims(e, nil)

	handler := RequirePermission(domain.PermManageUsers)(func(c echo.Context) error {
		t.Fatal("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequirePermission_UnknownRoleDenied(t *testing.T) {
	e := echo.New()
	c, rec := requestWithClaims(e, &domain.Claims{SubjectID: "x", Role: domain.Role("ghost")})

	handler := RequirePermission(domain.PermCreateContent)(func(c echo.Context) error {
		t.Fatal("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestClaimsFrom_Roundtrip(t *testing.T) {
	e := echo.New()
	want := domain.Claims{SubjectID: "u1", Email: "a@example.com", Role: domain.RoleAdmin}
	c, _ := requestWithClaims(e, &want)

	got, ok := ClaimsFrom(c)
	if !ok {
		t.Fatal("expected claims")
	}
	if got != want {
		t.Errorf("claims mismatch: want %+v, got %+v", want, got)
	}
}
