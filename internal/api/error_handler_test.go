package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/warisan/heritage-api/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	return rec.Code, resp.Error
}

func TestErrorHandler_StatusMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"token expired", domain.ErrTokenExpired, http.StatusUnauthorized},
		{"token malformed", domain.ErrTokenMalformed, http.StatusUnauthorized},
		{"token invalid", domain.ErrTokenInvalid, http.StatusUnauthorized},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"illegal transition", domain.ErrIllegalTransition, http.StatusBadRequest},
		{"missing reason", domain.ErrMissingReason, http.StatusBadRequest},
		{"invalid role", domain.ErrInvalidRole, http.StatusBadRequest},
		{"self deletion", domain.ErrSelfDeletion, http.StatusBadRequest},
		{"content not found", domain.ErrContentNotFound, http.StatusNotFound},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound},
		{"category not found", domain.ErrCategoryNotFound, http.StatusNotFound},
		{"user exists", domain.ErrUserExists, http.StatusConflict},
		{"category exists", domain.ErrCategoryExists, http.StatusConflict},
		{"duplicate report", domain.ErrDuplicateReport, http.StatusConflict},
		{"stale status", domain.ErrStaleStatus, http.StatusConflict},
		{"unexpected", errors.New("db exploded"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, _ := renderError(t, tc.err)
			if code != tc.wantCode {
				t.Errorf("expected %d, got %d", tc.wantCode, code)
			}
		})
	}
}

func TestErrorHandler_TokenFailuresShareOneBody(t *testing.T) {
	// Expired, malformed and invalid tokens must be indistinguishable.
	_, expired := renderError(t, domain.ErrTokenExpired)
	_, malformed := renderError(t, domain.ErrTokenMalformed)
	_, invalid := renderError(t, domain.ErrTokenInvalid)

	if expired != malformed || malformed != invalid {
		t.Errorf("401 bodies differ: %q / %q / %q", expired, malformed, invalid)
	}
}

func TestErrorHandler_InternalErrorHidesCause(t *testing.T) {
	_, msg := renderError(t, errors.New("password for db is hunter2"))
	if msg != "internal server error" {
		t.Errorf("500 body must be generic, got %q", msg)
	}
}

func TestErrorHandler_WrappedErrorsStillMap(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), domain.ErrStaleStatus)
	code, _ := renderError(t, wrapped)
	if code != http.StatusConflict {
		t.Errorf("wrapped sentinel must still map, expected 409, got %d", code)
	}
}

func TestErrorHandler_EchoHTTPErrorPassesThrough(t *testing.T) {
	code, msg := renderError(t, echo.NewHTTPError(http.StatusTeapot, "short and stout"))
	if code != http.StatusTeapot {
		t.Errorf("expected 418, got %d", code)
	}
	if msg != "short and stout" {
		t.Errorf("expected message preserved, got %q", msg)
	}
}
