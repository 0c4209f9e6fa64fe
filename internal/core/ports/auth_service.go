package ports

import (
	"context"

	"github.com/warisan/heritage-api/internal/core/domain"
)

// AuthService implements registration and credential verification.
type AuthService interface {
	// Register creates a new account. Public registration always yields the
	// base "user" role; elevation is an admin operation.
	Register(ctx context.Context, email, password, name string) (*domain.User, error)
	// Login verifies credentials and returns a freshly issued bearer token.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
