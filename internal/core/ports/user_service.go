package ports

import (
	"context"

	"github.com/warisan/heritage-api/internal/core/domain"
)

// UserService defines admin-side account management operations. All of them
// require the manage_users permission, enforced at the transport layer and
// re-checked here.
type UserService interface {
	List(ctx context.Context, actor domain.Claims) ([]*domain.User, error)
	UpdateRole(ctx context.Context, id string, role string, actor domain.Claims) (*domain.User, error)
	// Delete removes an account. Actors can never delete their own account.
	Delete(ctx context.Context, id string, actor domain.Claims) error
}
