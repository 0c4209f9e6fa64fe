package ports

import (
	"context"

	"github.com/warisan/heritage-api/internal/core/domain"
)

// CategoryInput carries the editable fields of a category.
type CategoryInput struct {
	Name        string
	Description string
}

// CategoryService defines category browsing and administration.
type CategoryService interface {
	List(ctx context.Context) ([]*domain.Category, error)
	Create(ctx context.Context, input CategoryInput, actor domain.Claims) (*domain.Category, error)
	Update(ctx context.Context, id string, input CategoryInput, actor domain.Claims) (*domain.Category, error)
	Delete(ctx context.Context, id string, actor domain.Claims) error
}
