package service

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/warisan/heritage-api/internal/core/domain"
	"github.com/warisan/heritage-api/internal/core/ports"
)

type categoryService struct {
	repo ports.CategoryRepository
	log  zerolog.Logger
}

// NewCategoryService returns the category browsing and administration service.
func NewCategoryService(repo ports.CategoryRepository, log zerolog.Logger) ports.CategoryService {
	return &categoryService{repo: repo, log: log}
}

func (s *categoryService) List(ctx context.Context) ([]*domain.Category, error) {
	return s.repo.List(ctx)
}

func (s *categoryService) Create(ctx context.Context, in ports.CategoryInput, actor domain.Claims) (*domain.Category, error) {
	if !actor.Role.Can(domain.PermManageCategories) {
		return nil, domain.ErrForbidden
	}

	cat := &domain.Category{
		Name:        in.Name,
		Slug:        slugify(in.Name),
		Description: in.Description,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, cat)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("category_id", created.ID).Str("slug", created.Slug).Msg("category created")
	return created, nil
}

func (s *categoryService) Update(ctx context.Context, id string, in ports.CategoryInput, actor domain.Claims) (*domain.Category, error) {
	if !actor.Role.Can(domain.PermManageCategories) {
		return nil, domain.ErrForbidden
	}

	cat, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cat.Name = in.Name
	cat.Slug = slugify(in.Name)
	cat.Description = in.Description

	if err := s.repo.Update(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *categoryService) Delete(ctx context.Context, id string, actor domain.Claims) error {
	if !actor.Role.Can(domain.PermManageCategories) {
		return domain.ErrForbidden
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// slugify lowercases the name and keeps letters and digits, collapsing
// everything else into single dashes.
func slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
