package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/warisan/heritage-api/internal/core/domain"
	"github.com/warisan/heritage-api/internal/core/ports"
)

type userService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

// NewUserService returns the admin-facing account management service.
func NewUserService(repo ports.UserRepository, log zerolog.Logger) ports.UserService {
	return &userService{repo: repo, log: log}
}

func (s *userService) List(ctx context.Context, actor domain.Claims) ([]*domain.User, error) {
	if !actor.Role.Can(domain.PermManageUsers) {
		return nil, domain.ErrForbidden
	}
	return s.repo.List(ctx)
}

func (s *userService) UpdateRole(ctx context.Context, id string, role string, actor domain.Claims) (*domain.User, error) {
	if !actor.Role.Can(domain.PermManageUsers) {
		return nil, domain.ErrForbidden
	}

	newRole := domain.Role(role)
	if !newRole.IsValid() {
		return nil, domain.ErrInvalidRole
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateRole(ctx, id, newRole); err != nil {
		return nil, err
	}
	user.Role = newRole

	// Outstanding tokens keep the old role until they expire; the new role
	// only lands in tokens issued from now on.
	s.log.Info().
		Str("user_id", id).
		Str("role", role).
		Str("actor_id", actor.SubjectID).
		Msg("user role changed")

	return user, nil
}

func (s *userService) Delete(ctx context.Context, id string, actor domain.Claims) error {
	if !actor.Role.Can(domain.PermManageUsers) {
		return domain.ErrForbidden
	}
	if id == actor.SubjectID {
		return domain.ErrSelfDeletion
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("user_id", id).Str("actor_id", actor.SubjectID).Msg("user deleted")
	return nil
}
