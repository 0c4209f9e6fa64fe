package ports

import (
	"context"

	"github.com/warisan/heritage-api/internal/core/domain"
)

// ListContentsFilter carries query parameters for listing content items.
// The service layer decides which fields are forced based on the caller's
// role (non-reviewers only ever see published items or their own).
type ListContentsFilter struct {
	Status     string // optional: filter by lifecycle status
	Kind       string // optional: filter by content kind
	OwnerID    string // optional: scope to a single owner
	CategoryID string // optional
	Page       int    // 1-based
	Limit      int    // capped at 100 by the service
}

// ContentRepository defines persistence operations for moderated content.
type ContentRepository interface {
	Create(ctx context.Context, c *domain.Content) (*domain.Content, error)
	FindByID(ctx context.Context, id string) (*domain.Content, error)
	List(ctx context.Context, filter ListContentsFilter) ([]*domain.Content, int64, error)
	// Update persists the mutable editorial fields (title, body, category,
	// region). Owner and status are never written by this call.
	Update(ctx context.Context, c *domain.Content) error
	// UpdateStatus applies a lifecycle change as a compare-and-swap: the
	// write only succeeds if the stored status still equals from. A miss
	// returns domain.ErrStaleStatus without distinguishing a missing row;
	// callers re-fetch to tell the two apart.
	UpdateStatus(ctx context.Context, id string, from domain.ContentStatus, change domain.StatusChange) error
	Delete(ctx context.Context, id string) error
}

// AuditRepository persists the moderation audit trail.
type AuditRepository interface {
	InsertModerationEvent(ctx context.Context, event *domain.ModerationEvent) error
}
