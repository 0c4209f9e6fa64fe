package ports

import (
	"context"

	"github.com/warisan/heritage-api/internal/core/domain"
)

// CreateContentInput carries the data needed to create a content item.
type CreateContentInput struct {
	Kind       string
	Title      string
	Body       string
	CategoryID string
	Region     string
	Actor      domain.Claims
}

// UpdateContentInput carries an edit to the editorial fields of an item.
// Owner and status are not editable through this path.
type UpdateContentInput struct {
	ID         string
	Title      string
	Body       string
	CategoryID string
	Region     string
	Actor      domain.Claims
}

// TransitionInput carries a lifecycle transition request.
type TransitionInput struct {
	ID     string
	Target domain.ContentStatus
	Reason string
	Actor  domain.Claims
}

// ReportInput carries an endangered-culture report submission. Actor is the
// zero value for anonymous submissions.
type ReportInput struct {
	Title  string
	Body   string
	Region string
	Actor  domain.Claims
}

// ListContentsInput carries list parameters plus the caller identity used to
// decide visibility. Authenticated is false for public listings.
type ListContentsInput struct {
	Status        string
	Kind          string
	CategoryID    string
	Mine          bool
	Page          int
	Limit         int
	Authenticated bool
	Actor         domain.Claims
}

// ListContentsResult is a page of content items plus pagination totals.
type ListContentsResult struct {
	Items      []*domain.Content
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ContentService defines the use-case operations for moderated content. Every
// mutating operation runs the full pipeline: ownership/role check, lifecycle
// validation, then a conditional persistence write.
type ContentService interface {
	Create(ctx context.Context, input CreateContentInput) (*domain.Content, error)
	Get(ctx context.Context, id string, authenticated bool, actor domain.Claims) (*domain.Content, error)
	List(ctx context.Context, input ListContentsInput) (*ListContentsResult, error)
	Update(ctx context.Context, input UpdateContentInput) (*domain.Content, error)
	Delete(ctx context.Context, id string, actor domain.Claims) error
	Transition(ctx context.Context, input TransitionInput) (*domain.Content, error)
	SubmitReport(ctx context.Context, input ReportInput) (*domain.Content, error)
}
