package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/warisan/heritage-api/internal/api/metrics"
	"github.com/warisan/heritage-api/internal/core/domain"
	"github.com/warisan/heritage-api/internal/core/ports"
)

const maxPageLimit = 100

// ReportDedup guards anonymous report submissions against rapid duplicates.
// Claim returns false when the fingerprint was already claimed recently.
type ReportDedup interface {
	Claim(ctx context.Context, fingerprint string) (bool, error)
}

// AuditSink receives moderation events for asynchronous persistence.
type AuditSink interface {
	Enqueue(event domain.ModerationEvent)
}

type contentService struct {
	repo        ports.ContentRepository
	dedup       ReportDedup
	audit       AuditSink
	autoPublish bool
	log         zerolog.Logger
}

// NewContentService returns a ContentService implementation. When autoPublish
// is set, items created by authors holding review_submission skip the review
// queue and are published on creation.
func NewContentService(
	repo ports.ContentRepository,
	dedup ReportDedup,
	audit AuditSink,
	autoPublish bool,
	log zerolog.Logger,
) ports.ContentService {
	return &contentService{
		repo:        repo,
		dedup:       dedup,
		audit:       audit,
		autoPublish: autoPublish,
		log:         log,
	}
}

func (s *contentService) Create(ctx context.Context, in ports.CreateContentInput) (*domain.Content, error) {
	kind := domain.ContentKind(in.Kind)
	if !kind.IsValid() {
		return nil, fmt.Errorf("create content: unknown kind %q", in.Kind)
	}
	if !in.Actor.Role.Can(domain.PermCreateContent) {
		return nil, domain.ErrForbidden
	}

	now := time.Now().UTC()
	item := &domain.Content{
		Kind:       kind,
		Title:      in.Title,
		Body:       in.Body,
		CategoryID: in.CategoryID,
		Region:     in.Region,
		OwnerID:    in.Actor.SubjectID,
		Status:     domain.StatusDraft,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if s.autoPublish && in.Actor.Role.Can(domain.PermReviewSubmission) {
		item.Status = domain.StatusPublished
		t := now
		item.ReviewedAt = &t
	}

	created, err := s.repo.Create(ctx, item)
	if err != nil {
		s.log.Error().Err(err).Str("kind", in.Kind).Msg("failed to create content")
		return nil, err
	}

	metrics.ContentCreatedTotal.WithLabelValues(string(kind)).Inc()
	s.log.Info().
		Str("content_id", created.ID).
		Str("kind", in.Kind).
		Str("status", string(created.Status)).
		Msg("content created")

	return created, nil
}

// Get returns an item when the caller may read it. Unpublished items are
// reported as not found to callers without read access so their existence is
// never leaked.
func (s *contentService) Get(ctx context.Context, id string, authenticated bool, actor domain.Claims) (*domain.Content, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if item.Status == domain.StatusPublished {
		return item, nil
	}
	if !authenticated {
		return nil, domain.ErrContentNotFound
	}
	if actor.Role.Can(domain.PermReviewSubmission) {
		return item, nil
	}
	if item.OwnerID != "" && item.OwnerID == actor.SubjectID {
		return item, nil
	}
	return nil, domain.ErrContentNotFound
}

func (s *contentService) List(ctx context.Context, in ports.ListContentsInput) (*ports.ListContentsResult, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit < 1 {
		limit = 20
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	filter := ports.ListContentsFilter{
		Kind:       in.Kind,
		CategoryID: in.CategoryID,
		Page:       page,
		Limit:      limit,
	}

	switch {
	case in.Authenticated && in.Mine:
		filter.OwnerID = in.Actor.SubjectID
		filter.Status = in.Status
	case in.Authenticated && in.Actor.Role.Can(domain.PermReviewSubmission):
		filter.Status = in.Status
	default:
		// Public callers only ever see published content.
		filter.Status = string(domain.StatusPublished)
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.ListContentsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

func (s *contentService) Update(ctx context.Context, in ports.UpdateContentInput) (*domain.Content, error) {
	item, err := s.repo.FindByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if !domain.CanMutate(in.Actor, item) {
		return nil, domain.ErrForbidden
	}
	// Owners may only rework items that are not live; privileged roles can
	// correct anything.
	if !in.Actor.Role.Can(domain.PermDeleteAnyContent) &&
		item.Status != domain.StatusDraft && item.Status != domain.StatusRejected {
		return nil, domain.ErrForbidden
	}

	item.Title = in.Title
	item.Body = in.Body
	item.CategoryID = in.CategoryID
	item.Region = in.Region
	item.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *contentService) Delete(ctx context.Context, id string, actor domain.Claims) error {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !domain.CanMutate(actor, item) {
		return domain.ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("content_id", id).Str("actor_id", actor.SubjectID).Msg("content deleted")
	return nil
}

// Transition runs the lifecycle pipeline: validate the move against the state
// machine, then persist it with a compare-and-swap on the expected current
// status so two concurrent reviewers cannot both decide the same item.
func (s *contentService) Transition(ctx context.Context, in ports.TransitionInput) (*domain.Content, error) {
	item, err := s.repo.FindByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	from := item.Status
	now := time.Now().UTC()

	updated := *item
	if err := domain.Transition(&updated, in.Target, in.Actor, in.Reason, now); err != nil {
		metrics.ModerationErrorsTotal.WithLabelValues(transitionErrorReason(err)).Inc()
		return nil, err
	}

	change := domain.StatusChange{
		To:              updated.Status,
		RejectionReason: updated.RejectionReason,
		ReviewedAt:      updated.ReviewedAt,
	}
	if err := s.repo.UpdateStatus(ctx, in.ID, from, change); err != nil {
		if errors.Is(err, domain.ErrStaleStatus) {
			// Tell a vanished item apart from a concurrent decision.
			if _, findErr := s.repo.FindByID(ctx, in.ID); errors.Is(findErr, domain.ErrContentNotFound) {
				return nil, domain.ErrContentNotFound
			}
			metrics.ModerationErrorsTotal.WithLabelValues("stale_status").Inc()
		}
		return nil, err
	}

	if s.audit != nil {
		s.audit.Enqueue(domain.ModerationEvent{
			ContentID: in.ID,
			From:      from,
			To:        updated.Status,
			ActorID:   in.Actor.SubjectID,
			Reason:    in.Reason,
			At:        now,
		})
	}

	metrics.ModerationTransitionsTotal.WithLabelValues(string(from), string(updated.Status)).Inc()
	s.log.Info().
		Str("content_id", in.ID).
		Str("from", string(from)).
		Str("to", string(updated.Status)).
		Str("actor_id", in.Actor.SubjectID).
		Msg("content transitioned")

	return &updated, nil
}

// SubmitReport ingests an endangered-culture report. Anonymous submissions
// carry no owner and enter the lifecycle at pending_review, since there is no
// owner who could submit a draft.
func (s *contentService) SubmitReport(ctx context.Context, in ports.ReportInput) (*domain.Content, error) {
	anonymous := in.Actor.SubjectID == ""

	if anonymous && s.dedup != nil {
		claimed, err := s.dedup.Claim(ctx, reportFingerprint(in.Region, in.Title))
		if err != nil {
			s.log.Warn().Err(err).Msg("report dedup check failed, accepting anyway")
		} else if !claimed {
			metrics.ReportDedupTotal.WithLabelValues("hit").Inc()
			return nil, domain.ErrDuplicateReport
		} else {
			metrics.ReportDedupTotal.WithLabelValues("miss").Inc()
		}
	}

	now := time.Now().UTC()
	item := &domain.Content{
		Kind:      domain.KindReport,
		Title:     in.Title,
		Body:      in.Body,
		Region:    in.Region,
		OwnerID:   in.Actor.SubjectID,
		Status:    domain.StatusPendingReview,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, item)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create report")
		return nil, err
	}

	metrics.ContentCreatedTotal.WithLabelValues(string(domain.KindReport)).Inc()
	s.log.Info().
		Str("content_id", created.ID).
		Bool("anonymous", anonymous).
		Str("region", in.Region).
		Msg("endangered-culture report received")

	return created, nil
}

// reportFingerprint derives a stable dedup key from the report's region and
// normalised title.
func reportFingerprint(region, title string) string {
	h := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(region)) + "|" + strings.ToLower(strings.TrimSpace(title))))
	return hex.EncodeToString(h[:16])
}

func transitionErrorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrIllegalTransition):
		return "illegal_transition"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrMissingReason):
		return "missing_reason"
	default:
		return "other"
	}
}
