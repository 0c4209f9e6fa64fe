package domain

import (
	"errors"
	"time"
)

// ContentKind identifies which editorial feature a content item belongs to.
// All kinds share the same moderation lifecycle.
type ContentKind string

const (
	KindArticle ContentKind = "article"
	KindCulture ContentKind = "culture"
	KindQuiz    ContentKind = "quiz"
	KindReport  ContentKind = "report"
)

// IsValid reports whether k is one of the defined content kinds.
func (k ContentKind) IsValid() bool {
	switch k {
	case KindArticle, KindCulture, KindQuiz, KindReport:
		return true
	}
	return false
}

// ContentStatus represents the moderation lifecycle state of a content item.
type ContentStatus string

const (
	StatusDraft         ContentStatus = "draft"
	StatusPendingReview ContentStatus = "pending_review"
	StatusPublished     ContentStatus = "published"
	StatusRejected      ContentStatus = "rejected"
	StatusArchived      ContentStatus = "archived"
)

var ErrContentNotFound = errors.New("content not found")
var ErrForbidden = errors.New("access forbidden")
var ErrIllegalTransition = errors.New("illegal status transition")
var ErrMissingReason = errors.New("rejection reason required")
var ErrStaleStatus = errors.New("content status changed concurrently")
var ErrDuplicateReport = errors.New("duplicate report submission")

// Content is the moderated aggregate shared by articles, culture entries,
// quizzes and endangered-culture reports. OwnerID is empty for anonymous
// reports and immutable once set. Status is only ever changed through
// Transition.
type Content struct {
	ID              string        `json:"id" bson:"_id,omitempty"`
	Kind            ContentKind   `json:"kind" bson:"kind"`
	Title           string        `json:"title" bson:"title"`
	Body            string        `json:"body" bson:"body"`
	CategoryID      string        `json:"category_id,omitempty" bson:"category_id,omitempty"`
	Region          string        `json:"region,omitempty" bson:"region,omitempty"`
	OwnerID         string        `json:"owner_id,omitempty" bson:"owner_id,omitempty"`
	Status          ContentStatus `json:"status" bson:"status"`
	RejectionReason string        `json:"rejection_reason,omitempty" bson:"rejection_reason,omitempty"`
	CreatedAt       time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at" bson:"updated_at"`
	ReviewedAt      *time.Time    `json:"reviewed_at,omitempty" bson:"reviewed_at,omitempty"`
}

// transitionRule describes a single legal edge in the lifecycle state machine.
type transitionRule struct {
	to ContentStatus
	// byOwner requires the actor to own the item and hold create_content.
	byOwner bool
	// permission is the capability required when byOwner is false.
	permission Permission
	// needsReason requires a non-empty reason (rejections).
	needsReason bool
	// clearsReason wipes any previous rejection reason.
	clearsReason bool
	// setsReviewed stamps ReviewedAt (review decisions).
	setsReviewed bool
}

// transitions is the full lifecycle table. Pairs not listed here are illegal
// regardless of who asks.
var transitions = map[ContentStatus][]transitionRule{
	StatusDraft: {
		{to: StatusPendingReview, byOwner: true},
	},
	StatusPendingReview: {
		{to: StatusPublished, permission: PermReviewSubmission, clearsReason: true, setsReviewed: true},
		{to: StatusRejected, permission: PermReviewSubmission, needsReason: true, setsReviewed: true},
	},
	StatusPublished: {
		{to: StatusArchived, permission: PermReviewSubmission},
	},
	StatusArchived: {
		{to: StatusPublished, permission: PermReviewSubmission},
	},
	StatusRejected: {
		{to: StatusDraft, byOwner: true, clearsReason: true},
	},
}

// CanTransitionTo reports whether the (s, next) pair exists in the lifecycle
// table, ignoring actor authorization.
func (s ContentStatus) CanTransitionTo(next ContentStatus) bool {
	for _, rule := range transitions[s] {
		if rule.to == next {
			return true
		}
	}
	return false
}

// Transition validates and applies a lifecycle transition, mutating only
// Status, RejectionReason and ReviewedAt. Checks are ordered so that an
// illegal pair is reported before an authorization failure, and authorization
// before input problems:
//
//	unknown (from, to) pair        -> ErrIllegalTransition
//	actor not allowed by the table -> ErrForbidden
//	rejection without a reason     -> ErrMissingReason
func Transition(item *Content, target ContentStatus, actor Claims, reason string, now time.Time) error {
	var rule *transitionRule
	for i := range transitions[item.Status] {
		if transitions[item.Status][i].to == target {
			rule = &transitions[item.Status][i]
			break
		}
	}
	if rule == nil {
		return ErrIllegalTransition
	}

	if rule.byOwner {
		if item.OwnerID == "" || item.OwnerID != actor.SubjectID || !actor.Role.Can(PermCreateContent) {
			return ErrForbidden
		}
	} else if !actor.Role.Can(rule.permission) {
		return ErrForbidden
	}

	if rule.needsReason && reason == "" {
		return ErrMissingReason
	}

	item.Status = target
	if rule.needsReason {
		item.RejectionReason = reason
	}
	if rule.clearsReason {
		item.RejectionReason = ""
	}
	if rule.setsReviewed {
		t := now
		item.ReviewedAt = &t
	}
	return nil
}

// StatusChange carries the fields written by a lifecycle transition. It is
// applied with a conditional update so two concurrent reviewers cannot both
// move the same item.
type StatusChange struct {
	To              ContentStatus
	RejectionReason string
	ReviewedAt      *time.Time
}

// ModerationEvent is the audit record appended after a successful transition.
type ModerationEvent struct {
	ContentID string        `bson:"content_id"`
	From      ContentStatus `bson:"from"`
	To        ContentStatus `bson:"to"`
	ActorID   string        `bson:"actor_id,omitempty"`
	Reason    string        `bson:"reason,omitempty"`
	At        time.Time     `bson:"at"`
}
