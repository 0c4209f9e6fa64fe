package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type createContentRequest struct {
	Kind       string `json:"kind"        validate:"required,oneof=article culture quiz report"`
	Title      string `json:"title"       validate:"required,min=3,max=200"`
	Body       string `json:"body"        validate:"required"`
	CategoryID string `json:"category_id"`
	Region     string `json:"region"`
}

type updateContentRequest struct {
	Title      string `json:"title"       validate:"required,min=3,max=200"`
	Body       string `json:"body"        validate:"required"`
	CategoryID string `json:"category_id"`
	Region     string `json:"region"`
}

// reviewRequest carries an officer's decision on a pending submission.
// Rejections must carry a reason; this is enforced by the lifecycle state
// machine, not here, so the error message is consistent across transports.
type reviewRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approve reject"`
	Reason   string `json:"reason"`
}

type reportRequest struct {
	Title  string `json:"title"  validate:"required,min=3,max=200"`
	Body   string `json:"body"   validate:"required,min=10"`
	Region string `json:"region" validate:"required"`
}

// --- Response types ---

// Response types are owned by the transport layer so the JSON contract is not
// coupled to internal domain changes.

type contentResponse struct {
	ID              string     `json:"id"`
	Kind            string     `json:"kind"`
	Title           string     `json:"title"`
	Body            string     `json:"body,omitempty"`
	CategoryID      string     `json:"category_id,omitempty"`
	Region          string     `json:"region,omitempty"`
	OwnerID         string     `json:"owner_id,omitempty"`
	Status          string     `json:"status"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
}

// contentSummaryResponse is the lightweight item used in list responses.
// It intentionally omits the body to keep payloads small.
type contentSummaryResponse struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	Title      string    `json:"title"`
	CategoryID string    `json:"category_id,omitempty"`
	Region     string    `json:"region,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listContentsResponse struct {
	Data       []contentSummaryResponse `json:"data"`
	Pagination paginationResponse       `json:"pagination"`
}
