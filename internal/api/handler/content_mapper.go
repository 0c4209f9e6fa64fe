package handler

import (
	"github.com/warisan/heritage-api/internal/core/domain"
	"github.com/warisan/heritage-api/internal/core/ports"
)

// toContentResponse maps the domain aggregate to the full transport view.
func toContentResponse(c *domain.Content) contentResponse {
	return contentResponse{
		ID:              c.ID,
		Kind:            string(c.Kind),
		Title:           c.Title,
		Body:            c.Body,
		CategoryID:      c.CategoryID,
		Region:          c.Region,
		OwnerID:         c.OwnerID,
		Status:          string(c.Status),
		RejectionReason: c.RejectionReason,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
		ReviewedAt:      c.ReviewedAt,
	}
}

// toListContentsResponse maps a result page to the transport view.
func toListContentsResponse(res *ports.ListContentsResult) listContentsResponse {
	items := make([]contentSummaryResponse, 0, len(res.Items))
	for _, c := range res.Items {
		items = append(items, contentSummaryResponse{
			ID:         c.ID,
			Kind:       string(c.Kind),
			Title:      c.Title,
			CategoryID: c.CategoryID,
			Region:     c.Region,
			Status:     string(c.Status),
			CreatedAt:  c.CreatedAt,
		})
	}
	return listContentsResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      res.Total,
			Page:       res.Page,
			Limit:      res.Limit,
			TotalPages: res.TotalPages,
		},
	}
}
