package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/warisan/heritage-api/internal/core/domain"
	"github.com/warisan/heritage-api/internal/core/ports"
)

// ContentHandler handles HTTP requests for moderated content.
type ContentHandler struct {
	service ports.ContentService
}

func NewContentHandler(service ports.ContentService) *ContentHandler {
	return &ContentHandler{service: service}
}

// Create handles POST /v1/contents.
//
// @Summary      Create a content item (starts as draft)
// @Tags         contents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createContentRequest  true  "Content details"
// @Success      201   {object}  contentResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/contents [post]
func (h *ContentHandler) Create(c echo.Context) error {
	var req createContentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	item, err := h.service.Create(c.Request().Context(), ports.CreateContentInput{
		Kind:       req.Kind,
		Title:      req.Title,
		Body:       req.Body,
		CategoryID: req.CategoryID,
		Region:     req.Region,
		Actor:      claims,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toContentResponse(item))
}

// Get handles GET /v1/contents/:id.
//
// @Summary      Get a content item
// @Tags         contents
// @Produce      json
// @Param        id   path      string  true  "Content id"
// @Success      200  {object}  contentResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/contents/{id} [get]
func (h *ContentHandler) Get(c echo.Context) error {
	claims, authenticated := ctxOptionalClaims(c)

	item, err := h.service.Get(c.Request().Context(), c.Param("id"), authenticated, claims)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toContentResponse(item))
}

// List handles GET /v1/contents.
//
// @Summary      List content items
// @Tags         contents
// @Produce      json
// @Param        status       query     string  false  "Lifecycle status filter (reviewers only)"
// @Param        kind         query     string  false  "Content kind filter"
// @Param        category_id  query     string  false  "Category filter"
// @Param        mine         query     bool    false  "Only the caller's own items"
// @Param        page         query     int     false  "Page (1-based)"
// @Param        limit        query     int     false  "Page size (max 100)"
// @Success      200  {object}  listContentsResponse
// @Router       /v1/contents [get]
func (h *ContentHandler) List(c echo.Context) error {
	claims, authenticated := ctxOptionalClaims(c)

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	mine, _ := strconv.ParseBool(c.QueryParam("mine"))

	res, err := h.service.List(c.Request().Context(), ports.ListContentsInput{
		Status:        c.QueryParam("status"),
		Kind:          c.QueryParam("kind"),
		CategoryID:    c.QueryParam("category_id"),
		Mine:          mine,
		Page:          page,
		Limit:         limit,
		Authenticated: authenticated,
		Actor:         claims,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListContentsResponse(res))
}

// Update handles PUT /v1/contents/:id.
//
// @Summary      Edit a content item's editorial fields
// @Tags         contents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Content id"
// @Param        body  body      updateContentRequest  true  "New field values"
// @Success      200   {object}  contentResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/contents/{id} [put]
func (h *ContentHandler) Update(c echo.Context) error {
	var req updateContentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	item, err := h.service.Update(c.Request().Context(), ports.UpdateContentInput{
		ID:         c.Param("id"),
		Title:      req.Title,
		Body:       req.Body,
		CategoryID: req.CategoryID,
		Region:     req.Region,
		Actor:      claims,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toContentResponse(item))
}

// Delete handles DELETE /v1/contents/:id.
//
// @Summary      Delete a content item
// @Tags         contents
// @Security     BearerAuth
// @Param        id  path  string  true  "Content id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/contents/{id} [delete]
func (h *ContentHandler) Delete(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), c.Param("id"), claims); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Submit handles POST /v1/contents/:id/submit (draft → pending_review).
//
// @Summary      Submit a draft for review
// @Tags         moderation
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Content id"
// @Success      200  {object}  contentResponse
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/contents/{id}/submit [post]
func (h *ContentHandler) Submit(c echo.Context) error {
	return h.transition(c, domain.StatusPendingReview, "")
}

// Resubmit handles POST /v1/contents/:id/resubmit (rejected → draft).
//
// @Summary      Rework a rejected item back into a draft
// @Tags         moderation
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Content id"
// @Success      200  {object}  contentResponse
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/contents/{id}/resubmit [post]
func (h *ContentHandler) Resubmit(c echo.Context) error {
	return h.transition(c, domain.StatusDraft, "")
}

// Review handles POST /v1/contents/:id/review.
//
// @Summary      Approve or reject a pending submission
// @Tags         moderation
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Content id"
// @Param        body  body      reviewRequest  true  "Decision; rejections require a reason"
// @Success      200   {object}  contentResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/contents/{id}/review [post]
func (h *ContentHandler) Review(c echo.Context) error {
	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	target := domain.StatusPublished
	if req.Decision == "reject" {
		target = domain.StatusRejected
	}
	return h.transition(c, target, req.Reason)
}

// Archive handles POST /v1/contents/:id/archive (published → archived).
//
// @Summary      Archive a published item
// @Tags         moderation
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Content id"
// @Success      200  {object}  contentResponse
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/contents/{id}/archive [post]
func (h *ContentHandler) Archive(c echo.Context) error {
	return h.transition(c, domain.StatusArchived, "")
}

// Restore handles POST /v1/contents/:id/restore (archived → published).
//
// @Summary      Restore an archived item to published
// @Tags         moderation
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Content id"
// @Success      200  {object}  contentResponse
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/contents/{id}/restore [post]
func (h *ContentHandler) Restore(c echo.Context) error {
	return h.transition(c, domain.StatusPublished, "")
}

func (h *ContentHandler) transition(c echo.Context, target domain.ContentStatus, reason string) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	item, err := h.service.Transition(c.Request().Context(), ports.TransitionInput{
		ID:     c.Param("id"),
		Target: target,
		Reason: reason,
		Actor:  claims,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toContentResponse(item))
}

// SubmitReport handles POST /v1/reports. No authentication is required;
// anonymous reports simply carry no owner.
//
// @Summary      Submit an endangered-culture report
// @Tags         reports
// @Accept       json
// @Produce      json
// @Param        body  body      reportRequest  true  "Report details"
// @Success      201   {object}  contentResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/reports [post]
func (h *ContentHandler) SubmitReport(c echo.Context) error {
	var req reportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	claims, _ := ctxOptionalClaims(c)

	item, err := h.service.SubmitReport(c.Request().Context(), ports.ReportInput{
		Title:  req.Title,
		Body:   req.Body,
		Region: req.Region,
		Actor:  claims,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toContentResponse(item))
}
