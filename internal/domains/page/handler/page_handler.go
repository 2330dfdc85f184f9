package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"page-insights-backend/internal/domains/page"
	"page-insights-backend/internal/shared/response"
)

type PageHandler struct {
	acquisition page.AcquisitionService
	query       page.QueryService
	analytics   page.AnalyticsService
}

func NewPageHandler(
	acquisition page.AcquisitionService,
	query page.QueryService,
	analytics page.AnalyticsService,
) *PageHandler {
	return &PageHandler{
		acquisition: acquisition,
		query:       query,
		analytics:   analytics,
	}
}

// Acquire handles POST /api/v1/pages/acquire
func (h *PageHandler) Acquire(c *gin.Context) {
	var req page.AcquireRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err)
		return
	}

	resp, err := h.acquisition.Acquire(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp)
}

// List handles GET /api/v1/pages
func (h *PageHandler) List(c *gin.Context) {
	var q page.ListPagesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	pages, meta, err := h.query.ListPages(c.Request.Context(), q)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, pages, meta)
}

// Get handles GET /api/v1/pages/:page_id
func (h *PageHandler) Get(c *gin.Context) {
	pageID := c.Param("page_id")
	includePosts := c.Query("include_posts") == "true"
	includePeople := c.Query("include_people") == "true"

	resp, err := h.query.GetPage(c.Request.Context(), pageID, includePosts, includePeople)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// ListPosts handles GET /api/v1/pages/:page_id/posts
func (h *PageHandler) ListPosts(c *gin.Context) {
	var q page.ListPostsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	posts, meta, err := h.query.GetPosts(c.Request.Context(), c.Param("page_id"), q)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, posts, meta)
}

// ListComments handles GET /api/v1/pages/:page_id/posts/:post_id/comments
func (h *PageHandler) ListComments(c *gin.Context) {
	var q page.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	comments, meta, err := h.query.GetPostComments(
		c.Request.Context(), c.Param("page_id"), c.Param("post_id"), q)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, comments, meta)
}

// ListFollowers handles GET /api/v1/pages/:page_id/followers
func (h *PageHandler) ListFollowers(c *gin.Context) {
	h.listPeople(c, page.RoleFollower)
}

// ListEmployees handles GET /api/v1/pages/:page_id/employees
func (h *PageHandler) ListEmployees(c *gin.Context) {
	h.listPeople(c, page.RoleEmployee)
}

func (h *PageHandler) listPeople(c *gin.Context, role page.Role) {
	var q page.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	people, meta, err := h.query.GetPeople(c.Request.Context(), c.Param("page_id"), role, q)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, people, meta)
}

// GetAnalytics handles GET /api/v1/pages/:page_id/analytics
func (h *PageHandler) GetAnalytics(c *gin.Context) {
	snapshot, err := h.analytics.GetAnalytics(c.Request.Context(), c.Param("page_id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, snapshot)
}

// RequestSummary handles POST /api/v1/pages/:page_id/summary
func (h *PageHandler) RequestSummary(c *gin.Context) {
	pageID := c.Param("page_id")
	if err := h.analytics.RequestSummary(c.Request.Context(), pageID); err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusAccepted, gin.H{
		"page_id": pageID,
		"status":  "queued",
	})
}

func (h *PageHandler) handleError(c *gin.Context, err error) {
	status := page.GetHTTPStatusCode(err)
	code := page.GetErrorCode(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "Internal server error"
	}
	response.ErrorResponse(c, status, code, message)
}
