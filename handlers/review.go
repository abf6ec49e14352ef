package handlers

import (
	"net/http"

	"homeserve/middleware"
	"homeserve/services/review"
	"homeserve/utils"

	"github.com/gin-gonic/gin"
)

// ReviewHandler serves booking reviews.
type ReviewHandler struct {
	ReviewService review.ReviewService
}

func NewReviewHandler(rs review.ReviewService) *ReviewHandler {
	return &ReviewHandler{ReviewService: rs}
}

func (h *ReviewHandler) list(c *gin.Context, scope func(*review.ListQuery)) {
	actor, _ := middleware.GetActor(c)
	var query review.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		badRequest(c, err.Error())
		return
	}
	if scope != nil {
		scope(&query)
	}
	page, err := h.ReviewService.List(c.Request.Context(), actor, query)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Reviews retrieved successfully", page)
}

// ListReviews handles GET /reviews and GET /admin/reviews.
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	h.list(c, nil)
}

// ListProviderReviews handles GET /reviews/provider/:providerId.
func (h *ReviewHandler) ListProviderReviews(c *gin.Context) {
	h.list(c, func(q *review.ListQuery) { q.ProviderID = c.Param("providerId") })
}

// ListServiceReviews handles GET /reviews/service/:serviceId.
func (h *ReviewHandler) ListServiceReviews(c *gin.Context) {
	h.list(c, func(q *review.ListQuery) { q.ServiceID = c.Param("serviceId") })
}

// GetReview handles GET /reviews/:id.
func (h *ReviewHandler) GetReview(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	r, err := h.ReviewService.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Review retrieved successfully", r)
}

// CreateReview handles POST /reviews.
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	var req review.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	r, err := h.ReviewService.Create(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, "Review created successfully", r)
}

// UpdateReview handles PUT /reviews/:id.
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	var req review.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	r, err := h.ReviewService.Update(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Review updated successfully", r)
}

// DeleteReview handles DELETE /reviews/:id.
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	if err := h.ReviewService.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Review deleted successfully", gin.H{"id": c.Param("id")})
}

// ReportReview handles POST /reviews/:id/report.
func (h *ReviewHandler) ReportReview(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	var req review.ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	r, err := h.ReviewService.Report(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Review reported successfully", r)
}

// ModerateReview handles PUT /reviews/:id/moderate.
func (h *ReviewHandler) ModerateReview(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	var req review.ModerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	r, err := h.ReviewService.Moderate(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Review moderated successfully", r)
}
