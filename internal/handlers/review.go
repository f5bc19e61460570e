package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shopstack-products/internal/models"
	"shopstack-products/internal/services"
)

type ReviewHandler struct {
	reviewService *services.ReviewService
}

func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// CreateReview godoc
// @Summary Add a review to a product
// @Tags Reviews
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param review body models.CreateReviewRequest true "Review data"
// @Success 201 {object} handlers.Response
// @Failure 400 {object} handlers.Response
// @Failure 404 {object} handlers.Response
// @Router /products/{id}/reviews [post]
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req models.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": gin.H{"message": err.Error()}})
		return
	}
	review, err := h.reviewService.CreateReview(c, c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}
	respondCreated(c, "Review created.", review)
}

// GetReviews godoc
// @Summary List a product's reviews, newest first
// @Tags Reviews
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} handlers.Response
// @Router /products/{id}/reviews [get]
func (h *ReviewHandler) GetReviews(c *gin.Context) {
	reviews, err := h.reviewService.GetReviews(c, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, "Reviews fetched.", reviews)
}
