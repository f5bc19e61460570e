package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shopstack-products/internal/models"
	"shopstack-products/internal/services"
)

type FavoriteHandler struct {
	favoriteService *services.FavoriteService
}

func NewFavoriteHandler(favoriteService *services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

// CreateFavorite godoc
// @Summary Create an empty favorites list
// @Tags Favorites
// @Produce json
// @Success 201 {object} handlers.Response
// @Router /favorites [post]
func (h *FavoriteHandler) CreateFavorite(c *gin.Context) {
	favorite, err := h.favoriteService.CreateFavorite(c)
	if err != nil {
		c.Error(err)
		return
	}
	respondCreated(c, "Favorites list created.", favorite)
}

// GetFavorite godoc
// @Summary Get a favorites list with products joined
// @Tags Favorites
// @Produce json
// @Param id path string true "Favorites list ID"
// @Success 200 {object} handlers.Response
// @Failure 404 {object} handlers.Response
// @Router /favorites/{id} [get]
func (h *FavoriteHandler) GetFavorite(c *gin.Context) {
	view, err := h.favoriteService.GetFavorite(c, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, "Favorites fetched.", view)
}

// ToggleProduct godoc
// @Summary Toggle a product's membership in the favorites list
// @Tags Favorites
// @Accept json
// @Produce json
// @Param id path string true "Favorites list ID"
// @Param product body models.ToggleFavoriteRequest true "Product to toggle"
// @Success 200 {object} handlers.Response
// @Failure 404 {object} handlers.Response
// @Router /favorites/{id}/toggle [post]
func (h *FavoriteHandler) ToggleProduct(c *gin.Context) {
	var req models.ToggleFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": gin.H{"message": err.Error()}})
		return
	}
	favorited, err := h.favoriteService.ToggleProduct(c, c.Param("id"), req.ProductID)
	if err != nil {
		c.Error(err)
		return
	}
	message := "Product removed from favorites."
	if favorited {
		message = "Product added to favorites."
	}
	respondOK(c, message, gin.H{"favorited": favorited})
}

// DeleteFavorite godoc
// @Summary Delete a favorites list
// @Tags Favorites
// @Produce json
// @Param id path string true "Favorites list ID"
// @Success 200 {object} handlers.Response
// @Failure 404 {object} handlers.Response
// @Router /favorites/{id} [delete]
func (h *FavoriteHandler) DeleteFavorite(c *gin.Context) {
	if err := h.favoriteService.DeleteFavorite(c, c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	respondOK(c, "Favorites list deleted.", nil)
}
