package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shopstack-products/internal/models"
	"shopstack-products/internal/services"
)

type CartHandler struct {
	cartService *services.CartService
}

func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// CreateCart godoc
// @Summary Create an empty cart
// @Tags Carts
// @Accept json
// @Produce json
// @Param cart body models.CreateCartRequest false "Optional owner"
// @Success 201 {object} handlers.Response
// @Router /carts [post]
func (h *CartHandler) CreateCart(c *gin.Context) {
	var req models.CreateCartRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": gin.H{"message": err.Error()}})
			return
		}
	}
	cart, err := h.cartService.CreateCart(c, &req)
	if err != nil {
		c.Error(err)
		return
	}
	respondCreated(c, "Cart created.", cart)
}

// GetCart godoc
// @Summary Get a cart with products joined and subtotal
// @Tags Carts
// @Produce json
// @Param id path string true "Cart ID"
// @Success 200 {object} handlers.Response
// @Failure 404 {object} handlers.Response
// @Router /carts/{id} [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	view, err := h.cartService.GetCart(c, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, "Cart fetched.", view)
}

// UpdateCart godoc
// @Summary Replace cart items
// @Tags Carts
// @Accept json
// @Produce json
// @Param id path string true "Cart ID"
// @Param items body models.UpdateCartRequest true "New item list"
// @Success 200 {object} handlers.Response
// @Failure 400 {object} handlers.Response
// @Failure 404 {object} handlers.Response
// @Router /carts/{id} [put]
func (h *CartHandler) UpdateCart(c *gin.Context) {
	var req models.UpdateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": gin.H{"message": err.Error()}})
		return
	}
	view, err := h.cartService.UpdateCart(c, c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, "Cart updated.", view)
}

// UpsertItem godoc
// @Summary Set one item's quantity (zero removes it)
// @Tags Carts
// @Accept json
// @Produce json
// @Param id path string true "Cart ID"
// @Param item body models.UpsertCartItemRequest true "Item and quantity"
// @Success 200 {object} handlers.Response
// @Failure 400 {object} handlers.Response
// @Failure 404 {object} handlers.Response
// @Router /carts/{id}/items [post]
func (h *CartHandler) UpsertItem(c *gin.Context) {
	var req models.UpsertCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": gin.H{"message": err.Error()}})
		return
	}
	view, err := h.cartService.UpsertItem(c, c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, "Cart item updated.", view)
}

// RemoveItem godoc
// @Summary Remove one item from the cart
// @Tags Carts
// @Produce json
// @Param id path string true "Cart ID"
// @Param productId path string true "Product ID"
// @Success 200 {object} handlers.Response
// @Failure 404 {object} handlers.Response
// @Router /carts/{id}/items/{productId} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	view, err := h.cartService.RemoveItem(c, c.Param("id"), c.Param("productId"))
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, "Cart item removed.", view)
}

// Checkout godoc
// @Summary Check out the cart
// @Description Decrements stock for every item or rejects without side effects
// @Tags Carts
// @Produce json
// @Param id path string true "Cart ID"
// @Success 200 {object} handlers.Response
// @Failure 400 {object} handlers.Response
// @Failure 404 {object} handlers.Response
// @Router /carts/{id}/checkout [post]
func (h *CartHandler) Checkout(c *gin.Context) {
	view, err := h.cartService.Checkout(c, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, "Checkout complete.", view)
}

// DeleteCart godoc
// @Summary Delete a cart
// @Tags Carts
// @Produce json
// @Param id path string true "Cart ID"
// @Success 200 {object} handlers.Response
// @Failure 404 {object} handlers.Response
// @Router /carts/{id} [delete]
func (h *CartHandler) DeleteCart(c *gin.Context) {
	if err := h.cartService.DeleteCart(c, c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	respondOK(c, "Cart deleted.", nil)
}
