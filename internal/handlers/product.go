package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"shopstack-products/internal/models"
	"shopstack-products/internal/services"
	"shopstack-products/internal/utils"
)

type ProductHandler struct {
	catalogService *services.CatalogService
	productService *services.ProductService
}

func NewProductHandler(catalogService *services.CatalogService, productService *services.ProductService) *ProductHandler {
	return &ProductHandler{catalogService: catalogService, productService: productService}
}

// GetProducts godoc
// @Summary List products
// @Description Get a filtered, paginated product listing
// @Tags Products
// @Produce json
// @Param name query string false "Substring name match"
// @Param brand query []string false "Brand names"
// @Param category query []string false "Category names"
// @Param minPrice query number false "Minimum price (requires maxPrice)"
// @Param maxPrice query number false "Maximum price (requires minPrice)"
// @Param rating query number false "Rating bucket lower bound"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} handlers.Response
// @Failure 404 {object} handlers.Response
// @Router /products [get]
func (h *ProductHandler) GetProducts(c *gin.Context) {
	req := parseSearchRequest(c)
	listing, err := h.catalogService.GetProducts(c, req)
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, "Products fetched.", listing)
}

// GetProductByID godoc
// @Summary Get product by ID
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} handlers.Response
// @Failure 400 {object} handlers.Response
// @Failure 404 {object} handlers.Response
// @Router /products/{id} [get]
func (h *ProductHandler) GetProductByID(c *gin.Context) {
	product, err := h.catalogService.GetProductByID(c, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, "Product fetched.", product)
}

// GetProductByName godoc
// @Summary Get product by exact name
// @Tags Products
// @Produce json
// @Param name path string true "Product name"
// @Success 200 {object} handlers.Response
// @Failure 404 {object} handlers.Response
// @Router /products/name/{name} [get]
func (h *ProductHandler) GetProductByName(c *gin.Context) {
	product, err := h.catalogService.GetProductByName(c, c.Param("name"))
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, "Product fetched.", product)
}

// Autocomplete godoc
// @Summary Autocomplete product names
// @Tags Products
// @Produce json
// @Param q query string true "Name prefix or substring"
// @Success 200 {object} handlers.Response
// @Router /products/autocomplete [get]
func (h *ProductHandler) Autocomplete(c *gin.Context) {
	suggestions, err := h.catalogService.Autocomplete(c, c.Query("q"))
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, "Suggestions fetched.", suggestions)
}

// GetCategories godoc
// @Summary List category names
// @Tags Products
// @Produce json
// @Success 200 {object} handlers.Response
// @Router /products/categories [get]
func (h *ProductHandler) GetCategories(c *gin.Context) {
	categories, err := h.catalogService.GetCategories(c)
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, "Categories fetched.", categories)
}

// GetBrands godoc
// @Summary List brand names
// @Tags Products
// @Produce json
// @Success 200 {object} handlers.Response
// @Router /products/brands [get]
func (h *ProductHandler) GetBrands(c *gin.Context) {
	brands, err := h.catalogService.GetBrands(c)
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, "Brands fetched.", brands)
}

// GetPriceRange godoc
// @Summary Get min/max price over a filtered slice
// @Tags Products
// @Produce json
// @Param brand query []string false "Brand names"
// @Param category query []string false "Category names"
// @Param rating query number false "Rating bucket lower bound"
// @Success 200 {object} handlers.Response
// @Router /products/price-range [get]
func (h *ProductHandler) GetPriceRange(c *gin.Context) {
	req := parseSearchRequest(c)
	priceRange, err := h.catalogService.GetPriceRange(c, req)
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, "Price range fetched.", priceRange)
}

// CreateProduct godoc
// @Summary Create a product
// @Tags Products
// @Accept json
// @Produce json
// @Param product body models.CreateProductRequest true "Product data"
// @Success 201 {object} handlers.Response
// @Failure 400 {object} handlers.Response
// @Router /products [post]
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": gin.H{"message": err.Error()}})
		return
	}
	product, err := h.productService.CreateProduct(c, &req)
	if err != nil {
		c.Error(err)
		return
	}
	respondCreated(c, "Product created.", product)
}

// UpdateProduct godoc
// @Summary Update a product
// @Tags Products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param product body models.UpdateProductRequest true "Fields to update"
// @Success 200 {object} handlers.Response
// @Failure 400 {object} handlers.Response
// @Failure 404 {object} handlers.Response
// @Router /products/{id} [put]
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": gin.H{"message": err.Error()}})
		return
	}
	product, err := h.productService.UpdateProduct(c, c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, "Product updated.", product)
}

// DeleteProduct godoc
// @Summary Delete a product
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} handlers.Response
// @Failure 404 {object} handlers.Response
// @Router /products/{id} [delete]
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.productService.DeleteProduct(c, c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	respondOK(c, "Product deleted.", nil)
}

// parseSearchRequest reads the shared filter params. Brand and category accept
// repeated params and comma-separated values.
func parseSearchRequest(c *gin.Context) *models.SearchRequest {
	page, limit := utils.ParsePagination(c)
	req := &models.SearchRequest{
		Name:       c.Query("name"),
		Brands:     splitMulti(c.QueryArray("brand")),
		Categories: splitMulti(c.QueryArray("category")),
		Page:       page,
		Limit:      limit,
	}
	if v, err := strconv.ParseFloat(c.Query("minPrice"), 64); err == nil {
		req.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(c.Query("maxPrice"), 64); err == nil {
		req.MaxPrice = &v
	}
	if v, err := strconv.ParseFloat(c.Query("rating"), 64); err == nil {
		req.Rating = &v
	}
	return req
}

func splitMulti(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
