package validators

import (
	"shopstack-products/internal/models"
)

type ProductValidator interface {
	ValidateCreate(req *models.CreateProductRequest) error
	ValidateUpdate(req *models.UpdateProductRequest) error
	ValidateSearch(req *models.SearchRequest) error
}

type CartValidator interface {
	ValidateItems(items []models.CartItemRequest) error
	ValidateQuantity(quantity int) error
}
