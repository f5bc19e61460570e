package validators

import (
	"fmt"

	"shopstack-products/internal/models"
)

type productValidator struct{}

func NewProductValidator() ProductValidator {
	return &productValidator{}
}

func validStatus(status string) bool {
	switch status {
	case models.StatusActive, models.StatusInactive, models.StatusDiscontinued:
		return true
	}
	return false
}

func (v *productValidator) ValidateCreate(req *models.CreateProductRequest) error {
	if req.Name == "" || req.Brand == "" || req.Category == "" {
		return fmt.Errorf("name, brand and category are required")
	}
	if req.Price == nil {
		return fmt.Errorf("price is required")
	}
	if *req.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	if req.Rating != nil && (*req.Rating < 0 || *req.Rating > 5) {
		return fmt.Errorf("rating must be between 0 and 5")
	}
	if req.Quantity != nil && *req.Quantity < 0 {
		return fmt.Errorf("quantity must not be negative")
	}
	if req.Status != "" && !validStatus(req.Status) {
		return fmt.Errorf("status must be one of active, inactive, discontinued")
	}
	return nil
}

func (v *productValidator) ValidateUpdate(req *models.UpdateProductRequest) error {
	if req.Name != nil && *req.Name == "" {
		return fmt.Errorf("name must not be empty")
	}
	if req.Price != nil && *req.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	if req.Rating != nil && (*req.Rating < 0 || *req.Rating > 5) {
		return fmt.Errorf("rating must be between 0 and 5")
	}
	if req.Quantity != nil && *req.Quantity < 0 {
		return fmt.Errorf("quantity must not be negative")
	}
	if req.Status != nil && !validStatus(*req.Status) {
		return fmt.Errorf("status must be one of active, inactive, discontinued")
	}
	return nil
}

func (v *productValidator) ValidateSearch(req *models.SearchRequest) error {
	if req.MinPrice != nil && *req.MinPrice < 0 {
		return fmt.Errorf("minimum price must not be negative")
	}
	if req.MaxPrice != nil && *req.MaxPrice < 0 {
		return fmt.Errorf("maximum price must not be negative")
	}
	if req.MinPrice != nil && req.MaxPrice != nil && *req.MinPrice > *req.MaxPrice {
		return fmt.Errorf("minimum price must not exceed maximum price")
	}
	if req.Rating != nil && (*req.Rating < 0 || *req.Rating > 5) {
		return fmt.Errorf("rating must be between 0 and 5")
	}
	return nil
}
