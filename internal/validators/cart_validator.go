package validators

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopstack-products/internal/models"
)

type cartValidator struct{}

func NewCartValidator() CartValidator {
	return &cartValidator{}
}

func (v *cartValidator) ValidateItems(items []models.CartItemRequest) error {
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if _, err := primitive.ObjectIDFromHex(item.ProductID); err != nil {
			return fmt.Errorf("invalid product id %q", item.ProductID)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("quantity must be positive for product %s", item.ProductID)
		}
		if seen[item.ProductID] {
			return fmt.Errorf("duplicate product %s in cart items", item.ProductID)
		}
		seen[item.ProductID] = true
	}
	return nil
}

func (v *cartValidator) ValidateQuantity(quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("quantity must not be negative")
	}
	return nil
}
