package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem pairs a product reference with a quantity of at least 1. A
// quantity of zero is represented by removing the item, never by storing it.
type CartItem struct {
	Product  primitive.ObjectID `bson:"product" json:"productId"`
	Quantity int                `bson:"quantity" json:"quantity"`
}

// Cart holds at most one item per product reference.
type Cart struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Items     []CartItem          `bson:"items" json:"items"`
	UserID    *primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// CartItemView is a cart item with its product joined in.
type CartItemView struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// CartView is the cart as returned to callers, with products joined and the
// subtotal computed.
type CartView struct {
	ID       primitive.ObjectID  `json:"id"`
	Items    []CartItemView      `json:"items"`
	UserID   *primitive.ObjectID `json:"userId,omitempty"`
	Subtotal float64             `json:"subtotal"`
}
