package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FavoriteItem references a product at most once per favorites list.
type FavoriteItem struct {
	Product primitive.ObjectID `bson:"product" json:"productId"`
}

// Favorite is a favorites list. Quantity is a denormalized count kept equal to
// len(Favorites) by the same atomic update that mutates the list.
type Favorite struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Favorites []FavoriteItem     `bson:"favorites" json:"favorites"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// FavoriteView is the favorites list with products joined in.
type FavoriteView struct {
	ID       primitive.ObjectID `json:"id"`
	Products []Product          `json:"products"`
	Quantity int                `json:"quantity"`
}
