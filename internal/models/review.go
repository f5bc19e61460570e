package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review belongs to exactly one product and is immutable once created.
type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Product   primitive.ObjectID `bson:"product" json:"productId"`
	Author    string             `bson:"author" json:"author"`
	Rating    float64            `bson:"rating" json:"rating"`
	Comment   string             `bson:"comment" json:"comment"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
