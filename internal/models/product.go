package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product status values.
const (
	StatusActive       = "active"
	StatusInactive     = "inactive"
	StatusDiscontinued = "discontinued"
)

// Product is a catalog entry. Brand and Category are references into their own
// collections; BrandName and CategorySlug are filled by the explicit join step
// in the repository and never persisted.
type Product struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Brand        primitive.ObjectID `bson:"brand" json:"-"`
	BrandName    string             `bson:"brandName,omitempty" json:"brand,omitempty"`
	Category     primitive.ObjectID `bson:"category" json:"-"`
	CategorySlug string             `bson:"categorySlug,omitempty" json:"category,omitempty"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	Price        float64            `bson:"price" json:"price"`
	Rating       float64            `bson:"rating" json:"rating"`
	Quantity     int                `bson:"quantity" json:"quantity"`
	Status       string             `bson:"status" json:"status"`
	ImageURL     string             `bson:"image_url" json:"image_url"`
	Images       []string           `bson:"images" json:"images"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ProductSuggestion is the autocomplete projection.
type ProductSuggestion struct {
	ID   primitive.ObjectID `bson:"_id" json:"id"`
	Name string             `bson:"name" json:"name"`
}

// ProductListing is the paginated listing payload; it is what gets cached
// under a listing key.
type ProductListing struct {
	Products   []Product `json:"products"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	Total      int64     `json:"total"`
	TotalPages int       `json:"totalPages"`
}

// PriceRange is the min/max price aggregate over a filter.
type PriceRange struct {
	Min float64 `bson:"min" json:"min"`
	Max float64 `bson:"max" json:"max"`
}

// StockBreakdown buckets products by remaining stock.
type StockBreakdown struct {
	InStock  int `json:"inStock"`
	LowStock int `json:"lowStock"`
	NoStock  int `json:"noStock"`
}

// StatusBreakdown counts products per lifecycle status.
type StatusBreakdown struct {
	Active       int `json:"active"`
	Inactive     int `json:"inactive"`
	Discontinued int `json:"discontinued"`
}

// DashboardKPI is the admin dashboard aggregate.
type DashboardKPI struct {
	TotalAssetValue     float64         `json:"totalAssetValue"`
	TotalUniqueProducts int             `json:"totalUniqueProducts"`
	TotalStock          int             `json:"totalStock"`
	StockBreakdown      StockBreakdown  `json:"stockBreakdown"`
	StatusBreakdown     StatusBreakdown `json:"statusBreakdown"`
}
