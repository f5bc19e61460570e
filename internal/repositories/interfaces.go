package repositories

import (
	"context"
	"errors"

	"shopstack-products/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrInsufficientStock is returned by DecrementStock when a conditional
// decrement finds less stock than requested.
var ErrInsufficientStock = errors.New("insufficient stock")

// ProductRepository is the catalog store surface for products. FindByID and
// friends return (nil, nil) when no document matches.
type ProductRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	FindByName(ctx context.Context, name string) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error)
	Find(ctx context.Context, filter bson.M, page, limit int) ([]models.Product, int64, error)
	FindSummaries(ctx context.Context, filter bson.M, page, limit int) ([]models.Product, int64, error)
	Autocomplete(ctx context.Context, term string, limit int) ([]models.ProductSuggestion, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	PriceRange(ctx context.Context, filter bson.M) (*models.PriceRange, error)
	DashboardKPI(ctx context.Context) (*models.DashboardKPI, error)

	// DecrementStock applies conditional per-item decrements (quantity stays
	// >= 0 by predicate) and returns the items it decremented. When an item
	// cannot be satisfied it stops and returns the applied prefix together
	// with ErrInsufficientStock so the caller can compensate.
	DecrementStock(ctx context.Context, items []models.CartItem) ([]models.CartItem, error)

	// IncrementStock restores stock for the given items in one batched write.
	IncrementStock(ctx context.Context, items []models.CartItem) error
}

// ReferenceRepository resolves brand and category entities. Resolve* upsert by
// exact name (creation path); Find*ByName match case-insensitive substrings
// (filter path) and return (nil, nil) when nothing matches.
type ReferenceRepository interface {
	ResolveBrand(ctx context.Context, name string) (*models.Brand, error)
	ResolveCategory(ctx context.Context, slug string) (*models.Category, error)
	FindBrandByName(ctx context.Context, name string) (*models.Brand, error)
	FindCategoryByName(ctx context.Context, name string) (*models.Category, error)
	ListBrands(ctx context.Context) ([]models.Brand, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
}

// CartRepository mutates carts through atomic single-document array updates.
type CartRepository interface {
	Create(ctx context.Context, cart *models.Cart) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Cart, error)
	ReplaceItems(ctx context.Context, id primitive.ObjectID, items []models.CartItem) (*models.Cart, error)
	SetItemQuantity(ctx context.Context, cartID, productID primitive.ObjectID, quantity int) (*models.Cart, bool, error)
	PushItem(ctx context.Context, cartID primitive.ObjectID, item models.CartItem) (*models.Cart, error)
	PullItem(ctx context.Context, cartID, productID primitive.ObjectID) (*models.Cart, bool, error)
	ClearItems(ctx context.Context, id primitive.ObjectID) (*models.Cart, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// FavoriteRepository mutates favorites lists. PullProduct and PushProduct are
// guarded test-and-mutate operations so concurrent toggles cannot double-apply.
type FavoriteRepository interface {
	Create(ctx context.Context, favorite *models.Favorite) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Favorite, error)
	PullProduct(ctx context.Context, id, productID primitive.ObjectID) (bool, error)
	PushProduct(ctx context.Context, id, productID primitive.ObjectID) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ReviewRepository persists immutable product reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	FindByProduct(ctx context.Context, productID primitive.ObjectID) ([]models.Review, error)
}

// ProductCache is the cache store surface used by the services. GetProduct
// and GetListing report a miss as (nil, nil) / (false, nil); a store failure
// is an error the caller may treat as a miss.
type ProductCache interface {
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	SetProduct(ctx context.Context, id string, product *models.Product) error
	GetListing(ctx context.Context, key string, dest interface{}) (bool, error)
	SetListing(ctx context.Context, key string, value interface{}) error
	Invalidate(ctx context.Context, productIDs []string) error
}
