package models

// SearchRequest is the loosely-typed product search input. Brands and
// Categories accept one or many names; unset price bounds and rating are nil.
type SearchRequest struct {
	Name       string
	Brands     []string
	Categories []string
	MinPrice   *float64
	MaxPrice   *float64
	Rating     *float64
	Page       int
	Limit      int
}

// CreateProductRequest carries brand and category as free-text names; the
// reference resolver turns them into entity ids, creating entities on first use.
type CreateProductRequest struct {
	Name        string   `json:"name"`
	Brand       string   `json:"brand"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Price       *float64 `json:"price"`
	Rating      *float64 `json:"rating"`
	Quantity    *int     `json:"quantity"`
	Status      string   `json:"status"`
	ImageURL    string   `json:"image_url"`
	Images      []string `json:"images"`
}

// UpdateProductRequest updates only the fields that are set.
type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Brand       *string  `json:"brand"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price"`
	Rating      *float64 `json:"rating"`
	Quantity    *int     `json:"quantity"`
	Status      *string  `json:"status"`
	ImageURL    *string  `json:"image_url"`
	Images      []string `json:"images"`
}

type CreateCartRequest struct {
	UserID string `json:"userId"`
}

type UpdateCartRequest struct {
	Items []CartItemRequest `json:"items"`
}

type CartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type UpsertCartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  *int   `json:"quantity"`
}

type RemoveCartItemRequest struct {
	ProductID string `json:"productId"`
}

type ToggleFavoriteRequest struct {
	ProductID string `json:"productId"`
}

type CreateReviewRequest struct {
	Author  string   `json:"author"`
	Rating  *float64 `json:"rating"`
	Comment string   `json:"comment"`
}
