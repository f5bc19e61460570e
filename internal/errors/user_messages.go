package errors

// User-facing messages for mapped errors.
const (
	MsgProductNotFound    = "Product not found."
	MsgProductsNotFound   = "No products found."
	MsgCategoriesNotFound = "No categories found."
	MsgBrandsNotFound     = "No brands found."
	MsgCartNotFound       = "Cart not found."
	MsgFavoriteNotFound   = "Favorite not found."
	MsgInvalidID          = "Invalid ID."
	MsgEmptyCart          = "Cart is empty."
	MsgInsufficientStock  = "Insufficient stock."
	MsgInternalError      = "Internal server error."
)
