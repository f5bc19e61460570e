package services

import (
	"context"

	"shopstack-products/internal/errors"
	"shopstack-products/internal/models"
	"shopstack-products/internal/repositories"
	"shopstack-products/internal/validators"
	"shopstack-products/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartService manages carts and the checkout path. Cart mutations are
// single-document atomic updates; checkout is the only operation that touches
// product stock and it invalidates the product cache for the items it sold.
type CartService struct {
	carts     repositories.CartRepository
	products  repositories.ProductRepository
	cache     repositories.ProductCache
	validator validators.CartValidator
}

func NewCartService(
	carts repositories.CartRepository,
	products repositories.ProductRepository,
	productCache repositories.ProductCache,
	validator validators.CartValidator,
) *CartService {
	return &CartService{
		carts:     carts,
		products:  products,
		cache:     productCache,
		validator: validator,
	}
}

func (s *CartService) CreateCart(ctx context.Context, req *models.CreateCartRequest) (*models.Cart, error) {
	cart := &models.Cart{Items: []models.CartItem{}}
	if req.UserID != "" {
		userID, err := primitive.ObjectIDFromHex(req.UserID)
		if err != nil {
			return nil, errors.NewInvalidIdentifier(errors.MsgInvalidID)
		}
		cart.UserID = &userID
	}
	if err := s.carts.Create(ctx, cart); err != nil {
		return nil, errors.NewStoreFailure("cart create failed", err)
	}
	return cart, nil
}

func (s *CartService) GetCart(ctx context.Context, id string) (*models.CartView, error) {
	cart, err := s.findCart(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, cart)
}

// UpdateCart replaces the cart's items wholesale after validating each item
// against current stock.
func (s *CartService) UpdateCart(ctx context.Context, id string, req *models.UpdateCartRequest) (*models.CartView, error) {
	cartID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.NewInvalidIdentifier(errors.MsgInvalidID)
	}
	if err := s.validator.ValidateItems(req.Items); err != nil {
		return nil, errors.NewValidationFailure(err.Error())
	}

	items := make([]models.CartItem, 0, len(req.Items))
	for _, item := range req.Items {
		productID, _ := primitive.ObjectIDFromHex(item.ProductID)
		if err := s.checkStock(ctx, productID, item.Quantity); err != nil {
			return nil, err
		}
		items = append(items, models.CartItem{Product: productID, Quantity: item.Quantity})
	}

	cart, err := s.carts.ReplaceItems(ctx, cartID, items)
	if err != nil {
		return nil, errors.NewStoreFailure("cart update failed", err)
	}
	if cart == nil {
		return nil, errors.NewNotFound(errors.MsgCartNotFound)
	}
	return s.buildView(ctx, cart)
}

// UpsertItem sets the quantity of one item. Quantity zero removes the item; a
// product not yet in the cart is added. An omitted quantity defaults to 1.
func (s *CartService) UpsertItem(ctx context.Context, id string, req *models.UpsertCartItemRequest) (*models.CartView, error) {
	cartID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.NewInvalidIdentifier(errors.MsgInvalidID)
	}
	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return nil, errors.NewInvalidIdentifier(errors.MsgInvalidID)
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if err := s.validator.ValidateQuantity(quantity); err != nil {
		return nil, errors.NewValidationFailure(err.Error())
	}

	if quantity == 0 {
		return s.removeItem(ctx, cartID, productID)
	}

	if err := s.checkStock(ctx, productID, quantity); err != nil {
		return nil, err
	}

	cart, matched, err := s.carts.SetItemQuantity(ctx, cartID, productID, quantity)
	if err != nil {
		return nil, errors.NewStoreFailure("cart item update failed", err)
	}
	if !matched {
		cart, err = s.carts.PushItem(ctx, cartID, models.CartItem{Product: productID, Quantity: quantity})
		if err != nil {
			return nil, errors.NewStoreFailure("cart item insert failed", err)
		}
		if cart == nil {
			// A concurrent insert of the same product can land between the two
			// updates and trip the push guard; retry the set path before
			// concluding the cart is gone.
			cart, _, err = s.carts.SetItemQuantity(ctx, cartID, productID, quantity)
			if err != nil {
				return nil, errors.NewStoreFailure("cart item update failed", err)
			}
		}
	}
	if cart == nil {
		return nil, errors.NewNotFound(errors.MsgCartNotFound)
	}
	return s.buildView(ctx, cart)
}

func (s *CartService) RemoveItem(ctx context.Context, id, productID string) (*models.CartView, error) {
	cartID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.NewInvalidIdentifier(errors.MsgInvalidID)
	}
	productObjectID, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, errors.NewInvalidIdentifier(errors.MsgInvalidID)
	}
	return s.removeItem(ctx, cartID, productObjectID)
}

func (s *CartService) DeleteCart(ctx context.Context, id string) error {
	cartID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errors.NewInvalidIdentifier(errors.MsgInvalidID)
	}
	cart, err := s.carts.FindByID(ctx, cartID)
	if err != nil {
		return errors.NewStoreFailure("cart lookup failed", err)
	}
	if cart == nil {
		return errors.NewNotFound(errors.MsgCartNotFound)
	}
	if err := s.carts.Delete(ctx, cartID); err != nil {
		return errors.NewStoreFailure("cart delete failed", err)
	}
	return nil
}

// Checkout decrements stock for every item and empties the cart. Each item is
// decremented under a stock-sufficiency predicate; on the first failure the
// already-applied decrements are restored and nothing is sold. Successful
// checkouts invalidate the product cache for every sold item.
func (s *CartService) Checkout(ctx context.Context, id string) (*models.CartView, error) {
	cartID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.NewInvalidIdentifier(errors.MsgInvalidID)
	}
	cart, err := s.carts.FindByID(ctx, cartID)
	if err != nil {
		return nil, errors.NewStoreFailure("cart lookup failed", err)
	}
	if cart == nil {
		return nil, errors.NewNotFound(errors.MsgCartNotFound)
	}
	if len(cart.Items) == 0 {
		return nil, errors.NewValidationFailure(errors.MsgEmptyCart)
	}

	// The joined view is built before the stock decrement so the response
	// reflects the prices the items sold at.
	view, err := s.buildView(ctx, cart)
	if err != nil {
		return nil, err
	}

	applied, err := s.products.DecrementStock(ctx, cart.Items)
	if err != nil {
		if err == repositories.ErrInsufficientStock {
			if compErr := s.products.IncrementStock(ctx, applied); compErr != nil {
				logger.GlobalLogger.Errorf("Stock compensation failed: cart=%s, error=%v", id, compErr)
			}
			return nil, errors.NewValidationFailure(errors.MsgInsufficientStock)
		}
		return nil, errors.NewStoreFailure("stock decrement failed", err)
	}

	// The sale is only committed once the cart is emptied; a retried checkout
	// against a cart still holding sold items would decrement stock twice.
	// When the clear fails the decrements are rolled back and the checkout
	// fails as a whole.
	if _, err := s.carts.ClearItems(ctx, cartID); err != nil {
		logger.GlobalLogger.Errorf("Failed to clear cart after checkout: cart=%s, error=%v", id, err)
		if compErr := s.products.IncrementStock(ctx, cart.Items); compErr != nil {
			logger.GlobalLogger.Errorf("Stock compensation failed: cart=%s, error=%v", id, compErr)
		}
		return nil, errors.NewStoreFailure("cart clear failed", err)
	}

	ids := make([]string, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.Product.Hex())
	}
	if err := s.cache.Invalidate(ctx, ids); err != nil {
		logger.GlobalLogger.Warnf("Cache invalidation failed after checkout: cart=%s, error=%v", id, err)
	}

	return view, nil
}

func (s *CartService) findCart(ctx context.Context, id string) (*models.Cart, error) {
	cartID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.NewInvalidIdentifier(errors.MsgInvalidID)
	}
	cart, err := s.carts.FindByID(ctx, cartID)
	if err != nil {
		return nil, errors.NewStoreFailure("cart lookup failed", err)
	}
	if cart == nil {
		return nil, errors.NewNotFound(errors.MsgCartNotFound)
	}
	return cart, nil
}

func (s *CartService) removeItem(ctx context.Context, cartID, productID primitive.ObjectID) (*models.CartView, error) {
	cart, pulled, err := s.carts.PullItem(ctx, cartID, productID)
	if err != nil {
		return nil, errors.NewStoreFailure("cart item removal failed", err)
	}
	if !pulled {
		// The pull filter matches on the item, so an absent item yields no
		// document even when the cart exists. Removing an item that is not in
		// the cart is a no-op returning the cart as it stands.
		cart, err = s.carts.FindByID(ctx, cartID)
		if err != nil {
			return nil, errors.NewStoreFailure("cart lookup failed", err)
		}
		if cart == nil {
			return nil, errors.NewNotFound(errors.MsgCartNotFound)
		}
	}
	return s.buildView(ctx, cart)
}

func (s *CartService) checkStock(ctx context.Context, productID primitive.ObjectID, quantity int) error {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return errors.NewStoreFailure("product lookup failed", err)
	}
	if product == nil {
		return errors.NewNotFound(errors.MsgProductNotFound)
	}
	if product.Quantity < quantity {
		return errors.NewValidationFailure(errors.MsgInsufficientStock)
	}
	return nil
}

// buildView joins products into the cart and computes the subtotal. Items
// whose product has since been deleted are dropped from the view.
func (s *CartService) buildView(ctx context.Context, cart *models.Cart) (*models.CartView, error) {
	view := &models.CartView{
		ID:     cart.ID,
		UserID: cart.UserID,
		Items:  []models.CartItemView{},
	}
	if len(cart.Items) == 0 {
		return view, nil
	}

	ids := make([]primitive.ObjectID, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.Product)
	}
	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, errors.NewStoreFailure("cart product join failed", err)
	}

	byID := make(map[primitive.ObjectID]models.Product, len(products))
	for _, product := range products {
		byID[product.ID] = product
	}
	for _, item := range cart.Items {
		product, ok := byID[item.Product]
		if !ok {
			continue
		}
		view.Items = append(view.Items, models.CartItemView{Product: product, Quantity: item.Quantity})
		view.Subtotal += product.Price * float64(item.Quantity)
	}
	return view, nil
}
