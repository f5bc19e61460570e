package services

import (
	"context"

	"shopstack-products/internal/errors"
	"shopstack-products/internal/models"
	"shopstack-products/internal/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FavoriteService manages favorites lists. Toggle is idempotent per state: the
// repository's guarded updates mean concurrent toggles of the same product
// settle on membership flipping exactly once.
type FavoriteService struct {
	favorites repositories.FavoriteRepository
	products  repositories.ProductRepository
}

func NewFavoriteService(
	favorites repositories.FavoriteRepository,
	products repositories.ProductRepository,
) *FavoriteService {
	return &FavoriteService{favorites: favorites, products: products}
}

func (s *FavoriteService) CreateFavorite(ctx context.Context) (*models.Favorite, error) {
	favorite := &models.Favorite{Favorites: []models.FavoriteItem{}}
	if err := s.favorites.Create(ctx, favorite); err != nil {
		return nil, errors.NewStoreFailure("favorite create failed", err)
	}
	return favorite, nil
}

func (s *FavoriteService) GetFavorite(ctx context.Context, id string) (*models.FavoriteView, error) {
	favorite, err := s.findFavorite(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, favorite)
}

// ToggleProduct removes the product if present, adds it otherwise, and
// returns the resulting membership.
func (s *FavoriteService) ToggleProduct(ctx context.Context, id, productID string) (bool, error) {
	favoriteID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, errors.NewInvalidIdentifier(errors.MsgInvalidID)
	}
	productObjectID, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return false, errors.NewInvalidIdentifier(errors.MsgInvalidID)
	}

	favorite, err := s.favorites.FindByID(ctx, favoriteID)
	if err != nil {
		return false, errors.NewStoreFailure("favorite lookup failed", err)
	}
	if favorite == nil {
		return false, errors.NewNotFound(errors.MsgFavoriteNotFound)
	}

	product, err := s.products.FindByID(ctx, productObjectID)
	if err != nil {
		return false, errors.NewStoreFailure("product lookup failed", err)
	}
	if product == nil {
		return false, errors.NewNotFound(errors.MsgProductNotFound)
	}

	pulled, err := s.favorites.PullProduct(ctx, favoriteID, productObjectID)
	if err != nil {
		return false, errors.NewStoreFailure("favorite toggle failed", err)
	}
	if pulled {
		return false, nil
	}

	pushed, err := s.favorites.PushProduct(ctx, favoriteID, productObjectID)
	if err != nil {
		return false, errors.NewStoreFailure("favorite toggle failed", err)
	}
	// A lost race on both guards means another toggle won; report membership
	// as it stands.
	return pushed, nil
}

func (s *FavoriteService) DeleteFavorite(ctx context.Context, id string) error {
	favoriteID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errors.NewInvalidIdentifier(errors.MsgInvalidID)
	}
	favorite, err := s.favorites.FindByID(ctx, favoriteID)
	if err != nil {
		return errors.NewStoreFailure("favorite lookup failed", err)
	}
	if favorite == nil {
		return errors.NewNotFound(errors.MsgFavoriteNotFound)
	}
	if err := s.favorites.Delete(ctx, favoriteID); err != nil {
		return errors.NewStoreFailure("favorite delete failed", err)
	}
	return nil
}

func (s *FavoriteService) findFavorite(ctx context.Context, id string) (*models.Favorite, error) {
	favoriteID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.NewInvalidIdentifier(errors.MsgInvalidID)
	}
	favorite, err := s.favorites.FindByID(ctx, favoriteID)
	if err != nil {
		return nil, errors.NewStoreFailure("favorite lookup failed", err)
	}
	if favorite == nil {
		return nil, errors.NewNotFound(errors.MsgFavoriteNotFound)
	}
	return favorite, nil
}

func (s *FavoriteService) buildView(ctx context.Context, favorite *models.Favorite) (*models.FavoriteView, error) {
	view := &models.FavoriteView{
		ID:       favorite.ID,
		Products: []models.Product{},
		Quantity: favorite.Quantity,
	}
	if len(favorite.Favorites) == 0 {
		return view, nil
	}

	ids := make([]primitive.ObjectID, 0, len(favorite.Favorites))
	for _, item := range favorite.Favorites {
		ids = append(ids, item.Product)
	}
	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, errors.NewStoreFailure("favorite product join failed", err)
	}
	view.Products = products
	return view, nil
}
