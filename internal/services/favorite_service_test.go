package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "shopstack-products/internal/errors"
	"shopstack-products/internal/models"
)

type favoriteFixture struct {
	service   *FavoriteService
	favorites *fakeFavoriteRepo
	repo      *fakeProductRepo
}

func newFavoriteFixture() *favoriteFixture {
	favorites := newFakeFavoriteRepo()
	repo := newFakeProductRepo()
	return &favoriteFixture{
		service:   NewFavoriteService(favorites, repo),
		favorites: favorites,
		repo:      repo,
	}
}

func TestToggleAddsThenRemoves(t *testing.T) {
	f := newFavoriteFixture()
	product := f.repo.add(models.Product{ID: primitive.NewObjectID(), Name: "Smart TV", Price: 100})
	favorite, err := f.service.CreateFavorite(context.Background())
	require.NoError(t, err)

	favorited, err := f.service.ToggleProduct(context.Background(), favorite.ID.Hex(), product.ID.Hex())
	require.NoError(t, err)
	assert.True(t, favorited)

	view, err := f.service.GetFavorite(context.Background(), favorite.ID.Hex())
	require.NoError(t, err)
	require.Len(t, view.Products, 1)
	assert.Equal(t, 1, view.Quantity)

	favorited, err = f.service.ToggleProduct(context.Background(), favorite.ID.Hex(), product.ID.Hex())
	require.NoError(t, err)
	assert.False(t, favorited)

	view, err = f.service.GetFavorite(context.Background(), favorite.ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, view.Products)
	assert.Equal(t, 0, view.Quantity)
}

func TestToggleUnknownProduct(t *testing.T) {
	f := newFavoriteFixture()
	favorite, err := f.service.CreateFavorite(context.Background())
	require.NoError(t, err)

	_, err = f.service.ToggleProduct(context.Background(), favorite.ID.Hex(), primitive.NewObjectID().Hex())
	assertAppErrorCode(t, err, apperrors.ErrCodeNotFound)
}

func TestToggleUnknownList(t *testing.T) {
	f := newFavoriteFixture()
	product := f.repo.add(models.Product{ID: primitive.NewObjectID(), Name: "Smart TV"})

	_, err := f.service.ToggleProduct(context.Background(), primitive.NewObjectID().Hex(), product.ID.Hex())
	assertAppErrorCode(t, err, apperrors.ErrCodeNotFound)
}

func TestDeleteFavorite(t *testing.T) {
	f := newFavoriteFixture()
	favorite, err := f.service.CreateFavorite(context.Background())
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteFavorite(context.Background(), favorite.ID.Hex()))

	_, err = f.service.GetFavorite(context.Background(), favorite.ID.Hex())
	assertAppErrorCode(t, err, apperrors.ErrCodeNotFound)
}
