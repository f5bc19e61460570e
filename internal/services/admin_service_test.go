package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopstack-products/internal/models"
)

func TestAdminListProductsAllowsEmptyPages(t *testing.T) {
	repo := newFakeProductRepo()
	service := NewAdminService(repo, newFakeReferenceRepo())

	listing, err := service.ListProducts(context.Background(), &models.SearchRequest{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, listing.Products)
	assert.Equal(t, int64(0), listing.Total)
}

func TestAdminListProductsBypassesCache(t *testing.T) {
	repo := newFakeProductRepo()
	service := NewAdminService(repo, newFakeReferenceRepo())
	repo.add(models.Product{ID: primitive.NewObjectID(), Name: "A", Price: 1, Quantity: 1})

	listing, err := service.ListProducts(context.Background(), &models.SearchRequest{})
	require.NoError(t, err)
	assert.Len(t, listing.Products, 1)

	repo.add(models.Product{ID: primitive.NewObjectID(), Name: "B", Price: 2, Quantity: 1})
	listing, err = service.ListProducts(context.Background(), &models.SearchRequest{})
	require.NoError(t, err)
	assert.Len(t, listing.Products, 2)
}

func TestDashboardKPI(t *testing.T) {
	repo := newFakeProductRepo()
	service := NewAdminService(repo, newFakeReferenceRepo())
	repo.add(models.Product{ID: primitive.NewObjectID(), Name: "A", Price: 100, Quantity: 3})
	repo.add(models.Product{ID: primitive.NewObjectID(), Name: "B", Price: 50, Quantity: 0})

	kpi, err := service.DashboardKPI(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, kpi.TotalUniqueProducts)
	assert.Equal(t, 3, kpi.TotalStock)
	assert.Equal(t, 300.0, kpi.TotalAssetValue)
}
