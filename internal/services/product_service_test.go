package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "shopstack-products/internal/errors"
	"shopstack-products/internal/models"
	"shopstack-products/internal/transformers"
	"shopstack-products/internal/validators"
)

type productFixture struct {
	catalog *CatalogService
	service *ProductService
	repo    *fakeProductRepo
	refs    *fakeReferenceRepo
	cache   *fakeProductCache
}

func newProductFixture() *productFixture {
	repo := newFakeProductRepo()
	refs := newFakeReferenceRepo()
	cache := newFakeProductCache()
	catTrans := transformers.NewCategoryTransformer()
	validator := validators.NewProductValidator()
	return &productFixture{
		catalog: NewCatalogService(repo, refs, cache, catTrans, validator),
		service: NewProductService(repo, refs, cache, catTrans, validator),
		repo:    repo,
		refs:    refs,
		cache:   cache,
	}
}

func createRequest() *models.CreateProductRequest {
	return &models.CreateProductRequest{
		Name:     "Smart TV",
		Brand:    "Samsung",
		Category: "Home Appliances",
		Price:    floatPtr(499.99),
		Quantity: intPtr(5),
	}
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestCreateProductResolvesReferences(t *testing.T) {
	f := newProductFixture()

	product, err := f.service.CreateProduct(context.Background(), createRequest())
	require.NoError(t, err)
	assert.False(t, product.ID.IsZero())
	assert.Equal(t, "Samsung", product.BrandName)
	assert.Equal(t, "home-appliances", product.CategorySlug)
	assert.Equal(t, models.StatusActive, product.Status)

	// A second product with the same references reuses the entities.
	req := createRequest()
	req.Name = "Bigger TV"
	second, err := f.service.CreateProduct(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, product.Brand, second.Brand)
	assert.Equal(t, product.Category, second.Category)

	brands, err := f.refs.ListBrands(context.Background())
	require.NoError(t, err)
	assert.Len(t, brands, 1)
}

func TestCreateProductValidation(t *testing.T) {
	f := newProductFixture()

	req := createRequest()
	req.Price = nil
	_, err := f.service.CreateProduct(context.Background(), req)
	assertAppErrorCode(t, err, apperrors.ErrCodeValidationFailure)
}

func TestWriteSweepsCachedListings(t *testing.T) {
	f := newProductFixture()
	f.repo.add(models.Product{ID: primitive.NewObjectID(), Name: "Existing", Price: 10, Quantity: 1})

	listing, err := f.catalog.GetProducts(context.Background(), &models.SearchRequest{})
	require.NoError(t, err)
	assert.Len(t, listing.Products, 1)
	require.Equal(t, 1, f.cache.listingCount())

	_, err = f.service.CreateProduct(context.Background(), createRequest())
	require.NoError(t, err)
	assert.Equal(t, 0, f.cache.listingCount())

	// The next listing read sees the new product.
	listing, err = f.catalog.GetProducts(context.Background(), &models.SearchRequest{})
	require.NoError(t, err)
	assert.Len(t, listing.Products, 2)
}

func TestUpdateProduct(t *testing.T) {
	f := newProductFixture()
	created, err := f.service.CreateProduct(context.Background(), createRequest())
	require.NoError(t, err)

	updated, err := f.service.UpdateProduct(context.Background(), created.ID.Hex(), &models.UpdateProductRequest{Price: floatPtr(399)})
	require.NoError(t, err)
	assert.Equal(t, 399.0, updated.Price)

	// The by-ID cache entry was rewritten with the new state.
	cached, err := f.cache.GetProduct(context.Background(), created.ID.Hex())
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, 399.0, cached.Price)
}

func TestUpdateProductNotFound(t *testing.T) {
	f := newProductFixture()
	_, err := f.service.UpdateProduct(context.Background(), primitive.NewObjectID().Hex(), &models.UpdateProductRequest{Price: floatPtr(1)})
	assertAppErrorCode(t, err, apperrors.ErrCodeNotFound)
}

func TestUpdateProductNoFields(t *testing.T) {
	f := newProductFixture()
	created, err := f.service.CreateProduct(context.Background(), createRequest())
	require.NoError(t, err)

	_, err = f.service.UpdateProduct(context.Background(), created.ID.Hex(), &models.UpdateProductRequest{})
	assertAppErrorCode(t, err, apperrors.ErrCodeValidationFailure)
}

func TestDeleteProduct(t *testing.T) {
	f := newProductFixture()
	created, err := f.service.CreateProduct(context.Background(), createRequest())
	require.NoError(t, err)

	// Prime both cache shapes.
	_, err = f.catalog.GetProducts(context.Background(), &models.SearchRequest{})
	require.NoError(t, err)
	_, err = f.catalog.GetProductByID(context.Background(), created.ID.Hex())
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteProduct(context.Background(), created.ID.Hex()))
	assert.Equal(t, 0, f.cache.listingCount())

	cached, err := f.cache.GetProduct(context.Background(), created.ID.Hex())
	require.NoError(t, err)
	assert.Nil(t, cached)

	_, err = f.catalog.GetProductByID(context.Background(), created.ID.Hex())
	assertAppErrorCode(t, err, apperrors.ErrCodeNotFound)
}

func TestDeleteProductNotFound(t *testing.T) {
	f := newProductFixture()
	err := f.service.DeleteProduct(context.Background(), primitive.NewObjectID().Hex())
	assertAppErrorCode(t, err, apperrors.ErrCodeNotFound)
}
