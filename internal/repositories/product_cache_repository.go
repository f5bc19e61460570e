package repositories

import (
	"context"

	"shopstack-products/internal/models"
	"shopstack-products/pkg/cache"
)

// productCache adapts the shared Redis cache package to the ProductCache
// interface the services depend on.
type productCache struct{}

func NewProductCache() ProductCache {
	return &productCache{}
}

func (c *productCache) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := cache.Get(ctx, cache.ProductKey(id), &product)
	if err == cache.ErrCacheMiss {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *productCache) SetProduct(ctx context.Context, id string, product *models.Product) error {
	return cache.Set(ctx, cache.ProductKey(id), product)
}

func (c *productCache) GetListing(ctx context.Context, key string, dest interface{}) (bool, error) {
	err := cache.Get(ctx, key, dest)
	if err == cache.ErrCacheMiss {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (c *productCache) SetListing(ctx context.Context, key string, value interface{}) error {
	return cache.SetListing(ctx, key, value)
}

func (c *productCache) Invalidate(ctx context.Context, productIDs []string) error {
	return cache.InvalidateProductCache(ctx, productIDs)
}
