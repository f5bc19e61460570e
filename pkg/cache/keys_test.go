package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProductKey(t *testing.T) {
	assert.Equal(t, "product:id:665f1f77bcf86cd799439011", ProductKey("665f1f77bcf86cd799439011"))
}

func TestProductListingKey(t *testing.T) {
	key := ProductListingKey(`{"name":{"$options":"i","$regex":"tv"}}`, 2, 20)
	assert.Equal(t, `products:query:{"name":{"$options":"i","$regex":"tv"}}:page:2:limit:20`, key)
}

func TestProductListingKeyEmptyFilter(t *testing.T) {
	assert.Equal(t, "products:query:{}:page:1:limit:10", ProductListingKey("{}", 1, 10))
}

func TestStaticKeys(t *testing.T) {
	assert.Equal(t, "products:query:categories", CategoriesKey())
	assert.Equal(t, "products:query:brands", BrandsKey())
	assert.Equal(t, `products:query:price-range:{"rating":{"$gte":4,"$lt":5}}`, PriceRangeKey(`{"rating":{"$gte":4,"$lt":5}}`))
}

func TestRegistryConstants(t *testing.T) {
	assert.Equal(t, "active_product_listing_keys", ActiveListingKeysSet)
	assert.Equal(t, 300*time.Second, TTL)
}
