// Package cache provides Redis caching for the product catalog, including the
// listing key registry used to invalidate every cached listing on writes.
package cache

import (
	"fmt"
	"time"
)

const (
	// ProductByIDPrefix prefixes direct by-ID cache entries. These keys are
	// addressed explicitly and never enumerated, so they are not registered.
	ProductByIDPrefix = "product:id:"

	// ProductQueryPrefix prefixes every listing-style cache entry.
	ProductQueryPrefix = "products:query:"

	// ActiveListingKeysSet is the registry: a Redis set holding every listing
	// key produced since the last invalidation sweep.
	ActiveListingKeysSet = "active_product_listing_keys"

	// TTL applies uniformly to all cache entries.
	TTL = 300 * time.Second
)

// cache key for a single product addressed by ID.
func ProductKey(id string) string {
	return ProductByIDPrefix + id
}

// cache key for a filtered, paginated product listing. The filter portion must
// be a canonical serialization so logically identical queries share a key.
func ProductListingKey(canonicalFilter string, page, limit int) string {
	return fmt.Sprintf("%s%s:page:%d:limit:%d", ProductQueryPrefix, canonicalFilter, page, limit)
}

// cache key for the category listing.
func CategoriesKey() string {
	return ProductQueryPrefix + "categories"
}

// cache key for the brand listing.
func BrandsKey() string {
	return ProductQueryPrefix + "brands"
}

// cache key for a price-range aggregate over a canonical filter.
func PriceRangeKey(canonicalFilter string) string {
	return ProductQueryPrefix + "price-range:" + canonicalFilter
}
