package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"shopstack-products/pkg/logger"
	"shopstack-products/pkg/metrics"
)

// SetListing caches a listing payload with the uniform TTL and adds its key to
// the listing key registry. Listing keys must go through here rather than Set,
// or the invalidation sweep cannot find them.
func SetListing(ctx context.Context, key string, value interface{}) error {
	start := time.Now()
	payload, err := json.Marshal(value)
	if err != nil {
		metrics.RedisErrorsTotal.WithLabelValues("set_listing_marshal").Inc()
		logger.GlobalLogger.Errorf("failed to marshal listing for key %s: %v", key, err)
		return NewCacheError("set_listing_marshal", err, true)
	}

	keys := []string{key, ActiveListingKeysSet}
	args := []interface{}{string(payload), strconv.Itoa(int(TTL.Seconds()))}

	_, err = registerListingKeyScript.Run(ctx, RedisClient, keys, args...).Result()
	duration := time.Since(start).Seconds()
	metrics.RedisOperationDuration.WithLabelValues("set_listing").Observe(duration)
	if err != nil {
		metrics.RedisErrorsTotal.WithLabelValues("set_listing").Inc()
		logger.GlobalLogger.Errorf("failed to register listing key %s: %v", key, err)
		return NewCacheError("set_listing", err, false)
	}
	return nil
}

// ListingKeys returns the current registry membership.
func ListingKeys(ctx context.Context) ([]string, error) {
	start := time.Now()
	members, err := RedisClient.SMembers(ctx, ActiveListingKeysSet).Result()
	duration := time.Since(start).Seconds()
	metrics.RedisOperationDuration.WithLabelValues("smembers").Observe(duration)
	if err != nil {
		metrics.RedisErrorsTotal.WithLabelValues("smembers").Inc()
		logger.GlobalLogger.Errorf("failed to read listing key registry: %v", err)
		return nil, NewCacheError("smembers", err, false)
	}
	return members, nil
}

// InvalidateProductCache purges every registered listing key plus the direct
// by-ID entries for the given products. Any write to the catalog invalidates
// all listings; there is no partial invalidation by filter. The two deletions
// are independent and both commute, so ordering does not matter.
func InvalidateProductCache(ctx context.Context, productIDs []string) error {
	if len(productIDs) > 0 {
		keys := make([]string, 0, len(productIDs))
		for _, id := range productIDs {
			keys = append(keys, ProductKey(id))
		}
		start := time.Now()
		err := RedisClient.Del(ctx, keys...).Err()
		metrics.RedisOperationDuration.WithLabelValues("del_by_id").Observe(time.Since(start).Seconds())
		if err != nil {
			metrics.RedisErrorsTotal.WithLabelValues("del_by_id").Inc()
			logger.GlobalLogger.Errorf("failed to delete by-ID cache entries: %v", err)
			return NewCacheError("del_by_id", err, false)
		}
	}

	start := time.Now()
	swept, err := invalidateListingsScript.Run(ctx, RedisClient, []string{ActiveListingKeysSet}).Result()
	duration := time.Since(start).Seconds()
	metrics.RedisOperationDuration.WithLabelValues("invalidate_listings").Observe(duration)
	if err != nil {
		metrics.RedisErrorsTotal.WithLabelValues("invalidate_listings").Inc()
		logger.GlobalLogger.Errorf("failed to sweep listing key registry: %v", err)
		return NewCacheError("invalidate_listings", err, false)
	}
	metrics.CacheInvalidationsTotal.Inc()
	if n, ok := swept.(int64); ok && n > 0 {
		logger.GlobalLogger.Printf("Invalidated %d product listing caches", n)
	}
	return nil
}
