package cache

import (
	"github.com/go-redis/redis/v8"
)

// Lua scripts for Redis operations
var (
	registerListingKeyScript *redis.Script
	invalidateListingsScript *redis.Script
)

func init() {
	// store a listing payload and register its key in the listing key set in
	// one round trip, so no populated listing entry can escape the registry.
	registerListingKeyScript = redis.NewScript(`
		local listing_key = KEYS[1]
		local registry_key = KEYS[2]
		local payload = ARGV[1]
		local ttl = tonumber(ARGV[2])
		redis.call('SET', listing_key, payload)
		redis.call('EXPIRE', listing_key, ttl)
		redis.call('SADD', registry_key, listing_key)
		return 1
	`)

	// read the full registry membership, delete every member, then clear the
	// registry itself. Deleting an already-expired member is a no-op.
	invalidateListingsScript = redis.NewScript(`
		local registry_key = KEYS[1]
		local listing_keys = redis.call('SMEMBERS', registry_key)
		if #listing_keys > 0 then
			redis.call('DEL', unpack(listing_keys))
		end
		redis.call('DEL', registry_key)
		return #listing_keys
	`)
}
