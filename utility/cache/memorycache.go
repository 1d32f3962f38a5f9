package cache

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// Memory ... in-process cache for short-lived values (service auth tokens,
// admin stats snapshots). Never used for mutable approval state, the
// database is the single source of truth there.
type Memory struct {
	Cache *cache.Cache
}

// Initialize ...
func Initialize(expiry time.Duration, purgeInterval time.Duration) *Memory {
	newCache := cache.New(expiry, purgeInterval)
	memoryCache := Memory{
		Cache: newCache,
	}
	return &memoryCache
}

// Set ...
func (memory *Memory) Set(key string, value interface{}, expiry bool) {
	if expiry {
		memory.Cache.Set(key, value, cache.DefaultExpiration)
	} else {
		memory.Cache.Set(key, value, cache.NoExpiration)
	}
}

// SetWithExpiry ... Stores a value under its own time-to-live instead of the
// cache default
func (memory *Memory) SetWithExpiry(key string, value interface{}, expiry time.Duration) {
	memory.Cache.Set(key, value, expiry)
}

// Get ...
func (memory *Memory) Get(key string) interface{} {
	cacheValue, _ := memory.Cache.Get(key)
	return cacheValue
}

// Delete ...
func (memory *Memory) Delete(key string) {
	memory.Cache.Delete(key)
}
