package menu

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"restaurant-manager-go/pkg/model"
)

// menuCacheKey is the Redis key holding the serialized public menu.
const menuCacheKey = "menu:public"

// menuCacheTTL bounds staleness if an invalidation is ever missed.
const menuCacheTTL = 5 * time.Minute

// Cache is a read-through Redis cache for the public menu. A nil
// *Cache is valid and caches nothing, so callers never branch on
// whether Redis is configured.
type Cache struct {
	client *redis.Client
}

// NewCache connects to Redis at addr. An empty addr returns nil,
// disabling caching.
func NewCache(addr string) *Cache {
	if addr == "" {
		return nil
	}
	return &Cache{client: redis.NewClient(&redis.Options{Addr: addr})}
}

// Get returns the cached menu, or ok=false on miss or any Redis error.
func (c *Cache) Get(ctx context.Context) (*model.MenuResponse, bool) {
	if c == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, menuCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[MENU-CACHE] Error reading cache: %v", err)
		}
		return nil, false
	}

	var resp model.MenuResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		log.Printf("[MENU-CACHE] Error decoding cached menu: %v", err)
		return nil, false
	}
	return &resp, true
}

// Set stores the menu. Failures are logged and swallowed; the cache is
// an optimization, not a dependency.
func (c *Cache) Set(ctx context.Context, resp *model.MenuResponse) {
	if c == nil {
		return
	}

	data, err := json.Marshal(resp)
	if err != nil {
		log.Printf("[MENU-CACHE] Error encoding menu: %v", err)
		return
	}
	if err := c.client.Set(ctx, menuCacheKey, data, menuCacheTTL).Err(); err != nil {
		log.Printf("[MENU-CACHE] Error writing cache: %v", err)
	}
}

// Invalidate drops the cached menu after any menu write.
func (c *Cache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, menuCacheKey).Err(); err != nil {
		log.Printf("[MENU-CACHE] Error invalidating cache: %v", err)
	}
}
