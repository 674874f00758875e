package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Cache stores JSON encoded values under the "name::key" layout.
type Cache struct {
	client *Client
	name   string
	ttl    time.Duration
}

// NewCache creates a cache named name. A zero ttl falls back to the client's DefaultCacheTTL.
func NewCache(client *Client, name string, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = client.config.DefaultCacheTTL
	}
	return &Cache{client: client, name: name, ttl: ttl}
}

func (c *Cache) buildCacheKey(key string) string {
	return c.client.config.namespaced(c.name + "::" + key)
}

// Get decodes the cached value into dest and reports whether the key was present.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := c.client.GetBytes(ctx, c.buildCacheKey(key))
	if err != nil {
		return false, fmt.Errorf("failed to read cache %s: %w", c.name, err)
	}
	if data == nil {
		return false, nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to decode cached value %s: %w", key, err)
	}
	return true, nil
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache value %s: %w", key, err)
	}
	return c.client.Set(ctx, c.buildCacheKey(key), data, c.ttl)
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Delete(ctx, c.buildCacheKey(key))
}
