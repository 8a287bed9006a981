package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pagewright/pagewright/pkg/pagewright"
)

const keyPrefix = "pagewright:providers:"

// Cache is a Redis-backed implementation of pagewright.ProviderCache.
// Entries are JSON-encoded provider link lists keyed by website ID.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a provider cache on top of an existing Redis client.
// A zero ttl defaults to five minutes.
func New(client *redis.Client, ttl time.Duration) *Cache {
	if ttl == 0 {
		ttl = 5 * time.Minute
	}
	return &Cache{client: client, ttl: ttl}
}

func cacheKey(websiteID int64) string {
	return fmt.Sprintf("%s%d", keyPrefix, websiteID)
}

// Get retrieves the cached provider links for a website. The second return
// value reports whether the entry was present.
func (c *Cache) Get(ctx context.Context, websiteID int64) ([]pagewright.ProviderLink, bool, error) {
	data, err := c.client.Get(ctx, cacheKey(websiteID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil // Cache miss
		}
		return nil, false, fmt.Errorf("failed to get cached providers: %w", err)
	}

	var links []pagewright.ProviderLink
	if err := json.Unmarshal(data, &links); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached providers: %w", err)
	}
	return links, true, nil
}

// Set stores the provider links for a website with the configured TTL.
func (c *Cache) Set(ctx context.Context, websiteID int64, links []pagewright.ProviderLink) error {
	data, err := json.Marshal(links)
	if err != nil {
		return fmt.Errorf("failed to encode providers: %w", err)
	}
	if err := c.client.Set(ctx, cacheKey(websiteID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache providers: %w", err)
	}
	return nil
}

// Invalidate removes the cached entry for a website.
func (c *Cache) Invalidate(ctx context.Context, websiteID int64) error {
	if err := c.client.Del(ctx, cacheKey(websiteID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate provider cache: %w", err)
	}
	return nil
}
