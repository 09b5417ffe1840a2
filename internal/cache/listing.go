// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// listingKeyPrefix is the Valkey key prefix for cached listings.
	listingKeyPrefix = "listing:"

	// DefaultListingTTL is how long a rendered listing stays cached.
	DefaultListingTTL = 5 * time.Minute
)

// ListingCache stores rendered category listing pages in Valkey. Errors are
// logged and reported as misses; the database stays the source of truth.
type ListingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewListingCache creates a listing cache backed by the given Valkey client.
func NewListingCache(client *redis.Client, ttl time.Duration) *ListingCache {
	if ttl == 0 {
		ttl = DefaultListingTTL
	}
	return &ListingCache{client: client, ttl: ttl}
}

// ListingKey returns the cache key for one page of a category listing.
func ListingKey(categoryID uuid.UUID, page, size int) string {
	return fmt.Sprintf("%s:%d:%d", categoryID, page, size)
}

// Get returns the cached body for key, or false on a miss.
func (lc *ListingCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := lc.client.Get(ctx, listingKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("listing cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("listing cache hit", "key", key)
	return val, true
}

// Set stores body under key with the configured TTL.
func (lc *ListingCache) Set(ctx context.Context, key string, body []byte) {
	if err := lc.client.Set(ctx, listingKeyPrefix+key, body, lc.ttl).Err(); err != nil {
		slog.Warn("listing cache set error", "key", key, "error", err)
	}
}

// InvalidateCategory removes every cached page of one category's listing.
// Assignment changes use it for the category and its parent.
func (lc *ListingCache) InvalidateCategory(ctx context.Context, categoryID uuid.UUID) {
	lc.deleteMatching(ctx, listingKeyPrefix+categoryID.String()+":*")
}

// InvalidateAll removes all cached listings. Product and page placement
// changes can move items between any listings.
func (lc *ListingCache) InvalidateAll(ctx context.Context) {
	if deleted := lc.deleteMatching(ctx, listingKeyPrefix+"*"); deleted > 0 {
		slog.Info("listing cache fully cleared", "deleted", deleted)
	}
}

func (lc *ListingCache) deleteMatching(ctx context.Context, pattern string) int {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := lc.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			slog.Warn("listing cache scan error", "pattern", pattern, "error", err)
			return deleted
		}
		if len(keys) > 0 {
			if err := lc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("listing cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	return deleted
}
