// Copyright (c) 2026 CodeForge Systems Ltd <hello@codeforge.systems>
// All rights reserved. See LICENSE for details.

// response.go provides a Valkey-backed cache for rendered article JSON.
// Article listings and details change only when staff publish content, so
// cached responses skip the DB query and markdown rendering entirely.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// articleKeyPrefix is the Valkey key prefix for cached article responses.
	articleKeyPrefix = "articles:"

	// DefaultArticleTTL is how long a cached article response stays fresh.
	DefaultArticleTTL = 5 * time.Minute
)

// ResponseCache caches serialized article responses in Valkey. A nil client
// disables caching entirely; every Get is a miss and every Set a no-op, so
// the API keeps working when Valkey is down or not configured.
type ResponseCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResponseCache creates a response cache backed by the given Valkey
// client, which may be nil.
func NewResponseCache(client *redis.Client, ttl time.Duration) *ResponseCache {
	if ttl == 0 {
		ttl = DefaultArticleTTL
	}
	return &ResponseCache{client: client, ttl: ttl}
}

// Get retrieves a cached response body. Returns (nil, false) on miss or
// any Valkey error.
func (rc *ResponseCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if rc.client == nil {
		return nil, false
	}
	val, err := rc.client.Get(ctx, articleKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("response cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("response cache hit", "key", key)
	return val, true
}

// Set stores a response body with the configured TTL.
func (rc *ResponseCache) Set(ctx context.Context, key string, body []byte) {
	if rc.client == nil {
		return
	}
	if err := rc.client.Set(ctx, articleKeyPrefix+key, body, rc.ttl).Err(); err != nil {
		slog.Warn("response cache set error", "key", key, "error", err)
	}
}

// InvalidateAll removes every cached article response by scanning for the
// prefix. Called at startup after seeding and whenever articles change.
func (rc *ResponseCache) InvalidateAll(ctx context.Context) {
	if rc.client == nil {
		return
	}
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := rc.client.Scan(ctx, cursor, articleKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("response cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := rc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("response cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("response cache cleared", "deleted", deleted)
	}
}

// ListKey returns the cache key for a page of the article listing.
func ListKey(page, perPage int) string {
	return fmt.Sprintf("list:%d:%d", page, perPage)
}

// SlugKey returns the cache key for a single article.
func SlugKey(slug string) string {
	return "slug:" + slug
}
