// Package cache provides an optional Redis-backed cache for generation
// responses. Identical requests within the TTL are answered without a
// provider round trip.
//
// The cache sits at the HTTP boundary, outside the execution pipeline: the
// pipeline itself stays free of shared mutable state. When Redis is not
// configured the nil *ResponseCache degrades to a no-op, so callers never
// branch on availability.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dr-ninja/toolko/internal/api"
	"github.com/dr-ninja/toolko/internal/version"
)

const (
	responseCachePrefix = "genstate"
	responseCacheTTL    = 24 * time.Hour
)

// ResponseCache stores serialized generation results in Redis under
// versioned keys. All methods are safe on a nil receiver.
type ResponseCache struct {
	rdb *redis.Client
	log *slog.Logger
}

// New creates a cache over an established Redis client. A nil logger falls
// back to slog.Default.
func New(rdb *redis.Client, log *slog.Logger) *ResponseCache {
	if log == nil {
		log = slog.Default()
	}
	return &ResponseCache{rdb: rdb, log: log}
}

// Key derives the versioned cache key for a generation request. Requests
// that differ in tool, variant, model, or any input hash to different keys;
// bumping a component version invalidates every old key at once.
func Key(req *api.GenerationRequest) string {
	// Marshal of a fixed struct is deterministic: map keys are sorted.
	payload, err := json.Marshal(req)
	if err != nil {
		// A request that made it through binding always marshals; this
		// is unreachable in practice.
		payload = []byte(req.ToolID + "|" + req.VariantID)
	}
	return version.GenerateVersionedCacheKey(responseCachePrefix, string(payload))
}

// Check looks a generation result up by key. Redis errors count as misses.
func (c *ResponseCache) Check(ctx context.Context, key string) (*api.GenerationData, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	val, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.log.Warn("response cache read failed", "error", err)
		return nil, false
	}
	var data api.GenerationData
	if err := json.Unmarshal([]byte(val), &data); err != nil {
		c.log.Warn("response cache entry corrupt, ignoring", "error", err)
		return nil, false
	}
	return &data, true
}

// Store writes a generation result under key. Failures are logged and
// swallowed: caching is an optimization, never a gate.
func (c *ResponseCache) Store(ctx context.Context, key string, data *api.GenerationData) {
	if c == nil || c.rdb == nil {
		return
	}
	payload, err := json.Marshal(data)
	if err != nil {
		c.log.Warn("response cache marshal failed", "error", err)
		return
	}
	if err := c.rdb.Set(ctx, key, payload, responseCacheTTL).Err(); err != nil {
		c.log.Warn("response cache write failed", "error", err)
	}
}
