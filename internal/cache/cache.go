// Package cache layers optional Redis memoization over the pure planner.
// The engine itself recomputes cheaply; the cache only saves redundant
// store reads and sweeps for hot multi-day queries.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// PlannerCache is a read-through cache for planner responses. A nil
// client or non-positive TTL disables it; every method is then a no-op.
type PlannerCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func New(client *redis.Client, ttl time.Duration) *PlannerCache {
	return &PlannerCache{redis: client, ttl: ttl}
}

// Enabled reports whether lookups can ever hit.
func (c *PlannerCache) Enabled() bool {
	return c != nil && c.redis != nil && c.ttl > 0
}

// Key builds a deterministic cache key from the query parameters. The
// person ids are sorted so selection order does not fragment the cache.
func Key(kind, startDate, endDate string, personIDs []string, window string) string {
	ids := append([]string(nil), personIDs...)
	sort.Strings(ids)
	return fmt.Sprintf("planner:%s:%s:%s:%s:%s", kind, startDate, endDate, window, strings.Join(ids, ","))
}

// Get unmarshals a cached value into out, reporting whether it was found.
func (c *PlannerCache) Get(ctx context.Context, key string, out any) bool {
	if !c.Enabled() {
		return false
	}
	val, err := c.redis.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(val), out) == nil
}

// Set stores a value under the key; failures are ignored since the
// cache is best-effort.
func (c *PlannerCache) Set(ctx context.Context, key string, val any) {
	if !c.Enabled() {
		return
	}
	data, err := json.Marshal(val)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, key, data, c.ttl).Err()
}

// InvalidateAll drops every planner key. Called after availability or
// event writes; scanning per-date keys is not worth the bookkeeping at
// this cache's size.
func (c *PlannerCache) InvalidateAll(ctx context.Context) {
	if !c.Enabled() {
		return
	}
	iter := c.redis.Scan(ctx, 0, "planner:*", 100).Iterator()
	for iter.Next(ctx) {
		_ = c.redis.Del(ctx, iter.Val()).Err()
	}
}
