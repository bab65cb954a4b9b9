package jobsearch

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"career-compass-be/internal/pkg/logger"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

const DefaultCacheTTL = time.Hour

// CacheRecorder receives hit/miss observations per tier.
type CacheRecorder interface {
	ObserveCacheLookup(cache, tier string, hit bool)
}

// Cache is a two tier cache: go-cache in memory, Redis shared between instances.
// A nil Redis client disables the second tier.
type Cache struct {
	name     string
	l1       *cache.Cache
	rdb      *redis.Client
	ttl      time.Duration
	recorder CacheRecorder
	logger   logger.ILogger
}

func NewCache(name string, rdb *redis.Client, ttl time.Duration, recorder CacheRecorder, log logger.ILogger) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{
		name:     name,
		l1:       cache.New(ttl, 10*time.Minute),
		rdb:      rdb,
		ttl:      ttl,
		recorder: recorder,
		logger:   log,
	}
}

// Key builds a deterministic key from parts.
func (c *Cache) Key(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return fmt.Sprintf("%s:%x", c.name, hash[:12])
}

// Get decodes the cached value into dest. An L2 hit repopulates L1.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) bool {
	if raw, found := c.l1.Get(key); found {
		if json.Unmarshal(raw.([]byte), dest) == nil {
			c.observe("l1", true)
			return true
		}
		c.l1.Delete(key)
	}
	c.observe("l1", false)

	if c.rdb == nil {
		return false
	}

	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("CACHE", "Redis get failed", map[string]interface{}{"cache": c.name, "error": err.Error()})
		}
		c.observe("l2", false)
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		c.observe("l2", false)
		return false
	}

	c.observe("l2", true)
	c.l1.Set(key, data, cache.DefaultExpiration)
	return true
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("CACHE", "Failed to encode cache value", map[string]interface{}{"cache": c.name, "error": err.Error()})
		return
	}

	c.l1.Set(key, data, cache.DefaultExpiration)

	if c.rdb != nil {
		if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.Warn("CACHE", "Redis set failed", map[string]interface{}{"cache": c.name, "error": err.Error()})
		}
	}
}

func (c *Cache) observe(tier string, hit bool) {
	if c.recorder != nil {
		c.recorder.ObserveCacheLookup(c.name, tier, hit)
	}
}
