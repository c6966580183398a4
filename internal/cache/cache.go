package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"CryptoAnalyzer/internal/model"
)

// Key identifies one analysis result: asset id, lookback window, currency.
type Key struct {
	Asset    string
	Days     int
	Currency string
}

func (k Key) String() string {
	return fmt.Sprintf("analysis:%s:%d:%s", k.Asset, k.Days, k.Currency)
}

type entry struct {
	report  *model.Report
	expires time.Time
}

// Cache is a read-through TTL cache for analysis reports. Entries are
// immutable once written and simply expire; callers must not mutate a
// returned report. An optional Redis backing shares entries across
// restarts; when Redis is unreachable the cache degrades to memory-only.
type Cache struct {
	mu       sync.RWMutex
	entries  map[Key]entry
	ttl      time.Duration
	redis    *redis.Client
	useRedis bool
}

// New creates a cache with the given TTL. redisAddr may be empty for
// memory-only operation.
func New(ttl time.Duration, redisAddr, redisPassword string, redisDB int) *Cache {
	c := &Cache{
		entries: make(map[Key]entry),
		ttl:     ttl,
	}

	if redisAddr != "" {
		c.redis = redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: redisPassword,
			DB:       redisDB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.redis.Ping(ctx).Err(); err != nil {
			log.Printf("[WARN] redis unreachable, cache is memory-only: %v", err)
			c.redis = nil
		} else {
			log.Printf("[INFO] redis cache backing enabled: %s", redisAddr)
			c.useRedis = true
		}
	}

	return c
}

// Get returns a cached report, or nil when the key is absent or expired.
func (c *Cache) Get(ctx context.Context, key Key) *model.Report {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if ok {
		if time.Now().Before(e.expires) {
			return e.report
		}
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
	}

	if !c.useRedis {
		return nil
	}

	data, err := c.redis.Get(ctx, key.String()).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[WARN] redis get %s: %v", key, err)
		}
		return nil
	}
	var report model.Report
	if err := json.Unmarshal(data, &report); err != nil {
		log.Printf("[WARN] redis entry %s is malformed, dropping: %v", key, err)
		return nil
	}
	return &report
}

// Put stores a report under the configured TTL.
func (c *Cache) Put(ctx context.Context, key Key, report *model.Report) {
	c.mu.Lock()
	c.entries[key] = entry{report: report, expires: time.Now().Add(c.ttl)}
	c.mu.Unlock()

	if !c.useRedis {
		return
	}
	data, err := json.Marshal(report)
	if err != nil {
		log.Printf("[WARN] marshal report for redis: %v", err)
		return
	}
	if err := c.redis.Set(ctx, key.String(), data, c.ttl).Err(); err != nil {
		log.Printf("[WARN] redis set %s: %v", key, err)
	}
}

// Len returns the number of live in-memory entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	now := time.Now()
	for _, e := range c.entries {
		if now.Before(e.expires) {
			n++
		}
	}
	return n
}
