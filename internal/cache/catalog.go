package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/readsphere/readsphere-backend/internal/logger"
	"github.com/readsphere/readsphere-backend/internal/types"
	"github.com/readsphere/readsphere-backend/internal/utils"
)

// CatalogCache is a read-through cache for the hot catalog ranking queries.
// It is strictly best-effort: every failure is a miss plus a debug log, never
// a request failure. A nil *CatalogCache is valid and always misses.
type CatalogCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

// New connects using REDIS_ADDR. An empty address means caching is disabled
// and New returns (nil, nil); callers keep working against the nil cache.
func New(baseLog *logger.Logger) (*CatalogCache, error) {
	log := baseLog.With("service", "CatalogCache")

	addr := strings.TrimSpace(utils.GetEnv("REDIS_ADDR", "", baseLog))
	if addr == "" {
		log.Info("REDIS_ADDR not set, catalog caching disabled")
		return nil, nil
	}
	ttl := time.Duration(utils.GetEnvAsInt("CATALOG_CACHE_TTL_SECONDS", 300, baseLog)) * time.Second

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &CatalogCache{log: log, rdb: rdb, ttl: ttl}, nil
}

func (c *CatalogCache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}

func TopRatedKey(minRating float64) string {
	return fmt.Sprintf("catalog:top:%.2f", minRating)
}

func TopRatedByGenreKey(genre string, minRating float64) string {
	return fmt.Sprintf("catalog:genre:%s:%.2f", strings.ToLower(genre), minRating)
}

func (c *CatalogCache) Get(ctx context.Context, key string) ([]types.CatalogBook, bool) {
	if c == nil {
		return nil, false
	}
	payload, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.log.Debug("cache get failed", "key", key, "error", err)
		}
		return nil, false
	}
	var books []types.CatalogBook
	if err := json.Unmarshal(payload, &books); err != nil {
		c.log.Debug("cache payload unmarshal failed", "key", key, "error", err)
		return nil, false
	}
	return books, true
}

func (c *CatalogCache) Set(ctx context.Context, key string, books []types.CatalogBook) {
	if c == nil {
		return
	}
	payload, err := json.Marshal(books)
	if err != nil {
		c.log.Debug("cache payload marshal failed", "key", key, "error", err)
		return
	}
	if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.log.Debug("cache set failed", "key", key, "error", err)
	}
}
