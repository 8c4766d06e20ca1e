// internal/readiness/catalog_cache.go
package readiness

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"accelerator-workers/internal/common/database"
	"accelerator-workers/internal/common/logger"
	"accelerator-workers/internal/models"

	"github.com/redis/go-redis/v9"
)

const catalogCacheKey = "readiness:catalog"

// CatalogLoader reads the full level catalog from the store.
type CatalogLoader interface {
	ListCatalog(ctx context.Context, q database.DBTX) ([]models.ReadinessLevel, error)
}

// CatalogCache serves the immutable level catalog from Redis, falling back
// to Postgres on a miss or any Redis error.
type CatalogCache struct {
	redis  *redis.Client
	db     database.DBTX
	loader CatalogLoader
	ttl    time.Duration
	logger logger.Logger
}

func NewCatalogCache(rdb *redis.Client, db database.DBTX, loader CatalogLoader, ttl time.Duration, log logger.Logger) *CatalogCache {
	return &CatalogCache{
		redis:  rdb,
		db:     db,
		loader: loader,
		ttl:    ttl,
		logger: log,
	}
}

func (c *CatalogCache) Catalog(ctx context.Context) ([]models.ReadinessLevel, error) {
	if c.redis != nil {
		val, err := c.redis.Get(ctx, catalogCacheKey).Bytes()
		switch {
		case err == nil:
			var levels []models.ReadinessLevel
			if err := json.Unmarshal(val, &levels); err == nil && len(levels) > 0 {
				return levels, nil
			}
		case !errors.Is(err, redis.Nil):
			c.logger.Warn("catalog cache read failed", map[string]interface{}{"error": err.Error()})
		}
	}

	levels, err := c.loader.ListCatalog(ctx, c.db)
	if err != nil {
		return nil, err
	}

	if c.redis != nil && len(levels) > 0 {
		data, _ := json.Marshal(levels)
		if err := c.redis.Set(ctx, catalogCacheKey, data, c.ttl).Err(); err != nil {
			c.logger.Warn("catalog cache write failed", map[string]interface{}{"error": err.Error()})
		}
	}
	return levels, nil
}
