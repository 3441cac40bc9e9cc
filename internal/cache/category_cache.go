package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Downforcedemon/MinimalHome/internal/domain"
	"github.com/Downforcedemon/MinimalHome/internal/metrics"
)

const (
	categoryCachePrefix = "app_category:"
	categoryCacheTTL    = 1 * time.Hour
)

// CategoryCache provides read-through app-to-category caching:
// Redis → PostgreSQL. Unassigned apps are not cached, so a fresh
// assignment is visible on the next lookup without eviction.
type CategoryCache struct {
	rdb        goredis.Cmdable
	categories domain.CategoryRepository
}

var _ domain.CategoryLookup = (*CategoryCache)(nil)

// NewCategoryCache creates a read-through category cache over the repository.
func NewCategoryCache(rdb goredis.Cmdable, categories domain.CategoryRepository) *CategoryCache {
	return &CategoryCache{rdb: rdb, categories: categories}
}

// CategoryForApp resolves the category an app is assigned to.
// Read path: Redis GET → PostgreSQL query → populate Redis cache.
// Returns domain.ErrAppNotAssigned for unassigned apps.
func (c *CategoryCache) CategoryForApp(ctx context.Context, appName string) (*domain.Category, error) {
	key := categoryCachePrefix + appName

	// Try Redis cache
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var category domain.Category
		if err := json.Unmarshal(data, &category); err != nil {
			slog.Warn("Failed to unmarshal cached category, falling through to PostgreSQL",
				"app_name", appName, "error", err)
		} else {
			metrics.CategoryCacheRedisHits.Inc()
			return &category, nil
		}
	} else if !errors.Is(err, goredis.Nil) {
		// Redis error — log and fall through to PostgreSQL
		slog.Warn("Redis category cache GET failed, falling through to PostgreSQL",
			"app_name", appName, "error", err)
	}

	// Redis miss or error — query PostgreSQL
	category, err := c.categories.CategoryForApp(ctx, appName)
	if err != nil {
		return nil, err
	}

	metrics.CategoryCachePostgresHits.Inc()

	// Populate Redis cache (best-effort)
	if encoded, err := json.Marshal(category); err == nil {
		if err := c.rdb.Set(ctx, key, encoded, categoryCacheTTL).Err(); err != nil {
			slog.Warn("Failed to populate Redis category cache",
				"app_name", appName, "error", err)
		}
	}

	return category, nil
}

// InvalidateApp removes an app's cached category mapping.
func (c *CategoryCache) InvalidateApp(ctx context.Context, appName string) error {
	if err := c.rdb.Del(ctx, categoryCachePrefix+appName).Err(); err != nil {
		return fmt.Errorf("failed to invalidate category cache: %w", err)
	}
	return nil
}
