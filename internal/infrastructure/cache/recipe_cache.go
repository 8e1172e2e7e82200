package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/smartmeal/planner/internal/domain/recipe"
	"github.com/smartmeal/planner/internal/ports/outbound"
	"go.uber.org/zap"
)

// Observer is told about every cache lookup
type Observer interface {
	ObserveCache(operation string, hit bool)
}

// CachedRecipeRepository serves the catalog cache-first. The catalog is
// read-only after seeding so entries are never invalidated, only expired.
type CachedRecipeRepository struct {
	next     outbound.RecipeRepository
	cache    outbound.CacheRepository
	keys     *KeyBuilder
	ttl      time.Duration
	observer Observer
	logger   *zap.Logger
}

var _ outbound.RecipeRepository = (*CachedRecipeRepository)(nil)

// NewCachedRecipeRepository wraps next with cache. observer may be nil.
func NewCachedRecipeRepository(next outbound.RecipeRepository, cache outbound.CacheRepository, ttl time.Duration, observer Observer, logger *zap.Logger) *CachedRecipeRepository {
	return &CachedRecipeRepository{
		next:     next,
		cache:    cache,
		keys:     NewKeyBuilder("v1"),
		ttl:      ttl,
		observer: observer,
		logger:   logger.Named("recipe-cache"),
	}
}

// FindAll returns the whole catalog
func (c *CachedRecipeRepository) FindAll(ctx context.Context) ([]recipe.Recipe, error) {
	var out []recipe.Recipe
	err := c.load(ctx, "find_all", c.keys.AllKey(), &out, func() ([]recipe.Recipe, error) {
		return c.next.FindAll(ctx)
	})
	return out, err
}

// FindByMealType returns the recipes of one meal type
func (c *CachedRecipeRepository) FindByMealType(ctx context.Context, mealType recipe.MealType) ([]recipe.Recipe, error) {
	var out []recipe.Recipe
	err := c.load(ctx, "find_by_meal_type", c.keys.MealTypeKey(mealType), &out, func() ([]recipe.Recipe, error) {
		return c.next.FindByMealType(ctx, mealType)
	})
	return out, err
}

// FindByID returns nil, nil for an unknown id. Misses are not cached.
func (c *CachedRecipeRepository) FindByID(ctx context.Context, id string) (*recipe.Recipe, error) {
	key := c.keys.RecipeKey(id)

	if data, err := c.cache.Get(ctx, key); err == nil {
		var r recipe.Recipe
		uerr := json.Unmarshal(data, &r)
		if uerr == nil {
			c.observe("find_by_id", true)
			return &r, nil
		}
		c.logger.Error("Failed to unmarshal cached recipe", zap.String("recipe_id", id), zap.Error(uerr))
	} else if !errors.Is(err, outbound.ErrCacheMiss) {
		c.logger.Warn("Recipe cache read failed", zap.String("key", key), zap.Error(err))
	}
	c.observe("find_by_id", false)

	r, err := c.next.FindByID(ctx, id)
	if err != nil || r == nil {
		return r, err
	}

	c.store(ctx, key, r)
	return r, nil
}

// load reads key into dest, falling back to fetch on a miss. Cache failures
// never fail the call.
func (c *CachedRecipeRepository) load(ctx context.Context, operation, key string, dest *[]recipe.Recipe, fetch func() ([]recipe.Recipe, error)) error {
	data, err := c.cache.Get(ctx, key)
	switch {
	case err == nil:
		uerr := json.Unmarshal(data, dest)
		if uerr == nil {
			c.observe(operation, true)
			c.logger.Debug("Recipe cache hit", zap.String("key", key), zap.Int("count", len(*dest)))
			return nil
		}
		c.logger.Error("Failed to unmarshal cached recipes", zap.String("key", key), zap.Error(uerr))
	case !errors.Is(err, outbound.ErrCacheMiss):
		c.logger.Warn("Recipe cache read failed", zap.String("key", key), zap.Error(err))
	}
	c.observe(operation, false)

	recipes, err := fetch()
	if err != nil {
		return err
	}
	*dest = recipes

	c.store(ctx, key, *dest)
	return nil
}

func (c *CachedRecipeRepository) store(ctx context.Context, key string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		c.logger.Error("Failed to marshal recipes for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.cache.Set(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache recipes", zap.String("key", key), zap.Error(err))
	}
}

func (c *CachedRecipeRepository) observe(operation string, hit bool) {
	if c.observer != nil {
		c.observer.ObserveCache(operation, hit)
	}
}
