// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"errors"
	"time"

	"github.com/smartmeal/planner/internal/domain/menu"
	"github.com/smartmeal/planner/internal/domain/profile"
	"github.com/smartmeal/planner/internal/domain/recipe"
	"github.com/smartmeal/planner/internal/domain/shared"
)

// MenuRepository persists weekly menus.
// Lookups return (nil, nil) when nothing matches.
type MenuRepository interface {
	// FindByUserID returns the user's menus, newest first
	FindByUserID(ctx context.Context, userID string) ([]*menu.WeeklyMenu, error)
	FindByID(ctx context.Context, id string) (*menu.WeeklyMenu, error)

	// Create assigns id, createdAt and updatedAt and stores the menu.
	// It never overwrites an existing menu.
	Create(ctx context.Context, m *menu.WeeklyMenu) (*menu.WeeklyMenu, error)

	// Update merges the non-nil fields of patch and bumps updatedAt.
	// Returns (nil, nil) for an unknown id.
	Update(ctx context.Context, id string, patch menu.Patch) (*menu.WeeklyMenu, error)
}

// RecipeRepository is the read-only recipe catalog
type RecipeRepository interface {
	FindAll(ctx context.Context) ([]recipe.Recipe, error)
	FindByID(ctx context.Context, id string) (*recipe.Recipe, error)
	FindByMealType(ctx context.Context, mealType recipe.MealType) ([]recipe.Recipe, error)
}

// ProfileRepository persists onboarding profiles, one per user
type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID string) (*profile.Profile, error)
	// Save inserts or replaces the profile and sets its timestamps
	Save(ctx context.Context, p *profile.Profile) (*profile.Profile, error)
}

// ErrCacheMiss is returned by CacheRepository.Get for absent or expired keys
var ErrCacheMiss = errors.New("cache miss")

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)

	// Batch operations
	MGet(ctx context.Context, keys []string) (map[string][]byte, error)
	MSet(ctx context.Context, items map[string][]byte, ttl time.Duration) error

	// Counter operations
	Increment(ctx context.Context, key string) (int64, error)
}

// EventPublisher delivers domain events raised by aggregates
type EventPublisher interface {
	Publish(ctx context.Context, events ...shared.DomainEvent) error
}
