// Package testutils provides mock implementations for testing
package testutils

import (
	"context"
	"time"

	"github.com/smartmeal/planner/internal/domain/menu"
	"github.com/smartmeal/planner/internal/domain/profile"
	"github.com/smartmeal/planner/internal/domain/recipe"
	"github.com/smartmeal/planner/internal/domain/shared"
	"github.com/smartmeal/planner/internal/ports/outbound"
	"github.com/stretchr/testify/mock"
)

var (
	_ outbound.MenuRepository    = (*MockMenuRepository)(nil)
	_ outbound.RecipeRepository  = (*MockRecipeRepository)(nil)
	_ outbound.ProfileRepository = (*MockProfileRepository)(nil)
	_ outbound.CacheRepository   = (*MockCacheRepository)(nil)
	_ outbound.EventPublisher    = (*MockEventPublisher)(nil)
)

// MockMenuRepository provides a mock implementation of MenuRepository
type MockMenuRepository struct {
	mock.Mock
}

// FindByUserID mocks the menu listing
func (m *MockMenuRepository) FindByUserID(ctx context.Context, userID string) ([]*menu.WeeklyMenu, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*menu.WeeklyMenu), args.Error(1)
}

// FindByID mocks a menu lookup
func (m *MockMenuRepository) FindByID(ctx context.Context, id string) (*menu.WeeklyMenu, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menu.WeeklyMenu), args.Error(1)
}

// Create mocks menu creation
func (m *MockMenuRepository) Create(ctx context.Context, wm *menu.WeeklyMenu) (*menu.WeeklyMenu, error) {
	args := m.Called(ctx, wm)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menu.WeeklyMenu), args.Error(1)
}

// Update mocks a partial menu update
func (m *MockMenuRepository) Update(ctx context.Context, id string, patch menu.Patch) (*menu.WeeklyMenu, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menu.WeeklyMenu), args.Error(1)
}

// MockRecipeRepository provides a mock implementation of RecipeRepository
type MockRecipeRepository struct {
	mock.Mock
}

// FindAll mocks the catalog listing
func (m *MockRecipeRepository) FindAll(ctx context.Context) ([]recipe.Recipe, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]recipe.Recipe), args.Error(1)
}

// FindByID mocks a recipe lookup
func (m *MockRecipeRepository) FindByID(ctx context.Context, id string) (*recipe.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recipe.Recipe), args.Error(1)
}

// FindByMealType mocks the per meal type listing
func (m *MockRecipeRepository) FindByMealType(ctx context.Context, mealType recipe.MealType) ([]recipe.Recipe, error) {
	args := m.Called(ctx, mealType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]recipe.Recipe), args.Error(1)
}

// MockProfileRepository provides a mock implementation of ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

// FindByUserID mocks a profile lookup
func (m *MockProfileRepository) FindByUserID(ctx context.Context, userID string) (*profile.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile.Profile), args.Error(1)
}

// Save mocks a profile upsert
func (m *MockProfileRepository) Save(ctx context.Context, p *profile.Profile) (*profile.Profile, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile.Profile), args.Error(1)
}

// MockCacheRepository provides a mock implementation of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

// Get mocks a cache read
func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// Set mocks a cache write
func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

// Delete mocks a cache delete
func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// Exists mocks a cache existence check
func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

// MGet mocks a batch read
func (m *MockCacheRepository) MGet(ctx context.Context, keys []string) (map[string][]byte, error) {
	args := m.Called(ctx, keys)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]byte), args.Error(1)
}

// MSet mocks a batch write
func (m *MockCacheRepository) MSet(ctx context.Context, items map[string][]byte, ttl time.Duration) error {
	args := m.Called(ctx, items, ttl)
	return args.Error(0)
}

// Increment mocks a counter increment
func (m *MockCacheRepository) Increment(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

// MockEventPublisher provides a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

// Publish mocks event publication
func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// RecordingPublisher keeps every published event in order
type RecordingPublisher struct {
	Events []shared.DomainEvent
}

// Publish implements outbound.EventPublisher
func (p *RecordingPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	p.Events = append(p.Events, events...)
	return nil
}

// Names returns the names of the recorded events
func (p *RecordingPublisher) Names() []string {
	out := make([]string, len(p.Events))
	for i, e := range p.Events {
		out[i] = e.EventName()
	}
	return out
}
