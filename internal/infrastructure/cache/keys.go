// Package cache provides cache-first decorators over the outbound ports
package cache

import (
	"strings"

	"github.com/smartmeal/planner/internal/domain/recipe"
)

// KeyBuilder provides standardized cache key generation
type KeyBuilder struct {
	prefix    string
	separator string
}

// NewKeyBuilder creates a new key builder. The version segment lets a
// deploy with a changed recipe shape ignore entries written by the old one.
func NewKeyBuilder(version string) *KeyBuilder {
	if version == "" {
		version = "v1"
	}
	return &KeyBuilder{
		prefix:    "catalog:" + version,
		separator: ":",
	}
}

// BuildKey constructs a cache key from components
func (kb *KeyBuilder) BuildKey(components ...string) string {
	parts := make([]string, 0, len(components)+1)
	parts = append(parts, kb.prefix)
	parts = append(parts, components...)
	return strings.Join(parts, kb.separator)
}

// RecipeKey creates a key for a single recipe
func (kb *KeyBuilder) RecipeKey(recipeID string) string {
	return kb.BuildKey("recipe", recipeID)
}

// MealTypeKey creates a key for the recipes of one meal type
func (kb *KeyBuilder) MealTypeKey(mealType recipe.MealType) string {
	return kb.BuildKey("meal_type", string(mealType))
}

// AllKey creates a key for the whole catalog
func (kb *KeyBuilder) AllKey() string {
	return kb.BuildKey("all")
}
