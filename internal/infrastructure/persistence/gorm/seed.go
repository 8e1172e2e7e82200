package gorm

import (
	"context"
	"fmt"

	"github.com/smartmeal/planner/internal/domain/recipe"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the tables of every model
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// SeedRecipes loads the built-in catalog. Existing rows are refreshed so
// the catalog always matches the seed.
func SeedRecipes(ctx context.Context, db *gorm.DB) error {
	seed := recipe.Seed()
	for _, r := range seed {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("invalid seed recipe %s: %w", r.ID, err)
		}
	}

	if err := NewRecipeRepository(db).Upsert(ctx, seed); err != nil {
		return fmt.Errorf("failed to seed recipes: %w", err)
	}
	return nil
}
