package gorm

import (
	"context"
	"errors"

	"github.com/smartmeal/planner/internal/domain/recipe"
	"github.com/smartmeal/planner/internal/ports/outbound"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecipeRepository implements the recipe catalog using GORM
type RecipeRepository struct {
	db *gorm.DB
}

var _ outbound.RecipeRepository = (*RecipeRepository)(nil)

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// FindAll returns the whole catalog ordered by id
func (r *RecipeRepository) FindAll(ctx context.Context) ([]recipe.Recipe, error) {
	var models []RecipeModel

	result := r.db.WithContext(ctx).Order("id ASC").Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	return toRecipes(models), nil
}

// FindByID returns nil, nil for an unknown id
func (r *RecipeRepository) FindByID(ctx context.Context, id string) (*recipe.Recipe, error) {
	var model RecipeModel

	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	rec := ModelToRecipe(&model)
	return &rec, nil
}

// FindByMealType returns the recipes of one meal type ordered by id
func (r *RecipeRepository) FindByMealType(ctx context.Context, mealType recipe.MealType) ([]recipe.Recipe, error) {
	var models []RecipeModel

	result := r.db.WithContext(ctx).
		Where("meal_type = ?", string(mealType)).
		Order("id ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	return toRecipes(models), nil
}

// Upsert inserts recipes, updating rows that already exist
func (r *RecipeRepository) Upsert(ctx context.Context, recipes []recipe.Recipe) error {
	if len(recipes) == 0 {
		return nil
	}

	models := make([]*RecipeModel, len(recipes))
	for i, rec := range recipes {
		models[i] = RecipeToModel(rec)
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&models).Error
}

func toRecipes(models []RecipeModel) []recipe.Recipe {
	if len(models) == 0 {
		return nil
	}
	out := make([]recipe.Recipe, len(models))
	for i := range models {
		out[i] = ModelToRecipe(&models[i])
	}
	return out
}
