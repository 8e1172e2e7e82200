package memory

import (
	"context"

	"github.com/smartmeal/planner/internal/domain/recipe"
	"github.com/smartmeal/planner/internal/ports/outbound"
)

// RecipeRepository serves a fixed catalog. It is read-only once built.
type RecipeRepository struct {
	recipes []recipe.Recipe
	byID    map[string]int
}

var _ outbound.RecipeRepository = (*RecipeRepository)(nil)

// NewRecipeRepository serves the given recipes, or the seeded catalog when
// none are given
func NewRecipeRepository(recipes ...recipe.Recipe) *RecipeRepository {
	if len(recipes) == 0 {
		recipes = recipe.Seed()
	}

	repo := &RecipeRepository{
		recipes: make([]recipe.Recipe, len(recipes)),
		byID:    make(map[string]int, len(recipes)),
	}
	for i, r := range recipes {
		repo.recipes[i] = r.Clone()
		repo.byID[r.ID] = i
	}
	return repo
}

// FindAll returns the whole catalog
func (r *RecipeRepository) FindAll(ctx context.Context) ([]recipe.Recipe, error) {
	out := make([]recipe.Recipe, len(r.recipes))
	for i, rec := range r.recipes {
		out[i] = rec.Clone()
	}
	return out, nil
}

// FindByID returns nil, nil for an unknown id
func (r *RecipeRepository) FindByID(ctx context.Context, id string) (*recipe.Recipe, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	rec := r.recipes[i].Clone()
	return &rec, nil
}

// FindByMealType returns the recipes of mealType in catalog order
func (r *RecipeRepository) FindByMealType(ctx context.Context, mealType recipe.MealType) ([]recipe.Recipe, error) {
	out := recipe.FilterByMealType(r.recipes, mealType)
	for i := range out {
		out[i] = out[i].Clone()
	}
	return out, nil
}
