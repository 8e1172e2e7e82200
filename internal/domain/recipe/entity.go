// Package recipe contains the read-only recipe catalog used to build menus.
// Recipes are value objects: once seeded they are never mutated, and meals
// hold copies of them rather than references into the catalog.
package recipe

import "time"

// Recipe is a single dish in the catalog.
type Recipe struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Calories     int      `json:"calories"` // per serving
	Servings     int      `json:"servings"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	PrepTime     int      `json:"prep_time"` // minutes
	CookTime     int      `json:"cook_time"` // minutes
	MealType     MealType `json:"meal_type"`
	Tags         []string `json:"tags"`
}

// Validate checks the catalog invariants for a recipe
func (r Recipe) Validate() error {
	if r.Name == "" {
		return ErrEmptyName
	}
	if r.Calories <= 0 {
		return ErrInvalidCalories
	}
	if r.Servings <= 0 {
		return ErrInvalidServings
	}
	if r.PrepTime < 0 || r.CookTime < 0 {
		return ErrNegativeTime
	}
	if !r.MealType.IsValid() {
		return ErrUnknownMealType
	}
	return nil
}

// TotalTime returns prep plus cook time
func (r Recipe) TotalTime() time.Duration {
	return time.Duration(r.PrepTime+r.CookTime) * time.Minute
}

// HasTag reports whether the recipe carries tag
func (r Recipe) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no slices with r
func (r Recipe) Clone() Recipe {
	c := r
	c.Ingredients = append([]string(nil), r.Ingredients...)
	c.Instructions = append([]string(nil), r.Instructions...)
	c.Tags = append([]string(nil), r.Tags...)
	return c
}

// FilterByMealType returns the recipes whose meal type matches, in input order.
func FilterByMealType(recipes []Recipe, mealType MealType) []Recipe {
	var out []Recipe
	for _, r := range recipes {
		if r.MealType == mealType {
			out = append(out, r)
		}
	}
	return out
}
