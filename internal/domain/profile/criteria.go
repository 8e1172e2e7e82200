package profile

import "github.com/smartmeal/planner/internal/domain/recipe"

// RecipeCriteria turns dietary preferences into a catalog filter for a menu
// with mealsPerDay slots of servings portions. The calorie ceiling is the
// profile's own daily maximum when set, otherwise dailyCeiling, split evenly
// across the slots.
func RecipeCriteria(p Profile, mealsPerDay, servings, dailyCeiling int) recipe.Criteria {
	c := recipe.Criteria{Servings: servings}

	switch p.DietType {
	case DietVegetarian, DietVegan:
		c.AllTags = append(c.AllTags, "vegetarian")
	}
	if p.HasRestriction("gluten_free") {
		c.AllTags = append(c.AllTags, "gluten-free")
	}

	c.ExcludedIngredients = append(c.ExcludedIngredients, p.Allergies...)
	c.ExcludedIngredients = append(c.ExcludedIngredients, p.DislikedIngredients...)

	ceiling := dailyCeiling
	if p.MaxDailyCalories != nil {
		ceiling = *p.MaxDailyCalories
	}
	if ceiling > 0 && mealsPerDay > 0 {
		c.MaxCalories = ceiling / mealsPerDay
	}

	return c
}
