package recipe

// Seed returns the built-in catalog. Snack has no recipes, so menus that
// request it come back with fewer meals per day than requested.
func Seed() []Recipe {
	return []Recipe{
		{
			ID:           "recipe_001",
			Name:         "Avocado Toast",
			Description:  "Whole grain toast with mashed avocado and cherry tomatoes",
			Calories:     180,
			Servings:     1,
			Ingredients:  []string{"2 slices whole grain bread", "1 ripe avocado", "5 cherry tomatoes", "Salt", "Pepper"},
			Instructions: []string{"Toast bread", "Mash avocado", "Top with tomatoes"},
			PrepTime:     5,
			CookTime:     2,
			MealType:     MealTypeBreakfast,
			Tags:         []string{"vegetarian", "healthy"},
		},
		{
			ID:           "recipe_002",
			Name:         "Greek Yogurt Bowl",
			Description:  "Greek yogurt with berries and granola",
			Calories:     190,
			Servings:     1,
			Ingredients:  []string{"1 cup Greek yogurt", "1/2 cup mixed berries", "2 tbsp granola"},
			Instructions: []string{"Add yogurt to bowl", "Top with berries and granola"},
			PrepTime:     3,
			CookTime:     0,
			MealType:     MealTypeBreakfast,
			Tags:         []string{"protein", "healthy"},
		},
		{
			ID:           "recipe_003",
			Name:         "Quinoa Salad",
			Description:  "Fresh quinoa salad with vegetables and lemon dressing",
			Calories:     195,
			Servings:     1,
			Ingredients:  []string{"1 cup cooked quinoa", "1/2 cucumber", "1 tomato", "Lemon juice", "Olive oil"},
			Instructions: []string{"Mix quinoa with vegetables", "Add dressing"},
			PrepTime:     10,
			CookTime:     0,
			MealType:     MealTypeLunch,
			Tags:         []string{"vegetarian", "gluten-free"},
		},
		{
			ID:           "recipe_004",
			Name:         "Chicken Wrap",
			Description:  "Grilled chicken wrap with vegetables",
			Calories:     185,
			Servings:     1,
			Ingredients:  []string{"1 whole wheat tortilla", "100g grilled chicken", "Lettuce", "Tomato", "Cucumber"},
			Instructions: []string{"Grill chicken", "Assemble wrap with vegetables"},
			PrepTime:     5,
			CookTime:     10,
			MealType:     MealTypeLunch,
			Tags:         []string{"protein", "balanced"},
		},
		{
			ID:           "recipe_005",
			Name:         "Baked Salmon",
			Description:  "Herb-crusted baked salmon with steamed vegetables",
			Calories:     200,
			Servings:     1,
			Ingredients:  []string{"150g salmon fillet", "Mixed herbs", "Broccoli", "Carrots", "Olive oil"},
			Instructions: []string{"Season salmon", "Bake for 15 minutes", "Steam vegetables"},
			PrepTime:     10,
			CookTime:     15,
			MealType:     MealTypeDinner,
			Tags:         []string{"protein", "omega-3"},
		},
		{
			ID:           "recipe_006",
			Name:         "Vegetable Stir Fry",
			Description:  "Mixed vegetable stir fry with tofu",
			Calories:     175,
			Servings:     1,
			Ingredients:  []string{"200g mixed vegetables", "100g tofu", "Soy sauce", "Ginger", "Garlic"},
			Instructions: []string{"Heat oil", "Stir fry vegetables and tofu", "Season with sauce"},
			PrepTime:     8,
			CookTime:     12,
			MealType:     MealTypeDinner,
			Tags:         []string{"vegetarian", "low-calorie"},
		},
	}
}
