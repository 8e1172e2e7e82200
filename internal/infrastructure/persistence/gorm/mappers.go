package gorm

import (
	"github.com/smartmeal/planner/internal/domain/menu"
	"github.com/smartmeal/planner/internal/domain/profile"
	"github.com/smartmeal/planner/internal/domain/recipe"
)

// RecipeToModel converts a catalog recipe to a GORM model
func RecipeToModel(r recipe.Recipe) *RecipeModel {
	return &RecipeModel{
		ID:              r.ID,
		Name:            r.Name,
		Description:     r.Description,
		Calories:        r.Calories,
		Servings:        r.Servings,
		Ingredients:     append(StringSlice(nil), r.Ingredients...),
		Instructions:    append(StringSlice(nil), r.Instructions...),
		PrepTimeMinutes: r.PrepTime,
		CookTimeMinutes: r.CookTime,
		MealType:        string(r.MealType),
		Tags:            append(StringSlice(nil), r.Tags...),
	}
}

// ModelToRecipe converts a GORM model back to a recipe
func ModelToRecipe(m *RecipeModel) recipe.Recipe {
	return recipe.Recipe{
		ID:           m.ID,
		Name:         m.Name,
		Description:  m.Description,
		Calories:     m.Calories,
		Servings:     m.Servings,
		Ingredients:  append([]string(nil), m.Ingredients...),
		Instructions: append([]string(nil), m.Instructions...),
		PrepTime:     m.PrepTimeMinutes,
		CookTime:     m.CookTimeMinutes,
		MealType:     recipe.MealType(m.MealType),
		Tags:         append([]string(nil), m.Tags...),
	}
}

// MenuToModel converts a menu aggregate to a GORM model
func MenuToModel(m *menu.WeeklyMenu) *MenuModel {
	mealsPerDay := make(StringSlice, len(m.MealsPerDay))
	for i, mt := range m.MealsPerDay {
		mealsPerDay[i] = string(mt)
	}

	return &MenuModel{
		ID:                m.ID,
		UserID:            m.UserID,
		Name:              m.Name,
		StartDate:         m.StartDate,
		EndDate:           m.EndDate,
		Status:            string(m.Status),
		TotalDays:         m.TotalDays,
		MealsPerDay:       mealsPerDay,
		MaxCaloriesPerDay: m.MaxCaloriesPerDay,
		ServingsPerMeal:   m.ServingsPerMeal,
		Days:              DaysField(menu.CloneDays(m.Days)),
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// ModelToMenu converts a GORM model back to a menu aggregate
func ModelToMenu(m *MenuModel) *menu.WeeklyMenu {
	mealsPerDay := make([]recipe.MealType, len(m.MealsPerDay))
	for i, mt := range m.MealsPerDay {
		mealsPerDay[i] = recipe.MealType(mt)
	}

	days := menu.CloneDays(m.Days)
	if days == nil {
		days = []menu.DayMenu{}
	}

	return &menu.WeeklyMenu{
		ID:                m.ID,
		UserID:            m.UserID,
		Name:              m.Name,
		StartDate:         m.StartDate.UTC(),
		EndDate:           m.EndDate.UTC(),
		Days:              days,
		Status:            menu.Status(m.Status),
		TotalDays:         m.TotalDays,
		MealsPerDay:       mealsPerDay,
		MaxCaloriesPerDay: m.MaxCaloriesPerDay,
		ServingsPerMeal:   m.ServingsPerMeal,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// ProfileToModel converts a profile to a GORM model
func ProfileToModel(p *profile.Profile) *ProfileModel {
	c := p.Clone()
	return &ProfileModel{
		UserID:              c.UserID,
		Age:                 c.Age,
		Gender:              string(c.Gender),
		Weight:              c.Weight,
		Height:              c.Height,
		ActivityLevel:       string(c.ActivityLevel),
		Goal:                string(c.Goal),
		DietType:            string(c.DietType),
		Restrictions:        c.Restrictions,
		Allergies:           c.Allergies,
		FavoriteIngredients: c.FavoriteIngredients,
		DislikedIngredients: c.DislikedIngredients,
		MaxDailyCalories:    c.MaxDailyCalories,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
}

// ModelToProfile converts a GORM model back to a profile
func ModelToProfile(m *ProfileModel) *profile.Profile {
	p := profile.Profile{
		UserID:              m.UserID,
		Age:                 m.Age,
		Gender:              profile.Gender(m.Gender),
		Weight:              m.Weight,
		Height:              m.Height,
		ActivityLevel:       profile.ActivityLevel(m.ActivityLevel),
		Goal:                profile.Goal(m.Goal),
		DietType:            profile.DietType(m.DietType),
		Restrictions:        m.Restrictions,
		Allergies:           m.Allergies,
		FavoriteIngredients: m.FavoriteIngredients,
		DislikedIngredients: m.DislikedIngredients,
		MaxDailyCalories:    m.MaxDailyCalories,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}.Clone()
	return &p
}
