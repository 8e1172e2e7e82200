// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world
package inbound

import (
	"context"
	"time"

	"github.com/smartmeal/planner/internal/domain/menu"
	"github.com/smartmeal/planner/internal/domain/recipe"
)

// MenuService defines the use cases for menu planning
type MenuService interface {
	// Commands
	GenerateMenu(ctx context.Context, userID string, req menu.GenerationRequest) (*MenuDTO, error)
	RegenerateSelectedMeals(ctx context.Context, cmd RegenerateMealsCommand) (*RegenerationResult, error)
	ConfirmMenu(ctx context.Context, menuID, callerID string) (*MenuDTO, error)

	// Queries
	GetMenu(ctx context.Context, menuID, callerID string) (*MenuDTO, error)
	ListMenus(ctx context.Context, userID string) ([]*MenuDTO, error)
	GetStats(ctx context.Context, userID string) (*menu.Stats, error)
}

// RegenerateMealsCommand asks for fresh recipes for the selected meals
type RegenerateMealsCommand struct {
	MenuID   string
	CallerID string
	MealIDs  []string
}

// Data Transfer Objects

// MenuDTO represents a weekly menu for external consumption
type MenuDTO struct {
	ID                string            `json:"id"`
	UserID            string            `json:"user_id"`
	Name              string            `json:"name"`
	StartDate         string            `json:"start_date"`
	EndDate           string            `json:"end_date"`
	Status            menu.Status       `json:"status"`
	TotalDays         int               `json:"total_days"`
	MealsPerDay       []recipe.MealType `json:"meals_per_day"`
	MaxCaloriesPerDay int               `json:"max_calories_per_day"`
	ServingsPerMeal   int               `json:"servings_per_meal"`
	Days              []DayMenuDTO      `json:"days"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// DayMenuDTO represents the meals of one date
type DayMenuDTO struct {
	Date          string    `json:"date"`
	Meals         []MealDTO `json:"meals"`
	TotalCalories int       `json:"total_calories"`
}

// MealDTO represents a single planned meal
type MealDTO struct {
	ID       string          `json:"id"`
	Recipe   recipe.Recipe   `json:"recipe"`
	Date     string          `json:"date"`
	MealType recipe.MealType `json:"meal_type"`
	Servings int             `json:"servings"`
	Calories int             `json:"calories"`
}

// ReplacementDTO links a regenerated meal to the meal it replaced
type ReplacementDTO struct {
	OldMealID string          `json:"old_meal_id"`
	NewMealID string          `json:"new_meal_id"`
	MealType  recipe.MealType `json:"meal_type"`
	RecipeID  string          `json:"recipe_id"`
}

// RegenerationResult is the menu after regeneration plus what changed
type RegenerationResult struct {
	Menu         *MenuDTO         `json:"menu"`
	Replacements []ReplacementDTO `json:"replacements"`
}
