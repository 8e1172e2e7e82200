// Package testutils provides test data factories for consistent test data generation
package testutils

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/smartmeal/planner/internal/domain/menu"
	"github.com/smartmeal/planner/internal/domain/profile"
	"github.com/smartmeal/planner/internal/domain/recipe"
)

// RecipeFactory provides methods to create test recipes
type RecipeFactory struct {
	faker *gofakeit.Faker
	seq   int
}

// NewRecipeFactory creates a new recipe factory with seeded faker
func NewRecipeFactory(seed int64) *RecipeFactory {
	return &RecipeFactory{
		faker: gofakeit.New(seed),
	}
}

// Recipe creates a valid recipe of the given meal type
func (f *RecipeFactory) Recipe(mealType recipe.MealType) recipe.Recipe {
	f.seq++
	return recipe.Recipe{
		ID:           fmt.Sprintf("test_recipe_%03d", f.seq),
		Name:         f.faker.Dessert(),
		Description:  f.faker.Sentence(8),
		Calories:     f.faker.Number(100, 800),
		Servings:     f.faker.Number(1, 4),
		Ingredients:  []string{f.faker.Fruit(), f.faker.Vegetable(), f.faker.Noun()},
		Instructions: []string{f.faker.Sentence(5), f.faker.Sentence(6)},
		PrepTime:     f.faker.Number(0, 30),
		CookTime:     f.faker.Number(0, 60),
		MealType:     mealType,
		Tags:         []string{f.faker.Adjective()},
	}
}

// Catalog creates perType recipes for each meal type
func (f *RecipeFactory) Catalog(perType int, mealTypes ...recipe.MealType) []recipe.Recipe {
	out := make([]recipe.Recipe, 0, perType*len(mealTypes))
	for _, mt := range mealTypes {
		for i := 0; i < perType; i++ {
			out = append(out, f.Recipe(mt))
		}
	}
	return out
}

// ProfileBuilder provides a fluent interface for building test profiles
type ProfileBuilder struct {
	p profile.Profile
}

// NewProfileBuilder creates a profile builder with valid random values
func NewProfileBuilder() *ProfileBuilder {
	faker := gofakeit.New(time.Now().UnixNano())

	return &ProfileBuilder{p: profile.Profile{
		UserID:              uuid.NewString(),
		Age:                 faker.Number(18, 80),
		Gender:              profile.GenderFemale,
		Weight:              float64(faker.Number(45, 120)),
		Height:              float64(faker.Number(150, 200)),
		ActivityLevel:       profile.ActivityModerate,
		Goal:                profile.GoalMaintain,
		DietType:            profile.DietOmnivore,
		Restrictions:        []string{},
		Allergies:           []string{},
		FavoriteIngredients: []string{faker.Vegetable()},
		DislikedIngredients: []string{},
	}}
}

// WithUserID sets the profile owner
func (b *ProfileBuilder) WithUserID(id string) *ProfileBuilder {
	b.p.UserID = id
	return b
}

// WithBody sets age, weight and height
func (b *ProfileBuilder) WithBody(age int, weight, height float64) *ProfileBuilder {
	b.p.Age = age
	b.p.Weight = weight
	b.p.Height = height
	return b
}

// WithGender sets the gender
func (b *ProfileBuilder) WithGender(g profile.Gender) *ProfileBuilder {
	b.p.Gender = g
	return b
}

// WithActivity sets the activity level
func (b *ProfileBuilder) WithActivity(a profile.ActivityLevel) *ProfileBuilder {
	b.p.ActivityLevel = a
	return b
}

// WithGoal sets the goal
func (b *ProfileBuilder) WithGoal(g profile.Goal) *ProfileBuilder {
	b.p.Goal = g
	return b
}

// WithDiet sets the diet type
func (b *ProfileBuilder) WithDiet(d profile.DietType) *ProfileBuilder {
	b.p.DietType = d
	return b
}

// WithAllergies sets the allergies
func (b *ProfileBuilder) WithAllergies(a ...string) *ProfileBuilder {
	b.p.Allergies = a
	return b
}

// WithMaxDailyCalories sets the calorie override
func (b *ProfileBuilder) WithMaxDailyCalories(kcal int) *ProfileBuilder {
	b.p.MaxDailyCalories = &kcal
	return b
}

// Build returns the profile
func (b *ProfileBuilder) Build() profile.Profile {
	return b.p.Clone()
}

// GenerationRequest returns a valid request starting on start
func GenerationRequest(start time.Time, days int, mealTypes ...recipe.MealType) menu.GenerationRequest {
	if len(mealTypes) == 0 {
		mealTypes = []recipe.MealType{recipe.MealTypeBreakfast, recipe.MealTypeLunch, recipe.MealTypeDinner}
	}
	return menu.GenerationRequest{
		StartDate:         start,
		Days:              days,
		MealsPerDay:       mealTypes,
		MaxCaloriesPerDay: 2000,
		Servings:          1,
	}
}

// NewMenu generates a pending menu for userID from the seeded catalog
func NewMenu(userID string, start time.Time, days int) *menu.WeeklyMenu {
	req := GenerationRequest(start, days)
	candidates := menu.Candidates{}
	for _, r := range recipe.Seed() {
		candidates[r.MealType] = append(candidates[r.MealType], r)
	}

	m, err := menu.Generate(userID, req, candidates, recipe.FirstPicker, menu.NewMealID)
	if err != nil {
		panic(fmt.Sprintf("testutils: generate menu: %v", err))
	}
	return m
}
