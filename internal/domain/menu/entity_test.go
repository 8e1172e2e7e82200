package menu

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/smartmeal/planner/internal/domain/recipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type MenuTestSuite struct {
	suite.Suite
	candidates Candidates
	seq        int
}

func (suite *MenuTestSuite) SetupTest() {
	catalog := recipe.Seed()
	suite.candidates = Candidates{}
	for _, mt := range recipe.MealTypes {
		suite.candidates[mt] = recipe.FilterByMealType(catalog, mt)
	}
	suite.seq = 0
}

func (suite *MenuTestSuite) nextID() string {
	suite.seq++
	return fmt.Sprintf("meal_%03d", suite.seq)
}

func (suite *MenuTestSuite) request() GenerationRequest {
	return GenerationRequest{
		StartDate:         time.Date(2024, 1, 1, 15, 30, 0, 0, time.UTC),
		Days:              3,
		MealsPerDay:       []recipe.MealType{recipe.MealTypeBreakfast, recipe.MealTypeDinner},
		MaxCaloriesPerDay: 2000,
		Servings:          2,
	}
}

func (suite *MenuTestSuite) TestGenerate() {
	suite.Run("DateRangeAndShape", func() {
		m, err := Generate("user_1", suite.request(), suite.candidates, recipe.FirstPicker, suite.nextID)
		require.NoError(suite.T(), err)

		assert.Equal(suite.T(), "user_1", m.UserID)
		assert.Equal(suite.T(), StatusPending, m.Status)
		assert.Equal(suite.T(), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), m.StartDate)
		assert.Equal(suite.T(), time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), m.EndDate)
		assert.Equal(suite.T(), "Menu 2024-01-01 - 2024-01-03", m.Name)
		assert.Empty(suite.T(), m.ID)
		require.Len(suite.T(), m.Days, 3)
		assert.Equal(suite.T(), 6, m.MealCount())

		for i, day := range m.Days {
			assert.Equal(suite.T(), m.StartDate.AddDate(0, 0, i), day.Date)
			require.Len(suite.T(), day.Meals, 2)
			assert.Equal(suite.T(), recipe.MealTypeBreakfast, day.Meals[0].MealType)
			assert.Equal(suite.T(), recipe.MealTypeDinner, day.Meals[1].MealType)
			// 180*2 + 200*2
			assert.Equal(suite.T(), 760, day.TotalCalories)
			for _, meal := range day.Meals {
				assert.Equal(suite.T(), 2, meal.Servings)
				assert.Equal(suite.T(), day.Date, meal.Date)
				assert.Equal(suite.T(), meal.MealType, meal.Recipe.MealType)
			}
		}
	})

	suite.Run("MealIDsAreUnique", func() {
		m, err := Generate("user_1", suite.request(), suite.candidates, recipe.NewRandomPicker(3), nil)
		require.NoError(suite.T(), err)

		seen := map[string]bool{}
		for _, d := range m.Days {
			for _, meal := range d.Meals {
				assert.False(suite.T(), seen[meal.ID])
				seen[meal.ID] = true
			}
		}
		assert.Len(suite.T(), seen, 6)
	})

	suite.Run("EmptyCatalogSkipsMealType", func() {
		req := suite.request()
		req.MealsPerDay = []recipe.MealType{recipe.MealTypeSnack, recipe.MealTypeLunch}

		m, err := Generate("user_1", req, suite.candidates, recipe.FirstPicker, suite.nextID)
		require.NoError(suite.T(), err)
		for _, d := range m.Days {
			require.Len(suite.T(), d.Meals, 1)
			assert.Equal(suite.T(), recipe.MealTypeLunch, d.Meals[0].MealType)
		}
	})

	suite.Run("NoCandidatesAtAll", func() {
		m, err := Generate("user_1", suite.request(), Candidates{}, recipe.FirstPicker, suite.nextID)
		require.NoError(suite.T(), err)
		require.Len(suite.T(), m.Days, 3)
		for _, d := range m.Days {
			assert.Empty(suite.T(), d.Meals)
			assert.Zero(suite.T(), d.TotalCalories)
		}
	})

	suite.Run("SingleDay", func() {
		req := suite.request()
		req.Days = 1
		m, err := Generate("user_1", req, suite.candidates, recipe.FirstPicker, suite.nextID)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), m.StartDate, m.EndDate)
	})

	suite.Run("RecipesAreCopies", func() {
		m, err := Generate("user_1", suite.request(), suite.candidates, recipe.FirstPicker, suite.nextID)
		require.NoError(suite.T(), err)
		m.Days[0].Meals[0].Recipe.Tags[0] = "mutated"
		assert.NotEqual(suite.T(), "mutated", suite.candidates[recipe.MealTypeBreakfast][0].Tags[0])
	})
}

func (suite *MenuTestSuite) TestGenerationRequestValidate() {
	cases := map[string]func(r *GenerationRequest){
		"ZeroDays":          func(r *GenerationRequest) { r.Days = 0 },
		"TooManyDays":       func(r *GenerationRequest) { r.Days = 31 },
		"NoMeals":           func(r *GenerationRequest) { r.MealsPerDay = nil },
		"UnknownMealType":   func(r *GenerationRequest) { r.MealsPerDay = []recipe.MealType{"brunch"} },
		"DuplicateMealType": func(r *GenerationRequest) { r.MealsPerDay = []recipe.MealType{"lunch", "lunch"} },
		"CaloriesTooLow":    func(r *GenerationRequest) { r.MaxCaloriesPerDay = 799 },
		"CaloriesTooHigh":   func(r *GenerationRequest) { r.MaxCaloriesPerDay = 5001 },
		"ZeroServings":      func(r *GenerationRequest) { r.Servings = 0 },
		"TooManyServings":   func(r *GenerationRequest) { r.Servings = 11 },
		"NoStartDate":       func(r *GenerationRequest) { r.StartDate = time.Time{} },
	}

	for name, mutate := range cases {
		suite.Run(name, func() {
			req := suite.request()
			mutate(&req)
			_, err := Generate("user_1", req, suite.candidates, recipe.FirstPicker, suite.nextID)
			assert.ErrorIs(suite.T(), err, ErrInvalidRequest)
		})
	}

	suite.Run("Boundaries", func() {
		req := suite.request()
		req.Days = MaxDays
		req.MaxCaloriesPerDay = MinCaloriesPerDay
		req.Servings = MaxServings
		assert.NoError(suite.T(), req.Validate())
	})
}

func (suite *MenuTestSuite) TestRegenerateMeals() {
	suite.Run("ReplacesOnlySelected", func() {
		m, err := Generate("user_1", suite.request(), suite.candidates, recipe.FirstPicker, suite.nextID)
		require.NoError(suite.T(), err)
		m.ID = "menu_1"
		m.Events()

		target := m.Days[1].Meals[1]
		untouched := m.Days[0].Meals[0]
		last := recipe.IndexPicker(func(n int) int { return n - 1 })

		replaced, err := m.RegenerateMeals([]string{target.ID}, suite.candidates, last, suite.nextID)
		require.NoError(suite.T(), err)
		require.Len(suite.T(), replaced, 1)

		got := m.Days[1].Meals[1]
		assert.NotEqual(suite.T(), target.ID, got.ID)
		assert.Equal(suite.T(), "recipe_006", got.Recipe.ID)
		assert.Equal(suite.T(), target.Date, got.Date)
		assert.Equal(suite.T(), target.MealType, got.MealType)
		assert.Equal(suite.T(), target.Servings, got.Servings)
		assert.Equal(suite.T(), untouched, m.Days[0].Meals[0])

		// 180*2 + 175*2
		assert.Equal(suite.T(), 710, m.Days[1].TotalCalories)
		assert.Equal(suite.T(), 760, m.Days[0].TotalCalories)

		events := m.Events()
		require.Len(suite.T(), events, 1)
		assert.Equal(suite.T(), "menu.meals_regenerated", events[0].EventName())
	})

	suite.Run("UnknownIDsIgnored", func() {
		m, err := Generate("user_1", suite.request(), suite.candidates, recipe.FirstPicker, suite.nextID)
		require.NoError(suite.T(), err)
		before := m.Clone()

		replaced, err := m.RegenerateMeals([]string{"nope"}, suite.candidates, recipe.FirstPicker, suite.nextID)
		require.NoError(suite.T(), err)
		assert.Empty(suite.T(), replaced)
		assert.Equal(suite.T(), before.Days, m.Days)
	})

	suite.Run("NoCandidatesKeepsMeal", func() {
		m, err := Generate("user_1", suite.request(), suite.candidates, recipe.FirstPicker, suite.nextID)
		require.NoError(suite.T(), err)
		id := m.Days[0].Meals[0].ID

		replaced, err := m.RegenerateMeals([]string{id}, Candidates{}, recipe.FirstPicker, suite.nextID)
		require.NoError(suite.T(), err)
		assert.Empty(suite.T(), replaced)
		_, found := m.FindMeal(id)
		assert.True(suite.T(), found)
	})

	suite.Run("EmptySelection", func() {
		m, err := Generate("user_1", suite.request(), suite.candidates, recipe.FirstPicker, suite.nextID)
		require.NoError(suite.T(), err)
		_, err = m.RegenerateMeals(nil, suite.candidates, recipe.FirstPicker, suite.nextID)
		assert.ErrorIs(suite.T(), err, ErrNoMealsSelected)
	})

	suite.Run("StaleTotalsAreRecomputed", func() {
		m, err := Generate("user_1", suite.request(), suite.candidates, recipe.FirstPicker, suite.nextID)
		require.NoError(suite.T(), err)
		m.Days[2].TotalCalories = 1

		_, err = m.RegenerateMeals([]string{m.Days[0].Meals[0].ID}, suite.candidates, recipe.FirstPicker, suite.nextID)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 760, m.Days[2].TotalCalories)
	})
}

func (suite *MenuTestSuite) TestRegenerateRandomSubsetsKeepTotals() {
	for _, seed := range []int64{1, 7, 42, 1234, 99991} {
		suite.Run(fmt.Sprintf("Seed%d", seed), func() {
			rng := rand.New(rand.NewSource(seed))
			req := suite.request()
			req.Days = 1 + rng.Intn(MaxDays)
			req.Servings = MinServings + rng.Intn(MaxServings)
			req.MealsPerDay = []recipe.MealType{recipe.MealTypeBreakfast, recipe.MealTypeLunch, recipe.MealTypeDinner, recipe.MealTypeSnack}

			m, err := Generate("user_1", req, suite.candidates, recipe.NewRandomPicker(seed), suite.nextID)
			require.NoError(suite.T(), err)

			before := make(map[string]Meal)
			var ids []string
			for _, day := range m.Days {
				for _, meal := range day.Meals {
					before[meal.ID] = meal
					if rng.Intn(2) == 0 {
						ids = append(ids, meal.ID)
					}
				}
			}
			if len(ids) == 0 {
				ids = append(ids, m.Days[0].Meals[0].ID)
			}

			replaced, err := m.RegenerateMeals(ids, suite.candidates, recipe.NewRandomPicker(seed+1), suite.nextID)
			require.NoError(suite.T(), err)
			assert.Len(suite.T(), replaced, len(ids))

			fresh := make(map[string]string, len(replaced))
			for _, r := range replaced {
				fresh[r.NewMealID] = r.OldMealID
			}

			for _, day := range m.Days {
				sum := 0
				for _, meal := range day.Meals {
					sum += meal.Calories()
					assert.Equal(suite.T(), day.Date, meal.Date)
					assert.Equal(suite.T(), meal.MealType, meal.Recipe.MealType)

					oldID, regenerated := fresh[meal.ID]
					if !regenerated {
						assert.Equal(suite.T(), before[meal.ID], meal)
						continue
					}
					old := before[oldID]
					assert.NotEqual(suite.T(), oldID, meal.ID)
					assert.Equal(suite.T(), old.MealType, meal.MealType)
					assert.Equal(suite.T(), old.Date, meal.Date)
					assert.Equal(suite.T(), old.Servings, meal.Servings)
				}
				assert.Equal(suite.T(), sum, day.TotalCalories)
			}
		})
	}
}

func (suite *MenuTestSuite) TestMealTypesOf() {
	m, err := Generate("user_1", suite.request(), suite.candidates, recipe.FirstPicker, suite.nextID)
	require.NoError(suite.T(), err)

	ids := []string{m.Days[0].Meals[1].ID, m.Days[2].Meals[1].ID}
	assert.Equal(suite.T(), []recipe.MealType{recipe.MealTypeDinner}, m.MealTypesOf(ids))
	assert.Empty(suite.T(), m.MealTypesOf([]string{"missing"}))
}

func (suite *MenuTestSuite) TestConfirm() {
	m, err := Generate("user_1", suite.request(), suite.candidates, recipe.FirstPicker, suite.nextID)
	require.NoError(suite.T(), err)

	m.Confirm()
	m.Confirm()
	assert.Equal(suite.T(), StatusActive, m.Status)
	assert.Len(suite.T(), m.Events(), 1)

	m.Status = StatusCompleted
	m.Confirm()
	assert.Equal(suite.T(), StatusActive, m.Status)
}

func (suite *MenuTestSuite) TestCloneAndApply() {
	m, err := Generate("user_1", suite.request(), suite.candidates, recipe.FirstPicker, suite.nextID)
	require.NoError(suite.T(), err)

	c := m.Clone()
	c.Days[0].Meals[0].Servings = 9
	c.MealsPerDay[0] = recipe.MealTypeSnack
	assert.Equal(suite.T(), 2, m.Days[0].Meals[0].Servings)
	assert.Equal(suite.T(), recipe.MealTypeBreakfast, m.MealsPerDay[0])

	completed := StatusCompleted
	m.Apply(Patch{Status: &completed})
	assert.Equal(suite.T(), StatusCompleted, m.Status)
	assert.Len(suite.T(), m.Days, 3)

	m.Apply(Patch{Days: c.Days[:1]})
	assert.Len(suite.T(), m.Days, 1)
}

func TestComputeStats(t *testing.T) {
	mk := func(status Status, meals int) *WeeklyMenu {
		return &WeeklyMenu{Status: status, Days: []DayMenu{{Meals: make([]Meal, meals)}}}
	}

	s := ComputeStats([]*WeeklyMenu{
		mk(StatusPending, 3),
		mk(StatusActive, 2),
		mk(StatusCompleted, 4),
	})

	assert.Equal(t, Stats{TotalMenus: 3, ActiveMenus: 2, CompletedMenus: 1, TotalMeals: 9}, s)
	assert.Equal(t, Stats{}, ComputeStats(nil))
}

func TestMenuTestSuite(t *testing.T) {
	suite.Run(t, new(MenuTestSuite))
}
