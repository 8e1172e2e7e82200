package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// CatalogTestSuite covers the recipe catalog, pickers and filters
type CatalogTestSuite struct {
	suite.Suite
	catalog []Recipe
}

func (suite *CatalogTestSuite) SetupTest() {
	suite.catalog = Seed()
}

func (suite *CatalogTestSuite) TestSeed() {
	suite.Run("AllRecipesValid", func() {
		for _, r := range suite.catalog {
			assert.NoError(suite.T(), r.Validate(), r.ID)
		}
	})

	suite.Run("IDsAreUnique", func() {
		seen := map[string]bool{}
		for _, r := range suite.catalog {
			assert.False(suite.T(), seen[r.ID], "duplicate id %s", r.ID)
			seen[r.ID] = true
		}
	})

	suite.Run("SnackHasNoRecipes", func() {
		assert.Empty(suite.T(), FilterByMealType(suite.catalog, MealTypeSnack))
	})

	suite.Run("SeedReturnsFreshSlices", func() {
		a := Seed()
		a[0].Tags[0] = "mutated"
		assert.Equal(suite.T(), "vegetarian", Seed()[0].Tags[0])
	})
}

func (suite *CatalogTestSuite) TestValidate() {
	valid := suite.catalog[0]

	cases := map[string]struct {
		mutate func(r *Recipe)
		want   error
	}{
		"EmptyName":       {func(r *Recipe) { r.Name = "" }, ErrEmptyName},
		"ZeroCalories":    {func(r *Recipe) { r.Calories = 0 }, ErrInvalidCalories},
		"ZeroServings":    {func(r *Recipe) { r.Servings = 0 }, ErrInvalidServings},
		"NegativePrep":    {func(r *Recipe) { r.PrepTime = -1 }, ErrNegativeTime},
		"UnknownMealType": {func(r *Recipe) { r.MealType = "brunch" }, ErrUnknownMealType},
	}

	for name, tc := range cases {
		suite.Run(name, func() {
			r := valid.Clone()
			tc.mutate(&r)
			assert.ErrorIs(suite.T(), r.Validate(), tc.want)
		})
	}
}

func (suite *CatalogTestSuite) TestFilterByMealType() {
	breakfast := FilterByMealType(suite.catalog, MealTypeBreakfast)
	require.Len(suite.T(), breakfast, 2)
	assert.Equal(suite.T(), "recipe_001", breakfast[0].ID)
	assert.Equal(suite.T(), "recipe_002", breakfast[1].ID)

	for _, mt := range []MealType{MealTypeLunch, MealTypeDinner} {
		for _, r := range FilterByMealType(suite.catalog, mt) {
			assert.Equal(suite.T(), mt, r.MealType)
		}
	}
}

func (suite *CatalogTestSuite) TestPickers() {
	suite.Run("RandomPicker_EmptyReturnsFalse", func() {
		_, ok := NewRandomPicker(1).Pick(nil)
		assert.False(suite.T(), ok)
	})

	suite.Run("RandomPicker_SameSeedSameSequence", func() {
		dinners := FilterByMealType(suite.catalog, MealTypeDinner)
		a, b := NewRandomPicker(42), NewRandomPicker(42)
		for i := 0; i < 20; i++ {
			ra, _ := a.Pick(dinners)
			rb, _ := b.Pick(dinners)
			assert.Equal(suite.T(), ra.ID, rb.ID)
		}
	})

	suite.Run("RandomPicker_ReachesEveryCandidate", func() {
		lunches := FilterByMealType(suite.catalog, MealTypeLunch)
		p := NewRandomPicker(7)
		seen := map[string]bool{}
		for i := 0; i < 200; i++ {
			r, ok := p.Pick(lunches)
			require.True(suite.T(), ok)
			seen[r.ID] = true
		}
		assert.Len(suite.T(), seen, len(lunches))
	})

	suite.Run("IndexPicker", func() {
		last := IndexPicker(func(n int) int { return n - 1 })
		r, ok := last.Pick(FilterByMealType(suite.catalog, MealTypeBreakfast))
		require.True(suite.T(), ok)
		assert.Equal(suite.T(), "recipe_002", r.ID)

		_, ok = FirstPicker.Pick(nil)
		assert.False(suite.T(), ok)
	})
}

func (suite *CatalogTestSuite) TestFilters() {
	suite.Run("AllowAllKeepsEverything", func() {
		assert.Len(suite.T(), Apply(suite.catalog, AllowAll), len(suite.catalog))
		assert.Len(suite.T(), Apply(suite.catalog, nil), len(suite.catalog))
	})

	suite.Run("AnyTags", func() {
		got := Apply(suite.catalog, Criteria{AnyTags: []string{"vegetarian"}})
		require.Len(suite.T(), got, 3)
		for _, r := range got {
			assert.True(suite.T(), r.HasTag("vegetarian"))
		}
	})

	suite.Run("AllTags", func() {
		got := Apply(suite.catalog, Criteria{AllTags: []string{"vegetarian", "gluten-free"}})
		require.Len(suite.T(), got, 1)
		assert.Equal(suite.T(), "recipe_003", got[0].ID)
	})

	suite.Run("ExcludedIngredientsCaseInsensitive", func() {
		got := Apply(suite.catalog, Criteria{ExcludedIngredients: []string{"TOFU", "  "}})
		for _, r := range got {
			assert.NotEqual(suite.T(), "recipe_006", r.ID)
		}
		assert.Len(suite.T(), got, len(suite.catalog)-1)
	})

	suite.Run("MaxCaloriesUsesServings", func() {
		got := Apply(suite.catalog, Criteria{MaxCalories: 370, Servings: 2})
		for _, r := range got {
			assert.LessOrEqual(suite.T(), r.Calories*2, 370)
		}
		assert.Len(suite.T(), got, 3) // 180, 185, 175
	})
}

func TestParseMealType(t *testing.T) {
	for _, mt := range MealTypes {
		got, err := ParseMealType(string(mt))
		require.NoError(t, err)
		assert.Equal(t, mt, got)
	}

	_, err := ParseMealType("brunch")
	assert.ErrorIs(t, err, ErrUnknownMealType)
}

func TestCatalogTestSuite(t *testing.T) {
	suite.Run(t, new(CatalogTestSuite))
}
