package profile

import (
	"math"
	"testing"

	"github.com/smartmeal/planner/internal/domain/recipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type CalculatorTestSuite struct {
	suite.Suite
	male   Profile
	female Profile
}

func (suite *CalculatorTestSuite) SetupTest() {
	suite.male = Profile{
		UserID:        "user_1",
		Age:           30,
		Gender:        GenderMale,
		Weight:        80,
		Height:        180,
		ActivityLevel: ActivityModerate,
		Goal:          GoalMaintain,
		DietType:      DietOmnivore,
	}
	suite.female = Profile{
		UserID:        "user_2",
		Age:           25,
		Gender:        GenderFemale,
		Weight:        60,
		Height:        165,
		ActivityLevel: ActivitySedentary,
		Goal:          GoalMaintain,
		DietType:      DietVegetarian,
	}
}

func (suite *CalculatorTestSuite) TestCalculateBMR() {
	suite.Run("Male", func() {
		bmr, err := CalculateBMR(suite.male)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 2873, bmr)
	})

	suite.Run("Female", func() {
		bmr, err := CalculateBMR(suite.female)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 1686, bmr)
	})

	suite.Run("OtherUsesFemaleEquation", func() {
		other := suite.female
		other.Gender = GenderOther
		a, _ := CalculateBMR(other)
		b, _ := CalculateBMR(suite.female)
		assert.Equal(suite.T(), b, a)

		other.Gender = ""
		c, err := CalculateBMR(other)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), b, c)
	})

	suite.Run("InvalidInputs", func() {
		cases := map[string]func(p *Profile){
			"ZeroAge":         func(p *Profile) { p.Age = 0 },
			"NegativeWeight":  func(p *Profile) { p.Weight = -1 },
			"ZeroHeight":      func(p *Profile) { p.Height = 0 },
			"NaNWeight":       func(p *Profile) { p.Weight = math.NaN() },
			"NaNHeight":       func(p *Profile) { p.Height = math.NaN() },
			"InfiniteWeight":  func(p *Profile) { p.Weight = math.Inf(1) },
			"UnknownActivity": func(p *Profile) { p.ActivityLevel = "couch" },
		}
		for name, mutate := range cases {
			suite.Run(name, func() {
				p := suite.male
				mutate(&p)
				_, err := CalculateBMR(p)
				assert.ErrorIs(suite.T(), err, ErrInvalidProfile)
			})
		}
	})
}

func (suite *CalculatorTestSuite) TestBMRMonotonicity() {
	for _, base := range []Profile{suite.male, suite.female} {
		ref, err := CalculateBMR(base)
		require.NoError(suite.T(), err)

		heavier := base
		heavier.Weight += 10
		taller := base
		taller.Height += 10
		older := base
		older.Age += 10

		w, _ := CalculateBMR(heavier)
		h, _ := CalculateBMR(taller)
		a, _ := CalculateBMR(older)

		assert.Greater(suite.T(), w, ref)
		assert.Greater(suite.T(), h, ref)
		assert.Less(suite.T(), a, ref)
	}

	prev := 0
	for _, level := range []ActivityLevel{ActivitySedentary, ActivityLight, ActivityModerate, ActivityActive, ActivityVeryActive} {
		p := suite.male
		p.ActivityLevel = level
		bmr, err := CalculateBMR(p)
		require.NoError(suite.T(), err)
		assert.Greater(suite.T(), bmr, prev, level)
		prev = bmr
	}
}

func (suite *CalculatorTestSuite) TestBMRPositiveAcrossValidRanges() {
	genders := []Gender{GenderMale, GenderFemale}
	ages := []int{MinAge, 40, MaxAge}
	weights := []float64{MinWeight, 75, MaxWeight}
	heights := []float64{MinHeight, 175, MaxHeight}

	for _, g := range genders {
		for _, age := range ages {
			for _, w := range weights {
				for _, h := range heights {
					p := suite.male
					p.Gender, p.Age, p.Weight, p.Height = g, age, w, h
					p.ActivityLevel = ActivitySedentary

					bmr, err := CalculateBMR(p)
					require.NoError(suite.T(), err)
					assert.Greater(suite.T(), bmr, 0, "gender=%s age=%d weight=%.0f height=%.0f", g, age, w, h)

					heavier := p
					heavier.Weight += 1
					more, err := CalculateBMR(heavier)
					require.NoError(suite.T(), err)
					assert.GreaterOrEqual(suite.T(), more, bmr)
				}
			}
		}
	}
}

func (suite *CalculatorTestSuite) TestRecommendedCalories() {
	cases := []struct {
		goal Goal
		want int
	}{
		{GoalLoseWeight, 2298},
		{GoalMaintain, 2873},
		{GoalGainWeight, 3160},
		{GoalGainMuscle, 3160},
		{"unknown", 2873},
	}

	for _, tc := range cases {
		suite.Run(string(tc.goal), func() {
			p := suite.male
			p.Goal = tc.goal
			got, err := RecommendedCalories(p)
			require.NoError(suite.T(), err)
			assert.Equal(suite.T(), tc.want, got)
		})
	}

	suite.Run("PropagatesInvalidProfile", func() {
		p := suite.male
		p.Age = 0
		_, err := RecommendedCalories(p)
		assert.ErrorIs(suite.T(), err, ErrInvalidProfile)
	})
}

func (suite *CalculatorTestSuite) TestRecommend() {
	limit := 1500
	p := suite.female
	p.Goal = GoalLoseWeight
	p.MaxDailyCalories = &limit

	rec, err := Recommend(p)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1686, rec.BMR)
	assert.Equal(suite.T(), 1349, rec.RecommendedCalories)
	require.NotNil(suite.T(), rec.MaxDailyCalories)
	assert.Equal(suite.T(), 1500, *rec.MaxDailyCalories)

	limit = 900
	assert.Equal(suite.T(), 1500, *rec.MaxDailyCalories)
}

func TestCalculatorTestSuite(t *testing.T) {
	suite.Run(t, new(CalculatorTestSuite))
}

func TestRoundHalfAwayFromZero(t *testing.T) {
	assert.Equal(t, 3, round(2.5))
	assert.Equal(t, 2, round(2.49))
	assert.Equal(t, -3, round(-2.5))
	assert.Equal(t, 1748, round(1747.5))
}

func TestProfileValidate(t *testing.T) {
	valid := Profile{
		UserID:        "user_1",
		Age:           40,
		Gender:        GenderOther,
		Weight:        70,
		Height:        170,
		ActivityLevel: ActivityLight,
		Goal:          GoalGainMuscle,
		DietType:      DietKeto,
	}
	require.NoError(t, valid.Validate())

	tooLow := 799
	cases := map[string]func(p *Profile){
		"TooYoung":        func(p *Profile) { p.Age = 12 },
		"TooOld":          func(p *Profile) { p.Age = 121 },
		"TooLight":        func(p *Profile) { p.Weight = 29.9 },
		"TooTall":         func(p *Profile) { p.Height = 251 },
		"NaNWeight":       func(p *Profile) { p.Weight = math.NaN() },
		"NaNHeight":       func(p *Profile) { p.Height = math.NaN() },
		"CaloriesTooLow":  func(p *Profile) { p.MaxDailyCalories = &tooLow },
		"UnknownGender":   func(p *Profile) { p.Gender = "x" },
		"UnknownActivity": func(p *Profile) { p.ActivityLevel = "x" },
		"UnknownGoal":     func(p *Profile) { p.Goal = "x" },
		"UnknownDiet":     func(p *Profile) { p.DietType = "x" },
		"MissingUser":     func(p *Profile) { p.UserID = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := valid.Clone()
			mutate(&p)
			assert.ErrorIs(t, p.Validate(), ErrInvalidProfile)
		})
	}

	t.Run("ReportsAllProblems", func(t *testing.T) {
		p := valid.Clone()
		p.Age = 5
		p.Height = 20
		err := p.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "age")
		assert.Contains(t, err.Error(), "height")
	})
}

func TestProfileApply(t *testing.T) {
	base := Profile{UserID: "user_1", Age: 30, Weight: 70, Allergies: []string{"nuts"}}

	age := 31
	goal := GoalLoseWeight
	cal := 1800
	out := base.Apply(Patch{Age: &age, Goal: &goal, MaxDailyCalories: &cal, Allergies: []string{}})

	assert.Equal(t, 31, out.Age)
	assert.Equal(t, GoalLoseWeight, out.Goal)
	assert.Equal(t, 70.0, out.Weight)
	assert.Empty(t, out.Allergies)
	assert.Equal(t, []string{"nuts"}, base.Allergies)

	cal = 2000
	assert.Equal(t, 1800, *out.MaxDailyCalories)
	assert.Nil(t, base.MaxDailyCalories)
}

func TestRecipeCriteria(t *testing.T) {
	p := Profile{
		DietType:            DietVegan,
		Restrictions:        []string{"GLUTEN_FREE"},
		Allergies:           []string{"peanut"},
		DislikedIngredients: []string{"tofu"},
	}

	c := RecipeCriteria(p, 2, 1, 2000)
	assert.Equal(t, []string{"vegetarian", "gluten-free"}, c.AllTags)
	assert.Equal(t, []string{"peanut", "tofu"}, c.ExcludedIngredients)
	assert.Equal(t, 1000, c.MaxCalories)
	assert.Equal(t, 1, c.Servings)

	got := recipe.Apply(recipe.Seed(), c)
	require.Len(t, got, 1)
	assert.Equal(t, "recipe_003", got[0].ID)

	own := 900
	p.MaxDailyCalories = &own
	assert.Equal(t, 300, RecipeCriteria(p, 3, 1, 5000).MaxCalories)

	assert.Zero(t, RecipeCriteria(Profile{}, 0, 1, 2000).MaxCalories)
}
