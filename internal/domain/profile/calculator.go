package profile

import (
	"fmt"
	"math"
)

// Revised Harris-Benedict coefficients
const (
	maleBase   = 88.362
	maleWeight = 13.397
	maleHeight = 4.799
	maleAge    = 5.677

	femaleBase   = 447.593
	femaleWeight = 9.247
	femaleHeight = 3.098
	femaleAge    = 4.330

	loseWeightFactor = 0.8
	gainFactor       = 1.1
)

// CalculateBMR returns the activity-adjusted basal metabolic rate in kcal.
// Any gender other than male uses the female equation.
func CalculateBMR(p Profile) (int, error) {
	if p.Age <= 0 || !positive(p.Weight) || !positive(p.Height) {
		return 0, fmt.Errorf("%w: age, weight and height must be positive", ErrInvalidProfile)
	}
	multiplier, ok := p.ActivityLevel.Multiplier()
	if !ok {
		return 0, fmt.Errorf("%w: unknown activity level %q", ErrInvalidProfile, p.ActivityLevel)
	}

	age := float64(p.Age)
	var bmr float64
	if p.Gender == GenderMale {
		bmr = maleBase + maleWeight*p.Weight + maleHeight*p.Height - maleAge*age
	} else {
		bmr = femaleBase + femaleWeight*p.Weight + femaleHeight*p.Height - femaleAge*age
	}

	return round(bmr * multiplier), nil
}

// RecommendedCalories adjusts the BMR for the profile goal. Unknown goals
// are treated as maintain.
func RecommendedCalories(p Profile) (int, error) {
	bmr, err := CalculateBMR(p)
	if err != nil {
		return 0, err
	}
	return adjustForGoal(bmr, p.Goal), nil
}

func adjustForGoal(bmr int, goal Goal) int {
	switch goal {
	case GoalLoseWeight:
		return round(float64(bmr) * loseWeightFactor)
	case GoalGainWeight, GoalGainMuscle:
		return round(float64(bmr) * gainFactor)
	default:
		return bmr
	}
}

// Recommendation is the advisory calorie summary shown to a user.
type Recommendation struct {
	BMR                 int  `json:"bmr"`
	RecommendedCalories int  `json:"recommended_calories"`
	MaxDailyCalories    *int `json:"max_daily_calories,omitempty"`
}

// Recommend computes the calorie recommendation for p
func Recommend(p Profile) (Recommendation, error) {
	bmr, err := CalculateBMR(p)
	if err != nil {
		return Recommendation{}, err
	}
	return Recommendation{
		BMR:                 bmr,
		RecommendedCalories: adjustForGoal(bmr, p.Goal),
		MaxDailyCalories:    p.Clone().MaxDailyCalories,
	}, nil
}

// round rounds half away from zero
func round(x float64) int {
	return int(math.Round(x))
}

// positive is false for NaN and infinities
func positive(x float64) bool {
	return x > 0 && !math.IsInf(x, 1)
}
