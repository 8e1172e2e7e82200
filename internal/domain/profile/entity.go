// Package profile holds the onboarding profile of a user and the calorie
// calculations derived from it.
package profile

import (
	"fmt"
	"strings"
	"time"
)

// Gender as collected during onboarding
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// IsValid reports whether g is a known gender
func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// ActivityLevel scales the basal metabolic rate
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

var activityMultipliers = map[ActivityLevel]float64{
	ActivitySedentary:  1.2,
	ActivityLight:      1.375,
	ActivityModerate:   1.55,
	ActivityActive:     1.725,
	ActivityVeryActive: 1.9,
}

// Multiplier returns the activity factor and whether the level is known
func (a ActivityLevel) Multiplier() (float64, bool) {
	m, ok := activityMultipliers[a]
	return m, ok
}

// IsValid reports whether a is a known activity level
func (a ActivityLevel) IsValid() bool {
	_, ok := activityMultipliers[a]
	return ok
}

// Goal is the user's weight objective
type Goal string

const (
	GoalLoseWeight Goal = "lose_weight"
	GoalMaintain   Goal = "maintain"
	GoalGainMuscle Goal = "gain_muscle"
	GoalGainWeight Goal = "gain_weight"
)

// IsValid reports whether g is a known goal
func (g Goal) IsValid() bool {
	switch g {
	case GoalLoseWeight, GoalMaintain, GoalGainMuscle, GoalGainWeight:
		return true
	}
	return false
}

// DietType is the eating style picked during onboarding
type DietType string

const (
	DietOmnivore      DietType = "omnivore"
	DietVegetarian    DietType = "vegetarian"
	DietVegan         DietType = "vegan"
	DietKeto          DietType = "keto"
	DietPaleo         DietType = "paleo"
	DietMediterranean DietType = "mediterranean"
)

// IsValid reports whether d is a known diet type
func (d DietType) IsValid() bool {
	switch d {
	case DietOmnivore, DietVegetarian, DietVegan, DietKeto, DietPaleo, DietMediterranean:
		return true
	}
	return false
}

// Accepted ranges for profile values
const (
	MinAge              = 13
	MaxAge              = 120
	MinWeight           = 30.0
	MaxWeight           = 300.0
	MinHeight           = 100.0
	MaxHeight           = 250.0
	MinDailyCalories    = 800
	MaxDailyCaloriesCap = 5000
)

// Profile is the onboarding data of one user. Weight is in kg, height in cm.
type Profile struct {
	UserID              string        `json:"user_id"`
	Age                 int           `json:"age"`
	Gender              Gender        `json:"gender"`
	Weight              float64       `json:"weight"`
	Height              float64       `json:"height"`
	ActivityLevel       ActivityLevel `json:"activity_level"`
	Goal                Goal          `json:"goal"`
	DietType            DietType      `json:"diet_type"`
	Restrictions        []string      `json:"restrictions"`
	Allergies           []string      `json:"allergies"`
	FavoriteIngredients []string      `json:"favorite_ingredients"`
	DislikedIngredients []string      `json:"disliked_ingredients"`
	MaxDailyCalories    *int          `json:"max_daily_calories,omitempty"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
}

// Validate checks every field of a complete profile. All problems are
// reported together, wrapped in ErrInvalidProfile.
func (p Profile) Validate() error {
	var problems []string

	if p.UserID == "" {
		problems = append(problems, "user id is required")
	}
	if p.Age < MinAge || p.Age > MaxAge {
		problems = append(problems, fmt.Sprintf("age must be between %d and %d years", MinAge, MaxAge))
	}
	if !(p.Weight >= MinWeight && p.Weight <= MaxWeight) {
		problems = append(problems, fmt.Sprintf("weight must be between %.0f and %.0f kg", MinWeight, MaxWeight))
	}
	if !(p.Height >= MinHeight && p.Height <= MaxHeight) {
		problems = append(problems, fmt.Sprintf("height must be between %.0f and %.0f cm", MinHeight, MaxHeight))
	}
	if p.MaxDailyCalories != nil && (*p.MaxDailyCalories < MinDailyCalories || *p.MaxDailyCalories > MaxDailyCaloriesCap) {
		problems = append(problems, fmt.Sprintf("daily calories must be between %d and %d", MinDailyCalories, MaxDailyCaloriesCap))
	}
	if !p.Gender.IsValid() {
		problems = append(problems, fmt.Sprintf("unknown gender %q", p.Gender))
	}
	if !p.ActivityLevel.IsValid() {
		problems = append(problems, fmt.Sprintf("unknown activity level %q", p.ActivityLevel))
	}
	if !p.Goal.IsValid() {
		problems = append(problems, fmt.Sprintf("unknown goal %q", p.Goal))
	}
	if !p.DietType.IsValid() {
		problems = append(problems, fmt.Sprintf("unknown diet type %q", p.DietType))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidProfile, strings.Join(problems, ", "))
	}
	return nil
}

// Patch is a partial profile update. Nil fields are left untouched.
type Patch struct {
	Age                 *int
	Gender              *Gender
	Weight              *float64
	Height              *float64
	ActivityLevel       *ActivityLevel
	Goal                *Goal
	DietType            *DietType
	Restrictions        []string
	Allergies           []string
	FavoriteIngredients []string
	DislikedIngredients []string
	MaxDailyCalories    *int
}

// Apply merges patch into a copy of p and returns it
func (p Profile) Apply(patch Patch) Profile {
	out := p.Clone()
	if patch.Age != nil {
		out.Age = *patch.Age
	}
	if patch.Gender != nil {
		out.Gender = *patch.Gender
	}
	if patch.Weight != nil {
		out.Weight = *patch.Weight
	}
	if patch.Height != nil {
		out.Height = *patch.Height
	}
	if patch.ActivityLevel != nil {
		out.ActivityLevel = *patch.ActivityLevel
	}
	if patch.Goal != nil {
		out.Goal = *patch.Goal
	}
	if patch.DietType != nil {
		out.DietType = *patch.DietType
	}
	if patch.Restrictions != nil {
		out.Restrictions = append([]string(nil), patch.Restrictions...)
	}
	if patch.Allergies != nil {
		out.Allergies = append([]string(nil), patch.Allergies...)
	}
	if patch.FavoriteIngredients != nil {
		out.FavoriteIngredients = append([]string(nil), patch.FavoriteIngredients...)
	}
	if patch.DislikedIngredients != nil {
		out.DislikedIngredients = append([]string(nil), patch.DislikedIngredients...)
	}
	if patch.MaxDailyCalories != nil {
		v := *patch.MaxDailyCalories
		out.MaxDailyCalories = &v
	}
	return out
}

// HasRestriction reports whether the profile lists restriction r
func (p Profile) HasRestriction(r string) bool {
	for _, x := range p.Restrictions {
		if strings.EqualFold(x, r) {
			return true
		}
	}
	return false
}

// Clone returns a copy sharing no slices or pointers with p
func (p Profile) Clone() Profile {
	c := p
	c.Restrictions = append([]string(nil), p.Restrictions...)
	c.Allergies = append([]string(nil), p.Allergies...)
	c.FavoriteIngredients = append([]string(nil), p.FavoriteIngredients...)
	c.DislikedIngredients = append([]string(nil), p.DislikedIngredients...)
	if p.MaxDailyCalories != nil {
		v := *p.MaxDailyCalories
		c.MaxDailyCalories = &v
	}
	return c
}
