package recipe

import "fmt"

// MealType is the fixed categorical slot a recipe is written for.
type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeSnack     MealType = "snack"
	MealTypeDinner    MealType = "dinner"
)

// MealTypes lists every meal type in day order.
var MealTypes = []MealType{MealTypeBreakfast, MealTypeLunch, MealTypeSnack, MealTypeDinner}

// IsValid reports whether m is one of the known meal types
func (m MealType) IsValid() bool {
	switch m {
	case MealTypeBreakfast, MealTypeLunch, MealTypeSnack, MealTypeDinner:
		return true
	default:
		return false
	}
}

// ParseMealType converts a raw string into a MealType
func ParseMealType(s string) (MealType, error) {
	m := MealType(s)
	if !m.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownMealType, s)
	}
	return m, nil
}
