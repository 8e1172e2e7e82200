package recipe

import "errors"

var (
	ErrUnknownMealType = errors.New("unknown meal type")
	ErrEmptyName       = errors.New("recipe name is required")
	ErrInvalidCalories = errors.New("recipe calories must be greater than 0")
	ErrInvalidServings = errors.New("recipe servings must be greater than 0")
	ErrNegativeTime    = errors.New("recipe prep and cook time cannot be negative")
)
