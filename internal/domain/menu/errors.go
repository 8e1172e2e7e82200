package menu

import "errors"

var (
	ErrInvalidRequest  = errors.New("invalid menu generation request")
	ErrNoMealsSelected = errors.New("at least one meal must be selected")
	ErrMenuNotFound    = errors.New("menu not found")
)
