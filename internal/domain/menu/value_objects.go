package menu

import (
	"fmt"
	"time"

	"github.com/smartmeal/planner/internal/domain/recipe"
)

// Status is the lifecycle state of a menu
type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Limits for a generation request
const (
	MinDays           = 1
	MaxDays           = 30
	MinCaloriesPerDay = 800
	MaxCaloriesPerDay = 5000
	MinServings       = 1
	MaxServings       = 10
	dateLayout        = "2006-01-02"
)

// GenerationRequest describes the menu a user asked for.
type GenerationRequest struct {
	StartDate         time.Time
	Days              int
	MealsPerDay       []recipe.MealType
	MaxCaloriesPerDay int
	Servings          int
}

// Validate checks the request bounds. Every failure wraps ErrInvalidRequest.
func (r GenerationRequest) Validate() error {
	if r.StartDate.IsZero() {
		return fmt.Errorf("%w: start date is required", ErrInvalidRequest)
	}
	if r.Days < MinDays || r.Days > MaxDays {
		return fmt.Errorf("%w: days must be between %d and %d", ErrInvalidRequest, MinDays, MaxDays)
	}
	if len(r.MealsPerDay) == 0 {
		return fmt.Errorf("%w: at least one meal per day is required", ErrInvalidRequest)
	}
	seen := make(map[recipe.MealType]bool, len(r.MealsPerDay))
	for _, mt := range r.MealsPerDay {
		if !mt.IsValid() {
			return fmt.Errorf("%w: unknown meal type %q", ErrInvalidRequest, mt)
		}
		if seen[mt] {
			return fmt.Errorf("%w: meal type %q requested twice", ErrInvalidRequest, mt)
		}
		seen[mt] = true
	}
	if r.MaxCaloriesPerDay < MinCaloriesPerDay || r.MaxCaloriesPerDay > MaxCaloriesPerDay {
		return fmt.Errorf("%w: max calories per day must be between %d and %d", ErrInvalidRequest, MinCaloriesPerDay, MaxCaloriesPerDay)
	}
	if r.Servings < MinServings || r.Servings > MaxServings {
		return fmt.Errorf("%w: servings must be between %d and %d", ErrInvalidRequest, MinServings, MaxServings)
	}
	return nil
}

// Patch is a partial update of a stored menu. Nil fields are left untouched.
type Patch struct {
	Days   []DayMenu
	Status *Status
}

// Stats summarises a user's menus.
type Stats struct {
	TotalMenus     int `json:"total_menus"`
	ActiveMenus    int `json:"active_menus"`
	CompletedMenus int `json:"completed_menus"`
	TotalMeals     int `json:"total_meals"`
}

// ComputeStats counts pending menus as active, as the dashboard always has.
func ComputeStats(menus []*WeeklyMenu) Stats {
	var s Stats
	for _, m := range menus {
		s.TotalMenus++
		switch m.Status {
		case StatusActive, StatusPending:
			s.ActiveMenus++
		case StatusCompleted:
			s.CompletedMenus++
		}
		s.TotalMeals += m.MealCount()
	}
	return s
}

// dateOnly truncates t to midnight UTC of its calendar date.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
