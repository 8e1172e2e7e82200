// Package menu contains the weekly menu aggregate and the rules for building
// and regenerating it from the recipe catalog.
package menu

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/smartmeal/planner/internal/domain/recipe"
	"github.com/smartmeal/planner/internal/domain/shared"
)

// Candidates maps a meal type to the recipes that may fill it.
type Candidates map[recipe.MealType][]recipe.Recipe

// IDGenerator produces meal identifiers
type IDGenerator func() string

// NewMealID returns a fresh random meal identifier
func NewMealID() string {
	return uuid.NewString()
}

// Meal is one recipe scheduled for one slot of one day.
type Meal struct {
	ID       string          `json:"id"`
	Recipe   recipe.Recipe   `json:"recipe"`
	Date     time.Time       `json:"date"`
	MealType recipe.MealType `json:"meal_type"`
	Servings int             `json:"servings"`
}

// Calories returns recipe calories multiplied by the served portions
func (m Meal) Calories() int {
	return m.Recipe.Calories * m.Servings
}

// DayMenu holds the meals of a single date. TotalCalories is always the sum
// of its meals' calories; call Recalculate after touching Meals.
type DayMenu struct {
	Date          time.Time `json:"date"`
	Meals         []Meal    `json:"meals"`
	TotalCalories int       `json:"total_calories"`
}

// Recalculate resums TotalCalories from scratch
func (d *DayMenu) Recalculate() {
	total := 0
	for _, m := range d.Meals {
		total += m.Calories()
	}
	d.TotalCalories = total
}

// WeeklyMenu is the aggregate root for a generated menu.
type WeeklyMenu struct {
	ID                string            `json:"id"`
	UserID            string            `json:"user_id"`
	Name              string            `json:"name"`
	StartDate         time.Time         `json:"start_date"`
	EndDate           time.Time         `json:"end_date"`
	Days              []DayMenu         `json:"days"`
	Status            Status            `json:"status"`
	TotalDays         int               `json:"total_days"`
	MealsPerDay       []recipe.MealType `json:"meals_per_day"`
	MaxCaloriesPerDay int               `json:"max_calories_per_day"`
	ServingsPerMeal   int               `json:"servings_per_meal"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`

	shared.AggregateRoot `json:"-"`
}

// Generate builds a pending menu for userID. For every day and every
// requested meal type, in request order, one recipe is picked from the
// candidates of that type; a type with no candidates is skipped for the day.
// The returned menu has no ID yet: the store assigns it on create.
func Generate(userID string, req GenerationRequest, candidates Candidates, picker recipe.Picker, newID IDGenerator) (*WeeklyMenu, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if newID == nil {
		newID = NewMealID
	}

	start := dateOnly(req.StartDate)
	end := start.AddDate(0, 0, req.Days-1)

	days := make([]DayMenu, 0, req.Days)
	for i := 0; i < req.Days; i++ {
		date := start.AddDate(0, 0, i)
		day := DayMenu{Date: date, Meals: make([]Meal, 0, len(req.MealsPerDay))}

		for _, mealType := range req.MealsPerDay {
			r, ok := picker.Pick(candidates[mealType])
			if !ok {
				continue
			}
			day.Meals = append(day.Meals, Meal{
				ID:       newID(),
				Recipe:   r.Clone(),
				Date:     date,
				MealType: mealType,
				Servings: req.Servings,
			})
		}

		day.Recalculate()
		days = append(days, day)
	}

	return &WeeklyMenu{
		UserID:            userID,
		Name:              fmt.Sprintf("Menu %s - %s", start.Format(dateLayout), end.Format(dateLayout)),
		StartDate:         start,
		EndDate:           end,
		Days:              days,
		Status:            StatusPending,
		TotalDays:         req.Days,
		MealsPerDay:       append([]recipe.MealType(nil), req.MealsPerDay...),
		MaxCaloriesPerDay: req.MaxCaloriesPerDay,
		ServingsPerMeal:   req.Servings,
	}, nil
}

// Replacement records one regenerated meal
type Replacement struct {
	OldMealID string
	NewMealID string
	MealType  recipe.MealType
	RecipeID  string
}

// RegenerateMeals swaps the recipe of every meal whose id is in mealIDs,
// whatever day it belongs to. The replacement keeps date, meal type and
// servings but gets a fresh id. Meals whose type has no candidates are left
// as they are. Every day total is recomputed afterwards.
func (m *WeeklyMenu) RegenerateMeals(mealIDs []string, candidates Candidates, picker recipe.Picker, newID IDGenerator) ([]Replacement, error) {
	if len(mealIDs) == 0 {
		return nil, ErrNoMealsSelected
	}
	if newID == nil {
		newID = NewMealID
	}

	selected := make(map[string]struct{}, len(mealIDs))
	for _, id := range mealIDs {
		selected[id] = struct{}{}
	}

	var replaced []Replacement
	for d := range m.Days {
		day := &m.Days[d]
		for i, meal := range day.Meals {
			if _, ok := selected[meal.ID]; !ok {
				continue
			}
			r, ok := picker.Pick(candidates[meal.MealType])
			if !ok {
				continue
			}
			fresh := meal
			fresh.ID = newID()
			fresh.Recipe = r.Clone()
			day.Meals[i] = fresh

			replaced = append(replaced, Replacement{
				OldMealID: meal.ID,
				NewMealID: fresh.ID,
				MealType:  meal.MealType,
				RecipeID:  r.ID,
			})
		}
		day.Recalculate()
	}

	m.AddEvent(MealsRegeneratedEvent{
		MenuID:        m.ID,
		UserID:        m.UserID,
		Requested:     len(mealIDs),
		Regenerated:   len(replaced),
		RegeneratedAt: time.Now(),
	})

	return replaced, nil
}

// Confirm moves the menu to active. It is unconditional and idempotent.
func (m *WeeklyMenu) Confirm() {
	if m.Status == StatusActive {
		return
	}
	previous := m.Status
	m.Status = StatusActive
	m.AddEvent(MenuConfirmedEvent{
		MenuID:         m.ID,
		UserID:         m.UserID,
		PreviousStatus: previous,
		ConfirmedAt:    time.Now(),
	})
}

// RecordGenerated raises the generation event once the menu has an ID.
func (m *WeeklyMenu) RecordGenerated() {
	m.AddEvent(MenuGeneratedEvent{
		MenuID:      m.ID,
		UserID:      m.UserID,
		Days:        m.TotalDays,
		Meals:       m.MealCount(),
		GeneratedAt: m.CreatedAt,
	})
}

// IsOwnedBy reports whether userID owns the menu
func (m *WeeklyMenu) IsOwnedBy(userID string) bool {
	return m.UserID == userID
}

// MealCount returns the number of meals across all days
func (m *WeeklyMenu) MealCount() int {
	n := 0
	for _, d := range m.Days {
		n += len(d.Meals)
	}
	return n
}

// FindMeal looks a meal up by id across all days
func (m *WeeklyMenu) FindMeal(id string) (Meal, bool) {
	for _, d := range m.Days {
		for _, meal := range d.Meals {
			if meal.ID == id {
				return meal, true
			}
		}
	}
	return Meal{}, false
}

// MealTypesOf returns the distinct meal types of the given meal ids.
func (m *WeeklyMenu) MealTypesOf(ids []string) []recipe.MealType {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	seen := map[recipe.MealType]bool{}
	var out []recipe.MealType
	for _, d := range m.Days {
		for _, meal := range d.Meals {
			if _, ok := wanted[meal.ID]; ok && !seen[meal.MealType] {
				seen[meal.MealType] = true
				out = append(out, meal.MealType)
			}
		}
	}
	return out
}

// Apply merges a patch into the menu
func (m *WeeklyMenu) Apply(p Patch) {
	if p.Days != nil {
		m.Days = CloneDays(p.Days)
	}
	if p.Status != nil {
		m.Status = *p.Status
	}
}

// Clone returns a deep copy without pending events
func (m *WeeklyMenu) Clone() *WeeklyMenu {
	c := &WeeklyMenu{
		ID:                m.ID,
		UserID:            m.UserID,
		Name:              m.Name,
		StartDate:         m.StartDate,
		EndDate:           m.EndDate,
		Days:              CloneDays(m.Days),
		Status:            m.Status,
		TotalDays:         m.TotalDays,
		MealsPerDay:       append([]recipe.MealType(nil), m.MealsPerDay...),
		MaxCaloriesPerDay: m.MaxCaloriesPerDay,
		ServingsPerMeal:   m.ServingsPerMeal,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
	return c
}

// CloneDays deep copies a days slice
func CloneDays(days []DayMenu) []DayMenu {
	if days == nil {
		return nil
	}
	out := make([]DayMenu, len(days))
	for i, d := range days {
		meals := make([]Meal, len(d.Meals))
		for j, meal := range d.Meals {
			meal.Recipe = meal.Recipe.Clone()
			meals[j] = meal
		}
		out[i] = DayMenu{Date: d.Date, Meals: meals, TotalCalories: d.TotalCalories}
	}
	return out
}
