package menu

import (
	"github.com/smartmeal/planner/internal/domain/menu"
	"github.com/smartmeal/planner/internal/ports/inbound"
)

const dateLayout = "2006-01-02"

// ToDTO converts a menu entity to its transport form
func ToDTO(m *menu.WeeklyMenu) *inbound.MenuDTO {
	if m == nil {
		return nil
	}

	dto := &inbound.MenuDTO{
		ID:                m.ID,
		UserID:            m.UserID,
		Name:              m.Name,
		StartDate:         m.StartDate.Format(dateLayout),
		EndDate:           m.EndDate.Format(dateLayout),
		Status:            m.Status,
		TotalDays:         m.TotalDays,
		MealsPerDay:       m.MealsPerDay,
		MaxCaloriesPerDay: m.MaxCaloriesPerDay,
		ServingsPerMeal:   m.ServingsPerMeal,
		Days:              make([]inbound.DayMenuDTO, len(m.Days)),
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}

	for i, day := range m.Days {
		meals := make([]inbound.MealDTO, len(day.Meals))
		for j, meal := range day.Meals {
			meals[j] = inbound.MealDTO{
				ID:       meal.ID,
				Recipe:   meal.Recipe.Clone(),
				Date:     meal.Date.Format(dateLayout),
				MealType: meal.MealType,
				Servings: meal.Servings,
				Calories: meal.Calories(),
			}
		}
		dto.Days[i] = inbound.DayMenuDTO{
			Date:          day.Date.Format(dateLayout),
			Meals:         meals,
			TotalCalories: day.TotalCalories,
		}
	}

	return dto
}

func toReplacementDTOs(rs []menu.Replacement) []inbound.ReplacementDTO {
	out := make([]inbound.ReplacementDTO, len(rs))
	for i, r := range rs {
		out[i] = inbound.ReplacementDTO{
			OldMealID: r.OldMealID,
			NewMealID: r.NewMealID,
			MealType:  r.MealType,
			RecipeID:  r.RecipeID,
		}
	}
	return out
}
