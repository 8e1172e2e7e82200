package menu

import "time"

// MenuGeneratedEvent is raised when a new menu has been stored
type MenuGeneratedEvent struct {
	MenuID      string    `json:"menu_id"`
	UserID      string    `json:"user_id"`
	Days        int       `json:"days"`
	Meals       int       `json:"meals"`
	GeneratedAt time.Time `json:"generated_at"`
}

func (e MenuGeneratedEvent) EventName() string {
	return "menu.generated"
}

func (e MenuGeneratedEvent) OccurredAt() time.Time {
	return e.GeneratedAt
}

// MealsRegeneratedEvent is raised after a batch of meals got new recipes
type MealsRegeneratedEvent struct {
	MenuID        string    `json:"menu_id"`
	UserID        string    `json:"user_id"`
	Requested     int       `json:"requested"`
	Regenerated   int       `json:"regenerated"`
	RegeneratedAt time.Time `json:"regenerated_at"`
}

func (e MealsRegeneratedEvent) EventName() string {
	return "menu.meals_regenerated"
}

func (e MealsRegeneratedEvent) OccurredAt() time.Time {
	return e.RegeneratedAt
}

// MenuConfirmedEvent is raised when a menu becomes active
type MenuConfirmedEvent struct {
	MenuID         string    `json:"menu_id"`
	UserID         string    `json:"user_id"`
	PreviousStatus Status    `json:"previous_status"`
	ConfirmedAt    time.Time `json:"confirmed_at"`
}

func (e MenuConfirmedEvent) EventName() string {
	return "menu.confirmed"
}

func (e MenuConfirmedEvent) OccurredAt() time.Time {
	return e.ConfirmedAt
}
