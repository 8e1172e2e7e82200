// Package gorm provides GORM model definitions and repositories
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/smartmeal/planner/internal/domain/menu"
	"gorm.io/gorm"
)

// RecipeModel represents the GORM model for catalog recipes
type RecipeModel struct {
	ID          string `gorm:"type:varchar(64);primaryKey"`
	Name        string `gorm:"type:varchar(255);not null"`
	Description string `gorm:"type:text"`
	Calories    int    `gorm:"not null"`
	Servings    int    `gorm:"default:1"`

	Ingredients  StringSlice `gorm:"type:json"`
	Instructions StringSlice `gorm:"type:json"`

	// Timing (stored in minutes)
	PrepTimeMinutes int `gorm:"column:prep_time_minutes;default:0"`
	CookTimeMinutes int `gorm:"column:cook_time_minutes;default:0"`

	MealType  string      `gorm:"type:varchar(20);not null;index"`
	Tags      StringSlice `gorm:"type:json"`
	CreatedAt time.Time
}

// MenuModel represents the GORM model for weekly menus. Days are stored as
// a JSON snapshot so meals keep the recipe they were generated with.
type MenuModel struct {
	ID                string      `gorm:"type:char(36);primaryKey"`
	UserID            string      `gorm:"type:varchar(64);not null;index"`
	Name              string      `gorm:"type:varchar(255);not null"`
	StartDate         time.Time   `gorm:"not null"`
	EndDate           time.Time   `gorm:"not null"`
	Status            string      `gorm:"type:varchar(20);default:'pending';index"`
	TotalDays         int         `gorm:"not null"`
	MealsPerDay       StringSlice `gorm:"type:json"`
	MaxCaloriesPerDay int
	ServingsPerMeal   int
	Days              DaysField `gorm:"type:json"`
	CreatedAt         time.Time `gorm:"index"`
	UpdatedAt         time.Time
}

// ProfileModel represents the GORM model for onboarding profiles
type ProfileModel struct {
	UserID        string  `gorm:"type:varchar(64);primaryKey"`
	Age           int     `gorm:"not null"`
	Gender        string  `gorm:"type:varchar(20)"`
	Weight        float64 `gorm:"not null"`
	Height        float64 `gorm:"not null"`
	ActivityLevel string  `gorm:"type:varchar(20)"`
	Goal          string  `gorm:"type:varchar(20)"`
	DietType      string  `gorm:"type:varchar(20)"`

	Restrictions        StringSlice `gorm:"type:json"`
	Allergies           StringSlice `gorm:"type:json"`
	FavoriteIngredients StringSlice `gorm:"type:json"`
	DislikedIngredients StringSlice `gorm:"type:json"`

	MaxDailyCalories *int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// StringSlice custom type for handling string slices in JSON
type StringSlice []string

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
}

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// DaysField stores menu days as JSON
type DaysField []menu.DayMenu

// Scan implements the sql.Scanner interface
func (d *DaysField) Scan(value interface{}) error {
	if value == nil {
		*d = DaysField{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	default:
		return fmt.Errorf("cannot scan %T into DaysField", value)
	}
}

// Value implements the driver.Valuer interface
func (d DaysField) Value() (driver.Value, error) {
	if len(d) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// BeforeCreate hook for MenuModel
func (m *MenuModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// TableName methods for custom table names
func (RecipeModel) TableName() string {
	return "recipes"
}

func (MenuModel) TableName() string {
	return "menus"
}

func (ProfileModel) TableName() string {
	return "profiles"
}

// Models lists every model for AutoMigrate
func Models() []interface{} {
	return []interface{}{
		&RecipeModel{},
		&MenuModel{},
		&ProfileModel{},
	}
}
