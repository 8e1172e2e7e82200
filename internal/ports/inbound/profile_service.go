package inbound

import (
	"context"

	"github.com/smartmeal/planner/internal/domain/profile"
)

// ProfileService defines the onboarding use cases
type ProfileService interface {
	SaveProfile(ctx context.Context, p profile.Profile) (*ProfileDTO, error)
	UpdateProfile(ctx context.Context, userID string, patch profile.Patch) (*ProfileDTO, error)
	GetProfile(ctx context.Context, userID string) (*ProfileDTO, error)
	GetRecommendation(ctx context.Context, userID string) (*RecommendationDTO, error)
}

// ProfileDTO is a stored profile with its calorie recommendation
type ProfileDTO struct {
	profile.Profile
	Recommendation *RecommendationDTO `json:"recommendation,omitempty"`
}

// RecommendationDTO is the advisory calorie guidance for a profile
type RecommendationDTO struct {
	BMR                 int  `json:"bmr"`
	RecommendedCalories int  `json:"recommended_calories"`
	MaxDailyCalories    *int `json:"max_daily_calories,omitempty"`
}
