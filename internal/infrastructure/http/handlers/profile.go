package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smartmeal/planner/internal/domain/profile"
	"github.com/smartmeal/planner/internal/ports/inbound"
	"go.uber.org/zap"
)

// SaveProfileRequest is the onboarding payload of PUT /profile
type SaveProfileRequest struct {
	Age                 int      `json:"age" validate:"required,gte=13,lte=120"`
	Gender              string   `json:"gender" validate:"required,oneof=male female other"`
	Weight              float64  `json:"weight" validate:"required,gte=30,lte=300"`
	Height              float64  `json:"height" validate:"required,gte=100,lte=250"`
	ActivityLevel       string   `json:"activity_level" validate:"required,oneof=sedentary light moderate active very_active"`
	Goal                string   `json:"goal" validate:"required,oneof=lose_weight maintain gain_muscle gain_weight"`
	DietType            string   `json:"diet_type" validate:"required,oneof=omnivore vegetarian vegan keto paleo mediterranean"`
	Restrictions        []string `json:"restrictions" validate:"omitempty,dive,ingredient"`
	Allergies           []string `json:"allergies" validate:"omitempty,dive,ingredient"`
	FavoriteIngredients []string `json:"favorite_ingredients" validate:"omitempty,dive,ingredient"`
	DislikedIngredients []string `json:"disliked_ingredients" validate:"omitempty,dive,ingredient"`
	MaxDailyCalories    *int     `json:"max_daily_calories" validate:"omitempty,gte=800,lte=5000"`
}

// PatchProfileRequest is the payload of PATCH /profile. Absent fields are
// left unchanged.
type PatchProfileRequest struct {
	Age                 *int     `json:"age" validate:"omitempty,gte=13,lte=120"`
	Gender              *string  `json:"gender" validate:"omitempty,oneof=male female other"`
	Weight              *float64 `json:"weight" validate:"omitempty,gte=30,lte=300"`
	Height              *float64 `json:"height" validate:"omitempty,gte=100,lte=250"`
	ActivityLevel       *string  `json:"activity_level" validate:"omitempty,oneof=sedentary light moderate active very_active"`
	Goal                *string  `json:"goal" validate:"omitempty,oneof=lose_weight maintain gain_muscle gain_weight"`
	DietType            *string  `json:"diet_type" validate:"omitempty,oneof=omnivore vegetarian vegan keto paleo mediterranean"`
	Restrictions        []string `json:"restrictions" validate:"omitempty,dive,ingredient"`
	Allergies           []string `json:"allergies" validate:"omitempty,dive,ingredient"`
	FavoriteIngredients []string `json:"favorite_ingredients" validate:"omitempty,dive,ingredient"`
	DislikedIngredients []string `json:"disliked_ingredients" validate:"omitempty,dive,ingredient"`
	MaxDailyCalories    *int     `json:"max_daily_calories" validate:"omitempty,gte=800,lte=5000"`
}

// ProfileHandler serves the onboarding profile endpoints
type ProfileHandler struct {
	profiles  inbound.ProfileService
	validator Validator
	logger    *zap.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profiles inbound.ProfileService, validator Validator, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		profiles:  profiles,
		validator: validator,
		logger:    logger.Named("profile-handler"),
	}
}

// RegisterRoutes registers profile routes on an authenticated group
func (h *ProfileHandler) RegisterRoutes(r *gin.RouterGroup) {
	p := r.Group("/profile")
	{
		p.PUT("", h.Save)
		p.PATCH("", h.Update)
		p.GET("", h.Get)
		p.GET("/recommendation", h.Recommendation)
	}
}

// Save handles PUT /profile
func (h *ProfileHandler) Save(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req SaveProfileRequest
	if !bindJSON(c, h.validator, &req, false) {
		return
	}

	dto, err := h.profiles.SaveProfile(c.Request.Context(), profile.Profile{
		UserID:              userID,
		Age:                 req.Age,
		Gender:              profile.Gender(req.Gender),
		Weight:              req.Weight,
		Height:              req.Height,
		ActivityLevel:       profile.ActivityLevel(req.ActivityLevel),
		Goal:                profile.Goal(req.Goal),
		DietType:            profile.DietType(req.DietType),
		Restrictions:        req.Restrictions,
		Allergies:           req.Allergies,
		FavoriteIngredients: req.FavoriteIngredients,
		DislikedIngredients: req.DislikedIngredients,
		MaxDailyCalories:    req.MaxDailyCalories,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto)
}

// Update handles PATCH /profile
func (h *ProfileHandler) Update(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req PatchProfileRequest
	if !bindJSON(c, h.validator, &req, false) {
		return
	}

	patch := profile.Patch{
		Age:                 req.Age,
		Weight:              req.Weight,
		Height:              req.Height,
		Restrictions:        req.Restrictions,
		Allergies:           req.Allergies,
		FavoriteIngredients: req.FavoriteIngredients,
		DislikedIngredients: req.DislikedIngredients,
		MaxDailyCalories:    req.MaxDailyCalories,
	}
	if req.Gender != nil {
		g := profile.Gender(*req.Gender)
		patch.Gender = &g
	}
	if req.ActivityLevel != nil {
		a := profile.ActivityLevel(*req.ActivityLevel)
		patch.ActivityLevel = &a
	}
	if req.Goal != nil {
		g := profile.Goal(*req.Goal)
		patch.Goal = &g
	}
	if req.DietType != nil {
		d := profile.DietType(*req.DietType)
		patch.DietType = &d
	}

	dto, err := h.profiles.UpdateProfile(c.Request.Context(), userID, patch)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto)
}

// Get handles GET /profile
func (h *ProfileHandler) Get(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	dto, err := h.profiles.GetProfile(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto)
}

// Recommendation handles GET /profile/recommendation
func (h *ProfileHandler) Recommendation(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	rec, err := h.profiles.GetRecommendation(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, rec)
}
