package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smartmeal/planner/internal/domain/menu"
	"github.com/smartmeal/planner/internal/domain/recipe"
	"github.com/smartmeal/planner/internal/ports/inbound"
	"github.com/smartmeal/planner/pkg/errors"
	"go.uber.org/zap"
)

// GenerateMenuRequest is the payload of POST /menus
type GenerateMenuRequest struct {
	StartDate         string   `json:"start_date" validate:"required,iso_date"`
	Days              int      `json:"days" validate:"required,gte=1,lte=30"`
	MealsPerDay       []string `json:"meals_per_day" validate:"required,min=1,unique,dive,meal_type"`
	MaxCaloriesPerDay int      `json:"max_calories_per_day" validate:"required,gte=800,lte=5000"`
	ServingsPerMeal   int      `json:"servings_per_meal" validate:"required,gte=1,lte=10"`
}

// RegenerateRequest is the payload of POST /menus/:id/regenerate. Without
// meal ids the meals selected in the menu view are regenerated.
type RegenerateRequest struct {
	MealIDs []string `json:"meal_ids" validate:"omitempty,dive,required"`
}

// MenuHandler serves the menu endpoints
type MenuHandler struct {
	menus     inbound.MenuService
	views     *ViewStore
	validator Validator
	logger    *zap.Logger
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(menus inbound.MenuService, views *ViewStore, validator Validator, logger *zap.Logger) *MenuHandler {
	return &MenuHandler{
		menus:     menus,
		views:     views,
		validator: validator,
		logger:    logger.Named("menu-handler"),
	}
}

// RegisterRoutes registers menu routes on an authenticated group
func (h *MenuHandler) RegisterRoutes(r *gin.RouterGroup) {
	menus := r.Group("/menus")
	{
		menus.POST("", h.Generate)
		menus.GET("", h.List)
		menus.GET("/stats", h.Stats)
		menus.GET("/:id", h.Get)
		menus.POST("/:id/regenerate", h.Regenerate)
		menus.POST("/:id/confirm", h.Confirm)

		menus.GET("/:id/view", h.GetView)
		menus.POST("/:id/view/days/:day/toggle", h.ToggleDay)
		menus.POST("/:id/view/meals/:mealId/toggle", h.ToggleMeal)
	}
}

// Generate handles POST /menus
func (h *MenuHandler) Generate(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req GenerateMenuRequest
	if !bindJSON(c, h.validator, &req, false) {
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		_ = c.Error(errors.NewBadRequestError("start_date must be formatted YYYY-MM-DD"))
		return
	}

	mealTypes := make([]recipe.MealType, len(req.MealsPerDay))
	for i, mt := range req.MealsPerDay {
		mealTypes[i] = recipe.MealType(mt)
	}

	dto, err := h.menus.GenerateMenu(c.Request.Context(), userID, menu.GenerationRequest{
		StartDate:         startDate,
		Days:              req.Days,
		MealsPerDay:       mealTypes,
		MaxCaloriesPerDay: req.MaxCaloriesPerDay,
		Servings:          req.ServingsPerMeal,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dto)
}

// List handles GET /menus
func (h *MenuHandler) List(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	menus, err := h.menus.ListMenus(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"menus": menus,
		"total": len(menus),
	})
}

// Stats handles GET /menus/stats
func (h *MenuHandler) Stats(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	stats, err := h.menus.GetStats(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// Get handles GET /menus/:id
func (h *MenuHandler) Get(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	dto, err := h.menus.GetMenu(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"menu": dto,
		"view": h.views.Get(userID, dto.ID),
	})
}

// Regenerate handles POST /menus/:id/regenerate
func (h *MenuHandler) Regenerate(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req RegenerateRequest
	if !bindJSON(c, h.validator, &req, true) {
		return
	}

	menuID := c.Param("id")
	mealIDs := req.MealIDs
	if len(mealIDs) == 0 {
		// ownership is checked by the service; the read leaves no state behind
		mealIDs = h.views.Get(userID, menuID).SelectedMealIDs
	}

	result, err := h.menus.RegenerateSelectedMeals(c.Request.Context(), inbound.RegenerateMealsCommand{
		MenuID:   menuID,
		CallerID: userID,
		MealIDs:  mealIDs,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	h.views.ClearSelection(userID, menuID)
	c.JSON(http.StatusOK, result)
}

// Confirm handles POST /menus/:id/confirm
func (h *MenuHandler) Confirm(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	dto, err := h.menus.ConfirmMenu(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto)
}

// GetView handles GET /menus/:id/view
func (h *MenuHandler) GetView(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	if _, err := h.menus.GetMenu(c.Request.Context(), c.Param("id"), userID); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, h.views.Get(userID, c.Param("id")))
}

// ToggleDay handles POST /menus/:id/view/days/:day/toggle
func (h *MenuHandler) ToggleDay(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	dto, err := h.menus.GetMenu(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	day, err := strconv.Atoi(c.Param("day"))
	if err != nil || day < 0 || day >= len(dto.Days) {
		_ = c.Error(errors.NewBadRequestError("day index out of range"))
		return
	}

	c.JSON(http.StatusOK, h.views.ToggleDay(userID, dto.ID, day))
}

// ToggleMeal handles POST /menus/:id/view/meals/:mealId/toggle
func (h *MenuHandler) ToggleMeal(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	dto, err := h.menus.GetMenu(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	mealID := c.Param("mealId")
	if !hasMeal(dto, mealID) {
		_ = c.Error(errors.NewNotFoundError("Meal"))
		return
	}

	c.JSON(http.StatusOK, h.views.ToggleMeal(userID, dto.ID, mealID))
}

func hasMeal(dto *inbound.MenuDTO, mealID string) bool {
	for _, day := range dto.Days {
		for _, meal := range day.Meals {
			if meal.ID == mealID {
				return true
			}
		}
	}
	return false
}
