package menu_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	appmenu "github.com/smartmeal/planner/internal/application/menu"
	"github.com/smartmeal/planner/internal/domain/menu"
	"github.com/smartmeal/planner/internal/domain/profile"
	"github.com/smartmeal/planner/internal/domain/recipe"
	"github.com/smartmeal/planner/internal/infrastructure/persistence/memory"
	"github.com/smartmeal/planner/internal/ports/inbound"
	apperrors "github.com/smartmeal/planner/pkg/errors"
	"github.com/smartmeal/planner/test/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type MenuServiceTestSuite struct {
	suite.Suite
	ctx       context.Context
	menus     *memory.MenuRepository
	profiles  *memory.ProfileRepository
	events    *testutils.RecordingPublisher
	pick      int
	seq       int
	service   *appmenu.Service
	start     time.Time
	allThree  []recipe.MealType
	assertion *testutils.MenuAssertions
}

func (s *MenuServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.menus = memory.NewMenuRepository()
	s.profiles = memory.NewProfileRepository()
	s.events = &testutils.RecordingPublisher{}
	s.pick = 0
	s.seq = 0
	s.start = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.allThree = []recipe.MealType{recipe.MealTypeBreakfast, recipe.MealTypeLunch, recipe.MealTypeDinner}
	s.assertion = testutils.NewMenuAssertions(s.T())
	s.service = s.newService(false)
}

func (s *MenuServiceTestSuite) newService(filter bool) *appmenu.Service {
	picker := recipe.IndexPicker(func(n int) int { return s.pick % n })
	return appmenu.NewService(
		s.menus,
		memory.NewRecipeRepository(),
		s.profiles,
		s.events,
		picker,
		appmenu.Options{
			FilterByProfile: filter,
			NewMealID: func() string {
				s.seq++
				return fmt.Sprintf("meal_%03d", s.seq)
			},
		},
		zap.NewNop(),
	)
}

func (s *MenuServiceTestSuite) request(days int, types ...recipe.MealType) menu.GenerationRequest {
	return menu.GenerationRequest{
		StartDate:         s.start,
		Days:              days,
		MealsPerDay:       types,
		MaxCaloriesPerDay: 2000,
		Servings:          1,
	}
}

func (s *MenuServiceTestSuite) generate(userID string) *inbound.MenuDTO {
	dto, err := s.service.GenerateMenu(s.ctx, userID, s.request(3, s.allThree...))
	s.Require().NoError(err)
	return dto
}

func (s *MenuServiceTestSuite) stored(id string) *menu.WeeklyMenu {
	m, err := s.menus.FindByID(s.ctx, id)
	s.Require().NoError(err)
	s.Require().NotNil(m)
	return m
}

func (s *MenuServiceTestSuite) TestGenerateMenu() {
	dto := s.generate("user-1")

	s.NotEmpty(dto.ID)
	s.Equal("user-1", dto.UserID)
	s.Equal("Menu 2024-01-01 - 2024-01-03", dto.Name)
	s.Equal("2024-01-01", dto.StartDate)
	s.Equal("2024-01-03", dto.EndDate)
	s.Equal(menu.StatusPending, dto.Status)
	s.Require().Len(dto.Days, 3)

	for i, day := range dto.Days {
		s.Equal(s.start.AddDate(0, 0, i).Format("2006-01-02"), day.Date)
		s.Require().Len(day.Meals, 3)
		s.Equal("recipe_001", day.Meals[0].Recipe.ID)
		s.Equal("recipe_003", day.Meals[1].Recipe.ID)
		s.Equal("recipe_005", day.Meals[2].Recipe.ID)
		s.Equal(575, day.TotalCalories)
	}

	m := s.stored(dto.ID)
	s.assertion.Shape(m, 3)
	s.assertion.DayTotalsConsistent(m)
	s.assertion.MealTypesMatchRecipes(m)

	s.Equal([]string{"menu.generated"}, s.events.Names())
	generated := s.events.Events[0].(menu.MenuGeneratedEvent)
	s.Equal(dto.ID, generated.MenuID)
	s.Equal(9, generated.Meals)
}

func (s *MenuServiceTestSuite) TestGenerateMenuScalesWithServings() {
	req := s.request(1, recipe.MealTypeDinner)
	req.Servings = 3

	dto, err := s.service.GenerateMenu(s.ctx, "user-1", req)
	s.Require().NoError(err)

	s.Equal(600, dto.Days[0].TotalCalories)
	s.Equal(600, dto.Days[0].Meals[0].Calories)
	s.Equal(3, dto.Days[0].Meals[0].Servings)
}

func (s *MenuServiceTestSuite) TestGenerateMenuSkipsEmptyMealTypes() {
	dto, err := s.service.GenerateMenu(s.ctx, "user-1", s.request(2, recipe.MealTypeBreakfast, recipe.MealTypeSnack))
	s.Require().NoError(err)

	for _, day := range dto.Days {
		s.Require().Len(day.Meals, 1)
		s.Equal(recipe.MealTypeBreakfast, day.Meals[0].MealType)
		s.Equal(180, day.TotalCalories)
	}
}

func (s *MenuServiceTestSuite) TestGenerateMenuRejectsInvalidRequests() {
	tests := map[string]func(*menu.GenerationRequest){
		"ZeroDays":         func(r *menu.GenerationRequest) { r.Days = 0 },
		"TooManyDays":      func(r *menu.GenerationRequest) { r.Days = 31 },
		"NoMeals":          func(r *menu.GenerationRequest) { r.MealsPerDay = nil },
		"DuplicateMeal":    func(r *menu.GenerationRequest) { r.MealsPerDay = []recipe.MealType{"lunch", "lunch"} },
		"CaloriesTooLow":   func(r *menu.GenerationRequest) { r.MaxCaloriesPerDay = 799 },
		"ServingsTooHigh":  func(r *menu.GenerationRequest) { r.Servings = 11 },
		"MissingStartDate": func(r *menu.GenerationRequest) { r.StartDate = time.Time{} },
	}

	for name, mutate := range tests {
		s.Run(name, func() {
			req := s.request(3, s.allThree...)
			mutate(&req)

			_, err := s.service.GenerateMenu(s.ctx, "user-1", req)
			s.True(apperrors.Is(err, apperrors.CodeInvalidMenuRequest), "got %v", err)
			s.ErrorIs(err, menu.ErrInvalidRequest)
		})
	}

	menus, err := s.menus.FindByUserID(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Empty(menus)
	s.Empty(s.events.Events)
}

func (s *MenuServiceTestSuite) TestRegenerateSelectedMeals() {
	dto := s.generate("user-1")
	target := dto.Days[1].Meals[2]
	s.events.Events = nil

	s.pick = 1
	result, err := s.service.RegenerateSelectedMeals(s.ctx, inbound.RegenerateMealsCommand{
		MenuID:   dto.ID,
		CallerID: "user-1",
		MealIDs:  []string{target.ID},
	})
	s.Require().NoError(err)

	s.Require().Len(result.Replacements, 1)
	r := result.Replacements[0]
	s.Equal(target.ID, r.OldMealID)
	s.NotEqual(target.ID, r.NewMealID)
	s.Equal("recipe_006", r.RecipeID)

	day := result.Menu.Days[1]
	s.Equal(r.NewMealID, day.Meals[2].ID)
	s.Equal(recipe.MealTypeDinner, day.Meals[2].MealType)
	s.Equal(target.Date, day.Meals[2].Date)
	s.Equal(180+195+175, day.TotalCalories)

	// Untouched days keep their meals
	s.Equal(dto.Days[0].Meals, result.Menu.Days[0].Meals)
	s.Equal(dto.Days[2].Meals, result.Menu.Days[2].Meals)

	m := s.stored(dto.ID)
	s.assertion.DayTotalsConsistent(m)
	s.assertion.MealTypesMatchRecipes(m)
	s.Equal([]string{"menu.meals_regenerated"}, s.events.Names())
}

func (s *MenuServiceTestSuite) TestRegenerateAcrossDays() {
	dto := s.generate("user-1")
	ids := []string{dto.Days[0].Meals[0].ID, dto.Days[2].Meals[1].ID}

	s.pick = 1
	result, err := s.service.RegenerateSelectedMeals(s.ctx, inbound.RegenerateMealsCommand{
		MenuID: dto.ID, CallerID: "user-1", MealIDs: ids,
	})
	s.Require().NoError(err)

	s.Len(result.Replacements, 2)
	s.Equal("recipe_002", result.Menu.Days[0].Meals[0].Recipe.ID)
	s.Equal("recipe_004", result.Menu.Days[2].Meals[1].Recipe.ID)
	s.Equal(190+195+200, result.Menu.Days[0].TotalCalories)
	s.Equal(180+185+200, result.Menu.Days[2].TotalCalories)
}

func (s *MenuServiceTestSuite) TestRegenerateUnknownIDsChangesNothing() {
	dto := s.generate("user-1")

	result, err := s.service.RegenerateSelectedMeals(s.ctx, inbound.RegenerateMealsCommand{
		MenuID: dto.ID, CallerID: "user-1", MealIDs: []string{"no-such-meal"},
	})
	s.Require().NoError(err)

	s.Empty(result.Replacements)
	s.Equal(dto.Days, result.Menu.Days)
}

func (s *MenuServiceTestSuite) TestRegenerateErrors() {
	dto := s.generate("user-1")

	_, err := s.service.RegenerateSelectedMeals(s.ctx, inbound.RegenerateMealsCommand{
		MenuID: "missing", CallerID: "user-1", MealIDs: []string{"x"},
	})
	s.True(apperrors.Is(err, apperrors.CodeMenuNotFound))

	_, err = s.service.RegenerateSelectedMeals(s.ctx, inbound.RegenerateMealsCommand{
		MenuID: dto.ID, CallerID: "intruder", MealIDs: []string{dto.Days[0].Meals[0].ID},
	})
	s.True(apperrors.Is(err, apperrors.CodeInsufficientPermissions))

	_, err = s.service.RegenerateSelectedMeals(s.ctx, inbound.RegenerateMealsCommand{
		MenuID: dto.ID, CallerID: "user-1",
	})
	s.True(apperrors.Is(err, apperrors.CodeInvalidMenuRequest))
	s.ErrorIs(err, menu.ErrNoMealsSelected)

	s.Equal(dto.Days, s.mustGet(dto.ID).Days)
}

func (s *MenuServiceTestSuite) mustGet(id string) *inbound.MenuDTO {
	got, err := s.service.GetMenu(s.ctx, id, "user-1")
	s.Require().NoError(err)
	return got
}

func (s *MenuServiceTestSuite) TestConfirmMenu() {
	dto := s.generate("user-1")
	s.events.Events = nil

	confirmed, err := s.service.ConfirmMenu(s.ctx, dto.ID, "user-1")
	s.Require().NoError(err)
	s.Equal(menu.StatusActive, confirmed.Status)
	s.Equal(dto.Days, confirmed.Days)
	s.Equal([]string{"menu.confirmed"}, s.events.Names())

	again, err := s.service.ConfirmMenu(s.ctx, dto.ID, "user-1")
	s.Require().NoError(err)
	s.Equal(menu.StatusActive, again.Status)
	s.Len(s.events.Events, 1, "confirming twice raises no second event")
}

func (s *MenuServiceTestSuite) TestConfirmMenuErrors() {
	dto := s.generate("user-1")

	_, err := s.service.ConfirmMenu(s.ctx, "missing", "user-1")
	s.True(apperrors.Is(err, apperrors.CodeMenuNotFound))

	_, err = s.service.ConfirmMenu(s.ctx, dto.ID, "user-2")
	s.True(apperrors.Is(err, apperrors.CodeInsufficientPermissions))
	s.Equal(menu.StatusPending, s.stored(dto.ID).Status)
}

func (s *MenuServiceTestSuite) TestGetMenuChecksOwnership() {
	dto := s.generate("user-1")

	_, err := s.service.GetMenu(s.ctx, dto.ID, "user-2")
	s.True(apperrors.Is(err, apperrors.CodeInsufficientPermissions))

	_, err = s.service.GetMenu(s.ctx, "missing", "user-1")
	s.True(apperrors.Is(err, apperrors.CodeMenuNotFound))
}

func (s *MenuServiceTestSuite) TestListMenusAndStats() {
	first := s.generate("user-1")
	time.Sleep(2 * time.Millisecond)
	second := s.generate("user-1")
	s.generate("user-2")

	_, err := s.service.ConfirmMenu(s.ctx, first.ID, "user-1")
	s.Require().NoError(err)

	menus, err := s.service.ListMenus(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Require().Len(menus, 2)
	s.Equal(second.ID, menus[0].ID)
	s.Equal(first.ID, menus[1].ID)

	stats, err := s.service.GetStats(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Equal(menu.Stats{TotalMenus: 2, ActiveMenus: 2, CompletedMenus: 0, TotalMeals: 18}, *stats)

	empty, err := s.service.GetStats(s.ctx, "nobody")
	s.Require().NoError(err)
	s.Equal(menu.Stats{}, *empty)
}

func (s *MenuServiceTestSuite) saveProfile(p profile.Profile) {
	_, err := s.profiles.Save(s.ctx, &p)
	s.Require().NoError(err)
}

func (s *MenuServiceTestSuite) TestProfileFilterNarrowsCandidates() {
	s.saveProfile(testutils.NewProfileBuilder().WithUserID("vegan").WithDiet(profile.DietVegan).Build())
	s.service = s.newService(true)
	s.pick = 1

	dto, err := s.service.GenerateMenu(s.ctx, "vegan", s.request(1, s.allThree...))
	s.Require().NoError(err)

	meals := dto.Days[0].Meals
	s.Equal("recipe_001", meals[0].Recipe.ID)
	s.Equal("recipe_003", meals[1].Recipe.ID)
	s.Equal("recipe_006", meals[2].Recipe.ID)
}

func (s *MenuServiceTestSuite) TestProfileFilterFallsBackWhenTypeWouldBeEmpty() {
	s.saveProfile(testutils.NewProfileBuilder().
		WithUserID("vegan").
		WithDiet(profile.DietVegan).
		WithAllergies("quinoa").
		Build())
	s.service = s.newService(true)
	s.pick = 1

	dto, err := s.service.GenerateMenu(s.ctx, "vegan", s.request(1, recipe.MealTypeLunch))
	s.Require().NoError(err)

	s.Equal("recipe_004", dto.Days[0].Meals[0].Recipe.ID)
}

func (s *MenuServiceTestSuite) TestProfileFilterOffIgnoresProfile() {
	s.saveProfile(testutils.NewProfileBuilder().WithUserID("vegan").WithDiet(profile.DietVegan).Build())
	s.pick = 1

	dto, err := s.service.GenerateMenu(s.ctx, "vegan", s.request(1, s.allThree...))
	s.Require().NoError(err)

	s.Equal("recipe_002", dto.Days[0].Meals[0].Recipe.ID)
	s.Equal("recipe_004", dto.Days[0].Meals[1].Recipe.ID)
}

func TestMenuServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MenuServiceTestSuite))
}

func TestMenuServiceRepositoryFailures(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection refused")
	req := menu.GenerationRequest{
		StartDate:         time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Days:              1,
		MealsPerDay:       []recipe.MealType{recipe.MealTypeLunch},
		MaxCaloriesPerDay: 1500,
		Servings:          1,
	}

	t.Run("CreateFails", func(t *testing.T) {
		menus := &testutils.MockMenuRepository{}
		menus.On("Create", mock.Anything, mock.AnythingOfType("*menu.WeeklyMenu")).Return(nil, boom)
		events := &testutils.MockEventPublisher{}

		svc := appmenu.NewService(menus, memory.NewRecipeRepository(), nil, events, recipe.FirstPicker, appmenu.Options{}, zap.NewNop())
		_, err := svc.GenerateMenu(ctx, "user-1", req)

		assert.True(t, apperrors.Is(err, apperrors.CodeDatabaseError))
		assert.ErrorIs(t, err, boom)
		menus.AssertExpectations(t)
		events.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("RecipeLookupFails", func(t *testing.T) {
		recipes := &testutils.MockRecipeRepository{}
		recipes.On("FindByMealType", mock.Anything, recipe.MealTypeLunch).Return(nil, boom)

		svc := appmenu.NewService(&testutils.MockMenuRepository{}, recipes, nil, nil, recipe.FirstPicker, appmenu.Options{}, zap.NewNop())
		_, err := svc.GenerateMenu(ctx, "user-1", req)

		assert.True(t, apperrors.Is(err, apperrors.CodeDatabaseError))
	})

	t.Run("UpdateFails", func(t *testing.T) {
		stored := testutils.NewMenu("user-1", req.StartDate, 1)
		stored.ID = "menu-1"

		menus := &testutils.MockMenuRepository{}
		menus.On("FindByID", mock.Anything, "menu-1").Return(stored, nil)
		menus.On("Update", mock.Anything, "menu-1", mock.AnythingOfType("menu.Patch")).Return(nil, boom)

		svc := appmenu.NewService(menus, memory.NewRecipeRepository(), nil, nil, recipe.FirstPicker, appmenu.Options{}, zap.NewNop())
		_, err := svc.ConfirmMenu(ctx, "menu-1", "user-1")

		assert.True(t, apperrors.Is(err, apperrors.CodeDatabaseError))
		menus.AssertExpectations(t)
	})

	t.Run("MenuVanishesBeforeUpdate", func(t *testing.T) {
		stored := testutils.NewMenu("user-1", req.StartDate, 1)
		stored.ID = "menu-1"

		menus := &testutils.MockMenuRepository{}
		menus.On("FindByID", mock.Anything, "menu-1").Return(stored, nil)
		menus.On("Update", mock.Anything, "menu-1", mock.Anything).Return(nil, nil)

		svc := appmenu.NewService(menus, memory.NewRecipeRepository(), nil, nil, recipe.FirstPicker, appmenu.Options{}, zap.NewNop())
		_, err := svc.RegenerateSelectedMeals(ctx, inbound.RegenerateMealsCommand{
			MenuID: "menu-1", CallerID: "user-1", MealIDs: []string{stored.Days[0].Meals[0].ID},
		})

		assert.True(t, apperrors.Is(err, apperrors.CodeMenuNotFound))
	})

	t.Run("PublishFailureIsNotFatal", func(t *testing.T) {
		events := &testutils.MockEventPublisher{}
		events.On("Publish", mock.Anything, mock.Anything).Return(boom).Once()

		svc := appmenu.NewService(memory.NewMenuRepository(), memory.NewRecipeRepository(), nil, events, recipe.FirstPicker, appmenu.Options{}, zap.NewNop())
		dto, err := svc.GenerateMenu(ctx, "user-1", req)

		require.NoError(t, err)
		assert.NotEmpty(t, dto.ID)
		events.AssertExpectations(t)
	})
}
