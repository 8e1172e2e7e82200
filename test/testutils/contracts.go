package testutils

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/smartmeal/planner/internal/domain/menu"
	"github.com/smartmeal/planner/internal/domain/profile"
	"github.com/smartmeal/planner/internal/domain/recipe"
	"github.com/smartmeal/planner/internal/ports/outbound"
	"github.com/stretchr/testify/suite"
)

// MenuRepositoryContract is the behaviour every MenuRepository adapter must
// show. Embed it in an adapter suite and set NewRepo.
type MenuRepositoryContract struct {
	suite.Suite
	NewRepo func() outbound.MenuRepository

	repo outbound.MenuRepository
	ctx  context.Context
}

// SetupTest creates a fresh repository for every test
func (s *MenuRepositoryContract) SetupTest() {
	s.ctx = context.Background()
	s.repo = s.NewRepo()
}

var contractStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func (s *MenuRepositoryContract) TestCreateAssignsIDAndTimestamps() {
	m := NewMenu("user-1", contractStart, 3)
	m.ID = "caller-chosen"

	created, err := s.repo.Create(s.ctx, m)
	s.Require().NoError(err)

	s.NotEmpty(created.ID)
	s.NotEqual("caller-chosen", created.ID)
	_, err = uuid.Parse(created.ID)
	s.NoError(err)
	s.False(created.CreatedAt.IsZero())
	s.False(created.UpdatedAt.IsZero())
	s.Equal(menu.StatusPending, created.Status)
}

func (s *MenuRepositoryContract) TestCreateNeverOverwrites() {
	a, err := s.repo.Create(s.ctx, NewMenu("user-1", contractStart, 1))
	s.Require().NoError(err)
	b, err := s.repo.Create(s.ctx, NewMenu("user-1", contractStart, 1))
	s.Require().NoError(err)

	s.NotEqual(a.ID, b.ID)

	menus, err := s.repo.FindByUserID(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Len(menus, 2)
}

func (s *MenuRepositoryContract) TestFindByIDRoundTrip() {
	m := NewMenu("user-1", contractStart, 2)
	created, err := s.repo.Create(s.ctx, m)
	s.Require().NoError(err)

	found, err := s.repo.FindByID(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Require().NotNil(found)

	s.Equal(created.ID, found.ID)
	s.Equal("user-1", found.UserID)
	s.Equal(m.Name, found.Name)
	s.True(m.StartDate.Equal(found.StartDate))
	s.True(m.EndDate.Equal(found.EndDate))
	s.Equal(m.MealsPerDay, found.MealsPerDay)
	s.Equal(m.TotalDays, found.TotalDays)
	s.Equal(m.ServingsPerMeal, found.ServingsPerMeal)
	s.Equal(m.MaxCaloriesPerDay, found.MaxCaloriesPerDay)
	s.Require().Len(found.Days, 2)

	for i, day := range found.Days {
		s.True(m.Days[i].Date.Equal(day.Date))
		s.Equal(m.Days[i].TotalCalories, day.TotalCalories)
		s.Require().Len(day.Meals, len(m.Days[i].Meals))
		for j, meal := range day.Meals {
			s.Equal(m.Days[i].Meals[j].ID, meal.ID)
			s.Equal(m.Days[i].Meals[j].Recipe.ID, meal.Recipe.ID)
			s.Equal(m.Days[i].Meals[j].MealType, meal.MealType)
		}
	}
}

func (s *MenuRepositoryContract) TestFindByIDMissing() {
	found, err := s.repo.FindByID(s.ctx, uuid.NewString())
	s.NoError(err)
	s.Nil(found)
}

func (s *MenuRepositoryContract) TestFindByUserIDNewestFirst() {
	for i := 0; i < 3; i++ {
		_, err := s.repo.Create(s.ctx, NewMenu("user-1", contractStart.AddDate(0, 0, i), 1))
		s.Require().NoError(err)
		time.Sleep(2 * time.Millisecond)
	}
	_, err := s.repo.Create(s.ctx, NewMenu("user-2", contractStart, 1))
	s.Require().NoError(err)

	menus, err := s.repo.FindByUserID(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Require().Len(menus, 3)

	for i := 1; i < len(menus); i++ {
		s.False(menus[i].CreatedAt.After(menus[i-1].CreatedAt))
	}
	s.True(menus[0].StartDate.Equal(contractStart.AddDate(0, 0, 2)))

	none, err := s.repo.FindByUserID(s.ctx, "nobody")
	s.NoError(err)
	s.Empty(none)
}

func (s *MenuRepositoryContract) TestUpdateStatus() {
	created, err := s.repo.Create(s.ctx, NewMenu("user-1", contractStart, 1))
	s.Require().NoError(err)

	active := menu.StatusActive
	updated, err := s.repo.Update(s.ctx, created.ID, menu.Patch{Status: &active})
	s.Require().NoError(err)
	s.Require().NotNil(updated)

	s.Equal(menu.StatusActive, updated.Status)
	s.Len(updated.Days, len(created.Days))
	s.False(updated.UpdatedAt.Before(created.UpdatedAt))

	found, err := s.repo.FindByID(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(menu.StatusActive, found.Status)
}

func (s *MenuRepositoryContract) TestUpdateDays() {
	created, err := s.repo.Create(s.ctx, NewMenu("user-1", contractStart, 1))
	s.Require().NoError(err)

	days := menu.CloneDays(created.Days)
	days[0].Meals = days[0].Meals[:1]
	days[0].Recalculate()

	updated, err := s.repo.Update(s.ctx, created.ID, menu.Patch{Days: days})
	s.Require().NoError(err)
	s.Require().NotNil(updated)

	s.Len(updated.Days[0].Meals, 1)
	s.Equal(days[0].TotalCalories, updated.Days[0].TotalCalories)
	s.Equal(menu.StatusPending, updated.Status)
}

func (s *MenuRepositoryContract) TestUpdateMissing() {
	active := menu.StatusActive
	updated, err := s.repo.Update(s.ctx, uuid.NewString(), menu.Patch{Status: &active})
	s.NoError(err)
	s.Nil(updated)
}

func (s *MenuRepositoryContract) TestReturnedMenusDoNotAliasStore() {
	created, err := s.repo.Create(s.ctx, NewMenu("user-1", contractStart, 1))
	s.Require().NoError(err)

	created.Days[0].Meals[0].Recipe.Name = "mutated"
	created.Status = menu.StatusCompleted

	found, err := s.repo.FindByID(s.ctx, created.ID)
	s.Require().NoError(err)
	s.NotEqual("mutated", found.Days[0].Meals[0].Recipe.Name)
	s.Equal(menu.StatusPending, found.Status)
}

// RecipeRepositoryContract checks a RecipeRepository seeded with
// recipe.Seed()
type RecipeRepositoryContract struct {
	suite.Suite
	NewRepo func() outbound.RecipeRepository

	repo outbound.RecipeRepository
	ctx  context.Context
}

// SetupTest creates a fresh repository for every test
func (s *RecipeRepositoryContract) SetupTest() {
	s.ctx = context.Background()
	s.repo = s.NewRepo()
}

func (s *RecipeRepositoryContract) TestFindAll() {
	all, err := s.repo.FindAll(s.ctx)
	s.Require().NoError(err)
	s.Len(all, len(recipe.Seed()))
}

func (s *RecipeRepositoryContract) TestFindByMealType() {
	for _, mt := range []recipe.MealType{recipe.MealTypeBreakfast, recipe.MealTypeLunch, recipe.MealTypeDinner} {
		got, err := s.repo.FindByMealType(s.ctx, mt)
		s.Require().NoError(err)
		s.Len(got, 2, "meal type %s", mt)
		for _, r := range got {
			s.Equal(mt, r.MealType)
		}
	}

	snacks, err := s.repo.FindByMealType(s.ctx, recipe.MealTypeSnack)
	s.NoError(err)
	s.Empty(snacks)
}

func (s *RecipeRepositoryContract) TestFindByID() {
	r, err := s.repo.FindByID(s.ctx, "recipe_005")
	s.Require().NoError(err)
	s.Require().NotNil(r)

	s.Equal("Baked Salmon", r.Name)
	s.Equal(200, r.Calories)
	s.Equal(recipe.MealTypeDinner, r.MealType)
	s.Equal([]string{"protein", "omega-3"}, r.Tags)
	s.Len(r.Ingredients, 5)

	missing, err := s.repo.FindByID(s.ctx, "recipe_999")
	s.NoError(err)
	s.Nil(missing)
}

// ProfileRepositoryContract is the behaviour every ProfileRepository adapter
// must show
type ProfileRepositoryContract struct {
	suite.Suite
	NewRepo func() outbound.ProfileRepository

	repo outbound.ProfileRepository
	ctx  context.Context
}

// SetupTest creates a fresh repository for every test
func (s *ProfileRepositoryContract) SetupTest() {
	s.ctx = context.Background()
	s.repo = s.NewRepo()
}

func (s *ProfileRepositoryContract) TestSaveAndFind() {
	p := NewProfileBuilder().WithMaxDailyCalories(1800).WithAllergies("peanut").Build()

	saved, err := s.repo.Save(s.ctx, &p)
	s.Require().NoError(err)
	s.False(saved.CreatedAt.IsZero())

	found, err := s.repo.FindByUserID(s.ctx, p.UserID)
	s.Require().NoError(err)
	s.Require().NotNil(found)

	s.Equal(p.Age, found.Age)
	s.Equal(p.Gender, found.Gender)
	s.InDelta(p.Weight, found.Weight, 0.001)
	s.InDelta(p.Height, found.Height, 0.001)
	s.Equal([]string{"peanut"}, found.Allergies)
	s.Require().NotNil(found.MaxDailyCalories)
	s.Equal(1800, *found.MaxDailyCalories)
}

func (s *ProfileRepositoryContract) TestSaveUpsertKeepsCreatedAt() {
	p := NewProfileBuilder().Build()
	first, err := s.repo.Save(s.ctx, &p)
	s.Require().NoError(err)

	time.Sleep(2 * time.Millisecond)
	p.Goal = profile.GoalLoseWeight
	second, err := s.repo.Save(s.ctx, &p)
	s.Require().NoError(err)

	s.True(first.CreatedAt.Equal(second.CreatedAt))
	s.True(second.UpdatedAt.After(first.UpdatedAt))

	found, err := s.repo.FindByUserID(s.ctx, p.UserID)
	s.Require().NoError(err)
	s.Equal(profile.GoalLoseWeight, found.Goal)
}

func (s *ProfileRepositoryContract) TestFindMissing() {
	found, err := s.repo.FindByUserID(s.ctx, "nobody")
	s.NoError(err)
	s.Nil(found)
}

// CacheRepositoryContract is the behaviour every CacheRepository adapter
// must show
type CacheRepositoryContract struct {
	suite.Suite
	NewRepo func() outbound.CacheRepository

	repo outbound.CacheRepository
	ctx  context.Context
}

// SetupTest creates a fresh repository for every test
func (s *CacheRepositoryContract) SetupTest() {
	s.ctx = context.Background()
	s.repo = s.NewRepo()
}

func (s *CacheRepositoryContract) key(name string) string {
	return "contract:" + s.T().Name() + ":" + name
}

func (s *CacheRepositoryContract) TestSetGetDelete() {
	k := s.key("a")

	_, err := s.repo.Get(s.ctx, k)
	s.ErrorIs(err, outbound.ErrCacheMiss)

	s.Require().NoError(s.repo.Set(s.ctx, k, []byte("value"), time.Minute))

	got, err := s.repo.Get(s.ctx, k)
	s.Require().NoError(err)
	s.Equal([]byte("value"), got)

	ok, err := s.repo.Exists(s.ctx, k)
	s.Require().NoError(err)
	s.True(ok)

	s.Require().NoError(s.repo.Delete(s.ctx, k))
	ok, err = s.repo.Exists(s.ctx, k)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *CacheRepositoryContract) TestExpiry() {
	k := s.key("short")
	s.Require().NoError(s.repo.Set(s.ctx, k, []byte("v"), 50*time.Millisecond))

	s.Eventually(func() bool {
		_, err := s.repo.Get(s.ctx, k)
		return err == outbound.ErrCacheMiss
	}, 2*time.Second, 20*time.Millisecond)
}

func (s *CacheRepositoryContract) TestBatch() {
	items := map[string][]byte{
		s.key("x"): []byte("1"),
		s.key("y"): []byte("2"),
	}
	s.Require().NoError(s.repo.MSet(s.ctx, items, time.Minute))

	got, err := s.repo.MGet(s.ctx, []string{s.key("x"), s.key("y"), s.key("missing")})
	s.Require().NoError(err)
	s.Equal(items, got)
}

func (s *CacheRepositoryContract) TestIncrement() {
	k := s.key("counter")
	for i := int64(1); i <= 3; i++ {
		n, err := s.repo.Increment(s.ctx, k)
		s.Require().NoError(err)
		s.Equal(i, n)
	}
}
