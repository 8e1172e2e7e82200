package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/smartmeal/planner/internal/domain/recipe"
	"github.com/smartmeal/planner/internal/infrastructure/persistence/memory"
	"github.com/smartmeal/planner/internal/ports/outbound"
	"github.com/smartmeal/planner/test/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestMenuRepository(t *testing.T) {
	suite.Run(t, &testutils.MenuRepositoryContract{
		NewRepo: func() outbound.MenuRepository { return memory.NewMenuRepository() },
	})
}

func TestRecipeRepository(t *testing.T) {
	suite.Run(t, &testutils.RecipeRepositoryContract{
		NewRepo: func() outbound.RecipeRepository { return memory.NewRecipeRepository() },
	})
}

func TestProfileRepository(t *testing.T) {
	suite.Run(t, &testutils.ProfileRepositoryContract{
		NewRepo: func() outbound.ProfileRepository { return memory.NewProfileRepository() },
	})
}

func TestCacheRepository(t *testing.T) {
	suite.Run(t, &testutils.CacheRepositoryContract{
		NewRepo: func() outbound.CacheRepository { return memory.NewCacheRepository(0) },
	})
}

func TestRecipeRepositoryCustomCatalog(t *testing.T) {
	factory := testutils.NewRecipeFactory(42)
	catalog := factory.Catalog(3, "breakfast")
	repo := memory.NewRecipeRepository(catalog...)

	all, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 3)

	all[0].Name = "mutated"
	again, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", again[0].Name)

	breakfasts, err := repo.FindByMealType(context.Background(), recipe.MealTypeBreakfast)
	require.NoError(t, err)
	require.Len(t, breakfasts, 3)
	for i, r := range breakfasts {
		assert.Equal(t, catalog[i].ID, r.ID, "catalog order is kept")
	}
	breakfasts[0].Name = "mutated"
	again, err = repo.FindByMealType(context.Background(), recipe.MealTypeBreakfast)
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", again[0].Name)

	dinners, err := repo.FindByMealType(context.Background(), recipe.MealTypeDinner)
	require.NoError(t, err)
	assert.Empty(t, dinners)
}

func TestCacheRepositoryCopiesValues(t *testing.T) {
	repo := memory.NewCacheRepository(0)
	ctx := context.Background()

	value := []byte("abc")
	require.NoError(t, repo.Set(ctx, "k", value, time.Minute))
	value[0] = 'z'

	got, err := repo.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)

	got[1] = 'z'
	again, err := repo.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}

func TestCacheRepositoryCleanup(t *testing.T) {
	repo := memory.NewCacheRepository(10 * time.Millisecond)
	defer repo.Close()

	require.NoError(t, repo.Set(context.Background(), "gone", []byte("v"), 5*time.Millisecond))
	assert.Eventually(t, func() bool { return repo.Len() == 0 }, time.Second, 10*time.Millisecond)
}

func TestCacheRepositoryIncrementRejectsNonInteger(t *testing.T) {
	repo := memory.NewCacheRepository(0)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "k", []byte("abc"), time.Minute))
	_, err := repo.Increment(ctx, "k")
	assert.Error(t, err)
}
