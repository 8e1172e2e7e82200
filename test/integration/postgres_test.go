//go:build integration
// +build integration

// Package integration exercises the adapters against real PostgreSQL and
// Redis instances started with testcontainers.
package integration

import (
	"context"
	"testing"
	"time"

	"github.com/smartmeal/planner/internal/application/menu"
	"github.com/smartmeal/planner/internal/domain/recipe"
	gormrepo "github.com/smartmeal/planner/internal/infrastructure/persistence/gorm"
	"github.com/smartmeal/planner/internal/infrastructure/persistence/migrations"
	"github.com/smartmeal/planner/internal/infrastructure/persistence/postgres"
	"github.com/smartmeal/planner/internal/ports/outbound"
	"github.com/smartmeal/planner/test/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PostgresTestSuite shares one container across the repository contracts
type PostgresTestSuite struct {
	suite.Suite
	testDB *testutils.TestDatabase
	db     *gorm.DB
}

func (s *PostgresTestSuite) SetupSuite() {
	s.testDB = testutils.SetupTestDatabase(s.T())
	s.Require().NoError(s.testDB.RunMigrations(), "Failed to run database migrations")

	db, err := postgres.Connect(context.Background(), s.testDB.Config, zap.NewNop())
	s.Require().NoError(err)
	s.db = db
}

func (s *PostgresTestSuite) TearDownSuite() {
	if sqlDB, err := s.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func (s *PostgresTestSuite) fresh() *gorm.DB {
	s.Require().NoError(s.testDB.TruncateAllTables())
	s.Require().NoError(gormrepo.SeedRecipes(context.Background(), s.db))
	return s.db
}

func (s *PostgresTestSuite) TestMenuRepositoryContract() {
	contract := &testutils.MenuRepositoryContract{}
	contract.NewRepo = func() outbound.MenuRepository {
		return gormrepo.NewMenuRepository(s.fresh())
	}
	suite.Run(s.T(), contract)
}

func (s *PostgresTestSuite) TestRecipeRepositoryContract() {
	contract := &testutils.RecipeRepositoryContract{}
	contract.NewRepo = func() outbound.RecipeRepository {
		return gormrepo.NewRecipeRepository(s.fresh())
	}
	suite.Run(s.T(), contract)
}

func (s *PostgresTestSuite) TestProfileRepositoryContract() {
	contract := &testutils.ProfileRepositoryContract{}
	contract.NewRepo = func() outbound.ProfileRepository {
		return gormrepo.NewProfileRepository(s.fresh())
	}
	suite.Run(s.T(), contract)
}

func (s *PostgresTestSuite) TestMigrationsAreCurrent() {
	m, err := migrations.New(s.testDB.DB, s.testDB.Config.Database, zap.NewNop())
	s.Require().NoError(err)

	status, err := m.Status()
	s.Require().NoError(err)
	s.False(status.Dirty)

	available, err := migrations.Available()
	s.Require().NoError(err)
	s.Require().NotEmpty(available)
	s.Equal(available[len(available)-1].Version, status.Version)
	s.Empty(status.Pending)
}

func (s *PostgresTestSuite) TestGenerateAndConfirmMenu() {
	db := s.fresh()
	ctx := context.Background()

	svc := menu.NewService(
		gormrepo.NewMenuRepository(db),
		gormrepo.NewRecipeRepository(db),
		gormrepo.NewProfileRepository(db),
		nil,
		recipe.FirstPicker,
		menu.Options{},
		zap.NewNop(),
	)

	start := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	req := testutils.GenerationRequest(start, 7,
		recipe.MealTypeBreakfast, recipe.MealTypeLunch, recipe.MealTypeDinner)

	created, err := svc.GenerateMenu(ctx, "pg-user", req)
	require.NoError(s.T(), err)
	require.Len(s.T(), created.Days, 7)
	for _, day := range created.Days {
		assert.Len(s.T(), day.Meals, 3)
		assert.Equal(s.T(), 575, day.TotalCalories)
	}

	confirmed, err := svc.ConfirmMenu(ctx, created.ID, "pg-user")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "active", string(confirmed.Status))

	stored, err := svc.GetMenu(ctx, created.ID, "pg-user")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), created.Days, stored.Days)
}

func TestPostgresIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping container tests in short mode")
	}
	suite.Run(t, new(PostgresTestSuite))
}
