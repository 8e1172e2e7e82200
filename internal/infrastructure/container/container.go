// Package container provides dependency injection using Uber FX
// This implements the Dependency Inversion Principle from SOLID
package container

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	appmenu "github.com/smartmeal/planner/internal/application/menu"
	appprofile "github.com/smartmeal/planner/internal/application/profile"
	"github.com/smartmeal/planner/internal/domain/recipe"
	"github.com/smartmeal/planner/internal/infrastructure/cache"
	"github.com/smartmeal/planner/internal/infrastructure/config"
	"github.com/smartmeal/planner/internal/infrastructure/events"
	"github.com/smartmeal/planner/internal/infrastructure/http/handlers"
	"github.com/smartmeal/planner/internal/infrastructure/http/middleware"
	"github.com/smartmeal/planner/internal/infrastructure/http/server"
	"github.com/smartmeal/planner/internal/infrastructure/monitoring"
	gormrepo "github.com/smartmeal/planner/internal/infrastructure/persistence/gorm"
	"github.com/smartmeal/planner/internal/infrastructure/persistence/memory"
	"github.com/smartmeal/planner/internal/infrastructure/persistence/migrations"
	"github.com/smartmeal/planner/internal/infrastructure/persistence/postgres"
	redisrepo "github.com/smartmeal/planner/internal/infrastructure/persistence/redis"
	"github.com/smartmeal/planner/internal/infrastructure/persistence/sqlite"
	"github.com/smartmeal/planner/internal/infrastructure/security"
	"github.com/smartmeal/planner/internal/ports/inbound"
	"github.com/smartmeal/planner/internal/ports/outbound"
	"github.com/smartmeal/planner/pkg/healthcheck"
	"github.com/smartmeal/planner/pkg/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// New builds the complete application graph with configuration loaded
// from configPath. An empty path searches the default locations.
func New(configPath string) fx.Option {
	return fx.Options(
		ConfigModule(configPath),
		Module,
	)
}

// Module provides every dependency except configuration
var Module = fx.Options(
	// Infrastructure modules
	LoggerModule,
	MonitoringModule,
	DatabaseModule,
	CacheModule,

	// Repository modules
	RepositoryModule,

	// Event modules
	EventModule,

	// Service modules
	ServiceModule,

	// HTTP modules
	HTTPModule,

	// Lifecycle hooks
	LifecycleModule,
)

// ConfigModule provides configuration
func ConfigModule(configPath string) fx.Option {
	return fx.Provide(func() (*config.Config, error) {
		return config.Load(configPath)
	})
}

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		log, err := logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
		if err != nil {
			return nil, err
		}
		return log.With(
			zap.String("service", cfg.App.Name),
			zap.String("version", cfg.App.Version),
		), nil
	},
)

// MonitoringModule provides metrics and tracing
var MonitoringModule = fx.Provide(
	monitoring.NewMetricsCollector,
	func(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*monitoring.TracingProvider, error) {
		tp, err := monitoring.NewTracingProvider(monitoring.TracingConfig{
			ServiceName:    cfg.App.Name,
			ServiceVersion: cfg.App.Version,
			Environment:    cfg.App.Environment,
			JaegerEndpoint: cfg.Monitoring.JaegerEndpoint,
			SamplingRate:   cfg.Monitoring.SamplingRate,
			Enabled:        cfg.Monitoring.EnableTracing,
		}, log)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{OnStop: tp.Shutdown})
		return tp, nil
	},
)

// DatabaseModule provides database connections
var DatabaseModule = fx.Provide(NewDatabase)

// NewDatabase opens the configured database, brings its schema up to date,
// seeds the recipe catalog and instruments it
func NewDatabase(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger, metrics *monitoring.MetricsCollector) (*gorm.DB, error) {
	dbCfg := cfg.Database
	ctx := context.Background()

	var (
		db  *gorm.DB
		err error
	)
	switch dbCfg.Driver {
	case "postgres":
		if dbCfg.AutoMigrate {
			if err := migrations.Apply(postgresURL(dbCfg), dbCfg.Database, log); err != nil {
				return nil, fmt.Errorf("failed to migrate database: %w", err)
			}
		}
		db, err = postgres.Connect(ctx, dbCfg, log)
	default:
		db, err = sqlite.SetupDatabase(dbCfg.Path, gormrepo.NewLogger(log, dbCfg.LogLevel, dbCfg.SlowQueryThreshold))
		if err == nil {
			log.Info("Connected to SQLite database", zap.String("path", dbCfg.Path))
		}
	}
	if err != nil {
		return nil, err
	}

	if dbCfg.SeedRecipes {
		if err := gormrepo.SeedRecipes(ctx, db); err != nil {
			return nil, err
		}
	}

	if err := gormrepo.NewQueryMonitor(metrics, log, dbCfg.SlowQueryThreshold).Register(db); err != nil {
		return nil, fmt.Errorf("failed to register query monitor: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := metrics.RegisterDBStats(sqlDB, dbCfg.Driver); err != nil {
		log.Warn("Failed to register database stats", zap.Error(err))
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return sqlDB.Close()
		},
	})

	return db, nil
}

// postgresURL renders the connection settings as a URL for golang-migrate
func postgresURL(d config.DatabaseConfig) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.Username, d.Password, d.Host, d.Port, d.Database, d.SSLMode)
}

// CacheBackend is the cache used by the application and, when Redis is
// enabled, the client behind it
type CacheBackend struct {
	Cache  outbound.CacheRepository
	Client goredis.UniversalClient
}

// CacheModule provides caching
var CacheModule = fx.Provide(
	NewCacheBackend,
	func(b *CacheBackend) outbound.CacheRepository { return b.Cache },
)

// NewCacheBackend connects to Redis when enabled and falls back to an
// in-process cache otherwise
func NewCacheBackend(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*CacheBackend, error) {
	if !cfg.Redis.Enabled {
		log.Info("Using in-memory cache")
		mem := memory.NewCacheRepository(time.Minute)
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error { return mem.Close() },
		})
		return &CacheBackend{Cache: mem}, nil
	}

	client, err := redisrepo.NewClient(context.Background(), cfg.Redis, log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error { return client.Close() },
	})

	return &CacheBackend{
		Cache:  redisrepo.NewCacheRepository(client, cfg.Redis.KeyPrefix, log),
		Client: client,
	}, nil
}

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	fx.Annotate(
		gormrepo.NewMenuRepository,
		fx.As(new(outbound.MenuRepository)),
	),
	fx.Annotate(
		gormrepo.NewProfileRepository,
		fx.As(new(outbound.ProfileRepository)),
	),
	func(db *gorm.DB, c outbound.CacheRepository, cfg *config.Config, metrics *monitoring.MetricsCollector, log *zap.Logger) outbound.RecipeRepository {
		return cache.NewCachedRecipeRepository(gormrepo.NewRecipeRepository(db), c, cfg.Menu.RecipeCacheTTL, metrics, log)
	},
)

// EventModule provides event publishing
var EventModule = fx.Provide(
	NewEventDispatcher,
	func(d *events.Dispatcher) outbound.EventPublisher { return d },
)

// NewEventDispatcher subscribes the logging, metrics and, when Redis is
// enabled, the Redis handlers to every domain event
func NewEventDispatcher(cfg *config.Config, log *zap.Logger, metrics *monitoring.MetricsCollector, backend *CacheBackend) *events.Dispatcher {
	d := events.NewDispatcher(log)
	d.SubscribeAll(events.LoggingHandler(log.Named("domain-events")))
	d.SubscribeAll(events.MetricsHandler(metrics))

	if backend.Client != nil && cfg.Redis.EventsChannel != "" {
		d.SubscribeAll(events.RedisHandler(backend.Client, cfg.Redis.EventsChannel))
		log.Info("Publishing domain events to Redis", zap.String("channel", cfg.Redis.EventsChannel))
	}
	return d
}

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	func(cfg *config.Config) recipe.Picker {
		return recipe.NewRandomPicker(cfg.Menu.RandomSeed)
	},

	func(
		menus outbound.MenuRepository,
		recipes outbound.RecipeRepository,
		profiles outbound.ProfileRepository,
		publisher outbound.EventPublisher,
		picker recipe.Picker,
		cfg *config.Config,
		log *zap.Logger,
	) inbound.MenuService {
		return appmenu.NewService(menus, recipes, profiles, publisher, picker, appmenu.Options{
			FilterByProfile: cfg.Menu.FilterByProfile,
		}, log)
	},

	fx.Annotate(
		appprofile.NewService,
		fx.As(new(inbound.ProfileService)),
	),

	func(cfg *config.Config, c outbound.CacheRepository, log *zap.Logger) *security.AuthService {
		return security.NewAuthService(cfg.Auth, c, log)
	},
	security.NewValidationService,
)

// HTTPModule provides HTTP server and handlers
var HTTPModule = fx.Provide(
	middleware.New,
	handlers.NewViewStore,
	NewHealthCheck,
	func(v *security.ValidationService) handlers.Validator { return v },
	handlers.NewMenuHandler,
	handlers.NewProfileHandler,
	handlers.NewAuthHandler,
	func(
		cfg *config.Config,
		log *zap.Logger,
		mw *middleware.Middleware,
		metrics *monitoring.MetricsCollector,
		health *healthcheck.HealthCheck,
		auth *security.AuthService,
		menus *handlers.MenuHandler,
		profiles *handlers.ProfileHandler,
		tokens *handlers.AuthHandler,
	) *server.Server {
		return server.NewServer(server.Params{
			Config:     cfg,
			Logger:     log,
			Middleware: mw,
			Metrics:    metrics,
			Health:     health,
			Auth:       auth,
			Menus:      menus,
			Profiles:   profiles,
			Tokens:     tokens,
		})
	},
)

// NewHealthCheck registers the database, Redis and catalog checks
func NewHealthCheck(cfg *config.Config, log *zap.Logger, db *gorm.DB, backend *CacheBackend, recipes outbound.RecipeRepository) (*healthcheck.HealthCheck, error) {
	hc := healthcheck.New(cfg.App.Version, log)

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	hc.Register("database", healthcheck.NewDatabaseChecker(sqlDB))

	if backend.Client != nil {
		hc.Register("redis", healthcheck.NewRedisChecker(backend.Client))
	}

	hc.Register("catalog", healthcheck.NewCustomChecker("catalog", catalogCheck(recipes)))
	return hc, nil
}

// catalogCheck reports how many recipes serve each meal type. A meal type
// without recipes leaves holes in generated menus.
func catalogCheck(recipes outbound.RecipeRepository) func(ctx context.Context) (healthcheck.Status, string, interface{}) {
	return func(ctx context.Context) (healthcheck.Status, string, interface{}) {
		all, err := recipes.FindAll(ctx)
		if err != nil {
			return healthcheck.StatusUnhealthy, err.Error(), nil
		}

		counts := make(map[recipe.MealType]int, len(recipe.MealTypes))
		for _, mt := range recipe.MealTypes {
			counts[mt] = 0
		}
		for _, r := range all {
			counts[r.MealType]++
		}

		if len(all) == 0 {
			return healthcheck.StatusUnhealthy, "recipe catalog is empty", counts
		}
		return healthcheck.StatusHealthy, "", counts
	}
}

// LifecycleModule provides lifecycle hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks registers application lifecycle hooks
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	tracing *monitoring.TracingProvider,
	mw *middleware.Middleware,
	srv *server.Server,
) {
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			log.Info("Starting SmartMeal",
				zap.String("environment", cfg.App.Environment),
				zap.String("database", cfg.Database.Driver),
				zap.Bool("redis", cfg.Redis.Enabled),
				zap.Bool("tracing", tracing.Enabled()),
			)

			go mw.RunCleanup(ctx)

			go func() {
				if err := srv.Start(); err != nil {
					log.Error("HTTP server stopped", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			log.Info("Shutting down SmartMeal")
			cancel()

			if err := srv.Shutdown(stopCtx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			_ = log.Sync()
			return nil
		},
	})
}
