package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "SmartMeal", cfg.App.Name)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 24*time.Hour, cfg.Auth.JWTExpiration)
	assert.Equal(t, 10*time.Minute, cfg.Menu.RecipeCacheTTL)
	assert.False(t, cfg.Menu.FilterByProfile)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "/health", cfg.Monitoring.HealthCheckPath)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr())
	assert.Equal(t, "0.0.0.0:8080", cfg.ServerAddr())
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
app:
  name: planner-test
server:
  port: 9000
menu:
  random_seed: 42
  filter_by_profile: true
database:
  driver: postgres
  database: meals
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	t.Setenv("SMARTMEAL_SERVER_PORT", "9100")
	t.Setenv("SMARTMEAL_AUTH_JWT_SECRET", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "planner-test", cfg.App.Name)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, int64(42), cfg.Menu.RandomSeed)
	assert.True(t, cfg.Menu.FilterByProfile)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Contains(t, cfg.GetDSN(), "dbname=meals")
	assert.Contains(t, cfg.Database.DSN("replica-1"), "host=replica-1")
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			App:        AppConfig{Name: "x", Environment: "development"},
			Server:     ServerConfig{Port: 8080},
			Database:   DatabaseConfig{Driver: "sqlite"},
			Monitoring: MonitoringConfig{SamplingRate: 0.5},
			RateLimit:  RateLimitConfig{Enable: true, RequestsPerMin: 10},
		}
	}

	c := valid()
	require.NoError(t, c.Validate())

	cases := map[string]func(c *Config){
		"MissingName":          func(c *Config) { c.App.Name = "" },
		"UnknownDriver":        func(c *Config) { c.Database.Driver = "mysql" },
		"PostgresNeedsDB":      func(c *Config) { c.Database.Driver = "postgres" },
		"ProductionNeedsKey":   func(c *Config) { c.App.Environment = "production" },
		"BadPort":              func(c *Config) { c.Server.Port = 0 },
		"BadSampling":          func(c *Config) { c.Monitoring.SamplingRate = 2 },
		"RateLimitWithoutRate": func(c *Config) { c.RateLimit.RequestsPerMin = 0 },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := valid()
			mutate(&c)
			assert.Error(t, c.Validate())
		})
	}

	t.Run("DevTokensInProduction", func(t *testing.T) {
		c := valid()
		c.App.Environment = "production"
		c.Auth.JWTSecret = "k"
		require.NoError(t, c.Validate())

		c.Auth.DevTokens = true
		assert.Error(t, c.Validate())
	})
}
