// Package server wires the gin router and runs the HTTP server
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smartmeal/planner/internal/infrastructure/config"
	"github.com/smartmeal/planner/internal/infrastructure/http/handlers"
	"github.com/smartmeal/planner/internal/infrastructure/http/middleware"
	"github.com/smartmeal/planner/internal/infrastructure/monitoring"
	"github.com/smartmeal/planner/internal/infrastructure/security"
	apperrors "github.com/smartmeal/planner/pkg/errors"
	"github.com/smartmeal/planner/pkg/healthcheck"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/net/http2"
)

// Params groups everything the router needs
type Params struct {
	Config     *config.Config
	Logger     *zap.Logger
	Middleware *middleware.Middleware
	Metrics    *monitoring.MetricsCollector
	Health     *healthcheck.HealthCheck
	Auth       *security.AuthService
	Menus      *handlers.MenuHandler
	Profiles   *handlers.ProfileHandler
	Tokens     *handlers.AuthHandler
}

// Server represents the HTTP server
type Server struct {
	config *config.Config
	logger *zap.Logger
	engine *gin.Engine
	server *http.Server
}

// NewServer creates a new HTTP server instance
func NewServer(p Params) *Server {
	if !p.Config.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		config: p.Config,
		logger: p.Logger.Named("server"),
	}
	s.engine = s.setupRouter(p)

	s.server = &http.Server{
		Addr:           p.Config.ServerAddr(),
		Handler:        otelhttp.NewHandler(s.engine, "smartmeal-api"),
		ReadTimeout:    p.Config.Server.ReadTimeout,
		WriteTimeout:   p.Config.Server.WriteTimeout,
		IdleTimeout:    p.Config.Server.IdleTimeout,
		MaxHeaderBytes: p.Config.Server.MaxHeaderBytes,
	}

	return s
}

func (s *Server) setupRouter(p Params) *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(p.Config.Server.TrustedProxies); err != nil {
		s.logger.Warn("Invalid trusted proxies", zap.Error(err))
	}

	mw := p.Middleware
	r.Use(mw.RequestID())
	r.Use(mw.Recovery())
	r.Use(mw.Logger())
	r.Use(mw.Tracing())
	if p.Config.Monitoring.EnableMetrics {
		r.Use(p.Metrics.HTTPMiddleware())
	}
	r.Use(mw.Security())
	r.Use(mw.CORS())
	r.Use(mw.RateLimit())
	r.Use(mw.Compression())
	r.Use(mw.ErrorHandler())

	// Health endpoints
	r.GET(p.Config.Monitoring.HealthCheckPath, p.Health.Handler())
	r.GET(p.Config.Monitoring.ReadinessPath, p.Health.ReadinessHandler())
	r.GET("/live", p.Health.LivenessHandler())
	if p.Config.Monitoring.EnableMetrics {
		r.GET(p.Config.Monitoring.MetricsPath, gin.WrapH(p.Metrics.Handler()))
	}

	api := r.Group("/api/v1")
	if p.Config.Auth.DevTokens {
		p.Tokens.RegisterPublicRoutes(api)
	}

	protected := api.Group("", p.Auth.AuthMiddleware())
	p.Menus.RegisterRoutes(protected)
	p.Profiles.RegisterRoutes(protected)
	p.Tokens.RegisterRoutes(protected)

	r.NoRoute(func(c *gin.Context) {
		err := apperrors.NewNotFoundError("Route")
		c.JSON(err.StatusCode(), apperrors.ToErrorResponse(err, c.GetString("request_id")))
	})

	return r
}

// Handler returns the instrumented root handler
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server",
		zap.String("address", s.server.Addr),
		zap.String("environment", s.config.App.Environment),
	)

	if err := http2.ConfigureServer(s.server, nil); err != nil {
		s.logger.Error("Failed to configure HTTP/2", zap.Error(err))
	}

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
