// Package http provides the HTTP server, router and shared middleware.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authDomain "github.com/allisson/sharelink/internal/auth/domain"
	authHTTP "github.com/allisson/sharelink/internal/auth/http"
	authService "github.com/allisson/sharelink/internal/auth/service"
	capabilityHTTP "github.com/allisson/sharelink/internal/capability/http"
	"github.com/allisson/sharelink/internal/config"
	"github.com/allisson/sharelink/internal/database"
	"github.com/allisson/sharelink/internal/metrics"
	templateHTTP "github.com/allisson/sharelink/internal/template/http"
	userHTTP "github.com/allisson/sharelink/internal/user/http"
)

const readinessTimeout = 2 * time.Second

// Server represents the HTTP server.
type Server struct {
	db     *sql.DB
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// Handlers groups the HTTP handlers mounted by the router.
type Handlers struct {
	Template  *templateHTTP.TemplateHandler
	Recipient *userHTTP.RecipientHandler
	Link      *capabilityHTTP.LinkHandler
	View      *capabilityHTTP.ViewHandler
}

// NewServer creates a new HTTP server.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter builds the gin engine with every route.
//
// Operator routes require a bearer API key. Viewer routes accept anonymous requests, record the
// operator as viewer when a valid key is sent, and are rate limited per client IP when
// viewLimiter is not nil.
func (s *Server) SetupRouter(
	cfg *config.Config,
	handlers Handlers,
	keyring *authDomain.Keyring,
	tokenService authService.TokenService,
	viewLimiter *authHTTP.IPRateLimiter,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")

	operator := v1.Group("")
	operator.Use(authHTTP.AuthenticationMiddleware(keyring, tokenService, s.logger))
	{
		operator.PUT("/templates", handlers.Template.SaveHandler)
		operator.GET("/templates/:name", handlers.Template.GetHandler)
		operator.POST("/templates/:name/links", handlers.Link.IssueLinksHandler)
		operator.POST("/templates/:name/links/:recipientId", handlers.Link.IssueLinkHandler)

		operator.POST("/recipients", handlers.Recipient.CreateHandler)
		operator.GET("/recipients", handlers.Recipient.ListHandler)
		operator.GET("/recipients/:id", handlers.Recipient.GetHandler)

		operator.GET("/presentations", handlers.View.PresentationCountHandler)
	}

	views := v1.Group("/views")
	if viewLimiter != nil {
		views.Use(viewLimiter.Middleware())
	}
	views.Use(authHTTP.OptionalAuthenticationMiddleware(keyring, tokenService, s.logger))
	{
		views.GET("", handlers.View.ViewDirectHandler)
		views.GET("/recipients/:id", handlers.View.ViewRecipientHandler)
		views.GET("/recipients/:id/document", handlers.View.DocumentHandler)
		views.POST("/password", handlers.View.ValidatePasswordHandler)
	}

	s.router = router
}

// GetHandler returns the configured router, or nil before SetupRouter.
func (s *Server) GetHandler() http.Handler {
	if s.router == nil {
		return nil
	}
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router not configured")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// healthHandler reports liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports readiness, which requires a reachable database.
func (s *Server) readinessHandler(c *gin.Context) {
	if err := database.Ping(c.Request.Context(), s.db, readinessTimeout); err != nil {
		s.logger.Warn("readiness check failed", slog.Any("error", err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": "ok"},
	})
}
