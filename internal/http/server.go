// Package http provides the HTTP API server and its route wiring.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	"github.com/allisson/sealbox/internal/config"
	cryptoHTTP "github.com/allisson/sealbox/internal/crypto/http"
	"github.com/allisson/sealbox/internal/metrics"
	secretsHTTP "github.com/allisson/sealbox/internal/secrets/http"
	userHTTP "github.com/allisson/sealbox/internal/user/http"
	userUseCase "github.com/allisson/sealbox/internal/user/usecase"
)

// Server represents the HTTP API server.
type Server struct {
	server *http.Server
	logger *slog.Logger
}

// NewServer creates the API server with all routes registered.
//
// Route layout:
//   - GET  /health            (public)
//   - POST /v1/users          (public, user registration)
//   - POST /v1/login          (public, issues a session token)
//   - GET  /v1/keys           (authenticated, key id diagnostics)
//   - POST /v1/secrets/*path  (authenticated, create or add version)
//   - GET  /v1/secrets/*path  (authenticated, decrypt latest or ?version=N)
//   - DELETE /v1/secrets/*path (authenticated, soft delete)
//   - GET  /v1/secrets        (authenticated, list metadata)
func NewServer(
	cfg *config.Config,
	logger *slog.Logger,
	metricsProvider *metrics.Provider,
	userUC userUseCase.UseCase,
	userHandler *userHTTP.UserHandler,
	secretHandler *secretsHTTP.SecretHandler,
	keyHandler *cryptoHTTP.KeyHandler,
) *Server {
	router := gin.New()
	router.Use(requestid.New())
	router.Use(gin.Recovery())
	router.Use(CustomLoggerMiddleware(logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", HealthHandler)

	v1 := router.Group("/v1")
	v1.POST("/users", userHandler.RegisterHandler)
	v1.POST("/login", userHandler.LoginHandler)

	authenticated := v1.Group("")
	authenticated.Use(userHTTP.AuthenticationMiddleware(userUC, logger))
	if cfg.RateLimitEnabled {
		authenticated.Use(userHTTP.RateLimitMiddleware(
			cfg.RateLimitRequestsPerSec,
			cfg.RateLimitBurst,
			logger,
		))
	}

	authenticated.GET("/keys", keyHandler.ListHandler)
	authenticated.GET("/secrets", secretHandler.ListHandler)
	authenticated.POST("/secrets/*path", secretHandler.CreateOrUpdateHandler)
	authenticated.GET("/secrets/*path", secretHandler.GetHandler)
	authenticated.DELETE("/secrets/*path", secretHandler.DeleteHandler)

	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP API server.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP API server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
