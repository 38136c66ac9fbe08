// Package http provides the HTTP server wiring for the document generation API.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/docgen/internal/auth/http"
	docHTTP "github.com/allisson/docgen/internal/document/http"
)

// ReadinessCheck reports whether a backing dependency is reachable.
type ReadinessCheck func(ctx context.Context) error

// Options controls the optional middleware applied to the API router.
type Options struct {
	CORSEnabled             bool
	CORSAllowOrigins        string
	RateLimitEnabled        bool
	RateLimitRequestsPerSec float64
	RateLimitBurst          int
}

// Server represents the API HTTP server.
type Server struct {
	server    *http.Server
	logger    *slog.Logger
	readiness map[string]ReadinessCheck
}

// NewServer creates the API server with all routes registered.
func NewServer(
	host string,
	port int,
	logger *slog.Logger,
	authorizerHandler *authHTTP.AuthorizerHandler,
	documentHandler *docHTTP.DocumentHandler,
	authMiddleware gin.HandlerFunc,
	readiness map[string]ReadinessCheck,
	opts Options,
) *Server {
	s := &Server{
		logger:    logger,
		readiness: readiness,
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(logger))

	if corsMiddleware := createCORSMiddleware(opts.CORSEnabled, opts.CORSAllowOrigins, logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	// Gateway integration endpoint: produces policy decisions, it is not
	// itself guarded.
	router.POST("/authorize", authorizerHandler.AuthorizeHandler)

	authenticated := router.Group("/")
	authenticated.Use(authMiddleware)
	if opts.RateLimitEnabled {
		authenticated.Use(RateLimitMiddleware(opts.RateLimitRequestsPerSec, opts.RateLimitBurst, logger))
	}
	authenticated.POST("/generate", documentHandler.GenerateHandler)
	authenticated.GET("/load", documentHandler.LoadHandler)

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", host, port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the API HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the API HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler probes the backing stores and reports per-component state.
func (s *Server) readinessHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status := "ready"
	code := http.StatusOK
	components := gin.H{}

	for name, check := range s.readiness {
		if err := check(ctx); err != nil {
			s.logger.Warn("readiness check failed",
				slog.String("component", name),
				slog.Any("error", err),
			)
			components[name] = "error"
			status = "not_ready"
			code = http.StatusServiceUnavailable
			continue
		}
		components[name] = "ok"
	}

	c.JSON(code, gin.H{"status": status, "components": components})
}
