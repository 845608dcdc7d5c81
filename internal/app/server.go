// File: internal/app/server.go
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"skillmarket_backend/internal/auth"
	"skillmarket_backend/internal/comment"
	"skillmarket_backend/internal/config"
	"skillmarket_backend/internal/jobs"
	"skillmarket_backend/internal/middleware"
	"skillmarket_backend/internal/notification"
	"skillmarket_backend/internal/order"
	"skillmarket_backend/internal/product"
	"skillmarket_backend/internal/tutorial"
	"skillmarket_backend/internal/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server wires the HTTP surface together and owns its lifecycle.
type Server struct {
	cfg        *config.Config
	logger     *zap.Logger
	router     *gin.Engine
	httpServer *http.Server
	cleanupJob *jobs.NotificationCleanupJob
}

// NewServer creates the gin engine, registers middleware and routes, and
// returns a Server ready to run.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	tokens auth.TokenService,
	userHandler *user.Handler,
	productHandler *product.Handler,
	tutorialHandler *tutorial.Handler,
	orderHandler *order.Handler,
	commentHandler *comment.Handler,
	notificationHandler *notification.Handler,
	cleanupJob *jobs.NotificationCleanupJob,
) *Server {
	gin.SetMode(cfg.GinMode)
	router := gin.New()

	router.Use(middleware.RequestLogger(logger))
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler(logger))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authMiddleware := middleware.Authenticate(tokens, logger)

	root := router.Group("")
	userHandler.RegisterRoutes(root, authMiddleware)
	productHandler.RegisterRoutes(root, authMiddleware)
	tutorialHandler.RegisterRoutes(root, authMiddleware)
	orderHandler.RegisterRoutes(root, authMiddleware)
	commentHandler.RegisterRoutes(root, authMiddleware)
	notificationHandler.RegisterRoutes(root, authMiddleware)

	return &Server{
		cfg:        cfg,
		logger:     logger.Named("Server"),
		router:     router,
		cleanupJob: cleanupJob,
	}
}

// Run starts the background jobs and the HTTP server, blocking until the
// given context is cancelled, then shuts both down gracefully.
func (s *Server) Run(ctx context.Context) error {
	if err := s.cleanupJob.SetupAndStart(); err != nil {
		return fmt.Errorf("failed to start notification cleanup job: %w", err)
	}

	addr := fmt.Sprintf("%s:%s", s.cfg.ServerHost, s.cfg.ServerPort)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ServerTimeout,
		WriteTimeout: s.cfg.ServerTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", zap.String("address", addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.cleanupJob.Stop()
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutdown signal received, draining connections...")
	s.cleanupJob.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	s.logger.Info("Server stopped cleanly.")
	return nil
}
