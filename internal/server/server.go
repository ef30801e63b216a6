package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/osa911/portfolio-api/internal/api/handlers"
	"github.com/osa911/portfolio-api/internal/api/middleware"
	"github.com/osa911/portfolio-api/internal/config"
	"github.com/osa911/portfolio-api/internal/logging"
	"github.com/osa911/portfolio-api/internal/server/routes"
	"github.com/osa911/portfolio-api/internal/service"
)

const shutdownTimeout = 10 * time.Second

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	cfg    *config.Config
	logger *logging.Logger
}

// NewServer creates a new server instance with every route registered
func NewServer(cfg *config.Config, deps *Dependencies) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Disable Gin's default logger entirely because we're using our custom logger
	gin.DisableConsoleColor()
	gin.DefaultWriter = io.Discard

	logger := logging.GetGlobalLogger()

	// Create a new engine without default middleware
	router := gin.New()
	router.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))

	var reporter middleware.PanicReporter
	if deps.Sentry != nil {
		reporter = deps.Sentry
	}
	routes.SetupGlobalMiddleware(router, cfg, logger, reporter)

	audit := service.NewAuditService()
	sheetsMode := "disabled"
	if deps.Sheets != nil {
		sheetsMode = deps.Sheets.Mode().String()
	}

	h := &routes.Handlers{
		Health:         handlers.NewHealthHandler(deps.Store, cfg.StoreDriver, sheetsMode),
		Contact:        handlers.NewContactHandler(deps.Submissions, audit),
		ServiceInquiry: handlers.NewServiceInquiryHandler(deps.Submissions, audit),
		SheetsSetup:    handlers.NewSheetsSetupHandler(),
	}
	m := &routes.Middleware{
		Validation: middleware.NewValidationMiddleware(),
		// Per-process budget for the public forms: bursts of 5, then 1 per second
		SubmitLimit: middleware.RateLimitMiddleware(middleware.RateLimitConfig{
			RPS:   1,
			Burst: 5,
		}),
	}
	routes.Setup(router, h, m)

	return &Server{
		router: router,
		cfg:    cfg,
		logger: logger,
	}
}

// Router exposes the engine, mainly for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start serves until ctx is cancelled, then drains in-flight requests
func (s *Server) Start(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Submissions wait for the sheet, so leave room beyond SHEETS_TIMEOUT
		WriteTimeout: s.cfg.Sheets.Timeout + 20*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server listening on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("Server stopped")
	return nil
}
