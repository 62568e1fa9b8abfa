package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"clinic-assistant/internal/config"
	"clinic-assistant/internal/handlers"
	"clinic-assistant/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 10 * time.Second

// Browsers never match Authorization against a "*" entry.
var allowedHeaders = []string{
	"Authorization",
	"Content-Type",
	"Accept",
	"Origin",
	middleware.RequestIDHeader,
}

// NewRouter assembles the gin engine: recovery, request id, logging, open
// CORS, then the API routes behind the static bearer token.
func NewRouter(cfg *config.Config, h *handlers.Handler, logger zerolog.Logger) *gin.Engine {
	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions, http.MethodHead},
		AllowHeaders:    allowedHeaders,
		ExposeHeaders:   []string{middleware.RequestIDHeader},
		MaxAge:          12 * time.Hour,
	}))

	handlers.RegisterRoutes(r, h, middleware.BearerAuth(cfg.AuthToken))
	return r
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func Run(ctx context.Context, cfg *config.Config, handler http.Handler, logger zerolog.Logger) error {
	srv := &http.Server{
		Addr:              ":" + cfg.ListenPort,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
