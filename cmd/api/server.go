package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"contact-manager/internal/config"
	"contact-manager/internal/router"
	"contact-manager/pkg/container"
)

const (
	startupTimeout  = 60 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Serve runs the HTTP listener until SIGINT/SIGTERM
func Serve(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ========================================
	// 1. BUILD DI CONTAINER
	// ========================================
	appContainer, err := container.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	defer appContainer.Cleanup()

	// ========================================
	// 2. CONNECT STORE
	// ========================================
	// A long-running server refuses to start without its store; function
	// mode connects on the first request instead.
	if cfg.App.DeployMode == config.DeployServer {
		startCtx, cancel := context.WithTimeout(ctx, startupTimeout)
		err := appContainer.Connect(startCtx)
		if err == nil {
			err = appContainer.HealthCheck(startCtx)
		}
		cancel()
		if err != nil {
			return fmt.Errorf("failed to connect store: %w", err)
		}
	}

	// ========================================
	// 3. CONFIGURE HTTP SERVER
	// ========================================
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        router.Setup(appContainer),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	// ========================================
	// 4. RUN + GRACEFUL SHUTDOWN
	// ========================================
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().
			Str("addr", srv.Addr).
			Str("base_path", router.BasePath(cfg.App.DeployMode)).
			Msg("Server listening")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("forced shutdown: %w", err)
		}
		log.Info().Msg("Server exited gracefully")
		return nil
	})

	return g.Wait()
}
