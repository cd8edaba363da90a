package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/paylink/terminal/internal/app"
	authDomain "github.com/paylink/terminal/internal/auth/domain"
	"github.com/paylink/terminal/internal/config"
)

// shutdownTimeout bounds the graceful drain of both servers.
const shutdownTimeout = 15 * time.Second

// serverRunner is the part of http.Server and http.MetricsServer used here.
type serverRunner interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// RunServer validates the configuration, builds the container and runs the API
// server and, when enabled, the metrics server until SIGINT or SIGTERM.
func RunServer(ctx context.Context, version string) error {
	cfg := config.Load()
	if err := cfg.ValidateServer(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	gin.SetMode(cfg.GetGinMode())

	container := app.NewContainer(cfg)
	logger := container.Logger()
	logger.Info("starting server", slog.String("version", version))

	defer closeContainer(container, logger)

	if authDomain.SessionMode(cfg.SessionMode) == authDomain.SessionModeLegacy {
		logger.Warn("legacy session mode stores the terminal password in the session cookie")
	}

	if _, err := container.Tracer(ctx); err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}

	server, err := container.HTTPServer()
	if err != nil {
		return fmt.Errorf("failed to initialize HTTP server: %w", err)
	}

	metricsServer, err := container.MetricsServer()
	if err != nil {
		return fmt.Errorf("failed to initialize metrics server: %w", err)
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	runners := map[string]serverRunner{"api": server}
	if metricsServer != nil {
		runners["metrics"] = metricsServer
	}

	return serve(ctx, runners, shutdownTimeout, logger)
}

// serve starts every runner and blocks until ctx is done or one of them fails,
// then shuts all of them down within timeout.
func serve(ctx context.Context, runners map[string]serverRunner, timeout time.Duration, logger *slog.Logger) error {
	group, groupCtx := errgroup.WithContext(ctx)

	for name, runner := range runners {
		group.Go(func() error {
			if err := runner.Start(groupCtx); err != nil {
				return fmt.Errorf("%s server error: %w", name, err)
			}
			return nil
		})
	}

	group.Go(func() error {
		<-groupCtx.Done()
		if ctx.Err() != nil {
			logger.Info("shutdown signal received")
		} else {
			logger.Error("server error, initiating shutdown")
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
		defer shutdownCancel()

		var errs []error
		for name, runner := range runners {
			if err := runner.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, fmt.Errorf("%s server shutdown: %w", name, err))
			}
		}
		return errors.Join(errs...)
	})

	return group.Wait()
}
