package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	adapthttp "github.com/jsamuelsen11/go-task-tracker/internal/adapters/http"
	"github.com/jsamuelsen11/go-task-tracker/internal/adapters/repository/jsonfile"
	"github.com/jsamuelsen11/go-task-tracker/internal/platform/health"
	"github.com/jsamuelsen11/go-task-tracker/internal/platform/logging"
	"github.com/jsamuelsen11/go-task-tracker/internal/ports"
)

const (
	serverShutdownTimeout = 15 * time.Second
	otelShutdownTimeout   = 5 * time.Second
	healthCheckTimeout    = 2 * time.Second
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the task API over HTTP",
		Long: `Serve the task API over HTTP until SIGINT or SIGTERM.

Examples:
  tasktracker serve
  tasktracker serve --profile prod --config-dir /etc/tasktracker`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
}

func runServe(ctx context.Context, opts *rootOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	rt, err := startup(ctx, opts, os.Stderr)
	if err != nil {
		return err
	}
	defer rt.shutdown()

	// Resolve the server (eagerly wires the full HTTP graph).
	server, err := do.Invoke[*adapthttp.Server](rt.injector)
	if err != nil {
		return fmt.Errorf("resolving server: %w", err)
	}

	// Register health checkers after the graph is wired.
	registry := do.MustInvoke[ports.HealthRegistry](rt.injector)
	registry.Register(do.MustInvoke[*jsonfile.Store](rt.injector))
	if results := registry.CheckAll(ctx); !health.Healthy(results) {
		for name, err := range results {
			if err != nil {
				rt.logger.WarnContext(ctx, "component not ready at startup",
					slog.String("component", name), logging.Err(err))
			}
		}
	}

	// Bind now so a taken port fails before waiting on signals.
	if err := server.Listen(); err != nil {
		return err
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case sig := <-quit:
		rt.logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	}

	// Graceful shutdown: drain HTTP requests.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		rt.logger.Error("server shutdown error", logging.Err(err))
	}

	// Wait for Start() goroutine to return.
	<-serverErr

	rt.logger.Info("shutdown complete")
	return nil
}
