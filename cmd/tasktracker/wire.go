package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	nethttp "net/http"

	"github.com/google/uuid"
	"github.com/samber/do/v2"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	adapthttp "github.com/jsamuelsen11/go-task-tracker/internal/adapters/http"
	"github.com/jsamuelsen11/go-task-tracker/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/go-task-tracker/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/go-task-tracker/internal/adapters/mcp"
	"github.com/jsamuelsen11/go-task-tracker/internal/adapters/repository/jsonfile"
	"github.com/jsamuelsen11/go-task-tracker/internal/app"
	"github.com/jsamuelsen11/go-task-tracker/internal/platform/config"
	"github.com/jsamuelsen11/go-task-tracker/internal/platform/health"
	"github.com/jsamuelsen11/go-task-tracker/internal/platform/logging"
	"github.com/jsamuelsen11/go-task-tracker/internal/platform/telemetry"
	"github.com/jsamuelsen11/go-task-tracker/internal/ports"
)

// runtime is everything a subcommand needs after startup.
type runtime struct {
	logger   *slog.Logger
	otel     *otelProviders
	injector *do.RootScope
}

// startup loads config, then builds the logger, telemetry and DI container in
// that order. Logs and stdout-exporter output go to out.
func startup(ctx context.Context, opts *rootOptions, out io.Writer) (*runtime, error) {
	cfg, err := config.Load(opts.profile, config.WithConfigDir(opts.configDir))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, out)

	otel, err := initTelemetry(ctx, cfg, out)
	if err != nil {
		return nil, fmt.Errorf("initializing telemetry: %w", err)
	}

	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, otel.metrics)

	registerDependencies(injector, cfg, logger)

	logger.InfoContext(ctx, "starting",
		slog.String("profile", opts.profile),
		slog.String("version", Version),
		slog.String("storage_path", cfg.Storage.Path),
	)

	return &runtime{logger: logger, otel: otel, injector: injector}, nil
}

// shutdown flushes telemetry with a bounded deadline.
func (rt *runtime) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
	defer cancel()

	if err := rt.otel.Shutdown(ctx); err != nil {
		rt.logger.Error("telemetry shutdown error", logging.Err(err))
	}
}

// otelProviders bundles OpenTelemetry provider lifecycle. The providers are
// nil when telemetry is disabled; metrics is then backed by a noop meter.
type otelProviders struct {
	tracer  *sdktrace.TracerProvider
	meter   *sdkmetric.MeterProvider
	metrics *telemetry.Metrics
}

// Shutdown flushes both providers. Nil-safe.
func (o *otelProviders) Shutdown(ctx context.Context) error {
	var errs []error
	if o.tracer != nil {
		if err := o.tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if o.meter != nil {
		if err := o.meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}

func initTelemetry(ctx context.Context, cfg *config.Config, out io.Writer) (*otelProviders, error) {
	if !cfg.Telemetry.Enabled {
		metrics, err := telemetry.NewMetrics(noop.NewMeterProvider(), cfg.Telemetry.ServiceName)
		if err != nil {
			return nil, fmt.Errorf("creating metrics: %w", err)
		}
		return &otelProviders{metrics: metrics}, nil
	}

	opts := telemetry.Options{
		ServiceName: cfg.Telemetry.ServiceName,
		Exporter:    cfg.Telemetry.Exporter,
		Endpoint:    cfg.Telemetry.Endpoint,
		Writer:      out,
	}

	tp, err := telemetry.InitTracer(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	mp, err := telemetry.InitMeter(ctx, opts)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, fmt.Errorf("init meter: %w", err)
	}

	metrics, err := telemetry.NewMetrics(mp, cfg.Telemetry.ServiceName)
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, fmt.Errorf("creating metrics: %w", err)
	}

	return &otelProviders{
		tracer:  tp,
		meter:   mp,
		metrics: metrics,
	}, nil
}

func registerDependencies(injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	do.Provide(injector, func(i do.Injector) (*jsonfile.Store, error) {
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return jsonfile.New(&cfg.Storage, metrics, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.UserRepository, error) {
		return do.MustInvoke[*jsonfile.Store](i), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.UserService, error) {
		repo := do.MustInvoke[ports.UserRepository](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return app.NewUserService(repo, logger, app.WithMetrics(metrics)), nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.HealthRegistry, error) {
		return health.New(health.WithCheckTimeout(healthCheckTimeout)), nil
	})

	// HTTP adapter.
	do.Provide(injector, func(i do.Injector) (*handlers.UserHandler, error) {
		svc := do.MustInvoke[ports.UserService](i)
		return handlers.NewUserHandler(svc, nil), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.TaskHandler, error) {
		svc := do.MustInvoke[ports.UserService](i)
		return handlers.NewTaskHandler(svc, nil), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.HealthHandler, error) {
		registry := do.MustInvoke[ports.HealthRegistry](i)
		return handlers.NewHealthHandler(registry), nil
	})

	do.Provide(injector, func(i do.Injector) (nethttp.Handler, error) {
		userH := do.MustInvoke[*handlers.UserHandler](i)
		taskH := do.MustInvoke[*handlers.TaskHandler](i)
		healthH := do.MustInvoke[*handlers.HealthHandler](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)

		return adapthttp.NewRouter(userH, taskH, healthH, middleware.Pipeline(middleware.PipelineConfig{
			Logger:    logger,
			Metrics:   metrics,
			RateLimit: cfg.RateLimit,
			Timeout:   cfg.Server.WriteTimeout,
		})), nil
	})

	do.Provide(injector, func(i do.Injector) (*adapthttp.Server, error) {
		handler := do.MustInvoke[nethttp.Handler](i)
		return adapthttp.NewServer(cfg.Server, handler, logger), nil
	})

	// MCP adapter.
	do.Provide(injector, func(i do.Injector) (*app.Session, error) {
		svc := do.MustInvoke[ports.UserService](i)
		id, err := uuid.Parse(cfg.Bootstrap.UserID)
		if err != nil {
			return nil, fmt.Errorf("parsing bootstrap user id: %w", err)
		}
		return app.Bootstrap(context.Background(), svc, id, cfg.Bootstrap.UserName, logger)
	})

	do.Provide(injector, func(i do.Injector) (*mcp.Server, error) {
		svc := do.MustInvoke[ports.UserService](i)
		session, err := do.Invoke[*app.Session](i)
		if err != nil {
			return nil, err
		}
		tools := mcp.NewToolHandler(svc, session)
		return mcp.NewServer(tools, "tasktracker", Version, logger), nil
	})
}
