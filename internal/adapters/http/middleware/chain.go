package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/jsamuelsen11/go-task-tracker/internal/platform/config"
	"github.com/jsamuelsen11/go-task-tracker/internal/platform/telemetry"
)

// Chain composes multiple middleware into a single middleware. The first
// argument becomes the outermost middleware (executed first on request,
// last on response):
//
//	Chain(Recovery, RequestID, Logging)(handler)
//
// is equivalent to:
//
//	Recovery(RequestID(Logging(handler)))
func Chain(middlewares ...func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(handler http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			handler = middlewares[i](handler)
		}
		return handler
	}
}

// PipelineConfig carries the settings of the standard inbound pipeline.
type PipelineConfig struct {
	Logger    *slog.Logger
	Metrics   *telemetry.Metrics
	RateLimit config.RateLimitConfig
	// Timeout bounds handler execution; zero disables it.
	Timeout time.Duration
}

// Pipeline returns the standard inbound middleware as one unit, in the order
// documented for this package. Rate limiting sits inside Logging so rejected
// requests are still logged and traced.
func Pipeline(cfg PipelineConfig) func(http.Handler) http.Handler {
	return Chain(
		Recovery(cfg.Logger),
		RequestID(),
		CorrelationID(),
		OpenTelemetry(cfg.Metrics),
		Logging(cfg.Logger),
		RateLimit(cfg.RateLimit),
		Timeout(cfg.Timeout),
	)
}
