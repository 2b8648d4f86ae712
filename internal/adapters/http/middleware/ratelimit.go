package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"golang.org/x/time/rate"

	"github.com/jsamuelsen11/go-task-tracker/internal/adapters/http/dto"
	"github.com/jsamuelsen11/go-task-tracker/internal/platform/config"
	"github.com/jsamuelsen11/go-task-tracker/internal/platform/logging"
)

// RateLimit returns middleware that admits requests through a single token
// bucket shared by all callers. Requests over the limit are rejected at once
// with a 429 problem response and a Retry-After hint rather than queued.
// A non-positive RequestsPerSecond disables limiting.
func RateLimit(cfg config.RateLimitConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if cfg.RequestsPerSecond <= 0 {
			return next
		}
		limiter := rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				logging.FromContext(r.Context()).WarnContext(r.Context(), "rate limit exceeded",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
				)
				w.Header().Set("Retry-After", retryAfter(cfg.RequestsPerSecond))
				dto.WriteProblem(w, r, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// retryAfter is the whole number of seconds until one token is refilled.
func retryAfter(rps float64) string {
	return strconv.Itoa(int(math.Max(1, math.Ceil(1/rps))))
}
