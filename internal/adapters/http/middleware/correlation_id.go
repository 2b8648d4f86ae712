package middleware

import (
	"context"
	"net/http"
)

// WithCorrelationID returns a copy of ctx carrying the correlation ID.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

// CorrelationIDFromContext returns the correlation ID, or "" outside
// CorrelationID.
func CorrelationIDFromContext(ctx context.Context) string {
	return idFromContext(ctx, correlationIDKey)
}

// CorrelationID returns middleware that ties a request to a wider flow via
// X-Correlation-ID. A well-formed caller value is kept; otherwise the request
// ID is reused, so it must run inside RequestID.
func CorrelationID() func(http.Handler) http.Handler {
	return propagateID(headerCorrelationID, correlationIDKey, func(r *http.Request) string {
		return RequestIDFromContext(r.Context())
	})
}
