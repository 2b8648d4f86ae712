package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const (
	headerRequestID     = "X-Request-ID"
	headerCorrelationID = "X-Correlation-ID"
)

// maxIDLength bounds caller-supplied request and correlation IDs.
const maxIDLength = 128

type idKey int

const (
	requestIDKey idKey = iota
	correlationIDKey
)

// sanitizeID returns id if it is short printable ASCII, otherwise "".
// Rejected IDs are replaced by the caller so they never reach logs.
func sanitizeID(id string) string {
	if len(id) > maxIDLength {
		return ""
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return ""
		}
	}
	return id
}

// propagateID reuses a well-formed header value or asks fallback for one,
// then stores it under key and echoes it on the response.
func propagateID(header string, key idKey, fallback func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := sanitizeID(r.Header.Get(header))
			if id == "" {
				id = fallback(r)
			}
			w.Header().Set(header, id)
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), key, id)))
		})
	}
}

func idFromContext(ctx context.Context, key idKey) string {
	id, _ := ctx.Value(key).(string)
	return id
}

// WithRequestID returns a copy of ctx carrying the request ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the request ID, or "" outside RequestID.
func RequestIDFromContext(ctx context.Context) string {
	return idFromContext(ctx, requestIDKey)
}

// RequestID returns middleware that gives every request an X-Request-ID.
// A caller-supplied value is kept when it is at most 128 printable ASCII
// characters; otherwise a random UUID is issued.
func RequestID() func(http.Handler) http.Handler {
	return propagateID(headerRequestID, requestIDKey, func(*http.Request) string {
		return uuid.NewString()
	})
}
