package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/jsamuelsen11/go-task-tracker/internal/adapters/http/dto"
)

// Recovery returns middleware that recovers from panics in downstream handlers.
// The panic value and stack trace are logged but never exposed in the
// response, which is a generic RFC 9457 500. If the response headers have
// already been written, only the log entry is emitted. http.ErrAbortHandler
// is re-raised so net/http can abort the connection.
//
// Recovery sits outside RequestID, so the request ID is read back from the
// response header RequestID sets.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := newResponseWriter(w)

			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if v == http.ErrAbortHandler {
					panic(v)
				}

				logger.ErrorContext(r.Context(), "panic recovered",
					slog.String("panic", fmt.Sprint(v)),
					slog.String("stack", string(debug.Stack())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("request_id", panicRequestID(rw, r)),
				)

				if !rw.headerWritten {
					dto.WriteProblem(rw, r, http.StatusInternalServerError, "internal server error")
				}
			}()

			next.ServeHTTP(rw, r)
		})
	}
}

func panicRequestID(w http.ResponseWriter, r *http.Request) string {
	if id := w.Header().Get(headerRequestID); id != "" {
		return id
	}
	return RequestIDFromContext(r.Context())
}
