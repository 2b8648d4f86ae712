package middleware_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jsamuelsen11/go-task-tracker/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/go-task-tracker/internal/platform/logging"
)

// completedLine returns the "request completed" line from text handler output.
func completedLine(t *testing.T, out string) string {
	t.Helper()
	for line := range strings.SplitSeq(out, "\n") {
		if strings.Contains(line, "request completed") {
			return line
		}
	}
	t.Fatalf("no request completed line in:\n%s", out)
	return ""
}

func TestLogging_CompletionLevelFollowsStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		level  string
	}{
		{name: "created", status: http.StatusCreated, level: "level=INFO"},
		{name: "not modified", status: http.StatusNotModified, level: "level=INFO"},
		{name: "bad request", status: http.StatusBadRequest, level: "level=WARN"},
		{name: "conflict", status: http.StatusConflict, level: "level=WARN"},
		{name: "unavailable", status: http.StatusServiceUnavailable, level: "level=ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			handler := middleware.Logging(testLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))

			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/users/u1/tasks", http.NoBody))

			line := completedLine(t, buf.String())
			if !strings.Contains(line, tt.level) {
				t.Errorf("completion line %q, want %s", line, tt.level)
			}
		})
	}
}

func TestLogging_CompletionAttributes(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := middleware.Logging(testLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"tasks":[]}`))
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/users/u1/tasks", http.NoBody))

	out := buf.String()
	if !strings.Contains(out, "request started") {
		t.Error("log output missing request started")
	}
	line := completedLine(t, out)
	for _, want := range []string{"method=GET", "path=/api/v1/users/u1/tasks", "status=200", "bytes=12", "duration="} {
		if !strings.Contains(line, want) {
			t.Errorf("completion line missing %q: %s", want, line)
		}
	}
}

func TestLogging_ContextLoggerCarriesIDs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := middleware.Chain(
		middleware.RequestID(),
		middleware.CorrelationID(),
		middleware.Logging(testLogger(&buf)),
	)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		logging.FromContext(r.Context()).InfoContext(r.Context(), "task added")
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/u1/tasks", http.NoBody)
	req.Header.Set("X-Request-ID", "req-log-1")
	req.Header.Set("X-Correlation-ID", "corr-log-1")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var handlerLine string
	for line := range strings.SplitSeq(buf.String(), "\n") {
		if strings.Contains(line, "task added") {
			handlerLine = line
		}
	}
	if handlerLine == "" {
		t.Fatalf("handler log not written through context logger:\n%s", buf.String())
	}
	for _, want := range []string{"request_id=req-log-1", "correlation_id=corr-log-1"} {
		if !strings.Contains(handlerLine, want) {
			t.Errorf("handler log missing %q: %s", want, handlerLine)
		}
	}
}

func TestLogging_DebugHeadersAreRedacted(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := middleware.Logging(testLogger(&buf))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", http.NoBody)
	req.Header.Set("Authorization", "Bearer very-secret-token")
	req.Header.Set("Accept", "application/json")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	if !strings.Contains(out, "request headers") {
		t.Fatal("debug header log missing at debug level")
	}
	if strings.Contains(out, "very-secret-token") {
		t.Errorf("authorization header leaked into logs:\n%s", out)
	}
	if !strings.Contains(out, "application/json") {
		t.Error("non-sensitive header missing from debug log")
	}
}
