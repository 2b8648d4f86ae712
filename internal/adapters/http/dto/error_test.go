package dto_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jsamuelsen11/go-task-tracker/internal/adapters/http/dto"
	"github.com/jsamuelsen11/go-task-tracker/internal/domain"
	"github.com/jsamuelsen11/go-task-tracker/internal/domain/task"
	"github.com/jsamuelsen11/go-task-tracker/internal/domain/user"
)

func TestNewErrorResponse_StatusMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
	}{
		{
			name:       "validation error maps to 400",
			err:        &domain.ValidationError{Fields: map[string]string{"name": "is required"}},
			wantStatus: http.StatusBadRequest,
			wantKind:   "invalid_parameter",
		},
		{
			name:       "illegal transition maps to 400",
			err:        fmt.Errorf("task 1: %w", task.ErrAlreadyPaused),
			wantStatus: http.StatusBadRequest,
			wantKind:   "invalid_parameter",
		},
		{
			name:       "unknown user on a mutation maps to 400",
			err:        user.ErrNotFound,
			wantStatus: http.StatusBadRequest,
			wantKind:   "invalid_parameter",
		},
		{
			name:       "absent GET target maps to 404",
			err:        fmt.Errorf("%w: %w", domain.ErrNotFound, user.ErrNotFound),
			wantStatus: http.StatusNotFound,
			wantKind:   "invalid_parameter",
		},
		{
			name:       "service failure maps to 409",
			err:        domain.ErrService,
			wantStatus: http.StatusConflict,
			wantKind:   "service_failure",
		},
		{
			name:       "storage failure maps to 503",
			err:        fmt.Errorf("%w: saving user: disk full", domain.ErrExternalService),
			wantStatus: http.StatusServiceUnavailable,
			wantKind:   "external_service_failure",
		},
		{
			name:       "unknown error maps to 500",
			err:        errors.New("oops"),
			wantStatus: http.StatusInternalServerError,
			wantKind:   "internal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodGet, "/api/v1/users/42", nil)
			got := dto.NewErrorResponse(r, tt.err)

			if got.Status != tt.wantStatus {
				t.Errorf("Status = %d, want %d", got.Status, tt.wantStatus)
			}
			if got.Title != http.StatusText(tt.wantStatus) {
				t.Errorf("Title = %q, want %q", got.Title, http.StatusText(tt.wantStatus))
			}
			if got.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", got.Kind, tt.wantKind)
			}
		})
	}
}

func TestNewErrorResponse_Fields(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodPost, "/api/v1/users", nil)
	err := domain.ErrService

	got := dto.NewErrorResponse(r, err)

	if got.Type != "about:blank" {
		t.Errorf("Type = %q, want %q", got.Type, "about:blank")
	}
	if got.Instance != "/api/v1/users" {
		t.Errorf("Instance = %q, want %q", got.Instance, "/api/v1/users")
	}
	if got.Detail != err.Error() {
		t.Errorf("Detail = %q, want %q", got.Detail, err.Error())
	}
	if got.Errors != nil {
		t.Errorf("Errors = %v, want nil for non-validation error", got.Errors)
	}
}

func TestNewErrorResponse_ValidationLocations(t *testing.T) {
	t.Parallel()

	verr := &domain.ValidationError{Fields: map[string]string{
		"name":    "is required",
		"taskId":  "must be a UUID",
		"command": `unknown command "stop"`,
	}}

	r := httptest.NewRequest(http.MethodPost, "/api/v1/users/1/tasks/x/stop", nil)
	got := dto.NewErrorResponse(r, verr)

	want := []string{"body.name", "path.command", "path.taskId"}
	if len(got.Errors) != len(want) {
		t.Fatalf("len(Errors) = %d, want %d", len(got.Errors), len(want))
	}
	for i, loc := range want {
		if got.Errors[i].Location != loc {
			t.Errorf("Errors[%d].Location = %q, want %q", i, got.Errors[i].Location, loc)
		}
	}
}

func TestWriteErrorResponse_ValidJSON(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/users", nil)

	dto.WriteErrorResponse(w, r, &domain.ValidationError{Fields: map[string]string{"name": "is required"}})

	if ct := w.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("Content-Type = %q, want %q", ct, "application/problem+json")
	}
	if w.Code != http.StatusBadRequest {
		t.Errorf("status code = %d, want %d", w.Code, http.StatusBadRequest)
	}

	var resp dto.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	if len(resp.Errors) != 1 || resp.Errors[0].Location != "body.name" {
		t.Errorf("Errors = %+v, want one body.name entry", resp.Errors)
	}
}

func TestWriteProblem(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/v1/users/1/tasks", nil)

	dto.WriteProblem(w, r, http.StatusTooManyRequests, "rate limit exceeded")

	if w.Code != http.StatusTooManyRequests {
		t.Errorf("status code = %d, want %d", w.Code, http.StatusTooManyRequests)
	}
	body := w.Body.String()
	if !strings.Contains(body, `"title":"Too Many Requests"`) {
		t.Errorf("body = %s, want Too Many Requests title", body)
	}
	if strings.Contains(body, `"kind"`) {
		t.Errorf("body = %s, want no kind member", body)
	}
}
