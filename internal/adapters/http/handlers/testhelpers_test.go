package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jsamuelsen11/go-task-tracker/internal/domain/task"
	"github.com/jsamuelsen11/go-task-tracker/internal/domain/user"
)

var (
	testTime   = time.Date(2026, 2, 12, 15, 0, 0, 0, time.UTC)
	testUserID = uuid.MustParse("0b2e1f84-93d8-4792-b2e1-6fbbfb376d74")
	testTaskID = uuid.MustParse("6a1c2b7e-1f0d-4c55-9e43-2a0e9c6b1d11")
)

func fixedNow() time.Time { return testTime }

func withChiParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func taskParams(command string) map[string]string {
	params := map[string]string{
		"userId": testUserID.String(),
		"taskId": testTaskID.String(),
	}
	if command != "" {
		params["command"] = command
	}
	return params
}

func validTask() task.Task {
	start := testTime.Add(-30 * time.Minute)
	return task.Task{
		ID:   testTaskID,
		Name: "Write report",
		Intervals: []task.WorkInterval{
			{TaskID: testTaskID, Start: &start},
		},
	}
}

func validUser() user.User {
	return user.User{
		ID:    testUserID,
		Name:  "Ann",
		Tasks: []task.Task{validTask()},
	}
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(v); err != nil {
		t.Fatalf("failed to encode JSON body: %v", err)
	}
	return buf
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var result T
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode JSON response: %v", err)
	}
	return result
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Errorf("status = %d, want %d; body = %s", rec.Code, want, rec.Body.String())
	}
}
