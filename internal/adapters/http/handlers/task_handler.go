package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jsamuelsen11/go-task-tracker/internal/adapters/http/dto"
	"github.com/jsamuelsen11/go-task-tracker/internal/domain"
	"github.com/jsamuelsen11/go-task-tracker/internal/domain/task"
	"github.com/jsamuelsen11/go-task-tracker/internal/ports"
)

// TaskHandler handles HTTP requests for a user's tasks and their lifecycle.
type TaskHandler struct {
	svc ports.UserService
	now func() time.Time
}

// NewTaskHandler creates a new TaskHandler with the given service port.
// now measures running intervals in responses; nil means time.Now.
func NewTaskHandler(svc ports.UserService, now func() time.Time) *TaskHandler {
	if now == nil {
		now = time.Now
	}
	return &TaskHandler{svc: svc, now: now}
}

// ListTasks handles GET /api/v1/users/{userId}/tasks.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUUID(r, "userId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	tasks, found, err := h.svc.GetTasks(r.Context(), userID)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	if !found {
		dto.WriteErrorResponse(w, r, fmt.Errorf("user %s: %w", userID, domain.ErrNotFound))
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToTaskListResponse(tasks, h.now()))
}

// CreateTask handles POST /api/v1/users/{userId}/tasks.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUUID(r, "userId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.CreateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	id, err := h.svc.CreateTask(r.Context(), userID, req.Draft())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/v1/users/%s/tasks/%s", userID, id))
	writeJSON(w, r, http.StatusCreated, dto.CreatedTaskResponse{ID: id.String()})
}

// GetTask handles GET /api/v1/users/{userId}/tasks/{taskId}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := parseUserAndTask(w, r)
	if !ok {
		return
	}

	t, err := h.svc.GetTask(r.Context(), userID, taskID)
	if err != nil {
		dto.WriteErrorResponse(w, r, absent(err))
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToTaskResponse(t, h.now()))
}

// UpdateTask handles PATCH /api/v1/users/{userId}/tasks/{taskId}.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := parseUserAndTask(w, r)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.svc.ModifyUserTask(r.Context(), userID, taskID, req.Update()); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	h.writeTask(w, r, userID, taskID)
}

// ChangeStatus handles POST /api/v1/users/{userId}/tasks/{taskId}/{command}.
func (h *TaskHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := parseUserAndTask(w, r)
	if !ok {
		return
	}

	cmd, err := task.ParseCommand(chi.URLParam(r, "command"))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	if err := h.svc.ChangeTaskStatus(r.Context(), userID, taskID, cmd); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	h.writeTask(w, r, userID, taskID)
}

// writeTask re-reads the task after a mutation and writes it with 200 OK.
func (h *TaskHandler) writeTask(w http.ResponseWriter, r *http.Request, userID, taskID uuid.UUID) {
	t, err := h.svc.GetTask(r.Context(), userID, taskID)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.ToTaskResponse(t, h.now()))
}
