// Package handlers provides HTTP request handlers for the service's API endpoints.
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jsamuelsen11/go-task-tracker/internal/adapters/http/dto"
	"github.com/jsamuelsen11/go-task-tracker/internal/domain"
	"github.com/jsamuelsen11/go-task-tracker/internal/ports"
)

// UserHandler handles HTTP requests for user registration and lookup.
type UserHandler struct {
	svc ports.UserService
	now func() time.Time
}

// NewUserHandler creates a new UserHandler with the given service port.
// now measures running intervals in responses; nil means time.Now.
func NewUserHandler(svc ports.UserService, now func() time.Time) *UserHandler {
	if now == nil {
		now = time.Now
	}
	return &UserHandler{svc: svc, now: now}
}

// CreateUser handles POST /api/v1/users.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	u, err := h.svc.CreateUser(r.Context(), req.Name, req.UserID())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/v1/users/"+u.ID.String())
	writeJSON(w, r, http.StatusCreated, dto.ToUserResponse(u, h.now()))
}

// GetUser handles GET /api/v1/users/{userId}.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r, "userId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	u, found, err := h.svc.GetUser(r.Context(), id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	if !found {
		dto.WriteErrorResponse(w, r, fmt.Errorf("user %s: %w", id, domain.ErrNotFound))
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToUserResponse(u, h.now()))
}
