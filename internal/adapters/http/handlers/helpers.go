package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jsamuelsen11/go-task-tracker/internal/adapters/http/dto"
	"github.com/jsamuelsen11/go-task-tracker/internal/domain"
	"github.com/jsamuelsen11/go-task-tracker/internal/domain/task"
	"github.com/jsamuelsen11/go-task-tracker/internal/domain/user"
	"github.com/jsamuelsen11/go-task-tracker/internal/platform/logging"
)

// parseUUID extracts a UUID path parameter from the chi URL params.
func parseUUID(r *http.Request, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		return uuid.Nil, &domain.ValidationError{
			Fields: map[string]string{param: "must be a UUID"},
		}
	}
	return id, nil
}

// parseUserAndTask extracts both ids of a task route. On failure it writes
// a 400 response and returns false.
func parseUserAndTask(w http.ResponseWriter, r *http.Request) (userID, taskID uuid.UUID, ok bool) {
	userID, err := parseUUID(r, "userId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return uuid.Nil, uuid.Nil, false
	}
	taskID, err = parseUUID(r, "taskId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return uuid.Nil, uuid.Nil, false
	}
	return userID, taskID, true
}

// absent marks an unknown user or task as domain.ErrNotFound so read
// endpoints answer 404 instead of 400.
func absent(err error) error {
	if errors.Is(err, user.ErrNotFound) || errors.Is(err, task.ErrNotFound) {
		return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	}
	return err
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).ErrorContext(r.Context(), "failed to encode response", logging.Err(err))
	}
}

// maxJSONBodyBytes is the maximum allowed size for a JSON request body (1 MB).
const maxJSONBodyBytes = 1 << 20

// decodeJSONBody decodes the request body as JSON into dst. The body is
// limited to maxJSONBodyBytes to prevent resource exhaustion. On failure,
// it writes a 400 error response and returns false.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		dto.WriteErrorResponse(w, r, &domain.ValidationError{
			Fields: map[string]string{"body": "invalid JSON"},
		})
		return false
	}
	return true
}

// validatable is implemented by request DTOs that support validation.
type validatable interface {
	Validate() error
}

// decodeAndValidate decodes the JSON request body into dst and validates it.
// On decode or validation failure it writes an error response and returns false.
func decodeAndValidate[T validatable](w http.ResponseWriter, r *http.Request, dst T) bool {
	if !decodeJSONBody(w, r, dst) {
		return false
	}
	if err := dst.Validate(); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return false
	}
	return true
}
