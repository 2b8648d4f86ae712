package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/go-task-tracker/internal/domain"
	"github.com/jsamuelsen11/go-task-tracker/internal/domain/task"
)

const (
	msgMustNotEmpty = "must not be empty"
	msgMustBeUUID   = "must be a UUID"
)

// CreateUserRequest represents the JSON body for registering a user.
// ID is optional; the service generates one when it is absent.
type CreateUserRequest struct {
	Name string  `json:"name"`
	ID   *string `json:"id,omitempty"`
}

// Validate checks that the name is present and any supplied id is a UUID.
// Returns a *domain.ValidationError if any checks fail.
func (r *CreateUserRequest) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(r.Name) == "" {
		fields["name"] = domain.MsgRequired
	}
	if r.ID != nil {
		if _, err := uuid.Parse(*r.ID); err != nil {
			fields["id"] = msgMustBeUUID
		}
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// UserID returns the requested id, or uuid.Nil when none was supplied.
// Call after Validate.
func (r *CreateUserRequest) UserID() uuid.UUID {
	if r.ID == nil {
		return uuid.Nil
	}
	return uuid.MustParse(*r.ID)
}

// CreateTaskRequest represents the JSON body for creating a task. Deadline
// is an RFC 3339 timestamp.
type CreateTaskRequest struct {
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

// Validate checks that required fields are present.
// Returns a *domain.ValidationError if any checks fail.
func (r *CreateTaskRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return &domain.ValidationError{Fields: map[string]string{"name": domain.MsgRequired}}
	}
	return nil
}

// Draft converts the request into a task.Draft.
func (r *CreateTaskRequest) Draft() task.Draft {
	return task.Draft{
		Name:        r.Name,
		Description: r.Description,
		Deadline:    r.Deadline,
	}
}

// UpdateTaskRequest represents the JSON body for updating a task.
// All fields are optional; nil means "do not change this field.".
type UpdateTaskRequest struct {
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

// Validate checks that a supplied name is not blank.
// Returns a *domain.ValidationError if any checks fail.
func (r *UpdateTaskRequest) Validate() error {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return &domain.ValidationError{Fields: map[string]string{"name": msgMustNotEmpty}}
	}
	return nil
}

// Update converts the request into a task.Update.
func (r *UpdateTaskRequest) Update() task.Update {
	return task.Update{
		Name:        r.Name,
		Description: r.Description,
		Deadline:    r.Deadline,
	}
}
