package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/go-task-tracker/internal/domain/task"
	"github.com/jsamuelsen11/go-task-tracker/internal/domain/user"
)

// UserService defines the service port for user aggregate operations.
// Implemented by the application layer; called by inbound adapters.
// Every state-changing method loads the aggregate, applies one domain
// operation and saves the whole aggregate exactly once.
type UserService interface {
	// CreateUser registers and persists a new user. A uuid.Nil id is
	// replaced by a generated one.
	// Returns user.ErrAlreadyExists (an invalid parameter) if id is taken.
	CreateUser(ctx context.Context, name string, id uuid.UUID) (*user.User, error)

	// GetUser returns the user, or found == false if the id is unknown.
	GetUser(ctx context.Context, id uuid.UUID) (u *user.User, found bool, err error)

	// GetTasks returns the user's tasks in creation order, or
	// found == false if the user is unknown.
	GetTasks(ctx context.Context, userID uuid.UUID) (tasks []task.Task, found bool, err error)

	// GetTask returns one task of the user.
	// Returns an invalid parameter error if the user or task is unknown.
	GetTask(ctx context.Context, userID, taskID uuid.UUID) (*task.Task, error)

	// CreateTask builds a task from draft, appends it to the user and
	// returns its id.
	// Returns user.ErrNotFound if the user is unknown.
	CreateTask(ctx context.Context, userID uuid.UUID, draft task.Draft) (uuid.UUID, error)

	// ModifyUserTask overwrites the supplied fields of one task.
	ModifyUserTask(ctx context.Context, userID, taskID uuid.UUID, upd task.Update) error

	// ChangeTaskStatus applies a lifecycle command to one task.
	// Illegal transitions return errors wrapping domain.ErrInvalidParameter.
	ChangeTaskStatus(ctx context.Context, userID, taskID uuid.UUID, cmd task.Command) error
}
