// Package user holds the User aggregate root. A user exclusively owns an
// ordered sequence of tasks; tasks have no identity outside their owner and
// are only changed through the methods below.
package user

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/go-task-tracker/internal/domain"
	"github.com/jsamuelsen11/go-task-tracker/internal/domain/task"
)

// Registration and lookup failures. Both wrap domain.ErrInvalidParameter.
var (
	ErrNotFound      = fmt.Errorf("%w: user does not exist", domain.ErrInvalidParameter)
	ErrAlreadyExists = fmt.Errorf("%w: user already exists", domain.ErrInvalidParameter)
)

// User is the aggregate root persisted as a single unit.
type User struct {
	ID    uuid.UUID
	Name  string
	Tasks []task.Task
}

// New builds a user with no tasks. A nil id is replaced by a generated one.
func New(name string, id uuid.UUID) (*User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &domain.ValidationError{Fields: map[string]string{"name": domain.MsgRequired}}
	}
	if id == uuid.Nil {
		id = uuid.New()
	}
	return &User{ID: id, Name: name, Tasks: []task.Task{}}, nil
}

// AddTask appends a task to the user's sequence.
func (u *User) AddTask(t task.Task) {
	u.Tasks = append(u.Tasks, t)
}

// Task returns the task with the given id. The pointer refers into the
// user's own sequence, so mutations through it change the aggregate.
func (u *User) Task(taskID uuid.UUID) (*task.Task, error) {
	for i := range u.Tasks {
		if u.Tasks[i].ID == taskID {
			return &u.Tasks[i], nil
		}
	}
	return nil, fmt.Errorf("task %s: %w", taskID, task.ErrNotFound)
}

// UpdateTask overwrites the supplied fields of one task. A whitespace-only
// name is rejected and nothing changes.
func (u *User) UpdateTask(taskID uuid.UUID, upd task.Update) error {
	t, err := u.Task(taskID)
	if err != nil {
		return err
	}
	if err := upd.Validate(); err != nil {
		return err
	}
	t.Apply(upd)
	return nil
}

// StartTask opens the first work interval of a task.
func (u *User) StartTask(taskID uuid.UUID, at time.Time) error {
	t, err := u.Task(taskID)
	if err != nil {
		return err
	}
	return t.Start(at)
}

// PauseTask closes the open work interval of a task.
func (u *User) PauseTask(taskID uuid.UUID, at time.Time) error {
	t, err := u.Task(taskID)
	if err != nil {
		return err
	}
	return t.Pause(at)
}

// ResumeTask opens a new work interval on a paused task.
func (u *User) ResumeTask(taskID uuid.UUID, at time.Time) error {
	t, err := u.Task(taskID)
	if err != nil {
		return err
	}
	return t.Resume(at)
}

// CompleteTask closes any open interval and marks the task complete.
func (u *User) CompleteTask(taskID uuid.UUID, at time.Time) error {
	t, err := u.Task(taskID)
	if err != nil {
		return err
	}
	return t.Complete(at)
}

// Clone returns a deep copy of the aggregate.
func (u *User) Clone() *User {
	c := &User{ID: u.ID, Name: u.Name, Tasks: make([]task.Task, len(u.Tasks))}
	for i := range u.Tasks {
		c.Tasks[i] = u.Tasks[i].Clone()
	}
	return c
}
