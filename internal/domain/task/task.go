// Package task holds the Task entity and its lifecycle state machine:
//
//	not_started -> running -> paused -> running -> ... -> complete
//
// Active work is recorded as an append-only log of WorkIntervals. Only the
// last interval may be open, and a completed task never has an open interval.
package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/go-task-tracker/internal/domain"
)

// Transition failures. All of them wrap domain.ErrInvalidParameter.
var (
	ErrNotFound         = fmt.Errorf("%w: task does not exist", domain.ErrInvalidParameter)
	ErrAlreadyStarted   = fmt.Errorf("%w: task was already started", domain.ErrInvalidParameter)
	ErrNotStarted       = fmt.Errorf("%w: task was not started", domain.ErrInvalidParameter)
	ErrAlreadyPaused    = fmt.Errorf("%w: task was already paused", domain.ErrInvalidParameter)
	ErrNotPaused        = fmt.Errorf("%w: task was not paused", domain.ErrInvalidParameter)
	ErrAlreadyCompleted = fmt.Errorf("%w: task was already completed", domain.ErrInvalidParameter)
)

// Task is a unit of work owned by exactly one user.
type Task struct {
	ID          uuid.UUID
	Name        string
	IsComplete  bool
	Description *string
	Deadline    *time.Time
	Intervals   []WorkInterval
}

// Draft carries the caller-supplied fields of a task that does not exist yet.
type Draft struct {
	Name        string
	Description *string
	Deadline    *time.Time
}

// Validate checks business rules for a new task.
// Returns a *domain.ValidationError with per-field details, or nil.
func (d *Draft) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(d.Name) == "" {
		fields["name"] = domain.MsgRequired
	}
	if d.Deadline != nil && d.Deadline.IsZero() {
		fields["deadline"] = "must not be the zero time"
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// New builds a not-started task from a draft with a freshly generated id.
func New(d Draft) Task {
	return Task{
		ID:          uuid.New(),
		Name:        d.Name,
		Description: d.Description,
		Deadline:    d.Deadline,
	}
}

// Update lists the fields to overwrite on an existing task. Nil, empty and
// zero values mean "leave unchanged".
type Update struct {
	Name        *string
	Description *string
	Deadline    *time.Time
}

// IsEmpty reports whether applying u would change nothing.
func (u Update) IsEmpty() bool {
	return (u.Name == nil || *u.Name == "") &&
		(u.Description == nil || *u.Description == "") &&
		(u.Deadline == nil || u.Deadline.IsZero())
}

// Validate rejects a name made only of whitespace. An empty name still means
// "leave unchanged".
func (u Update) Validate() error {
	if u.Name != nil && *u.Name != "" && strings.TrimSpace(*u.Name) == "" {
		return &domain.ValidationError{Fields: map[string]string{"name": domain.MsgRequired}}
	}
	return nil
}

// Apply overwrites the fields supplied in u and leaves the rest untouched.
func (t *Task) Apply(u Update) {
	if u.Name != nil && *u.Name != "" {
		t.Name = *u.Name
	}
	if u.Description != nil && *u.Description != "" {
		desc := *u.Description
		t.Description = &desc
	}
	if u.Deadline != nil && !u.Deadline.IsZero() {
		deadline := *u.Deadline
		t.Deadline = &deadline
	}
}

// State derives the lifecycle state from the task's data.
func (t *Task) State() State {
	switch {
	case t.IsComplete:
		return StateComplete
	case len(t.Intervals) == 0:
		return StateNotStarted
	case t.Intervals[len(t.Intervals)-1].IsOpen():
		return StateRunning
	default:
		return StatePaused
	}
}

// Start opens the first interval. Legal only for a task that has never run.
func (t *Task) Start(at time.Time) error {
	if len(t.Intervals) != 0 {
		return t.fail(ErrAlreadyStarted)
	}
	t.Intervals = append(t.Intervals, openInterval(t.ID, at))
	return nil
}

// Pause closes the open interval. Legal only while running.
func (t *Task) Pause(at time.Time) error {
	last := t.lastInterval()
	if last == nil {
		return t.fail(ErrNotStarted)
	}
	if !last.IsOpen() {
		return t.fail(ErrAlreadyPaused)
	}
	last.End = &at
	return nil
}

// Resume opens a new interval after a pause.
func (t *Task) Resume(at time.Time) error {
	last := t.lastInterval()
	if last == nil {
		return t.fail(ErrNotStarted)
	}
	if t.IsComplete {
		return t.fail(ErrAlreadyCompleted)
	}
	if last.IsOpen() {
		return t.fail(ErrNotPaused)
	}
	t.Intervals = append(t.Intervals, openInterval(t.ID, at))
	return nil
}

// Complete closes the open interval, if any, exactly as Pause would and
// marks the task complete. A task must have been started first.
func (t *Task) Complete(at time.Time) error {
	last := t.lastInterval()
	if last == nil {
		return t.fail(ErrNotStarted)
	}
	if t.IsComplete {
		return t.fail(ErrAlreadyCompleted)
	}
	if last.IsOpen() {
		if err := t.Pause(at); err != nil {
			return err
		}
	}
	t.IsComplete = true
	return nil
}

// Elapsed returns total time on task: every closed interval plus the open
// one measured up to now.
func (t *Task) Elapsed(now time.Time) time.Duration {
	var total time.Duration
	for _, iv := range t.Intervals {
		total += iv.Duration(now)
	}
	return total
}

// Clone returns a deep copy that shares no pointers with t.
func (t *Task) Clone() Task {
	c := Task{
		ID:          t.ID,
		Name:        t.Name,
		IsComplete:  t.IsComplete,
		Description: cloneString(t.Description),
		Deadline:    cloneTime(t.Deadline),
	}
	if t.Intervals != nil {
		c.Intervals = make([]WorkInterval, len(t.Intervals))
		for i, iv := range t.Intervals {
			c.Intervals[i] = iv.clone()
		}
	}
	return c
}

func (t *Task) lastInterval() *WorkInterval {
	if len(t.Intervals) == 0 {
		return nil
	}
	return &t.Intervals[len(t.Intervals)-1]
}

func (t *Task) fail(err error) error {
	return fmt.Errorf("task %s: %w", t.ID, err)
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
