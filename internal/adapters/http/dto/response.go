// Package dto provides HTTP request/response data transfer objects and
// RFC 9457 Problem Details error responses for the inbound HTTP adapter layer.
package dto

import (
	"slices"
	"time"

	"github.com/jsamuelsen11/go-task-tracker/internal/domain/task"
	"github.com/jsamuelsen11/go-task-tracker/internal/domain/user"
)

// UserResponse represents a user and its tasks in HTTP responses.
type UserResponse struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Tasks []TaskResponse `json:"tasks"`
}

// TaskResponse represents a single task in HTTP responses. State and
// ElapsedSeconds are derived at response time.
type TaskResponse struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Description    *string            `json:"description"`
	Deadline       *string            `json:"deadline"`
	IsComplete     bool               `json:"is_complete"`
	State          string             `json:"state"`
	ElapsedSeconds float64            `json:"elapsed_seconds"`
	Intervals      []IntervalResponse `json:"intervals"`
}

// IntervalResponse represents one work interval. A nil End means the
// interval is still open.
type IntervalResponse struct {
	Start *string `json:"start"`
	End   *string `json:"end"`
}

// TaskListResponse represents a list of tasks in HTTP responses.
type TaskListResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Count int            `json:"count"`
}

// CreatedTaskResponse carries the id of a newly created task.
type CreatedTaskResponse struct {
	ID string `json:"id"`
}

// ToUserResponse converts a domain User to an HTTP response DTO.
func ToUserResponse(u *user.User, now time.Time) UserResponse {
	return UserResponse{
		ID:    u.ID.String(),
		Name:  u.Name,
		Tasks: ToTaskListResponse(u.Tasks, now).Tasks,
	}
}

// ToTaskResponse converts a domain Task to an HTTP response DTO. now is used
// to measure a running interval.
func ToTaskResponse(t *task.Task, now time.Time) TaskResponse {
	resp := TaskResponse{
		ID:             t.ID.String(),
		Name:           t.Name,
		Description:    t.Description,
		Deadline:       formatTime(t.Deadline),
		IsComplete:     t.IsComplete,
		State:          t.State().String(),
		ElapsedSeconds: t.Elapsed(now).Seconds(),
		Intervals:      make([]IntervalResponse, len(t.Intervals)),
	}
	for i, iv := range t.Intervals {
		resp.Intervals[i] = IntervalResponse{
			Start: formatTime(iv.Start),
			End:   formatTime(iv.End),
		}
	}
	return resp
}

// ToTaskListResponse converts a slice of domain Tasks to an HTTP list
// response DTO.
func ToTaskListResponse(tasks []task.Task, now time.Time) TaskListResponse {
	items := make([]TaskResponse, len(tasks))
	for i := range tasks {
		items[i] = ToTaskResponse(&tasks[i], now)
	}
	return TaskListResponse{
		Tasks: items,
		Count: len(items),
	}
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

// ReadinessResponse is the body of GET /health/ready.
type ReadinessResponse struct {
	Status     string            `json:"status"`
	Components []ComponentStatus `json:"components"`
}

// ComponentStatus is one health checker's result. Error is set only when
// the component is unavailable.
type ComponentStatus struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// ToReadinessResponse orders results by component name. A nil error is
// "ok"; any failure marks the whole service "not_ready".
func ToReadinessResponse(results map[string]error) ReadinessResponse {
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	slices.Sort(names)

	resp := ReadinessResponse{Status: "ready", Components: make([]ComponentStatus, 0, len(names))}
	for _, name := range names {
		c := ComponentStatus{Name: name, Status: "ok"}
		if err := results[name]; err != nil {
			c.Status = "unavailable"
			c.Error = err.Error()
			resp.Status = "not_ready"
		}
		resp.Components = append(resp.Components, c)
	}
	return resp
}
