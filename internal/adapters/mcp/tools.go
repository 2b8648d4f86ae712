package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/go-task-tracker/internal/app"
	"github.com/jsamuelsen11/go-task-tracker/internal/domain"
	"github.com/jsamuelsen11/go-task-tracker/internal/domain/task"
	"github.com/jsamuelsen11/go-task-tracker/internal/ports"
)

// ErrUnknownTool is returned by Handle for a tool name it does not serve.
var ErrUnknownTool = errors.New("unknown tool")

// Tool describes one callable tool in tools/list.
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// ToolHandler runs tool calls against the user service on behalf of the
// session user.
type ToolHandler struct {
	svc     ports.UserService
	session *app.Session
	now     func() time.Time
}

// NewToolHandler creates a ToolHandler bound to session.
func NewToolHandler(svc ports.UserService, session *app.Session) *ToolHandler {
	return &ToolHandler{svc: svc, session: session, now: time.Now}
}

// Handle dispatches one tool call. Argument and domain failures come back as
// errors; the server turns them into isError results.
func (h *ToolHandler) Handle(ctx context.Context, name string, args json.RawMessage) (any, error) {
	switch name {
	case "create_task":
		return h.createTask(ctx, args)
	case "start_task":
		return h.changeStatus(ctx, args, task.CommandStart)
	case "pause_task":
		return h.changeStatus(ctx, args, task.CommandPause)
	case "resume_task":
		return h.changeStatus(ctx, args, task.CommandResume)
	case "complete_task":
		return h.changeStatus(ctx, args, task.CommandComplete)
	case "list_tasks":
		return h.listTasks(ctx)
	case "get_task":
		return h.getTask(ctx, args)
	case "update_task":
		return h.updateTask(ctx, args)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
}

type createTaskArgs struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Deadline    *string `json:"deadline"`
}

type taskIDArgs struct {
	TaskID string `json:"task_id"`
}

type updateTaskArgs struct {
	TaskID      string  `json:"task_id"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Deadline    *string `json:"deadline"`
}

type createTaskResult struct {
	TaskID string `json:"task_id"`
}

type listTasksResult struct {
	Tasks []taskView `json:"tasks"`
	Count int        `json:"count"`
}

type taskView struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Description    *string        `json:"description"`
	Deadline       *string        `json:"deadline"`
	IsComplete     bool           `json:"is_complete"`
	State          string         `json:"state"`
	ElapsedSeconds float64        `json:"elapsed_seconds"`
	Intervals      []intervalView `json:"intervals"`
}

type intervalView struct {
	Start *string `json:"start"`
	End   *string `json:"end"`
}

func (h *ToolHandler) createTask(ctx context.Context, raw json.RawMessage) (any, error) {
	var args createTaskArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}

	deadline, err := parseDeadline(args.Deadline)
	if err != nil {
		return nil, err
	}

	id, err := h.svc.CreateTask(ctx, h.session.UserID, task.Draft{
		Name:        args.Name,
		Description: args.Description,
		Deadline:    deadline,
	})
	if err != nil {
		return nil, err
	}
	return createTaskResult{TaskID: id.String()}, nil
}

func (h *ToolHandler) changeStatus(ctx context.Context, raw json.RawMessage, cmd task.Command) (any, error) {
	taskID, err := h.taskID(raw)
	if err != nil {
		return nil, err
	}

	if err := h.svc.ChangeTaskStatus(ctx, h.session.UserID, taskID, cmd); err != nil {
		return nil, err
	}

	t, err := h.svc.GetTask(ctx, h.session.UserID, taskID)
	if err != nil {
		return nil, err
	}
	return h.view(t), nil
}

func (h *ToolHandler) listTasks(ctx context.Context) (any, error) {
	tasks, found, err := h.svc.GetTasks(ctx, h.session.UserID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("session user %s: %w", h.session.UserID, domain.ErrService)
	}

	views := make([]taskView, 0, len(tasks))
	for i := range tasks {
		views = append(views, h.view(&tasks[i]))
	}
	return listTasksResult{Tasks: views, Count: len(views)}, nil
}

func (h *ToolHandler) getTask(ctx context.Context, raw json.RawMessage) (any, error) {
	taskID, err := h.taskID(raw)
	if err != nil {
		return nil, err
	}

	t, err := h.svc.GetTask(ctx, h.session.UserID, taskID)
	if err != nil {
		return nil, err
	}
	return h.view(t), nil
}

func (h *ToolHandler) updateTask(ctx context.Context, raw json.RawMessage) (any, error) {
	var args updateTaskArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}

	taskID, err := parseTaskID(args.TaskID)
	if err != nil {
		return nil, err
	}
	deadline, err := parseDeadline(args.Deadline)
	if err != nil {
		return nil, err
	}

	upd := task.Update{Name: args.Name, Description: args.Description, Deadline: deadline}
	if err := h.svc.ModifyUserTask(ctx, h.session.UserID, taskID, upd); err != nil {
		return nil, err
	}

	t, err := h.svc.GetTask(ctx, h.session.UserID, taskID)
	if err != nil {
		return nil, err
	}
	return h.view(t), nil
}

func (h *ToolHandler) taskID(raw json.RawMessage) (uuid.UUID, error) {
	var args taskIDArgs
	if err := decodeArgs(raw, &args); err != nil {
		return uuid.Nil, err
	}
	return parseTaskID(args.TaskID)
}

func (h *ToolHandler) view(t *task.Task) taskView {
	v := taskView{
		ID:             t.ID.String(),
		Name:           t.Name,
		Description:    t.Description,
		Deadline:       formatTime(t.Deadline),
		IsComplete:     t.IsComplete,
		State:          t.State().String(),
		ElapsedSeconds: t.Elapsed(h.now()).Seconds(),
		Intervals:      make([]intervalView, 0, len(t.Intervals)),
	}
	for _, iv := range t.Intervals {
		v.Intervals = append(v.Intervals, intervalView{Start: formatTime(iv.Start), End: formatTime(iv.End)})
	}
	return v
}

func decodeArgs(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return &domain.ValidationError{Fields: map[string]string{"arguments": err.Error()}}
	}
	return nil
}

func parseTaskID(s string) (uuid.UUID, error) {
	if strings.TrimSpace(s) == "" {
		return uuid.Nil, &domain.ValidationError{Fields: map[string]string{"task_id": domain.MsgRequired}}
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, &domain.ValidationError{Fields: map[string]string{"task_id": "must be a UUID"}}
	}
	return id, nil
}

// deadlineLayouts are tried in order; zone-less forms are read as UTC.
var deadlineLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseDeadline(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	for _, layout := range deadlineLayouts {
		if t, err := time.ParseInLocation(layout, strings.TrimSpace(*s), time.UTC); err == nil {
			return &t, nil
		}
	}
	return nil, &domain.ValidationError{Fields: map[string]string{
		"deadline": "must be an ISO-8601 date or timestamp",
	}}
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

// ToolDefinitions lists every tool with its JSON input schema.
func ToolDefinitions() []Tool {
	taskIDOnly := func(desc string) map[string]any {
		return map[string]any{
			"type": "object",
			"properties": map[string]any{
				"task_id": map[string]any{"type": "string", "description": desc},
			},
			"required": []string{"task_id"},
		}
	}

	return []Tool{
		{
			Name:        "create_task",
			Description: "Create a new task and get its id.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name":        map[string]any{"type": "string", "description": "Task name"},
					"description": map[string]any{"type": "string", "description": "Optional description"},
					"deadline": map[string]any{
						"type":        "string",
						"description": "Optional ISO-8601 deadline, e.g. 2026-03-01T17:00:00Z",
					},
				},
				"required": []string{"name"},
			},
		},
		{Name: "start_task", Description: "Start the task's execution.", InputSchema: taskIDOnly("Task to start")},
		{Name: "pause_task", Description: "Pause the task.", InputSchema: taskIDOnly("Task to pause")},
		{Name: "resume_task", Description: "Resume the task's execution.", InputSchema: taskIDOnly("Task to resume")},
		{Name: "complete_task", Description: "Complete the task's execution.", InputSchema: taskIDOnly("Task to complete")},
		{
			Name:        "list_tasks",
			Description: "List all tasks with their state and time spent.",
			InputSchema: map[string]any{"type": "object", "properties": map[string]any{}},
		},
		{Name: "get_task", Description: "Get one task with its work intervals.", InputSchema: taskIDOnly("Task to fetch")},
		{
			Name:        "update_task",
			Description: "Change a task's name, description or deadline. Omitted fields stay unchanged.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"task_id":     map[string]any{"type": "string", "description": "Task to update"},
					"name":        map[string]any{"type": "string"},
					"description": map[string]any{"type": "string"},
					"deadline":    map[string]any{"type": "string", "description": "ISO-8601 deadline"},
				},
				"required": []string{"task_id"},
			},
		},
	}
}
