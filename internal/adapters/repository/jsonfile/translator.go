package jsonfile

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/go-task-tracker/internal/domain/task"
	"github.com/jsamuelsen11/go-task-tracker/internal/domain/user"
)

var errMissingID = errors.New("missing id")

func toUserDTO(u *user.User) userDTO {
	dto := userDTO{
		ID:    u.ID,
		Name:  u.Name,
		Tasks: make([]taskDTO, 0, len(u.Tasks)),
	}
	for i := range u.Tasks {
		dto.Tasks = append(dto.Tasks, toTaskDTO(&u.Tasks[i]))
	}
	return dto
}

func toTaskDTO(t *task.Task) taskDTO {
	dto := taskDTO{
		ID:          t.ID,
		Name:        t.Name,
		IsComplete:  t.IsComplete,
		Description: t.Description,
		Deadline:    toTimestamp(t.Deadline),
		Intervals:   make([]intervalDTO, 0, len(t.Intervals)),
	}
	for _, iv := range t.Intervals {
		dto.Intervals = append(dto.Intervals, intervalDTO{
			TaskID: iv.TaskID,
			Start:  toTimestamp(iv.Start),
			End:    toTimestamp(iv.End),
		})
	}
	return dto
}

func toDomainUser(dto userDTO) (*user.User, error) {
	id, err := resolveID(dto.ID, dto.LegacyID)
	if err != nil {
		return nil, fmt.Errorf("user: %w", err)
	}

	u := &user.User{ID: id, Name: dto.Name}
	if len(dto.Tasks) > 0 {
		u.Tasks = make([]task.Task, 0, len(dto.Tasks))
	}
	for i, td := range dto.Tasks {
		t, err := toDomainTask(td)
		if err != nil {
			return nil, fmt.Errorf("user %s: task %d: %w", id, i, err)
		}
		u.Tasks = append(u.Tasks, t)
	}
	return u, nil
}

func toDomainTask(dto taskDTO) (task.Task, error) {
	id, err := resolveID(dto.ID, dto.LegacyID)
	if err != nil {
		return task.Task{}, err
	}

	t := task.Task{
		ID:          id,
		Name:        dto.Name,
		IsComplete:  dto.IsComplete,
		Description: dto.Description,
		Deadline:    fromTimestamp(dto.Deadline),
	}
	if len(dto.Intervals) > 0 {
		t.Intervals = make([]task.WorkInterval, 0, len(dto.Intervals))
	}
	for _, iv := range dto.Intervals {
		taskID := iv.TaskID
		if taskID == uuid.Nil {
			taskID = id
		}
		t.Intervals = append(t.Intervals, task.WorkInterval{
			TaskID: taskID,
			Start:  fromTimestamp(iv.Start),
			End:    fromTimestamp(iv.End),
		})
	}
	return t, nil
}

func resolveID(id uuid.UUID, legacy *uuid.UUID) (uuid.UUID, error) {
	if id != uuid.Nil {
		return id, nil
	}
	if legacy != nil && *legacy != uuid.Nil {
		return *legacy, nil
	}
	return uuid.Nil, errMissingID
}

func toTimestamp(t *time.Time) *timestamp {
	if t == nil {
		return nil
	}
	return &timestamp{Time: *t}
}

func fromTimestamp(ts *timestamp) *time.Time {
	if ts == nil {
		return nil
	}
	t := ts.Time
	return &t
}
