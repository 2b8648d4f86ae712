package task

import (
	"time"

	"github.com/google/uuid"
)

// WorkInterval is one contiguous span of active work on a task. An interval
// with a nil End is open: the task is currently running.
type WorkInterval struct {
	TaskID uuid.UUID
	Start  *time.Time
	End    *time.Time
}

// IsOpen reports whether the interval has not been closed yet.
func (w WorkInterval) IsOpen() bool {
	return w.End == nil
}

// Duration returns the length of the interval. An open interval is measured
// up to now. An interval without a start contributes nothing.
func (w WorkInterval) Duration(now time.Time) time.Duration {
	if w.Start == nil {
		return 0
	}
	end := now
	if w.End != nil {
		end = *w.End
	}
	if end.Before(*w.Start) {
		return 0
	}
	return end.Sub(*w.Start)
}

func openInterval(taskID uuid.UUID, at time.Time) WorkInterval {
	return WorkInterval{TaskID: taskID, Start: &at}
}

func (w WorkInterval) clone() WorkInterval {
	return WorkInterval{
		TaskID: w.TaskID,
		Start:  cloneTime(w.Start),
		End:    cloneTime(w.End),
	}
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
