package task

import (
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/jsamuelsen11/go-task-tracker/internal/domain"
)

const tolerance = time.Second

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func newTask(t *testing.T) Task {
	t.Helper()
	return New(Draft{Name: "Write report"})
}

// requireInvariants asserts that only the last interval may be open, that
// every interval belongs to the task, and that a completed task has no open
// interval.
func requireInvariants(t *testing.T, tk *Task) {
	t.Helper()

	for i, iv := range tk.Intervals {
		if iv.TaskID != tk.ID {
			t.Errorf("Intervals[%d].TaskID = %s, want %s", i, iv.TaskID, tk.ID)
		}
		if i < len(tk.Intervals)-1 && iv.IsOpen() {
			t.Errorf("Intervals[%d] is open but is not the last interval", i)
		}
	}
	if tk.IsComplete && len(tk.Intervals) > 0 && tk.Intervals[len(tk.Intervals)-1].IsOpen() {
		t.Error("completed task has an open last interval")
	}
}

func requireRecent(t *testing.T, name string, ts *time.Time) {
	t.Helper()

	if ts == nil {
		t.Fatalf("%s = nil, want a timestamp", name)
	}
	if d := time.Since(*ts); d < 0 || d > tolerance {
		t.Errorf("%s = %v, want within %v of now", name, *ts, tolerance)
	}
}

func TestDraft_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		draft     Draft
		wantField string
	}{
		{name: "name only passes", draft: Draft{Name: "Write report"}},
		{
			name:  "all fields pass",
			draft: Draft{Name: "Write report", Description: strPtr("quarterly"), Deadline: timePtr(time.Now())},
		},
		{name: "empty name fails", draft: Draft{Name: ""}, wantField: "name"},
		{name: "whitespace name fails", draft: Draft{Name: " \t"}, wantField: "name"},
		{name: "zero deadline fails", draft: Draft{Name: "x", Deadline: &time.Time{}}, wantField: "deadline"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.draft.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}

			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() = %v, want *ValidationError", err)
			}
			if _, ok := verr.Fields[tt.wantField]; !ok {
				t.Errorf("Fields = %v, missing %q", verr.Fields, tt.wantField)
			}
			if !errors.Is(err, domain.ErrInvalidParameter) {
				t.Error("errors.Is(err, ErrInvalidParameter) = false, want true")
			}
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	a := New(Draft{Name: "a"})
	b := New(Draft{Name: "b"})

	if a.ID == b.ID {
		t.Error("New() generated duplicate ids")
	}
	if a.State() != StateNotStarted {
		t.Errorf("State() = %q, want %q", a.State(), StateNotStarted)
	}
	if len(a.Intervals) != 0 {
		t.Errorf("len(Intervals) = %d, want 0", len(a.Intervals))
	}
}

func TestTask_Start(t *testing.T) {
	t.Parallel()

	t.Run("not started task opens one interval", func(t *testing.T) {
		t.Parallel()
		tk := newTask(t)

		if err := tk.Start(time.Now()); err != nil {
			t.Fatalf("Start() = %v, want nil", err)
		}
		if len(tk.Intervals) != 1 {
			t.Fatalf("len(Intervals) = %d, want 1", len(tk.Intervals))
		}
		if !tk.Intervals[0].IsOpen() {
			t.Error("Intervals[0] is closed, want open")
		}
		requireRecent(t, "Intervals[0].Start", tk.Intervals[0].Start)
		if tk.State() != StateRunning {
			t.Errorf("State() = %q, want %q", tk.State(), StateRunning)
		}
	})

	t.Run("started task fails", func(t *testing.T) {
		t.Parallel()
		tk := newTask(t)
		_ = tk.Start(time.Now())
		_ = tk.Pause(time.Now())

		err := tk.Start(time.Now())
		if !errors.Is(err, ErrAlreadyStarted) {
			t.Errorf("Start() = %v, want ErrAlreadyStarted", err)
		}
		if !errors.Is(err, domain.ErrInvalidParameter) {
			t.Errorf("Start() = %v, want ErrInvalidParameter", err)
		}
		if len(tk.Intervals) != 1 {
			t.Errorf("len(Intervals) = %d, want 1", len(tk.Intervals))
		}
	})
}

func TestTask_Pause(t *testing.T) {
	t.Parallel()

	t.Run("running task closes the open interval", func(t *testing.T) {
		t.Parallel()
		tk := newTask(t)
		_ = tk.Start(time.Now())

		if err := tk.Pause(time.Now()); err != nil {
			t.Fatalf("Pause() = %v, want nil", err)
		}
		if len(tk.Intervals) != 1 {
			t.Fatalf("len(Intervals) = %d, want 1", len(tk.Intervals))
		}
		requireRecent(t, "Intervals[0].End", tk.Intervals[0].End)
		if tk.State() != StatePaused {
			t.Errorf("State() = %q, want %q", tk.State(), StatePaused)
		}
	})

	t.Run("not started task fails and stays empty", func(t *testing.T) {
		t.Parallel()
		tk := newTask(t)

		err := tk.Pause(time.Now())
		if !errors.Is(err, ErrNotStarted) {
			t.Errorf("Pause() = %v, want ErrNotStarted", err)
		}
		if len(tk.Intervals) != 0 {
			t.Errorf("len(Intervals) = %d, want 0", len(tk.Intervals))
		}
	})

	t.Run("paused task fails", func(t *testing.T) {
		t.Parallel()
		tk := newTask(t)
		_ = tk.Start(time.Now())
		first := time.Now()
		_ = tk.Pause(first)

		err := tk.Pause(time.Now().Add(time.Minute))
		if !errors.Is(err, ErrAlreadyPaused) {
			t.Errorf("Pause() = %v, want ErrAlreadyPaused", err)
		}
		if !tk.Intervals[0].End.Equal(first) {
			t.Errorf("Intervals[0].End = %v, want unchanged %v", *tk.Intervals[0].End, first)
		}
	})
}

func TestTask_Resume(t *testing.T) {
	t.Parallel()

	t.Run("paused task appends an open interval", func(t *testing.T) {
		t.Parallel()
		tk := newTask(t)
		_ = tk.Start(time.Now())
		_ = tk.Pause(time.Now())

		if err := tk.Resume(time.Now()); err != nil {
			t.Fatalf("Resume() = %v, want nil", err)
		}
		if len(tk.Intervals) != 2 {
			t.Fatalf("len(Intervals) = %d, want 2", len(tk.Intervals))
		}
		if !tk.Intervals[1].IsOpen() {
			t.Error("Intervals[1] is closed, want open")
		}
	})

	t.Run("not started task fails", func(t *testing.T) {
		t.Parallel()
		tk := newTask(t)

		if err := tk.Resume(time.Now()); !errors.Is(err, ErrNotStarted) {
			t.Errorf("Resume() = %v, want ErrNotStarted", err)
		}
	})

	t.Run("running task fails", func(t *testing.T) {
		t.Parallel()
		tk := newTask(t)
		_ = tk.Start(time.Now())

		if err := tk.Resume(time.Now()); !errors.Is(err, ErrNotPaused) {
			t.Errorf("Resume() = %v, want ErrNotPaused", err)
		}
		if len(tk.Intervals) != 1 {
			t.Errorf("len(Intervals) = %d, want 1", len(tk.Intervals))
		}
	})

	t.Run("completed task fails", func(t *testing.T) {
		t.Parallel()
		tk := newTask(t)
		_ = tk.Start(time.Now())
		_ = tk.Complete(time.Now())

		if err := tk.Resume(time.Now()); !errors.Is(err, ErrAlreadyCompleted) {
			t.Errorf("Resume() = %v, want ErrAlreadyCompleted", err)
		}
		if len(tk.Intervals) != 1 {
			t.Errorf("len(Intervals) = %d, want 1", len(tk.Intervals))
		}
	})
}

func TestTask_Complete(t *testing.T) {
	t.Parallel()

	t.Run("running task closes interval and completes", func(t *testing.T) {
		t.Parallel()
		tk := newTask(t)
		_ = tk.Start(time.Now())

		if err := tk.Complete(time.Now()); err != nil {
			t.Fatalf("Complete() = %v, want nil", err)
		}
		if !tk.IsComplete {
			t.Error("IsComplete = false, want true")
		}
		if len(tk.Intervals) != 1 {
			t.Fatalf("len(Intervals) = %d, want 1", len(tk.Intervals))
		}
		requireRecent(t, "Intervals[0].End", tk.Intervals[0].End)
	})

	t.Run("paused task completes without new interval", func(t *testing.T) {
		t.Parallel()
		tk := newTask(t)
		_ = tk.Start(time.Now())
		paused := time.Now()
		_ = tk.Pause(paused)

		if err := tk.Complete(time.Now().Add(time.Hour)); err != nil {
			t.Fatalf("Complete() = %v, want nil", err)
		}
		if !tk.IsComplete {
			t.Error("IsComplete = false, want true")
		}
		if len(tk.Intervals) != 1 {
			t.Errorf("len(Intervals) = %d, want 1", len(tk.Intervals))
		}
		if !tk.Intervals[0].End.Equal(paused) {
			t.Errorf("Intervals[0].End = %v, want unchanged %v", *tk.Intervals[0].End, paused)
		}
	})

	t.Run("not started task fails", func(t *testing.T) {
		t.Parallel()
		tk := newTask(t)

		if err := tk.Complete(time.Now()); !errors.Is(err, ErrNotStarted) {
			t.Errorf("Complete() = %v, want ErrNotStarted", err)
		}
		if tk.IsComplete {
			t.Error("IsComplete = true, want false")
		}
	})

	t.Run("completed task fails", func(t *testing.T) {
		t.Parallel()
		tk := newTask(t)
		_ = tk.Start(time.Now())
		_ = tk.Complete(time.Now())

		if err := tk.Complete(time.Now()); !errors.Is(err, ErrAlreadyCompleted) {
			t.Errorf("Complete() = %v, want ErrAlreadyCompleted", err)
		}
	})
}

func TestTask_Apply(t *testing.T) {
	t.Parallel()

	deadline := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	base := func() Task {
		return Task{
			Name:        "original",
			Description: strPtr("original description"),
			Deadline:    timePtr(deadline),
		}
	}

	tests := []struct {
		name     string
		update   Update
		wantName string
		wantDesc string
		wantDue  time.Time
	}{
		{
			name:     "empty update changes nothing",
			update:   Update{},
			wantName: "original", wantDesc: "original description", wantDue: deadline,
		},
		{
			name:     "name only",
			update:   Update{Name: strPtr("renamed")},
			wantName: "renamed", wantDesc: "original description", wantDue: deadline,
		},
		{
			name:     "description only",
			update:   Update{Description: strPtr("new description")},
			wantName: "original", wantDesc: "new description", wantDue: deadline,
		},
		{
			name:     "deadline only",
			update:   Update{Deadline: timePtr(deadline.Add(24 * time.Hour))},
			wantName: "original", wantDesc: "original description", wantDue: deadline.Add(24 * time.Hour),
		},
		{
			name:     "empty strings and zero time are ignored",
			update:   Update{Name: strPtr(""), Description: strPtr(""), Deadline: &time.Time{}},
			wantName: "original", wantDesc: "original description", wantDue: deadline,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tk := base()
			tk.Apply(tt.update)

			if tk.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", tk.Name, tt.wantName)
			}
			if *tk.Description != tt.wantDesc {
				t.Errorf("Description = %q, want %q", *tk.Description, tt.wantDesc)
			}
			if !tk.Deadline.Equal(tt.wantDue) {
				t.Errorf("Deadline = %v, want %v", *tk.Deadline, tt.wantDue)
			}
		})
	}
}

func TestUpdate_IsEmpty(t *testing.T) {
	t.Parallel()

	if !(Update{}).IsEmpty() {
		t.Error("Update{}.IsEmpty() = false, want true")
	}
	if !(Update{Name: strPtr("")}).IsEmpty() {
		t.Error("Update{Name: \"\"}.IsEmpty() = false, want true")
	}
	if (Update{Description: strPtr("x")}).IsEmpty() {
		t.Error("Update{Description: x}.IsEmpty() = true, want false")
	}
}

func TestUpdate_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		update  Update
		wantErr bool
	}{
		{name: "no name", update: Update{Description: strPtr("x")}},
		{name: "empty name means unchanged", update: Update{Name: strPtr("")}},
		{name: "real name", update: Update{Name: strPtr("Write report")}},
		{name: "spaces", update: Update{Name: strPtr("   ")}, wantErr: true},
		{name: "tabs and newline", update: Update{Name: strPtr("\t\n")}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.update.Validate()
			if !tt.wantErr {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			var verr *domain.ValidationError
			if !errors.As(err, &verr) || verr.Fields["name"] == "" {
				t.Errorf("Validate() = %v, want a name ValidationError", err)
			}
		})
	}
}

func TestTask_Elapsed(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	tk := New(Draft{Name: "x"})

	_ = tk.Start(t0)
	_ = tk.Pause(t0.Add(30 * time.Minute))
	_ = tk.Resume(t0.Add(time.Hour))

	if got, want := tk.Elapsed(t0.Add(90*time.Minute)), time.Hour; got != want {
		t.Errorf("Elapsed() while running = %v, want %v", got, want)
	}

	_ = tk.Complete(t0.Add(2 * time.Hour))
	if got, want := tk.Elapsed(t0.Add(10*time.Hour)), 90*time.Minute; got != want {
		t.Errorf("Elapsed() after complete = %v, want %v", got, want)
	}
}

func TestTask_Clone(t *testing.T) {
	t.Parallel()

	tk := New(Draft{Name: "x", Description: strPtr("d"), Deadline: timePtr(time.Now())})
	_ = tk.Start(time.Now())

	c := tk.Clone()
	*c.Description = "changed"
	*c.Intervals[0].Start = time.Time{}
	c.Intervals = append(c.Intervals, WorkInterval{})

	if *tk.Description != "d" {
		t.Error("Clone shares Description with original")
	}
	if tk.Intervals[0].Start.IsZero() {
		t.Error("Clone shares interval Start with original")
	}
	if len(tk.Intervals) != 1 {
		t.Error("Clone shares Intervals backing array with original")
	}
}

// TestTask_InvariantsHoldUnderRandomCommands drives tasks through random
// sequences of valid and invalid commands and checks the interval invariants
// after every step.
func TestTask_InvariantsHoldUnderRandomCommands(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(42, 7))
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for run := range 200 {
		tk := New(Draft{Name: "random"})
		for step := range 25 {
			now = now.Add(time.Duration(rng.IntN(600)) * time.Second)
			cmd := Commands[rng.IntN(len(Commands))]
			before := tk.State()

			var err error
			switch cmd {
			case CommandStart:
				err = tk.Start(now)
			case CommandPause:
				err = tk.Pause(now)
			case CommandResume:
				err = tk.Resume(now)
			case CommandComplete:
				err = tk.Complete(now)
			}

			if err != nil {
				if !errors.Is(err, domain.ErrInvalidParameter) {
					t.Fatalf("run %d step %d: %s error %v does not wrap ErrInvalidParameter", run, step, cmd, err)
				}
				if tk.State() != before {
					t.Fatalf("run %d step %d: failed %s changed state %q -> %q", run, step, cmd, before, tk.State())
				}
			}
			requireInvariants(t, &tk)
		}
	}
}
