// Package app provides application services that orchestrate use cases by
// coordinating between domain logic and infrastructure through port interfaces.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen11/go-task-tracker/internal/domain"
	"github.com/jsamuelsen11/go-task-tracker/internal/domain/task"
	"github.com/jsamuelsen11/go-task-tracker/internal/domain/user"
	"github.com/jsamuelsen11/go-task-tracker/internal/platform/logging"
	"github.com/jsamuelsen11/go-task-tracker/internal/platform/telemetry"
	"github.com/jsamuelsen11/go-task-tracker/internal/ports"
)

// Compile-time check that UserService implements ports.UserService.
var _ ports.UserService = (*UserService)(nil)

// UserService implements ports.UserService on top of a UserRepository.
//
// Every mutating call runs load -> mutate -> save while holding a lock on
// the user id, so two calls for the same user never interleave and calls for
// different users never wait on each other.
type UserService struct {
	repo    ports.UserRepository
	locks   *keyedMutex
	now     func() time.Time
	metrics *telemetry.Metrics
	tracer  trace.Tracer
	logger  *slog.Logger
}

// Option configures a UserService.
type Option func(*UserService)

// WithClock overrides the source of transition timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *UserService) {
		s.now = now
	}
}

// WithMetrics enables the task.transition.total counter.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(s *UserService) {
		s.metrics = m
	}
}

// NewUserService creates a UserService backed by repo. A nil logger discards
// output.
func NewUserService(repo ports.UserRepository, logger *slog.Logger, opts ...Option) *UserService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &UserService{
		repo:   repo,
		locks:  newKeyedMutex(),
		now:    time.Now,
		tracer: otel.Tracer(telemetry.InstrumentationScope),
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateUser registers a new user. The name must not be blank and the id,
// when supplied, must not be taken.
func (s *UserService) CreateUser(ctx context.Context, name string, id uuid.UUID) (*user.User, error) {
	s.logger.InfoContext(ctx, "creating user", slog.String("name", name))

	u, err := user.New(name, id)
	if err != nil {
		return nil, err
	}

	ctx, span := s.startSpan(ctx, "UserService.CreateUser", u.ID)
	defer span.End()

	unlock := s.locks.Lock(u.ID)
	defer unlock()

	_, found, err := s.repo.GetByID(ctx, u.ID)
	if err != nil {
		return nil, s.failed(ctx, span, "CreateUser", err, logging.UserID(u.ID))
	}
	if found {
		return nil, fmt.Errorf("user %s: %w", u.ID, user.ErrAlreadyExists)
	}

	if err := s.repo.Save(ctx, u); err != nil {
		return nil, s.failed(ctx, span, "CreateUser", err, logging.UserID(u.ID))
	}

	return u, nil
}

// GetUser returns the user, or found == false if the id is unknown.
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*user.User, bool, error) {
	u, found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch user",
			logging.Operation("GetUser"),
			logging.UserID(id),
			logging.Err(err),
		)
		return nil, false, err
	}
	return u, found, nil
}

// GetTasks returns the user's tasks in creation order.
func (s *UserService) GetTasks(ctx context.Context, userID uuid.UUID) ([]task.Task, bool, error) {
	u, found, err := s.GetUser(ctx, userID)
	if err != nil || !found {
		return nil, found, err
	}
	return u.Tasks, true, nil
}

// GetTask returns one task of the user.
func (s *UserService) GetTask(ctx context.Context, userID, taskID uuid.UUID) (*task.Task, error) {
	u, found, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("user %s: %w", userID, user.ErrNotFound)
	}
	return u.Task(taskID)
}

// CreateTask validates draft, appends a new not-started task to the user and
// returns its id.
func (s *UserService) CreateTask(ctx context.Context, userID uuid.UUID, draft task.Draft) (uuid.UUID, error) {
	s.logger.InfoContext(ctx, "creating task", logging.UserID(userID), slog.String("name", draft.Name))

	if err := draft.Validate(); err != nil {
		return uuid.Nil, err
	}

	var taskID uuid.UUID
	err := s.mutate(ctx, "CreateTask", userID, func(u *user.User) error {
		t := task.New(draft)
		u.AddTask(t)
		taskID = t.ID
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return taskID, nil
}

// ModifyUserTask overwrites the supplied fields of one task. An empty update
// is legal and still saves the aggregate.
func (s *UserService) ModifyUserTask(ctx context.Context, userID, taskID uuid.UUID, upd task.Update) error {
	s.logger.InfoContext(ctx, "updating task", logging.UserID(userID), logging.TaskID(taskID))

	return s.mutate(ctx, "ModifyUserTask", userID, func(u *user.User) error {
		return u.UpdateTask(taskID, upd)
	}, logging.TaskID(taskID))
}

// ChangeTaskStatus applies one lifecycle command at the service clock's now,
// recorded in UTC whatever the clock's zone.
func (s *UserService) ChangeTaskStatus(ctx context.Context, userID, taskID uuid.UUID, cmd task.Command) error {
	s.logger.InfoContext(ctx, "changing task status",
		logging.UserID(userID),
		logging.TaskID(taskID),
		logging.Command(cmd.String()),
	)

	err := s.mutate(ctx, "ChangeTaskStatus", userID, func(u *user.User) error {
		at := s.now().UTC()
		switch cmd {
		case task.CommandStart:
			return u.StartTask(taskID, at)
		case task.CommandPause:
			return u.PauseTask(taskID, at)
		case task.CommandResume:
			return u.ResumeTask(taskID, at)
		case task.CommandComplete:
			return u.CompleteTask(taskID, at)
		default:
			return &domain.ValidationError{Fields: map[string]string{
				"command": fmt.Sprintf("unknown command %q", cmd),
			}}
		}
	}, logging.TaskID(taskID), logging.Command(cmd.String()))

	s.recordTransition(ctx, cmd, err)
	return err
}

// mutate loads the user under its lock, applies fn and saves the result.
// Nothing is saved when fn fails.
func (s *UserService) mutate(
	ctx context.Context, op string, userID uuid.UUID, fn func(*user.User) error, attrs ...slog.Attr,
) error {
	ctx, span := s.startSpan(ctx, "UserService."+op, userID)
	defer span.End()

	unlock := s.locks.Lock(userID)
	defer unlock()

	attrs = append([]slog.Attr{logging.UserID(userID)}, attrs...)

	u, found, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return s.failed(ctx, span, op, err, attrs...)
	}
	if !found {
		return s.failed(ctx, span, op, fmt.Errorf("user %s: %w", userID, user.ErrNotFound), attrs...)
	}

	if err := fn(u); err != nil {
		return s.failed(ctx, span, op, err, attrs...)
	}

	if err := s.repo.Save(ctx, u); err != nil {
		return s.failed(ctx, span, op, err, attrs...)
	}
	return nil
}

// failed logs err at a level matching its kind and marks the span.
// Caller mistakes are warnings; everything else is an error.
func (s *UserService) failed(ctx context.Context, span trace.Span, op string, err error, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, domain.Kind(err))

	level := slog.LevelError
	if errors.Is(err, domain.ErrInvalidParameter) {
		level = slog.LevelWarn
	}

	args := make([]any, 0, len(attrs)+2)
	args = append(args, logging.Operation(op))
	for _, a := range attrs {
		args = append(args, a)
	}
	args = append(args, logging.Err(err))

	s.logger.Log(ctx, level, "operation failed", args...)
	return err
}

func (s *UserService) startSpan(ctx context.Context, name string, userID uuid.UUID) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(
		attribute.String("user.id", userID.String()),
	))
}

func (s *UserService) recordTransition(ctx context.Context, cmd task.Command, err error) {
	if s.metrics == nil {
		return
	}
	result := telemetry.ResultSuccess
	if err != nil {
		result = telemetry.ResultFailure
	}
	s.metrics.TaskTransitionTotal.Add(ctx, 1, metric.WithAttributes(
		telemetry.AttrCommand.String(cmd.String()),
		telemetry.AttrResult.String(result),
	))
}
