// Package jsonfile implements [ports.UserRepository] on a single JSON file.
//
// The whole dataset is read once at construction and held in memory. Every
// Save rewrites the whole file through a temp file and rename, guarded by a
// circuit breaker so a broken disk fails fast instead of stalling callers.
//
// The file is an object keyed by user id:
//
//	{
//	  "0b2e1f84-93d8-4792-b2e1-6fbbfb376d74": {
//	    "id": "0b2e1f84-93d8-4792-b2e1-6fbbfb376d74",
//	    "name": "Test user",
//	    "tasks": [...]
//	  }
//	}
package jsonfile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen11/go-task-tracker/internal/domain"
	"github.com/jsamuelsen11/go-task-tracker/internal/domain/user"
	"github.com/jsamuelsen11/go-task-tracker/internal/platform/config"
	"github.com/jsamuelsen11/go-task-tracker/internal/platform/logging"
	"github.com/jsamuelsen11/go-task-tracker/internal/platform/telemetry"
	"github.com/jsamuelsen11/go-task-tracker/internal/ports"
)

// Name identifies the store in health results and breaker logs.
const Name = "user-store"

// Compile-time interface checks.
var (
	_ ports.UserRepository = (*Store)(nil)
	_ ports.HealthChecker  = (*Store)(nil)
)

// Store is a file-backed user repository. Safe for concurrent use.
type Store struct {
	path    string
	swallow bool

	mu    sync.RWMutex
	users map[uuid.UUID]*user.User

	// writeMu serializes snapshot + write + commit so files land in order.
	writeMu sync.Mutex
	breaker *gobreaker.CircuitBreaker[struct{}]

	metrics *telemetry.Metrics
	tracer  trace.Tracer
	logger  *slog.Logger
}

// New opens the store at cfg.Path and loads its contents. A missing file is
// an empty store. An undecodable file is moved aside to "<path>.corrupt" and
// the store starts empty. If metrics is nil, metric recording is skipped.
func New(cfg *config.StorageConfig, metrics *telemetry.Metrics, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Store{
		path:    cfg.Path,
		swallow: cfg.SwallowWriteErrors,
		users:   make(map[uuid.UUID]*user.User),
		metrics: metrics,
		tracer:  otel.Tracer(telemetry.InstrumentationScope),
		logger:  logger,
	}

	s.breaker = gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        Name,
		MaxRequests: toUint32(cfg.CircuitBreaker.HalfOpenLimit),
		Timeout:     cfg.CircuitBreaker.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return int(counts.ConsecutiveFailures) >= cfg.CircuitBreaker.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})

	s.load()
	return s
}

// GetByID returns a copy of the stored user. An unknown id is reported as
// found == false, never as an error.
func (s *Store) GetByID(_ context.Context, id uuid.UUID) (*user.User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, false, nil
	}
	return u.Clone(), true, nil
}

// Save inserts or replaces u and rewrites the file.
//
// When the write fails the in-memory copy keeps its previous state and the
// error wraps domain.ErrExternalService. With swallow_write_errors enabled
// the failure is logged, the in-memory copy is updated anyway and Save
// returns nil.
func (s *Store) Save(ctx context.Context, u *user.User) error {
	ctx, span := s.tracer.Start(ctx, "jsonfile.Save", trace.WithAttributes(
		attribute.String("user.id", u.ID.String()),
	))
	defer span.End()

	stored := u.Clone()

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	data, err := s.snapshot(stored)
	if err != nil {
		return s.fail(ctx, span, stored, err)
	}

	start := time.Now()
	_, err = s.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, writeAtomic(s.path, data)
	})
	s.recordWrite(ctx, start, err)
	if err != nil {
		return s.fail(ctx, span, stored, err)
	}

	s.commit(stored)
	return nil
}

// Name returns the health check identifier.
func (s *Store) Name() string {
	return Name
}

// HealthCheck reports write availability from the breaker state. No disk
// access is made.
func (s *Store) HealthCheck(_ context.Context) error {
	switch state := s.breaker.State(); state {
	case gobreaker.StateClosed:
		return nil
	case gobreaker.StateHalfOpen:
		return fmt.Errorf("%s: circuit breaker half-open, probing recovery", Name)
	case gobreaker.StateOpen:
		return fmt.Errorf("%s: circuit breaker open, writes are failing", Name)
	default:
		return fmt.Errorf("%s: circuit breaker in unknown state %s", Name, state)
	}
}

// Len returns the number of stored users.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

func (s *Store) snapshot(pending *user.User) ([]byte, error) {
	s.mu.RLock()
	doc := make(map[string]userDTO, len(s.users)+1)
	for id, u := range s.users {
		doc[id.String()] = toUserDTO(u)
	}
	s.mu.RUnlock()

	doc[pending.ID.String()] = toUserDTO(pending)
	return encodeDocument(doc)
}

func (s *Store) commit(u *user.User) {
	s.mu.Lock()
	s.users[u.ID] = u
	s.mu.Unlock()
}

func (s *Store) fail(ctx context.Context, span trace.Span, u *user.User, err error) error {
	span.RecordError(err)

	if s.swallow {
		logging.FromContext(ctx).ErrorContext(ctx, "user store write failed, keeping change in memory only",
			logging.Operation("Save"),
			logging.UserID(u.ID),
			slog.String("path", s.path),
			logging.Err(err),
		)
		s.commit(u)
		return nil
	}

	span.SetStatus(codes.Error, err.Error())
	return fmt.Errorf("%w: saving user %s: %w", domain.ErrExternalService, u.ID, err)
}

func (s *Store) recordWrite(ctx context.Context, start time.Time, err error) {
	if s.metrics == nil {
		return
	}
	result := telemetry.ResultSuccess
	if err != nil {
		result = telemetry.ResultFailure
	}
	s.metrics.StorageWriteDuration.Record(ctx, time.Since(start).Seconds(),
		metric.WithAttributes(telemetry.AttrResult.String(result)),
	)
}

func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Info("user store file not found, starting empty", slog.String("path", s.path))
		return
	}
	if err != nil {
		s.logger.Warn("user store file unreadable, starting empty",
			slog.String("path", s.path),
			logging.Err(err),
		)
		return
	}

	if len(bytes.TrimSpace(data)) == 0 {
		s.logger.Info("user store file empty, starting empty", slog.String("path", s.path))
		return
	}

	users, err := decodeUsers(data)
	if err != nil {
		backup := s.path + ".corrupt"
		if renameErr := os.Rename(s.path, backup); renameErr != nil {
			backup = ""
		}
		s.logger.Warn("user store file undecodable, starting empty",
			slog.String("path", s.path),
			slog.String("backup", backup),
			logging.Err(err),
		)
		return
	}

	s.users = users
	s.logger.Info("user store loaded", slog.String("path", s.path), slog.Int("users", len(users)))
}

func decodeUsers(data []byte) (map[uuid.UUID]*user.User, error) {
	doc, err := decodeDocument(data)
	if err != nil {
		return nil, err
	}

	users := make(map[uuid.UUID]*user.User, len(doc))
	for key, dto := range doc {
		u, err := toDomainUser(dto)
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", key, err)
		}
		users[u.ID] = u
	}
	return users, nil
}

// writeAtomic replaces path with data through a temp file in the same
// directory so readers never see a partial document.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// toUint32 clamps a non-negative int into uint32 range for gobreaker.
func toUint32(v int) uint32 {
	if v <= 0 {
		return 0
	}
	if v > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}
