package health_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen11/go-task-tracker/internal/platform/health"
	"github.com/jsamuelsen11/go-task-tracker/mocks"
)

var errBreakerOpen = errors.New("write breaker open")

func checker(t *testing.T, name string, err error) *mocks.MockHealthChecker {
	t.Helper()
	c := mocks.NewMockHealthChecker(t)
	c.EXPECT().Name().Return(name)
	c.EXPECT().HealthCheck(mock.Anything).Return(err)
	return c
}

func TestCheckAll(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		checks map[string]error
	}{
		{name: "no checkers", checks: map[string]error{}},
		{name: "store healthy", checks: map[string]error{"user-store": nil}},
		{name: "store breaker open", checks: map[string]error{"user-store": errBreakerOpen, "storage-dir": nil}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := health.New()
			for name, err := range tt.checks {
				r.Register(checker(t, name, err))
			}

			results := r.CheckAll(context.Background())
			if results == nil {
				t.Fatal("CheckAll returned nil map")
			}
			if len(results) != len(tt.checks) {
				t.Fatalf("len(results) = %d, want %d", len(results), len(tt.checks))
			}
			for name, want := range tt.checks {
				if got := results[name]; !errors.Is(got, want) {
					t.Errorf("results[%q] = %v, want %v", name, got, want)
				}
			}
		})
	}
}

func TestCheckAll_LaterNameWins(t *testing.T) {
	t.Parallel()

	r := health.New()
	r.Register(checker(t, "user-store", nil))
	r.Register(checker(t, "user-store", errBreakerOpen))

	results := r.CheckAll(context.Background())
	if len(results) != 1 || !errors.Is(results["user-store"], errBreakerOpen) {
		t.Errorf("results = %v, want only the later user-store failure", results)
	}
}

func TestCheckAll_PassesCallerContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := mocks.NewMockHealthChecker(t)
	c.EXPECT().Name().Return("user-store")
	c.EXPECT().HealthCheck(mock.MatchedBy(func(ctx context.Context) bool {
		return ctx.Err() != nil
	})).Return(context.Canceled)

	r := health.New()
	r.Register(c)

	if err := r.CheckAll(ctx)["user-store"]; !errors.Is(err, context.Canceled) {
		t.Errorf("user-store = %v, want context.Canceled", err)
	}
}

// blockingChecker waits for its context, like a store check stuck on a lock.
type blockingChecker struct{}

func (blockingChecker) Name() string { return "slow-store" }

func (blockingChecker) HealthCheck(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestCheckAll_CheckTimeoutBoundsEachCheck(t *testing.T) {
	t.Parallel()

	r := health.New(health.WithCheckTimeout(20 * time.Millisecond))
	r.Register(blockingChecker{})
	r.Register(checker(t, "user-store", nil))

	start := time.Now()
	results := r.CheckAll(context.Background())

	if !errors.Is(results["slow-store"], context.DeadlineExceeded) {
		t.Errorf("slow-store = %v, want context.DeadlineExceeded", results["slow-store"])
	}
	if results["user-store"] != nil {
		t.Errorf("user-store = %v, want nil after a slow neighbour", results["user-store"])
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("CheckAll took %v, want it bounded by the check timeout", elapsed)
	}
}

func TestRegistry_ConcurrentRegisterAndCheck(t *testing.T) {
	t.Parallel()

	r := health.New()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				c := mocks.NewMockHealthChecker(t)
				c.EXPECT().Name().Return("user-store").Maybe()
				c.EXPECT().HealthCheck(mock.Anything).Return(nil).Maybe()
				r.Register(c)
				return
			}
			r.CheckAll(context.Background())
		}()
	}
	wg.Wait()
}

func TestHealthy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		results map[string]error
		want    bool
	}{
		{name: "empty", results: map[string]error{}, want: true},
		{name: "all ok", results: map[string]error{"user-store": nil, "storage-dir": nil}, want: true},
		{name: "one unavailable", results: map[string]error{"user-store": errBreakerOpen, "storage-dir": nil}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := health.Healthy(tt.results); got != tt.want {
				t.Errorf("Healthy() = %v, want %v", got, tt.want)
			}
		})
	}
}
