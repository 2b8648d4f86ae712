package ports

import "context"

// HealthChecker is a component that can block readiness, such as the user
// store.
type HealthChecker interface {
	// Name keys the component in readiness results.
	Name() string

	// HealthCheck returns nil when the component can serve writes.
	HealthCheck(ctx context.Context) error
}

// HealthRegistry collects checkers for GET /health/ready.
type HealthRegistry interface {
	Register(checker HealthChecker)

	// CheckAll runs every checker. A nil value means healthy.
	CheckAll(ctx context.Context) map[string]error
}
