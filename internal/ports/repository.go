package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/go-task-tracker/internal/domain/user"
)

// UserRepository persists whole User aggregates keyed by user id.
// Implemented by storage adapters; called only by the application layer.
type UserRepository interface {
	// Save stores the full aggregate, replacing any previous version.
	// Failures of the storage medium wrap domain.ErrExternalService.
	Save(ctx context.Context, u *user.User) error

	// GetByID returns the aggregate for id. An unknown id is reported as
	// found == false with a nil error; absence is not a failure.
	// The returned aggregate is the caller's own copy.
	GetByID(ctx context.Context, id uuid.UUID) (u *user.User, found bool, err error)
}
