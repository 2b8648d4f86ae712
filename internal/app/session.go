package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/go-task-tracker/internal/domain"
	"github.com/jsamuelsen11/go-task-tracker/internal/platform/logging"
	"github.com/jsamuelsen11/go-task-tracker/internal/ports"
)

// Session is the identity every MCP tool call acts on. It is created once at
// startup and never changes for the life of the process.
type Session struct {
	UserID   uuid.UUID
	UserName string
}

// Bootstrap makes sure the session user exists and returns its Session.
// The user is created on first run; later runs find the id taken and reuse
// the stored user.
func Bootstrap(ctx context.Context, svc ports.UserService, id uuid.UUID, name string, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	created, err := svc.CreateUser(ctx, name, id)
	if err == nil {
		logger.InfoContext(ctx, "session user created",
			logging.UserID(created.ID),
			slog.String("name", created.Name),
		)
		return &Session{UserID: created.ID, UserName: created.Name}, nil
	}
	if !errors.Is(err, domain.ErrInvalidParameter) {
		return nil, fmt.Errorf("creating session user: %w", err)
	}

	existing, found, getErr := svc.GetUser(ctx, id)
	if getErr != nil {
		return nil, fmt.Errorf("fetching session user: %w", getErr)
	}
	if !found {
		// The create was rejected for a reason other than a taken id.
		return nil, fmt.Errorf("creating session user: %w", err)
	}

	logger.InfoContext(ctx, "session user reused",
		logging.UserID(existing.ID),
		slog.String("name", existing.Name),
	)
	return &Session{UserID: existing.ID, UserName: existing.Name}, nil
}
