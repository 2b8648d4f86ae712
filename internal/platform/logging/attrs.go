package logging

import (
	"log/slog"

	"github.com/google/uuid"
)

// Attribute keys shared by every layer so log queries stay stable.
const (
	KeyOperation = "operation"
	KeyUserID    = "user_id"
	KeyTaskID    = "task_id"
	KeyCommand   = "command"
	KeyTool      = "tool"
	KeyError     = "error"
)

// Operation names the service method or handler that produced the record.
func Operation(name string) slog.Attr {
	return slog.String(KeyOperation, name)
}

// UserID tags a record with the owning user.
func UserID(id uuid.UUID) slog.Attr {
	return slog.String(KeyUserID, id.String())
}

// TaskID tags a record with the task it concerns.
func TaskID(id uuid.UUID) slog.Attr {
	return slog.String(KeyTaskID, id.String())
}

// Command tags a record with a lifecycle command such as "pause".
func Command(c string) slog.Attr {
	return slog.String(KeyCommand, c)
}

// Tool tags a record with the MCP tool name.
func Tool(name string) slog.Attr {
	return slog.String(KeyTool, name)
}

// Err records the full error chain.
func Err(err error) slog.Attr {
	return slog.Any(KeyError, err)
}
