// Package logging builds slog loggers and carries them through a context.
//
// Logs always go to stderr: in MCP mode stdout belongs to the JSON-RPC stream.
//
//	logger := logging.New("info", "json", os.Stderr)
//	ctx = logging.WithLogger(ctx, logger)
//
// Services log failures with the operation and the entity ids:
//
//	logging.FromContext(ctx).ErrorContext(ctx, "task transition failed",
//	    logging.Operation("ChangeTaskStatus"),
//	    logging.UserID(userID),
//	    logging.TaskID(taskID),
//	    logging.Err(err),
//	)
//
// Inside an HTTP request the context logger already carries request_id and
// correlation_id; inside an MCP call it carries the tool name.
package logging

import (
	"context"
	"io"
	"log/slog"
)

type loggerKey struct{}

// New returns a logger writing to w. level is one of debug, info, warn or
// error in any case; anything else means info. format "text" selects the
// logfmt-style handler and every other value JSON. Debug loggers also record
// the call site. Sensitive attributes are masked before any handler sees them.
func New(level, format string, w io.Writer) *slog.Logger {
	lvl := ParseLevel(level)
	opts := &slog.HandlerOptions{
		Level:       lvl,
		AddSource:   lvl <= slog.LevelDebug,
		ReplaceAttr: newRedactAttr(),
	}

	if format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// ParseLevel maps a configured level name to a slog.Level, defaulting to
// info. Offsets such as "warn+2" are not accepted.
func ParseLevel(level string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	switch lvl {
	case slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError:
		return lvl
	}
	return slog.LevelInfo
}

// WithLogger stores logger in ctx for FromContext.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger stored by WithLogger, or slog.Default.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}
