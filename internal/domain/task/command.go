package task

import (
	"fmt"
	"strings"

	"github.com/jsamuelsen11/go-task-tracker/internal/domain"
)

// Command is a requested lifecycle transition for a task.
type Command string

const (
	CommandStart    Command = "start"
	CommandPause    Command = "pause"
	CommandResume   Command = "resume"
	CommandComplete Command = "complete"
)

// Commands lists every command in lifecycle order.
var Commands = []Command{CommandStart, CommandPause, CommandResume, CommandComplete}

// IsValid returns true if the command is one of the defined constants.
func (c Command) IsValid() bool {
	switch c {
	case CommandStart, CommandPause, CommandResume, CommandComplete:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (c Command) String() string {
	return string(c)
}

// ParseCommand converts a case-insensitive command name into a Command.
// Unknown names yield a *domain.ValidationError for the "command" field.
func ParseCommand(s string) (Command, error) {
	c := Command(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", &domain.ValidationError{
			Fields: map[string]string{"command": fmt.Sprintf("invalid: %q", s)},
		}
	}
	return c, nil
}
