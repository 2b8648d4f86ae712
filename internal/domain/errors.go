package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Error taxonomy. Use errors.Is() to classify a failure at the boundaries.
var (
	// ErrInvalidParameter means a caller-supplied reference does not resolve
	// or the requested transition is illegal for the entity's current state.
	// The caller can always recover by retrying with corrected input.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrService is a business-rule violation detected in the service layer
	// that is not tied to a single bad parameter.
	ErrService = errors.New("service failure")

	// ErrExternalService means an integrated component (persistence) could
	// not complete the operation.
	ErrExternalService = errors.New("external service failure")

	// ErrNotFound is reported by adapters that must turn an "absent" result
	// into an error for their callers.
	ErrNotFound = errors.New("not found")
)

// MsgRequired is the field message used when a required value is blank.
const MsgRequired = "is required"

// ValidationError provides programmatic access to field-level validation failures.
// Use errors.Is(err, ErrInvalidParameter) for simple checks, or errors.As(err, &verr)
// to access verr.Fields for per-field error details.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	sort.Strings(parts)
	return fmt.Sprintf("%s: %s", ErrInvalidParameter.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidParameter
}

// Kind returns a short, stable label for the taxonomy class of err, suitable
// for metric attributes and tool-boundary error text.
func Kind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInvalidParameter):
		return "invalid_parameter"
	case errors.Is(err, ErrService):
		return "service_failure"
	case errors.Is(err, ErrExternalService):
		return "external_service_failure"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "internal"
	}
}
