package engine

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is matching.
var (
	ErrConfiguration   = errors.New("engine: configuration error")
	ErrInvariant       = errors.New("engine: invariant violation")
	ErrCorruptSnapshot = errors.New("engine: corrupt snapshot")
)

// ConfigurationError reports malformed input rejected at decode or
// construction time (unknown bonus kinds, empty level lists, bad commands).
type ConfigurationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("engine: invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("engine: invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// Is makes ConfigurationError match ErrConfiguration.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// InvariantViolation reports an operation refused because applying it would
// leave the state undefined.
type InvariantViolation struct {
	Op     string
	Reason string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("engine: %s refused: %s", e.Op, e.Reason)
}

// Is makes InvariantViolation match ErrInvariant.
func (e *InvariantViolation) Is(target error) bool {
	return target == ErrInvariant
}
