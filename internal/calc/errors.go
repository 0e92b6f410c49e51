// Package calc implements the wire-sizing engine: current, conductor
// selection, voltage drop, conduit fill and demand load. Every function is a
// pure computation over the nec tables.
package calc

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is checks.
var (
	ErrInvalidInput             = errors.New("invalid input")
	ErrNoSizeFound              = errors.New("no size found")
	ErrUnsupportedConfiguration = errors.New("unsupported configuration")
)

// InvalidInputError reports an out-of-range or malformed input field.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }

// NoSizeFoundError reports a requirement beyond the largest tabulated entry.
type NoSizeFoundError struct {
	Amps   float64
	Detail string
}

func (e *NoSizeFoundError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("no size found for %.2f A: %s", e.Amps, e.Detail)
	}
	return fmt.Sprintf("no size found for %.2f A", e.Amps)
}

func (e *NoSizeFoundError) Is(target error) bool { return target == ErrNoSizeFound }

// UnsupportedConfigurationError reports a combination the tables do not cover.
type UnsupportedConfigurationError struct {
	What string
}

func (e *UnsupportedConfigurationError) Error() string {
	return "unsupported configuration: " + e.What
}

func (e *UnsupportedConfigurationError) Is(target error) bool {
	return target == ErrUnsupportedConfiguration
}

func invalid(field, format string, args ...any) error {
	return &InvalidInputError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func unsupported(format string, args ...any) error {
	return &UnsupportedConfigurationError{What: fmt.Sprintf(format, args...)}
}
