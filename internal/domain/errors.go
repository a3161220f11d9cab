package domain

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error kinds. Concrete errors below match them through errors.Is.
var (
	ErrInvalidOperation = errors.New("invalid operation")
	ErrDeadlineExceeded = errors.New("capture deadline exceeded")
	ErrInvalidFormat    = errors.New("invalid format")
	ErrInvalidCode      = errors.New("invalid verification code")
)

// InvalidOperationError reports a transition attempted from a status or stage
// that does not allow it.
type InvalidOperationError struct {
	Op   string
	From string
}

func (e *InvalidOperationError) Error() string {
	return fmt.Sprintf("invalid operation: cannot %s from %s", e.Op, e.From)
}

func (e *InvalidOperationError) Is(target error) bool { return target == ErrInvalidOperation }

// DeadlineExceededError carries the payment method's deadline so callers can tell the user about it.
type DeadlineExceededError struct {
	Days int
}

func (e *DeadlineExceededError) Error() string {
	return fmt.Sprintf("capture deadline exceeded: should be captured within %d days", e.Days)
}

func (e *DeadlineExceededError) Is(target error) bool { return target == ErrDeadlineExceeded }

// LengthError is the format error returned by the bounded string constructors.
type LengthError struct {
	Min, Max int
	Got      int
}

func (e *LengthError) Error() string {
	switch {
	case e.Min == e.Max:
		return fmt.Sprintf("string expected length %d characters, got %d", e.Min, e.Got)
	case e.Got < e.Min:
		return fmt.Sprintf("string must have at least %d characters, got %d", e.Min, e.Got)
	default:
		return fmt.Sprintf("string exceeds maximum length %d characters, got %d", e.Max, e.Got)
	}
}

func (e *LengthError) Is(target error) bool { return target == ErrInvalidFormat }

// UnknownVariantError reports a value outside one of the closed sets.
type UnknownVariantError struct {
	Kind  string
	Value string
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Kind, e.Value)
}

func (e *UnknownVariantError) Is(target error) bool { return target == ErrInvalidFormat }
