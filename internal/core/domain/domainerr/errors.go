// Package domainerr holds the error classes shared by all domain packages.
// Domain errors wrap one of these so transports can classify them with errors.Is.
package domainerr

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
	ErrInvalid  = errors.New("invalid input")
	// ErrUnavailable marks a refusal that may succeed when retried later
	ErrUnavailable = errors.New("temporarily unavailable")
)

// NotFound returns "<what> not found".
func NotFound(what string) error { return fmt.Errorf("%s %w", what, ErrNotFound) }

// Conflict returns "<what> already exists".
func Conflict(what string) error { return fmt.Errorf("%s %w", what, ErrConflict) }

// Invalid returns "invalid input: <msg>".
func Invalid(msg string) error { return fmt.Errorf("%w: %s", ErrInvalid, msg) }

// Unavailable returns "<what> temporarily unavailable".
func Unavailable(what string) error { return fmt.Errorf("%s %w", what, ErrUnavailable) }
