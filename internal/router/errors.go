package router

import (
	"errors"
	"fmt"
)

var (
	ErrConflict       = errors.New("route conflict")
	ErrSealed         = errors.New("route table is sealed")
	ErrInvalidPattern = errors.New("invalid route pattern")
	ErrUnknownMethod  = errors.New("unknown HTTP method")
	ErrNilHandler     = errors.New("route has no handler")
)

// ConflictError is returned by Register when the same method and pattern
// are already registered. The earlier route stays active.
type ConflictError struct {
	Method   Method
	Pattern  string
	Existing string
}

func (e *ConflictError) Error() string {
	if e.Existing != "" {
		return fmt.Sprintf("%s %s already registered by route %q", e.Method, e.Pattern, e.Existing)
	}
	return fmt.Sprintf("%s %s already registered", e.Method, e.Pattern)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}
