package regex

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedExpression is returned for nil nodes or literals without
	// a predicate.
	ErrMalformedExpression = errors.New("malformed expression")

	// ErrInvalidBounds is matched by every *BoundsError.
	ErrInvalidBounds = errors.New("invalid repetition bounds")
)

// BoundsError reports a {min,max} repetition outside 0 <= min <= max, max >= 1.
type BoundsError struct {
	Min int
	Max int
}

func (e *BoundsError) Error() string {
	if e.Min < 0 || e.Max < 1 {
		return fmt.Sprintf("min must be >= 0 and max must be >= 1: %d, %d", e.Min, e.Max)
	}
	return fmt.Sprintf("min must be <= max: %d > %d", e.Min, e.Max)
}

func (e *BoundsError) Is(target error) bool {
	return target == ErrInvalidBounds
}

// CompileError wraps errors found while building an automaton.
type CompileError struct {
	Err error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("failed to compile pattern: %v", e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// ParseError reports a malformed textual pattern.
type ParseError struct {
	Offset  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parser error at %d: %s: %v", e.Offset, e.Message, e.Err)
	}
	return fmt.Sprintf("parser error at %d: %s", e.Offset, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func newParseError(i int, msg string, inner error) *ParseError {
	return &ParseError{Offset: i, Message: msg, Err: inner}
}
