package logic

import (
	"fmt"
)

// TokenizeError reports an argument that could not be read or built.
type TokenizeError struct {
	Offset  int
	Message string
	Err     error
}

func (e *TokenizeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("tokenize error at %d: %s: %v", e.Offset, e.Message, e.Err)
	}
	return fmt.Sprintf("tokenize error at %d: %s", e.Offset, e.Message)
}

func (e *TokenizeError) Unwrap() error {
	return e.Err
}

// CompileError reports tokens that do not form a valid expression.
type CompileError struct {
	Offset  int
	Message string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile error at %d: %s", e.Offset, e.Message)
}
