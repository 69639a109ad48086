package simplf

import (
	"fmt"
	"strings"
)

type ErrorKind int

const (
	UndefinedVariable ErrorKind = iota
	TypeMismatch
	NotCallable
	ArityMismatch
	DivisionByZero
)

func (k ErrorKind) String() string {
	switch k {
	case UndefinedVariable:
		return "undefined variable"
	case TypeMismatch:
		return "type mismatch"
	case NotCallable:
		return "not callable"
	case ArityMismatch:
		return "arity mismatch"
	case DivisionByZero:
		return "division by zero"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// RuntimeError is a failure of the running script. It aborts the current
// top-level statement and everything after it.
type RuntimeError struct {
	Kind    ErrorKind
	Token   Token
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s runtime error at '%s': %s", e.Token.Loc, e.Token.Value, e.Message)
}

func newRuntimeError(kind ErrorKind, tok Token, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{
		Kind:    kind,
		Token:   tok,
		Message: fmt.Sprintf(format, args...),
	}
}

// InvariantError means the interpreter was handed a tree it should never see,
// such as a for loop that skipped desugaring. It is a bug in the host program,
// not in the script.
type InvariantError struct {
	Message string
}

func (e *InvariantError) Error() string {
	return "internal invariant violation: " + e.Message
}

type SyntaxError struct {
	Loc     *Location
	Message string

	// Incomplete is set when the error was caused by the input ending early,
	// so appending more source might fix it.
	Incomplete bool
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s syntax error: %s", e.Loc, e.Message)
}

type SyntaxErrors []*SyntaxError

func (e SyntaxErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}

	return strings.Join(msgs, "\n")
}

// Incomplete reports whether every error was caused by premature end of input.
func (e SyntaxErrors) Incomplete() bool {
	if len(e) == 0 {
		return false
	}

	for _, err := range e {
		if !err.Incomplete {
			return false
		}
	}

	return true
}
