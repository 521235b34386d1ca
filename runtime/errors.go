package runtime

import (
	"errors"
	"fmt"

	"github.com/panyam/funsh/decl"
)

var (
	ErrTypeMismatch       = errors.New("type mismatch")
	ErrDivisionByZero     = errors.New("division by zero")
	ErrUnboundVariable    = errors.New("unbound variable")
	ErrAssignToFunction   = errors.New("cannot assign to function")
	ErrNotAFunction       = errors.New("application of non-function")
	ErrInputNotInteger    = errors.New("input was not an integer")
	ErrInvalidStream      = errors.New("invalid stream")
	ErrInvalidPipeOperand = errors.New("invalid pipe operand")
	ErrInvalidOperand     = errors.New("invalid shell operand")
	ErrEmptyCommand       = errors.New("empty command")
	ErrIntegerOverflow    = errors.New("integer overflow")

	// ErrOutOfRange signals a store access at a location that was never
	// allocated.  It is an internal invariant breach and is raised as a panic
	// by the evaluator rather than returned as an EvalError.
	ErrOutOfRange = errors.New("store location out of range")
)

// EvalError is the single error type produced by evaluation.  Kind is one of
// the sentinel errors above so callers can use errors.Is on the kind.
type EvalError struct {
	Kind  error
	Node  decl.Expr
	Msg   string
	Cause error
}

func (e *EvalError) Error() string {
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Unwrap exposes both the kind and the underlying cause (if any).
func (e *EvalError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

func evalErrorf(kind error, node decl.Expr, format string, args ...any) *EvalError {
	return &EvalError{Kind: kind, Node: node, Msg: fmt.Sprintf(format, args...)}
}

// ensureNoErr panics on err.  Used where a failure means the evaluator broke
// one of its own invariants.
func ensureNoErr(err error) {
	if err != nil {
		panic(err)
	}
}
