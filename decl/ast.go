package decl

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidLiteral is returned when a literal is built from a value that is
// neither an integer nor a boolean.
var ErrInvalidLiteral = errors.New("invalid literal")

// --- Interfaces ---

// Node represents any node in the Abstract Syntax Tree.
type Node interface {
	String() string // String representation for debugging/printing
	PrettyPrint(cp CodePrinter)
}

// Expr represents an expression node (evaluates to a value).
// The set of expressions is closed: only types in this package implement it.
type Expr interface {
	Node
	exprNode() // Marker method for expressions
}

// ShellExpr is the subset of expressions allowed as operands of shell
// composition nodes (pipes, redirects and conditional chains).
type ShellExpr interface {
	Expr
	shellNode()
}

// --- Base Struct ---

// ExprBase is embedded by every expression node.
type ExprBase struct{}

func (e *ExprBase) exprNode() {}

// ShellBase is embedded by the shell expression nodes.
type ShellBase struct {
	ExprBase
}

func (s *ShellBase) shellNode() {}

// --- Literal construction ---

// NewLiteral creates an integer or boolean literal.  Any Go integer type is
// accepted and converted to int64; unsigned values above math.MaxInt64 are
// rejected.  Other types fail with ErrInvalidLiteral.
func NewLiteral(value any) (*Literal, error) {
	switch v := value.(type) {
	case bool:
		return &Literal{Value: v}, nil
	case int:
		return &Literal{Value: int64(v)}, nil
	case int64:
		return &Literal{Value: v}, nil
	case int32:
		return &Literal{Value: int64(v)}, nil
	case int16:
		return &Literal{Value: int64(v)}, nil
	case int8:
		return &Literal{Value: int64(v)}, nil
	case uint8:
		return &Literal{Value: int64(v)}, nil
	case uint16:
		return &Literal{Value: int64(v)}, nil
	case uint32:
		return &Literal{Value: int64(v)}, nil
	case uint:
		return unsignedLiteral(uint64(v))
	case uint64:
		return unsignedLiteral(v)
	default:
		return nil, fmt.Errorf("%w: literals can only take int or bool, got %T", ErrInvalidLiteral, value)
	}
}

func unsignedLiteral(v uint64) (*Literal, error) {
	if v > math.MaxInt64 {
		return nil, fmt.Errorf("%w: %d does not fit in an int64", ErrInvalidLiteral, v)
	}
	return &Literal{Value: int64(v)}, nil
}

// Lit is like NewLiteral but panics on a disallowed value type.
// Building a malformed tree is a programming error, not an evaluation error.
func Lit(value any) *Literal {
	l, err := NewLiteral(value)
	if err != nil {
		panic(err)
	}
	return l
}

// Int creates an integer literal.
func Int(n int64) *Literal { return &Literal{Value: n} }

// Bool creates a boolean literal.
func Bool(b bool) *Literal { return &Literal{Value: b} }

// Str creates a string literal.
func Str(s string) *StringLiteral { return &StringLiteral{Value: s} }
