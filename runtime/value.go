package runtime

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/panyam/funsh/decl"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindInt Kind = iota
	KindBool
	KindString
	KindClosure
	KindShell
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "Int"
	case KindBool:
		return "Bool"
	case KindString:
		return "Str"
	case KindClosure:
		return "Closure"
	case KindShell:
		return "Shell"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the result of evaluating an expression.  Values are immutable;
// mutation happens only by replacing the value held in a Store cell.
type Value interface {
	Kind() Kind
	// String is the plain textual form, used for string coercion and
	// shell variable substitution.
	String() string
}

type Int int64

func (i Int) Kind() Kind     { return KindInt }
func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }

type Bool bool

func (b Bool) Kind() Kind     { return KindBool }
func (b Bool) String() string { return strconv.FormatBool(bool(b)) }

type Str string

func (s Str) Kind() Kind     { return KindString }
func (s Str) String() string { return string(s) }

// Closure is a function value.  Env is the environment the function was
// defined in, already extended with the function's own binding so the body
// can refer to itself.
type Closure struct {
	Name  string
	Param string
	Body  decl.Expr
	Env   *Env[Location]
}

func (c *Closure) Kind() Kind     { return KindClosure }
func (c *Closure) String() string { return fmt.Sprintf("<fun %s(%s)>", c.Name, c.Param) }

// Equal reports structural equality.  Values of different kinds are never
// equal.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Int, Bool, Str:
		return a == b
	case *Closure:
		bv := b.(*Closure)
		if av == bv {
			return true
		}
		return av.Name == bv.Name && av.Param == bv.Param &&
			reflect.DeepEqual(av.Body, bv.Body) &&
			av.Env.EqualFunc(bv.Env, func(x, y Location) bool { return x == y })
	case *ShellDescriptor:
		return av.Equal(b.(*ShellDescriptor))
	}
	return false
}

// Render gives the human readable tag-and-payload form of a value.
func Render(v Value) string {
	if v == nil {
		return "<nil>"
	}
	switch val := v.(type) {
	case Str:
		return fmt.Sprintf("%s(%q)", v.Kind(), string(val))
	case *Closure:
		return fmt.Sprintf("%s(%s %s)", v.Kind(), val.Name, val.Param)
	}
	return fmt.Sprintf("%s(%s)", v.Kind(), v.String())
}

func kindOf(v Value) string {
	if v == nil {
		return "<nil>"
	}
	return v.Kind().String()
}
