package runtime

import (
	"fmt"
	"strings"
)

// Env[T] is an immutable, persistent chain of name bindings, newest first.
// The nil *Env[T] is the empty environment, so all methods accept a nil
// receiver.  Extending shares the tail, which lets closures capture an
// environment without copying it.
//
// The evaluator uses Env[Location] (names to store cells); Env[Value] gives
// the simpler variant that binds names directly to values.
type Env[T any] struct {
	name  string
	value T
	outer *Env[T]
}

// EmptyEnv returns the environment with no bindings.
func EmptyEnv[T any]() *Env[T] {
	return nil
}

// Extend returns a new environment binding name to value in front of e.
// e itself is unchanged.
func (e *Env[T]) Extend(name string, value T) *Env[T] {
	return &Env[T]{name: name, value: value, outer: e}
}

// Lookup returns the innermost binding for name.
func (e *Env[T]) Lookup(name string) (out T, found bool) {
	for curr := e; curr != nil; curr = curr.outer {
		if curr.name == name {
			return curr.value, true
		}
	}
	return
}

// Len returns the number of bindings, shadowed ones included.
func (e *Env[T]) Len() (n int) {
	for curr := e; curr != nil; curr = curr.outer {
		n++
	}
	return
}

// Names returns the visible names, innermost first.
func (e *Env[T]) Names() []string {
	seen := map[string]bool{}
	var names []string
	for curr := e; curr != nil; curr = curr.outer {
		if !seen[curr.name] {
			seen[curr.name] = true
			names = append(names, curr.name)
		}
	}
	return names
}

// EqualFunc reports whether both chains hold the same names in the same order
// with values equal under eq.
func (e *Env[T]) EqualFunc(another *Env[T], eq func(a, b T) bool) bool {
	a, b := e, another
	for a != nil && b != nil {
		if a == b {
			return true
		}
		if a.name != b.name || !eq(a.value, b.value) {
			return false
		}
		a, b = a.outer, b.outer
	}
	return a == nil && b == nil
}

// String representation for debugging
func (e *Env[T]) String() string {
	var parts []string
	for curr := e; curr != nil; curr = curr.outer {
		parts = append(parts, fmt.Sprintf("%s=%v", curr.name, curr.value))
	}
	return fmt.Sprintf("Env{%s}", strings.Join(parts, ", "))
}
