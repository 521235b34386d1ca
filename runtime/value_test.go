package runtime

import (
	"strings"
	"testing"

	"github.com/panyam/funsh/decl"
	"github.com/stretchr/testify/assert"
	"gotest.tools/v3/golden"
)

func sampleValues() []Value {
	echo := &ShellDescriptor{Type: DescCommand, Executable: "echo", Args: []string{"7"}}
	ls := &ShellDescriptor{
		Type:       DescCommand,
		Executable: "ls",
		Args:       []string{"-l"},
		Redirects:  []Redirect{{Stream: "stdout", Target: "out.txt"}},
		Pipes:      []*ShellDescriptor{{Type: DescCommand, Executable: "grep", Args: []string{"go"}}},
	}
	return []Value{
		Int(5),
		Int(-12),
		Bool(true),
		Str("hi"),
		Str(`say "x"`),
		&Closure{Name: "fact", Param: "n", Body: decl.Name("n")},
		echo,
		ls,
		&ShellDescriptor{Type: DescAnd, Left: echo, Right: ls},
		nil,
	}
}

func TestRender(t *testing.T) {
	var sb strings.Builder
	for _, v := range sampleValues() {
		sb.WriteString(Render(v))
		sb.WriteString("\n")
	}
	golden.Assert(t, sb.String(), "render.golden")
}

func TestPlainStrings(t *testing.T) {
	assert.Equal(t, "5", Int(5).String())
	assert.Equal(t, "false", Bool(false).String())
	assert.Equal(t, "hi", Str("hi").String())
	assert.Equal(t, "<fun f(x)>", (&Closure{Name: "f", Param: "x"}).String())
}

func TestEqualAcrossKinds(t *testing.T) {
	values := sampleValues()
	for i, a := range values {
		for j, b := range values {
			if i == j {
				assert.True(t, Equal(a, b), "%s should equal itself", Render(a))
			} else {
				assert.False(t, Equal(a, b), "%s vs %s", Render(a), Render(b))
			}
		}
	}
	assert.False(t, Equal(Int(1), Bool(true)))
	assert.False(t, Equal(Int(0), Bool(false)))
	assert.False(t, Equal(Str("1"), Int(1)))
}

func TestClosureEquality(t *testing.T) {
	store := NewStore()
	env := EmptyEnv[Location]().Extend("f", store.Allocate(nil))
	a := &Closure{Name: "f", Param: "x", Body: decl.Add(decl.Name("x"), decl.Int(1)), Env: env}
	b := &Closure{Name: "f", Param: "x", Body: decl.Add(decl.Name("x"), decl.Int(1)), Env: env}
	assert.True(t, Equal(a, b))

	c := &Closure{Name: "f", Param: "y", Body: a.Body, Env: env}
	assert.False(t, Equal(a, c))

	d := &Closure{Name: "f", Param: "x", Body: a.Body, Env: EmptyEnv[Location]().Extend("f", store.Allocate(nil))}
	assert.False(t, Equal(a, d), "different cells make different closures")
}

func TestKindNames(t *testing.T) {
	assert.Equal(t, "Int", KindInt.String())
	assert.Equal(t, "Str", KindString.String())
	assert.Equal(t, "Shell", KindShell.String())
	assert.Equal(t, "unknown_kind_42", Kind(42).String())
}
