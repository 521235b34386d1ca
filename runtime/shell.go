package runtime

import (
	"fmt"
	"slices"
	"strings"

	"github.com/panyam/funsh/decl"
	gfn "github.com/panyam/goutils/fn"
)

// DescriptorType tags what a ShellDescriptor describes.
type DescriptorType string

const (
	DescCommand DescriptorType = "command"
	DescAnd     DescriptorType = "&&"
	DescOr      DescriptorType = "||"
)

// Streams a redirect may name.
var validStreams = []string{"stdin", "stdout", "stderr"}

type Redirect struct {
	Stream string `json:"stream"`
	Target string `json:"target"`
}

func (r Redirect) String() string { return fmt.Sprintf("%s>%s", r.Stream, r.Target) }

// ShellDescriptor is a structural description of a command line.  It is
// data only: nothing in this package runs it.
//
// A command descriptor has an Executable, Args, Redirects and the commands
// piped after it.  An && or || descriptor holds its two operands in Left and
// Right.
type ShellDescriptor struct {
	Type       DescriptorType     `json:"type"`
	Executable string             `json:"executable,omitempty"`
	Args       []string           `json:"args,omitempty"`
	Redirects  []Redirect         `json:"redirects,omitempty"`
	Pipes      []*ShellDescriptor `json:"pipes,omitempty"`
	Left       *ShellDescriptor   `json:"left,omitempty"`
	Right      *ShellDescriptor   `json:"right,omitempty"`
}

func (d *ShellDescriptor) Kind() Kind { return KindShell }

func (d *ShellDescriptor) IsCommand() bool { return d.Type == DescCommand }

func (d *ShellDescriptor) String() string {
	if !d.IsCommand() {
		return fmt.Sprintf("(%s %s %s)", d.Left, d.Type, d.Right)
	}
	words := append([]string{d.Executable}, d.Args...)
	words = append(words, gfn.Map(d.Redirects, func(r Redirect) string { return r.String() })...)
	out := strings.Join(words, " ")
	for _, p := range d.Pipes {
		out += " | " + p.String()
	}
	return out
}

// Equal compares two descriptors structurally.  Nil and empty lists are
// treated alike.
func (d *ShellDescriptor) Equal(another *ShellDescriptor) bool {
	if d == nil || another == nil {
		return d == another
	}
	return d.Type == another.Type &&
		d.Executable == another.Executable &&
		slices.Equal(d.Args, another.Args) &&
		slices.Equal(d.Redirects, another.Redirects) &&
		slices.EqualFunc(d.Pipes, another.Pipes, (*ShellDescriptor).Equal) &&
		d.Left.Equal(another.Left) &&
		d.Right.Equal(another.Right)
}

func (d *ShellDescriptor) withPipe(next *ShellDescriptor) *ShellDescriptor {
	out := *d
	out.Pipes = append(slices.Clone(d.Pipes), next)
	return &out
}

func (d *ShellDescriptor) withRedirect(r Redirect) *ShellDescriptor {
	out := *d
	out.Redirects = append(slices.Clone(d.Redirects), r)
	return &out
}

// Splits the command on whitespace and substitutes `$name` tokens with the
// plain string form of the bound value.
func (s *SimpleEval) evalShellCommand(c *decl.ShellCommand, env *Env[Location], store *Store) (Value, error) {
	var words []string
	for _, tok := range strings.Fields(c.Command) {
		if !strings.HasPrefix(tok, "$") {
			words = append(words, tok)
			continue
		}
		name := tok[1:]
		loc, ok := env.Lookup(name)
		if !ok {
			return nil, evalErrorf(ErrUnboundVariable, c, "%s in %q", name, c.Command)
		}
		words = append(words, s.load(store, loc).String())
	}
	if len(words) == 0 {
		return nil, evalErrorf(ErrEmptyCommand, c, "%q has no tokens", c.Command)
	}
	desc := &ShellDescriptor{
		Type:       DescCommand,
		Executable: words[0],
		Args:       words[1:],
	}
	Debug("shell: built command %s", desc)
	return desc, nil
}

func (s *SimpleEval) evalShellPipe(p *decl.ShellPipe, env *Env[Location], store *Store) (Value, error) {
	left, err := s.Eval(p.Left, env, store)
	if err != nil {
		return nil, err
	}
	right, err := s.Eval(p.Right, env, store)
	if err != nil {
		return nil, err
	}
	l, ok := left.(*ShellDescriptor)
	if !ok || !l.IsCommand() {
		return nil, evalErrorf(ErrInvalidPipeOperand, p, "left side of pipe must be a command, got %s", Render(left))
	}
	r, ok := right.(*ShellDescriptor)
	if !ok || !r.IsCommand() {
		return nil, evalErrorf(ErrInvalidPipeOperand, p, "right side of pipe must be a command, got %s", Render(right))
	}
	return l.withPipe(r), nil
}

func (s *SimpleEval) evalShellRedirect(r *decl.ShellRedirect, env *Env[Location], store *Store) (Value, error) {
	if !slices.Contains(validStreams, r.Stream) {
		return nil, evalErrorf(ErrInvalidStream, r, "%q (expected one of %s)", r.Stream, strings.Join(validStreams, ", "))
	}
	val, err := s.Eval(r.Command, env, store)
	if err != nil {
		return nil, err
	}
	cmd, ok := val.(*ShellDescriptor)
	if !ok || !cmd.IsCommand() {
		return nil, evalErrorf(ErrInvalidOperand, r, "redirect needs a command, got %s", Render(val))
	}
	return cmd.withRedirect(Redirect{Stream: r.Stream, Target: r.Target}), nil
}

func (s *SimpleEval) evalShellChain(c *decl.ShellChain, env *Env[Location], store *Store) (Value, error) {
	left, err := s.Eval(c.Left, env, store)
	if err != nil {
		return nil, err
	}
	right, err := s.Eval(c.Right, env, store)
	if err != nil {
		return nil, err
	}
	l, lok := left.(*ShellDescriptor)
	r, rok := right.(*ShellDescriptor)
	if !lok || !rok {
		return nil, evalErrorf(ErrInvalidOperand, c, "%s needs two shell descriptors, got %s and %s", c.Op, Render(left), Render(right))
	}
	typ := DescAnd
	if c.Op == decl.ChainOr {
		typ = DescOr
	}
	return &ShellDescriptor{Type: typ, Left: l, Right: r}, nil
}
