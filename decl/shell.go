package decl

import "fmt"

// ShellCommand is a raw command line.  Whitespace separated tokens starting
// with `$` are substituted from the environment when evaluated.
type ShellCommand struct {
	ShellBase
	Command string
}

func (c *ShellCommand) String() string             { return fmt.Sprintf("`%s`", c.Command) }
func (c *ShellCommand) PrettyPrint(cp CodePrinter) { cp.Print(c.String()) }

// ShellPipe connects the output of Left to the input of Right.
type ShellPipe struct {
	ShellBase
	Left  ShellExpr
	Right ShellExpr
}

func (p *ShellPipe) String() string             { return fmt.Sprintf("(%s | %s)", p.Left, p.Right) }
func (p *ShellPipe) PrettyPrint(cp CodePrinter) { cp.Print(p.String()) }

// ShellRedirect attaches Stream (stdin, stdout or stderr) of Command to Target.
type ShellRedirect struct {
	ShellBase
	Command ShellExpr
	Stream  string
	Target  string
}

func (r *ShellRedirect) String() string {
	return fmt.Sprintf("(%s %s> %s)", r.Command, r.Stream, r.Target)
}
func (r *ShellRedirect) PrettyPrint(cp CodePrinter) { cp.Print(r.String()) }

type ChainOp string

const (
	ChainAnd ChainOp = "&&"
	ChainOr  ChainOp = "||"
)

// ShellChain runs Right depending on the outcome of Left.
type ShellChain struct {
	ShellBase
	Op    ChainOp
	Left  ShellExpr
	Right ShellExpr
}

func (c *ShellChain) String() string             { return fmt.Sprintf("(%s %s %s)", c.Left, c.Op, c.Right) }
func (c *ShellChain) PrettyPrint(cp CodePrinter) { cp.Print(c.String()) }

func Cmd(command string) *ShellCommand { return &ShellCommand{Command: command} }
func Pipe(l, r ShellExpr) *ShellPipe   { return &ShellPipe{Left: l, Right: r} }
func Redirect(command ShellExpr, stream, target string) *ShellRedirect {
	return &ShellRedirect{Command: command, Stream: stream, Target: target}
}
func ShellAnd(l, r ShellExpr) *ShellChain { return &ShellChain{Op: ChainAnd, Left: l, Right: r} }
func ShellOr(l, r ShellExpr) *ShellChain  { return &ShellChain{Op: ChainOr, Left: l, Right: r} }
