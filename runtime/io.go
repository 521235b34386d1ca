package runtime

import "github.com/panyam/funsh/decl"

// Input supplies raw lines of text to read() expressions.  ReadLine blocks
// until a line is available.
type Input interface {
	ReadLine() (string, error)
}

// Display receives the values passed to show() expressions.
type Display interface {
	Show(v Value)
}

// Reporter receives the driver's transcript of a run.
type Reporter interface {
	Running(expr decl.Expr)
	Result(v Value)
	Failure(err error)
}

// IO bundles the collaborators a Runtime talks to.
type IO interface {
	Input
	Display
	Reporter
}
