package runtime

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/panyam/funsh/decl"
	"golang.org/x/text/unicode/norm"
)

// A simple tree walking evaluator.  The environment and store are passed
// explicitly through every call; the evaluator itself only holds its
// collaborators and bookkeeping.
//
// Evaluation recurses once per tree level and does not eliminate tail calls,
// so very deep recursion in the interpreted program grows the Go stack.
type SimpleEval struct {
	Input   Input
	Display Display
	Tracer  *ExecutionTracer
	steps   int
}

func NewSimpleEval(in Input, out Display) *SimpleEval {
	return &SimpleEval{Input: in, Display: out}
}

// Steps returns the number of nodes evaluated so far.
func (s *SimpleEval) Steps() int {
	return s.steps
}

// Evaluate runs expr against an empty environment and a fresh store.
func (s *SimpleEval) Evaluate(expr decl.Expr) (Value, error) {
	return s.Eval(expr, EmptyEnv[Location](), NewStore())
}

// The main Eval loop of an expression
func (s *SimpleEval) Eval(node decl.Expr, env *Env[Location], store *Store) (Value, error) {
	s.steps++
	switch n := node.(type) {
	case *decl.Literal:
		return s.evalLiteral(n)
	case *decl.StringLiteral:
		return Str(n.Value), nil
	case *decl.ArithExpr:
		return s.evalArithExpr(n, env, store)
	case *decl.NegExpr:
		return s.evalNegExpr(n, env, store)
	case *decl.LogicExpr:
		return s.evalLogicExpr(n, env, store)
	case *decl.NotExpr:
		return s.evalNotExpr(n, env, store)
	case *decl.CompareExpr:
		return s.evalCompareExpr(n, env, store)
	case *decl.IfExpr:
		return s.evalIfExpr(n, env, store)
	case *decl.IfNonZeroExpr:
		return s.evalIfNonZeroExpr(n, env, store)
	case *decl.LetExpr:
		return s.evalLetExpr(n, env, store)
	case *decl.NameExpr:
		return s.evalNameExpr(n, env, store)
	case *decl.AssignExpr:
		return s.evalAssignExpr(n, env, store)
	case *decl.SeqExpr:
		if _, err := s.Eval(n.First, env, store); err != nil {
			return nil, err
		}
		return s.Eval(n.Second, env, store)
	case *decl.ShowExpr:
		return s.evalShowExpr(n, env, store)
	case *decl.ReadExpr:
		return s.evalReadExpr(n)
	case *decl.LetFunExpr:
		return s.evalLetFunExpr(n, env, store)
	case *decl.ApplyExpr:
		return s.evalApplyExpr(n, env, store)

	// --- Shell Nodes ---
	case *decl.ShellCommand:
		return s.evalShellCommand(n, env, store)
	case *decl.ShellPipe:
		return s.evalShellPipe(n, env, store)
	case *decl.ShellRedirect:
		return s.evalShellRedirect(n, env, store)
	case *decl.ShellChain:
		return s.evalShellChain(n, env, store)
	default:
		panic(fmt.Errorf("Eval not implemented for node type %T", node))
	}
}

// load reads a cell the environment points at.  A dangling location means
// the environment and store disagree, which is a bug in the evaluator.
func (s *SimpleEval) load(store *Store, loc Location) Value {
	v, err := store.Read(loc)
	ensureNoErr(err)
	return v
}

func (s *SimpleEval) evalLiteral(l *decl.Literal) (Value, error) {
	switch v := l.Value.(type) {
	case int64:
		return Int(v), nil
	case bool:
		return Bool(v), nil
	}
	panic(fmt.Errorf("%w: literal holds %T", decl.ErrInvalidLiteral, l.Value))
}

// evalOperands evaluates both operands left to right.
func (s *SimpleEval) evalOperands(left, right decl.Expr, env *Env[Location], store *Store) (l, r Value, err error) {
	if l, err = s.Eval(left, env, store); err != nil {
		return
	}
	r, err = s.Eval(right, env, store)
	return
}

func (s *SimpleEval) evalArithExpr(a *decl.ArithExpr, env *Env[Location], store *Store) (Value, error) {
	left, right, err := s.evalOperands(a.Left, a.Right, env, store)
	if err != nil {
		return nil, err
	}
	if a.Op == decl.OpAdd {
		return addValues(a, left, right)
	}
	l, lok := left.(Int)
	r, rok := right.(Int)
	if !lok || !rok {
		return nil, evalErrorf(ErrTypeMismatch, a, "%s expects integers, got %s and %s", opName(a.Op), kindOf(left), kindOf(right))
	}
	var out int64
	ok := true
	switch a.Op {
	case decl.OpSub:
		out, ok = subInt(int64(l), int64(r))
	case decl.OpMul:
		out, ok = mulInt(int64(l), int64(r))
	case decl.OpDiv:
		if r == 0 {
			return nil, evalErrorf(ErrDivisionByZero, a, "%s / 0", l)
		}
		out, ok = floorDiv(int64(l), int64(r))
	default:
		panic(fmt.Errorf("unknown arithmetic operator %q", a.Op))
	}
	if !ok {
		return nil, evalErrorf(ErrIntegerOverflow, a, "%s %s %s", l, a.Op, r)
	}
	return Int(out), nil
}

// addValues adds integers and concatenates strings.  A string and an integer
// in either order concatenate with the integer's decimal form.
func addValues(a *decl.ArithExpr, left, right Value) (Value, error) {
	switch l := left.(type) {
	case Int:
		switch r := right.(type) {
		case Int:
			sum, ok := addInt(int64(l), int64(r))
			if !ok {
				return nil, evalErrorf(ErrIntegerOverflow, a, "%s + %s", l, r)
			}
			return Int(sum), nil
		case Str:
			return Str(l.String()) + r, nil
		}
	case Str:
		switch r := right.(type) {
		case Str:
			return l + r, nil
		case Int:
			return l + Str(r.String()), nil
		}
	}
	return nil, evalErrorf(ErrTypeMismatch, a, "Add expects integers or strings, got %s and %s", kindOf(left), kindOf(right))
}

// Checked int64 arithmetic.  The second result is false when the exact
// result does not fit in an int64.

func addInt(a, b int64) (int64, bool) {
	s := a + b
	return s, (a^s)&(b^s) >= 0
}

func subInt(a, b int64) (int64, bool) {
	d := a - b
	return d, (a^b)&(a^d) >= 0
}

func mulInt(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	p := a * b
	return p, p/b == a
}

// floorDiv divides rounding toward negative infinity.  b must not be zero.
func floorDiv(a, b int64) (int64, bool) {
	if a == math.MinInt64 && b == -1 {
		return 0, false
	}
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q, true
}

func opName(op decl.ArithOp) string {
	switch op {
	case decl.OpAdd:
		return "Add"
	case decl.OpSub:
		return "Sub"
	case decl.OpMul:
		return "Mul"
	case decl.OpDiv:
		return "Div"
	}
	return string(op)
}

func (s *SimpleEval) evalNegExpr(n *decl.NegExpr, env *Env[Location], store *Store) (Value, error) {
	v, err := s.Eval(n.Operand, env, store)
	if err != nil {
		return nil, err
	}
	i, ok := v.(Int)
	if !ok {
		return nil, evalErrorf(ErrTypeMismatch, n, "Neg expects an integer, got %s", kindOf(v))
	}
	if i == math.MinInt64 {
		return nil, evalErrorf(ErrIntegerOverflow, n, "-(%s)", i)
	}
	return -i, nil
}

// And and Or only evaluate the right operand when the left one does not
// decide the result.
func (s *SimpleEval) evalLogicExpr(e *decl.LogicExpr, env *Env[Location], store *Store) (Value, error) {
	name := "And"
	if e.Op == decl.OpOr {
		name = "Or"
	}
	left, err := s.Eval(e.Left, env, store)
	if err != nil {
		return nil, err
	}
	l, ok := left.(Bool)
	if !ok {
		return nil, evalErrorf(ErrTypeMismatch, e, "%s expects booleans, got %s", name, kindOf(left))
	}
	if e.Op == decl.OpAnd && !bool(l) {
		return Bool(false), nil
	}
	if e.Op == decl.OpOr && bool(l) {
		return Bool(true), nil
	}
	right, err := s.Eval(e.Right, env, store)
	if err != nil {
		return nil, err
	}
	r, ok := right.(Bool)
	if !ok {
		return nil, evalErrorf(ErrTypeMismatch, e, "%s expects booleans, got %s", name, kindOf(right))
	}
	return r, nil
}

func (s *SimpleEval) evalNotExpr(n *decl.NotExpr, env *Env[Location], store *Store) (Value, error) {
	v, err := s.Eval(n.Operand, env, store)
	if err != nil {
		return nil, err
	}
	b, ok := v.(Bool)
	if !ok {
		return nil, evalErrorf(ErrTypeMismatch, n, "Not expects a boolean, got %s", kindOf(v))
	}
	return !b, nil
}

func (s *SimpleEval) evalCompareExpr(c *decl.CompareExpr, env *Env[Location], store *Store) (Value, error) {
	left, right, err := s.evalOperands(c.Left, c.Right, env, store)
	if err != nil {
		return nil, err
	}
	if c.Op == decl.OpEq {
		return Bool(Equal(left, right)), nil
	}
	l, lok := left.(Int)
	r, rok := right.(Int)
	if !lok || !rok {
		return nil, evalErrorf(ErrTypeMismatch, c, "%s expects integers, got %s and %s", c.Op, kindOf(left), kindOf(right))
	}
	switch c.Op {
	case decl.OpLt:
		return Bool(l < r), nil
	case decl.OpGt:
		return Bool(l > r), nil
	}
	panic(fmt.Errorf("unknown comparison operator %q", c.Op))
}

func (s *SimpleEval) evalIfExpr(i *decl.IfExpr, env *Env[Location], store *Store) (Value, error) {
	cond, err := s.Eval(i.Cond, env, store)
	if err != nil {
		return nil, err
	}
	test, ok := cond.(Bool)
	if !ok {
		return nil, evalErrorf(ErrTypeMismatch, i, "If condition must be a boolean, got %s", kindOf(cond))
	}
	if test {
		return s.Eval(i.Then, env, store)
	}
	return s.Eval(i.Else, env, store)
}

func (s *SimpleEval) evalIfNonZeroExpr(i *decl.IfNonZeroExpr, env *Env[Location], store *Store) (Value, error) {
	cond, err := s.Eval(i.Cond, env, store)
	if err != nil {
		return nil, err
	}
	n, ok := cond.(Int)
	if !ok {
		return nil, evalErrorf(ErrTypeMismatch, i, "IfNonZero condition must be an integer, got %s", kindOf(cond))
	}
	if n == 0 {
		return s.Eval(i.Else, env, store)
	}
	return s.Eval(i.Then, env, store)
}

func (s *SimpleEval) evalLetExpr(l *decl.LetExpr, env *Env[Location], store *Store) (Value, error) {
	val, err := s.Eval(l.Expr, env, store)
	if err != nil {
		return nil, err
	}
	loc := store.Allocate(val)
	return s.Eval(l.Body, env.Extend(l.Name, loc), store)
}

func (s *SimpleEval) evalNameExpr(n *decl.NameExpr, env *Env[Location], store *Store) (Value, error) {
	loc, ok := env.Lookup(n.Name)
	if !ok {
		return nil, evalErrorf(ErrUnboundVariable, n, "%s", n.Name)
	}
	return s.load(store, loc), nil
}

// Assignment only targets existing bindings and never replaces a function.
// The target is checked before the new value is computed.
func (s *SimpleEval) evalAssignExpr(a *decl.AssignExpr, env *Env[Location], store *Store) (Value, error) {
	loc, ok := env.Lookup(a.Name)
	if !ok {
		return nil, evalErrorf(ErrUnboundVariable, a, "cannot assign to %s", a.Name)
	}
	if _, isFun := s.load(store, loc).(*Closure); isFun {
		return nil, evalErrorf(ErrAssignToFunction, a, "%s", a.Name)
	}
	val, err := s.Eval(a.Expr, env, store)
	if err != nil {
		return nil, err
	}
	ensureNoErr(store.Write(loc, val))
	return val, nil
}

func (s *SimpleEval) evalShowExpr(e *decl.ShowExpr, env *Env[Location], store *Store) (Value, error) {
	val, err := s.Eval(e.Expr, env, store)
	if err != nil {
		return nil, err
	}
	if s.Tracer != nil {
		s.Tracer.Enter(s.steps, EventShow, "show", Render(val))
	}
	if s.Display != nil {
		s.Display.Show(val)
	}
	return val, nil
}

func (s *SimpleEval) evalReadExpr(r *decl.ReadExpr) (Value, error) {
	if s.Input == nil {
		return nil, evalErrorf(ErrInputNotInteger, r, "no input available")
	}
	line, err := s.Input.ReadLine()
	if s.Tracer != nil {
		s.Tracer.Enter(s.steps, EventRead, "read", line)
	}
	if err != nil {
		return nil, &EvalError{Kind: ErrInputNotInteger, Node: r, Msg: "no input", Cause: err}
	}
	n, err := ParseIntInput(line)
	if err != nil {
		return nil, &EvalError{Kind: ErrInputNotInteger, Node: r, Msg: fmt.Sprintf("%q", line), Cause: err}
	}
	return Int(n), nil
}

// ParseIntInput parses a line of user input as a base 10 integer.  Surrounding
// whitespace and one matching pair of quotes are removed and compatibility
// forms such as fullwidth digits are folded first.
func ParseIntInput(line string) (int64, error) {
	text := strings.TrimSpace(line)
	if len(text) >= 2 && (text[0] == '"' || text[0] == '\'') && text[len(text)-1] == text[0] {
		text = strings.TrimSpace(text[1 : len(text)-1])
	}
	return strconv.ParseInt(norm.NFKC.String(text), 10, 64)
}

// Builds the closure with an environment that already binds its own name.
// The name's cell is allocated first and filled with the closure once the
// closure exists, so the cycle goes through the store.
func (s *SimpleEval) evalLetFunExpr(l *decl.LetFunExpr, env *Env[Location], store *Store) (Value, error) {
	loc := store.Allocate(nil)
	funEnv := env.Extend(l.Name, loc)
	closure := &Closure{Name: l.Name, Param: l.Param, Body: l.Body, Env: funEnv}
	ensureNoErr(store.Write(loc, closure))
	return s.Eval(l.In, funEnv, store)
}

func (s *SimpleEval) evalApplyExpr(a *decl.ApplyExpr, env *Env[Location], store *Store) (result Value, err error) {
	fun, err := s.Eval(a.Fun, env, store)
	if err != nil {
		return nil, err
	}
	closure, ok := fun.(*Closure)
	if !ok {
		return nil, evalErrorf(ErrNotAFunction, a, "%s is %s", a.Fun, Render(fun))
	}
	arg, err := s.Eval(a.Arg, env, store)
	if err != nil {
		return nil, err
	}
	Debug("apply %s(%s)", closure.Name, Render(arg))
	if s.Tracer != nil {
		start := s.steps
		s.Tracer.Enter(start, EventEnter, closure.Name, Render(arg))
		defer func() { s.Tracer.Exit(s.steps, s.steps-start, result, err) }()
	}
	loc := store.Allocate(arg)
	return s.Eval(closure.Body, closure.Env.Extend(closure.Param, loc), store)
}
