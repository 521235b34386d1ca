package decl

import (
	"fmt"
	"strconv"
)

// --- Literals ---

// Literal is an integer (int64) or boolean constant.  Use NewLiteral, Lit, Int
// or Bool to build one so the value type is checked.
type Literal struct {
	ExprBase
	Value any
}

func (l *Literal) String() string {
	switch v := l.Value.(type) {
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	}
	return fmt.Sprintf("%v", l.Value)
}
func (l *Literal) PrettyPrint(cp CodePrinter) { cp.Print(l.String()) }

// StringLiteral is an immutable string constant.
type StringLiteral struct {
	ExprBase
	Value string
}

func (s *StringLiteral) String() string             { return strconv.Quote(s.Value) }
func (s *StringLiteral) PrettyPrint(cp CodePrinter) { cp.Print(s.String()) }

// --- Arithmetic ---

type ArithOp string

const (
	OpAdd ArithOp = "+"
	OpSub ArithOp = "-"
	OpMul ArithOp = "*"
	OpDiv ArithOp = "/"
)

// ArithExpr represents `left op right` for the four arithmetic operators.
type ArithExpr struct {
	ExprBase
	Op    ArithOp
	Left  Expr
	Right Expr
}

func (a *ArithExpr) String() string             { return fmt.Sprintf("(%s %s %s)", a.Left, a.Op, a.Right) }
func (a *ArithExpr) PrettyPrint(cp CodePrinter) { cp.Print(a.String()) }

// NegExpr represents integer negation.
type NegExpr struct {
	ExprBase
	Operand Expr
}

func (n *NegExpr) String() string             { return fmt.Sprintf("-(%s)", n.Operand) }
func (n *NegExpr) PrettyPrint(cp CodePrinter) { cp.Print(n.String()) }

// --- Boolean ---

type LogicOp string

const (
	OpAnd LogicOp = "&&"
	OpOr  LogicOp = "||"
)

// LogicExpr represents short-circuiting `left && right` and `left || right`.
type LogicExpr struct {
	ExprBase
	Op    LogicOp
	Left  Expr
	Right Expr
}

func (l *LogicExpr) String() string             { return fmt.Sprintf("(%s %s %s)", l.Left, l.Op, l.Right) }
func (l *LogicExpr) PrettyPrint(cp CodePrinter) { cp.Print(l.String()) }

// NotExpr represents boolean negation.
type NotExpr struct {
	ExprBase
	Operand Expr
}

func (n *NotExpr) String() string             { return fmt.Sprintf("!%s", n.Operand) }
func (n *NotExpr) PrettyPrint(cp CodePrinter) { cp.Print(n.String()) }

// --- Comparisons ---

type CompareOp string

const (
	OpEq CompareOp = "=="
	OpLt CompareOp = "<"
	OpGt CompareOp = ">"
)

// CompareExpr represents `left op right` for equality and ordering.
type CompareExpr struct {
	ExprBase
	Op    CompareOp
	Left  Expr
	Right Expr
}

func (c *CompareExpr) String() string             { return fmt.Sprintf("(%s %s %s)", c.Left, c.Op, c.Right) }
func (c *CompareExpr) PrettyPrint(cp CodePrinter) { cp.Print(c.String()) }

// --- Conditionals ---

// IfExpr branches on a boolean condition.
type IfExpr struct {
	ExprBase
	Cond Expr
	Then Expr
	Else Expr
}

func (i *IfExpr) String() string {
	return fmt.Sprintf("(if %s then %s else %s)", i.Cond, i.Then, i.Else)
}
func (i *IfExpr) PrettyPrint(cp CodePrinter) { cp.Print(i.String()) }

// IfNonZeroExpr branches on an integer condition, 0 selecting the else branch.
type IfNonZeroExpr struct {
	ExprBase
	Cond Expr
	Then Expr
	Else Expr
}

func (i *IfNonZeroExpr) String() string {
	return fmt.Sprintf("(if %s != 0 then %s else %s)", i.Cond, i.Then, i.Else)
}
func (i *IfNonZeroExpr) PrettyPrint(cp CodePrinter) { cp.Print(i.String()) }

// --- Variables ---

// LetExpr binds Name to the value of Expr while evaluating Body.
type LetExpr struct {
	ExprBase
	Name string
	Expr Expr
	Body Expr
}

func (l *LetExpr) String() string {
	return fmt.Sprintf("let %s = %s in %s end", l.Name, l.Expr, l.Body)
}

func (l *LetExpr) PrettyPrint(cp CodePrinter) {
	cp.Printf("let %s = ", l.Name)
	l.Expr.PrettyPrint(cp)
	cp.Println(" in")
	WithIndent(1, cp, func(cp CodePrinter) {
		l.Body.PrettyPrint(cp)
		cp.Println("")
	})
	cp.Print("end")
}

// NameExpr is a variable reference.
type NameExpr struct {
	ExprBase
	Name string
}

func (n *NameExpr) String() string             { return n.Name }
func (n *NameExpr) PrettyPrint(cp CodePrinter) { cp.Print(n.String()) }

// AssignExpr overwrites the storage cell an existing binding refers to.
type AssignExpr struct {
	ExprBase
	Name string
	Expr Expr
}

func (a *AssignExpr) String() string             { return fmt.Sprintf("%s := %s", a.Name, a.Expr) }
func (a *AssignExpr) PrettyPrint(cp CodePrinter) { cp.Print(a.String()) }

// --- Sequencing and I/O ---

// SeqExpr evaluates First for its effects and yields Second.
type SeqExpr struct {
	ExprBase
	First  Expr
	Second Expr
}

func (s *SeqExpr) String() string { return fmt.Sprintf("(%s; %s)", s.First, s.Second) }

func (s *SeqExpr) PrettyPrint(cp CodePrinter) {
	s.First.PrettyPrint(cp)
	cp.Println(";")
	s.Second.PrettyPrint(cp)
}

// ShowExpr sends its operand's value to the display and yields it.
type ShowExpr struct {
	ExprBase
	Expr Expr
}

func (s *ShowExpr) String() string             { return fmt.Sprintf("show(%s)", s.Expr) }
func (s *ShowExpr) PrettyPrint(cp CodePrinter) { cp.Print(s.String()) }

// ReadExpr reads an integer from the input.
type ReadExpr struct {
	ExprBase
}

func (r *ReadExpr) String() string             { return "read()" }
func (r *ReadExpr) PrettyPrint(cp CodePrinter) { cp.Print(r.String()) }

// --- Functions ---

// LetFunExpr defines a recursive one-parameter function Name and evaluates In
// with it bound.
type LetFunExpr struct {
	ExprBase
	Name  string
	Param string
	Body  Expr
	In    Expr
}

func (l *LetFunExpr) String() string {
	return fmt.Sprintf("letfun %s (%s) = %s in %s end", l.Name, l.Param, l.Body, l.In)
}

func (l *LetFunExpr) PrettyPrint(cp CodePrinter) {
	cp.Printf("letfun %s (%s) =\n", l.Name, l.Param)
	WithIndent(1, cp, func(cp CodePrinter) {
		l.Body.PrettyPrint(cp)
		cp.Println("")
	})
	cp.Println("in")
	WithIndent(1, cp, func(cp CodePrinter) {
		l.In.PrettyPrint(cp)
		cp.Println("")
	})
	cp.Print("end")
}

// ApplyExpr calls Fun with a single argument.
type ApplyExpr struct {
	ExprBase
	Fun Expr
	Arg Expr
}

func (a *ApplyExpr) String() string             { return fmt.Sprintf("(%s (%s))", a.Fun, a.Arg) }
func (a *ApplyExpr) PrettyPrint(cp CodePrinter) { cp.Print(a.String()) }

// --- Constructors ---

func Add(l, r Expr) *ArithExpr { return &ArithExpr{Op: OpAdd, Left: l, Right: r} }
func Sub(l, r Expr) *ArithExpr { return &ArithExpr{Op: OpSub, Left: l, Right: r} }
func Mul(l, r Expr) *ArithExpr { return &ArithExpr{Op: OpMul, Left: l, Right: r} }
func Div(l, r Expr) *ArithExpr { return &ArithExpr{Op: OpDiv, Left: l, Right: r} }
func Neg(e Expr) *NegExpr      { return &NegExpr{Operand: e} }

func And(l, r Expr) *LogicExpr { return &LogicExpr{Op: OpAnd, Left: l, Right: r} }
func Or(l, r Expr) *LogicExpr  { return &LogicExpr{Op: OpOr, Left: l, Right: r} }
func Not(e Expr) *NotExpr      { return &NotExpr{Operand: e} }

func Eq(l, r Expr) *CompareExpr { return &CompareExpr{Op: OpEq, Left: l, Right: r} }
func Lt(l, r Expr) *CompareExpr { return &CompareExpr{Op: OpLt, Left: l, Right: r} }
func Gt(l, r Expr) *CompareExpr { return &CompareExpr{Op: OpGt, Left: l, Right: r} }

func If(cond, then, els Expr) *IfExpr { return &IfExpr{Cond: cond, Then: then, Else: els} }
func IfNonZero(cond, then, els Expr) *IfNonZeroExpr {
	return &IfNonZeroExpr{Cond: cond, Then: then, Else: els}
}

func Let(name string, expr, body Expr) *LetExpr {
	return &LetExpr{Name: name, Expr: expr, Body: body}
}
func Name(name string) *NameExpr                { return &NameExpr{Name: name} }
func Assign(name string, expr Expr) *AssignExpr { return &AssignExpr{Name: name, Expr: expr} }

func Seq(first, second Expr) *SeqExpr { return &SeqExpr{First: first, Second: second} }
func Show(e Expr) *ShowExpr           { return &ShowExpr{Expr: e} }
func Read() *ReadExpr                 { return &ReadExpr{} }

func LetFun(name, param string, body, in Expr) *LetFunExpr {
	return &LetFunExpr{Name: name, Param: param, Body: body, In: in}
}
func App(fun, arg Expr) *ApplyExpr { return &ApplyExpr{Fun: fun, Arg: arg} }
