package loader

import (
	"fmt"

	"github.com/panyam/funsh/decl"
	"gopkg.in/yaml.v3"
)

// Decode reads a program written as a YAML (or JSON) node tree.  Every node is
// a mapping with a "type" key naming the expression; the remaining keys hold
// its operands:
//
//	type: Add
//	left: {type: Lit, value: 2}
//	right: {type: Lit, value: 3}
func Decode(data []byte) (decl.Expr, error) {
	var node map[string]any
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if node == nil {
		return nil, fmt.Errorf("program: %w", ErrMissingField)
	}
	return decodeNode(node)
}

func decodeNode(node map[string]any) (decl.Expr, error) {
	typ, _ := node["type"].(string)
	switch typ {
	case "Lit":
		lit, err := decl.NewLiteral(node["value"])
		if err != nil {
			return nil, err
		}
		return lit, nil
	case "Str":
		s, err := stringField(node, "value")
		if err != nil {
			return nil, err
		}
		return decl.Str(s), nil
	case "Add", "Sub", "Mul", "Div", "And", "Or", "Eq", "Lt", "Gt":
		left, right, err := decodePair(node, "left", "right")
		if err != nil {
			return nil, err
		}
		return binary(typ, left, right), nil
	case "Neg", "Not", "Show":
		operand, err := childField(node, "expr")
		if err != nil {
			return nil, err
		}
		switch typ {
		case "Neg":
			return decl.Neg(operand), nil
		case "Not":
			return decl.Not(operand), nil
		}
		return decl.Show(operand), nil
	case "If", "IfNonZero":
		cond, err := childField(node, "cond")
		if err != nil {
			return nil, err
		}
		then, els, err := decodePair(node, "then", "else")
		if err != nil {
			return nil, err
		}
		if typ == "If" {
			return decl.If(cond, then, els), nil
		}
		return decl.IfNonZero(cond, then, els), nil
	case "Let":
		name, err := stringField(node, "name")
		if err != nil {
			return nil, err
		}
		expr, body, err := decodePair(node, "expr", "body")
		if err != nil {
			return nil, err
		}
		return decl.Let(name, expr, body), nil
	case "Name":
		name, err := stringField(node, "name")
		if err != nil {
			return nil, err
		}
		return decl.Name(name), nil
	case "Assign":
		name, err := stringField(node, "name")
		if err != nil {
			return nil, err
		}
		expr, err := childField(node, "expr")
		if err != nil {
			return nil, err
		}
		return decl.Assign(name, expr), nil
	case "Seq":
		first, second, err := decodePair(node, "first", "second")
		if err != nil {
			return nil, err
		}
		return decl.Seq(first, second), nil
	case "Read":
		return decl.Read(), nil
	case "LetFun":
		name, err := stringField(node, "name")
		if err != nil {
			return nil, err
		}
		param, err := stringField(node, "param")
		if err != nil {
			return nil, err
		}
		body, in, err := decodePair(node, "body", "in")
		if err != nil {
			return nil, err
		}
		return decl.LetFun(name, param, body, in), nil
	case "App":
		fun, arg, err := decodePair(node, "fun", "arg")
		if err != nil {
			return nil, err
		}
		return decl.App(fun, arg), nil
	case "Command":
		command, err := stringField(node, "command")
		if err != nil {
			return nil, err
		}
		return decl.Cmd(command), nil
	case "Pipe", "ShellAnd", "ShellOr":
		left, err := shellField(node, "left")
		if err != nil {
			return nil, err
		}
		right, err := shellField(node, "right")
		if err != nil {
			return nil, err
		}
		switch typ {
		case "Pipe":
			return decl.Pipe(left, right), nil
		case "ShellAnd":
			return decl.ShellAnd(left, right), nil
		}
		return decl.ShellOr(left, right), nil
	case "Redirect":
		command, err := shellField(node, "command")
		if err != nil {
			return nil, err
		}
		stream, err := stringField(node, "stream")
		if err != nil {
			return nil, err
		}
		target, err := stringField(node, "target")
		if err != nil {
			return nil, err
		}
		return decl.Redirect(command, stream, target), nil
	case "":
		return nil, fmt.Errorf("type: %w", ErrMissingField)
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownNode, typ)
}

func binary(typ string, left, right decl.Expr) decl.Expr {
	switch typ {
	case "Add":
		return decl.Add(left, right)
	case "Sub":
		return decl.Sub(left, right)
	case "Mul":
		return decl.Mul(left, right)
	case "Div":
		return decl.Div(left, right)
	case "And":
		return decl.And(left, right)
	case "Or":
		return decl.Or(left, right)
	case "Eq":
		return decl.Eq(left, right)
	case "Lt":
		return decl.Lt(left, right)
	}
	return decl.Gt(left, right)
}

func decodePair(node map[string]any, first, second string) (a, b decl.Expr, err error) {
	if a, err = childField(node, first); err != nil {
		return
	}
	b, err = childField(node, second)
	return
}

func childField(node map[string]any, key string) (decl.Expr, error) {
	raw, ok := node[key]
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, ErrMissingField)
	}
	child, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s: %w: expected a node, got %T", key, ErrInvalidField, raw)
	}
	expr, err := decodeNode(child)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return expr, nil
}

func shellField(node map[string]any, key string) (decl.ShellExpr, error) {
	expr, err := childField(node, key)
	if err != nil {
		return nil, err
	}
	shell, ok := expr.(decl.ShellExpr)
	if !ok {
		return nil, fmt.Errorf("%s: %w: %s is not a shell expression", key, ErrInvalidField, expr)
	}
	return shell, nil
}

func stringField(node map[string]any, key string) (string, error) {
	raw, ok := node[key]
	if !ok {
		return "", fmt.Errorf("%s: %w", key, ErrMissingField)
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%s: %w: expected a string, got %T", key, ErrInvalidField, raw)
	}
	return s, nil
}
