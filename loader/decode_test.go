package loader

import (
	"testing"

	"github.com/panyam/funsh/decl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEveryNode(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`{type: Lit, value: 3}`, "3"},
		{`{type: Lit, value: false}`, "false"},
		{`{type: Str, value: "a b"}`, `"a b"`},
		{`{type: Sub, left: {type: Lit, value: 3}, right: {type: Neg, expr: {type: Lit, value: 1}}}`, "(3 - -(1))"},
		{`{type: Or, left: {type: Not, expr: {type: Lit, value: true}}, right: {type: Lit, value: false}}`, "(!true || false)"},
		{`{type: Gt, left: {type: Read}, right: {type: Lit, value: 0}}`, "(read() > 0)"},
		{`{type: If, cond: {type: Eq, left: {type: Lit, value: 1}, right: {type: Lit, value: 1}}, then: {type: Lit, value: 1}, else: {type: Lit, value: 2}}`, "(if (1 == 1) then 1 else 2)"},
		{`{type: Let, name: x, expr: {type: Lit, value: 1}, body: {type: Seq, first: {type: Assign, name: x, expr: {type: Lit, value: 2}}, second: {type: Show, expr: {type: Name, name: x}}}}`, "let x = 1 in (x := 2; show(x)) end"},
		{`{type: LetFun, name: f, param: v, body: {type: Name, name: v}, in: {type: App, fun: {type: Name, name: f}, arg: {type: Lit, value: 0}}}`, "letfun f (v) = v in (f (0)) end"},
		{`{type: ShellAnd, left: {type: Redirect, command: {type: Command, command: ls}, stream: stderr, target: e}, right: {type: Pipe, left: {type: Command, command: a}, right: {type: Command, command: b}}}`, "((`ls` stderr> e) && (`a` | `b`))"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			expr, err := Decode([]byte(tt.src))
			require.NoError(t, err)
			assert.Equal(t, tt.want, expr.String())
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	expr, err := Decode([]byte(`{"type": "IfNonZero", "cond": {"type": "Lit", "value": 0}, "then": {"type": "Str", "value": "y"}, "else": {"type": "Str", "value": "n"}}`))
	require.NoError(t, err)
	assert.IsType(t, &decl.IfNonZeroExpr{}, expr)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		src     string
		wantErr error
		msg     string
	}{
		{`{type: Lit, value: "5"}`, decl.ErrInvalidLiteral, ""},
		{`{type: Lit, value: 1.5}`, decl.ErrInvalidLiteral, ""},
		{`{type: Loop}`, ErrUnknownNode, `unknown node type "Loop"`},
		{`{value: 1}`, ErrMissingField, "type: missing field"},
		{`{type: Add, left: {type: Lit, value: 1}}`, ErrMissingField, "right: missing field"},
		{`{type: Add, left: {type: Lit, value: 1}, right: 2}`, ErrInvalidField, ""},
		{`{type: Name, name: [x]}`, ErrInvalidField, ""},
		{`{type: Neg, expr: {type: If, cond: {type: Lit, value: true}, then: {type: Lit, value: 1}}}`, ErrMissingField, "expr: else: missing field"},
		{`{type: Pipe, left: {type: Lit, value: 1}, right: {type: Command, command: ls}}`, ErrInvalidField, "left: invalid field: 1 is not a shell expression"},
		{``, ErrMissingField, ""},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := Decode([]byte(tt.src))
			require.ErrorIs(t, err, tt.wantErr)
			if tt.msg != "" {
				assert.EqualError(t, err, tt.msg)
			}
		})
	}
}

func TestErrorCollector(t *testing.T) {
	var c ErrorCollector
	assert.False(t, c.HasErrors())
	assert.NoError(t, c.Err())

	assert.True(t, c.AddErrors(nil, ErrUnknownNode))
	assert.True(t, c.Errorf("a.yaml", "bad %d", 1))
	assert.True(t, c.HasErrors())
	assert.ErrorIs(t, c.Err(), ErrUnknownNode)
	assert.ErrorContains(t, c.Err(), "a.yaml: bad 1")

	limited := ErrorCollector{MaxErrors: 2}
	assert.True(t, limited.AddErrors(ErrMissingField))
	assert.False(t, limited.AddErrors(ErrInvalidField, ErrUnknownNode))
	assert.Len(t, limited.Errors, 2)
}
