package decl

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLiteral(t *testing.T) {
	tests := []struct {
		in   any
		want any
	}{
		{true, true},
		{false, false},
		{42, int64(42)},
		{int8(-3), int64(-3)},
		{int32(7), int64(7)},
		{uint16(9), int64(9)},
		{int64(1 << 40), int64(1 << 40)},
		{uint(12), int64(12)},
		{uint64(1), int64(1)},
		{uint64(math.MaxInt64), int64(math.MaxInt64)},
	}
	for _, tt := range tests {
		l, err := NewLiteral(tt.in)
		require.NoError(t, err, "%T", tt.in)
		assert.Equal(t, tt.want, l.Value)
	}
}

func TestNewLiteralRejectsOtherTypes(t *testing.T) {
	for _, in := range []any{"5", 1.5, nil, uint64(math.MaxInt64 + 1), uint64(math.MaxUint64), []int{1}} {
		l, err := NewLiteral(in)
		assert.Nil(t, l)
		assert.ErrorIs(t, err, ErrInvalidLiteral, "%T", in)
	}
	assert.Panics(t, func() { Lit("nope") })
	assert.NotPanics(t, func() { Lit(3) })
}

func TestLiteralString(t *testing.T) {
	assert.Equal(t, "-17", Int(-17).String())
	assert.Equal(t, "true", Bool(true).String())
	assert.Equal(t, `"q\"uote"`, Str(`q"uote`).String())
}
