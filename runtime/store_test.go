package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreAllocateReadWrite(t *testing.T) {
	s := NewStore()
	assert.Equal(t, 0, s.Len())

	a := s.Allocate(Int(1))
	b := s.Allocate(Str("two"))
	assert.Equal(t, Location(0), a)
	assert.Equal(t, Location(1), b)
	assert.Equal(t, 2, s.Len())

	v, err := s.Read(b)
	require.NoError(t, err)
	assert.Equal(t, Str("two"), v)

	require.NoError(t, s.Write(a, Bool(true)))
	v, err = s.Read(a)
	require.NoError(t, err)
	assert.Equal(t, Bool(true), v)
}

func TestStoreOutOfRange(t *testing.T) {
	s := NewStore()
	s.Allocate(Int(1))

	for _, loc := range []Location{-1, 1, 100} {
		_, err := s.Read(loc)
		assert.ErrorIs(t, err, ErrOutOfRange, "read %d", loc)
		assert.ErrorIs(t, s.Write(loc, Int(0)), ErrOutOfRange, "write %d", loc)
	}
	assert.Equal(t, 1, s.Len(), "failed writes must not grow the store")
}

func TestStoreClone(t *testing.T) {
	s := NewStore()
	loc := s.Allocate(Int(1))

	c := s.Clone()
	require.NoError(t, c.Write(loc, Int(2)))
	c.Allocate(Int(3))

	v, _ := s.Read(loc)
	assert.Equal(t, Int(1), v)
	assert.Equal(t, 1, s.Len())

	v, _ = c.Read(loc)
	assert.Equal(t, Int(2), v)
	assert.Equal(t, 2, c.Len())
}

func TestDanglingLocationPanics(t *testing.T) {
	s := NewSimpleEval(nil, nil)
	assert.PanicsWithError(t, "store location out of range: 3 (store has 0 cells)", func() {
		s.load(NewStore(), 3)
	})
}
