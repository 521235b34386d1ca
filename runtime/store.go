package runtime

import "fmt"

// Location indexes a cell in a Store.
type Location int

// Store is the mutable memory backing variables.  Cells are appended and
// never freed, so a Location stays valid for the lifetime of the Store.
type Store struct {
	cells []Value
}

func NewStore() *Store {
	return &Store{}
}

// Allocate appends a new cell holding value and returns its location.
func (s *Store) Allocate(value Value) Location {
	s.cells = append(s.cells, value)
	return Location(len(s.cells) - 1)
}

func (s *Store) Read(loc Location) (Value, error) {
	if err := s.check(loc); err != nil {
		return nil, err
	}
	return s.cells[loc], nil
}

func (s *Store) Write(loc Location, value Value) error {
	if err := s.check(loc); err != nil {
		return err
	}
	s.cells[loc] = value
	return nil
}

// Len returns the number of allocated cells.
func (s *Store) Len() int {
	return len(s.cells)
}

// Clone returns a store whose cells can be written without affecting s.
// Values themselves are immutable so a copy of the cell slice suffices.
func (s *Store) Clone() *Store {
	out := &Store{cells: make([]Value, len(s.cells))}
	copy(out.cells, s.cells)
	return out
}

func (s *Store) check(loc Location) error {
	if loc < 0 || int(loc) >= len(s.cells) {
		return fmt.Errorf("%w: %d (store has %d cells)", ErrOutOfRange, loc, len(s.cells))
	}
	return nil
}
