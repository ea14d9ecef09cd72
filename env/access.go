package env

import (
	"fmt"
	"iter"

	"github.com/joshuapare/bootenv/internal/format"
	"github.com/joshuapare/bootenv/pkg/types"
)

// Get returns the value of name, or an error of kind types.ErrKindNotFound.
func (s *Store) Get(name string) (string, error) {
	if s.closed {
		return "", closedErr("get")
	}
	v, ok := s.table.Get(name)
	if !ok {
		return "", &types.Error{Kind: types.ErrKindNotFound, Msg: fmt.Sprintf("variable %q not found", name)}
	}
	return v, nil
}

// Lookup returns the value of name and whether it is set. A closed Store
// has no variables.
func (s *Store) Lookup(name string) (string, bool) {
	if s.closed {
		return "", false
	}
	return s.table.Get(name)
}

// Set assigns value to name. The Store becomes dirty only when the table
// actually changes; assigning the current value is a no-op.
func (s *Store) Set(name, value string) error {
	if s.closed {
		return closedErr("set")
	}
	if !format.ValidName(name) {
		return &types.Error{Kind: types.ErrKindInvalid, Msg: fmt.Sprintf("set %q", name), Err: format.ErrBadName}
	}
	if !format.ValidValue(value) {
		return &types.Error{Kind: types.ErrKindInvalid, Msg: fmt.Sprintf("set %q", name), Err: format.ErrBadValue}
	}
	if s.table.Set(name, value) {
		s.dirty = true
	}
	return nil
}

// Delete removes name. Deleting an absent name is a no-op.
func (s *Store) Delete(name string) error {
	if s.closed {
		return closedErr("delete")
	}
	if s.table.Delete(name) {
		s.dirty = true
	}
	return nil
}

// Len returns the number of variables, or zero after Close.
func (s *Store) Len() int {
	if s.closed {
		return 0
	}
	return s.table.Len()
}

// All returns the variables in table order. The sequence can be ranged over
// any number of times; each range sees the table as it was when that range
// started. After Close it yields nothing.
func (s *Store) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if s.closed {
			return
		}
		for name, value := range s.table.All() {
			if !yield(name, value) {
				return
			}
		}
	}
}
