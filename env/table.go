package env

import (
	"iter"

	"github.com/joshuapare/bootenv/internal/format"
)

// Table is the in-memory environment: an ordered map from variable name to
// value. Order is first-insertion order and survives updates; a deleted and
// re-added name moves to the end.
//
// Table does no validation; Store checks names and values before they get
// here.
type Table struct {
	vars  []format.Var
	index map[string]int
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{index: make(map[string]int)}
}

func tableFrom(vars []format.Var) *Table {
	t := &Table{
		vars:  make([]format.Var, 0, len(vars)),
		index: make(map[string]int, len(vars)),
	}
	for _, v := range vars {
		t.Set(v.Name, v.Value)
	}
	return t
}

// Len returns the number of variables.
func (t *Table) Len() int { return len(t.vars) }

// Get returns the value of name.
func (t *Table) Get(name string) (string, bool) {
	i, ok := t.index[name]
	if !ok {
		return "", false
	}
	return t.vars[i].Value, true
}

// Set stores value under name and reports whether the table changed.
func (t *Table) Set(name, value string) bool {
	if i, ok := t.index[name]; ok {
		if t.vars[i].Value == value {
			return false
		}
		t.vars[i].Value = value
		return true
	}
	t.index[name] = len(t.vars)
	t.vars = append(t.vars, format.Var{Name: name, Value: value})
	return true
}

// Delete removes name and reports whether it was present.
func (t *Table) Delete(name string) bool {
	i, ok := t.index[name]
	if !ok {
		return false
	}
	t.vars = append(t.vars[:i], t.vars[i+1:]...)
	delete(t.index, name)
	for j := i; j < len(t.vars); j++ {
		t.index[t.vars[j].Name] = j
	}
	return true
}

// Vars returns a copy of the variables in table order.
func (t *Table) Vars() []format.Var {
	out := make([]format.Var, len(t.vars))
	copy(out, t.vars)
	return out
}

// All returns a restartable sequence of name/value pairs. Each range over
// the sequence works on a snapshot taken when that range starts, so changes
// made inside the loop show up only in later ranges.
func (t *Table) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, v := range t.Vars() {
			if !yield(v.Name, v.Value) {
				return
			}
		}
	}
}
