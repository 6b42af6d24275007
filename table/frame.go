package table

import (
	"fmt"
	"slices"

	"github.com/kbukum/tablekit/errors"
)

// Column is one named column of a Frame.
type Column struct {
	Name   string
	Values []any
}

// Col is shorthand for building a Column from typed values.
func Col[T any](name string, values ...T) Column {
	vs := make([]any, len(values))
	for i, v := range values {
		vs[i] = v
	}
	return Column{Name: name, Values: vs}
}

// Frame is an ordered set of equally long named columns.
// Frames are treated as immutable once handed to a Table.
type Frame struct {
	names []string
	cols  map[string][]any
	rows  int
}

// NewFrame builds a frame from columns. All columns must share one length
// and names must be unique.
func NewFrame(cols ...Column) (*Frame, error) {
	f := &Frame{cols: make(map[string][]any, len(cols))}
	for i, c := range cols {
		if c.Name == "" {
			return nil, errors.InvalidInput("columns", fmt.Sprintf("column %d has no name", i))
		}
		if _, dup := f.cols[c.Name]; dup {
			return nil, errors.InvalidInput("columns", fmt.Sprintf("duplicate column %q", c.Name))
		}
		if i == 0 {
			f.rows = len(c.Values)
		} else if len(c.Values) != f.rows {
			return nil, errors.InvalidInput("columns", fmt.Sprintf(
				"column %q has %d values, want %d", c.Name, len(c.Values), f.rows))
		}
		f.names = append(f.names, c.Name)
		f.cols[c.Name] = slices.Clone(c.Values)
	}
	return f, nil
}

// MustFrame is NewFrame that panics on error. Intended for static sample data.
func MustFrame(cols ...Column) *Frame {
	f, err := NewFrame(cols...)
	if err != nil {
		panic(err)
	}
	return f
}

// FromRecords builds a frame from row-major records.
func FromRecords(names []string, rows [][]any) (*Frame, error) {
	cols := make([]Column, len(names))
	for i, n := range names {
		cols[i] = Column{Name: n, Values: make([]any, len(rows))}
	}
	for r, row := range rows {
		if len(row) != len(names) {
			return nil, errors.InvalidInput("rows", fmt.Sprintf(
				"row %d has %d values, want %d", r, len(row), len(names)))
		}
		for c, v := range row {
			cols[c].Values[r] = v
		}
	}
	return NewFrame(cols...)
}

// Names returns the column names in order.
func (f *Frame) Names() []string { return slices.Clone(f.names) }

// NumRows returns the number of rows.
func (f *Frame) NumRows() int { return f.rows }

// Has reports whether the frame has a column called name.
func (f *Frame) Has(name string) bool {
	_, ok := f.cols[name]
	return ok
}

// Column returns a copy of the named column's values.
func (f *Frame) Column(name string) ([]any, error) {
	vs, ok := f.cols[name]
	if !ok {
		return nil, errors.ColumnNotFound(name)
	}
	return slices.Clone(vs), nil
}

// Value returns a single cell. Out of range rows and unknown columns yield nil.
func (f *Frame) Value(row int, col string) any {
	vs, ok := f.cols[col]
	if !ok || row < 0 || row >= len(vs) {
		return nil
	}
	return vs[row]
}

// Head returns a frame with the first n rows.
func (f *Frame) Head(n int) *Frame {
	n = max(0, min(n, f.rows))
	out := &Frame{names: slices.Clone(f.names), cols: make(map[string][]any, len(f.cols)), rows: n}
	for name, vs := range f.cols {
		out.cols[name] = slices.Clone(vs[:n])
	}
	return out
}

// WithColumn returns a frame with name replaced, or appended when absent.
func (f *Frame) WithColumn(name string, values []any) (*Frame, error) {
	if len(f.names) > 0 && len(values) != f.rows {
		return nil, errors.InvalidInput("values", fmt.Sprintf(
			"column %q has %d values, want %d", name, len(values), f.rows))
	}
	out := f.Clone()
	if !out.Has(name) {
		out.names = append(out.names, name)
	}
	out.cols[name] = slices.Clone(values)
	out.rows = len(values)
	return out, nil
}

// Clone returns a copy whose column slices can be modified independently.
func (f *Frame) Clone() *Frame {
	out := &Frame{names: slices.Clone(f.names), cols: make(map[string][]any, len(f.cols)), rows: f.rows}
	for name, vs := range f.cols {
		out.cols[name] = slices.Clone(vs)
	}
	return out
}
