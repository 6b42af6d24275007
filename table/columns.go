package table

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/kbukum/tablekit/errors"
)

var alignments = []string{"left", "center", "right"}

var cssLength = regexp.MustCompile(`^\d+(\.\d+)?(px|%|em|rem|pt|ch)$`)

// ColsAlign sets the alignment ("left", "center" or "right") of columns.
// No columns means all of them.
func (t *Table) ColsAlign(align string, columns ...string) *Table {
	return t.apply(OpColsAlign, func(c *Table) error {
		if !slices.Contains(alignments, align) {
			return errors.InvalidInput("align", fmt.Sprintf("%q is not one of %v", align, alignments))
		}
		cols, err := c.resolveColumns(columns)
		if err != nil {
			return err
		}
		for _, col := range cols {
			c.align = withKey(c.align, col, align)
		}
		return nil
	})
}

// ColsWidth sets CSS widths such as "20%" or "150px" per column.
func (t *Table) ColsWidth(widths map[string]string) *Table {
	return t.apply(OpColsWidth, func(c *Table) error {
		for _, col := range sortedKeys(widths) {
			if !c.frame.Has(col) {
				return errors.ColumnNotFound(col)
			}
			if !cssLength.MatchString(widths[col]) {
				return errors.InvalidInput("widths", fmt.Sprintf("%q is not a CSS length", widths[col]))
			}
			c.widths = withKey(c.widths, col, widths[col])
		}
		return nil
	})
}

// ColsLabel relabels columns. Values may be strings, Text or renderables.
func (t *Table) ColsLabel(labels map[string]any) *Table {
	return t.apply(OpColsLabel, func(c *Table) error {
		for _, col := range sortedKeys(labels) {
			if !c.frame.Has(col) {
				return errors.ColumnNotFound(col)
			}
			txt, ok := asText(labels[col])
			if !ok {
				return errors.InvalidInput("labels", fmt.Sprintf("label for %q has unsupported type %T", col, labels[col]))
			}
			c.labels = withKey(c.labels, col, txt)
		}
		return nil
	})
}

// ColsMove places columns, in the given order, right after the column after.
func (t *Table) ColsMove(columns []string, after string) *Table {
	return t.apply(OpColsMove, func(c *Table) error {
		cols, err := c.moveSet(columns)
		if err != nil {
			return err
		}
		if !c.frame.Has(after) {
			return errors.ColumnNotFound(after)
		}
		if slices.Contains(cols, after) {
			return errors.InvalidInput("after", fmt.Sprintf("%q cannot be moved after itself", after))
		}
		rest := without(c.order, cols)
		at := slices.Index(rest, after) + 1
		c.order = slices.Concat(rest[:at], cols, rest[at:])
		return nil
	})
}

// ColsMoveToStart moves columns, in the given order, to the start.
func (t *Table) ColsMoveToStart(columns ...string) *Table {
	return t.apply(OpColsMoveToStart, func(c *Table) error {
		cols, err := c.moveSet(columns)
		if err != nil {
			return err
		}
		c.order = slices.Concat(cols, without(c.order, cols))
		return nil
	})
}

// ColsMoveToEnd moves columns, in the given order, to the end.
func (t *Table) ColsMoveToEnd(columns ...string) *Table {
	return t.apply(OpColsMoveToEnd, func(c *Table) error {
		cols, err := c.moveSet(columns)
		if err != nil {
			return err
		}
		c.order = slices.Concat(without(c.order, cols), cols)
		return nil
	})
}

// ColsHide hides columns from every output.
func (t *Table) ColsHide(columns ...string) *Table {
	return t.apply(OpColsHide, func(c *Table) error {
		return c.setHidden(columns, true)
	})
}

// ColsUnhide reverses ColsHide.
func (t *Table) ColsUnhide(columns ...string) *Table {
	return t.apply(OpColsUnhide, func(c *Table) error {
		return c.setHidden(columns, false)
	})
}

func (t *Table) setHidden(columns []string, hide bool) error {
	if len(columns) == 0 {
		return errors.InvalidInput("columns", "at least one column is required")
	}
	cols, err := t.resolveColumns(columns)
	if err != nil {
		return err
	}
	for _, col := range cols {
		t.hidden = withKey(t.hidden, col, hide)
	}
	return nil
}

func (t *Table) moveSet(columns []string) ([]string, error) {
	if len(columns) == 0 {
		return nil, errors.InvalidInput("columns", "at least one column is required")
	}
	return t.resolveColumns(columns)
}

// without returns order minus the columns in drop, keeping order.
func without(order, drop []string) []string {
	out := make([]string, 0, len(order))
	for _, c := range order {
		if !slices.Contains(drop, c) {
			out = append(out, c)
		}
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// autoAlign right-aligns numeric and temporal columns and left-aligns the rest.
func (t *Table) autoAlign(col string) string {
	vs := t.frame.cols[col]
	seen := false
	for _, v := range vs {
		if v == nil {
			continue
		}
		if _, ok := toFloat(v); !ok && !isTemporal(v) {
			return "left"
		}
		seen = true
	}
	if !seen {
		return "left"
	}
	return "right"
}
