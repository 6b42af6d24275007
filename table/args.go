package table

import (
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/kbukum/tablekit/errors"
)

// args holds the arguments of one dynamic call, keyed by parameter name.
// Accessors record the first conversion error in err.
type args struct {
	op   Operation
	vals map[string]any
	err  error
}

// Named holds named arguments for Prepare, keyed by parameter name. A plain
// map argument is always positional, so a map of column names is never
// mistaken for named arguments.
type Named map[string]any

// bindArgs maps positional arguments onto params. A single Named argument
// supplies them by name instead.
func bindArgs(op Operation, params []string, variadic bool, in []any) (*args, error) {
	a := &args{op: op, vals: make(map[string]any, len(params))}
	if len(in) == 1 {
		if named, ok := in[0].(Named); ok {
			for _, k := range sortedKeys(map[string]any(named)) {
				if !slices.Contains(params, k) {
					return nil, errors.InvalidInput(k, fmt.Sprintf("%s has no parameter %q", op, k))
				}
				a.vals[k] = named[k]
			}
			return a, nil
		}
	}
	if variadic && len(in) > len(params) {
		last := len(params) - 1
		in = append(slices.Clip(in[:last]), any(slices.Clone(in[last:])))
	}
	if len(in) > len(params) {
		return nil, errors.InvalidInput("args", fmt.Sprintf(
			"%s takes at most %d arguments, got %d", op, len(params), len(in)))
	}
	for i, v := range in {
		a.vals[params[i]] = v
	}
	return a, nil
}

func (a *args) fail(name, reason string) {
	if a.err == nil {
		a.err = errors.InvalidInput(name, fmt.Sprintf("%s: %s", a.op, reason))
	}
}

func (a *args) has(name string) bool {
	v, ok := a.vals[name]
	return ok && v != nil
}

func (a *args) require(name string) {
	if !a.has(name) {
		a.fail(name, "argument is required")
	}
}

func (a *args) str(name, def string) string {
	if !a.has(name) {
		return def
	}
	s, ok := a.vals[name].(string)
	if !ok {
		a.fail(name, fmt.Sprintf("want string, got %T", a.vals[name]))
	}
	return s
}

func (a *args) boolean(name string, def bool) bool {
	if !a.has(name) {
		return def
	}
	b, ok := a.vals[name].(bool)
	if !ok {
		a.fail(name, fmt.Sprintf("want bool, got %T", a.vals[name]))
	}
	return b
}

func (a *args) float(name string, def float64) float64 {
	if !a.has(name) {
		return def
	}
	f, ok := toFloat(a.vals[name])
	if !ok {
		a.fail(name, fmt.Sprintf("want number, got %T", a.vals[name]))
	}
	return f
}

func (a *args) integer(name string, def int) int {
	if !a.has(name) {
		return def
	}
	f, ok := toFloat(a.vals[name])
	if !ok || f != math.Trunc(f) {
		a.fail(name, fmt.Sprintf("want integer, got %v", a.vals[name]))
		return def
	}
	return int(f)
}

// strs accepts a string or a list of strings.
func (a *args) strs(name string) []string {
	if !a.has(name) {
		return nil
	}
	switch x := a.vals[name].(type) {
	case string:
		return []string{x}
	case []string:
		return slices.Clone(x)
	case []any:
		out := make([]string, len(x))
		for i, v := range x {
			s, ok := v.(string)
			if !ok {
				a.fail(name, fmt.Sprintf("element %d: want string, got %T", i, v))
				return nil
			}
			out[i] = s
		}
		return out
	}
	a.fail(name, fmt.Sprintf("want string list, got %T", a.vals[name]))
	return nil
}

// ints accepts an integer or a list of integers.
func (a *args) ints(name string) []int {
	if !a.has(name) {
		return nil
	}
	var items []any
	switch x := a.vals[name].(type) {
	case []int:
		return slices.Clone(x)
	case []any:
		items = x
	default:
		items = []any{x}
	}
	out := make([]int, len(items))
	for i, v := range items {
		f, ok := toFloat(v)
		if !ok || f != math.Trunc(f) {
			a.fail(name, fmt.Sprintf("element %d: want integer, got %v", i, v))
			return nil
		}
		out[i] = int(f)
	}
	return out
}

func (a *args) floats(name string) []float64 {
	if !a.has(name) {
		return nil
	}
	var items []any
	switch x := a.vals[name].(type) {
	case []float64:
		return slices.Clone(x)
	case []any:
		items = x
	default:
		a.fail(name, fmt.Sprintf("want number list, got %T", x))
		return nil
	}
	out := make([]float64, len(items))
	for i, v := range items {
		f, ok := toFloat(v)
		if !ok {
			a.fail(name, fmt.Sprintf("element %d: want number, got %T", i, v))
			return nil
		}
		out[i] = f
	}
	return out
}

// text accepts strings, Text, renderables and {html|md|text: ...} maps.
func (a *args) text(name string) any {
	if !a.has(name) {
		return nil
	}
	v := a.vals[name]
	if m, ok := v.(map[string]any); ok {
		txt, ok := textFromMap(m)
		if !ok {
			a.fail(name, "text map needs exactly one of html, md or text")
		}
		return txt
	}
	if _, ok := asText(v); !ok {
		a.fail(name, fmt.Sprintf("want text, got %T", v))
	}
	return v
}

func textFromMap(m map[string]any) (Text, bool) {
	if len(m) != 1 {
		return Text{}, false
	}
	for k, v := range m {
		s, ok := v.(string)
		if !ok {
			return Text{}, false
		}
		switch k {
		case "html":
			return HTML(s), true
		case "md":
			return Markdown(s), true
		case "text":
			return Plain(s), true
		}
	}
	return Text{}, false
}

func (a *args) texts(name string) []any {
	if !a.has(name) {
		return nil
	}
	items, ok := a.vals[name].([]any)
	if !ok {
		return []any{a.text(name)}
	}
	out := make([]any, len(items))
	for i, v := range items {
		sub := &args{op: a.op, vals: map[string]any{name: v}}
		out[i] = sub.text(name)
		if sub.err != nil && a.err == nil {
			a.err = sub.err
		}
	}
	return out
}

func (a *args) stringMap(name string) map[string]string {
	if !a.has(name) {
		return nil
	}
	switch x := a.vals[name].(type) {
	case map[string]string:
		return x
	case map[string]any:
		out := make(map[string]string, len(x))
		for k, v := range x {
			s, ok := v.(string)
			if !ok {
				a.fail(name, fmt.Sprintf("value for %q: want string, got %T", k, v))
				return nil
			}
			out[k] = s
		}
		return out
	}
	a.fail(name, fmt.Sprintf("want string map, got %T", a.vals[name]))
	return nil
}

func (a *args) textMap(name string) map[string]any {
	if !a.has(name) {
		return nil
	}
	switch x := a.vals[name].(type) {
	case map[string]string:
		out := make(map[string]any, len(x))
		for k, v := range x {
			out[k] = v
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, v := range x {
			sub := &args{op: a.op, vals: map[string]any{k: v}}
			out[k] = sub.text(k)
			if sub.err != nil && a.err == nil {
				a.err = sub.err
			}
		}
		return out
	}
	a.fail(name, fmt.Sprintf("want label map, got %T", a.vals[name]))
	return nil
}

func (a *args) cellStyle(name string) CellStyle {
	if !a.has(name) {
		return CellStyle{}
	}
	switch x := a.vals[name].(type) {
	case CellStyle:
		return x
	case map[string]any:
		sub := &args{op: a.op, vals: x}
		s := CellStyle{
			Fill:      sub.str("fill", ""),
			Color:     sub.str("color", ""),
			Weight:    sub.str("weight", ""),
			Style:     sub.str("style", ""),
			Size:      sub.str("size", ""),
			Align:     sub.str("align", ""),
			Decorate:  sub.str("decorate", ""),
			Transform: sub.str("transform", ""),
			Border:    sub.str("border", ""),
		}
		if sub.err != nil && a.err == nil {
			a.err = sub.err
		}
		return s
	}
	a.fail(name, fmt.Sprintf("want style, got %T", a.vals[name]))
	return CellStyle{}
}

func (a *args) locations(name string) []Location {
	if !a.has(name) {
		return nil
	}
	var items []any
	switch x := a.vals[name].(type) {
	case Location:
		return []Location{x}
	case []Location:
		return slices.Clone(x)
	case []any:
		items = x
	default:
		items = []any{x}
	}
	out := make([]Location, 0, len(items))
	for i, it := range items {
		switch x := it.(type) {
		case Location:
			out = append(out, x)
		case string:
			out = append(out, Location{Part: Part(x)})
		case map[string]any:
			sub := &args{op: a.op, vals: x}
			out = append(out, Location{
				Part:    Part(sub.str("part", "")),
				Columns: sub.strs("columns"),
				Rows:    sub.ints("rows"),
			})
			if sub.err != nil && a.err == nil {
				a.err = sub.err
			}
		default:
			a.fail(name, fmt.Sprintf("element %d: want location, got %T", i, it))
			return nil
		}
	}
	return out
}

func (a *args) fn(name string) func(any) string {
	if !a.has(name) {
		return nil
	}
	f, ok := a.vals[name].(func(any) string)
	if !ok {
		a.fail(name, fmt.Sprintf("want func(any) string, got %T", a.vals[name]))
	}
	return f
}

func (a *args) pipe(name string) func(*Table) *Table {
	if !a.has(name) {
		return nil
	}
	f, ok := a.vals[name].(func(*Table) *Table)
	if !ok {
		a.fail(name, fmt.Sprintf("want func(*Table) *Table, got %T", a.vals[name]))
	}
	return f
}

func (a *args) sink(name string) func(string) {
	if !a.has(name) {
		return nil
	}
	f, ok := a.vals[name].(func(string))
	if !ok {
		a.fail(name, fmt.Sprintf("want func(string), got %T", a.vals[name]))
	}
	return f
}

func (a *args) writer(name string) io.Writer {
	if !a.has(name) {
		return nil
	}
	w, ok := a.vals[name].(io.Writer)
	if !ok {
		a.fail(name, fmt.Sprintf("want io.Writer, got %T", a.vals[name]))
	}
	return w
}
