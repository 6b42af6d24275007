package table

import (
	"fmt"
	"maps"
	"slices"

	"github.com/google/uuid"
	"golang.org/x/text/language"

	"github.com/kbukum/tablekit/errors"
)

// DefaultLocale is the locale used for number and date formatting.
const DefaultLocale = "en"

// Table is a styled view over a Frame.
//
// A Table is immutable by convention: every builder method returns a
// shallow copy with its change applied and leaves the receiver untouched.
// The first failing call stores its error in the returned copy; later
// calls on that copy are no-ops and rendering returns the error.
type Table struct {
	id     string
	locale string
	frame  *Frame

	order   []string
	hidden  map[string]bool
	labels  map[string]Text
	align   map[string]string
	widths  map[string]string
	formats []formatRule
	subs    []subRule
	colors  []colorRule
	styles  []styleRule

	title      Text
	subtitle   Text
	spanners   []Spanner
	stubhead   Text
	rowname    string
	groupname  string
	groupOrder []string
	notes      []Text
	opts       map[string]string

	err error
}

// Spanner is a label placed above a contiguous run of columns.
type Spanner struct {
	ID      string
	Label   Text
	Columns []string
}

// Option configures a Table at construction.
type Option func(*Table) error

// ID sets the HTML id of the table container.
func ID(id string) Option {
	return func(t *Table) error { return t.setID(id) }
}

// Locale sets the formatting locale (a BCP 47 tag such as "de" or "fr-CA").
func Locale(tag string) Option {
	return func(t *Table) error { return t.setLocale(tag) }
}

// Rowname uses the named column as the row stub.
func Rowname(col string) Option {
	return func(t *Table) error { return t.setStub(col, t.groupname) }
}

// Groupname groups rows by the values of the named column.
func Groupname(col string) Option {
	return func(t *Table) error { return t.setStub(t.rowname, col) }
}

// New builds a table over frame. Construction errors are sticky, like any
// other builder error, and surface from Err and the render methods.
func New(frame *Frame, opts ...Option) *Table {
	t := &Table{
		id:     "gt-" + uuid.NewString()[:8],
		locale: DefaultLocale,
		frame:  frame,
	}
	if frame == nil {
		t.frame = &Frame{cols: map[string][]any{}}
		t.err = errors.InvalidInput("frame", "frame is required")
		return t
	}
	t.order = frame.Names()
	for _, opt := range opts {
		if err := opt(t); err != nil {
			t.err = err
			break
		}
	}
	return t
}

// Clone returns a shallow copy. Slices and maps are shared until a builder
// method replaces them.
func (t *Table) Clone() *Table {
	c := *t
	return &c
}

// Err returns the first error recorded by a builder call, if any.
func (t *Table) Err() error { return t.err }

// ID returns the HTML id of the table container.
func (t *Table) ID() string { return t.id }

// Locale returns the formatting locale.
func (t *Table) Locale() string { return t.locale }

// Frame returns the underlying data.
func (t *Table) Frame() *Frame { return t.frame }

// Columns returns every column in display order, hidden ones included.
func (t *Table) Columns() []string { return slices.Clone(t.order) }

// VisibleColumns returns the data columns that render: hidden and stub
// columns are left out.
func (t *Table) VisibleColumns() []string {
	out := make([]string, 0, len(t.order))
	for _, c := range t.order {
		if t.hidden[c] || c == t.rowname || c == t.groupname {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Heading returns the title and subtitle.
func (t *Table) Heading() (title, subtitle Text) { return t.title, t.subtitle }

// SourceNotes returns the source notes in order.
func (t *Table) SourceNotes() []Text { return slices.Clone(t.notes) }

// Spanners returns the column spanners in the order they were added.
func (t *Table) Spanners() []Spanner { return slices.Clone(t.spanners) }

// Stub returns the rowname and groupname columns.
func (t *Table) Stub() (rowname, groupname string) { return t.rowname, t.groupname }

// Label returns the display label of a column.
func (t *Table) Label(col string) Text {
	if l, ok := t.labels[col]; ok {
		return l
	}
	return Plain(col)
}

// Alignment returns the horizontal alignment of a column.
func (t *Table) Alignment(col string) string {
	if a, ok := t.align[col]; ok {
		return a
	}
	return t.autoAlign(col)
}

// Width returns the configured width of a column, or "".
func (t *Table) Width(col string) string { return t.widths[col] }

// Hidden reports whether col is hidden.
func (t *Table) Hidden(col string) bool { return t.hidden[col] }

// apply runs fn on a copy of t. A failure is recorded on a copy that keeps
// the receiver's content.
func (t *Table) apply(op Operation, fn func(c *Table) error) *Table {
	if t.err != nil {
		return t
	}
	c := t.Clone()
	if err := fn(c); err != nil {
		return t.fail(op, err)
	}
	return c
}

func (t *Table) fail(op Operation, err error) *Table {
	c := t.Clone()
	if ae, ok := errors.AsAppError(err); ok {
		c.err = ae.WithDetail("operation", string(op))
	} else {
		c.err = fmt.Errorf("%s: %w", op, err)
	}
	return c
}

func (t *Table) setID(id string) error {
	if id == "" || !validID.MatchString(id) {
		return errors.InvalidInput("id", fmt.Sprintf("%q is not a valid HTML id", id))
	}
	t.id = id
	return nil
}

func (t *Table) setLocale(tag string) error {
	if _, err := language.Parse(tag); err != nil {
		return errors.InvalidInput("locale", fmt.Sprintf("unknown locale %q", tag))
	}
	t.locale = tag
	return nil
}

func (t *Table) setStub(rowname, groupname string) error {
	for _, c := range []string{rowname, groupname} {
		if c != "" && !t.frame.Has(c) {
			return errors.ColumnNotFound(c)
		}
	}
	if rowname != "" && rowname == groupname {
		return errors.InvalidInput("groupname", "rowname and groupname must differ")
	}
	t.rowname, t.groupname = rowname, groupname
	return nil
}

// resolveColumns validates a column selection. An empty selection means
// every column.
func (t *Table) resolveColumns(sel []string) ([]string, error) {
	if len(sel) == 0 {
		return slices.Clone(t.order), nil
	}
	out := make([]string, 0, len(sel))
	for _, c := range sel {
		if !t.frame.Has(c) {
			return nil, errors.ColumnNotFound(c)
		}
		if !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	return out, nil
}

// resolveRows validates row indices. An empty selection means every row
// and is returned as nil.
func (t *Table) resolveRows(rows []int) (map[int]bool, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	out := make(map[int]bool, len(rows))
	for _, r := range rows {
		if r < 0 || r >= t.frame.NumRows() {
			return nil, errors.InvalidInput("rows", fmt.Sprintf("row %d out of range [0, %d)", r, t.frame.NumRows()))
		}
		out[r] = true
	}
	return out, nil
}

// cellSet selects cells by column and row.
type cellSet struct {
	cols map[string]bool
	rows map[int]bool
}

func (s cellSet) has(row int, col string) bool {
	return s.cols[col] && (s.rows == nil || s.rows[row])
}

func (t *Table) cells(columns []string, rows []int) (cellSet, error) {
	cols, err := t.resolveColumns(columns)
	if err != nil {
		return cellSet{}, err
	}
	rs, err := t.resolveRows(rows)
	if err != nil {
		return cellSet{}, err
	}
	set := cellSet{cols: make(map[string]bool, len(cols)), rows: rs}
	for _, c := range cols {
		set.cols[c] = true
	}
	return set, nil
}

func withKey[K comparable, V any](m map[K]V, k K, v V) map[K]V {
	out := make(map[K]V, len(m)+1)
	maps.Copy(out, m)
	out[k] = v
	return out
}

func appendTo[T any](s []T, vs ...T) []T {
	return append(slices.Clip(s), vs...)
}
