package table

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/kbukum/tablekit/errors"
)

var validID = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_:.-]*$`)

// TabHeader sets the title and an optional subtitle. Each may be a string,
// a Text or a renderable value such as a widget.
func (t *Table) TabHeader(title any, subtitle ...any) *Table {
	return t.apply(OpTabHeader, func(c *Table) error {
		tt, ok := asText(title)
		if !ok || tt.IsZero() {
			return errors.InvalidInput("title", fmt.Sprintf("unsupported title %T", title))
		}
		var st Text
		switch len(subtitle) {
		case 0:
		case 1:
			if st, ok = asText(subtitle[0]); !ok {
				return errors.InvalidInput("subtitle", fmt.Sprintf("unsupported subtitle %T", subtitle[0]))
			}
		default:
			return errors.InvalidInput("subtitle", "at most one subtitle")
		}
		c.title, c.subtitle = tt, st
		return nil
	})
}

// TabSourceNote appends a note below the table body.
func (t *Table) TabSourceNote(note any) *Table {
	return t.apply(OpTabSourceNote, func(c *Table) error {
		txt, ok := asText(note)
		if !ok || txt.IsZero() {
			return errors.InvalidInput("source_note", fmt.Sprintf("unsupported note %T", note))
		}
		c.notes = appendTo(c.notes, txt)
		return nil
	})
}

// TabSpanner places label above columns. The columns are gathered next to
// the first of them, in the order given.
func (t *Table) TabSpanner(label any, columns ...string) *Table {
	return t.apply(OpTabSpanner, func(c *Table) error {
		txt, ok := asText(label)
		if !ok || txt.IsZero() {
			return errors.InvalidInput("label", fmt.Sprintf("unsupported spanner label %T", label))
		}
		cols, err := c.moveSet(columns)
		if err != nil {
			return err
		}
		id := txt.String()
		if slices.ContainsFunc(c.spanners, func(s Spanner) bool { return s.ID == id }) {
			return errors.InvalidInput("label", fmt.Sprintf("spanner %q already exists", id))
		}
		first := len(c.order)
		for _, col := range cols {
			first = min(first, slices.Index(c.order, col))
		}
		rest := without(c.order, cols)
		at := 0
		for _, col := range c.order[:first] {
			if !slices.Contains(cols, col) {
				at++
			}
		}
		c.order = slices.Concat(rest[:at], cols, rest[at:])
		c.spanners = appendTo(c.spanners, Spanner{ID: id, Label: txt, Columns: cols})
		return nil
	})
}

// TabStubhead labels the stub column.
func (t *Table) TabStubhead(label any) *Table {
	return t.apply(OpTabStubhead, func(c *Table) error {
		txt, ok := asText(label)
		if !ok {
			return errors.InvalidInput("label", fmt.Sprintf("unsupported stubhead %T", label))
		}
		c.stubhead = txt
		return nil
	})
}

// TabStub sets the rowname and groupname columns. Either may be empty.
func (t *Table) TabStub(rowname, groupname string) *Table {
	return t.apply(OpTabStub, func(c *Table) error {
		return c.setStub(rowname, groupname)
	})
}

// RowGroupOrder puts the named groups first, in the order given.
func (t *Table) RowGroupOrder(groups ...string) *Table {
	return t.apply(OpRowGroupOrder, func(c *Table) error {
		if c.groupname == "" {
			return errors.InvalidInput("groups", "table has no row groups")
		}
		known := c.groupLabels()
		for _, g := range groups {
			if !slices.Contains(known, g) {
				return errors.InvalidInput("groups", fmt.Sprintf("unknown row group %q", g))
			}
		}
		c.groupOrder = slices.Clone(groups)
		return nil
	})
}

// WithID sets the HTML id of the table container.
func (t *Table) WithID(id string) *Table {
	return t.apply(OpWithID, func(c *Table) error { return c.setID(id) })
}

// WithLocale sets the formatting locale.
func (t *Table) WithLocale(locale string) *Table {
	return t.apply(OpWithLocale, func(c *Table) error { return c.setLocale(locale) })
}

// Part identifies a region of the rendered table.
type Part string

// Table parts addressable by TabStyle.
const (
	PartTitle        Part = "title"
	PartSubtitle     Part = "subtitle"
	PartColumnLabels Part = "column_labels"
	PartBody         Part = "body"
	PartStub         Part = "stub"
	PartSourceNotes  Part = "source_notes"
)

var parts = []Part{PartTitle, PartSubtitle, PartColumnLabels, PartBody, PartStub, PartSourceNotes}

// Location targets cells of one part. Columns and Rows narrow body,
// stub and column label locations; empty means all.
type Location struct {
	Part    Part
	Columns []string
	Rows    []int
}

// LocBody targets body cells.
func LocBody(columns []string, rows []int) Location {
	return Location{Part: PartBody, Columns: columns, Rows: rows}
}

// LocColumnLabels targets column labels.
func LocColumnLabels(columns ...string) Location {
	return Location{Part: PartColumnLabels, Columns: columns}
}

// LocStub targets stub cells.
func LocStub(rows ...int) Location { return Location{Part: PartStub, Rows: rows} }

// LocTitle targets the title.
func LocTitle() Location { return Location{Part: PartTitle} }

// LocSubtitle targets the subtitle.
func LocSubtitle() Location { return Location{Part: PartSubtitle} }

// LocSourceNotes targets the source notes.
func LocSourceNotes() Location { return Location{Part: PartSourceNotes} }

// CellStyle is a set of CSS declarations applied by TabStyle.
type CellStyle struct {
	Fill      string
	Color     string
	Weight    string
	Style     string
	Size      string
	Align     string
	Decorate  string
	Transform string
	Border    string
}

// CSS returns the declarations as an inline style.
func (s CellStyle) CSS() string {
	decls := []struct{ prop, val string }{
		{"background-color", s.Fill},
		{"color", s.Color},
		{"font-weight", s.Weight},
		{"font-style", s.Style},
		{"font-size", s.Size},
		{"text-align", s.Align},
		{"text-decoration", s.Decorate},
		{"text-transform", s.Transform},
		{"border", s.Border},
	}
	var b strings.Builder
	for _, d := range decls {
		if d.val != "" {
			fmt.Fprintf(&b, "%s: %s; ", d.prop, d.val)
		}
	}
	return strings.TrimSpace(b.String())
}

func (s CellStyle) validate() error {
	if s.CSS() == "" {
		return errors.InvalidInput("style", "style sets no properties")
	}
	for _, v := range []string{s.Fill, s.Color, s.Weight, s.Style, s.Size, s.Align, s.Decorate, s.Transform, s.Border} {
		if strings.ContainsAny(v, ";{}<>\"") {
			return errors.InvalidInput("style", "style values must not contain ; { } < > or quotes")
		}
	}
	return nil
}

type styleRule struct {
	part  Part
	cells cellSet
	css   string
}

// TabStyle applies style to every location.
func (t *Table) TabStyle(style CellStyle, locations ...Location) *Table {
	return t.apply(OpTabStyle, func(c *Table) error {
		if err := style.validate(); err != nil {
			return err
		}
		if len(locations) == 0 {
			return errors.InvalidInput("locations", "at least one location is required")
		}
		for _, loc := range locations {
			if !slices.Contains(parts, loc.Part) {
				return errors.InvalidInput("locations", fmt.Sprintf("unknown part %q", loc.Part))
			}
			cells, err := c.cells(loc.Columns, loc.Rows)
			if err != nil {
				return err
			}
			c.styles = appendTo(c.styles, styleRule{part: loc.Part, cells: cells, css: style.CSS()})
		}
		return nil
	})
}

// partStyle joins the styles targeting a part as a whole.
func (t *Table) partStyle(p Part) string {
	var out []string
	for _, r := range t.styles {
		if r.part == p {
			out = append(out, r.css)
		}
	}
	return strings.Join(out, " ")
}

// cellStyle joins the styles targeting one cell of a part.
func (t *Table) cellStyle(p Part, row int, col string) string {
	var out []string
	for _, r := range t.styles {
		if r.part != p {
			continue
		}
		if p == PartStub && (r.cells.rows == nil || r.cells.rows[row]) {
			out = append(out, r.css)
			continue
		}
		if r.cells.has(row, col) {
			out = append(out, r.css)
		}
	}
	return strings.Join(out, " ")
}

// groupLabels lists the distinct group values in order of appearance.
func (t *Table) groupLabels() []string {
	var out []string
	for _, v := range t.frame.cols[t.groupname] {
		s := plainValue(v)
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}
