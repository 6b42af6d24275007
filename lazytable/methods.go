package lazytable

import (
	"io"

	"github.com/kbukum/tablekit/table"
)

// Formatting and substitution calls.

// Fmt records a custom formatter fn for columns.
func (p *Pipeline) Fmt(columns []string, fn func(any) string) *Pipeline {
	return p.record(table.OpFmt, []any{columns, fn}, func(t *table.Table) *table.Table { return t.Fmt(columns, fn) })
}

// FmtNumber records decimal number formatting.
func (p *Pipeline) FmtNumber(columns []string, o table.NumberFormat) *Pipeline {
	return p.record(table.OpFmtNumber, []any{columns, o}, func(t *table.Table) *table.Table { return t.FmtNumber(columns, o) })
}

// FmtInteger records integer formatting with grouping separators.
func (p *Pipeline) FmtInteger(columns []string, o table.NumberFormat) *Pipeline {
	return p.record(table.OpFmtInteger, []any{columns, o}, func(t *table.Table) *table.Table { return t.FmtInteger(columns, o) })
}

// FmtPercent records formatting of fractions as percentages.
func (p *Pipeline) FmtPercent(columns []string, o table.NumberFormat) *Pipeline {
	return p.record(table.OpFmtPercent, []any{columns, o}, func(t *table.Table) *table.Table { return t.FmtPercent(columns, o) })
}

// FmtScientific records scientific notation formatting.
func (p *Pipeline) FmtScientific(columns []string, o table.NumberFormat) *Pipeline {
	return p.record(table.OpFmtScientific, []any{columns, o}, func(t *table.Table) *table.Table { return t.FmtScientific(columns, o) })
}

// FmtCurrency records currency formatting.
func (p *Pipeline) FmtCurrency(columns []string, o table.CurrencyFormat) *Pipeline {
	return p.record(table.OpFmtCurrency, []any{columns, o}, func(t *table.Table) *table.Table { return t.FmtCurrency(columns, o) })
}

// FmtBytes records byte size formatting, SI units unless binary.
func (p *Pipeline) FmtBytes(columns []string, rows []int, binary bool) *Pipeline {
	return p.record(table.OpFmtBytes, []any{columns, rows, binary}, func(t *table.Table) *table.Table { return t.FmtBytes(columns, rows, binary) })
}

// FmtRoman records roman numeral formatting.
func (p *Pipeline) FmtRoman(columns []string, rows []int, lower bool) *Pipeline {
	return p.record(table.OpFmtRoman, []any{columns, rows, lower}, func(t *table.Table) *table.Table { return t.FmtRoman(columns, rows, lower) })
}

// FmtDate records date formatting with a named style.
func (p *Pipeline) FmtDate(columns []string, rows []int, dateStyle string) *Pipeline {
	return p.record(table.OpFmtDate, []any{columns, rows, dateStyle}, func(t *table.Table) *table.Table { return t.FmtDate(columns, rows, dateStyle) })
}

// FmtTime records time formatting with a named style.
func (p *Pipeline) FmtTime(columns []string, rows []int, timeStyle string) *Pipeline {
	return p.record(table.OpFmtTime, []any{columns, rows, timeStyle}, func(t *table.Table) *table.Table { return t.FmtTime(columns, rows, timeStyle) })
}

// FmtDatetime records combined date and time formatting.
func (p *Pipeline) FmtDatetime(columns []string, rows []int, dateStyle, timeStyle string) *Pipeline {
	return p.record(table.OpFmtDatetime, []any{columns, rows, dateStyle, timeStyle}, func(t *table.Table) *table.Table { return t.FmtDatetime(columns, rows, dateStyle, timeStyle) })
}

// FmtMarkdown records rendering of cell text as Markdown.
func (p *Pipeline) FmtMarkdown(columns []string, rows []int) *Pipeline {
	return p.record(table.OpFmtMarkdown, []any{columns, rows}, func(t *table.Table) *table.Table { return t.FmtMarkdown(columns, rows) })
}

// FmtImage records rendering of cell values as images.
func (p *Pipeline) FmtImage(columns []string, o table.ImageFormat) *Pipeline {
	return p.record(table.OpFmtImage, []any{columns, o}, func(t *table.Table) *table.Table { return t.FmtImage(columns, o) })
}

// FmtIcon records rendering of icon names as inline icons.
func (p *Pipeline) FmtIcon(columns []string, rows []int, height, fill string) *Pipeline {
	return p.record(table.OpFmtIcon, []any{columns, rows, height, fill}, func(t *table.Table) *table.Table { return t.FmtIcon(columns, rows, height, fill) })
}

// FmtFlag records rendering of country codes as flags.
func (p *Pipeline) FmtFlag(columns []string, rows []int, height string) *Pipeline {
	return p.record(table.OpFmtFlag, []any{columns, rows, height}, func(t *table.Table) *table.Table { return t.FmtFlag(columns, rows, height) })
}

// FmtUnits records unit notation formatting (^ superscript, _ subscript).
func (p *Pipeline) FmtUnits(columns []string, rows []int) *Pipeline {
	return p.record(table.OpFmtUnits, []any{columns, rows}, func(t *table.Table) *table.Table { return t.FmtUnits(columns, rows) })
}

// FmtNanoplot records inline plots of numeric series.
func (p *Pipeline) FmtNanoplot(columns []string, o table.NanoplotFormat) *Pipeline {
	return p.record(table.OpFmtNanoplot, []any{columns, o}, func(t *table.Table) *table.Table { return t.FmtNanoplot(columns, o) })
}

// DataColor records background colouring of cells from a color scale.
func (p *Pipeline) DataColor(columns []string, o table.ColorScale) *Pipeline {
	return p.record(table.OpDataColor, []any{columns, o}, func(t *table.Table) *table.Table { return t.DataColor(columns, o) })
}

// SubMissing records replacement text for missing values.
func (p *Pipeline) SubMissing(columns []string, rows []int, text string) *Pipeline {
	return p.record(table.OpSubMissing, []any{columns, rows, text}, func(t *table.Table) *table.Table { return t.SubMissing(columns, rows, text) })
}

// SubZero records replacement text for zero values.
func (p *Pipeline) SubZero(columns []string, rows []int, text string) *Pipeline {
	return p.record(table.OpSubZero, []any{columns, rows, text}, func(t *table.Table) *table.Table { return t.SubZero(columns, rows, text) })
}

// Option calls.

// OptStylize records a preset style and colour.
func (p *Pipeline) OptStylize(style int, color string, striping bool) *Pipeline {
	return p.record(table.OpOptStylize, []any{style, color, striping}, func(t *table.Table) *table.Table { return t.OptStylize(style, color, striping) })
}

// OptAlignTableHeader records the header alignment.
func (p *Pipeline) OptAlignTableHeader(align string) *Pipeline {
	return p.record(table.OpOptAlignTableHeader, []any{align}, func(t *table.Table) *table.Table { return t.OptAlignTableHeader(align) })
}

// OptAllCaps records upper-case column labels.
func (p *Pipeline) OptAllCaps(allCaps bool) *Pipeline {
	return p.record(table.OpOptAllCaps, []any{allCaps}, func(t *table.Table) *table.Table { return t.OptAllCaps(allCaps) })
}

// OptFootnoteMarks records the footnote mark set.
func (p *Pipeline) OptFootnoteMarks(marks ...string) *Pipeline {
	return p.record(table.OpOptFootnoteMarks, strs(marks), func(t *table.Table) *table.Table { return t.OptFootnoteMarks(marks...) })
}

// OptRowStriping records row striping on or off.
func (p *Pipeline) OptRowStriping(on bool) *Pipeline {
	return p.record(table.OpOptRowStriping, []any{on}, func(t *table.Table) *table.Table { return t.OptRowStriping(on) })
}

// OptVerticalPadding records a vertical padding scale.
func (p *Pipeline) OptVerticalPadding(scale float64) *Pipeline {
	return p.record(table.OpOptVerticalPadding, []any{scale}, func(t *table.Table) *table.Table { return t.OptVerticalPadding(scale) })
}

// OptHorizontalPadding records a horizontal padding scale.
func (p *Pipeline) OptHorizontalPadding(scale float64) *Pipeline {
	return p.record(table.OpOptHorizontalPadding, []any{scale}, func(t *table.Table) *table.Table { return t.OptHorizontalPadding(scale) })
}

// OptTableOutline records the table outline.
func (p *Pipeline) OptTableOutline(style, width, color string) *Pipeline {
	return p.record(table.OpOptTableOutline, []any{style, width, color}, func(t *table.Table) *table.Table { return t.OptTableOutline(style, width, color) })
}

// OptTableFont records the table font stack and weight.
func (p *Pipeline) OptTableFont(fonts []string, weight string) *Pipeline {
	return p.record(table.OpOptTableFont, []any{fonts, weight}, func(t *table.Table) *table.Table { return t.OptTableFont(fonts, weight) })
}

// Column calls.

// ColsAlign records an alignment for columns, or all columns when none are given.
func (p *Pipeline) ColsAlign(align string, columns ...string) *Pipeline {
	return p.record(table.OpColsAlign, append([]any{align}, strs(columns)...), func(t *table.Table) *table.Table { return t.ColsAlign(align, columns...) })
}

// ColsWidth records column widths.
func (p *Pipeline) ColsWidth(widths map[string]string) *Pipeline {
	return p.record(table.OpColsWidth, []any{widths}, func(t *table.Table) *table.Table { return t.ColsWidth(widths) })
}

// ColsLabel records column labels keyed by column name.
func (p *Pipeline) ColsLabel(labels map[string]any) *Pipeline {
	return p.record(table.OpColsLabel, []any{labels}, func(t *table.Table) *table.Table { return t.ColsLabel(labels) })
}

// ColsMove records moving columns after another column.
func (p *Pipeline) ColsMove(columns []string, after string) *Pipeline {
	return p.record(table.OpColsMove, []any{columns, after}, func(t *table.Table) *table.Table { return t.ColsMove(columns, after) })
}

// ColsMoveToStart records moving columns to the start.
func (p *Pipeline) ColsMoveToStart(columns ...string) *Pipeline {
	return p.record(table.OpColsMoveToStart, strs(columns), func(t *table.Table) *table.Table { return t.ColsMoveToStart(columns...) })
}

// ColsMoveToEnd records moving columns to the end.
func (p *Pipeline) ColsMoveToEnd(columns ...string) *Pipeline {
	return p.record(table.OpColsMoveToEnd, strs(columns), func(t *table.Table) *table.Table { return t.ColsMoveToEnd(columns...) })
}

// ColsHide records hiding columns.
func (p *Pipeline) ColsHide(columns ...string) *Pipeline {
	return p.record(table.OpColsHide, strs(columns), func(t *table.Table) *table.Table { return t.ColsHide(columns...) })
}

// ColsUnhide records showing hidden columns again.
func (p *Pipeline) ColsUnhide(columns ...string) *Pipeline {
	return p.record(table.OpColsUnhide, strs(columns), func(t *table.Table) *table.Table { return t.ColsUnhide(columns...) })
}

// Structure calls.

// TabHeader records a title and optional subtitle.
func (p *Pipeline) TabHeader(title any, subtitle ...any) *Pipeline {
	return p.record(table.OpTabHeader, append([]any{title}, subtitle...), func(t *table.Table) *table.Table { return t.TabHeader(title, subtitle...) })
}

// TabSourceNote records a source note below the body.
func (p *Pipeline) TabSourceNote(note any) *Pipeline {
	return p.record(table.OpTabSourceNote, []any{note}, func(t *table.Table) *table.Table { return t.TabSourceNote(note) })
}

// TabSpanner records a spanner label over columns.
func (p *Pipeline) TabSpanner(label any, columns ...string) *Pipeline {
	return p.record(table.OpTabSpanner, append([]any{label}, strs(columns)...), func(t *table.Table) *table.Table { return t.TabSpanner(label, columns...) })
}

// TabStubhead records the stubhead label.
func (p *Pipeline) TabStubhead(label any) *Pipeline {
	return p.record(table.OpTabStubhead, []any{label}, func(t *table.Table) *table.Table { return t.TabStubhead(label) })
}

// TabStyle records a cell style at the given locations.
func (p *Pipeline) TabStyle(style table.CellStyle, locations ...table.Location) *Pipeline {
	return p.record(table.OpTabStyle, []any{style, locations}, func(t *table.Table) *table.Table { return t.TabStyle(style, locations...) })
}

// TabOptions records raw table options.
func (p *Pipeline) TabOptions(opts map[string]string) *Pipeline {
	return p.record(table.OpTabOptions, []any{opts}, func(t *table.Table) *table.Table { return t.TabOptions(opts) })
}

// RowGroupOrder records the order of row groups.
func (p *Pipeline) RowGroupOrder(groups ...string) *Pipeline {
	return p.record(table.OpRowGroupOrder, strs(groups), func(t *table.Table) *table.Table { return t.RowGroupOrder(groups...) })
}

// TabStub records the rowname and groupname columns.
func (p *Pipeline) TabStub(rowname, groupname string) *Pipeline {
	return p.record(table.OpTabStub, []any{rowname, groupname}, func(t *table.Table) *table.Table { return t.TabStub(rowname, groupname) })
}

// WithID records the table id.
func (p *Pipeline) WithID(id string) *Pipeline {
	return p.record(table.OpWithID, []any{id}, func(t *table.Table) *table.Table { return t.WithID(id) })
}

// WithLocale records the formatting locale.
func (p *Pipeline) WithLocale(locale string) *Pipeline {
	return p.record(table.OpWithLocale, []any{locale}, func(t *table.Table) *table.Table { return t.WithLocale(locale) })
}

// Export calls run when the pipeline is collected, once per collect.

// Save records an export to path (.html, .png or .pdf).
func (p *Pipeline) Save(path string) *Pipeline {
	return p.record(table.OpSave, []any{path}, func(t *table.Table) *table.Table { return t.Save(path) })
}

// Show records writing the HTML page to w.
func (p *Pipeline) Show(w io.Writer) *Pipeline {
	return p.record(table.OpShow, []any{w}, func(t *table.Table) *table.Table { return t.Show(w) })
}

// AsRawHTML records handing the HTML fragment to sink.
func (p *Pipeline) AsRawHTML(sink func(string)) *Pipeline {
	return p.record(table.OpAsRawHTML, []any{sink}, func(t *table.Table) *table.Table { return t.AsRawHTML(sink) })
}

// WriteRawHTML records writing the HTML fragment to path.
func (p *Pipeline) WriteRawHTML(path string) *Pipeline {
	return p.record(table.OpWriteRawHTML, []any{path}, func(t *table.Table) *table.Table { return t.WriteRawHTML(path) })
}

// AsLatex records handing the LaTeX rendering to sink.
func (p *Pipeline) AsLatex(sink func(string)) *Pipeline {
	return p.record(table.OpAsLatex, []any{sink}, func(t *table.Table) *table.Table { return t.AsLatex(sink) })
}

// Pipe records an arbitrary table transformation.
func (p *Pipeline) Pipe(fn func(*table.Table) *table.Table) *Pipeline {
	return p.record(table.OpPipe, []any{fn}, func(t *table.Table) *table.Table { return t.Pipe(fn) })
}

func strs(s []string) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}
