package table

import (
	"fmt"
	"html"
	"slices"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/kbukum/tablekit/errors"
)

// formatter renders one cell value as HTML. ok is false for values the
// formatter does not apply to; those render unformatted.
type formatter func(v any, env formatEnv) (out string, ok bool)

type formatEnv struct {
	printer *message.Printer
	tag     language.Tag
}

type formatRule struct {
	cells cellSet
	fn    formatter
}

type subRule struct {
	cells cellSet
	match func(v any) bool
	text  string
}

func (t *Table) env() formatEnv {
	tag := language.Make(t.locale)
	return formatEnv{printer: message.NewPrinter(tag), tag: tag}
}

func (t *Table) addFormat(op Operation, columns []string, rows []int, fn formatter) *Table {
	return t.apply(op, func(c *Table) error {
		cells, err := c.cells(columns, rows)
		if err != nil {
			return err
		}
		c.formats = appendTo(c.formats, formatRule{cells: cells, fn: fn})
		return nil
	})
}

// NumberFormat configures the numeric formatters. The zero value formats
// with no decimals, grouping separators and no scaling.
type NumberFormat struct {
	Rows         []int
	Decimals     int
	NoSeparators bool
	// ScaleBy multiplies values before formatting. Zero means 1, or 100
	// for FmtPercent.
	ScaleBy float64
	// Pattern decorates the result; "{x}" is replaced by the number.
	Pattern   string
	ForceSign bool
}

func (o NumberFormat) decorate(s string, x float64) string {
	if o.ForceSign && x > 0 {
		s = "+" + s
	}
	if o.Pattern != "" {
		s = strings.ReplaceAll(o.Pattern, "{x}", s)
	}
	return s
}

func (o NumberFormat) validate() error {
	if o.Decimals < 0 || o.Decimals > 20 {
		return errors.InvalidInput("decimals", "decimals must be between 0 and 20")
	}
	if o.Pattern != "" && !strings.Contains(o.Pattern, "{x}") {
		return errors.InvalidInput("pattern", `pattern must contain "{x}"`)
	}
	return nil
}

func (o NumberFormat) scale(def float64) float64 {
	if o.ScaleBy == 0 {
		return def
	}
	return o.ScaleBy
}

// Fmt formats cells of columns with a custom function returning HTML.
func (t *Table) Fmt(columns []string, fn func(v any) string) *Table {
	if fn == nil {
		return t.apply(OpFmt, func(*Table) error { return errors.InvalidInput("fns", "formatter is required") })
	}
	return t.addFormat(OpFmt, columns, nil, func(v any, _ formatEnv) (string, bool) {
		return fn(v), true
	})
}

// FmtNumber formats numeric values with locale-aware grouping.
func (t *Table) FmtNumber(columns []string, o NumberFormat) *Table {
	if err := o.validate(); err != nil {
		return t.apply(OpFmtNumber, func(*Table) error { return err })
	}
	scale := o.scale(1)
	return t.addFormat(OpFmtNumber, columns, o.Rows, numeric(func(x float64, env formatEnv) string {
		x *= scale
		return o.decorate(formatDecimal(env.printer, x, o.Decimals, !o.NoSeparators), x)
	}))
}

// FmtInteger formats numeric values rounded to integers.
func (t *Table) FmtInteger(columns []string, o NumberFormat) *Table {
	o.Decimals = 0
	if err := o.validate(); err != nil {
		return t.apply(OpFmtInteger, func(*Table) error { return err })
	}
	scale := o.scale(1)
	return t.addFormat(OpFmtInteger, columns, o.Rows, numeric(func(x float64, env formatEnv) string {
		x *= scale
		return o.decorate(formatDecimal(env.printer, x, 0, !o.NoSeparators), x)
	}))
}

// FmtPercent formats fractions as percentages. Values are multiplied by
// 100 unless ScaleBy says otherwise.
func (t *Table) FmtPercent(columns []string, o NumberFormat) *Table {
	if err := o.validate(); err != nil {
		return t.apply(OpFmtPercent, func(*Table) error { return err })
	}
	scale := o.scale(100)
	return t.addFormat(OpFmtPercent, columns, o.Rows, numeric(func(x float64, env formatEnv) string {
		x *= scale
		return o.decorate(formatDecimal(env.printer, x, o.Decimals, !o.NoSeparators)+"%", x)
	}))
}

// FmtScientific formats values as m × 10^n.
func (t *Table) FmtScientific(columns []string, o NumberFormat) *Table {
	if err := o.validate(); err != nil {
		return t.apply(OpFmtScientific, func(*Table) error { return err })
	}
	scale := o.scale(1)
	return t.addFormat(OpFmtScientific, columns, o.Rows, numeric(func(x float64, env formatEnv) string {
		x *= scale
		return o.decorate(formatScientific(env.printer, x, o.Decimals), x)
	}))
}

// CurrencyFormat configures FmtCurrency.
type CurrencyFormat struct {
	Rows []int
	// Currency is an ISO 4217 code; empty means USD.
	Currency     string
	NoSubunits   bool
	NoSeparators bool
	Pattern      string
}

// FmtCurrency formats values as money with the currency's symbol and
// standard number of decimals.
func (t *Table) FmtCurrency(columns []string, o CurrencyFormat) *Table {
	code := o.Currency
	if code == "" {
		code = "USD"
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return t.apply(OpFmtCurrency, func(*Table) error {
			return errors.InvalidInput("currency", fmt.Sprintf("unknown currency %q", code))
		})
	}
	decimals, _ := currency.Standard.Rounding(unit)
	if o.NoSubunits {
		decimals = 0
	}
	nf := NumberFormat{Pattern: o.Pattern}
	if err := nf.validate(); err != nil {
		return t.apply(OpFmtCurrency, func(*Table) error { return err })
	}
	return t.addFormat(OpFmtCurrency, columns, o.Rows, numeric(func(x float64, env formatEnv) string {
		sym := env.printer.Sprint(currency.NarrowSymbol(unit))
		s := formatDecimal(env.printer, abs(x), decimals, !o.NoSeparators)
		s = sym + s
		if x < 0 {
			s = "-" + s
		}
		return nf.decorate(s, x)
	}))
}

// FmtBytes formats byte counts, in decimal (kB) or binary (KiB) units.
func (t *Table) FmtBytes(columns []string, rows []int, binary bool) *Table {
	return t.addFormat(OpFmtBytes, columns, rows, numeric(func(x float64, _ formatEnv) string {
		return formatBytes(x, binary)
	}))
}

// FmtRoman formats integers 0..3999 as Roman numerals.
func (t *Table) FmtRoman(columns []string, rows []int, lower bool) *Table {
	return t.addFormat(OpFmtRoman, columns, rows, func(v any, _ formatEnv) (string, bool) {
		x, ok := toFloat(v)
		if !ok {
			return "", false
		}
		s, ok := roman(x)
		if lower {
			s = strings.ToLower(s)
		}
		return s, ok
	})
}

// FmtDate formats dates with a named style such as "iso" or "month_day_year".
// See DateStyles.
func (t *Table) FmtDate(columns []string, rows []int, dateStyle string) *Table {
	layout, ok := dateStyles[orDefault(dateStyle, "iso")]
	if !ok {
		return t.apply(OpFmtDate, func(*Table) error {
			return errors.InvalidInput("date_style", fmt.Sprintf("unknown date style %q", dateStyle))
		})
	}
	return t.addFormat(OpFmtDate, columns, rows, temporal(layout))
}

// FmtTime formats times with a named style such as "iso" or "h_m_p".
// See TimeStyles.
func (t *Table) FmtTime(columns []string, rows []int, timeStyle string) *Table {
	layout, ok := timeStyles[orDefault(timeStyle, "iso")]
	if !ok {
		return t.apply(OpFmtTime, func(*Table) error {
			return errors.InvalidInput("time_style", fmt.Sprintf("unknown time style %q", timeStyle))
		})
	}
	return t.addFormat(OpFmtTime, columns, rows, temporal(layout))
}

// FmtDatetime formats timestamps as a date and a time joined by a space.
func (t *Table) FmtDatetime(columns []string, rows []int, dateStyle, timeStyle string) *Table {
	dl, dok := dateStyles[orDefault(dateStyle, "iso")]
	tl, tok := timeStyles[orDefault(timeStyle, "iso")]
	if !dok || !tok {
		return t.apply(OpFmtDatetime, func(*Table) error {
			return errors.InvalidInput("style", fmt.Sprintf("unknown date or time style %q/%q", dateStyle, timeStyle))
		})
	}
	return t.addFormat(OpFmtDatetime, columns, rows, temporal(dl+" "+tl))
}

// FmtMarkdown renders string cells as Markdown.
func (t *Table) FmtMarkdown(columns []string, rows []int) *Table {
	return t.addFormat(OpFmtMarkdown, columns, rows, func(v any, _ formatEnv) (string, bool) {
		s, ok := v.(string)
		if !ok {
			return "", false
		}
		out, err := inlineMarkdown(s)
		return out, err == nil
	})
}

// ImageFormat configures FmtImage.
type ImageFormat struct {
	Rows []int
	// Height is a CSS length; empty means 2em.
	Height string
	// Path is prefixed to each file name.
	Path string
	// FilePattern builds the file name; "{}" is replaced by the cell value.
	FilePattern string
}

// FmtImage renders cells holding file names (comma separated for several)
// as images.
func (t *Table) FmtImage(columns []string, o ImageFormat) *Table {
	height := orDefault(o.Height, "2em")
	if !cssLength.MatchString(height) {
		return t.apply(OpFmtImage, func(*Table) error {
			return errors.InvalidInput("height", fmt.Sprintf("%q is not a CSS length", height))
		})
	}
	pattern := orDefault(o.FilePattern, "{}")
	return t.addFormat(OpFmtImage, columns, o.Rows, func(v any, _ formatEnv) (string, bool) {
		s, ok := v.(string)
		if !ok || s == "" {
			return "", false
		}
		var imgs []string
		for _, name := range strings.Split(s, ",") {
			src := strings.ReplaceAll(pattern, "{}", strings.TrimSpace(name))
			if o.Path != "" {
				src = strings.TrimSuffix(o.Path, "/") + "/" + src
			}
			imgs = append(imgs, fmt.Sprintf(`<img src="%s" style="height:%s;vertical-align:middle;">`,
				html.EscapeString(src), height))
		}
		return strings.Join(imgs, " "), true
	})
}

// FmtIcon renders icon names (comma separated for several) as symbols.
func (t *Table) FmtIcon(columns []string, rows []int, height, fill string) *Table {
	height = orDefault(height, "1em")
	if !cssLength.MatchString(height) {
		return t.apply(OpFmtIcon, func(*Table) error {
			return errors.InvalidInput("height", fmt.Sprintf("%q is not a CSS length", height))
		})
	}
	if fill != "" {
		if _, err := parseColor(fill); err != nil {
			return t.apply(OpFmtIcon, func(*Table) error { return err })
		}
	}
	return t.addFormat(OpFmtIcon, columns, rows, func(v any, _ formatEnv) (string, bool) {
		s, ok := v.(string)
		if !ok || s == "" {
			return "", false
		}
		return icons(s, height, fill), true
	})
}

// FmtFlag renders ISO 3166-1 alpha-2 country codes as flag emoji.
func (t *Table) FmtFlag(columns []string, rows []int, height string) *Table {
	height = orDefault(height, "1em")
	if !cssLength.MatchString(height) {
		return t.apply(OpFmtFlag, func(*Table) error {
			return errors.InvalidInput("height", fmt.Sprintf("%q is not a CSS length", height))
		})
	}
	return t.addFormat(OpFmtFlag, columns, rows, func(v any, _ formatEnv) (string, bool) {
		s, ok := v.(string)
		if !ok {
			return "", false
		}
		return flags(s, height)
	})
}

// FmtUnits renders unit notation: "^2" superscripts, "_0" subscripts,
// braces group, and degC, degF and ohm become symbols.
func (t *Table) FmtUnits(columns []string, rows []int) *Table {
	return t.addFormat(OpFmtUnits, columns, rows, func(v any, _ formatEnv) (string, bool) {
		s, ok := v.(string)
		if !ok {
			return "", false
		}
		return units(s), true
	})
}

// NanoplotFormat configures FmtNanoplot.
type NanoplotFormat struct {
	Rows []int
	// PlotType is "line" (default) or "bar".
	PlotType string
	// Height is a CSS length; empty means 2em.
	Height string
	// Color of the line or bars; empty means a neutral blue.
	Color string
}

// FmtNanoplot draws a small inline chart from cells holding number slices
// or space or comma separated numbers.
func (t *Table) FmtNanoplot(columns []string, o NanoplotFormat) *Table {
	plot := orDefault(o.PlotType, "line")
	height := orDefault(o.Height, "2em")
	color := orDefault(o.Color, "#4682B4")
	err := func() error {
		if !slices.Contains([]string{"line", "bar"}, plot) {
			return errors.InvalidInput("plot_type", fmt.Sprintf("%q is not line or bar", plot))
		}
		if !cssLength.MatchString(height) {
			return errors.InvalidInput("height", fmt.Sprintf("%q is not a CSS length", height))
		}
		_, err := parseColor(color)
		return err
	}()
	if err != nil {
		return t.apply(OpFmtNanoplot, func(*Table) error { return err })
	}
	return t.addFormat(OpFmtNanoplot, columns, o.Rows, func(v any, _ formatEnv) (string, bool) {
		vals, ok := seriesOf(v)
		if !ok {
			return "", false
		}
		return nanoplot(vals, plot, height, color), true
	})
}

// SubMissing replaces nil and NaN cells. Empty text means "---".
func (t *Table) SubMissing(columns []string, rows []int, text string) *Table {
	return t.addSub(OpSubMissing, columns, rows, orDefault(text, "---"), isMissing)
}

// SubZero replaces numeric zeros. Empty text means "nil".
func (t *Table) SubZero(columns []string, rows []int, text string) *Table {
	return t.addSub(OpSubZero, columns, rows, orDefault(text, "nil"), func(v any) bool {
		x, ok := toFloat(v)
		return ok && x == 0
	})
}

func (t *Table) addSub(op Operation, columns []string, rows []int, text string, match func(any) bool) *Table {
	return t.apply(op, func(c *Table) error {
		cells, err := c.cells(columns, rows)
		if err != nil {
			return err
		}
		c.subs = appendTo(c.subs, subRule{cells: cells, match: match, text: text})
		return nil
	})
}

// numeric adapts a number formatter; non-numeric and missing values pass through.
func numeric(fn func(x float64, env formatEnv) string) formatter {
	return func(v any, env formatEnv) (string, bool) {
		x, ok := toFloat(v)
		if !ok || isMissing(v) {
			return "", false
		}
		return fn(x, env), true
	}
}

// cellHTML renders the cell at row and col: the last matching formatter
// wins, then the last matching substitution.
func (t *Table) cellHTML(row int, col string, env formatEnv) (string, error) {
	v := t.frame.Value(row, col)
	for _, s := range slices.Backward(t.subs) {
		if s.cells.has(row, col) && s.match(v) {
			return html.EscapeString(s.text), nil
		}
	}
	for _, f := range slices.Backward(t.formats) {
		if !f.cells.has(row, col) {
			continue
		}
		if out, ok := f.fn(v, env); ok {
			return out, nil
		}
		break
	}
	return defaultHTML(v)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
