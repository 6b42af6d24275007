package table

// Step applies one builder call to a table.
type Step func(*Table) *Table

type binding struct {
	params []string
	bind   func(a *args) Step
	// variadic folds surplus positional arguments into the last parameter.
	variadic bool
}

// Prepare resolves an allow-listed operation name and its arguments into a
// Step. Arguments are positional, or a single Named value (the form YAML
// recipe mappings become). A plain map is a positional value: the cases of
// cols_label or the text parts of tab_header. Unknown names fail with
// UNSUPPORTED_OPERATION and malformed arguments with INVALID_INPUT.
func Prepare(name string, in ...any) (Operation, Step, error) {
	op, err := ParseOperation(name)
	if err != nil {
		return "", nil, err
	}
	b := bindings[op]
	a, err := bindArgs(op, b.params, b.variadic, in)
	if err != nil {
		return "", nil, err
	}
	step := b.bind(a)
	if a.err != nil {
		return "", nil, a.err
	}
	return op, step, nil
}

// Params returns the parameter names of op in positional order.
func Params(op Operation) []string {
	return append([]string(nil), bindings[op].params...)
}

var numberParams = []string{"columns", "rows", "decimals", "use_seps", "scale_by", "pattern", "force_sign"}

func numberFormat(a *args, decimals int) NumberFormat {
	return NumberFormat{
		Rows:         a.ints("rows"),
		Decimals:     a.integer("decimals", decimals),
		NoSeparators: !a.boolean("use_seps", true),
		ScaleBy:      a.float("scale_by", 0),
		Pattern:      a.str("pattern", ""),
		ForceSign:    a.boolean("force_sign", false),
	}
}

var bindings map[Operation]binding

func init() {
	bindings = map[Operation]binding{
		OpFmt: {params: []string{"columns", "fns"}, bind: func(a *args) Step {
			cols := a.strs("columns")
			a.require("fns")
			fn := a.fn("fns")
			return func(t *Table) *Table { return t.Fmt(cols, fn) }
		}},
		OpFmtNumber: {params: numberParams, bind: func(a *args) Step {
			cols, o := a.strs("columns"), numberFormat(a, 2)
			return func(t *Table) *Table { return t.FmtNumber(cols, o) }
		}},
		OpFmtInteger: {params: []string{"columns", "rows", "use_seps", "scale_by", "pattern", "force_sign"}, bind: func(a *args) Step {
			cols, o := a.strs("columns"), numberFormat(a, 0)
			return func(t *Table) *Table { return t.FmtInteger(cols, o) }
		}},
		OpFmtPercent: {params: numberParams, bind: func(a *args) Step {
			cols, o := a.strs("columns"), numberFormat(a, 2)
			return func(t *Table) *Table { return t.FmtPercent(cols, o) }
		}},
		OpFmtScientific: {params: numberParams, bind: func(a *args) Step {
			cols, o := a.strs("columns"), numberFormat(a, 2)
			return func(t *Table) *Table { return t.FmtScientific(cols, o) }
		}},
		OpFmtCurrency: {params: []string{"columns", "rows", "currency", "use_subunits", "use_seps", "pattern"}, bind: func(a *args) Step {
			cols := a.strs("columns")
			o := CurrencyFormat{
				Rows:         a.ints("rows"),
				Currency:     a.str("currency", "USD"),
				NoSubunits:   !a.boolean("use_subunits", true),
				NoSeparators: !a.boolean("use_seps", true),
				Pattern:      a.str("pattern", ""),
			}
			return func(t *Table) *Table { return t.FmtCurrency(cols, o) }
		}},
		OpFmtBytes: {params: []string{"columns", "rows", "standard"}, bind: func(a *args) Step {
			cols, rows := a.strs("columns"), a.ints("rows")
			standard := a.str("standard", "decimal")
			if standard != "decimal" && standard != "binary" {
				a.fail("standard", "want decimal or binary")
			}
			return func(t *Table) *Table { return t.FmtBytes(cols, rows, standard == "binary") }
		}},
		OpFmtRoman: {params: []string{"columns", "rows", "case"}, bind: func(a *args) Step {
			cols, rows := a.strs("columns"), a.ints("rows")
			c := a.str("case", "upper")
			if c != "upper" && c != "lower" {
				a.fail("case", "want upper or lower")
			}
			return func(t *Table) *Table { return t.FmtRoman(cols, rows, c == "lower") }
		}},
		OpFmtDate: {params: []string{"columns", "rows", "date_style"}, bind: func(a *args) Step {
			cols, rows, style := a.strs("columns"), a.ints("rows"), a.str("date_style", "iso")
			return func(t *Table) *Table { return t.FmtDate(cols, rows, style) }
		}},
		OpFmtTime: {params: []string{"columns", "rows", "time_style"}, bind: func(a *args) Step {
			cols, rows, style := a.strs("columns"), a.ints("rows"), a.str("time_style", "iso")
			return func(t *Table) *Table { return t.FmtTime(cols, rows, style) }
		}},
		OpFmtDatetime: {params: []string{"columns", "rows", "date_style", "time_style"}, bind: func(a *args) Step {
			cols, rows := a.strs("columns"), a.ints("rows")
			ds, ts := a.str("date_style", "iso"), a.str("time_style", "iso")
			return func(t *Table) *Table { return t.FmtDatetime(cols, rows, ds, ts) }
		}},
		OpFmtMarkdown: {params: []string{"columns", "rows"}, bind: func(a *args) Step {
			cols, rows := a.strs("columns"), a.ints("rows")
			return func(t *Table) *Table { return t.FmtMarkdown(cols, rows) }
		}},
		OpFmtImage: {params: []string{"columns", "rows", "height", "path", "file_pattern"}, bind: func(a *args) Step {
			cols := a.strs("columns")
			o := ImageFormat{
				Rows:        a.ints("rows"),
				Height:      a.str("height", ""),
				Path:        a.str("path", ""),
				FilePattern: a.str("file_pattern", ""),
			}
			return func(t *Table) *Table { return t.FmtImage(cols, o) }
		}},
		OpFmtIcon: {params: []string{"columns", "rows", "height", "fill_color"}, bind: func(a *args) Step {
			cols, rows := a.strs("columns"), a.ints("rows")
			h, fill := a.str("height", ""), a.str("fill_color", "")
			return func(t *Table) *Table { return t.FmtIcon(cols, rows, h, fill) }
		}},
		OpFmtFlag: {params: []string{"columns", "rows", "height"}, bind: func(a *args) Step {
			cols, rows, h := a.strs("columns"), a.ints("rows"), a.str("height", "")
			return func(t *Table) *Table { return t.FmtFlag(cols, rows, h) }
		}},
		OpFmtUnits: {params: []string{"columns", "rows"}, bind: func(a *args) Step {
			cols, rows := a.strs("columns"), a.ints("rows")
			return func(t *Table) *Table { return t.FmtUnits(cols, rows) }
		}},
		OpFmtNanoplot: {params: []string{"columns", "rows", "plot_type", "height", "color"}, bind: func(a *args) Step {
			cols := a.strs("columns")
			o := NanoplotFormat{
				Rows:     a.ints("rows"),
				PlotType: a.str("plot_type", ""),
				Height:   a.str("height", ""),
				Color:    a.str("color", ""),
			}
			return func(t *Table) *Table { return t.FmtNanoplot(cols, o) }
		}},
		OpDataColor: {params: []string{"columns", "rows", "palette", "domain", "na_color", "autocolor_text"}, bind: func(a *args) Step {
			cols := a.strs("columns")
			o := ColorScale{
				Rows:          a.ints("rows"),
				Palette:       a.strs("palette"),
				Domain:        a.floats("domain"),
				NAColor:       a.str("na_color", ""),
				KeepTextColor: !a.boolean("autocolor_text", true),
			}
			return func(t *Table) *Table { return t.DataColor(cols, o) }
		}},
		OpSubMissing: {params: []string{"columns", "rows", "missing_text"}, bind: func(a *args) Step {
			cols, rows, text := a.strs("columns"), a.ints("rows"), a.str("missing_text", "")
			return func(t *Table) *Table { return t.SubMissing(cols, rows, text) }
		}},
		OpSubZero: {params: []string{"columns", "rows", "zero_text"}, bind: func(a *args) Step {
			cols, rows, text := a.strs("columns"), a.ints("rows"), a.str("zero_text", "")
			return func(t *Table) *Table { return t.SubZero(cols, rows, text) }
		}},

		OpOptStylize: {params: []string{"style", "color", "add_row_striping"}, bind: func(a *args) Step {
			style, color, striping := a.integer("style", 1), a.str("color", "blue"), a.boolean("add_row_striping", true)
			return func(t *Table) *Table { return t.OptStylize(style, color, striping) }
		}},
		OpOptAlignTableHeader: {params: []string{"align"}, bind: func(a *args) Step {
			align := a.str("align", "center")
			return func(t *Table) *Table { return t.OptAlignTableHeader(align) }
		}},
		OpOptAllCaps: {params: []string{"all_caps"}, bind: func(a *args) Step {
			on := a.boolean("all_caps", true)
			return func(t *Table) *Table { return t.OptAllCaps(on) }
		}},
		OpOptFootnoteMarks: {params: []string{"marks"}, bind: func(a *args) Step {
			marks := a.strs("marks")
			if marks == nil {
				marks = []string{"letters"}
			}
			return func(t *Table) *Table { return t.OptFootnoteMarks(marks...) }
		}, variadic: true},
		OpOptRowStriping: {params: []string{"row_striping"}, bind: func(a *args) Step {
			on := a.boolean("row_striping", true)
			return func(t *Table) *Table { return t.OptRowStriping(on) }
		}},
		OpOptVerticalPadding: {params: []string{"scale"}, bind: func(a *args) Step {
			scale := a.float("scale", 1)
			return func(t *Table) *Table { return t.OptVerticalPadding(scale) }
		}},
		OpOptHorizontalPadding: {params: []string{"scale"}, bind: func(a *args) Step {
			scale := a.float("scale", 1)
			return func(t *Table) *Table { return t.OptHorizontalPadding(scale) }
		}},
		OpOptTableOutline: {params: []string{"style", "width", "color"}, bind: func(a *args) Step {
			style, width, color := a.str("style", "solid"), a.str("width", "3px"), a.str("color", "#D3D3D3")
			return func(t *Table) *Table { return t.OptTableOutline(style, width, color) }
		}},
		OpOptTableFont: {params: []string{"font", "weight"}, bind: func(a *args) Step {
			a.require("font")
			fonts, weight := a.strs("font"), a.str("weight", "")
			return func(t *Table) *Table { return t.OptTableFont(fonts, weight) }
		}},

		OpColsAlign: {params: []string{"align", "columns"}, bind: func(a *args) Step {
			align, cols := a.str("align", "left"), a.strs("columns")
			return func(t *Table) *Table { return t.ColsAlign(align, cols...) }
		}, variadic: true},
		OpColsWidth: {params: []string{"cases"}, bind: func(a *args) Step {
			a.require("cases")
			widths := a.stringMap("cases")
			return func(t *Table) *Table { return t.ColsWidth(widths) }
		}},
		OpColsLabel: {params: []string{"cases"}, bind: func(a *args) Step {
			a.require("cases")
			labels := a.textMap("cases")
			return func(t *Table) *Table { return t.ColsLabel(labels) }
		}},
		OpColsMove: {params: []string{"columns", "after"}, bind: func(a *args) Step {
			a.require("columns")
			a.require("after")
			cols, after := a.strs("columns"), a.str("after", "")
			return func(t *Table) *Table { return t.ColsMove(cols, after) }
		}},
		OpColsMoveToStart: {params: []string{"columns"}, bind: func(a *args) Step {
			a.require("columns")
			cols := a.strs("columns")
			return func(t *Table) *Table { return t.ColsMoveToStart(cols...) }
		}, variadic: true},
		OpColsMoveToEnd: {params: []string{"columns"}, bind: func(a *args) Step {
			a.require("columns")
			cols := a.strs("columns")
			return func(t *Table) *Table { return t.ColsMoveToEnd(cols...) }
		}, variadic: true},
		OpColsHide: {params: []string{"columns"}, bind: func(a *args) Step {
			a.require("columns")
			cols := a.strs("columns")
			return func(t *Table) *Table { return t.ColsHide(cols...) }
		}, variadic: true},
		OpColsUnhide: {params: []string{"columns"}, bind: func(a *args) Step {
			a.require("columns")
			cols := a.strs("columns")
			return func(t *Table) *Table { return t.ColsUnhide(cols...) }
		}, variadic: true},

		OpTabHeader: {params: []string{"title", "subtitle"}, bind: func(a *args) Step {
			a.require("title")
			title := a.text("title")
			var sub []any
			if a.has("subtitle") {
				sub = []any{a.text("subtitle")}
			}
			return func(t *Table) *Table { return t.TabHeader(title, sub...) }
		}},
		OpTabSourceNote: {params: []string{"source_note"}, bind: func(a *args) Step {
			a.require("source_note")
			note := a.text("source_note")
			return func(t *Table) *Table { return t.TabSourceNote(note) }
		}},
		OpTabSpanner: {params: []string{"label", "columns"}, bind: func(a *args) Step {
			a.require("label")
			a.require("columns")
			label, cols := a.text("label"), a.strs("columns")
			return func(t *Table) *Table { return t.TabSpanner(label, cols...) }
		}, variadic: true},
		OpTabStubhead: {params: []string{"label"}, bind: func(a *args) Step {
			a.require("label")
			label := a.text("label")
			return func(t *Table) *Table { return t.TabStubhead(label) }
		}},
		OpTabStyle: {params: []string{"style", "locations"}, bind: func(a *args) Step {
			a.require("style")
			a.require("locations")
			style, locs := a.cellStyle("style"), a.locations("locations")
			return func(t *Table) *Table { return t.TabStyle(style, locs...) }
		}},
		OpTabOptions: {params: []string{"options"}, bind: func(a *args) Step {
			a.require("options")
			opts := a.stringMap("options")
			return func(t *Table) *Table { return t.TabOptions(opts) }
		}},
		OpRowGroupOrder: {params: []string{"groups"}, bind: func(a *args) Step {
			a.require("groups")
			groups := a.strs("groups")
			return func(t *Table) *Table { return t.RowGroupOrder(groups...) }
		}, variadic: true},
		OpTabStub: {params: []string{"rowname_col", "groupname_col"}, bind: func(a *args) Step {
			row, group := a.str("rowname_col", ""), a.str("groupname_col", "")
			return func(t *Table) *Table { return t.TabStub(row, group) }
		}},
		OpWithID: {params: []string{"id"}, bind: func(a *args) Step {
			a.require("id")
			id := a.str("id", "")
			return func(t *Table) *Table { return t.WithID(id) }
		}},
		OpWithLocale: {params: []string{"locale"}, bind: func(a *args) Step {
			a.require("locale")
			loc := a.str("locale", "")
			return func(t *Table) *Table { return t.WithLocale(loc) }
		}},

		OpSave: {params: []string{"file"}, bind: func(a *args) Step {
			a.require("file")
			path := a.str("file", "")
			return func(t *Table) *Table { return t.Save(path) }
		}},
		OpShow: {params: []string{"target"}, bind: func(a *args) Step {
			a.require("target")
			w := a.writer("target")
			return func(t *Table) *Table { return t.Show(w) }
		}},
		OpAsRawHTML: {params: []string{"sink"}, bind: func(a *args) Step {
			a.require("sink")
			sink := a.sink("sink")
			return func(t *Table) *Table { return t.AsRawHTML(sink) }
		}},
		OpWriteRawHTML: {params: []string{"file"}, bind: func(a *args) Step {
			a.require("file")
			path := a.str("file", "")
			return func(t *Table) *Table { return t.WriteRawHTML(path) }
		}},
		OpAsLatex: {params: []string{"sink"}, bind: func(a *args) Step {
			a.require("sink")
			sink := a.sink("sink")
			return func(t *Table) *Table { return t.AsLatex(sink) }
		}},
		OpPipe: {params: []string{"fn"}, bind: func(a *args) Step {
			a.require("fn")
			fn := a.pipe("fn")
			return func(t *Table) *Table { return t.Pipe(fn) }
		}},
	}
}
