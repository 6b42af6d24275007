package table

import (
	"slices"

	"github.com/kbukum/tablekit/errors"
)

// Operation names a builder method that can be recorded and replayed.
type Operation string

// Formatting and substitution.
const (
	OpFmt           Operation = "fmt"
	OpFmtNumber     Operation = "fmt_number"
	OpFmtInteger    Operation = "fmt_integer"
	OpFmtPercent    Operation = "fmt_percent"
	OpFmtScientific Operation = "fmt_scientific"
	OpFmtCurrency   Operation = "fmt_currency"
	OpFmtBytes      Operation = "fmt_bytes"
	OpFmtRoman      Operation = "fmt_roman"
	OpFmtDate       Operation = "fmt_date"
	OpFmtTime       Operation = "fmt_time"
	OpFmtDatetime   Operation = "fmt_datetime"
	OpFmtMarkdown   Operation = "fmt_markdown"
	OpFmtImage      Operation = "fmt_image"
	OpFmtIcon       Operation = "fmt_icon"
	OpFmtFlag       Operation = "fmt_flag"
	OpFmtUnits      Operation = "fmt_units"
	OpFmtNanoplot   Operation = "fmt_nanoplot"
	OpDataColor     Operation = "data_color"
	OpSubMissing    Operation = "sub_missing"
	OpSubZero       Operation = "sub_zero"
)

// Table options.
const (
	OpOptStylize           Operation = "opt_stylize"
	OpOptAlignTableHeader  Operation = "opt_align_table_header"
	OpOptAllCaps           Operation = "opt_all_caps"
	OpOptFootnoteMarks     Operation = "opt_footnote_marks"
	OpOptRowStriping       Operation = "opt_row_striping"
	OpOptVerticalPadding   Operation = "opt_vertical_padding"
	OpOptHorizontalPadding Operation = "opt_horizontal_padding"
	OpOptTableOutline      Operation = "opt_table_outline"
	OpOptTableFont         Operation = "opt_table_font"
)

// Columns.
const (
	OpColsAlign       Operation = "cols_align"
	OpColsWidth       Operation = "cols_width"
	OpColsLabel       Operation = "cols_label"
	OpColsMove        Operation = "cols_move"
	OpColsMoveToStart Operation = "cols_move_to_start"
	OpColsMoveToEnd   Operation = "cols_move_to_end"
	OpColsHide        Operation = "cols_hide"
	OpColsUnhide      Operation = "cols_unhide"
)

// Table parts.
const (
	OpTabHeader     Operation = "tab_header"
	OpTabSourceNote Operation = "tab_source_note"
	OpTabSpanner    Operation = "tab_spanner"
	OpTabStubhead   Operation = "tab_stubhead"
	OpTabStyle      Operation = "tab_style"
	OpTabOptions    Operation = "tab_options"
	OpRowGroupOrder Operation = "row_group_order"
	OpTabStub       Operation = "tab_stub"
	OpWithID        Operation = "with_id"
	OpWithLocale    Operation = "with_locale"
)

// Export and composition.
const (
	OpSave         Operation = "save"
	OpShow         Operation = "show"
	OpAsRawHTML    Operation = "as_raw_html"
	OpWriteRawHTML Operation = "write_raw_html"
	OpAsLatex      Operation = "as_latex"
	OpPipe         Operation = "pipe"
)

var operations = []Operation{
	OpFmt, OpFmtNumber, OpFmtInteger, OpFmtPercent, OpFmtScientific,
	OpFmtCurrency, OpFmtBytes, OpFmtRoman, OpFmtDate, OpFmtTime,
	OpFmtDatetime, OpFmtMarkdown, OpFmtImage, OpFmtIcon, OpFmtFlag,
	OpFmtUnits, OpFmtNanoplot, OpDataColor, OpSubMissing, OpSubZero,
	OpOptStylize, OpOptAlignTableHeader, OpOptAllCaps, OpOptFootnoteMarks,
	OpOptRowStriping, OpOptVerticalPadding, OpOptHorizontalPadding,
	OpOptTableOutline, OpOptTableFont,
	OpColsAlign, OpColsWidth, OpColsLabel, OpColsMove, OpColsMoveToStart,
	OpColsMoveToEnd, OpColsHide, OpColsUnhide,
	OpTabHeader, OpTabSourceNote, OpTabSpanner, OpTabStubhead, OpTabStyle,
	OpTabOptions, OpRowGroupOrder, OpTabStub, OpWithID, OpWithLocale,
	OpSave, OpShow, OpAsRawHTML, OpWriteRawHTML, OpAsLatex, OpPipe,
}

// Operations returns the allow-listed operations.
func Operations() []Operation { return slices.Clone(operations) }

// IsOperation reports whether name is allow-listed.
func IsOperation(name string) bool {
	return slices.Contains(operations, Operation(name))
}

// ParseOperation validates name against the allow-list.
func ParseOperation(name string) (Operation, error) {
	if !IsOperation(name) {
		return "", errors.UnsupportedOperation(name)
	}
	return Operation(name), nil
}

// IsExport reports whether op only emits output and never changes the table.
func (op Operation) IsExport() bool {
	switch op {
	case OpSave, OpShow, OpAsRawHTML, OpWriteRawHTML, OpAsLatex:
		return true
	}
	return false
}
