package table

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kbukum/tablekit/errors"
)

func sampleFrame(t *testing.T) *Frame {
	t.Helper()
	f, err := NewFrame(
		Col("name", "a", "b", "c"),
		Col("num", 1.5, 2250.0, 0.0),
		Col("n", 1, 2, 3),
	)
	if err != nil {
		t.Fatalf("NewFrame: %v", err)
	}
	return f
}

func TestNewFrame(t *testing.T) {
	f := sampleFrame(t)
	if got := f.NumRows(); got != 3 {
		t.Errorf("NumRows = %d, want 3", got)
	}
	if diff := cmp.Diff([]string{"name", "num", "n"}, f.Names()); diff != "" {
		t.Errorf("Names mismatch (-want +got):\n%s", diff)
	}
	if got := f.Value(1, "num"); got != 2250.0 {
		t.Errorf("Value(1, num) = %v", got)
	}
	if got := f.Value(9, "num"); got != nil {
		t.Errorf("Value out of range = %v, want nil", got)
	}
	if _, err := f.Column("missing"); !errors.HasCode(err, errors.ErrCodeColumnNotFound) {
		t.Errorf("Column(missing) error = %v", err)
	}
}

func TestNewFrameErrors(t *testing.T) {
	tests := []struct {
		name string
		cols []Column
	}{
		{"length mismatch", []Column{Col("a", 1, 2), Col("b", 1)}},
		{"duplicate", []Column{Col("a", 1), Col("a", 2)}},
		{"unnamed", []Column{Col("", 1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewFrame(tt.cols...); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
				t.Errorf("NewFrame error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestFromRecords(t *testing.T) {
	f, err := FromRecords([]string{"x", "y"}, [][]any{{1, "a"}, {2, "b"}})
	if err != nil {
		t.Fatal(err)
	}
	col, _ := f.Column("y")
	if diff := cmp.Diff([]any{"a", "b"}, col); diff != "" {
		t.Errorf("column y mismatch (-want +got):\n%s", diff)
	}
	if _, err := FromRecords([]string{"x"}, [][]any{{1, 2}}); err == nil {
		t.Error("FromRecords accepted a ragged row")
	}
}

func TestFrameHeadAndWithColumn(t *testing.T) {
	f := sampleFrame(t)
	h := f.Head(2)
	if h.NumRows() != 2 || f.NumRows() != 3 {
		t.Fatalf("Head rows = %d, original = %d", h.NumRows(), f.NumRows())
	}
	if h.Head(10).NumRows() != 2 {
		t.Error("Head beyond length should keep all rows")
	}
	g, err := f.WithColumn("Year", []any{1973, 1973, 1973})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"name", "num", "n", "Year"}, g.Names()); diff != "" {
		t.Errorf("Names mismatch (-want +got):\n%s", diff)
	}
	if f.Has("Year") {
		t.Error("WithColumn modified the receiver")
	}
	if _, err := f.WithColumn("bad", []any{1}); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("WithColumn length error = %v", err)
	}
}

func TestCopyOnWrite(t *testing.T) {
	base := New(sampleFrame(t))
	titled := base.TabHeader("Title")
	labeled := titled.ColsLabel(map[string]any{"num": "Number"})

	if !base.title.IsZero() {
		t.Error("TabHeader modified the receiver")
	}
	if got := titled.Label("num").String(); got != "num" {
		t.Errorf("ColsLabel leaked into earlier table: %q", got)
	}
	if got := labeled.Label("num").String(); got != "Number" {
		t.Errorf("Label = %q, want Number", got)
	}
	if base.ID() != labeled.ID() {
		t.Error("builder calls must keep the table id")
	}

	a := base.ColsHide("n")
	b := base.ColsHide("name")
	if a.Hidden("name") || b.Hidden("n") {
		t.Error("sibling tables share hidden state")
	}
}

func TestStickyError(t *testing.T) {
	tb := New(sampleFrame(t)).ColsHide("missing")
	if !errors.HasCode(tb.Err(), errors.ErrCodeColumnNotFound) {
		t.Fatalf("Err = %v, want COLUMN_NOT_FOUND", tb.Err())
	}
	after := tb.TabHeader("ignored")
	if after.Err() != tb.Err() || !after.title.IsZero() {
		t.Error("calls after an error must be no-ops")
	}
	if _, err := after.RenderHTML(); err != tb.Err() {
		t.Errorf("RenderHTML error = %v, want sticky error", err)
	}
	ae, _ := errors.AsAppError(tb.Err())
	if ae.Details["operation"] != string(OpColsHide) {
		t.Errorf("error details = %v, want operation cols_hide", ae.Details)
	}
}

func TestNewOptions(t *testing.T) {
	tb := New(sampleFrame(t), ID("my-table"), Locale("de"), Rowname("name"))
	if tb.Err() != nil {
		t.Fatal(tb.Err())
	}
	if tb.ID() != "my-table" || tb.Locale() != "de" {
		t.Errorf("id, locale = %q, %q", tb.ID(), tb.Locale())
	}
	if diff := cmp.Diff([]string{"num", "n"}, tb.VisibleColumns()); diff != "" {
		t.Errorf("VisibleColumns mismatch (-want +got):\n%s", diff)
	}

	if err := New(nil).Err(); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("New(nil) error = %v", err)
	}
	if err := New(sampleFrame(t), Groupname("nope")).Err(); !errors.HasCode(err, errors.ErrCodeColumnNotFound) {
		t.Errorf("Groupname(nope) error = %v", err)
	}
	if err := New(sampleFrame(t), ID("has space")).Err(); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ID(has space) error = %v", err)
	}
}

func TestColumnMoves(t *testing.T) {
	f := MustFrame(Col("a", 1), Col("b", 1), Col("c", 1), Col("d", 1))
	tests := []struct {
		name string
		tb   *Table
		want []string
	}{
		{"to start", New(f).ColsMoveToStart("c", "d"), []string{"c", "d", "a", "b"}},
		{"to end", New(f).ColsMoveToEnd("a"), []string{"b", "c", "d", "a"}},
		{"after", New(f).ColsMove([]string{"a"}, "c"), []string{"b", "c", "a", "d"}},
		{"after last", New(f).ColsMove([]string{"b", "a"}, "d"), []string{"c", "d", "b", "a"}},
		{"spanner gathers", New(f).TabSpanner("S", "d", "b"), []string{"a", "d", "b", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.tb.Err() != nil {
				t.Fatal(tt.tb.Err())
			}
			if diff := cmp.Diff(tt.want, tt.tb.Columns()); diff != "" {
				t.Errorf("Columns mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if err := New(f).ColsMove([]string{"a"}, "a").Err(); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("move after itself error = %v", err)
	}
	if err := New(f).ColsMoveToStart().Err(); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("empty move error = %v", err)
	}
}

func TestTimeMachineSpanners(t *testing.T) {
	f := MustFrame(
		Col("Ozone", 41.0), Col("Solar_R", 190.0), Col("Wind", 7.4), Col("Temp", 67),
		Col("Month", 5), Col("Day", 1), Col("Year", 1973),
	)
	tb := New(f).
		TabSpanner("Time", "Year", "Month", "Day").
		TabSpanner("Measurement", "Ozone", "Solar_R", "Wind", "Temp").
		ColsMoveToStart("Year", "Month", "Day")
	want := []string{"Year", "Month", "Day", "Ozone", "Solar_R", "Wind", "Temp"}
	if diff := cmp.Diff(want, tb.Columns()); diff != "" {
		t.Errorf("Columns mismatch (-want +got):\n%s", diff)
	}
	if got := len(tb.Spanners()); got != 2 {
		t.Errorf("Spanners = %d, want 2", got)
	}
	if err := tb.TabSpanner("Time", "Ozone").Err(); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("duplicate spanner error = %v", err)
	}
}

func TestColsAlignWidth(t *testing.T) {
	tb := New(sampleFrame(t))
	if tb.Alignment("name") != "left" || tb.Alignment("num") != "right" {
		t.Errorf("auto alignment = %s, %s", tb.Alignment("name"), tb.Alignment("num"))
	}
	tb = tb.ColsAlign("center", "num").ColsWidth(map[string]string{"name": "20%"})
	if tb.Err() != nil {
		t.Fatal(tb.Err())
	}
	if tb.Alignment("num") != "center" || tb.Width("name") != "20%" {
		t.Errorf("alignment, width = %s, %s", tb.Alignment("num"), tb.Width("name"))
	}
	if err := tb.ColsAlign("middle").Err(); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("bad align error = %v", err)
	}
	if err := tb.ColsWidth(map[string]string{"name": "wide"}).Err(); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("bad width error = %v", err)
	}
}

func TestOptions(t *testing.T) {
	tb := New(sampleFrame(t))
	if got := tb.OptStylize(2, "pink", true); got.Err() != nil {
		t.Fatal(got.Err())
	} else if got.Opt("heading_background_color") != palettes["pink"].dark {
		t.Errorf("heading background = %q", got.Opt("heading_background_color"))
	} else if got.Opt("row_striping_include_table_body") != "true" {
		t.Error("striping not enabled")
	}

	for _, bad := range []*Table{
		tb.OptStylize(0, "blue", true),
		tb.OptStylize(7, "blue", true),
		tb.OptStylize(1, "purple", true),
		tb.TabOptions(map[string]string{"no_such_option": "1"}),
		tb.OptVerticalPadding(4),
		tb.OptTableOutline("wavy", "2px", "red"),
		tb.OptTableFont(nil, ""),
		tb.OptFootnoteMarks(),
	} {
		if !errors.HasCode(bad.Err(), errors.ErrCodeInvalidInput) {
			t.Errorf("error = %v, want INVALID_INPUT", bad.Err())
		}
	}

	caps := tb.OptAllCaps(true)
	if caps.Opt("column_labels_text_transform") != "uppercase" {
		t.Error("OptAllCaps did not set uppercase labels")
	}
	if caps.OptAllCaps(false).Opt("column_labels_text_transform") != "inherit" {
		t.Error("OptAllCaps(false) did not restore labels")
	}
	if got := tb.OptVerticalPadding(2).Opt("data_row_padding"); got != "16px" {
		t.Errorf("data_row_padding = %q, want 16px", got)
	}
	if got := tb.OptHorizontalPadding(0.5).Opt("data_row_padding_horizontal"); got != "2.5px" {
		t.Errorf("data_row_padding_horizontal = %q, want 2.5px", got)
	}
	if got := tb.OptTableFont([]string{"Fira Sans", "serif"}, "bold").Opt("table_font_names"); got != "'Fira Sans', serif" {
		t.Errorf("table_font_names = %q", got)
	}
	if diff := cmp.Diff([]string{"*", "†", "‡", "§"}, tb.OptFootnoteMarks("standard").FootnoteMarks()); diff != "" {
		t.Errorf("FootnoteMarks mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"x", "y"}, tb.OptFootnoteMarks("x", "y").FootnoteMarks()); diff != "" {
		t.Errorf("FootnoteMarks mismatch (-want +got):\n%s", diff)
	}
	if got := tb.OptAlignTableHeader("left").Opt("heading_align"); got != "left" {
		t.Errorf("heading_align = %q", got)
	}
	if tb.Opt("heading_align") != "center" {
		t.Error("option leaked into the receiver")
	}
}

func TestRowGroups(t *testing.T) {
	f := MustFrame(
		Col("country", "DE", "JP", "FR"),
		Col("region", "Europe", "Asia", "Europe"),
	)
	tb := New(f).TabStub("country", "region")
	labels, rows := tb.rowGroups()
	if diff := cmp.Diff([]string{"Europe", "Asia"}, labels); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([][]int{{0, 2}, {1}}, rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
	labels, _ = tb.RowGroupOrder("Asia").rowGroups()
	if diff := cmp.Diff([]string{"Asia", "Europe"}, labels); diff != "" {
		t.Errorf("ordered labels mismatch (-want +got):\n%s", diff)
	}
	if err := tb.RowGroupOrder("Mars").Err(); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("unknown group error = %v", err)
	}
	if err := New(f).RowGroupOrder("Asia").Err(); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ungrouped order error = %v", err)
	}
}

func TestPipe(t *testing.T) {
	tb := New(sampleFrame(t))
	got := tb.Pipe(func(t *Table) *Table { return t.TabHeader("Piped") })
	if got.title.String() != "Piped" || !tb.title.IsZero() {
		t.Error("Pipe did not apply to a copy")
	}
	if err := tb.Pipe(nil).Err(); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Pipe(nil) error = %v", err)
	}
	if err := tb.Pipe(func(*Table) *Table { return nil }).Err(); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Pipe returning nil error = %v", err)
	}
}

func TestWithLocaleAndID(t *testing.T) {
	tb := New(sampleFrame(t))
	if got := tb.WithLocale("fr").Locale(); got != "fr" {
		t.Errorf("Locale = %q", got)
	}
	if err := tb.WithLocale("not a locale").Err(); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("bad locale error = %v", err)
	}
	if got := tb.WithID("custom").Clone().ID(); got != "custom" {
		t.Errorf("ID = %q", got)
	}
}

func TestMissingValues(t *testing.T) {
	if !isMissing(nil) || !isMissing(math.NaN()) || isMissing(0) {
		t.Error("isMissing misclassifies values")
	}
	if got := plainValue(math.NaN()); got != "NA" {
		t.Errorf("plainValue(NaN) = %q", got)
	}
	if got := plainValue(1973); got != "1973" {
		t.Errorf("plainValue(1973) = %q", got)
	}
}
