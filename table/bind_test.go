package table

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/kbukum/tablekit/errors"
)

func TestEveryOperationIsBound(t *testing.T) {
	for _, op := range Operations() {
		if _, ok := bindings[op]; !ok {
			t.Errorf("operation %s has no binding", op)
		}
	}
	if len(bindings) != len(Operations()) {
		t.Errorf("bindings = %d, operations = %d", len(bindings), len(Operations()))
	}
}

func TestPrepareUnknownOperation(t *testing.T) {
	_, _, err := Prepare("drop_table", "x")
	if !errors.HasCode(err, errors.ErrCodeUnsupportedOperation) {
		t.Fatalf("error = %v, want UNSUPPORTED_OPERATION", err)
	}
}

func TestPrepareInvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		op   string
		in   []any
	}{
		{"missing required", "tab_header", nil},
		{"wrong type", "opt_stylize", []any{"two"}},
		{"non-integer", "fmt_number", []any{"num", nil, 1.5}},
		{"too many", "tab_source_note", []any{"a", "b"}},
		{"bad enum", "fmt_bytes", []any{"num", nil, "metric"}},
		{"bad text map", "tab_header", []any{map[string]any{"html": "a", "md": "b"}}},
		{"bad column list", "cols_hide", []any{[]any{"a", 1}}},
		{"bad writer", "show", []any{"stdout"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := Prepare(tt.op, tt.in...); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
				t.Errorf("error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestPreparePositionalAndVariadic(t *testing.T) {
	op, step, err := Prepare("cols_move_to_start", "n", "num")
	if err != nil {
		t.Fatal(err)
	}
	if op != OpColsMoveToStart {
		t.Errorf("op = %s", op)
	}
	got := step(New(sampleFrame(t))).Columns()
	if diff := cmp.Diff([]string{"n", "num", "name"}, got); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}

	_, step, err = Prepare("cols_align", "center", "name", "n")
	if err != nil {
		t.Fatal(err)
	}
	tb := step(New(sampleFrame(t)))
	if tb.Alignment("name") != "center" || tb.Alignment("n") != "center" || tb.Alignment("num") != "right" {
		t.Errorf("alignments = %s %s %s", tb.Alignment("name"), tb.Alignment("n"), tb.Alignment("num"))
	}
}

func TestPrepareNamedArguments(t *testing.T) {
	_, step, err := Prepare("opt_stylize", Named{"style": 3, "color": "green"})
	if err != nil {
		t.Fatal(err)
	}
	tb := step(New(sampleFrame(t)))
	if err := tb.Err(); err != nil {
		t.Fatal(err)
	}
	if got := tb.Opt("column_labels_background_color"); got != palettes["green"].light {
		t.Errorf("labels background = %q", got)
	}
	if got := tb.Opt("row_striping_include_table_body"); got != "true" {
		t.Errorf("striping default = %q, want true", got)
	}

	// a plain map is always positional
	_, step, err = Prepare("cols_width", map[string]any{"name": "20%"})
	if err != nil {
		t.Fatal(err)
	}
	if got := step(New(sampleFrame(t))).Width("name"); got != "20%" {
		t.Errorf("width = %q", got)
	}
}

func TestPrepareMapNamingParameter(t *testing.T) {
	f, err := NewFrame(Col("cases", 1, 2), Col("deaths", 0, 1))
	if err != nil {
		t.Fatal(err)
	}
	_, step, err := Prepare("cols_label", map[string]any{"cases": "Cases"})
	if err != nil {
		t.Fatal(err)
	}
	tb := step(New(f))
	if err := tb.Err(); err != nil {
		t.Fatal(err)
	}
	if got := tb.Label("cases").String(); got != "Cases" {
		t.Errorf("cases label = %q, want Cases", got)
	}

	_, step, err = Prepare("cols_label", Named{"cases": map[string]any{"deaths": "Deaths"}})
	if err != nil {
		t.Fatal(err)
	}
	if got := step(New(f)).Label("deaths").String(); got != "Deaths" {
		t.Errorf("deaths label = %q, want Deaths", got)
	}

	_, _, err = Prepare("opt_stylize", Named{"style": 2, "colour": "red"})
	if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("unknown named argument: error = %v, want INVALID_INPUT", err)
	}
}

func TestVariadicBindings(t *testing.T) {
	want := []Operation{
		OpOptFootnoteMarks, OpColsAlign, OpColsMoveToStart, OpColsMoveToEnd,
		OpColsHide, OpColsUnhide, OpTabSpanner, OpRowGroupOrder,
	}
	var got []Operation
	for _, op := range Operations() {
		b := bindings[op]
		if b.bind == nil {
			t.Errorf("%s has no bind function", op)
		}
		if b.variadic {
			got = append(got, op)
		}
	}
	less := func(a, b Operation) bool { return a < b }
	if diff := cmp.Diff(want, got, cmpopts.SortSlices(less)); diff != "" {
		t.Errorf("variadic operations (-want +got):\n%s", diff)
	}
}

func TestPrepareTextMaps(t *testing.T) {
	_, step, err := Prepare("cols_label", map[string]any{
		"num":  map[string]any{"html": "Num,<br>units"},
		"name": "Name",
	})
	if err != nil {
		t.Fatal(err)
	}
	tb := step(New(sampleFrame(t)))
	if h, _ := tb.Label("num").HTML(); h != "Num,<br>units" {
		t.Errorf("num label = %q", h)
	}
	if got := tb.Label("name").String(); got != "Name" {
		t.Errorf("name label = %q", got)
	}

	_, step, err = Prepare("tab_header", map[string]any{"md": "**T**"}, "sub")
	if err != nil {
		t.Fatal(err)
	}
	title, sub := step(New(sampleFrame(t))).Heading()
	if h, _ := title.HTML(); h != "<strong>T</strong>" || sub.String() != "sub" {
		t.Errorf("heading = %q, %q", h, sub.String())
	}
}

func TestPrepareTabStyleFromMaps(t *testing.T) {
	_, step, err := Prepare("tab_style",
		map[string]any{"fill": "lightblue", "weight": "bold"},
		[]any{"title", map[string]any{"part": "body", "columns": "name", "rows": []any{0, 2}}},
	)
	if err != nil {
		t.Fatal(err)
	}
	tb := step(New(sampleFrame(t)).TabHeader("T"))
	if err := tb.Err(); err != nil {
		t.Fatal(err)
	}
	out := renderOK(t, tb)
	if n := strings.Count(out, "background-color: lightblue; font-weight: bold;"); n != 3 {
		t.Errorf("styled elements = %d, want 3", n)
	}
}

func TestPrepareExportSinks(t *testing.T) {
	var got string
	_, step, err := Prepare("as_raw_html", func(s string) { got = s })
	if err != nil {
		t.Fatal(err)
	}
	if err := step(New(sampleFrame(t), ID("sink"))).Err(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, `<div id="sink"`) {
		t.Errorf("sink received %.60q", got)
	}

	var b strings.Builder
	_, step, err = Prepare("show", &b)
	if err != nil {
		t.Fatal(err)
	}
	step(New(sampleFrame(t)))
	if !strings.HasPrefix(b.String(), "<!DOCTYPE html>") {
		t.Error("show wrote no page")
	}
}

func TestParams(t *testing.T) {
	if diff := cmp.Diff([]string{"style", "color", "add_row_striping"}, Params(OpOptStylize)); diff != "" {
		t.Errorf("params mismatch (-want +got):\n%s", diff)
	}
	p := Params(OpTabHeader)
	p[0] = "changed"
	if Params(OpTabHeader)[0] != "title" {
		t.Error("Params returned shared slice")
	}
}
