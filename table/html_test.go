package table

import (
	"strings"
	"testing"

	"github.com/kbukum/tablekit/errors"
)

// fakeWidget renders its current value, like a control widget.
type fakeWidget struct{ value int }

func (w *fakeWidget) RenderHTML() (string, error) {
	return `<input type="range" value="` + plainValue(w.value) + `">`, nil
}

func (w *fakeWidget) Value() any { return w.value }

func renderOK(t *testing.T, tb *Table) string {
	t.Helper()
	s, err := tb.RenderHTML()
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	return s
}

func TestRenderHTMLStructure(t *testing.T) {
	tb := New(sampleFrame(t), ID("t1")).
		TabHeader("My <Title>", HTML("<em>sub</em>")).
		ColsLabel(map[string]any{"num": HTML("Num,<br>units"), "n": "N & co"}).
		ColsMoveToStart("n").
		TabSourceNote("Source: test")
	out := renderOK(t, tb)

	for _, want := range []string{
		`<div id="t1"`,
		`#t1 .gt_table`,
		`My &lt;Title&gt;`,
		`<em>sub</em>`,
		`Num,<br>units`,
		`N &amp; co`,
		`Source: test`,
		`class="gt_table_body"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Index(out, "N &amp; co") > strings.Index(out, ">name<") {
		t.Error("moved column should render first")
	}
	if strings.Contains(out, "gt_striped\"") {
		t.Error("rows striped without striping enabled")
	}
}

func TestRenderHTMLHiddenAndWidths(t *testing.T) {
	out := renderOK(t, New(sampleFrame(t)).ColsHide("num").ColsWidth(map[string]string{"name": "20%"}))
	if strings.Contains(out, ">num<") || strings.Contains(out, "2250") {
		t.Error("hidden column rendered")
	}
	if !strings.Contains(out, "<colgroup>") || !strings.Contains(out, "width:20%;") {
		t.Error("column widths not rendered")
	}
}

func TestRenderHTMLSpanners(t *testing.T) {
	tb := New(sampleFrame(t)).TabSpanner("Numbers", "num", "n")
	out := renderOK(t, tb)
	if !strings.Contains(out, `<span class="gt_column_spanner">Numbers</span>`) {
		t.Error("spanner label missing")
	}
	if !strings.Contains(out, `colspan="2" scope="colgroup"`) {
		t.Error("spanner does not cover two columns")
	}
	rows := tb.spannerLevels()
	if len(rows) != 1 {
		t.Fatalf("levels = %d, want 1", len(rows))
	}
	nested := tb.TabSpanner("Only n", "n")
	if got := len(nested.spannerLevels()); got != 2 {
		t.Errorf("overlapping spanner levels = %d, want 2", got)
	}
}

func TestRenderHTMLWidgetIsLive(t *testing.T) {
	w := &fakeWidget{value: 1}
	tb := New(sampleFrame(t)).TabSourceNote(Widget(w)).TabHeader(w)
	if out := renderOK(t, tb); !strings.Contains(out, `value="1"`) {
		t.Fatal("widget not rendered")
	}
	w.value = 4
	out := renderOK(t, tb)
	if strings.Count(out, `value="4"`) != 2 {
		t.Error("widget not re-rendered with its current value")
	}
	if got := Widget(w).String(); got != "4" {
		t.Errorf("widget text = %q", got)
	}
}

func TestRenderHTMLStripingAndStyles(t *testing.T) {
	tb := New(sampleFrame(t)).
		OptStylize(2, "pink", true).
		TabStyle(CellStyle{Fill: "yellow", Weight: "bold"}, LocBody([]string{"name"}, []int{0}), LocTitle()).
		TabHeader("T")
	out := renderOK(t, tb)
	if !strings.Contains(out, `gt_striped"`) {
		t.Error("striping missing")
	}
	if !strings.Contains(out, palettes["pink"].dark) {
		t.Error("stylize colour missing from CSS")
	}
	if strings.Count(out, "background-color: yellow; font-weight: bold;") != 2 {
		t.Error("styles not applied to body cell and title")
	}

	if err := New(sampleFrame(t)).TabStyle(CellStyle{}, LocTitle()).Err(); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("empty style error = %v", err)
	}
	if err := New(sampleFrame(t)).TabStyle(CellStyle{Fill: "red;x:y"}, LocTitle()).Err(); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("injected style error = %v", err)
	}
	if err := New(sampleFrame(t)).TabStyle(CellStyle{Fill: "red"}, Location{Part: "footer"}).Err(); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("bad part error = %v", err)
	}
}

func TestRenderHTMLStubAndGroups(t *testing.T) {
	f := MustFrame(
		Col("country", "Germany", "Japan", "France"),
		Col("region", "Europe", "Asia", "Europe"),
		Col("pop", 83.2, 125.1, 68.0),
	)
	tb := New(f, Rowname("country"), Groupname("region")).TabStubhead("Country").RowGroupOrder("Asia")
	out := renderOK(t, tb)
	if strings.Count(out, `class="gt_group_heading"`) != 2 {
		t.Error("want two group headings")
	}
	if strings.Index(out, ">Asia<") > strings.Index(out, ">Europe<") {
		t.Error("row group order not applied")
	}
	if strings.Count(out, `scope="row"`) != 3 {
		t.Error("stub cells missing")
	}
	if !strings.Contains(out, `id="stubhead">Country<`) {
		t.Error("stubhead missing")
	}
	if strings.Contains(out, ">region<") {
		t.Error("groupname column rendered as data")
	}
}

func TestPage(t *testing.T) {
	page, err := New(sampleFrame(t)).TabHeader("Report").Page()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(page, "<!DOCTYPE html>") || !strings.Contains(page, "<title>Report</title>") {
		t.Errorf("page = %.120q", page)
	}
	if _, err := New(nil).Page(); err == nil {
		t.Error("Page on a failed table should return the error")
	}
}

func TestTextHTML(t *testing.T) {
	tests := []struct {
		in   Text
		html string
		text string
	}{
		{Plain("a<b"), "a&lt;b", "a<b"},
		{HTML("<i>x</i><br>y"), "<i>x</i><br>y", "x y"},
		{Markdown("*em*"), "<em>em</em>", "em"},
	}
	for _, tt := range tests {
		got, err := tt.in.HTML()
		if err != nil || got != tt.html {
			t.Errorf("HTML() = %q, %v, want %q", got, err, tt.html)
		}
		if s := tt.in.String(); s != tt.text {
			t.Errorf("String() = %q, want %q", s, tt.text)
		}
	}
	if _, ok := asText(42); ok {
		t.Error("asText accepted an int")
	}
}
