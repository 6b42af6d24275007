package widget

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/kbukum/tablekit/errors"
	"github.com/kbukum/tablekit/render"
)

func mustHTML(t *testing.T, w interface{ RenderHTML() (string, error) }) string {
	t.Helper()
	h, err := w.RenderHTML()
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	return h
}

func TestSlider(t *testing.T) {
	s, err := NewSlider(SliderConfig{Start: 1, Stop: 10, Label: "Style Number"})
	if err != nil {
		t.Fatal(err)
	}
	if s.Index() != 1 {
		t.Errorf("default value = %d, want start", s.Index())
	}
	var seen []int
	s.OnChange(func(v int) { seen = append(seen, v) })
	if err := s.Set(4); err != nil {
		t.Fatal(err)
	}
	if err := s.Set(11); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("out of range error = %v", err)
	}
	if diff := cmp.Diff([]int{4}, seen); diff != "" {
		t.Errorf("handler calls (-want +got):\n%s", diff)
	}
	h := mustHTML(t, s)
	for _, want := range []string{`type="range" min="1" max="10" step="1" value="4"`, "Style Number", `id="` + s.ID() + `"`} {
		if !strings.Contains(h, want) {
			t.Errorf("html missing %q:\n%s", want, h)
		}
	}
	if got := render.ValueString(s); got != "4" {
		t.Errorf("ValueString = %q", got)
	}
}

func TestSliderConfigErrors(t *testing.T) {
	tests := map[string]SliderConfig{
		"stop before start": {Start: 5, Stop: 1},
		"negative step":     {Start: 0, Stop: 6, Step: -1},
		"value off range":   {Start: 0, Stop: 6, Value: 9},
		"value off step":    {Start: 0, Stop: 6, Step: 2, Value: 3},
	}
	for name, cfg := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := NewSlider(cfg); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
				t.Errorf("error = %v, want INVALID_INPUT", err)
			}
		})
	}
	s := Must(NewSlider(SliderConfig{Start: 0, Stop: 6}))
	if s.Index() != 0 {
		t.Errorf("zero start value = %d", s.Index())
	}
}

func TestRangeSlider(t *testing.T) {
	r := Must(NewRangeSlider(RangeSliderConfig{Start: 1, Stop: 10, Step: 2, Value: [2]int{2, 6}}))
	if got := render.ValueString(r); got != "[2, 6]" {
		t.Errorf("ValueString = %q", got)
	}
	if err := r.Set([2]int{7, 3}); err == nil {
		t.Error("inverted range accepted")
	}
	whole := Must(NewRangeSlider(RangeSliderConfig{Start: 1, Stop: 10}))
	if diff := cmp.Diff([]int{1, 10}, whole.Value()); diff != "" {
		t.Errorf("default range (-want +got):\n%s", diff)
	}
}

func TestNumber(t *testing.T) {
	n := Must(NewNumber(NumberConfig{Start: 1, Stop: 10}))
	if n.Get() != 1 {
		t.Errorf("default = %v", n.Get())
	}
	if err := n.Set(10.5); err == nil {
		t.Error("value above stop accepted")
	}
	stepped := Must(NewNumber(NumberConfig{Step: 0.5}))
	if err := stepped.Set(2.5); err != nil {
		t.Errorf("Set(2.5) = %v", err)
	}
	if err := stepped.Set(2.2); err == nil {
		t.Error("off-step value accepted")
	}
	if h := mustHTML(t, n); !strings.Contains(h, `min="1" max="10"`) {
		t.Errorf("html = %s", h)
	}
}

func TestToggles(t *testing.T) {
	sw := NewSwitch(ToggleConfig{})
	cb := NewCheckbox(ToggleConfig{Label: "check me"})
	if render.ValueString(sw) != "False" {
		t.Error("switch should start off")
	}
	if err := cb.Set(true); err != nil {
		t.Fatal(err)
	}
	if h := mustHTML(t, cb); !strings.Contains(h, "checked") || !strings.Contains(h, "check me") {
		t.Errorf("checkbox html = %s", h)
	}
	if h := mustHTML(t, sw); strings.Contains(h, "checked") || !strings.Contains(h, `role="switch"`) {
		t.Errorf("switch html = %s", h)
	}
}

func TestText(t *testing.T) {
	txt := Must(NewText(TextConfig{Placeholder: "placeholder..."}))
	if got := render.ValueString(txt); got != `""` {
		t.Errorf("ValueString = %q", got)
	}
	if h := mustHTML(t, txt); !strings.Contains(h, `placeholder="placeholder..."`) {
		t.Errorf("html = %s", h)
	}

	email := Must(NewText(TextConfig{Kind: KindEmail}))
	if err := email.Set("not an address"); err == nil {
		t.Error("invalid email accepted")
	}
	if err := email.Set("ada@example.com"); err != nil {
		t.Error(err)
	}

	secret := Must(NewText(TextConfig{Kind: KindPassword, Value: "s3cret"}))
	if h := mustHTML(t, secret); strings.Contains(h, "s3cret") {
		t.Error("password rendered")
	}
	if secret.Get() != "s3cret" {
		t.Error("password value lost")
	}

	if _, err := NewText(TextConfig{Kind: "tel"}); err == nil {
		t.Error("unknown kind accepted")
	}
	short := Must(NewTextArea(TextConfig{MaxLength: 3}))
	if err := short.Set("abcd"); err == nil {
		t.Error("over-long text accepted")
	}
	if err := short.Set("a<b"); err != nil {
		t.Fatal(err)
	}
	if h := mustHTML(t, short); !strings.Contains(h, "a&lt;b</textarea>") {
		t.Errorf("text area html = %s", h)
	}
}

func TestDate(t *testing.T) {
	start := time.Date(2024, 1, 1, 15, 4, 0, 0, time.UTC)
	stop := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	d := Must(NewDate(DateConfig{Start: start, Stop: stop}))
	if got := render.ValueString(d); got != "2024-01-01" {
		t.Errorf("ValueString = %q", got)
	}
	if err := d.SetString("2024-05-17"); err != nil {
		t.Fatal(err)
	}
	if err := d.SetString("2025-01-01"); err == nil {
		t.Error("date after stop accepted")
	}
	if err := d.SetString("17/05/2024"); err == nil {
		t.Error("malformed date accepted")
	}
	if h := mustHTML(t, d); !strings.Contains(h, `value="2024-05-17" min="2024-01-01" max="2024-12-31"`) {
		t.Errorf("html = %s", h)
	}
	if _, err := NewDate(DateConfig{Start: stop, Stop: start}); err == nil {
		t.Error("inverted bounds accepted")
	}
}

func TestChoices(t *testing.T) {
	fruit := []string{"Apples", "Oranges"}
	radio := Must(NewRadio(ChoiceConfig{Options: fruit, Value: "Apples"}))
	if got := render.ValueString(radio); got != `"Apples"` {
		t.Errorf("radio ValueString = %q", got)
	}
	if err := radio.Set("Pears"); err == nil {
		t.Error("unknown option accepted")
	}
	if h := mustHTML(t, radio); !strings.Contains(h, `value="Apples" checked`) || strings.Contains(h, `value="Oranges" checked`) {
		t.Errorf("radio html = %s", h)
	}

	dd := Must(NewDropdown(ChoiceConfig{Options: fruit}))
	if dd.Value() != nil || render.ValueString(dd) != "None" {
		t.Errorf("empty dropdown value = %v", dd.Value())
	}
	if err := dd.Set(""); err == nil {
		t.Error("clearing accepted without AllowNone")
	}
	if _, err := NewDropdown(ChoiceConfig{Options: []string{"a", "a"}}); err == nil {
		t.Error("duplicate options accepted")
	}
	if _, err := NewRadio(ChoiceConfig{}); err == nil {
		t.Error("empty options accepted")
	}
}

func TestMultiselect(t *testing.T) {
	m := Must(NewMultiselect(MultiselectConfig{Options: []string{"Apples", "Oranges"}, MaxSelections: 1}))
	if got := render.ValueString(m); got != "[]" {
		t.Errorf("ValueString = %q", got)
	}
	sel := []string{"Oranges"}
	if err := m.Set(sel); err != nil {
		t.Fatal(err)
	}
	sel[0] = "changed"
	if diff := cmp.Diff([]string{"Oranges"}, m.Get()); diff != "" {
		t.Errorf("selection aliased caller slice (-want +got):\n%s", diff)
	}
	if err := m.Set([]string{"Apples", "Oranges"}); err == nil {
		t.Error("MaxSelections ignored")
	}
	if err := m.Set([]string{"Kiwi"}); err == nil {
		t.Error("unknown option accepted")
	}
	if h := mustHTML(t, m); !strings.Contains(h, `<option value="Oranges" selected>`) {
		t.Errorf("html = %s", h)
	}
}

func TestButtons(t *testing.T) {
	b := Must(NewButton(ButtonConfig{Value: 0, OnClick: func(v any) any { return v.(int) + 1 }, Label: "increment"}))
	for range 3 {
		if err := b.Click(); err != nil {
			t.Fatal(err)
		}
	}
	if got := render.ValueString(b); got != "3" {
		t.Errorf("after three clicks = %q", got)
	}
	if h := mustHTML(t, b); !strings.Contains(h, ">increment</button>") || !strings.Contains(h, "tk-kind-neutral") {
		t.Errorf("button html = %s", h)
	}

	run := Must(NewRunButton(ButtonConfig{Label: "Run"}))
	if run.Consume() {
		t.Error("fresh run button reports a click")
	}
	_ = run.Click()
	if !run.Consume() || run.Consume() {
		t.Error("Consume should report one click then reset")
	}
	if _, err := NewButton(ButtonConfig{Kind: "loud"}); err == nil {
		t.Error("unknown kind accepted")
	}
}

func TestArrayAndSubscribe(t *testing.T) {
	sw := NewSwitch(ToggleConfig{})
	s := Must(NewSlider(SliderConfig{Start: 1, Stop: 3}))
	arr := NewArray("", sw, s, NewCheckbox(ToggleConfig{}))
	notified := 0
	arr.Subscribe(func() { notified++ })
	_ = sw.Set(true)
	_ = s.Set(2)
	if notified != 2 {
		t.Errorf("notifications = %d, want 2", notified)
	}
	if diff := cmp.Diff([]any{true, 2}, arr.Values()[:2]); diff != "" {
		t.Errorf("values (-want +got):\n%s", diff)
	}
	if h := mustHTML(t, arr); strings.Count(h, `class="tk-array-item"`) != 3 {
		t.Errorf("array html = %s", h)
	}
}

func TestAccordionAndMarkdown(t *testing.T) {
	acc := NewAccordion(Section{
		Title:   "switch = mo.ui.switch()",
		Content: "`switch(value: bool = False)`",
	})
	h := mustHTML(t, acc)
	if !strings.Contains(h, "<summary>switch = mo.ui.switch()</summary>") ||
		!strings.Contains(h, "<code>switch(value: bool = False)</code>") {
		t.Errorf("accordion html = %s", h)
	}
	if strings.Contains(h, " open") {
		t.Error("accordion should start closed")
	}
	if h := mustHTML(t, acc.Expanded()); !strings.Contains(h, "<details open>") {
		t.Errorf("expanded html = %s", h)
	}
	if h := mustHTML(t, MD("[Switch](https://docs.marimo.io/api/inputs/switch/)")); !strings.Contains(h, `<a href="https://docs.marimo.io/api/inputs/switch/">Switch</a>`) {
		t.Errorf("markdown html = %s", h)
	}
	if _, err := render.Render(NewAccordion(Section{Title: "x", Content: 42})); !errors.HasCode(err, errors.ErrCodeNoRenderable) {
		t.Errorf("non-renderable content error = %v", err)
	}
}

func TestConcurrentSet(t *testing.T) {
	s := Must(NewSlider(SliderConfig{Start: 0, Stop: 100}))
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Set(i)
			_, _ = s.RenderHTML()
		}()
	}
	wg.Wait()
	if v := s.Index(); v < 0 || v >= 50 {
		t.Errorf("value = %d", v)
	}
}

func TestHandlersRunAfterUnlock(t *testing.T) {
	s := Must(NewSlider(SliderConfig{Start: 0, Stop: 10}))
	var seen, late []int
	s.OnChange(func(v int) {
		seen = append(seen, s.Index())
		if len(seen) == 1 {
			s.OnChange(func(v int) { late = append(late, v) })
		}
	})
	notified := 0
	s.Subscribe(func() {
		notified++
		s.Subscribe(func() {})
	})
	for _, v := range []int{3, 5} {
		if err := s.Set(v); err != nil {
			t.Fatal(err)
		}
	}
	if diff := cmp.Diff([]int{3, 5}, seen); diff != "" {
		t.Errorf("values seen by handler (-want +got):\n%s", diff)
	}
	// a handler added during Set runs from the next Set on
	if diff := cmp.Diff([]int{5}, late); diff != "" {
		t.Errorf("late handler calls (-want +got):\n%s", diff)
	}
	if notified != 2 {
		t.Errorf("notified = %d, want 2", notified)
	}
}

func TestMustPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Must did not panic")
		}
	}()
	Must(NewSlider(SliderConfig{Start: 2, Stop: 1}))
}
