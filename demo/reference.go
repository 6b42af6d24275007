package demo

import (
	"context"
	"math/rand/v2"

	"github.com/kbukum/tablekit/errors"
	"github.com/kbukum/tablekit/notebook"
	"github.com/kbukum/tablekit/render"
	"github.com/kbukum/tablekit/table"
	"github.com/kbukum/tablekit/widget"
)

const docsURL = "https://pkg.go.dev/github.com/kbukum/tablekit/widget"

type reference struct {
	name string
	code string
	sig  string
	w    widget.Widget
}

func referenceWidgets() ([]reference, error) {
	date, err := widget.NewDate(widget.DateConfig{})
	if err != nil {
		return nil, err
	}
	run, err := widget.NewRunButton(widget.ButtonConfig{Label: "Run"})
	if err != nil {
		return nil, err
	}
	button, err := widget.NewButton(widget.ButtonConfig{
		Value:   0,
		OnClick: func(v any) any { n, _ := v.(int); return n + 1 },
		Label:   "increment",
	})
	if err != nil {
		return nil, err
	}
	number, err := widget.NewNumber(widget.NumberConfig{Start: 1, Stop: 10})
	if err != nil {
		return nil, err
	}
	slider, err := widget.NewSlider(widget.SliderConfig{Start: 1, Stop: 10, Step: 1})
	if err != nil {
		return nil, err
	}
	rng, err := widget.NewRangeSlider(widget.RangeSliderConfig{Start: 1, Stop: 10, Step: 2, Value: [2]int{3, 7}})
	if err != nil {
		return nil, err
	}
	fruit := []string{"Apples", "Oranges"}
	radio, err := widget.NewRadio(widget.ChoiceConfig{Options: fruit, Value: "Apples"})
	if err != nil {
		return nil, err
	}
	dropdown, err := widget.NewDropdown(widget.ChoiceConfig{Options: fruit, Value: "Apples"})
	if err != nil {
		return nil, err
	}
	multi, err := widget.NewMultiselect(widget.MultiselectConfig{Options: fruit})
	if err != nil {
		return nil, err
	}
	text, err := widget.NewText(widget.TextConfig{Placeholder: "placeholder..."})
	if err != nil {
		return nil, err
	}
	area, err := widget.NewTextArea(widget.TextConfig{Placeholder: "placeholder..."})
	if err != nil {
		return nil, err
	}

	return []reference{
		{"Switch", "widget.NewSwitch(widget.ToggleConfig{})",
			"func NewSwitch(cfg ToggleConfig) *Switch", widget.NewSwitch(widget.ToggleConfig{})},
		{"Checkbox", `widget.NewCheckbox(widget.ToggleConfig{Label: "check me"})`,
			"func NewCheckbox(cfg ToggleConfig) *Checkbox", widget.NewCheckbox(widget.ToggleConfig{Label: "check me"})},
		{"Date", "widget.NewDate(widget.DateConfig{})",
			"func NewDate(cfg DateConfig) (*Date, error)", date},
		{"RunButton", `widget.NewRunButton(widget.ButtonConfig{Label: "Run"})`,
			"func NewRunButton(cfg ButtonConfig) (*RunButton, error)", run},
		{"Button", `widget.NewButton(widget.ButtonConfig{Value: 0, OnClick: increment, Label: "increment"})`,
			"func NewButton(cfg ButtonConfig) (*Button, error)", button},
		{"Number", "widget.NewNumber(widget.NumberConfig{Start: 1, Stop: 10})",
			"func NewNumber(cfg NumberConfig) (*Number, error)", number},
		{"Slider", "widget.NewSlider(widget.SliderConfig{Start: 1, Stop: 10, Step: 1})",
			"func NewSlider(cfg SliderConfig) (*Slider, error)", slider},
		{"RangeSlider", "widget.NewRangeSlider(widget.RangeSliderConfig{Start: 1, Stop: 10, Step: 2, Value: [2]int{3, 7}})",
			"func NewRangeSlider(cfg RangeSliderConfig) (*RangeSlider, error)", rng},
		{"Radio", `widget.NewRadio(widget.ChoiceConfig{Options: fruit, Value: "Apples"})`,
			"func NewRadio(cfg ChoiceConfig) (*Radio, error)", radio},
		{"Dropdown", `widget.NewDropdown(widget.ChoiceConfig{Options: fruit, Value: "Apples"})`,
			"func NewDropdown(cfg ChoiceConfig) (*Dropdown, error)", dropdown},
		{"Multiselect", "widget.NewMultiselect(widget.MultiselectConfig{Options: fruit})",
			"func NewMultiselect(cfg MultiselectConfig) (*Multiselect, error)", multi},
		{"Text", `widget.NewText(widget.TextConfig{Placeholder: "placeholder..."})`,
			"func NewText(cfg TextConfig) (*Text, error)", text},
		{"TextArea", `widget.NewTextArea(widget.TextConfig{Placeholder: "placeholder..."})`,
			"func NewTextArea(cfg TextConfig) (*TextArea, error)", area},
	}, nil
}

// ReferenceDemo lists every widget next to its live value and the code
// that builds it.
type ReferenceDemo struct {
	*notebook.Notebook
	Widgets *widget.Array
	Style   *widget.Slider
	Color   *widget.Radio

	refs []reference
}

// Table builds the reference table for the current widget values.
func (d *ReferenceDemo) Table() (*table.Table, error) {
	n := len(d.refs)
	links, widgets, values, code := make([]any, n), make([]any, n), make([]any, n), make([]any, n)
	for i, r := range d.refs {
		links[i] = table.Markdown("[" + r.name + "](" + docsURL + "#" + r.name + ")")
		widgets[i] = r.w
		values[i] = render.ValueString(r.w)
		code[i] = widget.NewAccordion(widget.Section{Title: r.code, Content: "`" + r.sig + "`"})
	}
	f, err := table.NewFrame(
		table.Col("link", links...),
		table.Col("widget", widgets...),
		table.Col("value", values...),
		table.Col("code", code...),
	)
	if err != nil {
		return nil, err
	}
	t := table.New(f, table.ID("widget-reference")).
		ColsAlign("left").
		OptAllCaps(true).
		TabHeader(d.Style, d.Color).
		OptStylize(d.Style.Get(), d.Color.Get(), false).
		OptAlignTableHeader("left").
		ColsWidth(map[string]string{"widget": "20%"})
	return t, t.Err()
}

// WidgetReference builds the reference. A zero style or empty color is
// picked at random.
func WidgetReference(ctx context.Context, style int, color string) (*ReferenceDemo, error) {
	styleW, colorW, err := styleControls(style, color)
	if err != nil {
		return nil, err
	}
	refs, err := referenceWidgets()
	if err != nil {
		return nil, err
	}
	items := make([]widget.Widget, len(refs))
	for i, r := range refs {
		items[i] = r.w
	}
	d := &ReferenceDemo{
		Notebook: notebook.New("Widget reference"),
		Widgets:  widget.NewArray("widgets", items...),
		Style:    styleW,
		Color:    colorW,
		refs:     refs,
	}
	err = d.Add(ctx, "reference", func(context.Context) (any, error) {
		return d.Table()
	}, d.Widgets, d.Style, d.Color)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// styleControls builds the stylize style slider and colour radio.
func styleControls(style int, color string) (*widget.Slider, *widget.Radio, error) {
	colors := table.StylizeColors()
	if style == 0 {
		style = 1 + rand.IntN(table.StylizeStyles)
	}
	if color == "" {
		color = colors[rand.IntN(len(colors))]
	}
	if !table.IsStylizeColor(color) {
		return nil, nil, errors.InvalidInput("color", color+" is not a stylize colour")
	}
	s, err := widget.NewSlider(widget.SliderConfig{
		Start: 1, Stop: table.StylizeStyles, Value: style, Label: "Style Number", ShowValue: true,
	})
	if err != nil {
		return nil, nil, err
	}
	c, err := widget.NewRadio(widget.ChoiceConfig{Options: colors, Value: color, Label: "Style Color", Inline: true})
	if err != nil {
		return nil, nil, err
	}
	return s, c, nil
}
