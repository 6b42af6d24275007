package demo

import (
	"context"
	"strconv"

	"github.com/kbukum/tablekit/notebook"
	"github.com/kbukum/tablekit/table"
	"github.com/kbukum/tablekit/table/data"
	"github.com/kbukum/tablekit/widget"
)

// StylizeDemo restyles a small table from three controls.
type StylizeDemo struct {
	*notebook.Notebook
	Style    *widget.Slider
	Color    *widget.Radio
	Striping *widget.Switch
}

// Table applies the current control values.
func (d *StylizeDemo) Table() (*table.Table, error) {
	t := table.New(data.Stylize(), table.ID("stylize")).
		TabHeader("opt_stylize", table.Markdown("style **"+strconv.Itoa(d.Style.Get())+"** in *"+d.Color.Get()+"*")).
		OptStylize(d.Style.Get(), d.Color.Get(), d.Striping.Get())
	return t, t.Err()
}

// Stylize builds the playground.
func Stylize(ctx context.Context, style int, color string, striping bool) (*StylizeDemo, error) {
	s, c, err := styleControls(style, color)
	if err != nil {
		return nil, err
	}
	d := &StylizeDemo{
		Notebook: notebook.New("Stylize"),
		Style:    s,
		Color:    c,
		Striping: widget.NewSwitch(widget.ToggleConfig{Value: striping, Label: "Row striping"}),
	}
	controls := widget.NewArray("controls", d.Style, d.Color, d.Striping)
	if err := d.Show(ctx, "controls", controls, controls); err != nil {
		return nil, err
	}
	err = d.Add(ctx, "table", func(context.Context) (any, error) {
		return d.Table()
	}, controls)
	if err != nil {
		return nil, err
	}
	return d, nil
}
