package demo

import (
	"context"

	"github.com/kbukum/tablekit/lazytable"
	"github.com/kbukum/tablekit/notebook"
	"github.com/kbukum/tablekit/table"
	"github.com/kbukum/tablekit/table/data"
	"github.com/kbukum/tablekit/widget"
)

// TimeMachineSteps is the number of operations in the time machine
// pipeline. The slider ranges over 0..TimeMachineSteps.
const TimeMachineSteps = 6

// TimeMachineFrame returns the first ten airquality rows with a Year column.
func TimeMachineFrame() (*table.Frame, error) {
	f := data.AirQuality().Head(10)
	years := make([]any, f.NumRows())
	for i := range years {
		years[i] = 1973
	}
	return f.WithColumn("Year", years)
}

// TimeMachinePipeline builds and collects the six step airquality
// pipeline driven by ctrl.
func TimeMachinePipeline(ctrl lazytable.Control) (*lazytable.Pipeline, error) {
	f, err := TimeMachineFrame()
	if err != nil {
		return nil, err
	}
	p := lazytable.New(ctrl, f, table.ID("time-machine")).
		OptStylize(2, "pink", false).
		TabHeader(
			"New York Air Quality Measurements",
			"Daily measurements in New York City (May 1-10, 1973)",
		).
		TabSpanner("Time", "Year", "Month", "Day").
		TabSpanner("Measurement", "Ozone", "Solar_R", "Wind", "Temp").
		ColsMoveToStart("Year", "Month", "Day").
		ColsLabel(map[string]any{
			"Ozone":   table.HTML("Ozone,<br>ppbV"),
			"Solar_R": table.HTML("Solar R.,<br>cal/m<sup>2</sup>"),
			"Wind":    table.HTML("Wind,<br>mph"),
			"Temp":    table.HTML("Temp,<br>&deg;F"),
		})
	if _, err := p.Collect(); err != nil {
		return nil, err
	}
	return p, nil
}

// TimeMachineDemo steps through the pipeline one operation at a time.
type TimeMachineDemo struct {
	*notebook.Notebook
	Step     *widget.Slider
	Pipeline *lazytable.Pipeline
}

// TimeMachine builds the demo with the slider at step.
func TimeMachine(ctx context.Context, step int) (*TimeMachineDemo, error) {
	slider, err := widget.NewSlider(widget.SliderConfig{
		Stop:      TimeMachineSteps,
		Value:     step,
		Label:     "Step",
		ShowValue: true,
	})
	if err != nil {
		return nil, err
	}
	p, err := TimeMachinePipeline(slider)
	if err != nil {
		return nil, err
	}

	nb := notebook.New("Table time machine")
	if err := nb.Show(ctx, "intro", widget.MD(
		"Each step of the slider applies one more table operation. "+
			"The table is only interactive once the pipeline is collected.")); err != nil {
		return nil, err
	}
	if err := nb.Show(ctx, "table", p, slider); err != nil {
		return nil, err
	}
	return &TimeMachineDemo{Notebook: nb, Step: slider, Pipeline: p}, nil
}
