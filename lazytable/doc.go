// Package lazytable records table builder calls and replays them on demand.
//
// A Pipeline wraps a base table and a control widget. Builder calls made
// on the Pipeline are recorded instead of applied. Collect replays them one
// at a time on copies of the base table, keeping every intermediate table
// as a snapshot, so N calls give N+1 snapshots with the untouched base
// first. Render shows the snapshot selected by the control's current index,
// with the control itself attached as a source note. Indices outside the
// snapshot range show the last snapshot.
//
//	step := widget.Must(widget.NewSlider(widget.SliderConfig{Start: 0, Stop: 2}))
//	p := lazytable.New(step, frame).
//		TabHeader("Air quality").
//		ColsMoveToStart("Month", "Day")
//	if _, err := p.Collect(); err != nil {
//		return err
//	}
//	html, err := p.Render()
package lazytable
