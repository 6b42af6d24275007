// Package widget provides interactive inputs rendered as HTML.
//
// Every widget has a stable id, an optional label and a current value
// guarded for concurrent use. Set validates the new value before storing it
// and then runs the OnChange callbacks with it. Widgets satisfy the render
// capability through RenderHTML and expose their value through Value, so
// they can be embedded in tables and notebooks directly:
//
//	style := widget.Must(widget.NewSlider(widget.SliderConfig{Start: 1, Stop: 6, Label: "Style Number"}))
//	style.OnChange(func(v int) { fmt.Println("style", v) })
//	_ = style.Set(3)
package widget
